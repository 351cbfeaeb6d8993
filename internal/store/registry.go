package store

import (
	"context"
	"sync"
	"time"

	sessionrepo "shopfront/internal/repository/session"

	"go.uber.org/zap"
)

type entry struct {
	store    *Store
	lastUsed time.Time
}

// Registry owns one Store per session id. A cached store is refreshed from the
// repository on every Get, so the repository stays the source of truth and
// idle entries can be swept without losing state.
type Registry struct {
	mu      sync.Mutex
	repo    sessionrepo.Repository
	opts    []Option
	entries map[string]*entry
	now     func() time.Time
}

func NewRegistry(repo sessionrepo.Repository, opts ...Option) *Registry {
	return &Registry{
		repo:    repo,
		opts:    opts,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Get returns the store for sessionID with its state reloaded from the
// repository. Requests for one session share a Store and therefore its lock.
func (r *Registry) Get(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	if e, ok := r.entries[sessionID]; ok {
		e.lastUsed = r.now()
		r.mu.Unlock()
		e.store.Refresh(ctx)
		return e.store
	}
	r.mu.Unlock()

	opened := Open(ctx, sessionrepo.Key(sessionID), r.repo, r.opts...)
	opened.logger = opened.logger.With(zap.String("session_id", sessionID))

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sessionID]; ok {
		// lost the race to a concurrent first request
		e.lastUsed = r.now()
		return e.store
	}
	r.entries[sessionID] = &entry{store: opened, lastUsed: r.now()}
	return opened
}

// Sweep drops stores unused for longer than maxIdle and reports how many were
// dropped. A degraded store holds state that never reached the repository;
// that state is lost when it is swept.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	var swept []*Store
	for id, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			swept = append(swept, e.store)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, s := range swept {
		if s.Degraded() {
			s.logger.Warn("store: evicting memory-only session, unsaved state dropped")
		}
	}
	return len(swept)
}

// RunSweeper calls Sweep every interval until ctx is done. report, when not
// nil, gets the number evicted and the remaining cache size after each pass.
func (r *Registry) RunSweeper(ctx context.Context, interval, maxIdle time.Duration, report func(evicted, cached int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := r.Sweep(maxIdle)
			if report != nil {
				report(evicted, r.Len())
			}
		}
	}
}

// Len reports how many stores are cached.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
