package session

import (
	"context"
	"slices"
	"sync"

	"shopfront/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory returns a process-local Repository.
func NewMemory() Repository {
	return &memoryRepo{blobs: make(map[string][]byte)}
}

func (r *memoryRepo) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	blob, ok := r.blobs[key]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(blob), nil
}

func (r *memoryRepo) Save(_ context.Context, key string, blob []byte) error {
	r.mu.Lock()
	r.blobs[key] = slices.Clone(blob)
	r.mu.Unlock()
	return nil
}
