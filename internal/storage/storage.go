// Package storage opens the session repository selected by configuration.
package storage

import (
	"context"
	"fmt"

	"shopfront/internal/config"
	"shopfront/internal/db"
	"shopfront/internal/migrate"
	sessionrepo "shopfront/internal/repository/session"

	"go.uber.org/zap"
)

// Backend is the session repository chosen by STORAGE_DRIVER plus its probe
// and teardown.
type Backend struct {
	Repo  sessionrepo.Repository
	Ready func(ctx context.Context) error
	Close func()
}

func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (Backend, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString, log.Named("db"))
		if err != nil {
			return Backend{}, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migrate.Apply(ctx, pool, log); err != nil {
			pool.Close()
			return Backend{}, fmt.Errorf("apply migrations: %w", err)
		}
		return Backend{
			Repo:  sessionrepo.NewPostgres(pool, log.Named("session_repo")),
			Ready: func(ctx context.Context) error { return db.Ping(ctx, pool) },
			Close: pool.Close,
		}, nil

	case config.StorageRedis:
		client, err := sessionrepo.DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return Backend{}, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr), zap.Int("db", cfg.Redis.DB))
		return Backend{
			Repo:  sessionrepo.NewRedis(client, cfg.SessionTTL),
			Ready: func(ctx context.Context) error { return client.Ping(ctx).Err() },
			Close: func() { _ = client.Close() },
		}, nil

	default:
		log.Warn("using in-memory session storage; state is lost on restart")
		return Backend{
			Repo:  sessionrepo.NewMemory(),
			Close: func() {},
		}, nil
	}
}
