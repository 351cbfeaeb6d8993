package session

import (
	"context"
	"errors"

	"shopfront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by the session_states table.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Load(ctx context.Context, key string) ([]byte, error) {
	const q = `
SELECT state
FROM session_states
WHERE key = $1
`
	var blob []byte
	if err := r.pool.QueryRow(ctx, q, key).Scan(&blob); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Warn("session repo: load failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return blob, nil
}

func (r *postgresRepo) Save(ctx context.Context, key string, blob []byte) error {
	const q = `
INSERT INTO session_states (key, state, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET
    state = EXCLUDED.state,
    updated_at = EXCLUDED.updated_at
`
	if _, err := r.pool.Exec(ctx, q, key, blob); err != nil {
		r.logger.Warn("session repo: save failed", zap.String("key", key), zap.Error(err))
		return err
	}
	r.logger.Debug("session repo: saved", zap.String("key", key), zap.Int("bytes", len(blob)))
	return nil
}
