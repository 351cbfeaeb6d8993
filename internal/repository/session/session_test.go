package session

import (
	"context"
	"os"
	"testing"

	"shopfront/internal/domain"
	"shopfront/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "shop-storage:abc", Key("abc"))
}

func TestMemory_LoadMissing(t *testing.T) {
	_, err := NewMemory().Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemory_SaveIsolatesCallerBuffer(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	buf := []byte(`{"version":1}`)
	require.NoError(t, repo.Save(ctx, "k", buf))
	buf[0] = 'X'

	got, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(got))
}

func TestPostgres_SaveAndLoad(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, migrate.Apply(ctx, pool, nil))
	_, err = pool.Exec(ctx, `TRUNCATE session_states`)
	require.NoError(t, err)

	repo := NewPostgres(pool, nil)
	_, err = repo.Load(ctx, Key("s1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Save(ctx, Key("s1"), []byte(`{"version":1,"cart":[]}`)))
	require.NoError(t, repo.Save(ctx, Key("s1"), []byte(`{"version":1,"cart":[],"orders":[]}`)))

	got, err := repo.Load(ctx, Key("s1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"cart":[],"orders":[]}`, string(got))
}

func TestRedis_SaveAndLoad(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client, err := DialRedis(ctx, addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	key := Key("redis-test")
	require.NoError(t, client.Del(ctx, key).Err())

	repo := NewRedis(client, 0)
	_, err = repo.Load(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Save(ctx, key, []byte(`{"version":1}`)))
	got, err := repo.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(got))
}
