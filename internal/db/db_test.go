package db

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConnect_InvalidDSN(t *testing.T) {
	_, err := Connect(context.Background(), "postgres://%zz", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse dsn")
}

func TestConnect_LogsPool(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	core, logs := observer.New(zap.InfoLevel)
	pool, err := Connect(context.Background(), dsn, zap.New(core))
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Ping(context.Background(), pool))
	assert.Equal(t, 1, logs.FilterMessage("postgres connected").Len())
}
