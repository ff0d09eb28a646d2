// Package testutils provides utilities for testing, including Redis test helpers
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pixel-xp/internal/redis"
)

// CreateTestRedisClient creates an in-memory Redis client for testing
func CreateTestRedisClient(t *testing.T) (redis.Client, func()) {
	return CreateTestRedisClientWithContext(t, nil)
}

// CreateTestRedisClientWithContext creates an in-memory Redis client, letting
// the test populate the server before the client connects
func CreateTestRedisClientWithContext(t *testing.T, setupFunc func(mr *miniredis.Miniredis)) (redis.Client, func()) {
	mr, client := CreateTestRedisServer(t)

	if setupFunc != nil {
		setupFunc(mr)
	}

	cleanup := func() {
		_ = client.Close()
		mr.Close()
	}

	return client, cleanup
}

// CreateTestRedisServer returns the miniredis server alongside a client so
// tests can inspect keys and pub/sub traffic directly
func CreateTestRedisServer(t *testing.T) (*miniredis.Miniredis, redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	client, err := redis.NewClient(&redis.Config{Addr: mr.Addr()})
	require.NoError(t, err, "failed to create redis client")

	return mr, client
}
