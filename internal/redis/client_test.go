package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/redis"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := redis.NewClient(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = redis.NewClient(&redis.Config{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = redis.NewClient(&redis.Config{URL: "http://not-redis"})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewClient_AddrAndURL(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	byAddr, err := redis.NewClient(&redis.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer byAddr.Close()
	require.NoError(t, redis.Ping(ctx, byAddr))

	byURL, err := redis.NewClient(&redis.Config{URL: "redis://" + mr.Addr() + "/0"})
	require.NoError(t, err)
	defer byURL.Close()
	require.NoError(t, redis.Ping(ctx, byURL))
}

func TestPing_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := redis.NewClient(&redis.Config{Addr: addr})
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, errors.IsUnavailable(redis.Ping(context.Background(), client)))
}
