package kvstore

import (
	"context"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
	redisclient "github.com/KirkDiggler/pixel-xp/internal/redis"
)

// RedisConfig holds the configuration for the Redis store
type RedisConfig struct {
	Client redisclient.Client

	// Prefix is prepended to every key, e.g. "pixelxp:"
	Prefix string
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

type redisStore struct {
	client redisclient.Client
	prefix string
}

// NewRedis creates a Store backed by Redis strings
func NewRedis(cfg *RedisConfig) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisStore{
		client: cfg.Client,
		prefix: cfg.Prefix,
	}, nil
}

// Ensure redisStore implements Store
var _ Store = (*redisStore)(nil)

// Get retrieves a value by key
func (r *redisStore) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	value, err := r.client.Get(ctx, r.buildKey(input.Key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("key not found").WithMeta("key", input.Key)
		}
		return nil, errors.Wrapf(err, "failed to get %s from Redis", input.Key)
	}

	return &GetOutput{Value: value}, nil
}

// Set stores a value without expiry
func (r *redisStore) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	if err := r.client.Set(ctx, r.buildKey(input.Key), input.Value, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store %s in Redis", input.Key)
	}

	return &SetOutput{}, nil
}

func (r *redisStore) buildKey(key string) string {
	return r.prefix + key
}
