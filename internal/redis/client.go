// Package redis builds the go-redis clients used for the redis store backend
// and for publishing notices.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
)

// DefaultDialTimeout bounds connection attempts
const DefaultDialTimeout = 3 * time.Second

// Config selects a single Redis instance. URL, when set, wins over Addr and
// may use rediss:// for TLS.
type Config struct {
	Addr        string
	URL         string
	DialTimeout time.Duration
}

// Validate ensures an endpoint is present
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Addr == "" && c.URL == "" {
		return errors.InvalidArgument("redis addr or url is required")
	}
	return nil
}

// NewClient creates a lazily connecting client
func NewClient(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := &redis.Options{Addr: cfg.Addr}
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis url")
		}
		opts = parsed
	}

	opts.DialTimeout = cfg.DialTimeout
	if opts.DialTimeout == 0 {
		opts.DialTimeout = DefaultDialTimeout
	}

	return redis.NewClient(opts), nil
}

// Ping checks the server is reachable
func Ping(ctx context.Context, client Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
	}
	return nil
}
