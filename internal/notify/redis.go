package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
	redisclient "github.com/KirkDiggler/pixel-xp/internal/redis"
)

// DefaultChannel is the pub/sub channel notices are published on
const DefaultChannel = "pixelxp:notices"

// RedisConfig holds the configuration for the Redis sink
type RedisConfig struct {
	Client  redisclient.Client
	Channel string
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

// RedisSink publishes notices as JSON on a Redis pub/sub channel so a
// separate presenter process can show them
type RedisSink struct {
	client  redisclient.Client
	channel string
}

// NewRedisSink creates a sink publishing on cfg.Channel
func NewRedisSink(cfg *RedisConfig) (*RedisSink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	channel := cfg.Channel
	if channel == "" {
		channel = DefaultChannel
	}

	return &RedisSink{
		client:  cfg.Client,
		channel: channel,
	}, nil
}

// Notify implements Sink. Publish failures are logged and dropped.
func (s *RedisSink) Notify(ctx context.Context, notice Notice) {
	payload, err := json.Marshal(notice)
	if err != nil {
		slog.Warn("Failed to marshal notice", "title", notice.Title, "error", err)
		return
	}

	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		slog.Warn("Failed to publish notice",
			"channel", s.channel,
			"title", notice.Title,
			"error", err,
		)
	}
}
