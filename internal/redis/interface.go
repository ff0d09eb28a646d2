package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the go-redis surface the rest of the module depends on, so
// tests can hand in a client pointed at miniredis
type Client interface {
	redis.UniversalClient
}
