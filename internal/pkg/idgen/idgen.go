// Package idgen provides ID generation utilities
package idgen

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/KirkDiggler/pixel-xp/internal/pkg/clock"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// MillisGenerator issues epoch-millisecond ids, the format the browser build
// used for quests. Two ids requested within the same millisecond are bumped
// forward so they stay unique within a process.
type MillisGenerator struct {
	clock clock.Clock
	last  atomic.Int64
}

// NewMillis creates a millisecond id generator reading from c
func NewMillis(c clock.Clock) *MillisGenerator {
	return &MillisGenerator{clock: c}
}

// Generate returns the current epoch milliseconds as a decimal string
func (g *MillisGenerator) Generate() string {
	for {
		now := g.clock.Now().UnixMilli()
		prev := g.last.Load()
		if now <= prev {
			now = prev + 1
		}
		if g.last.CompareAndSwap(prev, now) {
			return strconv.FormatInt(now, 10)
		}
	}
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}
