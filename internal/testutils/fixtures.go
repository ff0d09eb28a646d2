package testutils

import (
	"sync"
	"time"

	"github.com/KirkDiggler/pixel-xp/internal/entities"
)

// FixtureEpoch is the creation time used by quest fixtures
var FixtureEpoch = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

// NewQuest returns an incomplete quest created at FixtureEpoch
func NewQuest(id, title string, xp, durationMinutes int) *entities.Quest {
	return &entities.Quest{
		ID:              id,
		Title:           title,
		XPValue:         xp,
		DurationMinutes: durationMinutes,
		Timestamp:       FixtureEpoch.UnixMilli(),
	}
}

// NewCompletedQuest returns a completed quest created at FixtureEpoch
func NewCompletedQuest(id, title string, xp, durationMinutes int) *entities.Quest {
	q := NewQuest(id, title, xp, durationMinutes)
	q.IsComplete = true
	return q
}

// ManualClock is a clock that only moves when told to
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock stopped at now
func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

// Now returns the clock's current time
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
