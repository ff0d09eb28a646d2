package entities

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

const (
	// DefaultDurationMinutes is the window a quest gets when none is given: one day
	DefaultDurationMinutes = 24 * 60

	// EntityTypeQuest is the rpg-toolkit entity type reported by quests
	EntityTypeQuest = "quest"
)

// Quest is a user-defined task with an XP reward and a nominal duration.
// Timestamp is the creation time in epoch milliseconds and never changes.
type Quest struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	XPValue         int    `json:"xpValue"`
	DurationMinutes int    `json:"durationMinutes"`
	IsComplete      bool   `json:"isComplete"`
	Timestamp       int64  `json:"timestamp"`
}

var _ core.Entity = (*Quest)(nil)

// GetID returns the quest's ID
func (q *Quest) GetID() string {
	return q.ID
}

// GetType returns the entity type for rpg-toolkit
func (q *Quest) GetType() string {
	return EntityTypeQuest
}

// ElapsedMinutes returns whole minutes since the quest was created, never negative
func (q *Quest) ElapsedMinutes(now time.Time) int {
	elapsed := now.UnixMilli() - q.Timestamp
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / int64(time.Minute/time.Millisecond))
}

// TimeRemainingMinutes returns how much of the quest's window is left at now.
// An overdue quest reports zero indefinitely.
func (q *Quest) TimeRemainingMinutes(now time.Time) int {
	return max(0, q.DurationMinutes-q.ElapsedMinutes(now))
}

// Projection returns the view of the quest the rival calculator consumes
func (q *Quest) Projection(now time.Time) IncompleteQuest {
	return IncompleteQuest{
		XPValue:              float64(q.XPValue),
		DurationMinutes:      float64(q.DurationMinutes),
		TimeRemainingMinutes: float64(q.TimeRemainingMinutes(now)),
	}
}

// Clone returns a copy of the quest
func (q *Quest) Clone() *Quest {
	if q == nil {
		return nil
	}
	c := *q
	return &c
}

// IncompleteQuest is the timing data the rival sees for one unfinished quest.
// It deliberately carries no identity, title or completion history.
type IncompleteQuest struct {
	XPValue              float64 `json:"xpValue"`
	DurationMinutes      float64 `json:"durationMinutes"`
	TimeRemainingMinutes float64 `json:"timeRemainingMinutes"`
}
