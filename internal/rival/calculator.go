// Package rival computes the AI rival's XP gain from the user's unfinished quests.
//
// The rival capitalises on procrastination: a quest with its whole window ahead
// contributes nothing, a quest at or past its deadline contributes its full XP
// value, and everything in between scales linearly.
package rival

//go:generate mockgen -destination=mock/mock_calculator.go -package=rivalmock github.com/KirkDiggler/pixel-xp/internal/rival Calculator

import (
	"context"
	"math"

	"github.com/KirkDiggler/pixel-xp/internal/entities"
)

// CalculateInput is the calculator invocation payload
type CalculateInput struct {
	IncompleteQuests []entities.IncompleteQuest `json:"incompleteQuests"`
}

// CalculateOutput carries the rival's gain for one update cycle.
// The gain is incremental: callers add it to the running rival total.
type CalculateOutput struct {
	RivalXPGain int `json:"rivalXpGain"`
}

// Calculator is the invocation boundary for rival XP. Implementations may be
// remote, so callers must treat Calculate as fallible and possibly slow.
type Calculator interface {
	Calculate(ctx context.Context, input *CalculateInput) (*CalculateOutput, error)
}

// UrgencyWeight returns how close a quest is to expiring, in [0, 1].
// A non-positive duration counts as fully urgent.
func UrgencyWeight(q entities.IncompleteQuest) float64 {
	if q.DurationMinutes <= 0 {
		return 1
	}
	w := 1 - q.TimeRemainingMinutes/q.DurationMinutes
	return math.Max(0, math.Min(1, w))
}

// CalculateRivalXP sums xpValue * urgency over quests and rounds to whole XP.
// It is pure: identical input always yields identical output.
func CalculateRivalXP(quests []entities.IncompleteQuest) int {
	var gain float64
	for _, q := range quests {
		gain += q.XPValue * UrgencyWeight(q)
	}
	return RoundXP(gain)
}

// RoundXP rounds a fractional XP amount to the nearest whole value,
// saturating at the int range. NaN rounds to 0.
func RoundXP(v float64) int {
	r := math.Round(v)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	}
	return int(r)
}

type localCalculator struct{}

// NewLocalCalculator returns an in-process Calculator
func NewLocalCalculator() Calculator {
	return &localCalculator{}
}

// Calculate implements Calculator
func (c *localCalculator) Calculate(ctx context.Context, input *CalculateInput) (*CalculateOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var quests []entities.IncompleteQuest
	if input != nil {
		quests = input.IncompleteQuests
	}

	return &CalculateOutput{
		RivalXPGain: CalculateRivalXP(quests),
	}, nil
}
