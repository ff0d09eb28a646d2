package battle

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/repositories/kvstore"
)

// KeyReport describes one persisted key
type KeyReport struct {
	Key     string
	Present bool
	Err     error
}

// Report is the result of inspecting persisted battle state
type Report struct {
	Quests     KeyReport
	UserXP     KeyReport
	QuestCount int
	UserXPVal  int

	// Problems lists quests that break the quest invariants
	Problems []string
}

// Healthy reports whether both keys decode and no invariant is broken
func (r *Report) Healthy() bool {
	return r.Quests.Err == nil && r.UserXP.Err == nil && len(r.Problems) == 0
}

// Inspect reads the raw keys from store without repairing anything
func Inspect(ctx context.Context, store kvstore.Store, maxXP int) (*Report, error) {
	if store == nil {
		return nil, errors.InvalidArgument("store is required")
	}

	report := &Report{
		Quests: KeyReport{Key: QuestsKey},
		UserXP: KeyReport{Key: UserXPKey},
	}

	raw, present, err := readRaw(ctx, store, QuestsKey)
	if err != nil {
		return nil, err
	}
	report.Quests.Present = present
	if present {
		quests, decodeErr := DecodeQuests(raw)
		report.Quests.Err = decodeErr
		report.QuestCount = len(quests)

		seen := make(map[string]bool, len(quests))
		for i, q := range quests {
			label := fmt.Sprintf("quest[%d] %q", i, q.ID)
			if q.ID == "" {
				report.Problems = append(report.Problems, label+": missing id")
			} else if seen[q.ID] {
				report.Problems = append(report.Problems, label+": duplicate id")
			}
			seen[q.ID] = true
			if strings.TrimSpace(q.Title) == "" {
				report.Problems = append(report.Problems, label+": blank title")
			}
			if q.XPValue <= 0 {
				report.Problems = append(report.Problems, label+": xpValue must be positive")
			}
			if q.DurationMinutes <= 0 {
				report.Problems = append(report.Problems, label+": durationMinutes must be positive")
			}
		}
	}

	raw, present, err = readRaw(ctx, store, UserXPKey)
	if err != nil {
		return nil, err
	}
	report.UserXP.Present = present
	if present {
		xp, decodeErr := DecodeUserXP(raw)
		report.UserXP.Err = decodeErr
		report.UserXPVal = xp
		if decodeErr == nil && (xp < 0 || xp > maxXP) {
			report.Problems = append(report.Problems, fmt.Sprintf("user xp %d outside [0, %d]", xp, maxXP))
		}
	}

	return report, nil
}

func readRaw(ctx context.Context, store kvstore.Store, key string) (string, bool, error) {
	output, err := store.Get(ctx, kvstore.GetInput{Key: key})
	if err != nil {
		if errors.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "failed to read %s", key)
	}
	return output.Value, true, nil
}
