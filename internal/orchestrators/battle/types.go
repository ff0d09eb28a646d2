package battle

import (
	"github.com/KirkDiggler/pixel-xp/internal/entities"
)

// LoadOutput reports what was restored from storage
type LoadOutput struct {
	// Restored is false when nothing was stored or the stored state was unreadable
	Restored bool
	State    *entities.BattleState
}

// AddQuestInput defines a new quest. A zero DurationMinutes means one day.
type AddQuestInput struct {
	Title           string
	XPValue         int
	DurationMinutes int
}

// AddQuestOutput contains the created quest
type AddQuestOutput struct {
	Quest *entities.Quest
}

// ToggleQuestCompleteInput identifies the quest to flip
type ToggleQuestCompleteInput struct {
	ID string
}

// ToggleQuestCompleteOutput contains the flipped quest and the new user XP
type ToggleQuestCompleteOutput struct {
	Quest  *entities.Quest
	UserXP int
}

// DeleteQuestInput identifies the quest to remove
type DeleteQuestInput struct {
	ID string
}

// DeleteQuestOutput contains the removed quest and the new user XP
type DeleteQuestOutput struct {
	Quest  *entities.Quest
	UserXP int
}

// UpdateQuestInput carries the edited fields. Duration and completion are
// not editable.
type UpdateQuestInput struct {
	ID      string
	Title   string
	XPValue int
}

// UpdateQuestOutput contains the edited quest and the new user XP
type UpdateQuestOutput struct {
	Quest  *entities.Quest
	UserXP int
}

// StartEditQuestInput identifies the quest to open for editing
type StartEditQuestInput struct {
	ID string
}

// StartEditQuestOutput contains the quest now in the edit slot
type StartEditQuestOutput struct {
	Quest *entities.Quest
}

// CancelEditQuestOutput contains the result of closing the edit slot
type CancelEditQuestOutput struct{}

// RunRivalCycleOutput reports one rival update
type RunRivalCycleOutput struct {
	// Skipped is true when there were no incomplete quests or a cycle was
	// already in flight; the calculator was not called
	Skipped bool
	Gain    int
	RivalXP int
}
