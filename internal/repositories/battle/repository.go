// Package battle persists the quest list and the user's XP
package battle

//go:generate mockgen -destination=mock/mock_repository.go -package=battlemock github.com/KirkDiggler/pixel-xp/internal/repositories/battle Repository

import (
	"context"

	"github.com/KirkDiggler/pixel-xp/internal/entities"
)

// LoadOutput contains the persisted state. Found is false when nothing has
// been saved yet; Quests is then empty and UserXP zero.
type LoadOutput struct {
	Quests []*entities.Quest
	UserXP int
	Found  bool
}

// SaveInput contains the state to persist. Rival XP is never stored.
type SaveInput struct {
	Quests []*entities.Quest
	UserXP int
}

// SaveOutput contains the result of a save
type SaveOutput struct{}

// Repository defines storage for battle state
type Repository interface {
	// Load reads quests and user XP
	Load(ctx context.Context) (*LoadOutput, error)

	// Save writes quests and user XP, replacing what was stored
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}
