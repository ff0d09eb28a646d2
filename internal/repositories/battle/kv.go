package battle

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/KirkDiggler/pixel-xp/internal/entities"
	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/repositories/kvstore"
)

const (
	// QuestsKey holds a JSON array of quests
	QuestsKey = "pixelXpQuests"

	// UserXPKey holds the user's XP as a JSON number
	UserXPKey = "pixelXpUserXp"
)

// Config holds the configuration for the key-value repository
type Config struct {
	Store kvstore.Store
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Store == nil {
		return errors.InvalidArgument("store is required")
	}
	return nil
}

type kvRepository struct {
	store kvstore.Store
}

// NewKVRepository creates a Repository over a key-value store
func NewKVRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &kvRepository{store: cfg.Store}, nil
}

// Ensure kvRepository implements Repository
var _ Repository = (*kvRepository)(nil)

// Load reads both keys. Each key is optional on its own.
func (r *kvRepository) Load(ctx context.Context) (*LoadOutput, error) {
	output := &LoadOutput{Quests: []*entities.Quest{}}

	raw, found, err := r.get(ctx, QuestsKey)
	if err != nil {
		return nil, err
	}
	if found {
		quests, err := DecodeQuests(raw)
		if err != nil {
			return nil, err
		}
		output.Quests = quests
		output.Found = true
	}

	raw, found, err = r.get(ctx, UserXPKey)
	if err != nil {
		return nil, err
	}
	if found {
		xp, err := DecodeUserXP(raw)
		if err != nil {
			return nil, err
		}
		output.UserXP = xp
		output.Found = true
	}

	return output, nil
}

// Save writes quests first, then user XP
func (r *kvRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	quests := input.Quests
	if quests == nil {
		quests = []*entities.Quest{}
	}

	questsJSON, err := json.Marshal(quests)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal quests")
	}

	if _, err := r.store.Set(ctx, kvstore.SetInput{Key: QuestsKey, Value: string(questsJSON)}); err != nil {
		return nil, errors.Wrap(err, "failed to save quests")
	}

	if _, err := r.store.Set(ctx, kvstore.SetInput{Key: UserXPKey, Value: strconv.Itoa(input.UserXP)}); err != nil {
		return nil, errors.Wrap(err, "failed to save user xp")
	}

	return &SaveOutput{}, nil
}

func (r *kvRepository) get(ctx context.Context, key string) (string, bool, error) {
	output, err := r.store.Get(ctx, kvstore.GetInput{Key: key})
	if err != nil {
		if errors.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "failed to read %s", key)
	}
	return output.Value, true, nil
}

// DecodeQuests parses the stored quest array
func DecodeQuests(raw string) ([]*entities.Quest, error) {
	var quests []*entities.Quest
	if err := json.Unmarshal([]byte(raw), &quests); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "stored quests are corrupt").
			WithMeta("key", QuestsKey)
	}
	if quests == nil {
		quests = []*entities.Quest{}
	}
	for i, q := range quests {
		if q == nil {
			return nil, errors.DataLossf("stored quest at index %d is null", i).WithMeta("key", QuestsKey)
		}
	}
	return quests, nil
}

// DecodeUserXP parses the stored XP number. Fractional values written by
// older builds are truncated.
func DecodeUserXP(raw string) (int, error) {
	var xp float64
	if err := json.Unmarshal([]byte(raw), &xp); err != nil {
		return 0, errors.WrapWithCode(err, errors.CodeDataLoss, "stored user xp is corrupt").
			WithMeta("key", UserXPKey)
	}
	return int(xp), nil
}
