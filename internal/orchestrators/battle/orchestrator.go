// Package battle implements the battle state engine: the quest list, both XP
// counters, the edit slot and the recurring rival update.
package battle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/pixel-xp/internal/entities"
	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/notify"
	"github.com/KirkDiggler/pixel-xp/internal/pkg/clock"
	"github.com/KirkDiggler/pixel-xp/internal/pkg/idgen"
	"github.com/KirkDiggler/pixel-xp/internal/pkg/schedule"
	battlerepo "github.com/KirkDiggler/pixel-xp/internal/repositories/battle"
	"github.com/KirkDiggler/pixel-xp/internal/rival"
)

const (
	// DefaultRivalInterval is how often the rival is updated while running
	DefaultRivalInterval = 10 * time.Second
)

// Notice texts shown to the user
const (
	msgTitleEmpty       = "Quest title cannot be empty."
	msgXPNotPositive    = "XP value must be positive."
	msgDurationNotValid = "Duration must be positive."
	msgNotFoundDelete   = "Quest not found for deletion."
	msgNotFoundEdit     = "Quest not found for editing."
	msgNotFoundUpdate   = "Quest not found for update."
)

// Service defines the battle engine operations
type Service interface {
	// Load restores quests and user XP from storage and starts a new session
	Load(ctx context.Context) (*LoadOutput, error)

	// Quest management
	AddQuest(ctx context.Context, input *AddQuestInput) (*AddQuestOutput, error)
	ToggleQuestComplete(ctx context.Context, input *ToggleQuestCompleteInput) (*ToggleQuestCompleteOutput, error)
	DeleteQuest(ctx context.Context, input *DeleteQuestInput) (*DeleteQuestOutput, error)
	UpdateQuest(ctx context.Context, input *UpdateQuestInput) (*UpdateQuestOutput, error)

	// Edit slot
	StartEditQuest(ctx context.Context, input *StartEditQuestInput) (*StartEditQuestOutput, error)
	CancelEditQuest(ctx context.Context) (*CancelEditQuestOutput, error)

	// State returns a snapshot safe to read without further locking
	State(ctx context.Context) *entities.BattleState

	// Rival updates
	RunRivalCycle(ctx context.Context) (*RunRivalCycleOutput, error)
	Start(ctx context.Context) error
	Stop()
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	Repository  battlerepo.Repository
	Calculator  rival.Calculator
	Notifier    notify.Sink
	Clock       clock.Clock
	IDGenerator idgen.Generator

	// MaxXP caps both counters, DefaultMaxXP when zero
	MaxXP int

	// RivalInterval is the rival update period, DefaultRivalInterval when zero
	RivalInterval time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Calculator == nil {
		vb.RequiredField("Calculator")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.MaxXP < 0 {
		vb.Field("MaxXP", "must not be negative")
	}
	if c.RivalInterval < 0 {
		vb.Field("RivalInterval", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	repo       battlerepo.Repository
	calculator rival.Calculator
	notifier   notify.Sink
	clock      clock.Clock
	idGen      idgen.Generator
	maxXP      int
	task       *schedule.Task

	mu        sync.Mutex
	quests    []*entities.Quest
	userXP    int
	rivalXP   int
	busy      bool
	editingID string
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	maxXP := cfg.MaxXP
	if maxXP == 0 {
		maxXP = entities.DefaultMaxXP
	}
	interval := cfg.RivalInterval
	if interval == 0 {
		interval = DefaultRivalInterval
	}

	o := &orchestrator{
		repo:       cfg.Repository,
		calculator: cfg.Calculator,
		notifier:   cfg.Notifier,
		clock:      cfg.Clock,
		idGen:      cfg.IDGenerator,
		maxXP:      maxXP,
		quests:     []*entities.Quest{},
	}

	task, err := schedule.New(interval, func(ctx context.Context) {
		// failures are already surfaced as notices
		_, _ = o.RunRivalCycle(ctx)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create rival schedule")
	}
	o.task = task

	return o, nil
}

func (o *orchestrator) Load(ctx context.Context) (*LoadOutput, error) {
	output, err := o.repo.Load(ctx)

	o.mu.Lock()
	o.rivalXP = 0
	o.editingID = ""
	if err != nil {
		o.quests = []*entities.Quest{}
		o.userXP = 0
		o.mu.Unlock()

		slog.Error("Failed to load battle state", "error", err)
		o.notify(ctx, notify.Destructive("Load Error", "Could not load saved progress."))
		return &LoadOutput{State: o.State(ctx)}, nil
	}

	o.quests = entities.CloneQuests(output.Quests)
	o.userXP = entities.ClampXP(output.UserXP, o.maxXP)
	if o.userXP != output.UserXP {
		slog.Warn("Stored user XP out of range, clamped",
			"stored", output.UserXP,
			"clamped", o.userXP,
			"max_xp", o.maxXP)
	}
	o.mu.Unlock()

	slog.Debug("Loaded battle state",
		"found", output.Found,
		"quests", len(output.Quests),
		"user_xp", output.UserXP)

	return &LoadOutput{Restored: output.Found, State: o.State(ctx)}, nil
}

func (o *orchestrator) AddQuest(ctx context.Context, input *AddQuestInput) (*AddQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, o.reject(ctx, msgTitleEmpty, errors.InvalidArgument("title is required"))
	}
	if input.XPValue <= 0 {
		return nil, o.reject(ctx, msgXPNotPositive,
			errors.InvalidArgumentf("xp value must be positive, got %d", input.XPValue))
	}
	duration := input.DurationMinutes
	if duration == 0 {
		duration = entities.DefaultDurationMinutes
	}
	if duration < 0 {
		return nil, o.reject(ctx, msgDurationNotValid,
			errors.InvalidArgumentf("duration must be positive, got %d", duration))
	}

	quest := &entities.Quest{
		ID:              o.idGen.Generate(),
		Title:           title,
		XPValue:         input.XPValue,
		DurationMinutes: duration,
		Timestamp:       clock.UnixMilli(o.clock),
	}

	o.mu.Lock()
	o.quests = append(o.quests, quest)
	saveErr := o.persistLocked(ctx)
	o.mu.Unlock()

	o.notify(ctx, notify.Info("Quest Added!", fmt.Sprintf(`"%s" is now on your list.`, title)))
	o.notifySaveError(ctx, saveErr)

	return &AddQuestOutput{Quest: quest.Clone()}, nil
}

func (o *orchestrator) ToggleQuestComplete(ctx context.Context, input *ToggleQuestCompleteInput) (*ToggleQuestCompleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	quest := o.findLocked(input.ID)
	if quest == nil {
		o.mu.Unlock()
		slog.Warn("Quest not found for toggling", "quest_id", input.ID)
		return nil, errors.NotFoundf("quest %s not found", input.ID).WithMeta("quest_id", input.ID)
	}

	quest.IsComplete = !quest.IsComplete
	var notice notify.Notice
	if quest.IsComplete {
		o.userXP = entities.AddXP(o.userXP, quest.XPValue, o.maxXP)
		notice = notify.Info("Quest Complete!", fmt.Sprintf("+%d XP! Great job!", quest.XPValue))
	} else {
		o.userXP = entities.AddXP(o.userXP, -quest.XPValue, o.maxXP)
		notice = notify.Info("Quest Reopened", fmt.Sprintf(`"%s" is now pending.`, quest.Title))
	}
	output := &ToggleQuestCompleteOutput{Quest: quest.Clone(), UserXP: o.userXP}
	saveErr := o.persistLocked(ctx)
	o.mu.Unlock()

	o.notify(ctx, notice)
	o.notifySaveError(ctx, saveErr)

	return output, nil
}

func (o *orchestrator) DeleteQuest(ctx context.Context, input *DeleteQuestInput) (*DeleteQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	idx := o.indexLocked(input.ID)
	if idx < 0 {
		o.mu.Unlock()
		return nil, o.reject(ctx, msgNotFoundDelete,
			errors.NotFoundf("quest %s not found", input.ID).WithMeta("quest_id", input.ID))
	}

	quest := o.quests[idx]
	o.quests = append(o.quests[:idx:idx], o.quests[idx+1:]...)
	if quest.IsComplete {
		o.userXP = entities.AddXP(o.userXP, -quest.XPValue, o.maxXP)
	}
	if o.editingID == quest.ID {
		o.editingID = ""
	}
	output := &DeleteQuestOutput{Quest: quest.Clone(), UserXP: o.userXP}
	saveErr := o.persistLocked(ctx)
	o.mu.Unlock()

	o.notify(ctx, notify.Info("Quest Deleted", fmt.Sprintf(`"%s" has been removed.`, quest.Title)))
	o.notifySaveError(ctx, saveErr)

	return output, nil
}

func (o *orchestrator) UpdateQuest(ctx context.Context, input *UpdateQuestInput) (*UpdateQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	quest := o.findLocked(input.ID)
	if quest == nil {
		o.editingID = ""
		o.mu.Unlock()
		return nil, o.reject(ctx, msgNotFoundUpdate,
			errors.NotFoundf("quest %s not found", input.ID).WithMeta("quest_id", input.ID))
	}

	// validation failures leave the edit slot open so the user can fix the input
	title := strings.TrimSpace(input.Title)
	if title == "" {
		o.mu.Unlock()
		return nil, o.reject(ctx, msgTitleEmpty, errors.InvalidArgument("title is required"))
	}
	if input.XPValue <= 0 {
		o.mu.Unlock()
		return nil, o.reject(ctx, msgXPNotPositive,
			errors.InvalidArgumentf("xp value must be positive, got %d", input.XPValue))
	}

	oldXP := quest.XPValue
	quest.Title = title
	quest.XPValue = input.XPValue
	if quest.IsComplete {
		o.userXP = entities.AddXP(o.userXP, input.XPValue-oldXP, o.maxXP)
	}
	o.editingID = ""
	output := &UpdateQuestOutput{Quest: quest.Clone(), UserXP: o.userXP}
	saveErr := o.persistLocked(ctx)
	o.mu.Unlock()

	o.notify(ctx, notify.Info("Quest Updated!", fmt.Sprintf(`"%s" has been modified.`, title)))
	o.notifySaveError(ctx, saveErr)

	return output, nil
}

func (o *orchestrator) StartEditQuest(ctx context.Context, input *StartEditQuestInput) (*StartEditQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	quest := o.findLocked(input.ID)
	if quest == nil {
		o.mu.Unlock()
		return nil, o.reject(ctx, msgNotFoundEdit,
			errors.NotFoundf("quest %s not found", input.ID).WithMeta("quest_id", input.ID))
	}
	o.editingID = quest.ID
	output := &StartEditQuestOutput{Quest: quest.Clone()}
	o.mu.Unlock()

	return output, nil
}

func (o *orchestrator) CancelEditQuest(_ context.Context) (*CancelEditQuestOutput, error) {
	o.mu.Lock()
	o.editingID = ""
	o.mu.Unlock()

	return &CancelEditQuestOutput{}, nil
}

func (o *orchestrator) State(_ context.Context) *entities.BattleState {
	o.mu.Lock()
	defer o.mu.Unlock()

	return &entities.BattleState{
		Quests:         entities.CloneQuests(o.quests),
		UserXP:         o.userXP,
		RivalXP:        o.rivalXP,
		MaxXP:          o.maxXP,
		Busy:           o.busy,
		EditingQuestID: o.editingID,
	}
}

// RunRivalCycle projects the incomplete quests, asks the calculator for the
// rival's gain and applies it. The state lock is not held while the
// calculator runs, so quest edits made meanwhile feed the next cycle.
func (o *orchestrator) RunRivalCycle(ctx context.Context) (*RunRivalCycleOutput, error) {
	o.mu.Lock()
	if o.busy {
		rivalXP := o.rivalXP
		o.mu.Unlock()
		slog.Debug("Rival update already in flight, skipping")
		return &RunRivalCycleOutput{Skipped: true, RivalXP: rivalXP}, nil
	}

	now := o.clock.Now()
	projection := make([]entities.IncompleteQuest, 0, len(o.quests))
	for _, q := range o.quests {
		if !q.IsComplete {
			projection = append(projection, q.Projection(now))
		}
	}
	if len(projection) == 0 {
		rivalXP := o.rivalXP
		o.mu.Unlock()
		return &RunRivalCycleOutput{Skipped: true, RivalXP: rivalXP}, nil
	}
	o.busy = true
	o.mu.Unlock()

	result, err := o.calculate(ctx, projection)

	o.mu.Lock()
	o.busy = false
	if err != nil {
		o.mu.Unlock()
		if ctx.Err() != nil {
			return nil, errors.Wrap(err, "rival update cancelled")
		}
		slog.Error("Failed to calculate rival XP",
			"error", err,
			"incomplete_quests", len(projection))
		o.notify(ctx, notify.Destructive("AI Error", "Could not update Rival XP."))
		return nil, errors.Wrap(err, "failed to calculate rival xp")
	}

	o.rivalXP = entities.AddXP(o.rivalXP, result.RivalXPGain, o.maxXP)
	output := &RunRivalCycleOutput{Gain: result.RivalXPGain, RivalXP: o.rivalXP}
	saveErr := o.persistLocked(ctx)
	o.mu.Unlock()

	slog.Debug("Rival XP updated",
		"gain", result.RivalXPGain,
		"rival_xp", output.RivalXP,
		"incomplete_quests", len(projection))
	o.notifySaveError(ctx, saveErr)

	return output, nil
}

// calculate calls the calculator, turning a panic or an empty result into
// an Internal error so the busy flag is always released.
func (o *orchestrator) calculate(ctx context.Context, projection []entities.IncompleteQuest) (result *rival.CalculateOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errors.Internalf("rival calculator panicked: %v", r)
		}
	}()

	result, err = o.calculator.Calculate(ctx, &rival.CalculateInput{IncompleteQuests: projection})
	if err == nil && result == nil {
		return nil, errors.Internal("rival calculator returned no result")
	}
	return result, err
}

func (o *orchestrator) Start(ctx context.Context) error {
	if err := o.task.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start rival updates")
	}
	return nil
}

func (o *orchestrator) Stop() {
	o.task.Stop()
}

func (o *orchestrator) findLocked(id string) *entities.Quest {
	if idx := o.indexLocked(id); idx >= 0 {
		return o.quests[idx]
	}
	return nil
}

func (o *orchestrator) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, q := range o.quests {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes quests and user XP. The caller holds o.mu so saves
// land in mutation order.
func (o *orchestrator) persistLocked(ctx context.Context) error {
	_, err := o.repo.Save(ctx, battlerepo.SaveInput{
		Quests: entities.CloneQuests(o.quests),
		UserXP: o.userXP,
	})
	if err != nil {
		slog.Error("Failed to save battle state", "error", err)
		return err
	}
	return nil
}

func (o *orchestrator) notifySaveError(ctx context.Context, err error) {
	if err != nil {
		o.notify(ctx, notify.Destructive("Save Error", "Could not save progress."))
	}
}

// reject emits a destructive notice and returns err for the caller
func (o *orchestrator) reject(ctx context.Context, description string, err *errors.Error) error {
	o.notify(ctx, notify.Destructive("Error", description))
	return err
}

func (o *orchestrator) notify(ctx context.Context, notice notify.Notice) {
	o.notifier.Notify(ctx, notice)
}
