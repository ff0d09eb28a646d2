package battle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/repositories/battle"
	"github.com/KirkDiggler/pixel-xp/internal/repositories/kvstore"
)

func TestInspect(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name         string
		values       map[string]string
		wantHealthy  bool
		wantQuests   int
		wantProblems int
		wantQuestErr bool
	}{
		{
			name:        "nothing stored",
			wantHealthy: true,
		},
		{
			name: "valid state",
			values: map[string]string{
				battle.QuestsKey: `[{"id":"1","title":"Run","xpValue":50,"durationMinutes":60,"isComplete":false,"timestamp":1}]`,
				battle.UserXPKey: "10",
			},
			wantHealthy: true,
			wantQuests:  1,
		},
		{
			name: "corrupt quests",
			values: map[string]string{
				battle.QuestsKey: `[{`,
			},
			wantQuestErr: true,
		},
		{
			name: "invariant violations",
			values: map[string]string{
				battle.QuestsKey: `[{"id":"1","title":" ","xpValue":0,"durationMinutes":60},{"id":"1","title":"B","xpValue":5,"durationMinutes":0}]`,
				battle.UserXPKey: "5000",
			},
			wantQuests:   2,
			wantProblems: 5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := kvstore.NewInMemory()
			for k, v := range tc.values {
				_, err := store.Set(ctx, kvstore.SetInput{Key: k, Value: v})
				require.NoError(t, err)
			}

			report, err := battle.Inspect(ctx, store, 1000)
			require.NoError(t, err)

			assert.Equal(t, tc.wantHealthy, report.Healthy())
			assert.Equal(t, tc.wantQuests, report.QuestCount)
			assert.Len(t, report.Problems, tc.wantProblems)
			if tc.wantQuestErr {
				assert.True(t, errors.IsDataLoss(report.Quests.Err))
			}
		})
	}
}

func TestInspect_NilStore(t *testing.T) {
	_, err := battle.Inspect(context.Background(), nil, 1000)
	assert.True(t, errors.IsInvalidArgument(err))
}
