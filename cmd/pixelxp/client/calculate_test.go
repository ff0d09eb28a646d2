package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/pixel-xp/internal/entities"
)

func TestParseQuestSpec(t *testing.T) {
	q, err := parseQuestSpec("100:60:30")
	require.NoError(t, err)
	assert.Equal(t, entities.IncompleteQuest{XPValue: 100, DurationMinutes: 60, TimeRemainingMinutes: 30}, q)

	for _, bad := range []string{"", "100:60", "a:60:30", "1:2:3:4"} {
		_, err := parseQuestSpec(bad)
		assert.Error(t, err, bad)
	}
}
