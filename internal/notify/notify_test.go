package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/notify"
	notifymock "github.com/KirkDiggler/pixel-xp/internal/notify/mock"
	"github.com/KirkDiggler/pixel-xp/internal/testutils"
)

func TestRecorder(t *testing.T) {
	rec := notify.NewRecorder()
	ctx := context.Background()

	assert.Empty(t, rec.Drain())

	rec.Notify(ctx, notify.Info("Quest Added!", `"Run" is now on your list.`))
	rec.Notify(ctx, notify.Destructive("Error", "XP value must be positive."))

	notices := rec.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, notify.SeverityInfo, notices[0].Severity)

	drained := rec.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, notify.SeverityDestructive, drained[1].Severity)
	assert.Empty(t, rec.Notices())

	rec.Notify(ctx, notify.Destructive("Save Error", "Could not save progress."))
	assert.Equal(t, []notify.Notice{notify.Destructive("Save Error", "Could not save progress.")}, rec.Drain())
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	notify.NewLogSink(logger).Notify(context.Background(), notify.Destructive("Save Error", "Could not save progress."))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "Save Error", entry["msg"])
	assert.Equal(t, "Could not save progress.", entry["description"])
}

func TestMulti(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	notice := notify.Info("Quest Deleted", `"Run" has been removed.`)

	first := notifymock.NewMockSink(ctrl)
	second := notifymock.NewMockSink(ctrl)
	gomock.InOrder(
		first.EXPECT().Notify(ctx, notice),
		second.EXPECT().Notify(ctx, notice),
	)

	notify.Multi{first, nil, second}.Notify(ctx, notice)
}

func TestNewRedisSink_Validation(t *testing.T) {
	_, err := notify.NewRedisSink(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = notify.NewRedisSink(&notify.RedisConfig{})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRedisSink_PublishesJSON(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClient(t)
	defer cleanup()

	ctx := context.Background()
	sub := client.Subscribe(ctx, notify.DefaultChannel)
	defer func() { _ = sub.Close() }()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	sink, err := notify.NewRedisSink(&notify.RedisConfig{Client: client})
	require.NoError(t, err)

	sink.Notify(ctx, notify.Info("Quest Complete!", "+50 XP! Great job!"))

	select {
	case msg := <-sub.Channel():
		var got notify.Notice
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, notify.Info("Quest Complete!", "+50 XP! Great job!"), got)
	case <-time.After(2 * time.Second):
		t.Fatal("notice was not published")
	}
}
