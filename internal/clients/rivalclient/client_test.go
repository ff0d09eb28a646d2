package rivalclient_test

import (
	"context"
	"math"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pixel-xp/internal/clients/rivalclient"
	"github.com/KirkDiggler/pixel-xp/internal/entities"
	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/handlers/rival/v1alpha1"
	"github.com/KirkDiggler/pixel-xp/internal/rival"
	rivalmock "github.com/KirkDiggler/pixel-xp/internal/rival/mock"
)

// startServer serves calc over an in-memory listener and returns a connected client conn
func startServer(t *testing.T, calc rival.Calculator) *grpc.ClientConn {
	t.Helper()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{Calculator: calc})
	require.NoError(t, err)
	return serve(t, handler)
}

func serve(t *testing.T, handler v1alpha1.RivalServiceServer) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	v1alpha1.RegisterRivalServiceServer(srv, handler)

	go func() {
		_ = srv.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
	})
	return conn
}

func TestNew_Validation(t *testing.T) {
	_, err := rivalclient.New(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = rivalclient.New(&rivalclient.Config{})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestCalculate_MatchesLocalCalculator(t *testing.T) {
	conn := startServer(t, rival.NewLocalCalculator())

	calc, err := rivalclient.New(&rivalclient.Config{Conn: conn})
	require.NoError(t, err)

	input := &rival.CalculateInput{
		IncompleteQuests: []entities.IncompleteQuest{
			{XPValue: 100, DurationMinutes: 60, TimeRemainingMinutes: 30},
			{XPValue: 50, DurationMinutes: 60, TimeRemainingMinutes: 0},
			{XPValue: 80, DurationMinutes: 0, TimeRemainingMinutes: 10},
		},
	}

	output, err := calc.Calculate(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, rival.CalculateRivalXP(input.IncompleteQuests), output.RivalXPGain)
	assert.Equal(t, 180, output.RivalXPGain)
}

func TestCalculate_NilInput(t *testing.T) {
	conn := startServer(t, rival.NewLocalCalculator())

	calc, err := rivalclient.New(&rivalclient.Config{Conn: conn})
	require.NoError(t, err)

	output, err := calc.Calculate(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, output.RivalXPGain)
}

func TestCalculate_MapsServerErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCalc := rivalmock.NewMockCalculator(ctrl)
	mockCalc.EXPECT().
		Calculate(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("model offline").WithMeta("retry_after", "30s"))

	conn := startServer(t, mockCalc)
	calc, err := rivalclient.New(&rivalclient.Config{Conn: conn})
	require.NoError(t, err)

	_, err = calc.Calculate(context.Background(), &rival.CalculateInput{})
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
	assert.Equal(t, "30s", errors.GetMeta(err)["retry_after"])
}

func TestCalculate_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCalc := rivalmock.NewMockCalculator(ctrl)
	mockCalc.EXPECT().
		Calculate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *rival.CalculateInput) (*rival.CalculateOutput, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).
		AnyTimes()

	conn := startServer(t, mockCalc)
	calc, err := rivalclient.New(&rivalclient.Config{Conn: conn, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = calc.Calculate(context.Background(), &rival.CalculateInput{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeDeadlineExceeded, errors.GetCode(err))
}

// fixedGainServer answers every request with the same raw gain
type fixedGainServer struct {
	gain float64
}

func (f *fixedGainServer) CalculateRivalXp(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"rivalXpGain": f.gain})
}

func TestCalculate_RoundsFractionalGain(t *testing.T) {
	testCases := []struct {
		name     string
		gain     float64
		expected int
	}{
		{"whole", 12, 12},
		{"rounds down", 12.4, 12},
		{"half rounds up", 12.5, 13},
		{"beyond int range saturates", 1e300, math.MaxInt},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conn := serve(t, &fixedGainServer{gain: tc.gain})
			calc, err := rivalclient.New(&rivalclient.Config{Conn: conn})
			require.NoError(t, err)

			output, err := calc.Calculate(context.Background(), &rival.CalculateInput{})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, output.RivalXPGain)
		})
	}
}
