package v1alpha1_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pixel-xp/internal/entities"
	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/handlers/rival/v1alpha1"
	"github.com/KirkDiggler/pixel-xp/internal/rival"
	rivalmock "github.com/KirkDiggler/pixel-xp/internal/rival/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockCalculator *rivalmock.MockCalculator
	handler        *v1alpha1.Handler
	ctx            context.Context
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCalculator = rivalmock.NewMockCalculator(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		Calculator: s.mockCalculator,
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) mustStruct(m map[string]any) *structpb.Struct {
	body, err := structpb.NewStruct(m)
	s.Require().NoError(err)
	return body
}

func (s *HandlerTestSuite) TestNewHandlerRequiresCalculator() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestCalculateRivalXp_Success() {
	req := s.mustStruct(map[string]any{
		"incompleteQuests": []any{
			map[string]any{"xpValue": 100, "durationMinutes": 60, "timeRemainingMinutes": 30},
		},
	})

	s.mockCalculator.EXPECT().
		Calculate(s.ctx, &rival.CalculateInput{
			IncompleteQuests: []entities.IncompleteQuest{
				{XPValue: 100, DurationMinutes: 60, TimeRemainingMinutes: 30},
			},
		}).
		Return(&rival.CalculateOutput{RivalXPGain: 50}, nil)

	resp, err := s.handler.CalculateRivalXp(s.ctx, req)
	s.Require().NoError(err)
	s.Equal(float64(50), resp.GetFields()["rivalXpGain"].GetNumberValue())
}

func (s *HandlerTestSuite) TestCalculateRivalXp_EmptyBody() {
	s.mockCalculator.EXPECT().
		Calculate(s.ctx, &rival.CalculateInput{}).
		Return(&rival.CalculateOutput{RivalXPGain: 0}, nil)

	resp, err := s.handler.CalculateRivalXp(s.ctx, &structpb.Struct{})
	s.Require().NoError(err)
	s.Equal(float64(0), resp.GetFields()["rivalXpGain"].GetNumberValue())
}

func (s *HandlerTestSuite) TestCalculateRivalXp_MalformedBody() {
	testCases := []struct {
		name string
		body map[string]any
	}{
		{
			name: "wrong type",
			body: map[string]any{"incompleteQuests": "lots"},
		},
		{
			name: "unknown field",
			body: map[string]any{"quests": []any{}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.CalculateRivalXp(s.ctx, s.mustStruct(tc.body))
			s.Equal(codes.InvalidArgument, status.Code(err))
		})
	}
}

func (s *HandlerTestSuite) TestCalculateRivalXp_NilRequest() {
	_, err := s.handler.CalculateRivalXp(s.ctx, nil)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestCalculateRivalXp_CalculatorError() {
	s.mockCalculator.EXPECT().
		Calculate(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("model offline"))

	_, err := s.handler.CalculateRivalXp(s.ctx, &structpb.Struct{})
	s.Equal(codes.Unavailable, status.Code(err))
}

func (s *HandlerTestSuite) TestCalculateRivalXp_Cancelled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	s.mockCalculator.EXPECT().
		Calculate(gomock.Any(), gomock.Any()).
		Return(nil, context.Canceled)

	_, err := s.handler.CalculateRivalXp(ctx, &structpb.Struct{})
	s.Equal(codes.Canceled, status.Code(err))
}
