// Package v1alpha1 serves the rival calculator over grpc
package v1alpha1

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/rival"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	Calculator rival.Calculator
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Calculator == nil {
		return errors.InvalidArgument("calculator is required")
	}
	return nil
}

// Handler implements RivalServiceServer
type Handler struct {
	calculator rival.Calculator
}

var _ RivalServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		calculator: cfg.Calculator,
	}, nil
}

// CalculateRivalXp decodes incomplete quests and returns the rival's gain
func (h *Handler) CalculateRivalXp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("request is required"))
	}

	input := &rival.CalculateInput{}
	if err := UnmarshalBody(req, input); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.calculator.Calculate(ctx, input)
	if err != nil {
		if ctx.Err() != nil {
			return nil, status.FromContextError(ctx.Err()).Err()
		}
		slog.Error("Failed to calculate rival XP",
			"error", err,
			"incomplete_quests", len(input.IncompleteQuests))
		return nil, errors.ToGRPCError(err)
	}

	resp, err := MarshalBody(output)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}
