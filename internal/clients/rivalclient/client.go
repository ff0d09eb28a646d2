// Package rivalclient calls a remote rival service
package rivalclient

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/pixel-xp/internal/entities"
	"github.com/KirkDiggler/pixel-xp/internal/errors"
	"github.com/KirkDiggler/pixel-xp/internal/handlers/rival/v1alpha1"
	"github.com/KirkDiggler/pixel-xp/internal/rival"
)

// DefaultTimeout bounds a single remote calculation
const DefaultTimeout = 5 * time.Second

// Config holds the configuration for the remote calculator
type Config struct {
	Conn grpc.ClientConnInterface

	// Timeout bounds each call, DefaultTimeout when zero
	Timeout time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Conn == nil {
		vb.RequiredField("Conn")
	}
	if c.Timeout < 0 {
		vb.Field("Timeout", "must not be negative")
	}
	return vb.Build()
}

type client struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

// New creates a Calculator backed by the rival service
func New(cfg *Config) (rival.Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &client{conn: cfg.Conn, timeout: timeout}, nil
}

// Dial opens an insecure connection to a rival server
func Dial(address string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to connect to rival service").
			WithMeta("address", address)
	}
	return conn, nil
}

// Calculate implements rival.Calculator
func (c *client) Calculate(ctx context.Context, input *rival.CalculateInput) (*rival.CalculateOutput, error) {
	// the wire shape always carries an array
	if input == nil || input.IncompleteQuests == nil {
		input = &rival.CalculateInput{IncompleteQuests: []entities.IncompleteQuest{}}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := v1alpha1.MarshalBody(input)
	if err != nil {
		return nil, err
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, v1alpha1.CalculateRivalXpMethod, req, resp); err != nil {
		return nil, errors.Wrap(errors.FromGRPCError(err), "rival service call failed")
	}

	// the wire carries a JSON number, which need not be whole
	var body struct {
		RivalXPGain float64 `json:"rivalXpGain"`
	}
	if err := v1alpha1.UnmarshalBody(resp, &body); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "unexpected rival service response")
	}
	return &rival.CalculateOutput{RivalXPGain: rival.RoundXP(body.RivalXPGain)}, nil
}
