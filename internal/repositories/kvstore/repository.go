// Package kvstore provides the key-value blob store battle state is persisted to
package kvstore

//go:generate mockgen -destination=mock/mock_store.go -package=kvstoremock github.com/KirkDiggler/pixel-xp/internal/repositories/kvstore Store

import (
	"context"
)

// GetInput contains parameters for reading a key
type GetInput struct {
	Key string
}

// GetOutput contains the stored value
type GetOutput struct {
	Value string
}

// SetInput contains parameters for writing a key
type SetInput struct {
	Key   string
	Value string
}

// SetOutput contains the result of writing a key
type SetOutput struct{}

// Store is a flat string key-value store with last-writer-wins semantics
type Store interface {
	// Get returns the value for a key, or a NotFound error when it is absent
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Set stores a value, replacing any previous one
	Set(ctx context.Context, input SetInput) (*SetOutput, error)
}
