package kvstore

import (
	"context"
	"sync"

	"github.com/KirkDiggler/pixel-xp/internal/errors"
)

const errKeyEmpty = "key cannot be empty"

// InMemoryStore implements Store using a map
type InMemoryStore struct {
	mu    sync.RWMutex
	store map[string]string
}

// NewInMemory creates a new in-memory store
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		store: make(map[string]string),
	}
}

// Get retrieves a value by key
func (s *InMemoryStore) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.store[input.Key]
	if !exists {
		return nil, errors.NotFound("key not found").WithMeta("key", input.Key)
	}

	return &GetOutput{Value: value}, nil
}

// Set stores a value
func (s *InMemoryStore) Set(_ context.Context, input SetInput) (*SetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[input.Key] = input.Value

	return &SetOutput{}, nil
}
