package kv

import (
	"context"
	"sync"
)

// memory implements Store using an in-memory map.
type memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore creates a new instance of Store backed by process memory.
func NewMemoryStore() Store {
	return &memory{
		entries: make(map[string][]byte),
	}
}

// Get retrieves the value stored under key.
func (s *memory) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	// Callers must not observe later overwrites through the returned slice.
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

// Set stores value under key, overwriting any previous value.
func (s *memory) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	s.entries[key] = cp
	return nil
}

// Delete removes the key.
func (s *memory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
