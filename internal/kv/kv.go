// Package kv provides a small key-value storage abstraction used for
// durable client state such as the persisted shopping cart.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested key does not exist.
var ErrNotFound = errors.New("key not found")

// Store is an interface for key-value storage operations.
// It abstracts the underlying backend, allowing for different
// implementations (in-memory, redis, postgres).
type Store interface {
	// Get retrieves the value stored under key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, overwriting any previous value in full.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
