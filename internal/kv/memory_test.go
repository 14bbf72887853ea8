package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MemoryStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "cart-storage", []byte(`{"state":{"items":[]}}`)))
	value, err := store.Get(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"state":{"items":[]}}`), value)

	// Overwrite replaces the previous value in full.
	require.NoError(t, store.Set(ctx, "cart-storage", []byte("v2")))
	value, err = store.Get(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), value)

	require.NoError(t, store.Delete(ctx, "cart-storage"))
	_, err = store.Get(ctx, "cart-storage")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "cart-storage"))
}

func Test_MemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", original))
	original[0] = 'x'

	stored, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), stored)

	// Mutating a returned slice must not leak into the store.
	stored[0] = 'y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
