package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/cihad/fakestore/internal/catalog"
	"github.com/cihad/fakestore/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "cart-storage"

// failingStore is a kv.Store whose writes and reads always fail.
type failingStore struct{}

func (failingStore) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, errors.New("storage unavailable")
}

func (failingStore) Set(_ context.Context, _ string, _ []byte) error {
	return errors.New("storage unavailable")
}

func (failingStore) Delete(_ context.Context, _ string) error {
	return errors.New("storage unavailable")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_Bridge_Load(t *testing.T) {
	testCases := []struct {
		name          string
		persisted     string
		expectedItems []Item
	}{
		{
			name:          "valid snapshot seeds the store",
			persisted:     `{"state":{"items":[{"product":{"id":1,"title":"Backpack","price":109.95},"quantity":2}]}}`,
			expectedItems: []Item{{Product: catalog.Product{ID: 1, Title: "Backpack", Price: 109.95}, Quantity: 2}},
		},
		{
			name:          "corrupt snapshot leaves the store empty",
			persisted:     "not-json",
			expectedItems: nil,
		},
		{
			name:          "empty snapshot leaves the store empty",
			persisted:     `{"state":{"items":[]}}`,
			expectedItems: []Item{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storage := kv.NewMemoryStore()
			require.NoError(t, storage.Set(context.Background(), testKey, []byte(tc.persisted)))

			store := NewStore()
			bridge := NewBridge(storage, testKey, discardLogger())
			bridge.Load(context.Background(), store)

			if tc.expectedItems == nil {
				assert.Empty(t, store.Items())
			} else {
				assert.Equal(t, tc.expectedItems, store.Items())
			}
		})
	}
}

func Test_Bridge_Load_MissingKey(t *testing.T) {
	store := NewStore()
	bridge := NewBridge(kv.NewMemoryStore(), testKey, discardLogger())
	bridge.Load(context.Background(), store)

	assert.Empty(t, store.Items())
}

func Test_Bridge_Load_StorageFailure(t *testing.T) {
	store := NewStore()
	bridge := NewBridge(failingStore{}, testKey, discardLogger())

	// A failing backend must never crash startup.
	bridge.Load(context.Background(), store)
	assert.Empty(t, store.Items())
}

func Test_Bridge_WritesSnapshotOnEveryMutation(t *testing.T) {
	storage := kv.NewMemoryStore()
	store := NewStore()
	bridge := NewBridge(storage, testKey, discardLogger())
	bridge.Attach(store)

	store.AddItem(p1)
	store.AddItem(p1)
	store.AddItem(p2)

	data, err := storage.Get(context.Background(), testKey)
	require.NoError(t, err)

	var state persistedState
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, []Item{{Product: p1, Quantity: 2}, {Product: p2, Quantity: 1}}, state.State.Items)
}

func Test_Bridge_RoundTrip(t *testing.T) {
	storage := kv.NewMemoryStore()

	original := NewStore()
	NewBridge(storage, testKey, discardLogger()).Attach(original)
	original.AddItem(p1)
	original.AddItem(p2)
	original.AddItem(p1)
	original.UpdateQuantity(p2.ID, 3)

	// A fresh store seeded from the same key reproduces items, quantities and order.
	restored := NewStore()
	NewBridge(storage, testKey, discardLogger()).Load(context.Background(), restored)

	assert.Equal(t, original.Items(), restored.Items())
	assert.Equal(t, original.TotalItemCount(), restored.TotalItemCount())
	assert.InDelta(t, original.TotalPrice(), restored.TotalPrice(), 1e-9)
}

func Test_Bridge_WriteFailureIsSwallowed(t *testing.T) {
	store := NewStore()
	bridge := NewBridge(failingStore{}, testKey, discardLogger())
	bridge.Attach(store)

	// The mutation itself must succeed even though persistence fails.
	store.AddItem(p1)
	assert.Equal(t, 1, store.TotalItemCount())
}
