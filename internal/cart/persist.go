package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/cihad/fakestore/internal/kv"
)

// persistedState is the durable wire shape of the cart snapshot:
// {"state":{"items":[{"product":…,"quantity":n}]}}.
type persistedState struct {
	State struct {
		Items []Item `json:"items"`
	} `json:"state"`
}

// Bridge keeps a cart store and a durable key-value entry eventually
// consistent: it seeds the store from storage once at startup and writes the
// full snapshot back after every mutation.
type Bridge struct {
	storage kv.Store
	key     string
	logger  *slog.Logger
}

// NewBridge creates a persistence bridge writing under the given key.
func NewBridge(storage kv.Store, key string, logger *slog.Logger) *Bridge {
	return &Bridge{
		storage: storage,
		key:     key,
		logger:  logger.With("component", "cart_persistence"),
	}
}

// Load reads the durable key once and seeds the store via SetItems.
// A missing key leaves the store untouched; a corrupt value is logged and
// likewise leaves the store at its default empty state. Load never fails
// startup.
func (b *Bridge) Load(ctx context.Context, store *Store) {
	data, err := b.storage.Get(ctx, b.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			b.logger.WarnContext(ctx, "Failed to read persisted cart", "key", b.key, "error", err)
		}
		return
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		b.logger.WarnContext(ctx, "Failed to parse persisted cart, starting empty", "key", b.key, "error", err)
		return
	}
	store.SetItems(state.State.Items)
}

// Attach subscribes to the store so that every mutation synchronously
// serializes the full item list and overwrites the durable key. Writes are
// fire-and-forget: a failure is logged and swallowed, never surfaced.
func (b *Bridge) Attach(store *Store) {
	store.OnChange(func(items []Item) {
		var state persistedState
		state.State.Items = items

		data, err := json.Marshal(state)
		if err != nil {
			b.logger.Error("Failed to serialize cart snapshot", "key", b.key, "error", err)
			return
		}
		if err := b.storage.Set(context.Background(), b.key, data); err != nil {
			b.logger.Error("Failed to persist cart snapshot", "key", b.key, "error", err)
		}
	})
}
