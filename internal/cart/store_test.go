package cart

import (
	"testing"

	"github.com/cihad/fakestore/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	p1 = catalog.Product{ID: 1, Title: "Backpack", Price: 109.95, Category: "men's clothing"}
	p2 = catalog.Product{ID: 2, Title: "T-Shirt", Price: 22.3, Category: "men's clothing"}
	p3 = catalog.Product{ID: 3, Title: "Jacket", Price: 55.99, Category: "men's clothing"}
)

func Test_Store_AddItem(t *testing.T) {
	testCases := []struct {
		name          string
		adds          []catalog.Product
		expectedItems []Item
	}{
		{
			name:          "single add creates item with quantity 1",
			adds:          []catalog.Product{p1},
			expectedItems: []Item{{Product: p1, Quantity: 1}},
		},
		{
			name:          "repeated adds of same product increment quantity",
			adds:          []catalog.Product{p1, p1, p1},
			expectedItems: []Item{{Product: p1, Quantity: 3}},
		},
		{
			name:          "distinct products keep insertion order",
			adds:          []catalog.Product{p1, p2, p3},
			expectedItems: []Item{{Product: p1, Quantity: 1}, {Product: p2, Quantity: 1}, {Product: p3, Quantity: 1}},
		},
		{
			name:          "re-adding an earlier product does not move it",
			adds:          []catalog.Product{p1, p2, p1},
			expectedItems: []Item{{Product: p1, Quantity: 2}, {Product: p2, Quantity: 1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore()
			for _, p := range tc.adds {
				store.AddItem(p)
			}
			assert.Equal(t, tc.expectedItems, store.Items())
		})
	}
}

func Test_Store_AddItem_RetainsStoredProduct(t *testing.T) {
	store := NewStore()
	store.AddItem(p1)

	// A later add with the same ID but different payload must not overwrite
	// the originally stored product data.
	changed := p1
	changed.Title = "Renamed"
	changed.Price = 1.0
	store.AddItem(changed)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, p1, items[0].Product)
	assert.Equal(t, 2, items[0].Quantity)
}

func Test_Store_RemoveItem(t *testing.T) {
	store := NewStore()
	store.AddItem(p1)
	store.AddItem(p2)

	store.RemoveItem(p1.ID)
	assert.Equal(t, []Item{{Product: p2, Quantity: 1}}, store.Items())

	// Removing an absent item is a no-op, not an error.
	store.RemoveItem(999)
	assert.Equal(t, []Item{{Product: p2, Quantity: 1}}, store.Items())
}

func Test_Store_UpdateQuantity(t *testing.T) {
	testCases := []struct {
		name          string
		productID     int64
		quantity      int
		expectedItems []Item
	}{
		{
			name:          "absolute set, not delta",
			productID:     p1.ID,
			quantity:      5,
			expectedItems: []Item{{Product: p1, Quantity: 5}, {Product: p2, Quantity: 1}},
		},
		{
			name:          "zero quantity removes the item",
			productID:     p1.ID,
			quantity:      0,
			expectedItems: []Item{{Product: p2, Quantity: 1}},
		},
		{
			name:          "negative quantity removes the item",
			productID:     p1.ID,
			quantity:      -3,
			expectedItems: []Item{{Product: p2, Quantity: 1}},
		},
		{
			name:          "unknown product is a no-op",
			productID:     999,
			quantity:      5,
			expectedItems: []Item{{Product: p1, Quantity: 2}, {Product: p2, Quantity: 1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore()
			store.AddItem(p1)
			store.AddItem(p1)
			store.AddItem(p2)

			store.UpdateQuantity(tc.productID, tc.quantity)
			assert.Equal(t, tc.expectedItems, store.Items())
		})
	}
}

func Test_Store_UpdateQuantityZero_EquivalentToRemove(t *testing.T) {
	removed := NewStore()
	removed.AddItem(p1)
	removed.AddItem(p2)
	removed.RemoveItem(p1.ID)

	updated := NewStore()
	updated.AddItem(p1)
	updated.AddItem(p2)
	updated.UpdateQuantity(p1.ID, 0)

	assert.Equal(t, removed.Items(), updated.Items())
	assert.Equal(t, removed.TotalItemCount(), updated.TotalItemCount())
}

func Test_Store_Clear(t *testing.T) {
	store := NewStore()
	store.AddItem(p1)
	store.AddItem(p2)

	store.Clear()
	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.TotalItemCount())
	assert.Equal(t, 0.0, store.TotalPrice())
}

func Test_Store_SetItems_ReplacesWholesale(t *testing.T) {
	store := NewStore()
	store.AddItem(p3)

	seed := []Item{{Product: p1, Quantity: 2}, {Product: p2, Quantity: 7}}
	store.SetItems(seed)

	assert.Equal(t, seed, store.Items())
	assert.Equal(t, 9, store.TotalItemCount())
}

func Test_Store_DerivedViews(t *testing.T) {
	store := NewStore()

	// Empty cart
	assert.Equal(t, 0, store.TotalItemCount())
	assert.Equal(t, 0.0, store.TotalPrice())

	// addItem(P1); addItem(P1); addItem(P2)
	store.AddItem(p1)
	store.AddItem(p1)
	store.AddItem(p2)

	require.Equal(t, []Item{{Product: p1, Quantity: 2}, {Product: p2, Quantity: 1}}, store.Items())
	assert.Equal(t, 3, store.TotalItemCount())
	assert.InDelta(t, 2*p1.Price+p2.Price, store.TotalPrice(), 1e-9)

	// Views recompute after further mutations.
	store.UpdateQuantity(p2.ID, 4)
	assert.Equal(t, 6, store.TotalItemCount())
	assert.InDelta(t, 2*p1.Price+4*p2.Price, store.TotalPrice(), 1e-9)

	store.RemoveItem(p1.ID)
	assert.Equal(t, 4, store.TotalItemCount())
	assert.InDelta(t, 4*p2.Price, store.TotalPrice(), 1e-9)
}

func Test_Store_OnChange(t *testing.T) {
	store := NewStore()
	var calls [][]Item
	store.OnChange(func(items []Item) {
		calls = append(calls, items)
	})

	store.AddItem(p1)
	require.Len(t, calls, 1)
	assert.Equal(t, []Item{{Product: p1, Quantity: 1}}, calls[0])

	// No-op mutations do not notify.
	store.RemoveItem(999)
	store.UpdateQuantity(999, 5)
	assert.Len(t, calls, 1)

	store.UpdateQuantity(p1.ID, 3)
	require.Len(t, calls, 2)
	assert.Equal(t, []Item{{Product: p1, Quantity: 3}}, calls[1])

	store.Clear()
	require.Len(t, calls, 3)
	assert.Empty(t, calls[2])

	// Clearing an already empty cart is a no-op.
	store.Clear()
	assert.Len(t, calls, 3)
}

func Test_Store_ItemsReturnsSnapshot(t *testing.T) {
	store := NewStore()
	store.AddItem(p1)

	items := store.Items()
	items[0].Quantity = 42

	assert.Equal(t, 1, store.Items()[0].Quantity)
}
