// Package cart implements the shopping-cart state container and its
// persistence bridge.
package cart

import (
	"sync"

	"github.com/cihad/fakestore/internal/catalog"
)

// Item is a (product, quantity) pair held in the cart.
// Quantity is always a positive integer; an operation that would drive it to
// zero or below removes the item instead.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Store maintains the cart state: an insertion-ordered sequence of items with
// at most one item per product ID. It is an explicitly constructed container,
// safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	items     []Item
	observers []func([]Item)
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{}
}

// OnChange registers fn to be called synchronously with a snapshot of the
// items after every state-changing mutation. Observers must be registered
// before the store is shared; registration is not synchronized against
// in-flight mutations.
func (s *Store) OnChange(fn func(items []Item)) {
	s.observers = append(s.observers, fn)
}

// AddItem adds one unit of the product. If an item with the same product ID
// already exists its quantity is incremented and the originally stored
// product payload is retained; otherwise the product is appended with
// quantity 1. The item keeps its original position either way.
func (s *Store) AddItem(p catalog.Product) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].Product.ID == p.ID {
			s.items[i].Quantity++
			snapshot := s.snapshotLocked()
			s.mu.Unlock()
			s.notify(snapshot)
			return
		}
	}
	s.items = append(s.items, Item{Product: p, Quantity: 1})
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snapshot)
}

// RemoveItem deletes the item with the given product ID. Removing an absent
// item is a no-op, not an error.
func (s *Store) RemoveItem(productID int64) {
	s.mu.Lock()
	idx := s.indexLocked(productID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snapshot)
}

// UpdateQuantity sets the quantity of the item with the given product ID to
// exactly quantity. A quantity of zero or below behaves identically to
// RemoveItem. Updating an absent item is a no-op.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}
	s.mu.Lock()
	idx := s.indexLocked(productID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items[idx].Quantity = quantity
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snapshot)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return
	}
	s.items = nil
	s.mu.Unlock()
	s.notify([]Item{})
}

// SetItems replaces the entire item sequence wholesale. It is the seeding
// path used when loading persisted state; the caller is responsible for the
// items containing no duplicate product IDs.
func (s *Store) SetItems(items []Item) {
	s.mu.Lock()
	s.items = make([]Item, len(items))
	copy(s.items, items)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snapshot)
}

// Items returns a snapshot copy of the current items in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// TotalItemCount returns the sum of quantities over all items.
// It is recomputed from the current state, never cached.
func (s *Store) TotalItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the sum of price times quantity over all items.
// It is recomputed from the current state, never cached.
func (s *Store) TotalPrice() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, item := range s.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// indexLocked returns the position of the item with the given product ID, or -1.
func (s *Store) indexLocked(productID int64) int {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// snapshotLocked copies the item sequence. Callers must hold at least a read lock.
func (s *Store) snapshotLocked() []Item {
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// notify runs the observers outside the lock so they may read the store.
func (s *Store) notify(snapshot []Item) {
	for _, fn := range s.observers {
		fn(snapshot)
	}
}
