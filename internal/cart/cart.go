// Package cart implements the shopper's pre-checkout cart: a small,
// storage-agnostic store holding one line per product, mirrored into a single
// durable slot on every mutation.
package cart

import (
	"encoding/json"
	"sync"

	"github.com/greenharvest/greenharvest-backend/pkg/logger"
)

// Item is one purchasable line in the cart. ID is the product identity and is
// unique within the collection; ImageURL and FarmerName are display metadata
// only.
type Item struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Unit       string  `json:"unit"`
	Quantity   int     `json:"quantity"`
	ImageURL   string  `json:"image_url,omitempty"`
	FarmerName string  `json:"farmer_name,omitempty"`
}

// Store owns the in-memory item collection and mirrors it through its Storage
// on every mutation. The mirror is best-effort: a failed write never fails the
// mutation.
type Store struct {
	mu      sync.Mutex
	items   []Item
	storage Storage
}

// NewStore builds a store hydrated from the given storage. A missing or
// malformed prior value yields an empty cart.
func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}

	data, err := storage.Load()
	if err != nil {
		logger.Warn("Failed to load persisted cart, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		return s
	}
	if len(data) == 0 {
		return s
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("Malformed persisted cart, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		return s
	}

	s.items = items
	return s
}

// AddItem merges the item into the collection. An existing entry with the same
// ID has its quantity increased by item.Quantity and keeps its own descriptive
// fields; otherwise the item is appended.
func (s *Store) AddItem(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity += item.Quantity
			s.persist()
			return
		}
	}

	s.items = append(s.items, item)
	s.persist()
}

// UpdateQuantity sets the entry's quantity to the given absolute value and
// drops the entry when the value is not positive. An absent id is a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID == id {
			changed = true
			if quantity <= 0 {
				continue
			}
			item.Quantity = quantity
		}
		kept = append(kept, item)
	}

	if !changed {
		return
	}
	s.items = kept
	s.persist()
}

// RemoveItem deletes the entry with the matching id; absent id is a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			return
		}
	}
}

// Clear empties the collection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist()
}

// HasItem reports whether an entry with the given id exists.
func (s *Store) HasItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Items returns a snapshot of the current collection.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// Total is the sum of price*quantity over all entries. It is derived and never
// persisted separately.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// persist writes the full collection to storage, replacing any prior value.
// Callers must hold s.mu.
func (s *Store) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		logger.Error("Failed to serialize cart", err, nil)
		return
	}
	if err := s.storage.Save(data); err != nil {
		logger.Warn("Failed to persist cart", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
