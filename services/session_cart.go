package services

import (
	"sync"
	"time"
)

// SessionCartItem lives only in memory; persistent carts use the
// cart_items table instead.
type SessionCartItem struct {
	ID          int       `json:"id"`
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	SugarLevel  string    `json:"sugar_level"`
	Image       string    `json:"image"`
	AddedAt     time.Time `json:"added_at"`
}

// SessionCartStore keeps per-session carts for anonymous storefront
// visitors. Injected rather than global so a multi-instance deployment
// can substitute a shared cache implementation.
type SessionCartStore interface {
	Get(sessionID string) []SessionCartItem
	// Add merges quantity into an existing line when the product is
	// already in the cart; returns true when it merged.
	Add(sessionID string, item SessionCartItem) bool
	Remove(sessionID string, itemID int) bool
	Clear(sessionID string) bool
}

type memorySessionCarts struct {
	mu    sync.Mutex
	carts map[string][]SessionCartItem
}

func NewSessionCartStore() SessionCartStore {
	return &memorySessionCarts{
		carts: make(map[string][]SessionCartItem),
	}
}

func (s *memorySessionCarts) Get(sessionID string) []SessionCartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[sessionID]
	out := make([]SessionCartItem, len(items))
	copy(out, items)
	return out
}

func (s *memorySessionCarts) Add(sessionID string, item SessionCartItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[sessionID]
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			s.carts[sessionID] = items
			return true
		}
	}

	item.ID = len(items) + 1
	item.AddedAt = time.Now()
	s.carts[sessionID] = append(items, item)
	return false
}

func (s *memorySessionCarts) Remove(sessionID string, itemID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.carts[sessionID]
	if !ok {
		return false
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	s.carts[sessionID] = kept
	return true
}

func (s *memorySessionCarts) Clear(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[sessionID]; !ok {
		return false
	}
	s.carts[sessionID] = []SessionCartItem{}
	return true
}
