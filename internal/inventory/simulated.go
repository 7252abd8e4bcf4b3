package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Simulated keeps stock levels in memory. It stands in for the real
// inventory system in local composition and tests.
type Simulated struct {
	mu    sync.Mutex
	stock map[uuid.UUID]int64
}

// NewSimulated constructs a simulated inventory seeded with the given stock.
func NewSimulated(stock map[uuid.UUID]int64) *Simulated {
	cloned := make(map[uuid.UUID]int64, len(stock))
	for id, qty := range stock {
		cloned[id] = qty
	}
	return &Simulated{stock: cloned}
}

// SetStock replaces the stock level of one product.
func (s *Simulated) SetStock(productID uuid.UUID, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[productID] = qty
}

// CheckAvailability reports which requested products cannot be fulfilled.
func (s *Simulated) CheckAvailability(_ context.Context, productIDs []uuid.UUID, quantities []int64) (Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var unavailable []uuid.UUID
	for i, id := range productIDs {
		if s.stock[id] < quantities[i] {
			unavailable = append(unavailable, id)
		}
	}
	return Availability{Available: len(unavailable) == 0, UnavailableIDs: unavailable}, nil
}

// Decrement atomically checks and subtracts every requested quantity. When
// any line cannot be fulfilled nothing is subtracted.
func (s *Simulated) Decrement(_ context.Context, productIDs []uuid.UUID, quantities []int64) (DecrementResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range productIDs {
		if s.stock[id] < quantities[i] {
			return DecrementResult{Success: false}, nil
		}
	}
	for i, id := range productIDs {
		s.stock[id] -= quantities[i]
	}
	return DecrementResult{Success: true}, nil
}
