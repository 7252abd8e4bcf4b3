package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Availability reports whether every requested quantity can be fulfilled and,
// when it cannot, which products fell short.
type Availability struct {
	Available      bool
	UnavailableIDs []uuid.UUID
}

// DecrementResult reports whether the stock decrement took effect.
type DecrementResult struct {
	Success bool
}

// Gateway abstracts the external inventory system. Both operations take the
// parallel id and quantity lists extracted from the cart in line-item order.
// Atomicity of concurrent decrements is the inventory system's own concern.
type Gateway interface {
	CheckAvailability(ctx context.Context, productIDs []uuid.UUID, quantities []int64) (Availability, error)
	Decrement(ctx context.Context, productIDs []uuid.UUID, quantities []int64) (DecrementResult, error)
}
