package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dimensions holds the package measurements used for cubic weight. A product
// either has all three measurements or none.
type Dimensions struct {
	Length decimal.Decimal
	Width  decimal.Decimal
	Height decimal.Decimal
}

// Product is the read-only catalog projection consumed by pricing and
// checkout. Type is an opaque grouping tag; the engine only compares it for
// equality.
type Product struct {
	ID         uuid.UUID
	Name       string
	Type       string
	Price      decimal.Decimal
	Weight     decimal.Decimal
	Dimensions *Dimensions
	Fragile    bool
}
