package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-checkout/internal/catalog"
	"github.com/noah-isme/backend-checkout/internal/customer"
)

// ErrNotFound is returned when the cart does not exist or does not belong to
// the resolving client.
var ErrNotFound = errors.New("cart: cart not found")

// LineItem pairs a product with a quantity. The product pointer is nil when
// the referenced product no longer exists; the pricing engine rejects such
// carts before any arithmetic.
type LineItem struct {
	Product *catalog.Product
	Qty     int64
}

// Cart is an ordered collection of line items owned by one client. It is a
// read-only input to checkout; mutation belongs to the surrounding layers.
type Cart struct {
	ID       uuid.UUID
	ClientID uuid.UUID
	Items    []LineItem
}

// ProductIDs returns the product ids of the line items in cart order.
func (c Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Product != nil {
			ids = append(ids, item.Product.ID)
		} else {
			ids = append(ids, uuid.Nil)
		}
	}
	return ids
}

// Quantities returns the line item quantities in cart order.
func (c Cart) Quantities() []int64 {
	qtys := make([]int64, 0, len(c.Items))
	for _, item := range c.Items {
		qtys = append(qtys, item.Qty)
	}
	return qtys
}

// Store resolves carts owned by an external system of record. Resolution is
// scoped to the owning client; a cart belonging to someone else is reported
// as not found.
type Store interface {
	Resolve(ctx context.Context, cartID uuid.UUID, owner customer.Client) (Cart, error)
}
