package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-checkout/internal/catalog"
)

func TestCartProjectionsPreserveOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	c := Cart{Items: []LineItem{
		{Product: &catalog.Product{ID: a}, Qty: 2},
		{Product: &catalog.Product{ID: b}, Qty: 1},
	}}

	require.Equal(t, []uuid.UUID{a, b}, c.ProductIDs())
	require.Equal(t, []int64{2, 1}, c.Quantities())
}

func TestCartProjectionsMissingProduct(t *testing.T) {
	a := uuid.New()
	c := Cart{Items: []LineItem{
		{Product: &catalog.Product{ID: a}, Qty: 1},
		{Qty: 3},
	}}

	require.Equal(t, []uuid.UUID{a, uuid.Nil}, c.ProductIDs())
	require.Equal(t, []int64{1, 3}, c.Quantities())
}

func TestCartProjectionsEmpty(t *testing.T) {
	var c Cart
	require.Empty(t, c.ProductIDs())
	require.Empty(t, c.Quantities())
}
