package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-checkout/internal/catalog"
	"github.com/noah-isme/backend-checkout/internal/customer"
)

// PGStore resolves carts from the Postgres carts and cart_items tables.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore constructs a Postgres-backed cart store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Resolve loads the cart header scoped to the owning client, then its line
// items joined with their products in insertion order.
func (s *PGStore) Resolve(ctx context.Context, cartID uuid.UUID, owner customer.Client) (Cart, error) {
	if s == nil || s.pool == nil {
		return Cart{}, errors.New("cart: store not configured")
	}

	var result Cart
	err := s.pool.QueryRow(ctx,
		`SELECT id, client_id FROM carts WHERE id = $1 AND client_id = $2`,
		cartID, owner.ID,
	).Scan(&result.ID, &result.ClientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Cart{}, ErrNotFound
	}
	if err != nil {
		return Cart{}, fmt.Errorf("cart: query cart: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT ci.qty,
		       p.id, p.name, p.product_type, p.price, p.weight,
		       p.length, p.width, p.height, p.fragile
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.position`, cartID)
	if err != nil {
		return Cart{}, fmt.Errorf("cart: query cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item                  LineItem
			product               catalog.Product
			length, width, height *decimal.Decimal
		)
		if err := rows.Scan(
			&item.Qty,
			&product.ID, &product.Name, &product.Type, &product.Price, &product.Weight,
			&length, &width, &height, &product.Fragile,
		); err != nil {
			return Cart{}, fmt.Errorf("cart: scan cart item: %w", err)
		}
		if length != nil && width != nil && height != nil {
			product.Dimensions = &catalog.Dimensions{Length: *length, Width: *width, Height: *height}
		}
		item.Product = &product
		result.Items = append(result.Items, item)
	}
	if err := rows.Err(); err != nil {
		return Cart{}, fmt.Errorf("cart: iterate cart items: %w", err)
	}
	return result, nil
}
