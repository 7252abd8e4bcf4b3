package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a product id has no catalog row.
var ErrNotFound = errors.New("catalog: product not found")

// Store reads products from the Postgres catalog tables.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Postgres-backed product store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const productColumns = `id, name, product_type, price, weight, length, width, height, fragile`

// Get returns a single product by id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Product, error) {
	if s == nil || s.pool == nil {
		return Product{}, errors.New("catalog: store not configured")
	}
	row := s.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("catalog: query product: %w", err)
	}
	return product, nil
}

// List returns products ordered by name, paginated with limit and offset.
func (s *Store) List(ctx context.Context, limit, offset int32) ([]Product, error) {
	if s == nil || s.pool == nil {
		return nil, errors.New("catalog: store not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p                     Product
		length, width, height *decimal.Decimal
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Price, &p.Weight, &length, &width, &height, &p.Fragile); err != nil {
		return Product{}, err
	}
	// Dimensions are stored all-or-nothing; a partially measured row is a
	// data error surfaced to the caller.
	switch {
	case length == nil && width == nil && height == nil:
	case length != nil && width != nil && height != nil:
		p.Dimensions = &Dimensions{Length: *length, Width: *width, Height: *height}
	default:
		return Product{}, fmt.Errorf("catalog: product %s has partial dimensions", p.ID)
	}
	return p, nil
}
