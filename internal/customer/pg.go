package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGDirectory resolves clients from the Postgres clients table.
type PGDirectory struct {
	pool *pgxpool.Pool
}

// NewPGDirectory constructs a Postgres-backed client directory.
func NewPGDirectory(pool *pgxpool.Pool) *PGDirectory {
	return &PGDirectory{pool: pool}
}

// Resolve loads the client row and maps its region and loyalty tier onto the
// closed enumerations. A row carrying an unrecognised value is surfaced as an
// error rather than defaulted.
func (d *PGDirectory) Resolve(ctx context.Context, clientID uuid.UUID) (Client, error) {
	if d == nil || d.pool == nil {
		return Client{}, errors.New("customer: directory not configured")
	}
	const query = `SELECT id, name, region, loyalty_tier FROM clients WHERE id = $1`

	var (
		id     uuid.UUID
		name   string
		region string
		tier   string
	)
	err := d.pool.QueryRow(ctx, query, clientID).Scan(&id, &name, &region, &tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return Client{}, ErrNotFound
	}
	if err != nil {
		return Client{}, fmt.Errorf("customer: query client: %w", err)
	}

	parsedRegion, err := ParseRegion(region)
	if err != nil {
		return Client{}, err
	}
	parsedTier, err := ParseTier(tier)
	if err != nil {
		return Client{}, err
	}
	return Client{ID: id, Name: name, Region: parsedRegion, Tier: parsedTier}, nil
}
