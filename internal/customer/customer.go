package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a client cannot be resolved by id.
var ErrNotFound = errors.New("customer: client not found")

// Region is the closed set of shipping regions a client can belong to.
type Region string

const (
	RegionSoutheast Region = "SOUTHEAST"
	RegionSouth     Region = "SOUTH"
	RegionNortheast Region = "NORTHEAST"
	RegionMidwest   Region = "MIDWEST"
	RegionNorth     Region = "NORTH"
)

// Tier is the closed set of loyalty tiers.
type Tier string

const (
	TierGold   Tier = "GOLD"
	TierSilver Tier = "SILVER"
	TierBronze Tier = "BRONZE"
)

// ParseRegion maps a stored region value onto the closed enumeration. Unknown
// values are an error, never a default.
func ParseRegion(value string) (Region, error) {
	switch Region(strings.ToUpper(strings.TrimSpace(value))) {
	case RegionSoutheast:
		return RegionSoutheast, nil
	case RegionSouth:
		return RegionSouth, nil
	case RegionNortheast:
		return RegionNortheast, nil
	case RegionMidwest:
		return RegionMidwest, nil
	case RegionNorth:
		return RegionNorth, nil
	}
	return "", fmt.Errorf("customer: unknown region %q", value)
}

// ParseTier maps a stored loyalty tier value onto the closed enumeration.
func ParseTier(value string) (Tier, error) {
	switch Tier(strings.ToUpper(strings.TrimSpace(value))) {
	case TierGold:
		return TierGold, nil
	case TierSilver:
		return TierSilver, nil
	case TierBronze:
		return TierBronze, nil
	}
	return "", fmt.Errorf("customer: unknown loyalty tier %q", value)
}

// Client is the read-only projection of a client the checkout core needs.
type Client struct {
	ID     uuid.UUID
	Name   string
	Region Region
	Tier   Tier
}

// Directory resolves clients owned by an external system of record.
type Directory interface {
	Resolve(ctx context.Context, clientID uuid.UUID) (Client, error)
}
