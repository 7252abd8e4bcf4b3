package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-checkout/internal/cart"
	"github.com/noah-isme/backend-checkout/internal/catalog"
	"github.com/noah-isme/backend-checkout/internal/customer"
)

// Validation errors reported before any arithmetic happens.
var (
	ErrEmptyCart         = errors.New("pricing: cart has no items")
	ErrInvalidQuantity   = errors.New("pricing: line item quantity must be positive")
	ErrMissingProduct    = errors.New("pricing: line item references no product")
	ErrNegativePrice     = errors.New("pricing: product price is negative")
	ErrNegativeWeight    = errors.New("pricing: product weight is negative")
	ErrNegativeDimension = errors.New("pricing: product dimension is negative")
	ErrUnknownRegion     = errors.New("pricing: unknown region")
	ErrUnknownTier       = errors.New("pricing: unknown loyalty tier")
)

var (
	fivePercent    = decimal.RequireFromString("0.05")
	tenPercent     = decimal.RequireFromString("0.10")
	fifteenPercent = decimal.RequireFromString("0.15")
	twentyPercent  = decimal.RequireFromString("0.20")

	valueTierHigh = decimal.NewFromInt(1000)
	valueTierLow  = decimal.NewFromInt(500)

	cubicDivisor = decimal.NewFromInt(6000)

	heavyLimit  = decimal.NewFromInt(50)
	midLimit    = decimal.NewFromInt(10)
	exemptLimit = decimal.NewFromInt(5)

	heavyRate = decimal.RequireFromString("7.00")
	midRate   = decimal.RequireFromString("4.00")
	lightRate = decimal.RequireFromString("2.00")

	minimumFreightFee = decimal.RequireFromString("12.00")
	fragileFee        = decimal.RequireFromString("5.00")
)

var regionFactors = map[customer.Region]decimal.Decimal{
	customer.RegionSoutheast: decimal.RequireFromString("1.00"),
	customer.RegionSouth:     decimal.RequireFromString("1.05"),
	customer.RegionNortheast: decimal.RequireFromString("1.10"),
	customer.RegionMidwest:   decimal.RequireFromString("1.20"),
	customer.RegionNorth:     decimal.RequireFromString("1.30"),
}

var loyaltyFactors = map[customer.Tier]decimal.Decimal{
	customer.TierGold:   decimal.Zero,
	customer.TierSilver: decimal.RequireFromString("0.50"),
	customer.TierBronze: decimal.NewFromInt(1),
}

// Summary aggregates the computed pricing components. Only Total is rounded;
// the other figures keep full precision for inspection.
type Summary struct {
	Subtotal         decimal.Decimal
	TypeDiscount     decimal.Decimal
	ValueDiscount    decimal.Decimal
	Merchandise      decimal.Decimal
	ChargeableWeight decimal.Decimal
	Freight          decimal.Decimal
	Total            decimal.Decimal
}

// Quote computes the chargeable total for a cart, region and loyalty tier.
// The computation is pure: it touches no shared state and the result depends
// only on its inputs, so concurrent calls are safe.
//
// The rule order is load-bearing: type discount before value discount, and
// the minimum fee and fragile surcharge join the freight base before the
// region multiplier and loyalty discount apply. Rounding to two decimals
// happens exactly once at the end, except for the cubic weight which is
// rounded as it is derived.
func Quote(c cart.Cart, region customer.Region, tier customer.Tier) (Summary, error) {
	if err := validate(c, region, tier); err != nil {
		return Summary{}, err
	}

	subtotal := merchandiseSubtotal(c.Items)
	typeDiscount := typeDiscount(c.Items)
	afterType := subtotal.Sub(typeDiscount)
	valueDiscount := valueDiscount(afterType)
	merchandise := afterType.Sub(valueDiscount)

	weight := chargeableWeight(c.Items)
	freight := freightBase(weight)
	if freight.IsPositive() {
		freight = freight.Add(minimumFreightFee)
	}
	freight = freight.Add(fragileSurcharge(c.Items))
	freight = freight.Mul(regionFactors[region])
	freight = freight.Mul(loyaltyFactors[tier])

	total := merchandise.Add(freight).Round(2)

	return Summary{
		Subtotal:         subtotal,
		TypeDiscount:     typeDiscount,
		ValueDiscount:    valueDiscount,
		Merchandise:      merchandise,
		ChargeableWeight: weight,
		Freight:          freight,
		Total:            total,
	}, nil
}

func validate(c cart.Cart, region customer.Region, tier customer.Tier) error {
	if len(c.Items) == 0 {
		return ErrEmptyCart
	}
	for i, item := range c.Items {
		if item.Qty <= 0 {
			return fmt.Errorf("item %d: %w", i, ErrInvalidQuantity)
		}
		if item.Product == nil {
			return fmt.Errorf("item %d: %w", i, ErrMissingProduct)
		}
		if item.Product.Price.IsNegative() {
			return fmt.Errorf("item %d: %w", i, ErrNegativePrice)
		}
		if item.Product.Weight.IsNegative() {
			return fmt.Errorf("item %d: %w", i, ErrNegativeWeight)
		}
		if dims := item.Product.Dimensions; dims != nil {
			if dims.Length.IsNegative() || dims.Width.IsNegative() || dims.Height.IsNegative() {
				return fmt.Errorf("item %d: %w", i, ErrNegativeDimension)
			}
		}
	}
	if _, ok := regionFactors[region]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}
	if _, ok := loyaltyFactors[tier]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	return nil
}

func merchandiseSubtotal(items []cart.LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(lineTotal(item))
	}
	return subtotal
}

// typeDiscount rewards carts holding several distinct line items of the same
// product type. The tier is picked by the number of line items in the group,
// not the summed quantity, and the rate applies to that group's own subtotal.
func typeDiscount(items []cart.LineItem) decimal.Decimal {
	groups := make(map[string][]cart.LineItem)
	for _, item := range items {
		groups[item.Product.Type] = append(groups[item.Product.Type], item)
	}

	discount := decimal.Zero
	for _, group := range groups {
		var rate decimal.Decimal
		switch n := len(group); {
		case n >= 8:
			rate = fifteenPercent
		case n >= 5:
			rate = tenPercent
		case n >= 3:
			rate = fivePercent
		default:
			continue
		}
		groupSubtotal := merchandiseSubtotal(group)
		discount = discount.Add(groupSubtotal.Mul(rate))
	}
	return discount
}

// valueDiscount tiers use strict greater-than comparisons: a subtotal of
// exactly 500.00 earns nothing.
func valueDiscount(subtotal decimal.Decimal) decimal.Decimal {
	switch {
	case subtotal.GreaterThan(valueTierHigh):
		return subtotal.Mul(twentyPercent)
	case subtotal.GreaterThan(valueTierLow):
		return subtotal.Mul(tenPercent)
	default:
		return decimal.Zero
	}
}

// chargeableWeight sums max(physical, cubic) * qty across line items.
func chargeableWeight(items []cart.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		unit := decimal.Max(item.Product.Weight, cubicWeight(item.Product.Dimensions))
		total = total.Add(unit.Mul(decimal.NewFromInt(item.Qty)))
	}
	return total
}

// cubicWeight derives the carrier volumetric weight, rounded to two decimals
// as carriers publish it. Products without measurements weigh nothing
// cubically.
func cubicWeight(dims *catalog.Dimensions) decimal.Decimal {
	if dims == nil {
		return decimal.Zero
	}
	volume := dims.Length.Mul(dims.Width).Mul(dims.Height)
	return volume.DivRound(cubicDivisor, 2)
}

func freightBase(weight decimal.Decimal) decimal.Decimal {
	var rate decimal.Decimal
	switch {
	case weight.GreaterThan(heavyLimit):
		rate = heavyRate
	case weight.GreaterThan(midLimit):
		rate = midRate
	case weight.GreaterThan(exemptLimit):
		rate = lightRate
	default:
		return decimal.Zero
	}
	return rate.Mul(weight)
}

func fragileSurcharge(items []cart.LineItem) decimal.Decimal {
	surcharge := decimal.Zero
	for _, item := range items {
		if item.Product.Fragile {
			surcharge = surcharge.Add(fragileFee.Mul(decimal.NewFromInt(item.Qty)))
		}
	}
	return surcharge
}

func lineTotal(item cart.LineItem) decimal.Decimal {
	return item.Product.Price.Mul(decimal.NewFromInt(item.Qty))
}
