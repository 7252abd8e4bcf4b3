package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-checkout/internal/cart"
	"github.com/noah-isme/backend-checkout/internal/customer"
	"github.com/noah-isme/backend-checkout/internal/inventory"
	"github.com/noah-isme/backend-checkout/internal/obs"
	"github.com/noah-isme/backend-checkout/internal/payment"
	"github.com/noah-isme/backend-checkout/internal/pricing"
)

// Business failures surfaced by Finalize. Resolution failures are reported
// via customer.ErrNotFound and cart.ErrNotFound, validation failures via the
// pricing sentinel errors.
var (
	ErrOutOfStock           = errors.New("checkout: items out of stock")
	ErrPaymentDeclined      = errors.New("checkout: payment not authorized")
	ErrStockDecrementFailed = errors.New("checkout: stock decrement failed")
)

const confirmationMessage = "Purchase completed successfully."

// Outcome reports a finished checkout attempt.
type Outcome struct {
	Success       bool
	TransactionID string
	Total         decimal.Decimal
	Message       string
}

// Service drives one checkout attempt against the external collaborators.
// Steps run strictly in order, each external call happens at most once per
// attempt, and nothing is retried; a failed attempt must be restarted from
// scratch by the caller.
type Service struct {
	Directory customer.Directory
	Carts     cart.Store
	Inventory inventory.Gateway
	Payments  payment.Gateway
	Logger    zerolog.Logger
}

// Finalize resolves the client and cart, confirms availability, prices the
// cart, authorizes payment and decrements stock. When the decrement fails
// after a successful authorization the payment is cancelled exactly once
// before the error is surfaced.
func (s *Service) Finalize(ctx context.Context, cartID, clientID uuid.UUID) (Outcome, error) {
	if s == nil || s.Directory == nil || s.Carts == nil || s.Inventory == nil || s.Payments == nil {
		return Outcome{}, errors.New("checkout: service not configured")
	}

	client, err := s.Directory.Resolve(ctx, clientID)
	if err != nil {
		return s.fail(err, "resolve_client")
	}
	resolved, err := s.Carts.Resolve(ctx, cartID, client)
	if err != nil {
		return s.fail(err, "resolve_cart")
	}

	productIDs := resolved.ProductIDs()
	quantities := resolved.Quantities()

	availability, err := s.Inventory.CheckAvailability(ctx, productIDs, quantities)
	obs.RecordGatewayCall("inventory", "check_availability", callResult(err))
	if err != nil {
		return s.fail(fmt.Errorf("checkout: check availability: %w", err), "availability")
	}
	if !availability.Available {
		s.Logger.Warn().
			Str("cart_id", cartID.String()).
			Int("unavailable", len(availability.UnavailableIDs)).
			Msg("checkout rejected, items out of stock")
		return s.fail(ErrOutOfStock, "out_of_stock")
	}

	summary, err := pricing.Quote(resolved, client.Region, client.Tier)
	if err != nil {
		return s.fail(err, "pricing")
	}

	authorization, err := s.Payments.Authorize(ctx, client.ID, summary.Total)
	obs.RecordGatewayCall("payment", "authorize", callResult(err))
	if err != nil {
		return s.fail(fmt.Errorf("checkout: authorize payment: %w", err), "authorize")
	}
	if !authorization.Authorized {
		return s.fail(ErrPaymentDeclined, "payment_declined")
	}

	decrement, err := s.Inventory.Decrement(ctx, productIDs, quantities)
	obs.RecordGatewayCall("inventory", "decrement", callResult(err))
	if err != nil || !decrement.Success {
		// Payment already took effect: compensate with a single best-effort
		// cancel, then surface the decrement failure regardless.
		obs.RecordPaymentCompensation()
		if cancelErr := s.Payments.Cancel(ctx, client.ID, authorization.TransactionID); cancelErr != nil {
			s.Logger.Error().Err(cancelErr).
				Str("transaction_id", authorization.TransactionID).
				Msg("compensating payment cancel failed")
		}
		if err != nil {
			return s.fail(fmt.Errorf("%w: %v", ErrStockDecrementFailed, err), "decrement_failed")
		}
		return s.fail(ErrStockDecrementFailed, "decrement_failed")
	}

	s.Logger.Info().
		Str("cart_id", cartID.String()).
		Str("client_id", client.ID.String()).
		Str("transaction_id", authorization.TransactionID).
		Str("total", summary.Total.StringFixed(2)).
		Msg("checkout finalized")
	obs.RecordCheckoutOutcome("success")

	return Outcome{
		Success:       true,
		TransactionID: authorization.TransactionID,
		Total:         summary.Total,
		Message:       confirmationMessage,
	}, nil
}

func (s *Service) fail(err error, result string) (Outcome, error) {
	obs.RecordCheckoutOutcome(result)
	return Outcome{}, err
}

func callResult(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
