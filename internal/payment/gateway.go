package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Authorization is the outcome of an authorize call. TransactionID is only
// meaningful when Authorized is true.
type Authorization struct {
	Authorized    bool
	TransactionID string
}

// Gateway abstracts the external payment system. Amounts crossing this
// boundary are two-decimal fixed-point values.
//
// Cancel is best-effort from the caller's perspective: the orchestrator
// invokes it once for compensation and does not act on its outcome.
type Gateway interface {
	Authorize(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal) (Authorization, error)
	Cancel(ctx context.Context, clientID uuid.UUID, transactionID string) error
}
