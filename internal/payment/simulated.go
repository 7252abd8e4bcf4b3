package payment

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Simulated authorizes every payment and hands out sequential transaction
// ids. It stands in for the real payment system in local composition.
type Simulated struct {
	Logger zerolog.Logger

	seq atomic.Int64
}

// Authorize approves the charge unconditionally.
func (s *Simulated) Authorize(_ context.Context, clientID uuid.UUID, amount decimal.Decimal) (Authorization, error) {
	txID := fmt.Sprintf("SIM-%d", s.seq.Add(1))
	s.Logger.Info().
		Str("client_id", clientID.String()).
		Str("amount", amount.StringFixed(2)).
		Str("transaction_id", txID).
		Msg("simulated payment authorized")
	return Authorization{Authorized: true, TransactionID: txID}, nil
}

// Cancel logs the cancellation and succeeds.
func (s *Simulated) Cancel(_ context.Context, clientID uuid.UUID, transactionID string) error {
	s.Logger.Info().
		Str("client_id", clientID.String()).
		Str("transaction_id", transactionID).
		Msg("simulated payment cancelled")
	return nil
}
