package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-checkout/internal/resilience"
)

// HTTPGateway talks to the real payment service over HTTP through the
// resilient client.
type HTTPGateway struct {
	BaseURL string
	APIKey  string
	Client  resilience.HTTPClient
}

type authorizeRequest struct {
	ClientID string `json:"clientId"`
	Amount   string `json:"amount"`
}

type authorizeResponse struct {
	Authorized    bool   `json:"authorized"`
	TransactionID string `json:"transactionId"`
}

type cancelRequest struct {
	ClientID      string `json:"clientId"`
	TransactionID string `json:"transactionId"`
}

// Authorize requests a charge authorization for the given amount.
func (g HTTPGateway) Authorize(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal) (Authorization, error) {
	payload := authorizeRequest{ClientID: clientID.String(), Amount: amount.StringFixed(2)}
	var parsed authorizeResponse
	if err := g.post(ctx, "/v1/authorize", payload, &parsed); err != nil {
		return Authorization{}, fmt.Errorf("payment: authorize: %w", err)
	}
	return Authorization{Authorized: parsed.Authorized, TransactionID: parsed.TransactionID}, nil
}

// Cancel voids a previously authorized transaction.
func (g HTTPGateway) Cancel(ctx context.Context, clientID uuid.UUID, transactionID string) error {
	payload := cancelRequest{ClientID: clientID.String(), TransactionID: transactionID}
	if err := g.post(ctx, "/v1/cancel", payload, nil); err != nil {
		return fmt.Errorf("payment: cancel: %w", err)
	}
	return nil
}

func (g HTTPGateway) post(ctx context.Context, path string, payload, out any) error {
	base := strings.TrimRight(strings.TrimSpace(g.BaseURL), "/")
	if base == "" {
		return errors.New("base url not configured")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if key := strings.TrimSpace(g.APIKey); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := g.Client.Do(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
