package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/backend-checkout/internal/resilience"
)

// HTTPGateway talks to the real inventory service over HTTP. Requests go
// through the resilient client so transient failures are retried and a
// misbehaving upstream trips the circuit breaker.
type HTTPGateway struct {
	BaseURL string
	Client  resilience.HTTPClient
}

type availabilityRequest struct {
	ProductIDs []uuid.UUID `json:"productIds"`
	Quantities []int64     `json:"quantities"`
}

type availabilityResponse struct {
	Available      bool        `json:"available"`
	UnavailableIDs []uuid.UUID `json:"unavailableIds"`
}

type decrementResponse struct {
	Success bool `json:"success"`
}

// CheckAvailability asks the inventory service whether every line can be
// fulfilled.
func (g HTTPGateway) CheckAvailability(ctx context.Context, productIDs []uuid.UUID, quantities []int64) (Availability, error) {
	var parsed availabilityResponse
	if err := g.post(ctx, "/v1/availability", availabilityRequest{ProductIDs: productIDs, Quantities: quantities}, &parsed); err != nil {
		return Availability{}, fmt.Errorf("inventory: check availability: %w", err)
	}
	return Availability{Available: parsed.Available, UnavailableIDs: parsed.UnavailableIDs}, nil
}

// Decrement asks the inventory service to subtract the sold quantities.
func (g HTTPGateway) Decrement(ctx context.Context, productIDs []uuid.UUID, quantities []int64) (DecrementResult, error) {
	var parsed decrementResponse
	if err := g.post(ctx, "/v1/decrement", availabilityRequest{ProductIDs: productIDs, Quantities: quantities}, &parsed); err != nil {
		return DecrementResult{}, fmt.Errorf("inventory: decrement: %w", err)
	}
	return DecrementResult{Success: parsed.Success}, nil
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

	resp, err := g.Client.Do(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
