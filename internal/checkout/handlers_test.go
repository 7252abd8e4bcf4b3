package checkout

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-checkout/internal/customer"
	"github.com/noah-isme/backend-checkout/internal/inventory"
	"github.com/noah-isme/backend-checkout/internal/payment"
)

func postCheckout(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Finalize(rec, req)
	return rec
}

func checkoutBody(cartID, clientID uuid.UUID) string {
	return fmt.Sprintf(`{"cartId":%q,"clientId":%q}`, cartID, clientID)
}

func TestFinalizeHandlerSuccess(t *testing.T) {
	clientID := uuid.New()
	inv := &stubInventory{
		availability: inventory.Availability{Available: true},
		decrement:    inventory.DecrementResult{Success: true},
	}
	pay := &stubPayments{
		authorization: payment.Authorization{Authorized: true, TransactionID: "TX-7"},
	}
	h := &Handler{Svc: testService(clientID, inv, pay), Validate: validator.New()}

	rec := postCheckout(t, h, checkoutBody(uuid.New(), clientID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data outcomeDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Data.Success)
	require.Equal(t, "TX-7", resp.Data.TransactionID)
	require.Equal(t, "124.00", resp.Data.Total)
	require.Equal(t, "Purchase completed successfully.", resp.Data.Message)
}

func TestFinalizeHandlerRejectsBadPayload(t *testing.T) {
	clientID := uuid.New()
	h := &Handler{Svc: testService(clientID, &stubInventory{}, &stubPayments{}), Validate: validator.New()}

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing fields", `{}`},
		{"non-uuid ids", `{"cartId":"abc","clientId":"def"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postCheckout(t, h, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestFinalizeHandlerErrorMapping(t *testing.T) {
	clientID := uuid.New()

	tests := []struct {
		name   string
		inv    *stubInventory
		pay    *stubPayments
		status int
		code   string
	}{
		{
			name:   "out of stock",
			inv:    &stubInventory{availability: inventory.Availability{Available: false}},
			pay:    &stubPayments{},
			status: http.StatusConflict,
			code:   "OUT_OF_STOCK",
		},
		{
			name:   "payment declined",
			inv:    &stubInventory{availability: inventory.Availability{Available: true}},
			pay:    &stubPayments{authorization: payment.Authorization{Authorized: false}},
			status: http.StatusPaymentRequired,
			code:   "PAYMENT_DECLINED",
		},
		{
			name: "decrement failed",
			inv: &stubInventory{
				availability: inventory.Availability{Available: true},
				decrement:    inventory.DecrementResult{Success: false},
			},
			pay:    &stubPayments{authorization: payment.Authorization{Authorized: true, TransactionID: "888"}},
			status: http.StatusConflict,
			code:   "STOCK_DECREMENT_FAILED",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{Svc: testService(clientID, tt.inv, tt.pay), Validate: validator.New()}
			rec := postCheckout(t, h, checkoutBody(uuid.New(), clientID))
			require.Equal(t, tt.status, rec.Code)

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestFinalizeHandlerClientNotFound(t *testing.T) {
	svc := &Service{
		Directory: &stubDirectory{err: customer.ErrNotFound},
		Carts:     &stubCarts{},
		Inventory: &stubInventory{},
		Payments:  &stubPayments{},
		Logger:    zerolog.Nop(),
	}
	h := &Handler{Svc: svc, Validate: validator.New()}

	rec := postCheckout(t, h, checkoutBody(uuid.New(), uuid.New()))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "CLIENT_NOT_FOUND")
}
