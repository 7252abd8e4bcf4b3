package checkout

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-checkout/internal/pricing"
)

func postQuote(t *testing.T, h *Handler, cartID uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/carts/{id}/quote", h.Quote)
	req := httptest.NewRequest(http.MethodPost, "/carts/"+cartID.String()+"/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestQuoteHandler(t *testing.T) {
	clientID := uuid.New()
	h := &Handler{
		Svc:      testService(clientID, &stubInventory{}, &stubPayments{}),
		Validate: validator.New(),
	}

	rec := postQuote(t, h, uuid.New(), fmt.Sprintf(`{"clientId":%q}`, clientID))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data quoteDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "100.00", resp.Data.Subtotal)
	require.Equal(t, "24.00", resp.Data.Freight)
	require.Equal(t, "124.00", resp.Data.Total)
}

func TestQuoteHandlerEmptyCart(t *testing.T) {
	clientID := uuid.New()
	svc := testService(clientID, &stubInventory{}, &stubPayments{})
	svc.Carts = &stubCarts{}
	h := &Handler{Svc: svc, Validate: validator.New()}

	rec := postQuote(t, h, uuid.New(), fmt.Sprintf(`{"clientId":%q}`, clientID))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "VALIDATION")

	// guard against the mapping drifting away from the pricing sentinel
	_, err := pricing.Quote(svc.Carts.(*stubCarts).cart, "SOUTHEAST", "BRONZE")
	require.ErrorIs(t, err, pricing.ErrEmptyCart)
}

func TestQuoteHandlerBadBody(t *testing.T) {
	clientID := uuid.New()
	h := &Handler{
		Svc:      testService(clientID, &stubInventory{}, &stubPayments{}),
		Validate: validator.New(),
	}

	rec := postQuote(t, h, uuid.New(), `{"clientId":"not-a-uuid"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
