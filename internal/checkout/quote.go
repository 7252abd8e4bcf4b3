package checkout

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noah-isme/backend-checkout/internal/common"
	"github.com/noah-isme/backend-checkout/internal/pricing"
)

type quoteInput struct {
	ClientID string `json:"clientId" validate:"required,uuid"`
}

type quoteDTO struct {
	Subtotal         string `json:"subtotal"`
	TypeDiscount     string `json:"typeDiscount"`
	ValueDiscount    string `json:"valueDiscount"`
	Merchandise      string `json:"merchandise"`
	ChargeableWeight string `json:"chargeableWeight"`
	Freight          string `json:"freight"`
	Total            string `json:"total"`
}

// Quote handles POST /carts/{id}/quote. It prices the cart without touching
// inventory or payment, so repeated calls are free of side effects.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	cartID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid cart id", nil)
		return
	}
	var payload quoteInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "clientId must be a valid id", nil)
			return
		}
	}
	clientID, err := uuid.Parse(payload.ClientID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid client id", nil)
		return
	}

	client, err := h.Svc.Directory.Resolve(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	resolved, err := h.Svc.Carts.Resolve(r.Context(), cartID, client)
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := pricing.Quote(resolved, client.Region, client.Tier)
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quoteDTO{
		Subtotal:         summary.Subtotal.StringFixed(2),
		TypeDiscount:     summary.TypeDiscount.StringFixed(2),
		ValueDiscount:    summary.ValueDiscount.StringFixed(2),
		Merchandise:      summary.Merchandise.StringFixed(2),
		ChargeableWeight: summary.ChargeableWeight.StringFixed(2),
		Freight:          summary.Freight.StringFixed(2),
		Total:            summary.Total.StringFixed(2),
	}})
}
