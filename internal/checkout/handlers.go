package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/backend-checkout/internal/cart"
	"github.com/noah-isme/backend-checkout/internal/common"
	"github.com/noah-isme/backend-checkout/internal/customer"
	"github.com/noah-isme/backend-checkout/internal/pricing"
)

// Handler exposes checkout over HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

// Input is the checkout request payload.
type Input struct {
	CartID   string `json:"cartId" validate:"required,uuid"`
	ClientID string `json:"clientId" validate:"required,uuid"`
}

type outcomeDTO struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Total         string `json:"total"`
	Message       string `json:"message"`
}

// Finalize handles POST /checkout.
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var payload Input
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "cartId and clientId must be valid ids", nil)
			return
		}
	}
	cartID, err := uuid.Parse(payload.CartID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid cart id", nil)
		return
	}
	clientID, err := uuid.Parse(payload.ClientID)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid client id", nil)
		return
	}

	outcome, err := h.Svc.Finalize(r.Context(), cartID, clientID)
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": outcomeDTO{
		Success:       outcome.Success,
		TransactionID: outcome.TransactionID,
		Total:         outcome.Total.StringFixed(2),
		Message:       outcome.Message,
	}})
}

// writeError maps checkout failures onto the canonical error payload. Every
// kind has a distinct code so callers can branch without string matching.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, customer.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "CLIENT_NOT_FOUND", "client not found", nil)
	case errors.Is(err, cart.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "CART_NOT_FOUND", "cart not found", nil)
	case errors.Is(err, ErrOutOfStock):
		common.JSONError(w, http.StatusConflict, "OUT_OF_STOCK", "items out of stock", nil)
	case errors.Is(err, ErrPaymentDeclined):
		common.JSONError(w, http.StatusPaymentRequired, "PAYMENT_DECLINED", "payment not authorized", nil)
	case errors.Is(err, ErrStockDecrementFailed):
		common.JSONError(w, http.StatusConflict, "STOCK_DECREMENT_FAILED", "stock decrement failed, payment cancelled", nil)
	case isValidation(err):
		common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", err.Error(), nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout failed", nil)
	}
}

func isValidation(err error) bool {
	for _, sentinel := range []error{
		pricing.ErrEmptyCart,
		pricing.ErrInvalidQuantity,
		pricing.ErrMissingProduct,
		pricing.ErrNegativePrice,
		pricing.ErrNegativeWeight,
		pricing.ErrNegativeDimension,
		pricing.ErrUnknownRegion,
		pricing.ErrUnknownTier,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
