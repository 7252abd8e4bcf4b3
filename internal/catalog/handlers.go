package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-checkout/internal/common"
)

// Handler serves read-only catalog endpoints.
type Handler struct {
	Store        *Store
	Cache        *Cache
	DefaultLimit int32
	MaxLimit     int32
}

type productDTO struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Price   decimal.Decimal `json:"price"`
	Weight  decimal.Decimal `json:"weight"`
	Fragile bool            `json:"fragile"`
	Dims    *dimensionsDTO  `json:"dimensions,omitempty"`
}

type dimensionsDTO struct {
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
}

// List responds with a page of products.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	limit := h.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid limit", nil)
			return
		}
		limit = int32(parsed)
	}
	if h.MaxLimit > 0 && limit > h.MaxLimit {
		limit = h.MaxLimit
	}
	var offset int32
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 0 {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid offset", nil)
			return
		}
		offset = int32(parsed)
	}

	cacheKey := fmt.Sprintf("catalog:products:%d:%d", limit, offset)
	var cached []productDTO
	if ok, err := h.Cache.GetJSON(r.Context(), cacheKey, &cached); err == nil && ok {
		common.JSON(w, http.StatusOK, map[string]any{"data": cached})
		return
	}

	products, err := h.Store.List(r.Context(), limit, offset)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "list products", nil)
		return
	}
	dtos := make([]productDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toDTO(p))
	}
	_ = h.Cache.SetJSON(r.Context(), cacheKey, dtos)
	common.JSON(w, http.StatusOK, map[string]any{"data": dtos})
}

// Detail responds with a single product by id.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid product id", nil)
		return
	}
	product, err := h.Store.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "load product", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toDTO(product)})
}

func toDTO(p Product) productDTO {
	dto := productDTO{
		ID:      p.ID.String(),
		Name:    p.Name,
		Type:    p.Type,
		Price:   p.Price,
		Weight:  p.Weight,
		Fragile: p.Fragile,
	}
	if p.Dimensions != nil {
		dto.Dims = &dimensionsDTO{
			Length: p.Dimensions.Length,
			Width:  p.Dimensions.Width,
			Height: p.Dimensions.Height,
		}
	}
	return dto
}
