package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-checkout/internal/resilience"
)

func TestHTTPGatewayCheckAvailability(t *testing.T) {
	missing := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/availability", r.URL.Path)

		var req availabilityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.ProductIDs, 2)
		require.Equal(t, []int64{1, 3}, req.Quantities)

		_ = json.NewEncoder(w).Encode(availabilityResponse{
			Available:      false,
			UnavailableIDs: []uuid.UUID{missing},
		})
	}))
	defer srv.Close()

	g := HTTPGateway{BaseURL: srv.URL, Client: resilience.HTTPClient{Client: srv.Client()}}
	avail, err := g.CheckAvailability(context.Background(), []uuid.UUID{uuid.New(), missing}, []int64{1, 3})
	require.NoError(t, err)
	require.False(t, avail.Available)
	require.Equal(t, []uuid.UUID{missing}, avail.UnavailableIDs)
}

func TestHTTPGatewayDecrement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/decrement", r.URL.Path)
		_ = json.NewEncoder(w).Encode(decrementResponse{Success: true})
	}))
	defer srv.Close()

	g := HTTPGateway{BaseURL: srv.URL, Client: resilience.HTTPClient{Client: srv.Client()}}
	res, err := g.Decrement(context.Background(), []uuid.UUID{uuid.New()}, []int64{1})
	require.NoError(t, err)
	require.True(t, res.Success)
}

func TestHTTPGatewayUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := HTTPGateway{BaseURL: srv.URL, Client: resilience.HTTPClient{Client: srv.Client()}}
	_, err := g.CheckAvailability(context.Background(), []uuid.UUID{uuid.New()}, []int64{1})
	require.Error(t, err)
}

func TestHTTPGatewayMissingBaseURL(t *testing.T) {
	g := HTTPGateway{Client: resilience.HTTPClient{Client: http.DefaultClient}}
	_, err := g.CheckAvailability(context.Background(), nil, nil)
	require.Error(t, err)
}
