package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-checkout/internal/resilience"
)

func TestHTTPGatewayAuthorize(t *testing.T) {
	clientID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/authorize", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req authorizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, clientID.String(), req.ClientID)
		require.Equal(t, "124.00", req.Amount)

		_ = json.NewEncoder(w).Encode(authorizeResponse{Authorized: true, TransactionID: "TX-55"})
	}))
	defer srv.Close()

	g := HTTPGateway{BaseURL: srv.URL, APIKey: "secret", Client: resilience.HTTPClient{Client: srv.Client()}}
	auth, err := g.Authorize(context.Background(), clientID, decimal.RequireFromString("124.00"))
	require.NoError(t, err)
	require.True(t, auth.Authorized)
	require.Equal(t, "TX-55", auth.TransactionID)
}

func TestHTTPGatewayCancel(t *testing.T) {
	clientID := uuid.New()
	var got cancelRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/cancel", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := HTTPGateway{BaseURL: srv.URL, Client: resilience.HTTPClient{Client: srv.Client()}}
	require.NoError(t, g.Cancel(context.Background(), clientID, "TX-55"))
	require.Equal(t, clientID.String(), got.ClientID)
	require.Equal(t, "TX-55", got.TransactionID)
}

func TestHTTPGatewayAuthorizeDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(authorizeResponse{Authorized: false})
	}))
	defer srv.Close()

	g := HTTPGateway{BaseURL: srv.URL, Client: resilience.HTTPClient{Client: srv.Client()}}
	auth, err := g.Authorize(context.Background(), uuid.New(), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.False(t, auth.Authorized)
	require.Empty(t, auth.TransactionID)
}

func TestSimulatedAlwaysAuthorizes(t *testing.T) {
	sim := &Simulated{Logger: zerolog.Nop()}
	first, err := sim.Authorize(context.Background(), uuid.New(), decimal.NewFromInt(100))
	require.NoError(t, err)
	require.True(t, first.Authorized)

	second, err := sim.Authorize(context.Background(), uuid.New(), decimal.NewFromInt(200))
	require.NoError(t, err)
	require.True(t, second.Authorized)
	require.NotEqual(t, first.TransactionID, second.TransactionID)

	require.NoError(t, sim.Cancel(context.Background(), uuid.New(), first.TransactionID))
}
