package pricing

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/lmarchal/grocerly-backend/pkg/config"
	"github.com/lmarchal/grocerly-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "pricing-test", Output: io.Discard})
}

func newTestClient(t *testing.T, cfg config.PricingConfig) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	return client
}

func TestClientMockModeWithoutAPIKey(t *testing.T) {
	client := newTestClient(t, config.PricingConfig{})
	require.True(t, client.MockMode())

	products, err := client.SearchProducts(context.Background(), "cherry tomatoes", 5)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "P001", products[0].ID)
	require.True(t, products[0].Price.Equal(decimal.RequireFromString("3.50")))
}

func TestClientMockFallbackProduct(t *testing.T) {
	client := newTestClient(t, config.PricingConfig{})

	products, err := client.SearchProducts(context.Background(), "dragon fruit", 5)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, mockFallbackID, products[0].ID)
	require.Equal(t, "dragon fruit", products[0].Name)
	require.True(t, products[0].Price.Equal(decimal.RequireFromString(mockFallbackPrice)))
}

func TestClientSearchHitsAPI(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"id":"X1","name":"Heirloom tomatoes","price":"4.20","unit":"kg"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, config.PricingConfig{
		BaseURL: server.URL,
		APIKey:  "secret-key",
		Timeout: 5 * time.Second,
	})
	require.False(t, client.MockMode())

	products, err := client.SearchProducts(context.Background(), "tomatoes", 3)
	require.NoError(t, err)
	require.Equal(t, "Bearer secret-key", gotAuth)
	require.Equal(t, "tomatoes", gotQuery)
	require.Len(t, products, 1)
	require.Equal(t, "X1", products[0].ID)
	require.True(t, products[0].Price.Equal(decimal.RequireFromString("4.20")))
}

func TestClientFallsBackWhenAPIFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, config.PricingConfig{
		BaseURL: server.URL,
		APIKey:  "secret-key",
		Timeout: 5 * time.Second,
	})

	products, err := client.SearchProducts(context.Background(), "rice", 1)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "P005", products[0].ID)
}

func TestClientProductPriceFallsBack(t *testing.T) {
	client := newTestClient(t, config.PricingConfig{})

	product, err := client.ProductPrice(context.Background(), "P004")
	require.NoError(t, err)
	require.True(t, product.Price.Equal(decimal.RequireFromString("8.90")))

	unknown, err := client.ProductPrice(context.Background(), "P777")
	require.NoError(t, err)
	require.True(t, unknown.Price.Equal(decimal.RequireFromString(mockFallbackPrice)))
}
