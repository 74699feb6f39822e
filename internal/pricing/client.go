package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lmarchal/grocerly-backend/pkg/config"
	"github.com/lmarchal/grocerly-backend/pkg/logger"
)

// Product is one retailer catalog hit.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Unit  string          `json:"unit"`
}

var errLoggerRequired = errors.New("pricing logger is required")

// Client talks to the retailer price API. Without an API key, or when the
// retailer is unreachable, it answers from a built-in mock catalog so the
// rest of the system keeps working in development.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logger.Logger
}

// NewClient initializes the retailer API wrapper.
func NewClient(ctx context.Context, cfg config.PricingConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logg,
	}
	if c.apiKey == "" {
		logg.Warn(ctx, "pricing client running in mock mode, no API key configured")
	} else {
		logg.Info(ctx, "pricing client initialized")
	}
	return c, nil
}

// MockMode reports whether the client answers from the built-in catalog.
func (c *Client) MockMode() bool {
	return c.apiKey == ""
}

// SearchProducts looks a product up by free-text query. Retailer failures
// degrade to the mock catalog instead of surfacing an error.
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) ([]Product, error) {
	if limit < 1 {
		limit = 5
	}
	if c.MockMode() {
		return mockSearch(query, limit), nil
	}

	endpoint := fmt.Sprintf("%s/products/search?%s", c.baseURL, url.Values{
		"q":     []string{query},
		"limit": []string{strconv.Itoa(limit)},
	}.Encode())

	var payload struct {
		Products []Product `json:"products"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		c.logger.Error(c.logger.WithField(ctx, "query", query), "pricing search failed, falling back to mock catalog", err)
		return mockSearch(query, limit), nil
	}
	return payload.Products, nil
}

// ProductPrice fetches the current price of one product.
func (c *Client) ProductPrice(ctx context.Context, productID string) (*Product, error) {
	if c.MockMode() {
		return mockPrice(productID), nil
	}

	endpoint := fmt.Sprintf("%s/products/%s/price", c.baseURL, url.PathEscape(productID))

	var product Product
	if err := c.getJSON(ctx, endpoint, &product); err != nil {
		c.logger.Error(c.logger.WithField(ctx, "product_id", productID), "pricing lookup failed, falling back to mock catalog", err)
		return mockPrice(productID), nil
	}
	return &product, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("retailer API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// mockCatalog mirrors a handful of staple products for offline development.
var mockCatalog = map[string]Product{
	"tomato":  {ID: "P001", Name: "Vine tomatoes", Price: decimal.RequireFromString("3.50"), Unit: "kg"},
	"onion":   {ID: "P002", Name: "Yellow onions", Price: decimal.RequireFromString("1.80"), Unit: "kg"},
	"carrot":  {ID: "P003", Name: "Organic carrots", Price: decimal.RequireFromString("2.20"), Unit: "kg"},
	"chicken": {ID: "P004", Name: "Chicken fillet", Price: decimal.RequireFromString("8.90"), Unit: "kg"},
	"rice":    {ID: "P005", Name: "Basmati rice", Price: decimal.RequireFromString("4.50"), Unit: "kg"},
}

const (
	mockFallbackID    = "P999"
	mockFallbackPrice = "5.00"
)

func mockSearch(query string, limit int) []Product {
	lowered := strings.ToLower(query)
	for key, product := range mockCatalog {
		if strings.Contains(lowered, key) {
			if limit < 1 {
				return nil
			}
			return []Product{product}
		}
	}
	return []Product{{
		ID:    mockFallbackID,
		Name:  query,
		Price: decimal.RequireFromString(mockFallbackPrice),
		Unit:  "unit",
	}}
}

func mockPrice(productID string) *Product {
	for _, product := range mockCatalog {
		if product.ID == productID {
			p := product
			return &p
		}
	}
	return &Product{ID: productID, Price: decimal.RequireFromString(mockFallbackPrice), Unit: "unit"}
}
