package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Catalog defines read operations against the upstream product catalog.
// The upstream is an opaque, potentially failing collaborator: every
// operation degrades to an empty result instead of propagating a failure.
type Catalog interface {
	// ProductByID retrieves a single product.
	// Returns nil (not an error) when the product does not exist or the
	// upstream is unavailable.
	ProductByID(ctx context.Context, id int64) *Product

	// Products returns all products, or an empty slice on upstream failure.
	Products(ctx context.Context) []Product

	// Categories returns all category names, or an empty slice on upstream failure.
	Categories(ctx context.Context) []string
}

// Client implements Catalog over the upstream HTTP JSON API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a new catalog client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("component", "catalog"),
	}
}

// ProductByID retrieves a single product. A missing product and an
// unreachable upstream both yield nil.
func (c *Client) ProductByID(ctx context.Context, id int64) *Product {
	var product Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id), &product); err != nil {
		c.logger.WarnContext(ctx, "Failed to fetch product", "id", id, "error", err)
		return nil
	}
	return &product
}

// Products returns all products, or an empty slice on upstream failure.
func (c *Client) Products(ctx context.Context) []Product {
	var products []Product
	if err := c.getJSON(ctx, c.baseURL+"/products", &products); err != nil {
		c.logger.WarnContext(ctx, "Failed to fetch products", "error", err)
		return []Product{}
	}
	return products
}

// Categories returns all category names, or an empty slice on upstream failure.
func (c *Client) Categories(ctx context.Context) []string {
	var categories []string
	if err := c.getJSON(ctx, c.baseURL+"/products/categories", &categories); err != nil {
		c.logger.WarnContext(ctx, "Failed to fetch categories", "error", err)
		return []string{}
	}
	return categories
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
