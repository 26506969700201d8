package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/config"
	"github.com/retailedge/storekit/internal/domain"
)

// AdminClient is the write-capable catalog facade used only by the
// management tooling. Any non-success status is surfaced as a generic
// request failure; no structured error body is parsed.
type AdminClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAdminClient creates an admin catalog client for the configured base URL.
func NewAdminClient(cfg config.CatalogConfig, logger *zap.Logger) *AdminClient {
	return &AdminClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// List fetches all products.
func (c *AdminClient) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := doJSON(ctx, c.httpClient, http.MethodGet, c.productsURL(""), nil, &products)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// Get fetches a single product by ID.
func (c *AdminClient) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := doJSON(ctx, c.httpClient, http.MethodGet, c.productsURL(id), nil, &product)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

// Create submits a new product and returns the canonical stored
// representation with its assigned ID and timestamps.
func (c *AdminClient) Create(ctx context.Context, req domain.ProductRequest) (*domain.Product, error) {
	var product domain.Product
	err := doJSON(ctx, c.httpClient, http.MethodPost, c.productsURL(""), req, &product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update sends a partial product body and returns the stored result.
func (c *AdminClient) Update(ctx context.Context, id string, req domain.ProductUpdate) (*domain.Product, error) {
	var product domain.Product
	err := doJSON(ctx, c.httpClient, http.MethodPut, c.productsURL(id), req, &product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// Delete removes a product. The backend responds with an empty body on
// success.
func (c *AdminClient) Delete(ctx context.Context, id string) error {
	err := doJSON(ctx, c.httpClient, http.MethodDelete, c.productsURL(id), nil, nil)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (c *AdminClient) productsURL(id string) string {
	if id == "" {
		return c.baseURL + "/api/catalog/products"
	}
	return c.baseURL + "/api/catalog/products/" + url.PathEscape(id)
}
