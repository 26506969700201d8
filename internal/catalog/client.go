package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/config"
	"github.com/retailedge/storekit/internal/domain"
)

// ErrNotFound is returned when the catalog has no product for the
// requested ID.
var ErrNotFound = errors.New("product not found")

// Client is the read-only catalog facade used by the storefront. Every
// call is a single-shot request with no retry, caching or pagination.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a catalog client for the configured base URL.
func NewClient(cfg config.CatalogConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// List fetches all catalog products.
func (c *Client) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "/api/catalog/products", &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// Get fetches a single product by ID. A 404 from the backend is reported
// as ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := c.getJSON(ctx, "/api/catalog/products/"+url.PathEscape(id), &product)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

// Search fetches products matching a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Product, error) {
	var products []domain.Product
	path := "/api/catalog/products/search?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, path, &products); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return doJSON(ctx, c.httpClient, http.MethodGet, c.baseURL+path, nil, out)
}

// StatusError reports a non-success HTTP status from a backend call.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: status %d", e.StatusCode)
}

// doJSON runs one JSON request/response exchange. A nil body sends no
// payload; a nil out discards the response body.
func doJSON(ctx context.Context, client *http.Client, method, url string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
