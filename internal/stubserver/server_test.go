package stubserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/catalog"
	"github.com/retailedge/storekit/internal/config"
	"github.com/retailedge/storekit/internal/domain"
	"github.com/retailedge/storekit/internal/orders"
	"github.com/retailedge/storekit/internal/stubserver"
)

// The stub is exercised through the real clients so the wire contracts
// are checked from both sides.
func newStub(t *testing.T) (*stubserver.Server, *httptest.Server) {
	t.Helper()
	stub := stubserver.New(zap.NewNop())
	srv := httptest.NewServer(stub.Router("test"))
	t.Cleanup(srv.Close)
	return stub, srv
}

func TestCatalogCRUD(t *testing.T) {
	_, srv := newStub(t)
	admin := catalog.NewAdminClient(config.CatalogConfig{BaseURL: srv.URL}, zap.NewNop())
	reader := catalog.NewClient(config.CatalogConfig{BaseURL: srv.URL}, zap.NewNop())
	ctx := context.Background()

	created, err := admin.Create(ctx, domain.ProductRequest{
		SKU: "TEST-001", Name: "Widget", Description: "A widget", Price: 29.99, Stock: 5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := reader.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.SKU, got.SKU)

	price := 24.99
	updated, err := admin.Update(ctx, created.ID, domain.ProductUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 24.99, updated.Price)
	assert.Equal(t, "Widget", updated.Name)

	all, err := reader.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, admin.Delete(ctx, created.ID))

	_, err = reader.Get(ctx, created.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	all, err = reader.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCatalogValidation(t *testing.T) {
	_, srv := newStub(t)
	admin := catalog.NewAdminClient(config.CatalogConfig{BaseURL: srv.URL}, zap.NewNop())
	ctx := context.Background()

	t.Run("MissingSKU", func(t *testing.T) {
		_, err := admin.Create(ctx, domain.ProductRequest{Name: "Widget", Price: 1})
		assert.Error(t, err)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		_, err := admin.Create(ctx, domain.ProductRequest{SKU: "X", Name: "Widget", Price: -1})
		assert.Error(t, err)
	})

	t.Run("UpdateMissingProduct", func(t *testing.T) {
		name := "Widget"
		_, err := admin.Update(ctx, "missing", domain.ProductUpdate{Name: &name})
		assert.Error(t, err)
	})

	t.Run("DeleteMissingProduct", func(t *testing.T) {
		assert.Error(t, admin.Delete(ctx, "missing"))
	})
}

func TestCatalogSearch(t *testing.T) {
	stub, srv := newStub(t)
	stub.Seed([]domain.ProductRequest{
		{SKU: "WID-001", Name: "Blue Widget", Description: "Small blue widget", Price: 29.99, Stock: 5},
		{SKU: "WID-002", Name: "Red Widget", Description: "Small red widget", Price: 39.99, Stock: 3},
		{SKU: "GAD-001", Name: "Gadget", Description: "Handheld gadget", Price: 59.99, Stock: 1},
	})
	reader := catalog.NewClient(config.CatalogConfig{BaseURL: srv.URL}, zap.NewNop())
	ctx := context.Background()

	t.Run("MatchesName", func(t *testing.T) {
		results, err := reader.Search(ctx, "widget")
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("MatchesSKUCaseInsensitive", func(t *testing.T) {
		results, err := reader.Search(ctx, "gad-001")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Gadget", results[0].Name)
	})

	t.Run("MatchesDescription", func(t *testing.T) {
		results, err := reader.Search(ctx, "handheld")
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("NoMatches", func(t *testing.T) {
		results, err := reader.Search(ctx, "nonexistent")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestOrderCreation(t *testing.T) {
	_, srv := newStub(t)
	client := orders.NewClient(config.OrdersConfig{BaseURL: srv.URL}, zap.NewNop())

	order, err := client.Create(context.Background(), domain.OrderRequest{
		CustomerID: "jane@example.com",
		Items: []domain.OrderItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: 29.99},
			{ProductID: "p2", Quantity: 1, UnitPrice: 39.99},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.InDelta(t, 99.97, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 59.98, order.Items[0].TotalPrice, 0.001)
	assert.False(t, order.OrderDate.IsZero())
}

func TestOrderIdempotentReplay(t *testing.T) {
	_, srv := newStub(t)

	payload, err := json.Marshal(domain.OrderRequest{
		CustomerID: "jane@example.com",
		Items:      []domain.OrderItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: 10}},
	})
	require.NoError(t, err)

	submit := func() (*http.Response, domain.OrderResponse) {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/orders", bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "same-key")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		var order domain.OrderResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&order))
		return resp, order
	}

	firstResp, first := submit()
	secondResp, second := submit()

	assert.Equal(t, http.StatusCreated, firstResp.StatusCode)
	assert.Equal(t, http.StatusOK, secondResp.StatusCode)
	assert.Equal(t, first.ID, second.ID)
}

func TestOrderStatusTransitions(t *testing.T) {
	_, srv := newStub(t)
	client := orders.NewClient(config.OrdersConfig{BaseURL: srv.URL}, zap.NewNop())

	order, err := client.Create(context.Background(), domain.OrderRequest{
		CustomerID: "jane@example.com",
		Items:      []domain.OrderItemRequest{{ProductID: "p1", Quantity: 1, UnitPrice: 10}},
	})
	require.NoError(t, err)

	setStatus := func(status domain.OrderStatus) int {
		payload, err := json.Marshal(map[string]string{"status": string(status)})
		require.NoError(t, err)
		req, err := http.NewRequest(http.MethodPut,
			srv.URL+"/api/orders/"+order.ID+"/status", bytes.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusConflict, setStatus(domain.OrderStatusDelivered))
	assert.Equal(t, http.StatusOK, setStatus(domain.OrderStatusConfirmed))
	assert.Equal(t, http.StatusOK, setStatus(domain.OrderStatusShipped))
	assert.Equal(t, http.StatusOK, setStatus(domain.OrderStatusDelivered))
	// Delivered is terminal
	assert.Equal(t, http.StatusConflict, setStatus(domain.OrderStatusCancelled))
}
