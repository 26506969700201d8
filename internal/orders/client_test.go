package orders_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/config"
	"github.com/retailedge/storekit/internal/domain"
	"github.com/retailedge/storekit/internal/orders"
)

func TestClientCreate(t *testing.T) {
	t.Run("SubmitsOrderWithIdempotencyKey", func(t *testing.T) {
		var gotReq domain.OrderRequest
		var gotKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/orders", r.URL.Path)
			gotKey = r.Header.Get("Idempotency-Key")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(domain.OrderResponse{
				ID:          "o1",
				CustomerID:  gotReq.CustomerID,
				Status:      domain.OrderStatusPending,
				TotalAmount: 99.97,
				OrderDate:   time.Now().UTC(),
			})
		}))
		t.Cleanup(srv.Close)
		client := orders.NewClient(config.OrdersConfig{BaseURL: srv.URL}, zap.NewNop())

		order, err := client.Create(context.Background(), domain.OrderRequest{
			CustomerID: "guest",
			Items: []domain.OrderItemRequest{
				{ProductID: "p1", Quantity: 2, UnitPrice: 29.99},
				{ProductID: "p2", Quantity: 1, UnitPrice: 39.99},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "o1", order.ID)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Len(t, gotReq.Items, 2)

		_, err = uuid.Parse(gotKey)
		assert.NoError(t, err, "Idempotency-Key must be a UUID")
	})

	t.Run("NonSuccessStatusFails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(srv.Close)
		client := orders.NewClient(config.OrdersConfig{BaseURL: srv.URL}, zap.NewNop())

		_, err := client.Create(context.Background(), domain.OrderRequest{CustomerID: "guest"})

		assert.ErrorContains(t, err, "failed to create order")
	})
}
