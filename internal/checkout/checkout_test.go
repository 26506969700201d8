package checkout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/cart"
	"github.com/retailedge/storekit/internal/checkout"
	"github.com/retailedge/storekit/internal/domain"
)

type memStorage struct {
	items []domain.CartItem
}

func (m *memStorage) Load() ([]domain.CartItem, error) { return m.items, nil }
func (m *memStorage) Save(items []domain.CartItem) error {
	m.items = append([]domain.CartItem(nil), items...)
	return nil
}

type fakeSubmitter struct {
	req  *domain.OrderRequest
	resp *domain.OrderResponse
	err  error
}

func (f *fakeSubmitter) Create(_ context.Context, req domain.OrderRequest) (*domain.OrderResponse, error) {
	f.req = &req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func validShipping() checkout.ShippingInfo {
	return checkout.ShippingInfo{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Address:   "1 Main St",
		City:      "Springfield",
		ZipCode:   "12345",
	}
}

func validPayment() checkout.PaymentInfo {
	return checkout.PaymentInfo{
		CardNumber: "4111 1111 1111 1111",
		ExpiryDate: "12/27",
		CVV:        "123",
	}
}

func newCart(t *testing.T) *cart.Store {
	t.Helper()
	return cart.NewStore(&memStorage{}, zap.NewNop())
}

func TestPlaceOrder(t *testing.T) {
	t.Run("SubmitsCartAndClearsOnSuccess", func(t *testing.T) {
		c := newCart(t)
		c.Add(domain.Product{ID: "p1", SKU: "TEST-001", Price: 29.99}, 2)
		c.Add(domain.Product{ID: "p2", SKU: "TEST-002", Price: 39.99}, 1)
		submitter := &fakeSubmitter{resp: &domain.OrderResponse{ID: "o1", TotalAmount: 99.97}}
		svc := checkout.NewService(c, submitter, zap.NewNop())

		order, err := svc.PlaceOrder(context.Background(), validShipping(), validPayment())

		require.NoError(t, err)
		assert.Equal(t, "o1", order.ID)
		assert.Empty(t, c.Items())

		require.NotNil(t, submitter.req)
		assert.Equal(t, "jane@example.com", submitter.req.CustomerID)
		require.Len(t, submitter.req.Items, 2)
		assert.Equal(t, domain.OrderItemRequest{ProductID: "p1", Quantity: 2, UnitPrice: 29.99}, submitter.req.Items[0])
	})

	t.Run("EmptyCartIsRejectedBeforeSubmission", func(t *testing.T) {
		submitter := &fakeSubmitter{}
		svc := checkout.NewService(newCart(t), submitter, zap.NewNop())

		_, err := svc.PlaceOrder(context.Background(), validShipping(), validPayment())

		assert.ErrorIs(t, err, checkout.ErrEmptyCart)
		assert.Nil(t, submitter.req)
	})

	t.Run("SubmissionFailureKeepsCart", func(t *testing.T) {
		c := newCart(t)
		c.Add(domain.Product{ID: "p1", Price: 29.99}, 1)
		submitter := &fakeSubmitter{err: errors.New("service unavailable")}
		svc := checkout.NewService(c, submitter, zap.NewNop())

		_, err := svc.PlaceOrder(context.Background(), validShipping(), validPayment())

		assert.Error(t, err)
		assert.Len(t, c.Items(), 1)
	})

	t.Run("MissingShippingFieldFails", func(t *testing.T) {
		c := newCart(t)
		c.Add(domain.Product{ID: "p1", Price: 29.99}, 1)
		submitter := &fakeSubmitter{}
		svc := checkout.NewService(c, submitter, zap.NewNop())

		shipping := validShipping()
		shipping.Email = ""
		_, err := svc.PlaceOrder(context.Background(), shipping, validPayment())

		assert.ErrorContains(t, err, "invalid shipping info")
		assert.Nil(t, submitter.req)
		assert.Len(t, c.Items(), 1)
	})

	t.Run("MissingPaymentFieldFails", func(t *testing.T) {
		c := newCart(t)
		c.Add(domain.Product{ID: "p1", Price: 29.99}, 1)
		svc := checkout.NewService(c, &fakeSubmitter{}, zap.NewNop())

		payment := validPayment()
		payment.CVV = "  "
		_, err := svc.PlaceOrder(context.Background(), validShipping(), payment)

		assert.ErrorContains(t, err, "invalid payment info")
	})
}

func TestSimulatedSubmitter(t *testing.T) {
	t.Run("FabricatesPendingOrderWithTotals", func(t *testing.T) {
		submitter := checkout.NewSimulatedSubmitter(time.Millisecond, zap.NewNop())

		order, err := submitter.Create(context.Background(), domain.OrderRequest{
			CustomerID: "jane@example.com",
			Items: []domain.OrderItemRequest{
				{ProductID: "p1", Quantity: 2, UnitPrice: 29.99},
				{ProductID: "p2", Quantity: 1, UnitPrice: 39.99},
			},
		})

		require.NoError(t, err)
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.InDelta(t, 99.97, order.TotalAmount, 0.001)
		require.Len(t, order.Items, 2)
		assert.InDelta(t, 59.98, order.Items[0].TotalPrice, 0.001)
	})

	t.Run("HonorsContextCancellation", func(t *testing.T) {
		submitter := checkout.NewSimulatedSubmitter(time.Minute, zap.NewNop())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := submitter.Create(ctx, domain.OrderRequest{CustomerID: "x"})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
