package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/cart"
	"github.com/retailedge/storekit/internal/domain"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// ShippingInfo is the shipping form collected at checkout.
type ShippingInfo struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
	City      string
	ZipCode   string
}

// PaymentInfo is the payment form collected at checkout. The fields are
// checked for presence only; there is no payment processor behind this.
type PaymentInfo struct {
	CardNumber string
	ExpiryDate string
	CVV        string
}

// Validate checks that every required shipping field is present.
func (s ShippingInfo) Validate() error {
	return requireFields(map[string]string{
		"first name": s.FirstName,
		"last name":  s.LastName,
		"email":      s.Email,
		"address":    s.Address,
		"city":       s.City,
		"zip code":   s.ZipCode,
	})
}

// Validate checks that every required payment field is present.
func (p PaymentInfo) Validate() error {
	return requireFields(map[string]string{
		"card number": p.CardNumber,
		"expiry date": p.ExpiryDate,
		"cvv":         p.CVV,
	})
}

func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 1 {
		return fmt.Errorf("%s is required", missing[0])
	}
	if len(missing) > 1 {
		return fmt.Errorf("%d required fields are missing", len(missing))
	}
	return nil
}

// OrderSubmitter places an order with the orders service. orders.Client
// satisfies this; SimulatedSubmitter stands in when no service is
// configured.
type OrderSubmitter interface {
	Create(ctx context.Context, req domain.OrderRequest) (*domain.OrderResponse, error)
}

// Service runs the checkout flow: validate the forms, build an order from
// the current cart, submit it, and clear the cart only on success.
type Service struct {
	cart      *cart.Store
	submitter OrderSubmitter
	logger    *zap.Logger
}

// NewService creates a checkout service.
func NewService(cartStore *cart.Store, submitter OrderSubmitter, logger *zap.Logger) *Service {
	return &Service{
		cart:      cartStore,
		submitter: submitter,
		logger:    logger,
	}
}

// PlaceOrder submits the current cart as an order. The cart is left
// untouched on any failure so the shopper can retry.
func (s *Service) PlaceOrder(ctx context.Context, shipping ShippingInfo, payment PaymentInfo) (*domain.OrderResponse, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := shipping.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shipping info: %w", err)
	}
	if err := payment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payment info: %w", err)
	}

	req := domain.OrderRequest{
		// The storefront has no authenticated customer; the email from the
		// shipping form identifies the order.
		CustomerID: shipping.Email,
		Items:      make([]domain.OrderItemRequest, 0, len(items)),
	}
	for _, item := range items {
		req.Items = append(req.Items, domain.OrderItemRequest{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		})
	}

	order, err := s.submitter.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.cart.Clear()
	s.logger.Info("Checkout complete",
		zap.String("order_id", order.ID),
		zap.Float64("total", order.TotalAmount),
	)

	return order, nil
}
