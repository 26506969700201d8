package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/domain"
)

// SimulatedSubmitter imitates order submission when no orders service is
// configured: it waits a fixed delay and fabricates a pending order. It
// exists for offline use of the storefront only; nothing is persisted or
// transmitted.
type SimulatedSubmitter struct {
	delay  time.Duration
	logger *zap.Logger
}

// NewSimulatedSubmitter creates a simulated submitter with the given
// artificial latency.
func NewSimulatedSubmitter(delay time.Duration, logger *zap.Logger) *SimulatedSubmitter {
	return &SimulatedSubmitter{
		delay:  delay,
		logger: logger,
	}
}

// Create waits out the simulated latency and returns a fabricated order.
// The wait is interrupted by context cancellation.
func (s *SimulatedSubmitter) Create(ctx context.Context, req domain.OrderRequest) (*domain.OrderResponse, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	now := time.Now().UTC()
	order := &domain.OrderResponse{
		ID:         uuid.New().String(),
		CustomerID: req.CustomerID,
		OrderDate:  now,
		Status:     domain.OrderStatusPending,
		Items:      make([]domain.OrderItemResponse, 0, len(req.Items)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, item := range req.Items {
		lineTotal := item.UnitPrice * float64(item.Quantity)
		order.TotalAmount += lineTotal
		order.Items = append(order.Items, domain.OrderItemResponse{
			ID:         uuid.New().String(),
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: lineTotal,
		})
	}

	s.logger.Info("Simulated order placed (no orders service configured)",
		zap.String("order_id", order.ID),
		zap.Int("items", len(order.Items)),
	)

	return order, nil
}
