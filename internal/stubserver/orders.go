package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailedge/storekit/internal/domain"
)

func (s *Server) handleCreateOrder(c *gin.Context) {
	var req domain.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.CustomerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customerId is required"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain at least one item"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Replay of an already-seen submission returns the stored order.
	idempotencyKey := c.GetHeader("Idempotency-Key")
	if idempotencyKey != "" {
		if orderID, ok := s.idempotency[idempotencyKey]; ok {
			c.JSON(http.StatusOK, s.orders[orderID])
			return
		}
	}

	ts := now()
	order := domain.OrderResponse{
		ID:         uuid.New().String(),
		CustomerID: req.CustomerID,
		OrderDate:  ts,
		Status:     domain.OrderStatusPending,
		Items:      make([]domain.OrderItemResponse, 0, len(req.Items)),
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}

	total := decimal.Zero
	for _, item := range req.Items {
		if item.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item quantity must be at least 1"})
			return
		}
		lineTotal := decimal.NewFromFloat(item.UnitPrice).
			Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		order.Items = append(order.Items, domain.OrderItemResponse{
			ID:         uuid.New().String(),
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: lineTotal.InexactFloat64(),
		})
	}
	order.TotalAmount = total.InexactFloat64()

	s.orders[order.ID] = order
	if idempotencyKey != "" {
		s.idempotency[idempotencyKey] = order.ID
	}

	c.JSON(http.StatusCreated, order)
}

func (s *Server) handleGetOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type orderStatusUpdate struct {
	Status domain.OrderStatus `json:"status"`
}

func (s *Server) handleUpdateOrderStatus(c *gin.Context) {
	var req orderStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	if !order.Status.CanTransitionTo(req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "invalid status transition",
			"from":  order.Status,
			"to":    req.Status,
		})
		return
	}

	order.Status = req.Status
	order.UpdatedAt = now()
	s.orders[order.ID] = order
	c.JSON(http.StatusOK, order)
}
