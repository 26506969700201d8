// Package stubserver is a self-contained, in-memory stand-in for the
// catalog and orders services. It exists so the storefront and admin
// tooling can be exercised locally and in integration tests without the
// real backends; it is not a production component.
package stubserver

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/domain"
)

// Server holds the in-memory catalog and order state behind the stub
// HTTP API.
type Server struct {
	mu           sync.Mutex
	products     map[string]domain.Product
	productOrder []string
	orders       map[string]domain.OrderResponse
	idempotency  map[string]string
	logger       *zap.Logger
}

// New creates an empty stub server.
func New(logger *zap.Logger) *Server {
	return &Server{
		products:    make(map[string]domain.Product),
		orders:      make(map[string]domain.OrderResponse),
		idempotency: make(map[string]string),
		logger:      logger,
	}
}

// Router creates and configures the Gin router for the stub API.
func (s *Server) Router(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(s.logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	catalogRoutes := router.Group("/api/catalog")
	{
		catalogRoutes.GET("/products", s.handleListProducts)
		catalogRoutes.GET("/products/search", s.handleSearchProducts)
		catalogRoutes.GET("/products/:id", s.handleGetProduct)
		catalogRoutes.POST("/products", s.handleCreateProduct)
		catalogRoutes.PUT("/products/:id", s.handleUpdateProduct)
		catalogRoutes.DELETE("/products/:id", s.handleDeleteProduct)
	}

	router.POST("/api/orders", s.handleCreateOrder)
	router.GET("/api/orders/:id", s.handleGetOrder)
	router.PUT("/api/orders/:id/status", s.handleUpdateOrderStatus)

	return router
}

// Seed preloads demo products, assigning IDs and timestamps the way the
// real catalog service would.
func (s *Server) Seed(products []domain.ProductRequest) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, req := range products {
		out = append(out, s.insertProduct(req))
	}
	return out
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
