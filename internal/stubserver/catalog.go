package stubserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/retailedge/storekit/internal/domain"
)

func (s *Server) handleListProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.JSON(http.StatusOK, s.listLocked())
}

func (s *Server) handleGetProduct(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) handleSearchProducts(c *gin.Context) {
	query := strings.ToLower(c.Query("q"))

	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]domain.Product, 0)
	for _, product := range s.listLocked() {
		if query == "" ||
			strings.Contains(strings.ToLower(product.Name), query) ||
			strings.Contains(strings.ToLower(product.SKU), query) ||
			strings.Contains(strings.ToLower(product.Description), query) {
			matches = append(matches, product)
		}
	}
	c.JSON(http.StatusOK, matches)
}

func (s *Server) handleCreateProduct(c *gin.Context) {
	var req domain.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := validateProductRequest(req); err != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	product := s.insertProduct(req)
	c.JSON(http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(c *gin.Context) {
	var req domain.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock must not be negative"})
			return
		}
		product.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	product.UpdatedAt = now()

	s.products[product.ID] = product
	c.JSON(http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.products[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	delete(s.products, id)
	for i, pid := range s.productOrder {
		if pid == id {
			s.productOrder = append(s.productOrder[:i], s.productOrder[i+1:]...)
			break
		}
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) insertProduct(req domain.ProductRequest) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := now()
	product := domain.Product{
		ID:          uuid.New().String(),
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	s.products[product.ID] = product
	s.productOrder = append(s.productOrder, product.ID)
	return product
}

// listLocked returns products in creation order. Callers hold s.mu.
func (s *Server) listLocked() []domain.Product {
	out := make([]domain.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		out = append(out, s.products[id])
	}
	return out
}

func validateProductRequest(req domain.ProductRequest) string {
	switch {
	case strings.TrimSpace(req.SKU) == "":
		return "sku is required"
	case strings.TrimSpace(req.Name) == "":
		return "name is required"
	case req.Price < 0:
		return "price must not be negative"
	case req.Stock < 0:
		return "stock must not be negative"
	default:
		return ""
	}
}
