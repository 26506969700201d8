// catalogd runs the in-memory stub for the catalog and orders services,
// for local development of the store and admin tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/config"
	"github.com/retailedge/storekit/internal/domain"
	"github.com/retailedge/storekit/internal/stubserver"
)

func main() {
	addr := pflag.String("addr", ":8080", "listen address")
	seed := pflag.Bool("seed", false, "preload demo products")
	pflag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	server := stubserver.New(logger)
	if *seed {
		products := server.Seed(demoProducts())
		logger.Info("Seeded demo catalog", zap.Int("products", len(products)))
	}

	logger.Info("Starting stub catalog/orders server", zap.String("addr", *addr))
	if err := server.Router(cfg.Environment).Run(*addr); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func demoProducts() []domain.ProductRequest {
	return []domain.ProductRequest{
		{SKU: "WID-001", Name: "Blue Widget", Description: "A small blue widget", Price: 29.99, Stock: 25},
		{SKU: "WID-002", Name: "Red Widget", Description: "A small red widget", Price: 39.99, Stock: 18},
		{SKU: "GAD-001", Name: "Pocket Gadget", Description: "A handheld gadget", Price: 59.99, Stock: 7},
		{SKU: "GAD-002", Name: "Desk Gadget", Description: "A desk-sized gadget", Price: 129.99, Stock: 3},
	}
}
