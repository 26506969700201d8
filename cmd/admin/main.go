package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/catalog"
	"github.com/retailedge/storekit/internal/config"
	"github.com/retailedge/storekit/internal/domain"
)

const usage = `Usage: admin <command> [flags]

Commands:
  list                               List all products
  get <id>                           Show one product
  create --sku --name --price ...    Create a product
  update <id> [--name ...]           Update the given fields only
  delete <id> [--yes]                Delete a product (asks for confirmation)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

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

	client := catalog.NewAdminClient(cfg.Catalog, logger)
	ctx := context.Background()

	if err := run(ctx, client, os.Args[1], os.Args[2:], logger); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *catalog.AdminClient, command string, args []string, logger *zap.Logger) error {
	switch command {
	case "list":
		products, err := client.List(ctx)
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			return errors.New("failed to load products")
		}
		for _, p := range products {
			fmt.Printf("%-36s  %-12s  %-24s  $%8.2f  stock %d\n",
				p.ID, p.SKU, p.Name, p.Price, p.Stock)
		}
		return nil

	case "get":
		if len(args) < 1 {
			return errors.New("usage: admin get <id>")
		}
		product, err := client.Get(ctx, args[0])
		if err != nil {
			logger.Error("Failed to fetch product", zap.Error(err))
			return errors.New("failed to load product")
		}
		fmt.Printf("%+v\n", *product)
		return nil

	case "create":
		return runCreate(ctx, client, args, logger)

	case "update":
		return runUpdate(ctx, client, args, logger)

	case "delete":
		return runDelete(ctx, client, args, logger, stdinConfirm)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runCreate(ctx context.Context, client *catalog.AdminClient, args []string, logger *zap.Logger) error {
	fs := pflag.NewFlagSet("create", pflag.ContinueOnError)
	sku := fs.String("sku", "", "business-unique SKU")
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "product description")
	price := fs.Float64("price", 0, "unit price")
	stock := fs.Int("stock", 0, "stock quantity")
	imageURL := fs.String("image-url", "", "image reference")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sku == "" || *name == "" {
		return errors.New("--sku and --name are required")
	}

	product, err := client.Create(ctx, domain.ProductRequest{
		SKU:         *sku,
		Name:        *name,
		Description: *description,
		Price:       *price,
		Stock:       *stock,
		ImageURL:    *imageURL,
	})
	if err != nil {
		logger.Error("Failed to create product", zap.Error(err))
		return errors.New("failed to save product")
	}

	fmt.Printf("Created product %s (%s)\n", product.ID, product.SKU)
	return nil
}

func runUpdate(ctx context.Context, client *catalog.AdminClient, args []string, logger *zap.Logger) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return errors.New("usage: admin update <id> [flags]")
	}
	id := args[0]

	fs := pflag.NewFlagSet("update", pflag.ContinueOnError)
	sku := fs.String("sku", "", "business-unique SKU")
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "product description")
	price := fs.Float64("price", 0, "unit price")
	stock := fs.Int("stock", 0, "stock quantity")
	imageURL := fs.String("image-url", "", "image reference")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	// Only fields the operator actually passed go into the partial body.
	var update domain.ProductUpdate
	if fs.Changed("sku") {
		update.SKU = sku
	}
	if fs.Changed("name") {
		update.Name = name
	}
	if fs.Changed("description") {
		update.Description = description
	}
	if fs.Changed("price") {
		update.Price = price
	}
	if fs.Changed("stock") {
		update.Stock = stock
	}
	if fs.Changed("image-url") {
		update.ImageURL = imageURL
	}

	product, err := client.Update(ctx, id, update)
	if err != nil {
		logger.Error("Failed to update product", zap.Error(err))
		return errors.New("failed to save product")
	}

	fmt.Printf("Updated product %s (%s)\n", product.ID, product.SKU)
	return nil
}

// runDelete asks for confirmation through confirm so tests can stand in
// for the operator.
func runDelete(ctx context.Context, client *catalog.AdminClient, args []string, logger *zap.Logger, confirm func(string) bool) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return errors.New("usage: admin delete <id> [--yes]")
	}
	id := args[0]

	fs := pflag.NewFlagSet("delete", pflag.ContinueOnError)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	// No request is issued unless the operator explicitly confirms.
	if !*yes && !confirm(fmt.Sprintf("Delete product %s?", id)) {
		fmt.Println("Aborted.")
		return nil
	}

	if err := client.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete product", zap.Error(err))
		return errors.New("failed to delete product")
	}

	fmt.Printf("Deleted product %s\n", id)
	return nil
}

func stdinConfirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
