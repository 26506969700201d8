package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/retailedge/storekit/internal/cart"
	"github.com/retailedge/storekit/internal/catalog"
	"github.com/retailedge/storekit/internal/checkout"
	"github.com/retailedge/storekit/internal/config"
	"github.com/retailedge/storekit/internal/domain"
	"github.com/retailedge/storekit/internal/orders"
)

const usage = `Usage: store <command> [args]

Commands:
  list                 List all catalog products
  search <query>       Search the catalog
  show <id>            Show one product
  add <id> [qty]       Add a product to the cart
  cart                 Show the cart with totals
  remove <id>          Remove a product from the cart
  set-qty <id> <n>     Set the quantity for a product
  clear                Empty the cart
  checkout             Place an order from the cart
`

func main() {
	pflag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	pflag.Parse()
	args := pflag.Args()
	if len(args) < 1 {
		pflag.Usage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := newLogger(cfg)
	defer logger.Sync()

	cartStore := cart.NewStore(cart.NewFileStorage(cfg.Cart.StoragePath), logger)
	catalogClient := catalog.NewClient(cfg.Catalog, logger)

	// Badge after every cart mutation, the way the storefront header does it.
	cartStore.Subscribe(func(items []domain.CartItem) {
		count := 0
		for _, item := range items {
			count += item.Quantity
		}
		fmt.Printf("Cart: %d item(s)\n", count)
	})

	if err := run(context.Background(), cfg, args, cartStore, catalogClient, logger); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, cartStore *cart.Store, catalogClient *catalog.Client, logger *zap.Logger) error {
	switch args[0] {
	case "list":
		products, err := catalogClient.List(ctx)
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			return errors.New("failed to load products")
		}
		printProducts(products)
		return nil

	case "search":
		if len(args) < 2 {
			return errors.New("usage: store search <query>")
		}
		query := strings.Join(args[1:], " ")
		products, err := catalogClient.Search(ctx, query)
		if err != nil {
			logger.Error("Failed to search products", zap.Error(err))
			return errors.New("failed to load products")
		}
		printProducts(products)
		return nil

	case "show":
		if len(args) < 2 {
			return errors.New("usage: store show <id>")
		}
		product, err := catalogClient.Get(ctx, args[1])
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return fmt.Errorf("product %s not found", args[1])
			}
			logger.Error("Failed to fetch product", zap.Error(err))
			return errors.New("failed to load product")
		}
		printProductDetail(product)
		return nil

	case "add":
		if len(args) < 2 {
			return errors.New("usage: store add <id> [qty]")
		}
		quantity := 1
		if len(args) > 2 {
			n, err := strconv.Atoi(args[2])
			if err != nil || n < 1 {
				return errors.New("quantity must be a positive integer")
			}
			quantity = n
		}
		product, err := catalogClient.Get(ctx, args[1])
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return fmt.Errorf("product %s not found", args[1])
			}
			logger.Error("Failed to fetch product", zap.Error(err))
			return errors.New("failed to load product")
		}
		if quantity > product.Stock {
			// The store accepts it anyway; stock enforcement is a product
			// decision that has not been made.
			fmt.Printf("Warning: requested %d but only %d in stock\n", quantity, product.Stock)
		}
		cartStore.Add(*product, quantity)
		fmt.Printf("Added %s x%d\n", product.Name, quantity)
		return nil

	case "cart":
		printCart(cartStore)
		return nil

	case "remove":
		if len(args) < 2 {
			return errors.New("usage: store remove <id>")
		}
		cartStore.Remove(args[1])
		return nil

	case "set-qty":
		if len(args) < 3 {
			return errors.New("usage: store set-qty <id> <n>")
		}
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return errors.New("quantity must be an integer")
		}
		cartStore.SetQuantity(args[1], n)
		return nil

	case "clear":
		cartStore.Clear()
		return nil

	case "checkout":
		return runCheckout(ctx, cfg, cartStore, logger)

	default:
		pflag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runCheckout(ctx context.Context, cfg *config.Config, cartStore *cart.Store, logger *zap.Logger) error {
	if cartStore.ItemCount() == 0 {
		return errors.New("your cart is empty")
	}

	printCart(cartStore)

	reader := bufio.NewReader(os.Stdin)
	shipping := checkout.ShippingInfo{
		FirstName: prompt(reader, "First name"),
		LastName:  prompt(reader, "Last name"),
		Email:     prompt(reader, "Email"),
		Address:   prompt(reader, "Address"),
		City:      prompt(reader, "City"),
		ZipCode:   prompt(reader, "ZIP code"),
	}
	payment := checkout.PaymentInfo{
		CardNumber: prompt(reader, "Card number"),
		ExpiryDate: prompt(reader, "Expiry (MM/YY)"),
		CVV:        prompt(reader, "CVV"),
	}

	var submitter checkout.OrderSubmitter
	if cfg.Orders.BaseURL != "" {
		submitter = orders.NewClient(cfg.Orders, logger)
	} else {
		fmt.Println("No orders service configured, simulating order submission...")
		submitter = checkout.NewSimulatedSubmitter(2*time.Second, logger)
	}

	order, err := checkout.NewService(cartStore, submitter, logger).
		PlaceOrder(ctx, shipping, payment)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			return errors.New("your cart is empty")
		}
		logger.Error("Checkout failed", zap.Error(err))
		return fmt.Errorf("failed to place order: %w", err)
	}

	fmt.Printf("Order placed successfully! Order ID: %s (status %s)\n", order.ID, order.Status)
	return nil
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func printProducts(products []domain.Product) {
	if len(products) == 0 {
		fmt.Println("No products found.")
		return
	}
	for _, p := range products {
		fmt.Printf("%-36s  %-12s  %-24s  $%8.2f  stock %d\n",
			p.ID, p.SKU, p.Name, p.Price, p.Stock)
	}
}

func printProductDetail(p *domain.Product) {
	fmt.Printf("ID:          %s\n", p.ID)
	fmt.Printf("SKU:         %s\n", p.SKU)
	fmt.Printf("Name:        %s\n", p.Name)
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	fmt.Printf("Price:       $%.2f\n", p.Price)
	fmt.Printf("Stock:       %d\n", p.Stock)
	if p.ImageURL != "" {
		fmt.Printf("Image:       %s\n", p.ImageURL)
	}
}

func printCart(cartStore *cart.Store) {
	items := cartStore.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for _, item := range items {
		fmt.Printf("%-12s  %-24s  $%8.2f x %d\n",
			item.Product.SKU, item.Product.Name, item.Product.Price, item.Quantity)
	}
	totals := cartStore.Totals()
	fmt.Printf("Subtotal: $%s\n", totals.Subtotal.StringFixed(2))
	fmt.Printf("Tax (8%%): $%s\n", totals.Tax.StringFixed(2))
	fmt.Printf("Total:    $%s\n", totals.Total.StringFixed(2))
}

func newLogger(cfg *config.Config) *zap.Logger {
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	return logger
}
