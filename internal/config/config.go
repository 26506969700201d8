package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	LogLevel    string
	Catalog     CatalogConfig
	Orders      OrdersConfig
	Cart        CartConfig
}

type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

type OrdersConfig struct {
	// BaseURL empty means no orders service is reachable and checkout
	// falls back to the simulated submitter.
	BaseURL string
	Timeout time.Duration
}

type CartConfig struct {
	// StoragePath is the JSON file holding the persisted cart.
	StoragePath string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CATALOG_BASE_URL", "http://localhost:8080")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", "30")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeoutSecs, err := strconv.Atoi(getEnvOrViper("HTTP_TIMEOUT_SECONDS", "30"))
	if err != nil || timeoutSecs <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be a positive integer")
	}
	timeout := time.Duration(timeoutSecs) * time.Second

	cfg := &Config{
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Catalog: CatalogConfig{
			BaseURL: getEnvOrViper("CATALOG_BASE_URL", "http://localhost:8080"),
			Timeout: timeout,
		},
		Orders: OrdersConfig{
			BaseURL: getEnvOrViper("ORDERS_BASE_URL", ""),
			Timeout: timeout,
		},
		Cart: CartConfig{
			StoragePath: getEnvOrViper("CART_STORAGE_PATH", defaultCartPath()),
		},
	}

	return cfg, nil
}

func defaultCartPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "retailedge_cart.json"
	}
	return filepath.Join(home, ".retailedge", "cart.json")
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
