package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SessionStorageMemory   = "memory"
	SessionStoragePostgres = "postgres"

	maxPageSize = 250
)

type Config struct {
	Port           string
	Environment    string
	LogLevel       string
	Database       DatabaseConfig
	Shopify        ShopifyConfig
	Listing        ListingConfig
	SessionStorage string // SESSION_STORAGE: memory or postgres
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the lib/pq connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type ShopifyConfig struct {
	APIVersion string
	APISecret  string        // SHOPIFY_API_SECRET: verifies the hmac query signature on admin requests
	Timeout    time.Duration // SHOPIFY_TIMEOUT: upper bound for one Admin API call

	// Optional single-store offline session, seeded into session storage on start-up
	ShopDomain  string
	AccessToken string
}

type ListingConfig struct {
	PageSize       int // PAGE_SIZE: N for cursor-paginated views
	ReportPageSize int // REPORT_PAGE_SIZE: N for collections and reports
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(getEnvOrViper("SHOPIFY_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("SHOPIFY_TIMEOUT: %w", err)
	}
	pageSize, err := strconv.Atoi(getEnvOrViper("PAGE_SIZE", "20"))
	if err != nil {
		return nil, fmt.Errorf("PAGE_SIZE: %w", err)
	}
	reportPageSize, err := strconv.Atoi(getEnvOrViper("REPORT_PAGE_SIZE", "5"))
	if err != nil {
		return nil, fmt.Errorf("REPORT_PAGE_SIZE: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "shopadmin"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Shopify: ShopifyConfig{
			APIVersion:  strings.TrimSpace(getEnvOrViper("SHOPIFY_API_VERSION", "2026-01")),
			APISecret:   strings.TrimSpace(getEnvOrViper("SHOPIFY_API_SECRET", "")),
			Timeout:     timeout,
			ShopDomain:  strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			AccessToken: strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
		},
		Listing: ListingConfig{
			PageSize:       pageSize,
			ReportPageSize: reportPageSize,
		},
		SessionStorage: strings.ToLower(strings.TrimSpace(getEnvOrViper("SESSION_STORAGE", SessionStorageMemory))),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and combinations that Load cannot express as defaults
func (c *Config) Validate() error {
	if c.Shopify.APIVersion == "" {
		return fmt.Errorf("SHOPIFY_API_VERSION is required")
	}
	if c.Shopify.Timeout <= 0 {
		return fmt.Errorf("SHOPIFY_TIMEOUT must be positive")
	}
	if (c.Shopify.ShopDomain == "") != (c.Shopify.AccessToken == "") {
		return fmt.Errorf("SHOPIFY_SHOP_DOMAIN and SHOPIFY_ACCESS_TOKEN must be set together")
	}
	if c.Listing.PageSize < 1 || c.Listing.PageSize > maxPageSize {
		return fmt.Errorf("PAGE_SIZE must be between 1 and %d", maxPageSize)
	}
	if c.Listing.ReportPageSize < 1 || c.Listing.ReportPageSize > maxPageSize {
		return fmt.Errorf("REPORT_PAGE_SIZE must be between 1 and %d", maxPageSize)
	}
	switch c.SessionStorage {
	case SessionStorageMemory, SessionStoragePostgres:
	default:
		return fmt.Errorf("SESSION_STORAGE must be %q or %q", SessionStorageMemory, SessionStoragePostgres)
	}
	return nil
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
