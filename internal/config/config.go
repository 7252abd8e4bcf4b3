package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// GatewayMode selects which gateway implementation the composition wires in.
const (
	GatewaySimulated = "simulated"
	GatewayHTTP      = "http"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string

	InventoryGatewayMode string
	InventoryBaseURL     string
	PaymentGatewayMode   string
	PaymentBaseURL       string
	PaymentAPIKey        string

	GatewayTimeout     time.Duration
	GatewayMaxAttempts int

	IdempotencyTTL     time.Duration
	CatalogCacheTTL    time.Duration
	CatalogDefaultPage int
	CatalogMaxLimit    int
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		InventoryGatewayMode: valueOrDefault(k.String("INVENTORY_GATEWAY_MODE"), GatewaySimulated),
		InventoryBaseURL:     k.String("INVENTORY_BASE_URL"),
		PaymentGatewayMode:   valueOrDefault(k.String("PAYMENT_GATEWAY_MODE"), GatewaySimulated),
		PaymentBaseURL:       k.String("PAYMENT_BASE_URL"),
		PaymentAPIKey:        k.String("PAYMENT_API_KEY"),

		GatewayTimeout:     parseDuration(k.String("GATEWAY_TIMEOUT"), "3s"),
		GatewayMaxAttempts: parseInt(k.String("GATEWAY_MAX_ATTEMPTS"), 3),

		IdempotencyTTL:     parseDuration(k.String("IDEMPOTENCY_TTL"), "10m"),
		CatalogCacheTTL:    parseDuration(k.String("CATALOG_CACHE_TTL"), "5m"),
		CatalogDefaultPage: parseInt(k.String("CATALOG_DEFAULT_LIMIT"), 20),
		CatalogMaxLimit:    parseInt(k.String("CATALOG_MAX_LIMIT"), 100),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.InventoryGatewayMode == GatewayHTTP && cfg.InventoryBaseURL == "" {
		return nil, errors.New("INVENTORY_BASE_URL is required when INVENTORY_GATEWAY_MODE=http")
	}
	if cfg.PaymentGatewayMode == GatewayHTTP && cfg.PaymentBaseURL == "" {
		return nil, errors.New("PAYMENT_BASE_URL is required when PAYMENT_GATEWAY_MODE=http")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	if strings.TrimSpace(value) == "" {
		value = fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	var parsed int
	if _, err := fmt.Sscanf(trimmed, "%d", &parsed); err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// LoadForTests allows tests to override environment variables without
// leaving changes behind.
func LoadForTests(envOverrides map[string]string) (*Config, error) {
	original := make(map[string]string, len(envOverrides))
	for key := range envOverrides {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, envOverrides[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
