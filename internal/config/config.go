package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
// Auth is delegated to an upstream gateway when AuthMode is "gateway"
type Config struct {
	// Environment
	Environment string
	Port        string

	// Storage: postgres:// URL or a sqlite file path
	DatabaseURL string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from the gateway
	AuthMode string

	// Prompt engine
	TaxonomyPath  string // directory overriding the embedded tables
	ExportBaseURL string // generator site used for export links
	HistoryLimit  int    // entries kept per owner
	RandomSeed    int64  // 0 seeds wildcard ideas from the clock
}

func Load() *Config {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", "prompts.db"),
		SentryDSN:     getEnv("SENTRY_DSN", ""),
		AuthMode:      getEnv("AUTH_MODE", "none"), // Default to no auth for self-hosted
		TaxonomyPath:  getEnv("TAXONOMY_PATH", ""),
		ExportBaseURL: getEnv("EXPORT_BASE_URL", "https://suno.ai"),
		HistoryLimit:  getEnvInt("HISTORY_LIMIT", 50),
		RandomSeed:    int64(getEnvInt("RANDOM_SEED", 0)),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// IsGatewayMode returns true if running behind the auth gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// IsProduction reports whether metrics and release mode should be enabled
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
