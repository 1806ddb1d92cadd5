// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/api and cmd/scorekeeper.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Sport registry
// --------------------------------------------------------------------------

// SportConfig describes a sport the service keeps fixtures for.
type SportConfig struct {
	ID   string
	Name string
}

// SportRegistry is keyed by lower-case sport id.
var SportRegistry = map[string]SportConfig{
	"cricket": {ID: "cricket", Name: "Cricket"},
}

// LookupSport matches a path segment against the registry ignoring case.
func LookupSport(sport string) (SportConfig, bool) {
	s, ok := SportRegistry[strings.ToLower(strings.TrimSpace(sport))]
	return s, ok
}

// --------------------------------------------------------------------------
// Storage drivers
// --------------------------------------------------------------------------

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// --------------------------------------------------------------------------
// Config is populated from environment variables.
// --------------------------------------------------------------------------

type Config struct {
	// Storage
	StorageDriver    string
	DatabaseURL      string
	DBPoolMinConns   int
	DBPoolMaxConns   int
	DBPoolMaxLife    time.Duration
	DBConnectTimeout time.Duration

	// API server
	APIHost         string
	APIPort         int
	Environment     string // development, staging, production
	Debug           bool
	LogLevel        slog.Level
	ShutdownTimeout time.Duration

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Scorer auth. Empty leaves write routes open.
	ScorerJWTSecret string
	ScorerTokenTTL  time.Duration

	// Observability
	MetricsEnabled       bool
	StorageProbeInterval time.Duration // 0 disables the background probe

	// Display
	DisplayLocation *time.Location
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	driver := strings.ToLower(envOr("STORAGE_DRIVER", DriverPostgres))
	if driver != DriverPostgres && driver != DriverMemory {
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, driver)
	}

	dbURL := envOr("DATABASE_URL", "")
	if driver == DriverPostgres && dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set when STORAGE_DRIVER is %q", DriverPostgres)
	}

	level, err := parseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(envOr("DISPLAY_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
	}

	cfg := &Config{
		StorageDriver:    driver,
		DatabaseURL:      dbURL,
		DBPoolMinConns:   envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns:   envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:    time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,
		DBConnectTimeout: time.Duration(envInt("DB_CONNECT_TIMEOUT_SECONDS", 5)) * time.Second,

		APIHost:         envOr("API_HOST", "0.0.0.0"),
		APIPort:         envInt("API_PORT", envInt("PORT", 8000)),
		Environment:     envOr("ENVIRONMENT", "development"),
		Debug:           envBool("DEBUG", false),
		LogLevel:        level,
		ShutdownTimeout: time.Duration(envInt("SHUTDOWN_TIMEOUT_SECONDS", 15)) * time.Second,

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		ScorerJWTSecret: envOr("SCORER_JWT_SECRET", ""),
		ScorerTokenTTL:  time.Duration(envInt("SCORER_TOKEN_TTL_HOURS", 12)) * time.Hour,

		MetricsEnabled:       envBool("METRICS_ENABLED", true),
		StorageProbeInterval: time.Duration(envInt("STORAGE_PROBE_SECONDS", 30)) * time.Second,

		DisplayLocation: loc,
	}
	if cfg.Debug {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ScorerAuthEnabled reports whether write routes require a scorer token.
func (c *Config) ScorerAuthEnabled() bool {
	return c.ScorerJWTSecret != ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
