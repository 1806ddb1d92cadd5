package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URL", "API_PORT", "PORT", "LOG_LEVEL", "DEBUG",
		"RATE_LIMIT_WINDOW", "SCORER_JWT_SECRET", "METRICS_ENABLED", "DISPLAY_TIMEZONE",
		"SCORER_TOKEN_TTL_HOURS", "STORAGE_PROBE_SECONDS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.ScorerAuthEnabled())
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 30*time.Second, cfg.StorageProbeInterval)
	assert.Equal(t, 12*time.Hour, cfg.ScorerTokenTTL)
	assert.Equal(t, time.UTC, cfg.DisplayLocation)
}

func TestLoad_PostgresRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/scores")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SCORER_JWT_SECRET", "s3cret")
	t.Setenv("DISPLAY_TIMEZONE", "Asia/Kolkata")
	t.Setenv("STORAGE_PROBE_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.ScorerAuthEnabled())
	assert.Equal(t, "Asia/Kolkata", cfg.DisplayLocation.String())
	assert.Zero(t, cfg.StorageProbeInterval)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := Load()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")

	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "loud")
	_, err = Load()
	assert.ErrorContains(t, err, "LOG_LEVEL")
}

func TestLookupSport(t *testing.T) {
	s, ok := LookupSport("CRICKET")
	assert.True(t, ok)
	assert.Equal(t, "cricket", s.ID)

	_, ok = LookupSport("nba")
	assert.False(t, ok)
}

func TestEnvHelpersFallBack(t *testing.T) {
	t.Setenv("X_INT", "nope")
	t.Setenv("X_BOOL", "maybe")
	assert.Equal(t, 7, envInt("X_INT", 7))
	assert.True(t, envBool("X_BOOL", true))
	assert.Equal(t, []string{"d"}, envList("X_UNSET", []string{"d"}))
}
