package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/portfolio")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("PROJECT_CACHE_TTL", "")
	t.Setenv("SEED_ADMIN_USERNAME", "")
	t.Setenv("SEED_ADMIN_PASSWORD", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, ":5000", cfg.ServerPort)
	assert.Equal(t, time.Duration(0), cfg.JWTExpiry, "tokens never expire unless configured")
	assert.Equal(t, 5*time.Minute, cfg.ProjectCacheTTL)
	assert.Equal(t, "admin", cfg.SeedAdminUsername)
	assert.True(t, cfg.UsesDefaultAdminPassword())
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_EXPIRY", "24h")
	t.Setenv("SEED_ADMIN_PASSWORD", "rotated-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://example.com ,")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.False(t, cfg.UsesDefaultAdminPassword())
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_MissingSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"Bad expiry", "JWT_EXPIRY", "forever"},
		{"Negative expiry", "JWT_EXPIRY", "-1h"},
		{"Bad cache ttl", "PROJECT_CACHE_TTL", "soon"},
		{"Unknown driver", "DB_DRIVER", "mongodb"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
