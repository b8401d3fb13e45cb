package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Baaaki/portfolio/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultServerPort    = ":5000"
	defaultAdminUsername = "admin"
	// DefaultAdminPassword is the well-known password the seeded admin gets
	// when SEED_ADMIN_PASSWORD is not set. Operators must rotate it.
	DefaultAdminPassword = "password123"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Config holds everything the process needs at start-up. It is built once in
// main and handed to constructors; nothing reads the environment afterwards.
type Config struct {
	DatabaseURL    string
	DatabaseDriver string
	RedisURL       string
	JWTSecret      string
	ServerPort     string
	Environment    string

	// JWTExpiry of zero issues tokens without an exp claim.
	JWTExpiry       time.Duration
	ProjectCacheTTL time.Duration

	CORSAllowedOrigins []string

	SeedAdminUsername string
	SeedAdminPassword string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// Containers pass the environment directly, a missing .env is fine.
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug("No .env file loaded", zap.Error(err))
	}

	expiry, err := getEnvAsDuration("JWT_EXPIRY", "0")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getEnvAsDuration("PROJECT_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DatabaseDriver:     getEnv("DB_DRIVER", DriverPostgres),
		RedisURL:           os.Getenv("REDIS_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		ServerPort:         getEnv("SERVER_PORT", defaultServerPort),
		Environment:        getEnv("ENVIRONMENT", "development"),
		JWTExpiry:          expiry,
		ProjectCacheTTL:    cacheTTL,
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		SeedAdminUsername:  getEnv("SEED_ADMIN_USERNAME", defaultAdminUsername),
		SeedAdminPassword:  getEnv("SEED_ADMIN_PASSWORD", DefaultAdminPassword),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTExpiry < 0 {
		return errors.New("JWT_EXPIRY must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDefaultAdminPassword reports whether seeding would create the admin
// with the well-known password.
func (c *Config) UsesDefaultAdminPassword() bool {
	return c.SeedAdminPassword == DefaultAdminPassword
}

func getEnv(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

// getEnvAsDuration parses a duration variable, falling back to defaultVal when unset.
func getEnvAsDuration(key, defaultVal string) (time.Duration, error) {
	valStr := getEnv(key, defaultVal)
	d, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, valStr, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
