// Package config loads runtime configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Env is the application environment, e.g. "development" or "production".
	Env string

	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig

	// RedisURL enables the insights cache when set.
	RedisURL string
	// InsightsTTL is how long cached insights live in Redis.
	InsightsTTL time.Duration
	// CacheNamespace prefixes insights keys in Redis.
	CacheNamespace string
	// AMQPURL enables booking.confirmed publishing when set.
	AMQPURL string
	// AdminToken guards the insights refresh route. Empty disables the route.
	AdminToken string
	// WeatherAPIKey enables weather insights when set.
	WeatherAPIKey string
	// RateLimitPerMinute is the per-IP request budget.
	RateLimitPerMinute int
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	// StaticDir holds the built front-end. Empty disables static serving.
	StaticDir string
}

// DatabaseConfig holds PostgreSQL configuration. An empty URL selects the in-memory backend.
type DatabaseConfig struct {
	URL           string
	MaxConns      int32
	MigrationsDir string
	Seed          bool
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads an optional .env file and then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("reading .env file", "error", err)
	}

	return &Config{
		Env: getEnv("APP_ENV", "production"),
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			StaticDir:       getEnv("STATIC_DIR", ""),
		},
		Database: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", ""),
			MaxConns:      int32(getIntEnv("DB_MAX_CONNS", 10)),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
			Seed:          getBoolEnv("SEED_DESTINATIONS", true),
		},
		CORS: CORSConfig{
			AllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		RedisURL:           getEnv("REDIS_URL", ""),
		InsightsTTL:        getDurationEnv("INSIGHTS_CACHE_TTL", time.Hour),
		CacheNamespace:     getEnv("CACHE_NAMESPACE", "destination:insights"),
		AMQPURL:            getEnv("AMQP_URL", ""),
		AdminToken:         getEnv("ADMIN_TOKEN", ""),
		WeatherAPIKey:      getEnv("OWM_API_KEY", ""),
		RateLimitPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 120),
	}
}

// IsDevelopment reports whether internal error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// UsesDatabase reports whether the PostgreSQL backend is configured.
func (c *Config) UsesDatabase() bool {
	return c.Database.URL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getStringSliceEnv splits a comma-separated value, dropping blank entries.
func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var parts []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return defaultValue
	}
	return parts
}
