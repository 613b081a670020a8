package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort         string
	ServerHost         string
	CORSAllowedOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Rate limiting of the conversion endpoints
	RateLimitWindow   time.Duration
	RateLimitRequests int

	// Catalog export
	S3BucketName string
	AWSRegion    string

	// Inventory
	ExpiringItemsThresholdDays int
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultExpiringItemsThresholdDays = 3
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := loadSharedConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI from environment variables only
func loadCIConfig(cfg *Config) {
	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
}

// loadDevConfig loads configuration for development and tests. Environment
// variables win over Docker secrets, and SQLite is used unless told otherwise.
func loadDevConfig(cfg *Config) {
	cfg.DBDriver = lookup("DB_DRIVER", "db_driver", DriverSQLite)
	cfg.DBHost = lookup("DB_HOST", "db_host", "localhost")
	cfg.DBPort = lookup("DB_PORT", "db_port", "5432")
	cfg.DBUser = lookup("DB_USER", "db_user", "postgres")
	cfg.DBPassword = lookup("DB_PASSWORD", "db_password", "postgres")
	cfg.DBName = lookup("DB_NAME", "db_name", "nugamoto")
	cfg.DBSSLMode = lookup("DB_SSL_MODE", "db_ssl_mode", "disable")
	cfg.RedisPassword = lookup("REDIS_PASSWORD", "redis_password", "")
}

// loadProdConfig loads configuration for production; credentials come from
// Docker secrets only
func loadProdConfig(cfg *Config) {
	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = lookup("DB_HOST", "db_host", "")
	cfg.DBPort = lookup("DB_PORT", "db_port", "5432")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = lookup("DB_NAME", "db_name", "")
	cfg.DBSSLMode = lookup("DB_SSL_MODE", "db_ssl_mode", "require")
	cfg.RedisPassword = readSecret("redis_password")
}

// loadSharedConfig fills the settings that do not depend on the environment
func loadSharedConfig(cfg *Config) error {
	cfg.ServerPort = lookup("SERVER_PORT", "server_port", "8000")
	cfg.ServerHost = lookup("SERVER_HOST", "server_host", "0.0.0.0")
	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8501"))
	cfg.SQLitePath = getEnv("SQLITE_PATH", "nugamoto.db")
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", "migrations")

	cfg.RedisHost = lookup("REDIS_HOST", "redis_host", "")
	cfg.RedisPort = lookup("REDIS_PORT", "redis_port", "6379")
	cfg.RedisURL = lookup("REDIS_URL", "redis_url", "")
	cfg.RedisDB = 0

	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = getEnv("AWS_REGION", "eu-central-1")

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return err
	}
	if cfg.RateLimitRequests, err = getEnvInt("RATE_LIMIT_REQUESTS", 120); err != nil {
		return err
	}
	window := getEnv("RATE_LIMIT_WINDOW", "1m")
	if cfg.RateLimitWindow, err = time.ParseDuration(window); err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_WINDOW %q: %w", window, err)
	}
	if cfg.ExpiringItemsThresholdDays, err = getEnvInt("EXPIRING_ITEMS_THRESHOLD_DAYS", defaultExpiringItemsThresholdDays); err != nil {
		return err
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether a Redis endpoint is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// lookup prefers the environment variable, then the secret, then def
func lookup(envKey, secret, def string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if v := readSecret(secret); v != "" {
		return v
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
