package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	// Fields that must be set whatever the driver
	Required []string
	// Fields that must be set when the PostgreSQL driver is selected
	RequiredForPostgres []string
	AllowSQLite         bool
}

var (
	postgresFields = []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME"}

	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {
			Required:            []string{"SERVER_PORT"},
			RequiredForPostgres: postgresFields,
			AllowSQLite:         true,
		},
		Test: {
			Required:            []string{"SERVER_PORT"},
			RequiredForPostgres: postgresFields,
			AllowSQLite:         true,
		},
		CI: {
			Required:            []string{"SERVER_PORT"},
			RequiredForPostgres: postgresFields,
			AllowSQLite:         true,
		},
		Production: {
			Required:            []string{"SERVER_PORT", "SERVER_HOST"},
			RequiredForPostgres: postgresFields,
			AllowSQLite:         false,
		},
	}
)

func fieldValue(cfg *Config, name string) string {
	switch name {
	case "SERVER_PORT":
		return cfg.ServerPort
	case "SERVER_HOST":
		return cfg.ServerHost
	case "DB_HOST":
		return cfg.DBHost
	case "DB_PORT":
		return cfg.DBPort
	case "DB_USER":
		return cfg.DBUser
	case "DB_PASSWORD":
		return cfg.DBPassword
	case "DB_NAME":
		return cfg.DBName
	}
	return ""
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errors []string

	for _, field := range reqs.Required {
		if fieldValue(cfg, field) == "" {
			errors = append(errors, ValidationError{Field: field, Message: "is required"}.Error())
		}
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		for _, field := range reqs.RequiredForPostgres {
			if fieldValue(cfg, field) == "" {
				errors = append(errors, ValidationError{Field: field, Message: "is required for the postgres driver"}.Error())
			}
		}
	case DriverSQLite:
		if !reqs.AllowSQLite {
			errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("sqlite is not allowed in %s", env)}.Error())
		}
		if cfg.SQLitePath == "" {
			errors = append(errors, ValidationError{Field: "SQLITE_PATH", Message: "is required for the sqlite driver"}.Error())
		}
	default:
		errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, ValidationError{Field: "RATE_LIMIT_REQUESTS", Message: "must be positive"}.Error())
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"}.Error())
	}
	if cfg.ExpiringItemsThresholdDays < 0 {
		errors = append(errors, ValidationError{Field: "EXPIRING_ITEMS_THRESHOLD_DAYS", Message: "must not be negative"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
