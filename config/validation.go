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

// ValidateConfig checks if the configuration meets the requirements for
// the current environment. Development and test default to a local
// SQLite file; production additionally requires the LLM key and Redis.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "SERVER_PORT must not be empty")
	}
	if cfg.DBHost == "" && cfg.SQLitePath == "" {
		errors = append(errors, "either DB_HOST or SQLITE_PATH must be set")
	}
	if cfg.DBHost != "" {
		if cfg.DBUser == "" {
			errors = append(errors, "DB_USER is required when DB_HOST is set")
		}
		if cfg.DBName == "" {
			errors = append(errors, "DB_NAME is required when DB_HOST is set")
		}
	}

	if IsProduction() {
		if cfg.LLMAPIKey == "" {
			errors = append(errors, "LLM_API_KEY or LLM_API_KEY_FILE is required in production")
		}
		if cfg.RedisHost == "" && cfg.RedisURL == "" {
			errors = append(errors, "REDIS_HOST or REDIS_URL is required in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
