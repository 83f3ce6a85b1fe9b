package config

import (
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

// Config holds all grid provider configuration
type Config struct {
	PageSize     int
	MaxPageSize  int
	DebugEnabled bool
}

// LoadConfig loads configuration from environment variables.
// .env file is automatically loaded via autoload import.
func LoadConfig() *Config {
	return &Config{
		PageSize:     getIntEnvWithDefault("DATAGRID_PAGE_SIZE", 10),
		MaxPageSize:  getIntEnvWithDefault("DATAGRID_MAX_PAGE_SIZE", 100),
		DebugEnabled: getBoolEnvWithDefault("DEBUG", false),
	}
}

// getIntEnvWithDefault gets an integer environment variable with a default fallback
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

// getBoolEnvWithDefault gets a boolean environment variable with a default fallback
func getBoolEnvWithDefault(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
