package config

import (
	"os"
	"strconv"

	"dqlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. The URL is optional:
// without it the service runs with in-memory report history only.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// AnalysisConfig holds quality engine settings
type AnalysisConfig struct {
	CatalogPath        string
	SampleSize         int
	ConformitySample   int
	Seed               int64
	WeightCompleteness float64
	WeightValidity     float64
	WeightUniqueness   float64
	WeightConsistency  float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Analysis: AnalysisConfig{
			CatalogPath:        getEnvOrDefault("CATALOG_FILE", ""),
			SampleSize:         getEnvIntOrDefault("SAMPLE_SIZE", 1000),
			ConformitySample:   getEnvIntOrDefault("CONFORMITY_SAMPLE", 500),
			Seed:               int64(getEnvIntOrDefault("SAMPLE_SEED", 42)),
			WeightCompleteness: getEnvFloatOrDefault("WEIGHT_COMPLETENESS", 0.25),
			WeightValidity:     getEnvFloatOrDefault("WEIGHT_VALIDITY", 0.35),
			WeightUniqueness:   getEnvFloatOrDefault("WEIGHT_UNIQUENESS", 0.20),
			WeightConsistency:  getEnvFloatOrDefault("WEIGHT_CONSISTENCY", 0.20),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Analysis.SampleSize <= 0 {
		return errors.ConfigInvalid("sample size must be positive")
	}
	if config.Analysis.ConformitySample <= 0 {
		return errors.ConfigInvalid("conformity sample must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
