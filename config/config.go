package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tradeJournal/internal/adapters/logger" // Import the logger package for LogLevel
)

// Config holds all application configuration.
type Config struct {
	// Database
	DBPath string

	// Logging
	LogLevel       logger.LogLevel
	LogDevelopment bool // Human-readable console output instead of JSON

	// Analytics
	Location *time.Location // Zone for hour/day buckets and date labels

	// HTTP API
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/trade_journal.db")
	if strings.TrimSpace(cfg.DBPath) == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Logging
	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	cfg.LogDevelopment = getEnvAsBool("LOG_DEVELOPMENT", false)

	// Analytics
	cfg.Location, err = LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid TIMEZONE: %v", err))
	}

	// HTTP API
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	readTimeoutSeconds, err := getEnvAsIntRequired("HTTP_READ_TIMEOUT_SECONDS", 10)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid HTTP_READ_TIMEOUT_SECONDS: %v", err))
	} else if readTimeoutSeconds <= 0 {
		errs = append(errs, "HTTP_READ_TIMEOUT_SECONDS must be positive")
	}
	cfg.ReadTimeout = time.Duration(readTimeoutSeconds) * time.Second

	writeTimeoutSeconds, err := getEnvAsIntRequired("HTTP_WRITE_TIMEOUT_SECONDS", 10)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid HTTP_WRITE_TIMEOUT_SECONDS: %v", err))
	} else if writeTimeoutSeconds <= 0 {
		errs = append(errs, "HTTP_WRITE_TIMEOUT_SECONDS must be positive")
	}
	cfg.WriteTimeout = time.Duration(writeTimeoutSeconds) * time.Second

	cfg.MetricsEnabled = getEnvAsBool("METRICS_ENABLED", true)

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// LoadLocation resolves a timezone name. Empty and "Local" mean the
// machine's local zone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
