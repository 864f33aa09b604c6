package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath    string
	QuoteServiceURL string
	LogLevel        string
	Port            int
	DevMode         bool

	// PriceRefreshSchedule is a cron expression for the background quote
	// refresh job.
	PriceRefreshSchedule string

	// Asset-class split heuristics for instruments with mixed composition.
	// These are stated approximations, not per-instrument lookups: mutual
	// funds are treated as MFEquitySplit equity / remainder debt, NPS as
	// NPSEquitySplit equity / remainder debt.
	MFEquitySplit  float64
	NPSEquitySplit float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnvAsInt("PORT", 8080),
		DevMode:              getEnvAsBool("DEV_MODE", false),
		DatabasePath:         getEnv("DATABASE_PATH", "./data/nivesh.db"),
		QuoteServiceURL:      getEnv("QUOTE_SERVICE_URL", "https://www.nseindia.com"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		PriceRefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "0 0 */1 * * *"),
		MFEquitySplit:        getEnvAsFloat("MF_EQUITY_SPLIT", 0.60),
		NPSEquitySplit:       getEnvAsFloat("NPS_EQUITY_SPLIT", 0.50),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.MFEquitySplit < 0 || c.MFEquitySplit > 1 {
		return fmt.Errorf("MF_EQUITY_SPLIT must be between 0 and 1")
	}
	if c.NPSEquitySplit < 0 || c.NPSEquitySplit > 1 {
		return fmt.Errorf("NPS_EQUITY_SPLIT must be between 0 and 1")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
