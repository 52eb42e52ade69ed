// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Dataset backends.
const (
	DataSourceCSV    = "csv"
	DataSourceSQLite = "sqlite"
)

// Forecast training modes, mirrored from the forecasting package so config
// stays free of module imports.
const (
	ForecastModeInSample = "in_sample"
	ForecastModeHoldout  = "holdout"
)

// CronParser parses REPORT_SCHEDULE. Expressions carry a leading seconds field.
var CronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Config holds application configuration
type Config struct {
	DataDir    string // always absolute
	DataSource string
	SQLitePath string

	SalesFile     string
	InventoryFile string
	PricingFile   string

	Port     int
	LogLevel string
	DevMode  bool

	ForecastMode            string
	ForecastSeed            int64
	ForecastHoldoutFraction float64
	ExpiryHorizonDays       int
	ParallelPricing         bool

	ReportSchedule string // empty disables the scheduled report
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir, err := filepath.Abs(getEnv("RETAIL_DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	cfg := &Config{
		DataDir:                 dataDir,
		DataSource:              getEnv("DATA_SOURCE", DataSourceCSV),
		SQLitePath:              getEnv("SQLITE_PATH", filepath.Join(dataDir, "retail.db")),
		SalesFile:               getEnv("SALES_FILE", ""),
		InventoryFile:           getEnv("INVENTORY_FILE", ""),
		PricingFile:             getEnv("PRICING_FILE", ""),
		Port:                    getEnvAsInt("GO_PORT", 8001),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		DevMode:                 getEnvAsBool("DEV_MODE", false),
		ForecastMode:            getEnv("FORECAST_MODE", ForecastModeInSample),
		ForecastSeed:            int64(getEnvAsInt("FORECAST_SEED", 42)),
		ForecastHoldoutFraction: getEnvAsFloat("FORECAST_HOLDOUT_FRACTION", 0.2),
		ExpiryHorizonDays:       getEnvAsInt("EXPIRY_HORIZON_DAYS", 30),
		ParallelPricing:         getEnvAsBool("PARALLEL_PRICING", false),
		ReportSchedule:          getEnv("REPORT_SCHEDULE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	switch c.DataSource {
	case DataSourceCSV, DataSourceSQLite:
	default:
		return fmt.Errorf("invalid DATA_SOURCE %q: must be %q or %q", c.DataSource, DataSourceCSV, DataSourceSQLite)
	}

	switch c.ForecastMode {
	case ForecastModeInSample, ForecastModeHoldout:
	default:
		return fmt.Errorf("invalid FORECAST_MODE %q: must be %q or %q", c.ForecastMode, ForecastModeInSample, ForecastModeHoldout)
	}

	if c.ForecastHoldoutFraction <= 0 || c.ForecastHoldoutFraction >= 1 {
		return fmt.Errorf("invalid FORECAST_HOLDOUT_FRACTION %v: must be between 0 and 1", c.ForecastHoldoutFraction)
	}
	if c.ExpiryHorizonDays <= 0 {
		return fmt.Errorf("invalid EXPIRY_HORIZON_DAYS %d: must be positive", c.ExpiryHorizonDays)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid GO_PORT %d", c.Port)
	}
	if c.ReportSchedule != "" {
		if _, err := CronParser.Parse(c.ReportSchedule); err != nil {
			return fmt.Errorf("invalid REPORT_SCHEDULE %q: %w", c.ReportSchedule, err)
		}
	}

	return nil
}

// ExpiryHorizon returns the expiry horizon as a duration.
func (c *Config) ExpiryHorizon() time.Duration {
	return time.Duration(c.ExpiryHorizonDays) * 24 * time.Hour
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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
