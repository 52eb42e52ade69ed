package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"RETAIL_DATA_DIR", "DATA_SOURCE", "SQLITE_PATH", "SALES_FILE", "INVENTORY_FILE", "PRICING_FILE",
	"GO_PORT", "LOG_LEVEL", "DEV_MODE", "FORECAST_MODE", "FORECAST_SEED", "FORECAST_HOLDOUT_FRACTION",
	"EXPIRY_HORIZON_DAYS", "PARALLEL_PRICING", "REPORT_SCHEDULE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.DataDir))
	assert.Equal(t, "data", filepath.Base(cfg.DataDir))
	assert.Equal(t, DataSourceCSV, cfg.DataSource)
	assert.Equal(t, filepath.Join(cfg.DataDir, "retail.db"), cfg.SQLitePath)
	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, ForecastModeInSample, cfg.ForecastMode)
	assert.Equal(t, int64(42), cfg.ForecastSeed)
	assert.Equal(t, 0.2, cfg.ForecastHoldoutFraction)
	assert.Equal(t, 30, cfg.ExpiryHorizonDays)
	assert.Equal(t, 30*24*time.Hour, cfg.ExpiryHorizon())
	assert.False(t, cfg.ParallelPricing)
	assert.Empty(t, cfg.ReportSchedule)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("RETAIL_DATA_DIR", dir)
	t.Setenv("DATA_SOURCE", "sqlite")
	t.Setenv("GO_PORT", "9090")
	t.Setenv("FORECAST_MODE", "holdout")
	t.Setenv("FORECAST_SEED", "7")
	t.Setenv("FORECAST_HOLDOUT_FRACTION", "0.25")
	t.Setenv("EXPIRY_HORIZON_DAYS", "14")
	t.Setenv("PARALLEL_PRICING", "true")
	t.Setenv("REPORT_SCHEDULE", "0 */15 * * * *")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, DataSourceSQLite, cfg.DataSource)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ForecastModeHoldout, cfg.ForecastMode)
	assert.Equal(t, int64(7), cfg.ForecastSeed)
	assert.Equal(t, 0.25, cfg.ForecastHoldoutFraction)
	assert.Equal(t, 14, cfg.ExpiryHorizonDays)
	assert.True(t, cfg.ParallelPricing)
	assert.Equal(t, "0 */15 * * * *", cfg.ReportSchedule)
}

func TestLoad_UnparseableNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_PORT", "http")
	t.Setenv("PARALLEL_PRICING", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8001, cfg.Port)
	assert.False(t, cfg.ParallelPricing)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DataSource:              DataSourceCSV,
			Port:                    8001,
			ForecastMode:            ForecastModeInSample,
			ForecastHoldoutFraction: 0.2,
			ExpiryHorizonDays:       30,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad data source", func(c *Config) { c.DataSource = "postgres" }, "DATA_SOURCE"},
		{"bad forecast mode", func(c *Config) { c.ForecastMode = "magic" }, "FORECAST_MODE"},
		{"fraction zero", func(c *Config) { c.ForecastHoldoutFraction = 0 }, "FORECAST_HOLDOUT_FRACTION"},
		{"fraction one", func(c *Config) { c.ForecastHoldoutFraction = 1 }, "FORECAST_HOLDOUT_FRACTION"},
		{"horizon", func(c *Config) { c.ExpiryHorizonDays = 0 }, "EXPIRY_HORIZON_DAYS"},
		{"port", func(c *Config) { c.Port = 70000 }, "GO_PORT"},
		{"schedule", func(c *Config) { c.ReportSchedule = "every tuesday" }, "REPORT_SCHEDULE"},
		{"five field schedule", func(c *Config) { c.ReportSchedule = "*/5 * * * *" }, "REPORT_SCHEDULE"},
		{"descriptor schedule", func(c *Config) { c.ReportSchedule = "@hourly" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
