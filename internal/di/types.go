// Package di provides dependency injection wiring and initialization.
package di

import (
	"github.com/aristath/retail-agents/internal/config"
	"github.com/aristath/retail-agents/internal/database"
	"github.com/aristath/retail-agents/internal/dataset"
	"github.com/aristath/retail-agents/internal/modules/coordinator"
	"github.com/aristath/retail-agents/internal/modules/forecasting"
	"github.com/aristath/retail-agents/internal/modules/inventory"
	"github.com/aristath/retail-agents/internal/modules/pricing"
	"github.com/aristath/retail-agents/internal/scheduler"
)

// Container holds all application dependencies. It is built once by Wire and
// passed to the server.
type Container struct {
	Config *config.Config

	// DB is the dataset store; nil when datasets are read from CSV.
	DB     *database.DB
	Source dataset.Source

	Forecaster  *forecasting.Provider
	Checker     *inventory.Checker
	Analyzer    *pricing.Analyzer
	Coordinator *coordinator.Coordinator

	Scheduler *scheduler.Scheduler
	ReportJob *scheduler.ReportJob // nil when REPORT_SCHEDULE is empty
}

// Close releases the container's resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
