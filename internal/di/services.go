package di

import (
	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/config"
	"github.com/aristath/retail-agents/internal/modules/coordinator"
	"github.com/aristath/retail-agents/internal/modules/forecasting"
	"github.com/aristath/retail-agents/internal/modules/inventory"
	"github.com/aristath/retail-agents/internal/modules/pricing"
)

// InitializeServices creates the pipeline stages and the coordinator.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) {
	container.Forecaster = forecasting.NewProvider(forecasting.Config{
		Mode:            forecasting.Mode(cfg.ForecastMode),
		Seed:            cfg.ForecastSeed,
		HoldoutFraction: cfg.ForecastHoldoutFraction,
	}, log)

	container.Checker = inventory.NewChecker(cfg.ExpiryHorizon(), nil, log)
	container.Analyzer = pricing.NewAnalyzer(log)

	container.Coordinator = coordinator.New(
		container.Source,
		container.Forecaster,
		container.Checker,
		container.Analyzer,
		coordinator.Config{ParallelPricing: cfg.ParallelPricing},
		log,
	)
}
