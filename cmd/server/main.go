// Package main is the entry point for the retail agents service.
// It serves the demand forecast, inventory, pricing and combined report
// endpoints and optionally runs the combined report on a schedule.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/retail-agents/internal/config"
	"github.com/aristath/retail-agents/internal/di"
	"github.com/aristath/retail-agents/internal/server"
	"github.com/aristath/retail-agents/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("data_source", cfg.DataSource).
		Str("data_dir", cfg.DataDir).
		Str("forecast_mode", cfg.ForecastMode).
		Bool("parallel_pricing", cfg.ParallelPricing).
		Msg("Starting retail agents")

	container, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer container.Close()

	srv := server.New(server.Config{
		Log:       log,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		Container: container,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	if container.ReportJob != nil {
		container.Scheduler.Start()
		log.Info().Str("schedule", cfg.ReportSchedule).Msg("Scheduled pipeline report enabled")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if container.Scheduler != nil {
		container.Scheduler.Stop()
	}

	// In-flight pipeline runs get up to 10 seconds to finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
