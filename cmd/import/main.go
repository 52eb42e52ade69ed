// Package main loads the three CSV datasets into the SQLite dataset store.
// The store at SQLITE_PATH is migrated first and its tables are replaced.
package main

import (
	"context"
	"time"

	"github.com/aristath/retail-agents/internal/config"
	"github.com/aristath/retail-agents/internal/database"
	"github.com/aristath/retail-agents/internal/dataset"
	"github.com/aristath/retail-agents/internal/utils"
	"github.com/aristath/retail-agents/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true})
	logger.SetGlobalLogger(log)

	db, err := database.New(database.Config{
		Path:    cfg.SQLitePath,
		Profile: database.ProfileStandard,
		Name:    "retail",
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("Failed to open dataset store")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate dataset store")
	}

	source := dataset.NewCSVSource(dataset.CSVConfig{
		Dir:           cfg.DataDir,
		SalesFile:     cfg.SalesFile,
		InventoryFile: cfg.InventoryFile,
		PricingFile:   cfg.PricingFile,
	}, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	timer := utils.NewTimer("import", log)
	counts, err := dataset.Import(ctx, db.Conn(), source)
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}
	elapsed := timer.Stop()

	log.Info().
		Int("sales", counts.Sales).
		Int("inventory", counts.Inventory).
		Int("pricing", counts.Pricing).
		Dur("duration", elapsed).
		Str("path", cfg.SQLitePath).
		Msg("Datasets imported")
}
