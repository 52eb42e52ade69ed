package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/config"
	"github.com/aristath/retail-agents/internal/database"
	"github.com/aristath/retail-agents/internal/dataset"
)

// InitializeDataSource opens the configured dataset backend.
func InitializeDataSource(container *Container, cfg *config.Config, log zerolog.Logger) error {
	switch cfg.DataSource {
	case config.DataSourceSQLite:
		db, err := database.New(database.Config{
			Path:    cfg.SQLitePath,
			Profile: database.ProfileStandard,
			Name:    "retail",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize retail database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return fmt.Errorf("failed to migrate retail database: %w", err)
		}
		container.DB = db
		container.Source = dataset.NewSQLiteSource(db.Conn(), log)
		log.Info().Str("path", db.Path()).Msg("Using SQLite dataset store")

	default:
		container.Source = dataset.NewCSVSource(dataset.CSVConfig{
			Dir:           cfg.DataDir,
			SalesFile:     cfg.SalesFile,
			InventoryFile: cfg.InventoryFile,
			PricingFile:   cfg.PricingFile,
		}, log)
		log.Info().Str("dir", cfg.DataDir).Msg("Using CSV datasets")
	}

	return nil
}
