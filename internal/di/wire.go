package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/config"
)

// Wire initializes all dependencies and returns a fully configured container
// Order of operations:
// 1. Open the dataset source
// 2. Create the pipeline services
// 3. Register jobs
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{Config: cfg}

	if err := InitializeDataSource(container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize data source: %w", err)
	}

	InitializeServices(container, cfg, log)

	if err := RegisterJobs(container, cfg, log); err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, nil
}
