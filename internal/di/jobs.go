package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/config"
	"github.com/aristath/retail-agents/internal/scheduler"
)

// RegisterJobs creates the scheduler and registers the report job when a
// schedule is configured. The scheduler is not started here.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) error {
	container.Scheduler = scheduler.New(log)

	if cfg.ReportSchedule == "" {
		log.Info().Msg("Scheduled pipeline report disabled")
		return nil
	}

	job := scheduler.NewReportJob(container.Coordinator, 0, log)
	if err := container.Scheduler.AddJob(cfg.ReportSchedule, job); err != nil {
		return fmt.Errorf("failed to register %s job: %w", job.Name(), err)
	}
	container.ReportJob = job

	return nil
}
