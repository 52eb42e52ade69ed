package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/modules/coordinator"
)

// DefaultReportTimeout bounds one scheduled pipeline run.
const DefaultReportTimeout = 5 * time.Minute

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context) (*coordinator.Report, error)
}

// ReportJob runs the full pipeline and logs a summary of the report.
// Reports are not persisted; only the latest summary is kept in memory.
type ReportJob struct {
	runner  Runner
	timeout time.Duration
	log     zerolog.Logger

	running sync.Mutex

	mu      sync.RWMutex
	last    *coordinator.Summary
	lastRun time.Time
	lastErr error
}

// NewReportJob creates a report job. A zero timeout uses DefaultReportTimeout.
func NewReportJob(runner Runner, timeout time.Duration, log zerolog.Logger) *ReportJob {
	if timeout <= 0 {
		timeout = DefaultReportTimeout
	}
	return &ReportJob{
		runner:  runner,
		timeout: timeout,
		log:     log.With().Str("job", "pipeline_report").Logger(),
	}
}

// Name returns the job name
func (j *ReportJob) Name() string {
	return "pipeline_report"
}

// Run executes the pipeline once. A tick that fires while the previous run is
// still going is skipped.
func (j *ReportJob) Run() error {
	if !j.running.TryLock() {
		j.log.Warn().Msg("Previous pipeline report still running, skipping")
		return nil
	}
	defer j.running.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	report, err := j.runner.Run(ctx)

	j.mu.Lock()
	j.lastRun = time.Now()
	j.lastErr = err
	j.last = nil
	if err == nil {
		s := report.Summary()
		j.last = &s
	}
	j.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to run pipeline: %w", err)
	}

	s := report.Summary()
	j.log.Info().
		Str("run_id", s.RunID).
		Int("forecast_rows", s.ForecastRows).
		Int("high_demand", s.HighDemand).
		Int("restock_needed", s.RestockNeeded).
		Int("expiring_soon", s.ExpiringSoon).
		Int("price_suggestions", s.PriceSuggested).
		Msg("Pipeline report")

	return nil
}

// LastRun describes the most recent run of the job.
type LastRun struct {
	At      time.Time            `json:"at"`
	Summary *coordinator.Summary `json:"summary,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// Last returns the most recent run, or false if the job has not run yet.
func (j *ReportJob) Last() (LastRun, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.lastRun.IsZero() {
		return LastRun{}, false
	}
	run := LastRun{At: j.lastRun, Summary: j.last}
	if j.lastErr != nil {
		run.Error = j.lastErr.Error()
	}
	return run, true
}
