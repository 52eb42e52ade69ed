package coordinator

import (
	"errors"
	"fmt"
)

// State is the progress of one pipeline run.
type State int

const (
	StateInit State = iota
	StateForecastDone
	StateInventoryDone
	StatePricingDone
	StateEnriched
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateForecastDone:
		return "forecast_done"
	case StateInventoryDone:
		return "inventory_done"
	case StatePricingDone:
		return "pricing_done"
	case StateEnriched:
		return "enriched"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Stage names the pipeline step that produced an error.
type Stage string

const (
	StageForecast  Stage = "forecast"
	StageInventory Stage = "inventory"
	StagePricing   Stage = "pricing"
)

// StageError aborts a run. It names the stage that failed; the run produces no
// partial report.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage named by a StageError in err's chain.
func FailedStage(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	return "", false
}
