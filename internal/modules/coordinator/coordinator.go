// Package coordinator runs the forecast, inventory and pricing stages in order
// and merges their outputs into one report.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aristath/retail-agents/internal/dataset"
	"github.com/aristath/retail-agents/internal/domain"
	"github.com/aristath/retail-agents/internal/utils"
)

// ForecastProvider predicts demand from sales history.
type ForecastProvider interface {
	Predict(ctx context.Context, sales []domain.SalesRecord) (domain.ForecastResults, error)
}

// InventoryChecker flags restock and expiry risks. A nil signal means no
// demand information is available.
type InventoryChecker interface {
	Check(ctx context.Context, records []domain.InventoryRecord, signal *domain.HighDemandSet) (domain.InventoryResult, error)
}

// PricingAnalyzer suggests price reductions.
type PricingAnalyzer interface {
	Analyze(ctx context.Context, records []domain.PricingRecord) (domain.PricingResult, error)
}

// Config configures a Coordinator.
type Config struct {
	// ParallelPricing runs the pricing stage alongside the forecast and
	// inventory chain instead of after it.
	ParallelPricing bool
}

// Coordinator owns the pipeline. It derives the high-demand set once per run
// and is the only place that does so.
type Coordinator struct {
	source     dataset.Source
	forecaster ForecastProvider
	checker    InventoryChecker
	analyzer   PricingAnalyzer
	cfg        Config
	now        func() time.Time
	log        zerolog.Logger
}

// New creates a coordinator.
func New(
	source dataset.Source,
	forecaster ForecastProvider,
	checker InventoryChecker,
	analyzer PricingAnalyzer,
	cfg Config,
	log zerolog.Logger,
) *Coordinator {
	return &Coordinator{
		source:     source,
		forecaster: forecaster,
		checker:    checker,
		analyzer:   analyzer,
		cfg:        cfg,
		now:        time.Now,
		log:        log.With().Str("component", "coordinator").Logger(),
	}
}

// SetClock replaces the clock used for Report.GeneratedAt.
func (c *Coordinator) SetClock(now func() time.Time) {
	c.now = now
}

// run carries the per-run state.
type run struct {
	id    string
	log   zerolog.Logger
	mu    sync.Mutex
	state State

	forecast   domain.ForecastResults
	highDemand *domain.HighDemandSet
	inventory  domain.InventoryResult
	pricing    domain.PricingResult
}

func (r *run) advance(state State) {
	r.mu.Lock()
	r.state = state
	r.mu.Unlock()
	r.log.Debug().Str("state", state.String()).Msg("Pipeline state changed")
}

// Run executes one full pipeline run. On any stage failure it returns a
// *StageError and no report.
func (c *Coordinator) Run(ctx context.Context) (*Report, error) {
	id := uuid.New().String()
	r := &run{
		id:    id,
		log:   c.log.With().Str("run_id", id).Logger(),
		state: StateInit,
	}

	start := time.Now()
	r.log.Info().Bool("parallel_pricing", c.cfg.ParallelPricing).Msg("Starting pipeline run")

	var err error
	if c.cfg.ParallelPricing {
		err = c.runParallel(ctx, r)
	} else {
		err = c.runSequential(ctx, r)
	}
	if err != nil {
		r.advance(StateFailed)
		r.log.Error().Err(err).Msg("Pipeline run failed")
		return nil, err
	}

	report := &Report{
		RunID:       id,
		GeneratedAt: c.now(),
		Forecast:    r.forecast,
		HighDemand:  r.highDemand,
		Inventory:   r.inventory,
	}
	report.ExpiringSoon, report.Pricing = Enrich(r.inventory.ExpiringSoon, r.pricing.Suggestions, r.highDemand)
	r.advance(StateEnriched)

	r.advance(StateComplete)
	s := report.Summary()
	r.log.Info().
		Int("forecast_rows", s.ForecastRows).
		Int("high_demand", s.HighDemand).
		Int("expiring_soon", s.ExpiringSoon).
		Int("price_suggestions", s.PriceSuggested).
		Dur("duration", time.Since(start)).
		Msg("Pipeline run complete")

	return report, nil
}

func (c *Coordinator) runSequential(ctx context.Context, r *run) error {
	if err := c.forecastStage(ctx, r); err != nil {
		return err
	}
	if err := c.inventoryStage(ctx, r); err != nil {
		return err
	}
	pricing, err := c.pricingStage(ctx, r.log)
	if err != nil {
		return err
	}
	r.pricing = pricing
	r.advance(StatePricingDone)
	return nil
}

// runParallel runs pricing next to the forecast -> inventory chain. Both join
// before enrichment; the first failure cancels the other branch.
func (c *Coordinator) runParallel(ctx context.Context, r *run) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := c.forecastStage(gctx, r); err != nil {
			return err
		}
		return c.inventoryStage(gctx, r)
	})

	var pricing domain.PricingResult
	g.Go(func() error {
		var err error
		pricing, err = c.pricingStage(gctx, r.log)
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	r.pricing = pricing
	r.advance(StatePricingDone)
	return nil
}

func (c *Coordinator) forecastStage(ctx context.Context, r *run) error {
	timer := utils.NewTimer(string(StageForecast), r.log)

	sales, err := c.source.LoadSales(ctx)
	if err != nil {
		return &StageError{Stage: StageForecast, Err: fmt.Errorf("failed to load sales history: %w", err)}
	}

	forecast, err := c.forecaster.Predict(ctx, sales)
	if err != nil {
		return &StageError{Stage: StageForecast, Err: err}
	}

	r.forecast = forecast
	r.highDemand = domain.DeriveHighDemandSet(forecast)
	r.advance(StateForecastDone)
	timer.StopWithRows(len(forecast))
	r.log.Debug().Strs("high_demand", r.highDemand.IDs()).Msg("Forecast stage done")
	return nil
}

func (c *Coordinator) inventoryStage(ctx context.Context, r *run) error {
	timer := utils.NewTimer(string(StageInventory), r.log)

	records, err := c.source.LoadInventory(ctx)
	if err != nil {
		return &StageError{Stage: StageInventory, Err: fmt.Errorf("failed to load inventory: %w", err)}
	}

	result, err := c.checker.Check(ctx, records, r.highDemand)
	if err != nil {
		return &StageError{Stage: StageInventory, Err: err}
	}

	r.inventory = result
	r.advance(StateInventoryDone)
	timer.StopWithRows(len(result.RestockNeeded) + len(result.ExpiringSoon))
	return nil
}

func (c *Coordinator) pricingStage(ctx context.Context, log zerolog.Logger) (domain.PricingResult, error) {
	timer := utils.NewTimer(string(StagePricing), log)

	records, err := c.source.LoadPricing(ctx)
	if err != nil {
		return domain.PricingResult{}, &StageError{Stage: StagePricing, Err: fmt.Errorf("failed to load pricing: %w", err)}
	}

	result, err := c.analyzer.Analyze(ctx, records)
	if err != nil {
		return domain.PricingResult{}, &StageError{Stage: StagePricing, Err: err}
	}
	timer.StopWithRows(len(result.Suggestions))
	return result, nil
}

// Enrich applies the high-demand set to the expiring alerts and the pricing
// suggestions. Inputs are not modified.
//
// Each expiring alert gets a forecast flag. High-demand products get the
// reorder point of the original record scaled and truncated to a whole unit,
// so an alert already scaled by the inventory stage is not scaled twice.
// Set members absent from either list are ignored.
func Enrich(expiring []domain.InventoryAlert, suggestions []domain.PricingSuggestion, set *domain.HighDemandSet) ([]domain.InventoryAlert, []domain.PricingSuggestion) {
	alerts := make([]domain.InventoryAlert, len(expiring))
	for i, a := range expiring {
		a.ForecastFlag = set.FlagFor(a.Record.ProductID)
		if set.Contains(a.Record.ProductID) {
			a.ReorderPoint = float64(int(domain.ScaleReorderPoint(a.Record.ReorderPoint)))
		} else {
			a.ReorderPoint = a.Record.ReorderPoint
		}
		alerts[i] = a
	}

	tagged := make([]domain.PricingSuggestion, len(suggestions))
	for i, s := range suggestions {
		s.DemandTag = set.TagFor(s.ProductID)
		tagged[i] = s
	}

	return alerts, tagged
}
