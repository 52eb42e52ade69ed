// Package forecasting predicts per (product, store) demand from sales history.
package forecasting

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/retail-agents/internal/domain"
)

// Mode selects how the model is trained relative to the rows it predicts.
type Mode string

const (
	// ModeInSample fits on every row and predicts the same rows.
	ModeInSample Mode = "in_sample"
	// ModeHoldout fits on a seeded share of the rows and predicts all of them,
	// scoring the held-out share separately.
	ModeHoldout Mode = "holdout"
)

// Defaults for the forecast provider.
const (
	DefaultSeed            int64   = 42
	DefaultHoldoutFraction float64 = 0.2
)

// Config configures a Provider.
type Config struct {
	Mode            Mode
	Seed            int64
	HoldoutFraction float64
	NewModel        ModelFactory // nil uses a RidgeModel with DefaultLambda
}

// Provider turns sales history into demand forecasts.
type Provider struct {
	cfg Config
	log zerolog.Logger
}

// NewProvider creates a forecast provider.
func NewProvider(cfg Config, log zerolog.Logger) *Provider {
	if cfg.Mode == "" {
		cfg.Mode = ModeInSample
	}
	if cfg.HoldoutFraction <= 0 || cfg.HoldoutFraction >= 1 {
		cfg.HoldoutFraction = DefaultHoldoutFraction
	}
	if cfg.NewModel == nil {
		cfg.NewModel = func() Model { return NewRidgeModel(DefaultLambda) }
	}

	return &Provider{
		cfg: cfg,
		log: log.With().Str("component", "forecast_provider").Logger(),
	}
}

// Predict forecasts demand for every complete sales record, in input order.
// Incomplete records are dropped. An empty input or a model that cannot be fitted
// yields an empty forecast rather than an error.
func (p *Provider) Predict(ctx context.Context, sales []domain.SalesRecord) (domain.ForecastResults, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]domain.SalesRecord, 0, len(sales))
	for _, rec := range sales {
		if rec.Complete() {
			records = append(records, rec)
		}
	}

	if dropped := len(sales) - len(records); dropped > 0 {
		p.log.Debug().
			Int("dropped", dropped).
			Int("kept", len(records)).
			Msg("Dropped sales rows with missing values")
	}

	if len(records) == 0 {
		return domain.ForecastResults{}, nil
	}

	table := BuildEncodingTable(records)
	p.log.Debug().
		Int("rows", len(records)).
		Int("products", table.Cardinality(domain.ColumnProductID)).
		Int("stores", table.Cardinality(domain.ColumnStoreID)).
		Msg("Built encoding table")
	x, y, err := BuildDesignMatrix(records, table)
	if err != nil {
		return nil, fmt.Errorf("failed to build features: %w", err)
	}

	predictions, err := p.fitAndPredict(x, y)
	if err != nil {
		p.log.Warn().Err(err).Int("rows", len(records)).Msg("Forecast model failed, returning empty forecast")
		return domain.ForecastResults{}, nil
	}

	results := make(domain.ForecastResults, len(records))
	for i, rec := range records {
		results[i] = domain.ForecastResult{
			ProductID:              rec.ProductID,
			StoreID:                rec.StoreID,
			Price:                  *rec.Price,
			PredictedSalesQuantity: predictions[i],
		}
	}

	return results, nil
}

func (p *Provider) fitAndPredict(x *mat.Dense, y []float64) ([]float64, error) {
	model := p.cfg.NewModel()

	switch p.cfg.Mode {
	case ModeHoldout:
		return p.fitHoldout(model, x, y)
	case ModeInSample:
		if err := model.Fit(x, y); err != nil {
			return nil, fmt.Errorf("failed to fit model: %w", err)
		}
		predictions, err := model.Predict(x)
		if err != nil {
			return nil, fmt.Errorf("failed to predict: %w", err)
		}
		p.log.Debug().
			Int("rows", len(y)).
			Float64("r_squared", stat.RSquaredFrom(predictions, y, nil)).
			Msg("Fitted in-sample forecast model")
		return predictions, nil
	default:
		return nil, fmt.Errorf("unknown forecast mode %q", p.cfg.Mode)
	}
}

// fitHoldout trains on a seeded shuffle of the rows and predicts all of them.
func (p *Provider) fitHoldout(model Model, x *mat.Dense, y []float64) ([]float64, error) {
	rows, cols := x.Dims()
	trainIdx, testIdx := SplitIndices(rows, p.cfg.HoldoutFraction, p.cfg.Seed)

	trainX := mat.NewDense(len(trainIdx), cols, nil)
	trainY := make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		trainX.SetRow(i, x.RawRowView(idx))
		trainY[i] = y[idx]
	}

	if err := model.Fit(trainX, trainY); err != nil {
		return nil, fmt.Errorf("failed to fit model: %w", err)
	}
	predictions, err := model.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("failed to predict: %w", err)
	}

	event := p.log.Debug().Int("train_rows", len(trainIdx)).Int("holdout_rows", len(testIdx))
	if len(testIdx) >= 2 {
		estimates := make([]float64, len(testIdx))
		actual := make([]float64, len(testIdx))
		for i, idx := range testIdx {
			estimates[i] = predictions[idx]
			actual[i] = y[idx]
		}
		if r2 := stat.RSquaredFrom(estimates, actual, nil); !math.IsNaN(r2) {
			event = event.Float64("holdout_r_squared", r2)
		}
	}
	event.Msg("Fitted holdout forecast model")

	return predictions, nil
}

// SplitIndices shuffles 0..n-1 with the seed and splits off the holdout share.
// The training share always keeps at least one row.
func SplitIndices(n int, holdoutFraction float64, seed int64) (train, test []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	testSize := int(math.Ceil(float64(n) * holdoutFraction))
	if testSize >= n {
		testSize = n - 1
	}
	if testSize < 0 {
		testSize = 0
	}

	test = perm[:testSize]
	train = perm[testSize:]
	return train, test
}
