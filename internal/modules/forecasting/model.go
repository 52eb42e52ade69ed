package forecasting

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Model is the predictive step behind the forecast provider.
// Implementations must be deterministic for identical inputs.
type Model interface {
	Fit(x mat.Matrix, y []float64) error
	Predict(x mat.Matrix) ([]float64, error)
}

// ModelFactory creates a fresh, unfitted model for one Predict call.
type ModelFactory func() Model

// DefaultLambda is the ridge penalty applied to standardized features.
const DefaultLambda = 1e-4

// ErrNotFitted is returned when predicting with a model that was never fitted.
var ErrNotFitted = errors.New("model is not fitted")

// RidgeModel is a ridge-regularised linear regression.
// Features are standardized before solving so the penalty treats every column
// alike; the intercept is the target mean and is not penalised.
type RidgeModel struct {
	Lambda float64

	means     []float64
	scales    []float64
	coef      *mat.VecDense
	intercept float64
}

// NewRidgeModel creates a ridge model with the given penalty.
func NewRidgeModel(lambda float64) *RidgeModel {
	if lambda <= 0 {
		lambda = DefaultLambda
	}
	return &RidgeModel{Lambda: lambda}
}

// Fit solves (XsᵀXs + λI)β = Xsᵀ(y - ȳ) with a Cholesky factorisation.
func (m *RidgeModel) Fit(x mat.Matrix, y []float64) error {
	rows, cols := x.Dims()
	if rows == 0 {
		return fmt.Errorf("cannot fit on zero rows")
	}
	if rows != len(y) {
		return fmt.Errorf("feature rows (%d) and targets (%d) differ", rows, len(y))
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("target %d is not finite", i)
		}
	}

	m.means = make([]float64, cols)
	m.scales = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		for i, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("feature %d of row %d is not finite", j, i)
			}
		}
		mean, std := stat.MeanStdDev(col, nil)
		if rows < 2 || math.IsNaN(std) || std == 0 {
			std = 1
		}
		m.means[j] = mean
		m.scales[j] = std
	}

	xs := m.standardize(x)
	m.intercept = stat.Mean(y, nil)

	centered := make([]float64, rows)
	for i, v := range y {
		centered[i] = v - m.intercept
	}

	var gram mat.SymDense
	gram.SymOuterK(1, xs.T())
	for j := 0; j < cols; j++ {
		gram.SetSym(j, j, gram.At(j, j)+m.Lambda)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(&gram); !ok {
		return fmt.Errorf("normal equations are not positive definite")
	}

	var rhs mat.VecDense
	rhs.MulVec(xs.T(), mat.NewVecDense(rows, centered))

	var coef mat.VecDense
	if err := chol.SolveVecTo(&coef, &rhs); err != nil {
		return fmt.Errorf("failed to solve normal equations: %w", err)
	}

	m.coef = &coef
	return nil
}

// Predict returns one estimate per row of x.
func (m *RidgeModel) Predict(x mat.Matrix) ([]float64, error) {
	if m.coef == nil {
		return nil, ErrNotFitted
	}
	rows, cols := x.Dims()
	if cols != len(m.means) {
		return nil, fmt.Errorf("model fitted on %d features, got %d", len(m.means), cols)
	}
	if rows == 0 {
		return []float64{}, nil
	}

	var out mat.VecDense
	out.MulVec(m.standardize(x), m.coef)

	predictions := make([]float64, rows)
	for i := range predictions {
		predictions[i] = m.intercept + out.AtVec(i)
	}
	return predictions, nil
}

func (m *RidgeModel) standardize(x mat.Matrix) *mat.Dense {
	rows, cols := x.Dims()
	xs := mat.NewDense(rows, cols, nil)
	xs.Apply(func(i, j int, v float64) float64 {
		return (v - m.means[j]) / m.scales[j]
	}, x)
	return xs
}
