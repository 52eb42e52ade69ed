// Package pricing suggests price reductions for uncompetitive, price-sensitive products.
package pricing

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/domain"
)

// Suggestion thresholds.
const (
	MinPriceGap        = 10.0 // price must exceed the competitor by more than this
	MaxSalesVolume     = 50.0 // sales volume must be below this
	MinElasticityIndex = 1.5  // elasticity must be above this
)

// Analyzer produces price-adjustment suggestions.
type Analyzer struct {
	log zerolog.Logger
}

// NewAnalyzer creates a pricing analyzer.
func NewAnalyzer(log zerolog.Logger) *Analyzer {
	return &Analyzer{
		log: log.With().Str("component", "pricing_analyzer").Logger(),
	}
}

// Qualifies reports whether a record warrants a price reduction.
func Qualifies(rec domain.PricingRecord) bool {
	priceGap := rec.Price - rec.CompetitorPrice
	return priceGap > MinPriceGap &&
		rec.SalesVolume < MaxSalesVolume &&
		rec.ElasticityIndex > MinElasticityIndex
}

// Analyze emits one suggestion per qualifying record, in input order.
// Suggestions carry no demand tag; that is attached during enrichment.
func (a *Analyzer) Analyze(ctx context.Context, records []domain.PricingRecord) (domain.PricingResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.PricingResult{}, err
	}

	suggestions := make([]domain.PricingSuggestion, 0)
	for _, rec := range records {
		if !Qualifies(rec) {
			continue
		}
		suggestions = append(suggestions, domain.PricingSuggestion{
			ProductID:       rec.ProductID,
			StoreID:         rec.StoreID,
			CurrentPrice:    rec.Price,
			CompetitorPrice: rec.CompetitorPrice,
			SalesVolume:     rec.SalesVolume,
			Suggestion:      domain.PriceReductionAdvice,
		})
	}

	a.log.Debug().
		Int("records", len(records)).
		Int("suggestions", len(suggestions)).
		Msg("Pricing analysis completed")

	return domain.PricingResult{Suggestions: suggestions}, nil
}
