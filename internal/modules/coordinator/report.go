package coordinator

import (
	"time"

	"github.com/aristath/retail-agents/internal/domain"
)

// Report is the combined result of one completed run.
type Report struct {
	RunID       string
	GeneratedAt time.Time

	Forecast     domain.ForecastResults
	HighDemand   *domain.HighDemandSet
	ExpiringSoon []domain.InventoryAlert // enriched
	Pricing      []domain.PricingSuggestion
	Inventory    domain.InventoryResult // as returned by the inventory stage
}

// ReportPayload is the wire form of a Report:
// {"forecast": [...], "inventory": {"expiring_soon": [...]}, "pricing": [...]}.
type ReportPayload struct {
	Forecast  []domain.ForecastRow `json:"forecast"`
	Inventory ExpiringPayload      `json:"inventory"`
	Pricing   []domain.PricingRow  `json:"pricing"`
}

// ExpiringPayload is the inventory section of the combined report.
type ExpiringPayload struct {
	ExpiringSoon []domain.InventoryRow `json:"expiring_soon"`
}

// Payload serializes the report.
func (r *Report) Payload() ReportPayload {
	return ReportPayload{
		Forecast:  r.Forecast.Serialize(),
		Inventory: ExpiringPayload{ExpiringSoon: domain.SerializeAlerts(r.ExpiringSoon)},
		Pricing:   domain.PricingResult{Suggestions: r.Pricing}.Serialize(),
	}
}

// Summary holds the row counts of a report.
type Summary struct {
	RunID          string `json:"run_id"`
	ForecastRows   int    `json:"forecast_rows"`
	HighDemand     int    `json:"high_demand"`
	RestockNeeded  int    `json:"restock_needed"`
	ExpiringSoon   int    `json:"expiring_soon"`
	PriceSuggested int    `json:"price_suggestions"`
}

// Summary counts the rows of each report section.
func (r *Report) Summary() Summary {
	return Summary{
		RunID:          r.RunID,
		ForecastRows:   len(r.Forecast),
		HighDemand:     r.HighDemand.Len(),
		RestockNeeded:  len(r.Inventory.RestockNeeded),
		ExpiringSoon:   len(r.ExpiringSoon),
		PriceSuggested: len(r.Pricing),
	}
}
