// Package inventory flags stock that needs reordering or is about to expire.
package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/domain"
)

// DefaultExpiryHorizon is how far ahead expiring stock is reported.
const DefaultExpiryHorizon = 30 * 24 * time.Hour

// Clock returns the evaluation time.
type Clock func() time.Time

// Checker evaluates inventory snapshots.
type Checker struct {
	horizon time.Duration
	now     Clock
	log     zerolog.Logger
}

// NewChecker creates an inventory checker. A zero horizon uses DefaultExpiryHorizon
// and a nil clock uses time.Now.
func NewChecker(horizon time.Duration, now Clock, log zerolog.Logger) *Checker {
	if horizon <= 0 {
		horizon = DefaultExpiryHorizon
	}
	if now == nil {
		now = time.Now
	}
	return &Checker{
		horizon: horizon,
		now:     now,
		log:     log.With().Str("component", "inventory_checker").Logger(),
	}
}

// Check returns restock and expiry alerts for the records.
//
// When signal is non-nil, products in it have their reorder point scaled by
// domain.ReorderScaleFactor and are flagged "High Demand"; every other record is
// flagged "Stable". Scaling is applied to a working copy before the restock check,
// so the caller's records are never modified and repeated calls do not compound.
func (c *Checker) Check(ctx context.Context, records []domain.InventoryRecord, signal *domain.HighDemandSet) (domain.InventoryResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.InventoryResult{}, err
	}

	working := make([]domain.InventoryAlert, len(records))
	adjusted := 0
	for i, rec := range records {
		alert := domain.InventoryAlert{Record: rec, ReorderPoint: rec.ReorderPoint}
		if signal != nil {
			alert.ForecastFlag = signal.FlagFor(rec.ProductID)
			if signal.Contains(rec.ProductID) {
				alert.ReorderPoint = domain.ScaleReorderPoint(rec.ReorderPoint)
				adjusted++
			}
		}
		working[i] = alert
	}

	// Expiry is compared by calendar day; the horizon counts whole days.
	now := c.now()
	cutoff := calendarDate(now, now.Location()).AddDate(0, 0, int(c.horizon/(24*time.Hour)))
	result := domain.InventoryResult{
		RestockNeeded: []domain.InventoryAlert{},
		ExpiringSoon:  []domain.InventoryAlert{},
	}
	for _, alert := range working {
		if alert.Record.StockLevels < alert.ReorderPoint {
			result.RestockNeeded = append(result.RestockNeeded, alert)
		}
		if !calendarDate(alert.Record.ExpiryDate, cutoff.Location()).After(cutoff) {
			result.ExpiringSoon = append(result.ExpiringSoon, alert)
		}
	}

	c.log.Debug().
		Int("records", len(records)).
		Int("demand_adjusted", adjusted).
		Int("restock_needed", len(result.RestockNeeded)).
		Int("expiring_soon", len(result.ExpiringSoon)).
		Time("cutoff", cutoff).
		Msg("Inventory check completed")

	return result, nil
}

// calendarDate returns midnight in loc of the calendar day t falls on in its
// own location. Expiry dates carry no zone of their own, so their year, month
// and day are read as a date in the evaluation clock's location.
func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
