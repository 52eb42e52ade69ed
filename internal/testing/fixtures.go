package testing

import (
	"time"

	"github.com/aristath/retail-agents/internal/domain"
)

// FixtureDate is the sales date used by the default fixtures (a Monday).
var FixtureDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// NewSalesRecord returns a complete sales row with neutral categorical attributes.
func NewSalesRecord(productID, storeID string, price, quantity float64) domain.SalesRecord {
	return domain.SalesRecord{
		ProductID:     productID,
		StoreID:       storeID,
		Date:          FixtureDate,
		Price:         Float(price),
		SalesQuantity: Float(quantity),
		Attributes: map[string]string{
			domain.ColumnPromotions:         "No",
			domain.ColumnSeasonalityFactors: "None",
			domain.ColumnExternalFactors:    "None",
			domain.ColumnDemandTrend:        "Stable",
			domain.ColumnCustomerSegments:   "Regular",
		},
	}
}

// NewSalesFixtures returns sales history in which P1 sells about 300 units per row
// and P2 about 50, so only P1 is forecast as high demand.
func NewSalesFixtures() []domain.SalesRecord {
	return []domain.SalesRecord{
		NewSalesRecord("P1", "S1", 20, 300),
		NewSalesRecord("P2", "S1", 20, 50),
		NewSalesRecord("P1", "S1", 20, 300),
		NewSalesRecord("P2", "S1", 20, 50),
	}
}

// NewInventoryRecord returns an inventory row expiring the given number of days after now.
func NewInventoryRecord(productID string, stock, reorderPoint float64, now time.Time, expiresInDays int) domain.InventoryRecord {
	y, m, d := now.Date()
	return domain.InventoryRecord{
		ProductID:    productID,
		StoreID:      "S1",
		StockLevels:  stock,
		ReorderPoint: reorderPoint,
		ExpiryDate:   time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, expiresInDays),
	}
}

// NewInventoryFixtures returns an inventory snapshot relative to now:
// P1 is expiring and below its reorder point, P2 is expiring and well stocked,
// P3 is far from expiry.
func NewInventoryFixtures(now time.Time) []domain.InventoryRecord {
	return []domain.InventoryRecord{
		NewInventoryRecord("P1", 90, 100, now, 10),
		NewInventoryRecord("P2", 500, 100, now, 5),
		NewInventoryRecord("P3", 10, 50, now, 90),
	}
}

// NewPricingRecord returns a pricing row; the return rate is fixed at 5%.
func NewPricingRecord(productID string, price, competitorPrice, salesVolume, elasticity float64) domain.PricingRecord {
	return domain.PricingRecord{
		ProductID:       productID,
		StoreID:         "S1",
		Price:           price,
		CompetitorPrice: competitorPrice,
		SalesVolume:     salesVolume,
		ReturnRate:      5,
		ElasticityIndex: elasticity,
	}
}

// NewPricingFixtures returns a pricing snapshot in which P1 and P2 qualify for a
// price reduction and P3 does not.
func NewPricingFixtures() []domain.PricingRecord {
	return []domain.PricingRecord{
		NewPricingRecord("P1", 120, 100, 30, 2.0),
		NewPricingRecord("P2", 80, 60, 10, 1.8),
		NewPricingRecord("P3", 100, 95, 200, 1.0),
	}
}
