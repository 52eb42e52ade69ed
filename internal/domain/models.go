// Package domain provides core domain models and types.
package domain

import "time"

// DateLayout is the ISO-8601 calendar date format used on the wire.
const DateLayout = "2006-01-02"

// Column names of the sales history dataset.
const (
	ColumnProductID          = "Product ID"
	ColumnStoreID            = "Store ID"
	ColumnDate               = "Date"
	ColumnPrice              = "Price"
	ColumnPromotions         = "Promotions"
	ColumnSeasonalityFactors = "Seasonality Factors"
	ColumnExternalFactors    = "External Factors"
	ColumnDemandTrend        = "Demand Trend"
	ColumnCustomerSegments   = "Customer Segments"
	ColumnSalesQuantity      = "Sales Quantity"
)

// SalesCategoricalColumns lists the categorical sales attributes fed to the forecast model.
var SalesCategoricalColumns = []string{
	ColumnPromotions,
	ColumnSeasonalityFactors,
	ColumnExternalFactors,
	ColumnDemandTrend,
	ColumnCustomerSegments,
}

// SalesRecord is one row of sales history.
// Price and SalesQuantity are nil when the source cell was empty or unreadable,
// a zero Date means the same for the date column.
type SalesRecord struct {
	ProductID     string
	StoreID       string
	Date          time.Time
	Price         *float64
	SalesQuantity *float64
	Attributes    map[string]string // keyed by SalesCategoricalColumns
}

// Complete reports whether every field the forecast model needs is present.
func (r SalesRecord) Complete() bool {
	if r.ProductID == "" || r.StoreID == "" || r.Date.IsZero() {
		return false
	}
	if r.Price == nil || r.SalesQuantity == nil {
		return false
	}
	for _, col := range SalesCategoricalColumns {
		if r.Attributes[col] == "" {
			return false
		}
	}
	return true
}

// ForecastResult is the predicted demand for one (product, store) sales row.
type ForecastResult struct {
	ProductID              string
	StoreID                string
	Price                  float64
	PredictedSalesQuantity float64
}

// InventoryRecord is one row of the inventory snapshot.
// The optional operational columns are nil when the dataset does not carry them.
type InventoryRecord struct {
	ProductID                string
	StoreID                  string
	StockLevels              float64
	ReorderPoint             float64
	ExpiryDate               time.Time
	SupplierLeadTimeDays     *float64
	StockoutFrequency        *float64
	WarehouseCapacity        *float64
	OrderFulfillmentTimeDays *float64
}

// InventoryAlert is an inventory record flagged by the inventory checker.
// ReorderPoint is the effective reorder point for this run; Record keeps the
// snapshot value untouched so scaling never compounds.
type InventoryAlert struct {
	Record       InventoryRecord
	ReorderPoint float64
	ForecastFlag string
}

// PricingRecord is one row of the pricing snapshot.
type PricingRecord struct {
	ProductID       string
	StoreID         string
	Price           float64
	CompetitorPrice float64
	SalesVolume     float64
	ReturnRate      float64
	ElasticityIndex float64
	Discounts       *float64
	CustomerReviews *float64
	StorageCost     *float64
}

// PricingSuggestion is an advisory price change for one pricing record.
type PricingSuggestion struct {
	ProductID       string
	StoreID         string
	CurrentPrice    float64
	CompetitorPrice float64
	SalesVolume     float64
	Suggestion      string
	DemandTag       string
}

// Demand labels attached to inventory alerts and pricing suggestions.
const (
	FlagHighDemand = "High Demand"
	FlagStable     = "Stable"
	TagHighDemand  = "High Demand"
	TagNormal      = "Normal"
)

// PriceReductionAdvice is the advisory text carried by every pricing suggestion.
const PriceReductionAdvice = "Consider reducing price by 10–15% to improve competitiveness."
