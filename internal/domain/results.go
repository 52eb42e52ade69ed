package domain

// Each pipeline stage returns its own result variant. Every variant has exactly one
// Serialize method that produces plain JSON/msgpack friendly rows: numbers stay
// float64 and dates are rendered with DateLayout.

// ForecastResults is the output variant of the forecast stage.
type ForecastResults []ForecastResult

// ForecastRow is the wire form of a ForecastResult.
type ForecastRow struct {
	ProductID              string  `json:"Product ID"`
	StoreID                string  `json:"Store ID"`
	Price                  float64 `json:"Price"`
	PredictedSalesQuantity float64 `json:"Predicted Sales Quantity"`
}

// Serialize converts the forecast into wire rows.
func (f ForecastResults) Serialize() []ForecastRow {
	rows := make([]ForecastRow, 0, len(f))
	for _, r := range f {
		rows = append(rows, ForecastRow{
			ProductID:              r.ProductID,
			StoreID:                r.StoreID,
			Price:                  r.Price,
			PredictedSalesQuantity: r.PredictedSalesQuantity,
		})
	}
	return rows
}

// InventoryResult is the output variant of the inventory stage.
type InventoryResult struct {
	RestockNeeded []InventoryAlert
	ExpiringSoon  []InventoryAlert
}

// InventoryRow is the wire form of an InventoryAlert.
type InventoryRow struct {
	ProductID                string   `json:"Product ID"`
	StoreID                  string   `json:"Store ID,omitempty"`
	StockLevels              float64  `json:"Stock Levels"`
	ReorderPoint             float64  `json:"Reorder Point"`
	ExpiryDate               string   `json:"Expiry Date"`
	SupplierLeadTimeDays     *float64 `json:"Supplier Lead Time (days),omitempty"`
	StockoutFrequency        *float64 `json:"Stockout Frequency,omitempty"`
	WarehouseCapacity        *float64 `json:"Warehouse Capacity,omitempty"`
	OrderFulfillmentTimeDays *float64 `json:"Order Fulfillment Time (days),omitempty"`
	ForecastFlag             string   `json:"Forecast Flag,omitempty"`
}

// InventoryPayload is the wire form of an InventoryResult.
type InventoryPayload struct {
	RestockNeeded []InventoryRow `json:"restock_needed"`
	ExpiringSoon  []InventoryRow `json:"expiring_soon"`
}

// Serialize converts both alert lists into wire rows.
func (r InventoryResult) Serialize() InventoryPayload {
	return InventoryPayload{
		RestockNeeded: SerializeAlerts(r.RestockNeeded),
		ExpiringSoon:  SerializeAlerts(r.ExpiringSoon),
	}
}

// SerializeAlerts converts inventory alerts into wire rows.
func SerializeAlerts(alerts []InventoryAlert) []InventoryRow {
	rows := make([]InventoryRow, 0, len(alerts))
	for _, a := range alerts {
		rec := a.Record
		rows = append(rows, InventoryRow{
			ProductID:                rec.ProductID,
			StoreID:                  rec.StoreID,
			StockLevels:              rec.StockLevels,
			ReorderPoint:             a.ReorderPoint,
			ExpiryDate:               rec.ExpiryDate.Format(DateLayout),
			SupplierLeadTimeDays:     rec.SupplierLeadTimeDays,
			StockoutFrequency:        rec.StockoutFrequency,
			WarehouseCapacity:        rec.WarehouseCapacity,
			OrderFulfillmentTimeDays: rec.OrderFulfillmentTimeDays,
			ForecastFlag:             a.ForecastFlag,
		})
	}
	return rows
}

// PricingResult is the output variant of the pricing stage.
type PricingResult struct {
	Suggestions []PricingSuggestion
}

// PricingRow is the wire form of a PricingSuggestion.
type PricingRow struct {
	ProductID       string  `json:"Product ID"`
	StoreID         string  `json:"Store ID"`
	CurrentPrice    float64 `json:"Current Price"`
	CompetitorPrice float64 `json:"Competitor Price"`
	SalesVolume     float64 `json:"Sales Volume"`
	Suggestion      string  `json:"Suggestion"`
	DemandTag       string  `json:"Demand Tag,omitempty"`
}

// Serialize converts the suggestions into wire rows.
func (r PricingResult) Serialize() []PricingRow {
	rows := make([]PricingRow, 0, len(r.Suggestions))
	for _, s := range r.Suggestions {
		rows = append(rows, PricingRow{
			ProductID:       s.ProductID,
			StoreID:         s.StoreID,
			CurrentPrice:    s.CurrentPrice,
			CompetitorPrice: s.CompetitorPrice,
			SalesVolume:     s.SalesVolume,
			Suggestion:      s.Suggestion,
			DemandTag:       s.DemandTag,
		})
	}
	return rows
}
