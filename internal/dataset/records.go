package dataset

import (
	"time"

	"github.com/aristath/retail-agents/internal/domain"
)

// Column names of the inventory and pricing datasets.
const (
	ColumnStockLevels              = "Stock Levels"
	ColumnReorderPoint             = "Reorder Point"
	ColumnExpiryDate               = "Expiry Date"
	ColumnSupplierLeadTimeDays     = "Supplier Lead Time (days)"
	ColumnStockoutFrequency        = "Stockout Frequency"
	ColumnWarehouseCapacity        = "Warehouse Capacity"
	ColumnOrderFulfillmentTimeDays = "Order Fulfillment Time (days)"

	ColumnCompetitorPrices = "Competitor Prices"
	ColumnSalesVolume      = "Sales Volume"
	ColumnReturnRate       = "Return Rate (%)"
	ColumnElasticityIndex  = "Elasticity Index"
	ColumnDiscounts        = "Discounts"
	ColumnCustomerReviews  = "Customer Reviews"
	ColumnStorageCost      = "Storage Cost"
)

var salesColumns = []string{
	domain.ColumnProductID,
	domain.ColumnStoreID,
	domain.ColumnDate,
	domain.ColumnPrice,
	domain.ColumnPromotions,
	domain.ColumnSeasonalityFactors,
	domain.ColumnExternalFactors,
	domain.ColumnDemandTrend,
	domain.ColumnCustomerSegments,
	domain.ColumnSalesQuantity,
}

var inventoryColumns = []string{
	domain.ColumnProductID,
	ColumnStockLevels,
	ColumnReorderPoint,
	ColumnExpiryDate,
}

var pricingColumns = []string{
	domain.ColumnProductID,
	domain.ColumnStoreID,
	domain.ColumnPrice,
	ColumnCompetitorPrices,
	ColumnSalesVolume,
	ColumnReturnRate,
	ColumnElasticityIndex,
}

// parseSales is lenient about missing cells: an empty date, price or quantity
// leaves the field missing and the forecast provider drops the row. A cell that
// is present but unreadable is a ValueError.
func parseSales(t *table) ([]domain.SalesRecord, error) {
	if err := t.require(salesColumns...); err != nil {
		return nil, err
	}

	records := make([]domain.SalesRecord, 0, len(t.rows))
	for i, r := range t.rows {
		p := rowParser{dataset: t.dataset, row: i + 1, r: r}
		rec := domain.SalesRecord{
			ProductID:  r.str(domain.ColumnProductID),
			StoreID:    r.str(domain.ColumnStoreID),
			Attributes: make(map[string]string, len(domain.SalesCategoricalColumns)),
		}
		if !r.blank(domain.ColumnDate) {
			rec.Date = p.date(domain.ColumnDate)
		}
		rec.Price = p.optional(t, domain.ColumnPrice)
		rec.SalesQuantity = p.optional(t, domain.ColumnSalesQuantity)
		for _, col := range domain.SalesCategoricalColumns {
			if v := r.str(col); v != "" {
				rec.Attributes[col] = v
			}
		}
		if p.err != nil {
			return nil, p.err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseInventory(t *table) ([]domain.InventoryRecord, error) {
	if err := t.require(inventoryColumns...); err != nil {
		return nil, err
	}

	records := make([]domain.InventoryRecord, 0, len(t.rows))
	for i, r := range t.rows {
		p := rowParser{dataset: t.dataset, row: i + 1, r: r}
		rec := domain.InventoryRecord{
			ProductID:                p.id(domain.ColumnProductID),
			StoreID:                  r.str(domain.ColumnStoreID),
			StockLevels:              p.float(ColumnStockLevels),
			ReorderPoint:             p.float(ColumnReorderPoint),
			ExpiryDate:               p.date(ColumnExpiryDate),
			SupplierLeadTimeDays:     p.optional(t, ColumnSupplierLeadTimeDays),
			StockoutFrequency:        p.optional(t, ColumnStockoutFrequency),
			WarehouseCapacity:        p.optional(t, ColumnWarehouseCapacity),
			OrderFulfillmentTimeDays: p.optional(t, ColumnOrderFulfillmentTimeDays),
		}
		if p.err != nil {
			return nil, p.err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parsePricing(t *table) ([]domain.PricingRecord, error) {
	if err := t.require(pricingColumns...); err != nil {
		return nil, err
	}

	records := make([]domain.PricingRecord, 0, len(t.rows))
	for i, r := range t.rows {
		p := rowParser{dataset: t.dataset, row: i + 1, r: r}
		rec := domain.PricingRecord{
			ProductID:       p.id(domain.ColumnProductID),
			StoreID:         p.id(domain.ColumnStoreID),
			Price:           p.float(domain.ColumnPrice),
			CompetitorPrice: p.float(ColumnCompetitorPrices),
			SalesVolume:     p.float(ColumnSalesVolume),
			ReturnRate:      p.float(ColumnReturnRate),
			ElasticityIndex: p.float(ColumnElasticityIndex),
			Discounts:       p.optional(t, ColumnDiscounts),
			CustomerReviews: p.optional(t, ColumnCustomerReviews),
			StorageCost:     p.optional(t, ColumnStorageCost),
		}
		if p.err != nil {
			return nil, p.err
		}
		records = append(records, rec)
	}
	return records, nil
}

// rowParser reads strict cells and keeps the first failure.
type rowParser struct {
	dataset string
	row     int
	r       row
	err     error
}

func (p *rowParser) fail(column string, err error) {
	if p.err == nil {
		p.err = &ValueError{Dataset: p.dataset, Row: p.row, Field: column, Value: p.r.raw(column), Err: err}
	}
}

func (p *rowParser) id(column string) string {
	v := p.r.str(column)
	if v == "" {
		p.fail(column, errEmpty)
	}
	return v
}

func (p *rowParser) float(column string) float64 {
	v, err := p.r.float(column)
	if err != nil {
		p.fail(column, err)
	}
	return v
}

func (p *rowParser) date(column string) time.Time {
	v, err := p.r.date(column)
	if err != nil {
		p.fail(column, err)
	}
	return v
}

// optional returns nil when the column is absent or the cell blank.
func (p *rowParser) optional(t *table, column string) *float64 {
	if !t.has(column) || p.r.blank(column) {
		return nil
	}
	v := p.float(column)
	return &v
}
