// Package dataset loads the sales, inventory and pricing datasets the pipeline
// runs over, from CSV files or from the SQLite store.
package dataset

import (
	"context"

	"github.com/aristath/retail-agents/internal/domain"
)

// Source supplies the three datasets for one pipeline run.
type Source interface {
	LoadSales(ctx context.Context) ([]domain.SalesRecord, error)
	LoadInventory(ctx context.Context) ([]domain.InventoryRecord, error)
	LoadPricing(ctx context.Context) ([]domain.PricingRecord, error)
}

// StaticSource serves datasets held in memory.
type StaticSource struct {
	Sales     []domain.SalesRecord
	Inventory []domain.InventoryRecord
	Pricing   []domain.PricingRecord
}

func (s *StaticSource) LoadSales(ctx context.Context) ([]domain.SalesRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.SalesRecord(nil), s.Sales...), nil
}

func (s *StaticSource) LoadInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.InventoryRecord(nil), s.Inventory...), nil
}

func (s *StaticSource) LoadPricing(ctx context.Context) ([]domain.PricingRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.PricingRecord(nil), s.Pricing...), nil
}
