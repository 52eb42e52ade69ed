package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/database"
	"github.com/aristath/retail-agents/internal/domain"
)

// Table names in the SQLite dataset store.
const (
	SalesTable     = "sales_history"
	InventoryTable = "inventory_snapshot"
	PricingTable   = "pricing_snapshot"
)

// SQLiteSource reads the datasets from the tables created by database.Migrate.
type SQLiteSource struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSQLiteSource creates a dataset source over an open connection.
func NewSQLiteSource(db *sql.DB, log zerolog.Logger) *SQLiteSource {
	return &SQLiteSource{
		db:  db,
		log: log.With().Str("component", "sqlite_source").Logger(),
	}
}

func (s *SQLiteSource) LoadSales(ctx context.Context) ([]domain.SalesRecord, error) {
	t, err := s.query(ctx, SalesDataset, SalesTable)
	if err != nil {
		return nil, err
	}
	return parseSales(t)
}

func (s *SQLiteSource) LoadInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	t, err := s.query(ctx, InventoryDataset, InventoryTable)
	if err != nil {
		return nil, err
	}
	return parseInventory(t)
}

func (s *SQLiteSource) LoadPricing(ctx context.Context) ([]domain.PricingRecord, error) {
	t, err := s.query(ctx, PricingDataset, PricingTable)
	if err != nil {
		return nil, err
	}
	return parsePricing(t)
}

func (s *SQLiteSource) query(ctx context.Context, dataset, tableName string) (*table, error) {
	// Table names come from the constants above, never from input.
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+tableName+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", tableName, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", tableName, err)
	}

	t := newTable(dataset, columns)
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = normalizeColumn(c)
	}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", tableName, err)
		}

		rw := make(row, len(keys))
		for i, key := range keys {
			rw[key] = values[i]
		}
		t.rows = append(t.rows, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", tableName, err)
	}

	s.log.Debug().Str("dataset", dataset).Int("rows", len(t.rows)).Msg("Loaded dataset")
	return t, nil
}

// Import replaces the contents of the dataset tables with the datasets read
// from src, in one transaction.
func Import(ctx context.Context, db *sql.DB, src Source) (Counts, error) {
	sales, err := src.LoadSales(ctx)
	if err != nil {
		return Counts{}, err
	}
	inventory, err := src.LoadInventory(ctx)
	if err != nil {
		return Counts{}, err
	}
	pricing, err := src.LoadPricing(ctx)
	if err != nil {
		return Counts{}, err
	}

	err = database.WithTransaction(db, func(tx *sql.Tx) error {
		for _, name := range []string{SalesTable, InventoryTable, PricingTable} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+name); err != nil {
				return fmt.Errorf("failed to clear %s: %w", name, err)
			}
		}
		if err := insertSales(ctx, tx, sales); err != nil {
			return err
		}
		if err := insertInventory(ctx, tx, inventory); err != nil {
			return err
		}
		return insertPricing(ctx, tx, pricing)
	})
	if err != nil {
		return Counts{}, err
	}

	return Counts{Sales: len(sales), Inventory: len(inventory), Pricing: len(pricing)}, nil
}

// Counts is the number of rows per dataset.
type Counts struct {
	Sales     int `json:"sales"`
	Inventory int `json:"inventory"`
	Pricing   int `json:"pricing"`
}

func insertSales(ctx context.Context, tx *sql.Tx, records []domain.SalesRecord) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sales_history
		(product_id, store_id, date, price, promotions, seasonality_factors,
		 external_factors, demand_trend, customer_segments, sales_quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare sales insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		var date interface{}
		if !r.Date.IsZero() {
			date = r.Date.Format(domain.DateLayout)
		}
		_, err := stmt.ExecContext(ctx,
			r.ProductID, r.StoreID, date, nullable(r.Price),
			nullString(r.Attributes[domain.ColumnPromotions]),
			nullString(r.Attributes[domain.ColumnSeasonalityFactors]),
			nullString(r.Attributes[domain.ColumnExternalFactors]),
			nullString(r.Attributes[domain.ColumnDemandTrend]),
			nullString(r.Attributes[domain.ColumnCustomerSegments]),
			nullable(r.SalesQuantity),
		)
		if err != nil {
			return fmt.Errorf("failed to insert sales row: %w", err)
		}
	}
	return nil
}

func insertInventory(ctx context.Context, tx *sql.Tx, records []domain.InventoryRecord) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO inventory_snapshot
		(product_id, store_id, stock_levels, reorder_point, expiry_date,
		 supplier_lead_time_days, stockout_frequency, warehouse_capacity, order_fulfillment_time_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare inventory insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.ProductID, nullString(r.StoreID), r.StockLevels, r.ReorderPoint,
			r.ExpiryDate.Format(domain.DateLayout),
			nullable(r.SupplierLeadTimeDays), nullable(r.StockoutFrequency),
			nullable(r.WarehouseCapacity), nullable(r.OrderFulfillmentTimeDays),
		)
		if err != nil {
			return fmt.Errorf("failed to insert inventory row: %w", err)
		}
	}
	return nil
}

func insertPricing(ctx context.Context, tx *sql.Tx, records []domain.PricingRecord) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pricing_snapshot
		(product_id, store_id, price, competitor_prices, sales_volume, return_rate,
		 elasticity_index, discounts, customer_reviews, storage_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare pricing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.ProductID, r.StoreID, r.Price, r.CompetitorPrice, r.SalesVolume,
			r.ReturnRate, r.ElasticityIndex,
			nullable(r.Discounts), nullable(r.CustomerReviews), nullable(r.StorageCost),
		)
		if err != nil {
			return fmt.Errorf("failed to insert pricing row: %w", err)
		}
	}
	return nil
}

func nullable(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
