package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testingpkg "github.com/aristath/retail-agents/internal/testing"
)

func TestSQLiteSource_ImportRoundTrip(t *testing.T) {
	db := testingpkg.NewMemoryDB(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	static := &StaticSource{
		Sales:     testingpkg.NewSalesFixtures(),
		Inventory: testingpkg.NewInventoryFixtures(now),
		Pricing:   testingpkg.NewPricingFixtures(),
	}

	counts, err := Import(context.Background(), db, static)
	require.NoError(t, err)
	assert.Equal(t, Counts{Sales: 4, Inventory: 3, Pricing: 3}, counts)

	src := NewSQLiteSource(db, zerolog.Nop())

	sales, err := src.LoadSales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, static.Sales, sales)

	inventory, err := src.LoadInventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, static.Inventory, inventory)

	pricing, err := src.LoadPricing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, static.Pricing, pricing)
}

func TestSQLiteSource_ImportReplacesRows(t *testing.T) {
	db := testingpkg.NewMemoryDB(t)
	static := &StaticSource{Pricing: testingpkg.NewPricingFixtures()}

	_, err := Import(context.Background(), db, static)
	require.NoError(t, err)

	static.Pricing = static.Pricing[:1]
	_, err = Import(context.Background(), db, static)
	require.NoError(t, err)

	pricing, err := NewSQLiteSource(db, zerolog.Nop()).LoadPricing(context.Background())
	require.NoError(t, err)
	assert.Len(t, pricing, 1)
}

func TestSQLiteSource_NullSalesCellsAreMissing(t *testing.T) {
	db := testingpkg.NewMemoryDB(t)

	_, err := db.Exec(`INSERT INTO sales_history (product_id, store_id, date, price, sales_quantity)
		VALUES ('P9', 'S1', '2024-02-01', NULL, 12)`)
	require.NoError(t, err)

	sales, err := NewSQLiteSource(db, zerolog.Nop()).LoadSales(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Nil(t, sales[0].Price)
	require.NotNil(t, sales[0].SalesQuantity)
	assert.Equal(t, 12.0, *sales[0].SalesQuantity)
	assert.False(t, sales[0].Complete())
}

func TestSQLiteSource_InvalidInventoryValue(t *testing.T) {
	db := testingpkg.NewMemoryDB(t)

	_, err := db.Exec(`INSERT INTO inventory_snapshot (product_id, stock_levels, reorder_point, expiry_date)
		VALUES ('P1', 10, 20, 'someday')`)
	require.NoError(t, err)

	_, err = NewSQLiteSource(db, zerolog.Nop()).LoadInventory(context.Background())

	var valueErr *ValueError
	require.True(t, errors.As(err, &valueErr))
	assert.Equal(t, ColumnExpiryDate, valueErr.Field)
	assert.Equal(t, 1, valueErr.Row)
}

func TestSQLiteSource_MigratedStore(t *testing.T) {
	db, cleanup := testingpkg.NewTestDB(t)
	defer cleanup()

	static := &StaticSource{Pricing: testingpkg.NewPricingFixtures()}
	_, err := Import(context.Background(), db.Conn(), static)
	require.NoError(t, err)

	pricing, err := NewSQLiteSource(db.Conn(), zerolog.Nop()).LoadPricing(context.Background())
	require.NoError(t, err)
	require.Len(t, pricing, 3)
	assert.Equal(t, "P1", pricing[0].ProductID)
}

func TestImport_SourceFailure(t *testing.T) {
	db := testingpkg.NewMemoryDB(t)
	src := testingpkg.NewMockSource(time.Now())
	loadErr := errors.New("disk gone")
	src.SetErrors(nil, loadErr, nil)

	_, err := Import(context.Background(), db, src)
	assert.ErrorIs(t, err, loadErr)
}

func TestStaticSource_ReturnsCopies(t *testing.T) {
	static := &StaticSource{Pricing: testingpkg.NewPricingFixtures()}

	pricing, err := static.LoadPricing(context.Background())
	require.NoError(t, err)
	pricing[0].Price = 1

	assert.Equal(t, 120.0, static.Pricing[0].Price)
}
