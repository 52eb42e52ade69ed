package testing

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aristath/retail-agents/internal/domain"
)

// MockSource is a dataset source whose contents and failures can be set per dataset.
type MockSource struct {
	mu           sync.RWMutex
	sales        []domain.SalesRecord
	inventory    []domain.InventoryRecord
	pricing      []domain.PricingRecord
	salesErr     error
	inventoryErr error
	pricingErr   error
	loads        int
}

// NewMockSource creates a mock source serving the default fixtures relative to now.
func NewMockSource(now time.Time) *MockSource {
	return &MockSource{
		sales:     NewSalesFixtures(),
		inventory: NewInventoryFixtures(now),
		pricing:   NewPricingFixtures(),
	}
}

// SetSales replaces the sales dataset.
func (m *MockSource) SetSales(records []domain.SalesRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales = records
}

// SetInventory replaces the inventory dataset.
func (m *MockSource) SetInventory(records []domain.InventoryRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inventory = records
}

// SetPricing replaces the pricing dataset.
func (m *MockSource) SetPricing(records []domain.PricingRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pricing = records
}

// SetErrors makes the corresponding loads fail; nil clears a failure.
func (m *MockSource) SetErrors(sales, inventory, pricing error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.salesErr = sales
	m.inventoryErr = inventory
	m.pricingErr = pricing
}

// Loads returns how many datasets have been loaded.
func (m *MockSource) Loads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loads
}

func (m *MockSource) LoadSales(ctx context.Context) ([]domain.SalesRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.salesErr != nil {
		return nil, m.salesErr
	}
	return append([]domain.SalesRecord(nil), m.sales...), nil
}

func (m *MockSource) LoadInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.inventoryErr != nil {
		return nil, m.inventoryErr
	}
	return append([]domain.InventoryRecord(nil), m.inventory...), nil
}

func (m *MockSource) LoadPricing(ctx context.Context) ([]domain.PricingRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.pricingErr != nil {
		return nil, m.pricingErr
	}
	return append([]domain.PricingRecord(nil), m.pricing...), nil
}

// MockForecastProvider is a testify mock of the forecast stage.
type MockForecastProvider struct {
	mock.Mock
}

func (m *MockForecastProvider) Predict(ctx context.Context, sales []domain.SalesRecord) (domain.ForecastResults, error) {
	args := m.Called(ctx, sales)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ForecastResults), args.Error(1)
}

// MockInventoryChecker is a testify mock of the inventory stage.
type MockInventoryChecker struct {
	mock.Mock
}

func (m *MockInventoryChecker) Check(ctx context.Context, records []domain.InventoryRecord, signal *domain.HighDemandSet) (domain.InventoryResult, error) {
	args := m.Called(ctx, records, signal)
	return args.Get(0).(domain.InventoryResult), args.Error(1)
}

// MockPricingAnalyzer is a testify mock of the pricing stage.
type MockPricingAnalyzer struct {
	mock.Mock
}

func (m *MockPricingAnalyzer) Analyze(ctx context.Context, records []domain.PricingRecord) (domain.PricingResult, error) {
	args := m.Called(ctx, records)
	return args.Get(0).(domain.PricingResult), args.Error(1)
}
