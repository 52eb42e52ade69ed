package coordinator_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aristath/retail-agents/internal/dataset"
	"github.com/aristath/retail-agents/internal/domain"
	"github.com/aristath/retail-agents/internal/modules/coordinator"
	"github.com/aristath/retail-agents/internal/modules/forecasting"
	"github.com/aristath/retail-agents/internal/modules/inventory"
	"github.com/aristath/retail-agents/internal/modules/pricing"
	testingpkg "github.com/aristath/retail-agents/internal/testing"
)

var testNow = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func newPipeline(src dataset.Source, cfg coordinator.Config) *coordinator.Coordinator {
	log := zerolog.Nop()
	c := coordinator.New(
		src,
		forecasting.NewProvider(forecasting.Config{}, log),
		inventory.NewChecker(0, func() time.Time { return testNow }, log),
		pricing.NewAnalyzer(log),
		cfg,
		log,
	)
	c.SetClock(func() time.Time { return testNow })
	return c
}

func TestRun_EndToEnd(t *testing.T) {
	c := newPipeline(testingpkg.NewMockSource(testNow), coordinator.Config{})

	report, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, testNow, report.GeneratedAt)
	require.Len(t, report.Forecast, 4)
	assert.Equal(t, []string{"P1"}, report.HighDemand.IDs())

	require.Len(t, report.ExpiringSoon, 2)
	assert.Equal(t, "P1", report.ExpiringSoon[0].Record.ProductID)
	assert.Equal(t, domain.FlagHighDemand, report.ExpiringSoon[0].ForecastFlag)
	assert.Equal(t, 120.0, report.ExpiringSoon[0].ReorderPoint)
	assert.Equal(t, "P2", report.ExpiringSoon[1].Record.ProductID)
	assert.Equal(t, domain.FlagStable, report.ExpiringSoon[1].ForecastFlag)
	assert.Equal(t, 100.0, report.ExpiringSoon[1].ReorderPoint)

	require.Len(t, report.Pricing, 2)
	assert.Equal(t, domain.TagHighDemand, report.Pricing[0].DemandTag)
	assert.Equal(t, domain.TagNormal, report.Pricing[1].DemandTag)

	// P1 is below the scaled reorder point and P3 below its own
	require.Len(t, report.Inventory.RestockNeeded, 2)
}

func TestRun_PayloadShape(t *testing.T) {
	c := newPipeline(testingpkg.NewMockSource(testNow), coordinator.Config{})

	report, err := c.Run(context.Background())
	require.NoError(t, err)

	data, err := json.Marshal(report.Payload())
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Len(t, payload, 3)
	assert.Contains(t, payload, "forecast")
	assert.Contains(t, payload, "inventory")
	assert.Contains(t, payload, "pricing")

	var inv map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(payload["inventory"], &inv))
	assert.Len(t, inv, 1)
	require.Len(t, inv["expiring_soon"], 2)
	first := inv["expiring_soon"][0]
	assert.Equal(t, "High Demand", first["Forecast Flag"])
	assert.Equal(t, 120.0, first["Reorder Point"])
	assert.Equal(t, "2024-03-11", first["Expiry Date"])

	var prices []map[string]interface{}
	require.NoError(t, json.Unmarshal(payload["pricing"], &prices))
	require.Len(t, prices, 2)
	assert.Equal(t, "High Demand", prices[0]["Demand Tag"])
	assert.Equal(t, domain.PriceReductionAdvice, prices[0]["Suggestion"])

	var forecast []map[string]interface{}
	require.NoError(t, json.Unmarshal(payload["forecast"], &forecast))
	require.Len(t, forecast, 4)
	assert.Contains(t, forecast[0], "Predicted Sales Quantity")
}

func TestRun_TagCoherence(t *testing.T) {
	c := newPipeline(testingpkg.NewMockSource(testNow), coordinator.Config{})

	report, err := c.Run(context.Background())
	require.NoError(t, err)

	for _, s := range report.Pricing {
		assert.Equal(t, report.HighDemand.Contains(s.ProductID), s.DemandTag == domain.TagHighDemand, s.ProductID)
	}
	for _, a := range report.ExpiringSoon {
		assert.Equal(t, report.HighDemand.Contains(a.Record.ProductID), a.ForecastFlag == domain.FlagHighDemand, a.Record.ProductID)
	}
}

func TestRun_EmptyInputs(t *testing.T) {
	c := newPipeline(&dataset.StaticSource{}, coordinator.Config{})

	report, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.HighDemand.Len())
	assert.Empty(t, report.ExpiringSoon)
	assert.Empty(t, report.Pricing)

	data, err := json.Marshal(report.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"forecast":[],"inventory":{"expiring_soon":[]},"pricing":[]}`, string(data))
}

func TestRun_EmptySalesDegradesToStable(t *testing.T) {
	src := testingpkg.NewMockSource(testNow)
	src.SetSales(nil)
	c := newPipeline(src, coordinator.Config{})

	report, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Forecast)
	require.Len(t, report.ExpiringSoon, 2)
	for _, a := range report.ExpiringSoon {
		assert.Equal(t, domain.FlagStable, a.ForecastFlag)
		assert.Equal(t, a.Record.ReorderPoint, a.ReorderPoint)
	}
	for _, s := range report.Pricing {
		assert.Equal(t, domain.TagNormal, s.DemandTag)
	}
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	seq, err := newPipeline(testingpkg.NewMockSource(testNow), coordinator.Config{}).Run(context.Background())
	require.NoError(t, err)
	par, err := newPipeline(testingpkg.NewMockSource(testNow), coordinator.Config{ParallelPricing: true}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, seq.Payload(), par.Payload())
	assert.NotEqual(t, seq.RunID, par.RunID)
}

func TestRun_DerivesHighDemandOnce(t *testing.T) {
	src := testingpkg.NewMockSource(testNow)
	forecaster := new(testingpkg.MockForecastProvider)
	checker := new(testingpkg.MockInventoryChecker)
	analyzer := new(testingpkg.MockPricingAnalyzer)

	forecaster.On("Predict", mock.Anything, mock.Anything).Return(domain.ForecastResults{
		{ProductID: "P1", StoreID: "S1", Price: 20, PredictedSalesQuantity: 251},
		{ProductID: "P2", StoreID: "S1", Price: 20, PredictedSalesQuantity: 250},
	}, nil)
	checker.On("Check", mock.Anything, mock.Anything, mock.MatchedBy(func(set *domain.HighDemandSet) bool {
		return set != nil && set.Len() == 1 && set.Contains("P1")
	})).Return(domain.InventoryResult{}, nil)
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return(domain.PricingResult{
		Suggestions: []domain.PricingSuggestion{{ProductID: "P2"}, {ProductID: "P1"}},
	}, nil)

	c := coordinator.New(src, forecaster, checker, analyzer, coordinator.Config{}, zerolog.Nop())
	report, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"P1"}, report.HighDemand.IDs())
	assert.Equal(t, domain.TagNormal, report.Pricing[0].DemandTag)
	assert.Equal(t, domain.TagHighDemand, report.Pricing[1].DemandTag)

	forecaster.AssertNumberOfCalls(t, "Predict", 1)
	checker.AssertExpectations(t)
	analyzer.AssertExpectations(t)
}

func TestRun_StageErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		setup     func(f *testingpkg.MockForecastProvider, c *testingpkg.MockInventoryChecker, a *testingpkg.MockPricingAnalyzer, src *testingpkg.MockSource)
		wantStage coordinator.Stage
	}{
		{
			name: "forecast model",
			setup: func(f *testingpkg.MockForecastProvider, _ *testingpkg.MockInventoryChecker, _ *testingpkg.MockPricingAnalyzer, _ *testingpkg.MockSource) {
				f.On("Predict", mock.Anything, mock.Anything).Return(nil, boom)
			},
			wantStage: coordinator.StageForecast,
		},
		{
			name: "sales load",
			setup: func(_ *testingpkg.MockForecastProvider, _ *testingpkg.MockInventoryChecker, _ *testingpkg.MockPricingAnalyzer, src *testingpkg.MockSource) {
				src.SetErrors(boom, nil, nil)
			},
			wantStage: coordinator.StageForecast,
		},
		{
			name: "inventory load",
			setup: func(f *testingpkg.MockForecastProvider, _ *testingpkg.MockInventoryChecker, _ *testingpkg.MockPricingAnalyzer, src *testingpkg.MockSource) {
				f.On("Predict", mock.Anything, mock.Anything).Return(domain.ForecastResults{}, nil)
				src.SetErrors(nil, boom, nil)
			},
			wantStage: coordinator.StageInventory,
		},
		{
			name: "pricing analyzer",
			setup: func(f *testingpkg.MockForecastProvider, c *testingpkg.MockInventoryChecker, a *testingpkg.MockPricingAnalyzer, _ *testingpkg.MockSource) {
				f.On("Predict", mock.Anything, mock.Anything).Return(domain.ForecastResults{}, nil)
				c.On("Check", mock.Anything, mock.Anything, mock.Anything).Return(domain.InventoryResult{}, nil)
				a.On("Analyze", mock.Anything, mock.Anything).Return(domain.PricingResult{}, boom)
			},
			wantStage: coordinator.StagePricing,
		},
	}

	for _, tt := range tests {
		for _, parallel := range []bool{false, true} {
			name := tt.name
			if parallel {
				name += " parallel"
			}
			t.Run(name, func(t *testing.T) {
				src := testingpkg.NewMockSource(testNow)
				f := new(testingpkg.MockForecastProvider)
				c := new(testingpkg.MockInventoryChecker)
				a := new(testingpkg.MockPricingAnalyzer)
				tt.setup(f, c, a, src)
				// the parallel branch may reach pricing before the chain fails
				a.On("Analyze", mock.Anything, mock.Anything).Return(domain.PricingResult{}, nil).Maybe()

				co := coordinator.New(src, f, c, a, coordinator.Config{ParallelPricing: parallel}, zerolog.Nop())
				report, err := co.Run(context.Background())

				assert.Nil(t, report)
				require.Error(t, err)
				assert.ErrorIs(t, err, boom)

				stage, ok := coordinator.FailedStage(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantStage, stage)
			})
		}
	}
}

func TestRun_SchemaErrorNamesStageAndField(t *testing.T) {
	src := testingpkg.NewMockSource(testNow)
	src.SetErrors(nil, nil, &dataset.SchemaError{Dataset: dataset.PricingDataset, Field: dataset.ColumnElasticityIndex})
	c := newPipeline(src, coordinator.Config{})

	_, err := c.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pricing stage failed")
	assert.Contains(t, err.Error(), dataset.ColumnElasticityIndex)

	var schemaErr *dataset.SchemaError
	assert.True(t, errors.As(err, &schemaErr))
}

func TestRun_UnreadableSalesDateFailsForecastStage(t *testing.T) {
	dir := t.TempDir()
	sales := "Product ID,Store ID,Date,Price,Promotions,Seasonality Factors,External Factors,Demand Trend,Customer Segments,Sales Quantity\n" +
		"101,S1,2024-13-45,20,No,None,None,Stable,Regular,300\n" +
		"102,S1,yesterday,20,No,None,None,Stable,Regular,50\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.DefaultSalesFile), []byte(sales), 0644))

	src := dataset.NewCSVSource(dataset.CSVConfig{Dir: dir}, zerolog.Nop())
	c := newPipeline(src, coordinator.Config{})

	report, err := c.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)

	stage, ok := coordinator.FailedStage(err)
	require.True(t, ok)
	assert.Equal(t, coordinator.StageForecast, stage)

	var valueErr *dataset.ValueError
	require.True(t, errors.As(err, &valueErr))
	assert.Equal(t, domain.ColumnDate, valueErr.Field)
	assert.Equal(t, 1, valueErr.Row)
}

func TestRun_CancelledContext(t *testing.T) {
	c := newPipeline(&dataset.StaticSource{}, coordinator.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
