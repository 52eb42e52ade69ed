package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastResults_Serialize(t *testing.T) {
	results := ForecastResults{
		{ProductID: "P1", StoreID: "S1", Price: 10.5, PredictedSalesQuantity: 301.25},
	}

	data, err := json.Marshal(results.Serialize())
	require.NoError(t, err)

	assert.JSONEq(t, `[{"Product ID":"P1","Store ID":"S1","Price":10.5,"Predicted Sales Quantity":301.25}]`, string(data))
}

func TestForecastResults_SerializeEmptyIsArray(t *testing.T) {
	data, err := json.Marshal(ForecastResults(nil).Serialize())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestInventoryResult_Serialize(t *testing.T) {
	capacity := 500.0
	result := InventoryResult{
		ExpiringSoon: []InventoryAlert{
			{
				Record: InventoryRecord{
					ProductID:         "P1",
					StoreID:           "S1",
					StockLevels:       40,
					ReorderPoint:      100,
					ExpiryDate:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
					WarehouseCapacity: &capacity,
				},
				ReorderPoint: 120,
				ForecastFlag: FlagHighDemand,
			},
		},
	}

	data, err := json.Marshal(result.Serialize())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"restock_needed": [],
		"expiring_soon": [{
			"Product ID": "P1",
			"Store ID": "S1",
			"Stock Levels": 40,
			"Reorder Point": 120,
			"Expiry Date": "2024-05-01",
			"Warehouse Capacity": 500,
			"Forecast Flag": "High Demand"
		}]
	}`, string(data))
}

func TestPricingResult_Serialize(t *testing.T) {
	result := PricingResult{Suggestions: []PricingSuggestion{
		{
			ProductID:       "P1",
			StoreID:         "S1",
			CurrentPrice:    120,
			CompetitorPrice: 100,
			SalesVolume:     30,
			Suggestion:      PriceReductionAdvice,
			DemandTag:       TagNormal,
		},
	}}

	rows := result.Serialize()
	require.Len(t, rows, 1)

	data, err := json.Marshal(rows[0])
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(120), decoded["Current Price"])
	assert.Equal(t, float64(100), decoded["Competitor Price"])
	assert.Equal(t, "Normal", decoded["Demand Tag"])
	assert.Equal(t, PriceReductionAdvice, decoded["Suggestion"])
}
