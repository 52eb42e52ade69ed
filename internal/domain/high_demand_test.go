package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveHighDemandSet_ThresholdIsStrict(t *testing.T) {
	forecast := []ForecastResult{
		{ProductID: "P1", PredictedSalesQuantity: 300},
		{ProductID: "P2", PredictedSalesQuantity: 250},
		{ProductID: "P3", PredictedSalesQuantity: 250.0001},
		{ProductID: "P4", PredictedSalesQuantity: 12},
	}

	set := DeriveHighDemandSet(forecast)

	assert.True(t, set.Contains("P1"))
	assert.False(t, set.Contains("P2"), "exactly 250 is not high demand")
	assert.True(t, set.Contains("P3"))
	assert.False(t, set.Contains("P4"))
	assert.Equal(t, []string{"P1", "P3"}, set.IDs())
}

func TestDeriveHighDemandSet_AnyStoreAboveThresholdFlagsProduct(t *testing.T) {
	forecast := []ForecastResult{
		{ProductID: "P1", StoreID: "S1", PredictedSalesQuantity: 100},
		{ProductID: "P1", StoreID: "S2", PredictedSalesQuantity: 251},
	}

	set := DeriveHighDemandSet(forecast)

	assert.True(t, set.Contains("P1"))
	assert.Equal(t, 1, set.Len())
}

func TestDeriveHighDemandSet_Empty(t *testing.T) {
	set := DeriveHighDemandSet(nil)

	assert.NotNil(t, set)
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.IDs())
}

func TestHighDemandSet_NilIsEmpty(t *testing.T) {
	var set *HighDemandSet

	assert.False(t, set.Contains("P1"))
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, []string{}, set.IDs())
	assert.Equal(t, FlagStable, set.FlagFor("P1"))
	assert.Equal(t, TagNormal, set.TagFor("P1"))
}

func TestHighDemandSet_Labels(t *testing.T) {
	set := NewHighDemandSet("P1")

	assert.Equal(t, FlagHighDemand, set.FlagFor("P1"))
	assert.Equal(t, FlagStable, set.FlagFor("P2"))
	assert.Equal(t, TagHighDemand, set.TagFor("P1"))
	assert.Equal(t, TagNormal, set.TagFor("P2"))
}

func TestScaleReorderPoint(t *testing.T) {
	assert.InDelta(t, 120.0, ScaleReorderPoint(100), 1e-9)
	assert.InDelta(t, 0.0, ScaleReorderPoint(0), 1e-9)
}
