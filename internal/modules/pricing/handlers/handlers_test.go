package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/retail-agents/internal/dataset"
	"github.com/aristath/retail-agents/internal/domain"
	"github.com/aristath/retail-agents/internal/modules/pricing"
	testingpkg "github.com/aristath/retail-agents/internal/testing"
)

func serve(t *testing.T, src *testingpkg.MockSource) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	NewHandler(src, pricing.NewAnalyzer(zerolog.Nop()), zerolog.Nop()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pricing", nil))
	return rec
}

func TestHandleGetPricing(t *testing.T) {
	rec := serve(t, testingpkg.NewMockSource(time.Now()))
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "P1", rows[0]["Product ID"])
	assert.Equal(t, 120.0, rows[0]["Current Price"])
	assert.Equal(t, 100.0, rows[0]["Competitor Price"])
	assert.Equal(t, 30.0, rows[0]["Sales Volume"])
	assert.Equal(t, domain.PriceReductionAdvice, rows[0]["Suggestion"])
	assert.NotContains(t, rows[0], "Demand Tag")
	assert.Equal(t, "P2", rows[1]["Product ID"])
}

func TestHandleGetPricing_NoSuggestions(t *testing.T) {
	src := testingpkg.NewMockSource(time.Now())
	src.SetPricing([]domain.PricingRecord{testingpkg.NewPricingRecord("P3", 100, 95, 200, 1.0)})

	rec := serve(t, src)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleGetPricing_SchemaError(t *testing.T) {
	src := testingpkg.NewMockSource(time.Now())
	src.SetErrors(nil, nil, &dataset.SchemaError{Dataset: dataset.PricingDataset, Field: dataset.ColumnSalesVolume})

	rec := serve(t, src)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Sales Volume")
}
