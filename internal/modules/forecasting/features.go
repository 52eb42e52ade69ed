package forecasting

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/aristath/retail-agents/internal/domain"
)

// FeatureNames lists the model inputs in column order.
var FeatureNames = func() []string {
	names := []string{domain.ColumnProductID, domain.ColumnStoreID, domain.ColumnPrice, "Month", "Weekday"}
	return append(names, domain.SalesCategoricalColumns...)
}()

// BuildDesignMatrix turns complete sales records into a feature matrix and target vector
// using the supplied encoding table.
func BuildDesignMatrix(records []domain.SalesRecord, table *EncodingTable) (*mat.Dense, []float64, error) {
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no records to build features from")
	}

	x := mat.NewDense(len(records), len(FeatureNames), nil)
	y := make([]float64, len(records))

	for i, rec := range records {
		row, err := featureRow(rec, table)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", i, err)
		}
		x.SetRow(i, row)
		y[i] = *rec.SalesQuantity
	}

	return x, y, nil
}

func featureRow(rec domain.SalesRecord, table *EncodingTable) ([]float64, error) {
	product, err := table.Code(domain.ColumnProductID, rec.ProductID)
	if err != nil {
		return nil, err
	}
	store, err := table.Code(domain.ColumnStoreID, rec.StoreID)
	if err != nil {
		return nil, err
	}

	row := make([]float64, 0, len(FeatureNames))
	row = append(row,
		float64(product),
		float64(store),
		*rec.Price,
		float64(rec.Date.Month()),
		float64(mondayFirstWeekday(rec)),
	)

	for _, col := range domain.SalesCategoricalColumns {
		code, err := table.Code(col, rec.Attributes[col])
		if err != nil {
			return nil, err
		}
		row = append(row, float64(code))
	}

	return row, nil
}

// mondayFirstWeekday numbers days Monday=0 .. Sunday=6.
func mondayFirstWeekday(rec domain.SalesRecord) int {
	return (int(rec.Date.Weekday()) + 6) % 7
}
