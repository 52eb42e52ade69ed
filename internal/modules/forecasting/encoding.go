package forecasting

import (
	"fmt"
	"sort"

	"github.com/aristath/retail-agents/internal/domain"
)

// EncodingTable maps categorical values to stable numeric codes.
// It is built once per Predict call from the rows being processed, so the same
// value always gets the same code within that call and no state leaks between calls.
type EncodingTable struct {
	codes map[string]map[string]int
}

// EncodedColumns lists the columns encoded for every sales row, in feature order.
var EncodedColumns = append([]string{domain.ColumnProductID, domain.ColumnStoreID}, domain.SalesCategoricalColumns...)

// BuildEncodingTable assigns codes per column by sorted distinct value, matching
// label-encoder semantics (the lexicographically smallest value gets 0).
func BuildEncodingTable(records []domain.SalesRecord) *EncodingTable {
	distinct := make(map[string]map[string]struct{}, len(EncodedColumns))
	for _, col := range EncodedColumns {
		distinct[col] = make(map[string]struct{})
	}

	for _, rec := range records {
		for _, col := range EncodedColumns {
			distinct[col][categoricalValue(rec, col)] = struct{}{}
		}
	}

	table := &EncodingTable{codes: make(map[string]map[string]int, len(EncodedColumns))}
	for col, values := range distinct {
		sorted := make([]string, 0, len(values))
		for v := range values {
			sorted = append(sorted, v)
		}
		sort.Strings(sorted)

		codes := make(map[string]int, len(sorted))
		for i, v := range sorted {
			codes[v] = i
		}
		table.codes[col] = codes
	}

	return table
}

// Code returns the numeric code for a value of a column.
func (t *EncodingTable) Code(column, value string) (int, error) {
	codes, ok := t.codes[column]
	if !ok {
		return 0, fmt.Errorf("column %q is not encoded", column)
	}
	code, ok := codes[value]
	if !ok {
		return 0, fmt.Errorf("value %q of column %q is not in the encoding table", value, column)
	}
	return code, nil
}

// Cardinality returns the number of distinct values seen for a column.
func (t *EncodingTable) Cardinality(column string) int {
	return len(t.codes[column])
}

func categoricalValue(rec domain.SalesRecord, column string) string {
	switch column {
	case domain.ColumnProductID:
		return rec.ProductID
	case domain.ColumnStoreID:
		return rec.StoreID
	default:
		return rec.Attributes[column]
	}
}
