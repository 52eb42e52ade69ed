package dataset

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cast"
)

// Dataset names used in errors and logs.
const (
	SalesDataset     = "sales"
	InventoryDataset = "inventory"
	PricingDataset   = "pricing"
)

var errEmpty = errors.New("value is empty")

// row holds one record keyed by normalized column name.
type row map[string]interface{}

// table is a source-neutral view of a dataset: CSV files and SQLite tables both
// load into it so the record parsers are shared.
type table struct {
	dataset string
	columns map[string]bool
	rows    []row
}

func newTable(dataset string, header []string) *table {
	columns := make(map[string]bool, len(header))
	for _, h := range header {
		columns[normalizeColumn(h)] = true
	}
	return &table{dataset: dataset, columns: columns}
}

// require fails with a SchemaError naming the first missing column.
func (t *table) require(columns ...string) error {
	for _, col := range columns {
		if !t.columns[normalizeColumn(col)] {
			return &SchemaError{Dataset: t.dataset, Field: col}
		}
	}
	return nil
}

func (t *table) has(column string) bool {
	return t.columns[normalizeColumn(column)]
}

// normalizeColumn maps "Return Rate (%)" and "return_rate" to the same key.
func normalizeColumn(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimPrefix(name, "\uFEFF") {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingSep = true
	}
	return b.String()
}

func (r row) raw(column string) interface{} {
	v := r[normalizeColumn(column)]
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// blank reports whether a cell is absent, NULL or whitespace.
func (r row) blank(column string) bool {
	v := r.raw(column)
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func (r row) str(column string) string {
	if r.blank(column) {
		return ""
	}
	return strings.TrimSpace(cast.ToString(r.raw(column)))
}

func (r row) float(column string) (float64, error) {
	if r.blank(column) {
		return 0, errEmpty
	}
	v := r.raw(column)
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	return cast.ToFloat64E(v)
}

func (r row) date(column string) (time.Time, error) {
	if r.blank(column) {
		return time.Time{}, errEmpty
	}
	v := r.raw(column)
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	return cast.ToTimeE(v)
}
