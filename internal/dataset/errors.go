package dataset

import "fmt"

// SchemaError reports a dataset that lacks a required column.
type SchemaError struct {
	Dataset string
	Field   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s dataset: missing required column %q", e.Dataset, e.Field)
}

// ValueError reports a cell that could not be read as the expected type.
type ValueError struct {
	Dataset string
	Row     int // 1-based data row
	Field   string
	Value   interface{}
	Err     error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s dataset: row %d: invalid %q value %v: %v", e.Dataset, e.Row, e.Field, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}
