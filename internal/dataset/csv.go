package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/aristath/retail-agents/internal/domain"
)

// Default file names inside the data directory.
const (
	DefaultSalesFile     = "demand_forecasting.csv"
	DefaultInventoryFile = "inventory_monitoring.csv"
	DefaultPricingFile   = "pricing_optimization.csv"
)

// CSVConfig locates the dataset files. Relative file names are resolved
// against Dir; empty names fall back to the defaults.
type CSVConfig struct {
	Dir           string
	SalesFile     string
	InventoryFile string
	PricingFile   string
}

// CSVSource reads the datasets from CSV files with a header row.
// Files are read on every load so edits are picked up by the next run.
type CSVSource struct {
	cfg CSVConfig
	log zerolog.Logger
}

// NewCSVSource creates a CSV dataset source.
func NewCSVSource(cfg CSVConfig, log zerolog.Logger) *CSVSource {
	if cfg.SalesFile == "" {
		cfg.SalesFile = DefaultSalesFile
	}
	if cfg.InventoryFile == "" {
		cfg.InventoryFile = DefaultInventoryFile
	}
	if cfg.PricingFile == "" {
		cfg.PricingFile = DefaultPricingFile
	}
	return &CSVSource{
		cfg: cfg,
		log: log.With().Str("component", "csv_source").Logger(),
	}
}

func (s *CSVSource) LoadSales(ctx context.Context) ([]domain.SalesRecord, error) {
	t, err := s.read(ctx, SalesDataset, s.cfg.SalesFile)
	if err != nil {
		return nil, err
	}
	return parseSales(t)
}

func (s *CSVSource) LoadInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	t, err := s.read(ctx, InventoryDataset, s.cfg.InventoryFile)
	if err != nil {
		return nil, err
	}
	return parseInventory(t)
}

func (s *CSVSource) LoadPricing(ctx context.Context) ([]domain.PricingRecord, error) {
	t, err := s.read(ctx, PricingDataset, s.cfg.PricingFile)
	if err != nil {
		return nil, err
	}
	return parsePricing(t)
}

func (s *CSVSource) path(name string) string {
	if filepath.IsAbs(name) || s.cfg.Dir == "" {
		return name
	}
	return filepath.Join(s.cfg.Dir, name)
}

func (s *CSVSource) read(ctx context.Context, dataset, name string) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.path(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s dataset: %w", dataset, err)
	}
	defer f.Close()

	t, err := readCSV(dataset, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	s.log.Debug().
		Str("dataset", dataset).
		Str("path", path).
		Int("rows", len(t.rows)).
		Msg("Loaded dataset")

	return t, nil
}

// readCSV loads a header row followed by data rows. Short rows leave the
// trailing columns blank.
func readCSV(dataset string, r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s dataset has no header row", dataset)
	}
	if err != nil {
		return nil, err
	}

	t := newTable(dataset, header)
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = normalizeColumn(h)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		rw := make(row, len(keys))
		for i, key := range keys {
			if i < len(record) {
				rw[key] = record[i]
			}
		}
		t.rows = append(t.rows, rw)
	}

	return t, nil
}
