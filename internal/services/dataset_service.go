package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"assetgauge/internal/analytics"
	"assetgauge/internal/config"
	"assetgauge/internal/dataset"
	"assetgauge/internal/exporter"
	"assetgauge/internal/infrastructure"
)

// Export formats accepted by the export endpoint.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// DatasetNotifier is notified after a successful upload so open dashboard
// pages can refresh. Implemented by the websocket hub.
type DatasetNotifier interface {
	NotifyDatasetReplaced(info DatasetInfo)
}

// ColumnInfo describes one column of the loaded dataset for API payloads.
type ColumnInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// DatasetInfo summarizes the currently loaded dataset.
type DatasetInfo struct {
	Filename string       `json:"filename"`
	Rows     int          `json:"rows"`
	Columns  []ColumnInfo `json:"columns"`
	LoadedAt time.Time    `json:"loaded_at"`
}

// FilterOptions lists the selectable values for each sidebar control
// present in the dataset.
type FilterOptions struct {
	Columns map[string][]string `json:"columns"`
}

// TableView is the paginated raw-table presentation.
type TableView struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// DatasetService owns the single in-memory dataset of a dashboard session.
// The table is replaced wholesale on upload and read concurrently by the
// view renderers; individual rows are never mutated after load.
type DatasetService struct {
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *infrastructure.Metrics
	notifier DatasetNotifier

	mu       sync.RWMutex
	table    *dataset.Table
	filename string
}

// NewDatasetService creates a new dataset service. metrics and notifier
// may be nil in tests.
func NewDatasetService(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics, notifier DatasetNotifier) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetService{
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "dataset_service")),
		metrics:  metrics,
		notifier: notifier,
	}
}

// Load parses an uploaded file and replaces the session dataset. The
// previous table, if any, is discarded regardless of its contents.
func (s *DatasetService) Load(ctx context.Context, r io.Reader, filename string) (DatasetInfo, error) {
	start := time.Now()

	var (
		tbl *dataset.Table
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		tbl, err = dataset.ParseCSV(r)
	case ".xlsx":
		tbl, err = dataset.ParseXLSX(r)
	default:
		s.observeUpload("unsupported_format")
		return DatasetInfo{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		s.observeUpload("malformed")
		if errors.Is(err, dataset.ErrNoHeader) || errors.Is(err, dataset.ErrNoRows) {
			return DatasetInfo{}, fmt.Errorf("%w: %s", ErrEmptyDataset, err)
		}
		return DatasetInfo{}, fmt.Errorf("%w: %s", ErrMalformedDataset, err)
	}

	s.mu.Lock()
	s.table = tbl
	s.filename = filename
	s.mu.Unlock()

	info := s.infoFor(tbl, filename)

	s.logger.InfoContext(ctx, "dataset replaced",
		slog.String("filename", filename),
		slog.Int("rows", info.Rows),
		slog.Int("columns", len(info.Columns)),
		slog.Duration("parse_duration", time.Since(start)),
	)

	s.observeUpload("ok")
	if s.metrics != nil {
		s.metrics.SetDatasetSize(info.Rows, len(info.Columns))
	}
	if s.notifier != nil {
		s.notifier.NotifyDatasetReplaced(info)
	}
	return info, nil
}

// Info returns metadata for the current dataset.
func (s *DatasetService) Info(ctx context.Context) (DatasetInfo, error) {
	tbl, filename, err := s.snapshot()
	if err != nil {
		return DatasetInfo{}, err
	}
	return s.infoFor(tbl, filename), nil
}

// Filters returns the distinct values of each sidebar filter column
// present in the dataset.
func (s *DatasetService) Filters(ctx context.Context) (FilterOptions, error) {
	tbl, _, err := s.snapshot()
	if err != nil {
		return FilterOptions{}, err
	}

	opts := FilterOptions{Columns: make(map[string][]string)}
	for _, name := range dataset.FilterColumns {
		values, err := tbl.DistinctValues(name)
		if err != nil {
			continue // column not in this dataset
		}
		opts.Columns[name] = values
	}
	return opts, nil
}

// Summary computes the overview metrics for the filtered view.
func (s *DatasetService) Summary(ctx context.Context, f dataset.Filter) (analytics.Summary, error) {
	tbl, _, err := s.snapshot()
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(f.Apply(tbl), s.cfg.Upload.TopN), nil
}

// Locations computes the location breakdown for the filtered view.
func (s *DatasetService) Locations(ctx context.Context, f dataset.Filter) (analytics.LocationBreakdown, error) {
	tbl, _, err := s.snapshot()
	if err != nil {
		return analytics.LocationBreakdown{}, err
	}
	return analytics.Locations(f.Apply(tbl)), nil
}

// Timeline buckets the named date column of the filtered view. The column
// must be one of the coercible date columns.
func (s *DatasetService) Timeline(ctx context.Context, f dataset.Filter, column string) (analytics.Timeline, error) {
	tbl, _, err := s.snapshot()
	if err != nil {
		return analytics.Timeline{}, err
	}

	valid := false
	for _, name := range dataset.DateColumns {
		if name == column {
			valid = true
			break
		}
	}
	if !valid || !tbl.HasColumn(column) {
		return analytics.Timeline{}, fmt.Errorf("%w: %s", ErrColumnNotFound, column)
	}

	return analytics.TimelineFor(f.Apply(tbl), column), nil
}

// Financial computes the financial summary for the filtered view.
func (s *DatasetService) Financial(ctx context.Context, f dataset.Filter) (analytics.FinancialSummary, error) {
	tbl, _, err := s.snapshot()
	if err != nil {
		return analytics.FinancialSummary{}, err
	}
	return analytics.Financials(f.Apply(tbl)), nil
}

// CostValues returns the parseable cost cells of the filtered view,
// feeding the histogram chart.
func (s *DatasetService) CostValues(ctx context.Context, f dataset.Filter) ([]float64, error) {
	tbl, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return analytics.CostValues(f.Apply(tbl)), nil
}

// Table returns the raw-table view of the filtered dataset, optionally
// projected onto selected columns.
func (s *DatasetService) Table(ctx context.Context, f dataset.Filter, columns []string) (TableView, error) {
	tbl, _, err := s.snapshot()
	if err != nil {
		return TableView{}, err
	}

	view := f.Apply(tbl)
	if len(columns) > 0 {
		view, err = view.Select(columns)
		if err != nil {
			return TableView{}, fmt.Errorf("%w: %s", ErrColumnNotFound, err)
		}
	}

	return TableView{
		Columns: view.ColumnNames(),
		Rows:    view.Records(),
		Total:   view.NumRows(),
	}, nil
}

// Export streams the filtered (and projected) table to w in the requested
// format. The caller chooses the download filename.
func (s *DatasetService) Export(ctx context.Context, w io.Writer, f dataset.Filter, columns []string, format string) error {
	tbl, _, err := s.snapshot()
	if err != nil {
		return err
	}

	view := f.Apply(tbl)
	if len(columns) > 0 {
		view, err = view.Select(columns)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrColumnNotFound, err)
		}
	}

	switch format {
	case FormatCSV:
		err = exporter.WriteCSV(w, view, exporter.CSVOptions{BOMPrefix: true})
	case FormatXLSX:
		err = exporter.WriteXLSX(w, view)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	s.logger.InfoContext(ctx, "dataset exported",
		slog.String("format", format),
		slog.Int("rows", view.NumRows()),
	)
	if s.metrics != nil {
		s.metrics.ExportsTotal.WithLabelValues(format).Inc()
	}
	return nil
}

// snapshot returns the current table under the read lock.
func (s *DatasetService) snapshot() (*dataset.Table, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, "", ErrNoDataset
	}
	return s.table, s.filename, nil
}

// infoFor builds the metadata payload for a table.
func (s *DatasetService) infoFor(tbl *dataset.Table, filename string) DatasetInfo {
	columns := make([]ColumnInfo, len(tbl.Columns))
	for i, c := range tbl.Columns {
		columns[i] = ColumnInfo{Name: c.Name, Kind: c.Kind.String()}
	}
	return DatasetInfo{
		Filename: filename,
		Rows:     tbl.NumRows(),
		Columns:  columns,
		LoadedAt: tbl.LoadedAt,
	}
}

// observeUpload records an upload attempt outcome.
func (s *DatasetService) observeUpload(outcome string) {
	if s.metrics != nil {
		s.metrics.UploadsTotal.WithLabelValues(outcome).Inc()
	}
}
