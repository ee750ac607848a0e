package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"assetgauge/internal/dataset"
)

// CSVOptions configures CSV writing behavior.
type CSVOptions struct {
	// BOMPrefix prepends a UTF-8 BOM so Excel recognizes the encoding.
	BOMPrefix bool
}

// WriteCSV writes a table as delimited text: header row first, then every
// row padded to header width. The output re-parses to an equal table.
func WriteCSV(w io.Writer, t *dataset.Table, options CSVOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, record := range t.Records() {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename builds the timestamped download name for an export,
// e.g. filtered_assets_20240115_093000.csv.
func Filename(format string, now time.Time) string {
	return fmt.Sprintf("filtered_assets_%s.%s", now.Format("20060102_150405"), format)
}
