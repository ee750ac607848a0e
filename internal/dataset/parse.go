package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrNoHeader is returned when the uploaded file has no header row.
var ErrNoHeader = errors.New("dataset has no header row")

// ErrNoRows is returned when the uploaded file has a header but no data rows.
var ErrNoRows = errors.New("dataset has no data rows")

// ParseCSV reads a delimited text upload into a Table and applies load-time
// coercion to the known date and numeric columns. A leading UTF-8 BOM is
// tolerated so exports of this service round-trip through Parse.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // validated below with row numbers

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	return fromRecords(records)
}

// ParseXLSX reads an Excel upload into a Table. The first sheet that
// contains more than a header row is used.
func ParseXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var records [][]string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if len(rows) > 1 {
			slog.Debug("using worksheet", slog.String("sheet", name), slog.Int("rows", len(rows)))
			records = rows
			break
		}
	}
	if records == nil {
		return nil, ErrNoRows
	}

	return fromRecords(records)
}

// fromRecords builds a coerced Table from raw rows, the first being the header.
func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("header column %d is blank", i+1)
		}
		header[i] = strings.TrimSpace(name)
	}

	if len(records) == 1 {
		return nil, ErrNoRows
	}

	width := len(header)
	rows := make([][]string, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) > width {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+2, len(rec), width)
		}
		// Short rows are padded; xlsx readers drop trailing empty cells.
		row := make([]string, width)
		copy(row, rec)
		rows = append(rows, row)
	}

	columns := make([]Column, width)
	for i, name := range header {
		columns[i] = Column{Name: name, Kind: KindText}
	}

	t := &Table{Columns: columns, Rows: rows, LoadedAt: time.Now()}
	coerce(t)
	return t, nil
}
