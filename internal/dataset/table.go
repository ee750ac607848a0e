package dataset

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Kind classifies a column after load-time coercion.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindNumber
)

// String returns the kind name for logging and API payloads.
func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindNumber:
		return "number"
	default:
		return "text"
	}
}

// Column describes one column of a loaded table.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"-"`
}

// Table is an immutable in-memory tabular dataset. It is created once per
// upload and never mutated afterwards; filtering and projection return new
// Table values that share the underlying row slices.
type Table struct {
	Columns  []Column
	Rows     [][]string
	LoadedAt time.Time
}

// ColumnNames returns the header names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1 if absent.
// Lookup is exact, matching the original dashboard's column semantics.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Cell returns the value at (row, column index), or "" for short rows.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// DistinctValues returns the sorted unique non-blank values of a column,
// used to populate the filter controls.
func (t *Table) DistinctValues(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}

	seen := make(map[string]struct{})
	for row := range t.Rows {
		v := strings.TrimSpace(t.Cell(row, idx))
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

// CountDistinct returns the number of unique non-blank values of a column,
// or 0 if the column is absent.
func (t *Table) CountDistinct(name string) int {
	values, err := t.DistinctValues(name)
	if err != nil {
		return 0
	}
	return len(values)
}

// Select returns a projection of the table onto the named columns, in the
// given order. Unknown columns are an error so the caller can surface a 404.
func (t *Table) Select(names []string) (*Table, error) {
	indices := make([]int, len(names))
	columns := make([]Column, len(names))
	for i, name := range names {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("column %q not found", name)
		}
		indices[i] = idx
		columns[i] = t.Columns[idx]
	}

	rows := make([][]string, len(t.Rows))
	for r := range t.Rows {
		row := make([]string, len(indices))
		for i, idx := range indices {
			row[i] = t.Cell(r, idx)
		}
		rows[r] = row
	}

	return &Table{Columns: columns, Rows: rows, LoadedAt: t.LoadedAt}, nil
}

// Records returns all rows as padded string slices of header width,
// the shape expected by CSV and XLSX writers.
func (t *Table) Records() [][]string {
	width := len(t.Columns)
	records := make([][]string, len(t.Rows))
	for r := range t.Rows {
		row := make([]string, width)
		for c := 0; c < width; c++ {
			row[c] = t.Cell(r, c)
		}
		records[r] = row
	}
	return records
}
