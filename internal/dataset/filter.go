package dataset

import "strings"

// FilterColumns are the sidebar filter controls, in display order.
// Each is an optional exact-match selection.
var FilterColumns = []string{
	"Company",
	"Building",
	"Room Name",
	"Status",
	"Active",
}

// Filter narrows a table to rows matching every active selection.
// Zero-value selections are inactive; an empty Filter matches everything.
type Filter struct {
	Company  string `json:"company,omitempty"`
	Building string `json:"building,omitempty"`
	Room     string `json:"room,omitempty"`
	Status   string `json:"status,omitempty"`
	Active   string `json:"active,omitempty" validate:"omitempty,oneof=Yes No"`

	// Search is a case-insensitive substring match across all cells.
	Search string `json:"search,omitempty"`
}

// IsZero reports whether no selection is active.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// selections pairs each active selection with its column name.
func (f Filter) selections() map[string]string {
	sel := make(map[string]string, 5)
	if f.Company != "" {
		sel["Company"] = f.Company
	}
	if f.Building != "" {
		sel["Building"] = f.Building
	}
	if f.Room != "" {
		sel["Room Name"] = f.Room
	}
	if f.Status != "" {
		sel["Status"] = f.Status
	}
	if f.Active != "" {
		sel["Active"] = f.Active
	}
	return sel
}

// Apply returns the subset of rows matching every active selection.
// Rows are shared with the source table, never copied or mutated. Filtering
// on a column the table does not have matches nothing, and a selection
// absent from the data yields an empty table, not an error.
func (f Filter) Apply(t *Table) *Table {
	if f.IsZero() {
		return t
	}

	type match struct {
		col   int
		value string
	}
	var matches []match
	missingColumn := false
	for name, value := range f.selections() {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			missingColumn = true
			break
		}
		matches = append(matches, match{col: idx, value: value})
	}

	out := &Table{Columns: t.Columns, LoadedAt: t.LoadedAt}
	if missingColumn {
		out.Rows = [][]string{}
		return out
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))

	rows := make([][]string, 0, len(t.Rows))
	for r, row := range t.Rows {
		keep := true
		for _, m := range matches {
			if t.Cell(r, m.col) != m.value {
				keep = false
				break
			}
		}
		if keep && search != "" {
			keep = rowContains(row, search)
		}
		if keep {
			rows = append(rows, row)
		}
	}
	out.Rows = rows
	return out
}

// rowContains reports whether any cell contains the lowercased needle.
func rowContains(row []string, needle string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), needle) {
			return true
		}
	}
	return false
}
