package dataset

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateColumns are the columns coerced to temporal values at load time.
// Columns not in this list are never touched, and cells that fail to parse
// stay text.
var DateColumns = []string{
	"Date Added",
	"Last Updated",
	"Acquisition Date",
	"Warranty Start Date",
	"Warranty End Date",
	"Lease Start Date",
	"Lease End Date",
	"Check Out Date",
}

// NumberColumns are the financial columns parsed as decimals for aggregation.
var NumberColumns = []string{
	"Cost",
	"Depreciated Value",
	"Amount Depreciated",
	"Scrap Value",
}

// Normalized date layouts. These are also accepted on input, which makes
// coercion idempotent: a normalized cell re-parses to itself.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// dateLayouts are tried in order when coercing a date cell. Slash layouts
// are month-first, matching the source data.
var dateLayouts = []string{
	dateTimeLayout,
	dateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// coerce normalizes the known date columns in place and records column
// kinds. This is the only mutation a Table ever sees, performed once
// before the table is published.
func coerce(t *Table) {
	for _, name := range DateColumns {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		t.Columns[idx].Kind = KindDate
		for r := range t.Rows {
			cell := strings.TrimSpace(t.Rows[r][idx])
			if cell == "" {
				t.Rows[r][idx] = ""
				continue
			}
			if normalized, ok := NormalizeDate(cell); ok {
				t.Rows[r][idx] = normalized
			}
			// Unparseable cells are left as-is, never fatal.
		}
	}

	for _, name := range NumberColumns {
		if idx := t.ColumnIndex(name); idx >= 0 {
			t.Columns[idx].Kind = KindNumber
		}
	}
}

// NormalizeDate parses a date-like cell and returns its normalized form.
// Date-only values normalize to 2006-01-02, values with a time component
// to 2006-01-02 15:04:05. Returns ok=false when no layout matches.
func NormalizeDate(value string) (string, bool) {
	ts, ok := ParseDate(value)
	if !ok {
		return "", false
	}
	if ts.Hour() == 0 && ts.Minute() == 0 && ts.Second() == 0 {
		return ts.Format(dateLayout), true
	}
	return ts.Format(dateTimeLayout), true
}

// ParseDate parses a cell against the accepted date layouts.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ParseMoney parses a financial cell into a decimal, tolerating currency
// symbols and thousands separators. Blank or malformed cells return ok=false
// and are treated as absent by aggregation.
func ParseMoney(value string) (decimal.Decimal, bool) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
