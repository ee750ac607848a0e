package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"assetgauge/internal/dataset"
)

// CostStats are the distribution statistics of the Cost column, computed
// over rows with a parseable cost only.
type CostStats struct {
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
	Mean   decimal.Decimal `json:"mean"`
	Median decimal.Decimal `json:"median"`
}

// BuildingFinancials is one row of the per-building financial summary.
// Sums cover every financial column present in the table; blank or
// malformed cells count as zero here, unlike the distribution stats.
type BuildingFinancials struct {
	Building string                     `json:"building"`
	Totals   map[string]decimal.Decimal `json:"totals"`
}

// FinancialSummary is the financial analysis view.
type FinancialSummary struct {
	Cost                   CostStats            `json:"cost"`
	TotalDepreciatedValue  decimal.Decimal      `json:"total_depreciated_value"`
	TotalAmountDepreciated decimal.Decimal      `json:"total_amount_depreciated"`
	Columns                []string             `json:"columns"`
	ByBuilding             []BuildingFinancials `json:"by_building"`
}

// Financials computes the financial view over the financial columns the
// table actually has.
func Financials(t *dataset.Table) FinancialSummary {
	summary := FinancialSummary{
		Cost:                   costStats(t),
		TotalDepreciatedValue:  columnTotal(t, "Depreciated Value"),
		TotalAmountDepreciated: columnTotal(t, "Amount Depreciated"),
	}

	for _, name := range dataset.NumberColumns {
		if t.HasColumn(name) {
			summary.Columns = append(summary.Columns, name)
		}
	}

	bIdx := t.ColumnIndex("Building")
	if bIdx < 0 || len(summary.Columns) == 0 {
		return summary
	}

	byBuilding := make(map[string]map[string]decimal.Decimal)
	for r := 0; r < t.NumRows(); r++ {
		building := t.Cell(r, bIdx)
		if building == "" {
			continue
		}
		totals, ok := byBuilding[building]
		if !ok {
			totals = make(map[string]decimal.Decimal, len(summary.Columns))
			for _, name := range summary.Columns {
				totals[name] = decimal.Zero
			}
			byBuilding[building] = totals
		}
		for _, name := range summary.Columns {
			if v, ok := dataset.ParseMoney(t.Cell(r, t.ColumnIndex(name))); ok {
				totals[name] = totals[name].Add(v)
			}
		}
	}

	rows := make([]BuildingFinancials, 0, len(byBuilding))
	for building, totals := range byBuilding {
		rows = append(rows, BuildingFinancials{Building: building, Totals: totals})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Building < rows[j].Building })
	summary.ByBuilding = rows
	return summary
}

// CostValues extracts the parseable cost cells as floats, for the
// histogram chart.
func CostValues(t *dataset.Table) []float64 {
	idx := t.ColumnIndex("Cost")
	if idx < 0 {
		return nil
	}
	var out []float64
	for r := 0; r < t.NumRows(); r++ {
		if d, ok := dataset.ParseMoney(t.Cell(r, idx)); ok {
			f, _ := d.Float64()
			out = append(out, f)
		}
	}
	return out
}

// costStats computes count, total, mean and median of parseable cost cells.
func costStats(t *dataset.Table) CostStats {
	stats := CostStats{Total: decimal.Zero, Mean: decimal.Zero, Median: decimal.Zero}

	idx := t.ColumnIndex("Cost")
	if idx < 0 {
		return stats
	}

	var values []decimal.Decimal
	for r := 0; r < t.NumRows(); r++ {
		if d, ok := dataset.ParseMoney(t.Cell(r, idx)); ok {
			values = append(values, d)
			stats.Total = stats.Total.Add(d)
		}
	}
	stats.Count = len(values)
	if stats.Count == 0 {
		return stats
	}

	stats.Mean = stats.Total.Div(decimal.NewFromInt(int64(stats.Count)))

	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
	mid := len(values) / 2
	if len(values)%2 == 1 {
		stats.Median = values[mid]
	} else {
		stats.Median = values[mid-1].Add(values[mid]).Div(decimal.NewFromInt(2))
	}
	return stats
}

// columnTotal sums the parseable cells of one financial column.
func columnTotal(t *dataset.Table, column string) decimal.Decimal {
	total := decimal.Zero
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return total
	}
	for r := 0; r < t.NumRows(); r++ {
		if d, ok := dataset.ParseMoney(t.Cell(r, idx)); ok {
			total = total.Add(d)
		}
	}
	return total
}
