package analytics

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetgauge/internal/dataset"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFinancials_CostStats(t *testing.T) {
	tbl := loadAssets(t)
	f := Financials(tbl)

	// A-005's cost "oops" is skipped from the distribution stats.
	assert.Equal(t, 4, f.Cost.Count)
	assert.True(t, f.Cost.Total.Equal(dec("2000")), "total %s", f.Cost.Total)
	assert.True(t, f.Cost.Mean.Equal(dec("500")), "mean %s", f.Cost.Mean)
	assert.True(t, f.Cost.Median.Equal(dec("400")), "median %s", f.Cost.Median)
}

func TestFinancials_MedianOddCount(t *testing.T) {
	tbl, err := dataset.ParseCSV(strings.NewReader("Cost\n10\n30\n20\n"))
	require.NoError(t, err)

	f := Financials(tbl)
	assert.True(t, f.Cost.Median.Equal(dec("20")), "median %s", f.Cost.Median)
}

func TestFinancials_Totals(t *testing.T) {
	tbl := loadAssets(t)
	f := Financials(tbl)

	assert.True(t, f.TotalDepreciatedValue.Equal(dec("1690")), "got %s", f.TotalDepreciatedValue)
	assert.True(t, f.TotalAmountDepreciated.IsZero())
}

func TestFinancials_ByBuilding(t *testing.T) {
	tbl := loadAssets(t)
	f := Financials(tbl)

	assert.Equal(t, []string{"Cost", "Depreciated Value"}, f.Columns)
	require.Len(t, f.ByBuilding, 2)

	annex := f.ByBuilding[0]
	assert.Equal(t, "Annex", annex.Building)
	// A-005's malformed cost counts as zero in the building table.
	assert.True(t, annex.Totals["Cost"].Equal(dec("500")), "got %s", annex.Totals["Cost"])
	assert.True(t, annex.Totals["Depreciated Value"].Equal(dec("500")))

	hq := f.ByBuilding[1]
	assert.Equal(t, "HQ", hq.Building)
	assert.True(t, hq.Totals["Cost"].Equal(dec("1500")))
}

func TestFinancials_NoFinancialColumns(t *testing.T) {
	tbl, err := dataset.ParseCSV(strings.NewReader("Asset ID,Building\nA-1,HQ\n"))
	require.NoError(t, err)

	f := Financials(tbl)
	assert.Equal(t, 0, f.Cost.Count)
	assert.Empty(t, f.Columns)
	assert.Empty(t, f.ByBuilding)
}

func TestCostValues(t *testing.T) {
	tbl := loadAssets(t)
	values := CostValues(tbl)
	assert.Equal(t, []float64{1000, 200, 300, 500}, values)
}
