package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetgauge/internal/dataset"
)

const assetsCSV = `Asset ID,Company,Building,Room Name,Status,Active,Date Added,Cost,Depreciated Value
A-001,Acme,HQ,Server Room,Deployed,Yes,2024-01-15,1000,800
A-002,Acme,HQ,Lobby,Deployed,Yes,2024-01-15,200,150
A-003,Acme,HQ,Lobby,Stored,No,2024-02-01,300,240
A-004,Globex,Annex,Lab 1,Deployed,Yes,2024-02-10,500,400
A-005,Globex,Annex,Lab 1,In Repair,No,bad-date,oops,100
`

func loadAssets(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.ParseCSV(strings.NewReader(assetsCSV))
	require.NoError(t, err)
	return tbl
}

func TestSummarize(t *testing.T) {
	tbl := loadAssets(t)
	s := Summarize(tbl, 10)

	assert.Equal(t, 5, s.TotalAssets)
	assert.Equal(t, 2, s.Buildings)
	assert.Equal(t, 3, s.Rooms)
	assert.Equal(t, 3, s.ActiveAssets)

	require.Len(t, s.TopBuildings, 2)
	assert.Equal(t, ValueCount{Value: "HQ", Count: 3}, s.TopBuildings[0])
	assert.Equal(t, ValueCount{Value: "Annex", Count: 2}, s.TopBuildings[1])

	assert.Equal(t, []ValueCount{{Value: "Yes", Count: 3}, {Value: "No", Count: 2}}, s.ActiveSplit)
}

func TestSummarize_TopNTruncates(t *testing.T) {
	tbl := loadAssets(t)
	s := Summarize(tbl, 1)
	assert.Len(t, s.TopBuildings, 1)
	assert.Equal(t, "HQ", s.TopBuildings[0].Value)
}

func TestSummarize_MissingColumns(t *testing.T) {
	tbl, err := dataset.ParseCSV(strings.NewReader("Asset ID\nA-1\nA-2\n"))
	require.NoError(t, err)

	s := Summarize(tbl, 10)
	assert.Equal(t, 2, s.TotalAssets)
	assert.Equal(t, 0, s.Buildings)
	assert.Equal(t, 0, s.ActiveAssets)
	assert.Nil(t, s.TopBuildings)
}

func TestValueCounts_TieBreakByValue(t *testing.T) {
	tbl, err := dataset.ParseCSV(strings.NewReader("Status\nB\nA\nB\nA\n"))
	require.NoError(t, err)

	counts := ValueCounts(tbl, "Status")
	assert.Equal(t, []ValueCount{{Value: "A", Count: 2}, {Value: "B", Count: 2}}, counts)
}

func TestValueCounts_SkipsBlankCells(t *testing.T) {
	tbl, err := dataset.ParseCSV(strings.NewReader("Status,X\nDeployed,1\n,2\nDeployed,3\n"))
	require.NoError(t, err)

	counts := ValueCounts(tbl, "Status")
	assert.Equal(t, []ValueCount{{Value: "Deployed", Count: 2}}, counts)
}
