package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_DistinctValues(t *testing.T) {
	tbl := loadSample(t)

	buildings, err := tbl.DistinctValues("Building")
	require.NoError(t, err)
	assert.Equal(t, []string{"Annex", "HQ"}, buildings)

	statuses, err := tbl.DistinctValues("Status")
	require.NoError(t, err)
	assert.Equal(t, []string{"Deployed", "In Repair"}, statuses)
}

func TestTable_DistinctValues_UnknownColumn(t *testing.T) {
	tbl := loadSample(t)
	_, err := tbl.DistinctValues("Nope")
	assert.Error(t, err)
}

func TestTable_DistinctValues_SkipsBlanks(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("Building\nHQ\n\nHQ\n  \nAnnex\n"))
	require.NoError(t, err)

	values, err := tbl.DistinctValues("Building")
	require.NoError(t, err)
	assert.Equal(t, []string{"Annex", "HQ"}, values)
}

func TestTable_Select(t *testing.T) {
	tbl := loadSample(t)

	got, err := tbl.Select([]string{"Building", "Asset ID"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Building", "Asset ID"}, got.ColumnNames())
	assert.Equal(t, tbl.NumRows(), got.NumRows())
	assert.Equal(t, "HQ", got.Cell(0, 0))
	assert.Equal(t, "A-001", got.Cell(0, 1))
}

func TestTable_Select_UnknownColumn(t *testing.T) {
	tbl := loadSample(t)
	_, err := tbl.Select([]string{"Asset ID", "Serial #"})
	assert.Error(t, err)
}

func TestTable_CountDistinct(t *testing.T) {
	tbl := loadSample(t)
	assert.Equal(t, 2, tbl.CountDistinct("Building"))
	assert.Equal(t, 3, tbl.CountDistinct("Room Name"))
	assert.Equal(t, 0, tbl.CountDistinct("Missing"))
}

func TestTable_Records_PadsShortRows(t *testing.T) {
	tbl := &Table{
		Columns: []Column{{Name: "A"}, {Name: "B"}, {Name: "C"}},
		Rows:    [][]string{{"1"}, {"1", "2", "3"}},
	}
	records := tbl.Records()
	assert.Equal(t, [][]string{{"1", "", ""}, {"1", "2", "3"}}, records)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "date", KindDate.String())
	assert.Equal(t, "number", KindNumber.String())
}
