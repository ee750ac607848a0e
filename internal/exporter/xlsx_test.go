package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetgauge/internal/dataset"
)

func TestWriteXLSX_RoundTrip(t *testing.T) {
	tbl := loadExportTable(t)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, tbl))

	reparsed, err := dataset.ParseXLSX(&buf)
	require.NoError(t, err)

	assert.Equal(t, tbl.ColumnNames(), reparsed.ColumnNames())
	assert.Equal(t, tbl.Records(), reparsed.Records())
}

func TestWriteXLSX_EmptyFilterResult(t *testing.T) {
	tbl := loadExportTable(t)
	filtered := dataset.Filter{Company: "Initech"}.Apply(tbl)

	var buf bytes.Buffer
	// Header-only workbook is still a valid export.
	require.NoError(t, WriteXLSX(&buf, filtered))
	assert.NotZero(t, buf.Len())
}
