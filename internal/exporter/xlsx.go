package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"assetgauge/internal/dataset"
)

// xlsxSheet is the worksheet name of an exported workbook.
const xlsxSheet = "Assets"

// WriteXLSX writes a table as a single-sheet Excel workbook with a bold
// header row.
func WriteXLSX(w io.Writer, t *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if def := f.GetSheetName(0); def != xlsxSheet {
		if err := f.DeleteSheet(def); err != nil {
			return fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		f.SetCellStyle(xlsxSheet, "A1", endCell, headerStyle)
	}

	for i, record := range t.Records() {
		row := make([]interface{}, len(record))
		for j, cell := range record {
			row[j] = cell
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(xlsxSheet, cellName, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
