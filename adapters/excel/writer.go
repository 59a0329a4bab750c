package excel

import (
	"encoding/csv"
	"os"

	"sheetops/domain/table"

	"github.com/xuri/excelize/v2"
)

// WriteCSV writes the row-set with a header row. Missing cells are empty.
func WriteCSV(path string, rs *table.RowSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(rs.Names()); err != nil {
		return err
	}
	for i := 0; i < rs.Len(); i++ {
		values := rs.Row(i).Values()
		record := make([]string, len(values))
		for j, v := range values {
			if !v.IsMissing() {
				record[j] = v.String()
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteXLSX writes the row-set to a single-sheet workbook. Numbers are stored
// as numeric cells; timestamps and booleans as their display text so they read
// back the way a hand-typed sheet would.
func WriteXLSX(path, sheet string, rs *table.RowSet) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	}

	// Header row
	for i, h := range rs.Names() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	// Data rows
	for r := 0; r < rs.Len(); r++ {
		rowIdx := r + 2
		for c, v := range rs.Row(r).Values() {
			if v.IsMissing() {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
			var cellValue interface{} = v.String()
			if n, ok := v.Float(); ok {
				cellValue = n
			}
			if err := f.SetCellValue(sheet, cell, cellValue); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
