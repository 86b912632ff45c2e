package core

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// NamedSheet pairs a table with the workbook sheet name it is written to.
type NamedSheet struct {
	Name  string
	Table *Table
}

// ExportCSV serializes a table as comma-separated UTF-8 text with a leading
// byte-order mark, which spreadsheet applications expect when opening the
// file directly. Rows are written in insertion order.
func ExportCSV(t *Table) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Write(t.Columns)
	record := make([]string, t.ColCount())
	for _, row := range t.Rows {
		for i, cell := range row {
			record[i] = cell.String()
		}
		w.Write(record)
	}
	w.Flush()

	return buf.Bytes()
}

// ExportWorkbook serializes tables as an xlsx workbook with one sheet per
// named table: a header row plus data rows, plain values, no styling. The
// first sheet is made active.
func ExportWorkbook(sheets []NamedSheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			// Rename the default sheet instead of creating a new one.
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", s.Name, err)
			}
		} else {
			if _, err := f.NewSheet(s.Name); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", s.Name, err)
			}
		}
		if err := writeSheet(f, s.Name, s.Table); err != nil {
			return nil, err
		}
	}

	idx, err := f.GetSheetIndex(sheets[0].Name)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, t *Table) error {
	header := make([]any, t.ColCount())
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write sheet %q header: %w", name, err)
	}

	for r, row := range t.Rows {
		values := make([]any, len(row))
		for i, cell := range row {
			values[i] = cell.Value()
		}
		cellName, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cellName, &values); err != nil {
			return fmt.Errorf("write sheet %q row %d: %w", name, r+2, err)
		}
	}
	return nil
}
