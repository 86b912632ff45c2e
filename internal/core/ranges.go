package core

import (
	"fmt"
	"strings"
)

// RangeSpec addresses a rectangular region the way a person reads it off a
// spreadsheet: column letters and 1-based visual row numbers, both
// inclusive. Row numbers count the header row when HeaderRow is set, so
// "F2:H6 with a header" means the first five data rows of columns F-H.
type RangeSpec struct {
	StartCol  string `json:"start_col"`
	EndCol    string `json:"end_col"`
	StartRow  int    `json:"start_row"`
	EndRow    int    `json:"end_row"`
	HeaderRow bool   `json:"header_row"`
}

// Validate checks the spec's internal consistency. Bounds beyond a table's
// actual extent are not an error; extraction degrades to a smaller block.
func (r RangeSpec) Validate() error {
	if _, err := ColumnIndex(r.StartCol); err != nil {
		return &InvalidRangeError{Reason: err.Error()}
	}
	if _, err := ColumnIndex(r.EndCol); err != nil {
		return &InvalidRangeError{Reason: err.Error()}
	}
	start, _ := ColumnIndex(r.StartCol)
	end, _ := ColumnIndex(r.EndCol)
	if start > end {
		return &InvalidRangeError{Reason: fmt.Sprintf("start column %s after end column %s", r.StartCol, r.EndCol)}
	}
	minRow := 1
	if r.HeaderRow {
		// Visual row 1 is the header; data starts at row 2.
		minRow = 2
	}
	if r.StartRow < minRow {
		return &InvalidRangeError{Reason: fmt.Sprintf("start row %d before first data row %d", r.StartRow, minRow)}
	}
	if r.StartRow > r.EndRow {
		return &InvalidRangeError{Reason: fmt.Sprintf("start row %d after end row %d", r.StartRow, r.EndRow)}
	}
	return nil
}

// rowOffset translates a 1-based visual row number to a zero-based table row
// offset, accounting for the header having consumed visual row 1.
func (r RangeSpec) rowOffset(row int) int {
	if r.HeaderRow {
		return row - 2
	}
	return row - 1
}

// ColumnIndex converts spreadsheet column letters to a zero-based index
// using the standard bijective base-26 numbering: A=0, Z=25, AA=26, AZ=51,
// BA=52.
func ColumnIndex(letters string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(letters))
	if s == "" {
		return 0, fmt.Errorf("empty column letters")
	}
	n := 0
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column letters %q", letters)
		}
		n = n*26 + int(r-'A') + 1
	}
	return n - 1, nil
}

// ColumnLetters is the inverse of ColumnIndex: 0="A", 25="Z", 26="AA".
func ColumnLetters(index int) string {
	if index < 0 {
		return ""
	}
	var b []byte
	n := index + 1
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// ExtractRange returns the sub-table at the spec's coordinates, retaining
// the source column names found at those positions. Coordinates past the
// table's extent silently yield a smaller (possibly empty) block.
func ExtractRange(t *Table, spec RangeSpec) (*Table, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	c0, _ := ColumnIndex(spec.StartCol)
	c1, _ := ColumnIndex(spec.EndCol)
	r0 := spec.rowOffset(spec.StartRow)
	r1 := spec.rowOffset(spec.EndRow)

	if c1 >= t.ColCount() {
		c1 = t.ColCount() - 1
	}
	if r1 >= t.RowCount() {
		r1 = t.RowCount() - 1
	}

	var columns []string
	for c := c0; c <= c1; c++ {
		columns = append(columns, t.Columns[c])
	}

	out := NewTable(columns)
	if len(columns) == 0 {
		return out, nil
	}
	for r := r0; r <= r1; r++ {
		row := make([]Cell, 0, len(columns))
		for c := c0; c <= c1; c++ {
			row = append(row, t.Rows[r][c])
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
