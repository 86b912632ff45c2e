package core

import (
	"strconv"
	"strings"
)

// CellType represents the value kind held by a single table cell.
type CellType int

const (
	CellEmpty CellType = iota
	CellText
	CellNumber
)

// Cell is a single table value: text, a number, or empty.
// The zero value is an empty cell.
type Cell struct {
	Type   CellType
	Text   string
	Number float64
}

// TextCell returns a cell holding the given text.
func TextCell(s string) Cell {
	return Cell{Type: CellText, Text: s}
}

// NumberCell returns a cell holding the given number.
func NumberCell(f float64) Cell {
	return Cell{Type: CellNumber, Number: f}
}

// ParseCell converts a raw string value from a file into a typed cell.
// Whitespace-only values become empty cells; values that parse as a float
// become number cells; everything else is kept as text.
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberCell(f)
	}
	return TextCell(s)
}

// String returns the cell's serialized form as written to CSV output.
// Numbers use the shortest representation that round-trips.
func (c Cell) String() string {
	switch c.Type {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// Value returns the cell's native Go value for workbook output.
// Empty cells return nil so the sheet cell is left blank.
func (c Cell) Value() any {
	switch c.Type {
	case CellNumber:
		return c.Number
	case CellText:
		return c.Text
	default:
		return nil
	}
}

// Table is a rectangular block of cells with ordered, named columns.
// Every row holds exactly len(Columns) cells. Tables are built once by a
// reader or extractor and treated as immutable afterwards.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NewTable creates an empty table with the given column names.
func NewTable(columns []string) *Table {
	return &Table{Columns: columns}
}

// AppendRow adds a row, padding short rows with empty cells and dropping
// cells beyond the column count so the rectangular invariant holds.
func (t *Table) AppendRow(cells []Cell) {
	row := make([]Cell, len(t.Columns))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// RowCount returns the number of data rows (the header is not a row).
func (t *Table) RowCount() int { return len(t.Rows) }

// ColCount returns the number of columns.
func (t *Table) ColCount() int { return len(t.Columns) }

// FileInput is one named byte stream submitted to a batch. The name is used
// for suffix-based kind detection and provenance tagging only. Condition is
// the operator-supplied label in range mode; empty otherwise.
type FileInput struct {
	Name      string
	Condition string
	Data      []byte
}

// ExtractedBlock is an extracted table tagged with its provenance.
type ExtractedBlock struct {
	File      string
	Condition string
	Table     *Table
}

// FileError records a per-file failure. Condition is empty in named-column
// mode.
type FileError struct {
	File      string `json:"file"`
	Condition string `json:"condition,omitempty"`
	Reason    string `json:"reason"`
}

// ConsolidatedResult is the outcome of a batch: the concatenated tables plus
// the per-file failures collected along the way. Long and Summary are only
// populated in range mode.
type ConsolidatedResult struct {
	Wide    *Table
	Long    *Table
	Summary *Table
	FilesOK int
	Errors  []FileError
}
