package core

import (
	"strconv"

	"github.com/ruipcf/consolida/internal/schema"
)

// Consolidator accumulates extracted blocks and per-file failures in the
// order they are added. A failure never aborts the batch; it is recorded and
// the remaining files keep flowing in.
type Consolidator struct {
	blocks []ExtractedBlock
	errd   []FileError
}

// NewConsolidator returns an empty consolidator.
func NewConsolidator() *Consolidator {
	return &Consolidator{}
}

// Add records a successfully extracted block.
func (c *Consolidator) Add(b ExtractedBlock) {
	c.blocks = append(c.blocks, b)
}

// AddError records a per-file failure.
func (c *Consolidator) AddError(file, condition string, err error) {
	c.errd = append(c.errd, FileError{File: file, Condition: condition, Reason: err.Error()})
}

// Errors returns the failures recorded so far, in insertion order.
func (c *Consolidator) Errors() []FileError {
	return c.errd
}

// FinalizeColumns concatenates named-column blocks into one wide table with
// a leading provenance column. All blocks share an identical schema, which
// ExtractColumns guarantees by renaming. Row order follows block insertion
// order. When zero blocks succeeded the result still carries the error list
// alongside ErrNothingConsolidated.
func (c *Consolidator) FinalizeColumns() (*ConsolidatedResult, error) {
	res := &ConsolidatedResult{FilesOK: len(c.blocks), Errors: c.errd}
	if len(c.blocks) == 0 {
		return res, ErrNothingConsolidated
	}

	columns := append([]string{schema.ProvenanceColumn}, c.blocks[0].Table.Columns...)
	wide := NewTable(columns)
	for _, b := range c.blocks {
		for _, row := range b.Table.Rows {
			cells := make([]Cell, 0, len(columns))
			cells = append(cells, TextCell(b.File))
			cells = append(cells, row...)
			wide.Rows = append(wide.Rows, cells)
		}
	}

	res.Wide = wide
	return res, nil
}

// FinalizeRanges concatenates range blocks into two parallel outputs: a wide
// table (one row per source row, value columns side by side) and a long
// table melted to one row per (condition, file, row, column, value) for
// downstream filtering and statistics. Blocks narrower than the widest one
// are padded with empty cells.
func (c *Consolidator) FinalizeRanges() (*ConsolidatedResult, error) {
	res := &ConsolidatedResult{FilesOK: len(c.blocks), Errors: c.errd}
	if len(c.blocks) == 0 {
		return res, ErrNothingConsolidated
	}

	valueCols := rangeValueColumns(c.blocks)

	wideCols := append([]string{schema.ConditionColumn, schema.ProvenanceColumn}, valueCols...)
	wide := NewTable(wideCols)
	for _, b := range c.blocks {
		for _, row := range b.Table.Rows {
			cells := make([]Cell, 0, len(wideCols))
			cells = append(cells, TextCell(b.Condition), TextCell(b.File))
			cells = append(cells, row...)
			wide.AppendRow(cells)
		}
	}

	long := NewTable([]string{schema.ConditionColumn, schema.ProvenanceColumn, "Linha", "Coluna", "Valor"})
	for _, b := range c.blocks {
		for r, row := range b.Table.Rows {
			for i, cell := range row {
				long.AppendRow([]Cell{
					TextCell(b.Condition),
					TextCell(b.File),
					NumberCell(float64(r + 1)),
					TextCell(columnLabel(b.Table.Columns, i)),
					cell,
				})
			}
		}
	}

	res.Wide = wide
	res.Long = long
	res.Summary = buildSummary(c.blocks)
	return res, nil
}

// rangeValueColumns chooses the wide table's value column names. Blocks can
// end up with different widths when a short file clamps the range, so the
// widest block sets the width and the first block naming each position sets
// the name.
func rangeValueColumns(blocks []ExtractedBlock) []string {
	width := 0
	for _, b := range blocks {
		if b.Table.ColCount() > width {
			width = b.Table.ColCount()
		}
	}

	cols := make([]string, width)
	for i := range cols {
		for _, b := range blocks {
			if i < b.Table.ColCount() && b.Table.Columns[i] != "" {
				cols[i] = b.Table.Columns[i]
				break
			}
		}
		if cols[i] == "" {
			cols[i] = "C" + strconv.Itoa(i+1)
		}
	}
	return cols
}

// columnLabel names a long-format column entry, falling back to a positional
// label when the source header cell was blank.
func columnLabel(columns []string, i int) string {
	if i < len(columns) && columns[i] != "" {
		return columns[i]
	}
	return "C" + strconv.Itoa(i+1)
}
