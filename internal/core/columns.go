package core

// ExtractColumns returns a new table containing exactly the required
// columns, in the required order, renamed to the requested names. Lookups
// use normalized names, so incidental spacing differences in the source
// header do not matter. If any required column is absent the returned error
// lists every missing name.
func ExtractColumns(t *Table, required []string) (*Table, error) {
	idx := MakeColumnIndex(t.Columns)

	positions := make([]int, 0, len(required))
	var missing []string
	for _, name := range required {
		pos, ok := idx[NormalizeColumn(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		positions = append(positions, pos)
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	columns := make([]string, len(required))
	copy(columns, required)

	out := NewTable(columns)
	for _, row := range t.Rows {
		cells := make([]Cell, len(positions))
		for i, pos := range positions {
			cells[i] = row[pos]
		}
		out.Rows = append(out.Rows, cells)
	}
	return out, nil
}
