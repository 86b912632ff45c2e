package core

import (
	"github.com/montanaflynn/stats"

	"github.com/ruipcf/consolida/internal/schema"
)

// buildSummary computes per-condition descriptive statistics over the
// numeric cells of the given blocks. Conditions with no numeric values get a
// count of zero and empty statistics.
func buildSummary(blocks []ExtractedBlock) *Table {
	out := NewTable([]string{
		schema.ConditionColumn,
		"N",
		"Média",
		"Mediana",
		"Desvio padrão",
		"Mínimo",
		"Máximo",
	})

	for _, b := range blocks {
		var values stats.Float64Data
		for _, row := range b.Table.Rows {
			for _, cell := range row {
				if cell.Type == CellNumber {
					values = append(values, cell.Number)
				}
			}
		}

		row := []Cell{TextCell(b.Condition), NumberCell(float64(len(values)))}
		if len(values) == 0 {
			out.AppendRow(row)
			continue
		}

		mean, _ := stats.Mean(values)
		median, _ := stats.Median(values)
		stdDev, _ := stats.StandardDeviation(values)
		min, _ := stats.Min(values)
		max, _ := stats.Max(values)

		row = append(row,
			NumberCell(mean),
			NumberCell(median),
			NumberCell(stdDev),
			NumberCell(min),
			NumberCell(max),
		)
		out.AppendRow(row)
	}

	return out
}
