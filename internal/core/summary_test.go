package core

import (
	"math"
	"testing"
)

func TestBuildSummary_Statistics(t *testing.T) {
	blocks := []ExtractedBlock{
		{
			File:      "a.csv",
			Condition: "cond1",
			Table:     testTable([]string{"F"}, []string{"1"}, []string{"2"}, []string{"3"}, []string{"4"}),
		},
		{
			File:      "b.csv",
			Condition: "cond2",
			Table:     testTable([]string{"F"}, []string{"texto"}, []string{""}),
		},
	}

	sum := buildSummary(blocks)

	if sum.RowCount() != 2 {
		t.Fatalf("RowCount = %d, want 2", sum.RowCount())
	}

	r0 := sum.Rows[0]
	if r0[0].Text != "cond1" {
		t.Errorf("condition = %q", r0[0].Text)
	}
	if r0[1].Number != 4 {
		t.Errorf("N = %v, want 4", r0[1].Number)
	}
	if r0[2].Number != 2.5 {
		t.Errorf("mean = %v, want 2.5", r0[2].Number)
	}
	if r0[3].Number != 2.5 {
		t.Errorf("median = %v, want 2.5", r0[3].Number)
	}
	if math.Abs(r0[4].Number-math.Sqrt(1.25)) > 1e-9 {
		t.Errorf("stddev = %v, want %v", r0[4].Number, math.Sqrt(1.25))
	}
	if r0[5].Number != 1 || r0[6].Number != 4 {
		t.Errorf("min/max = %v/%v, want 1/4", r0[5].Number, r0[6].Number)
	}

	// No numeric cells: count zero, statistics left empty.
	r1 := sum.Rows[1]
	if r1[0].Text != "cond2" || r1[1].Number != 0 {
		t.Errorf("empty condition row = %v", r1)
	}
	for i := 2; i < len(r1); i++ {
		if r1[i].Type != CellEmpty {
			t.Errorf("column %d = %v, want empty", i, r1[i])
		}
	}
}
