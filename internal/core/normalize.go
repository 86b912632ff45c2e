package core

import "strings"

// NormalizeColumn canonicalizes a column name for lookup: leading and
// trailing whitespace is trimmed and every internal run of whitespace
// collapses to a single space. Case and punctuation are left alone, so
// matching is exact-after-normalization only.
func NormalizeColumn(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// MakeColumnIndex maps a table's normalized column names to their positions.
// When duplicate names normalize to the same key, the first occurrence wins
// so lookups are deterministic.
func MakeColumnIndex(columns []string) map[string]int {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		key := NormalizeColumn(c)
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}
