package dataset

import "strings"

// RawTable is the untyped tabular payload a record source produces. Every
// cell is a string; typing happens during the build.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// NormalizeHeader canonicalises a header name for matching: lowercase,
// trimmed, inner spaces collapsed to underscores.
func NormalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

// ColumnIndex returns the index of the first column matching any candidate,
// honouring candidate order. Returns -1 when none match.
func (t RawTable) ColumnIndex(candidates ...string) int {
	normalized := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		key := NormalizeHeader(col)
		if _, seen := normalized[key]; !seen {
			normalized[key] = i
		}
	}
	for _, cand := range candidates {
		if i, ok := normalized[NormalizeHeader(cand)]; ok {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed value at (row, col), or "" when col is -1 or the
// row is short.
func (t RawTable) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
