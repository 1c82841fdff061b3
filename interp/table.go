// Package interp implements the reference interpreter: a
// non-incremental evaluator that recomputes each Relation directly from
// flat in-memory Tables, memoized by Relation identity. It exists as the
// compiler's oracle — its output is what every incrementally-maintained
// structure the code generator produces must agree with.
package interp

import "github.com/relsynth/relsynth/relalg"

// Table is a flat, row-major, set-semantics collection of rows: no two
// rows compare equal within one Table, matching a base Ref's HashSet
// storage in the generated code.
type Table struct {
	Rows []relalg.Row
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Contains reports whether row is already present.
func (t *Table) Contains(row relalg.Row) bool {
	for _, r := range t.Rows {
		if rowsEqual(r, row) {
			return true
		}
	}
	return false
}

// Insert adds row if not already present (set semantics).
func (t *Table) Insert(row relalg.Row) {
	if t.Contains(row) {
		return
	}
	t.Rows = append(t.Rows, row)
}

func rowsEqual(a, b relalg.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
