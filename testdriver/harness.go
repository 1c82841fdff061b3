// Package testdriver implements the oracle-equality harness described
// in SPEC_FULL.md §4.11/§8: it runs a scenario's Relation term through
// the reference interpreter and, where the term only uses operators
// the SQL oracle can translate, an in-memory modernc.org/sqlite
// database loaded with the same base tables, and reports whether their
// row sets agree.
package testdriver

import (
	"fmt"
	"sort"

	"github.com/relsynth/relsynth/interp"
	"github.com/relsynth/relsynth/relalg"
)

// Scenario bundles one end-to-end test case: the relation term to
// evaluate, its TypeEnv, and the contents of every base table it reads.
type Scenario struct {
	Name       string
	Root       relalg.Relation
	Env        *relalg.TypeEnv
	BaseTables map[relalg.RelName]*interp.Table
}

// RunInterpreter evaluates the scenario's Root through the reference
// interpreter.
func RunInterpreter(s Scenario) (*interp.Table, error) {
	in := interp.New(s.BaseTables)
	return in.Interpret(s.Root)
}

// RowsEqual reports whether a and b contain the same set of rows,
// ignoring order — the shape every oracle comparison in this package
// needs, since none of the operators the scenarios exercise define an
// output order.
func RowsEqual(a, b *interp.Table) bool {
	if len(a.Rows) != len(b.Rows) {
		return false
	}
	as, bs := sortedStrings(a), sortedStrings(b)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func sortedStrings(t *interp.Table) []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = rowKey(r)
	}
	sort.Strings(out)
	return out
}

func rowKey(r relalg.Row) string {
	s := ""
	for i, v := range r {
		if i > 0 {
			s += "|"
		}
		s += toKeyString(v)
	}
	return s
}

func toKeyString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
