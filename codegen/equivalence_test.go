package codegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relsynth/relsynth/actionir"
	"github.com/relsynth/relsynth/codegen"
	"github.com/relsynth/relsynth/interp"
	"github.com/relsynth/relsynth/names"
	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/testdriver"
)

// mutation is one base-table delta to drive through both the compiled
// structure and a plain Go mirror of the same table, in the order the
// scenario wants it applied.
type mutation struct {
	table relalg.RelName
	row   relalg.Row
	op    string // "Insert" or "Delete"
}

// driveAndCompare compiles root, drives muts through the resulting
// DataStructure via an actionir.Evaluator — the generated side of
// spec.md §8's Equivalence-to-reference property — and asserts its
// final storage for root agrees with interp.Interpreter run over the
// same net base-table contents, the algebraic side of that property.
func driveAndCompare(t *testing.T, root relalg.Relation, refs map[relalg.RelName]*relalg.RelationRef, muts []mutation, preds actionir.Predicates) {
	t.Helper()

	env := relalg.NewTypeEnv()
	_, err := env.Infer(root, relalg.TypeInt{})
	require.NoError(t, err)

	g := codegen.New(env, names.NewSource(), "DS")
	ds, err := g.Compile(root)
	require.NoError(t, err)

	ev, err := actionir.NewEvaluator(ds, preds)
	require.NoError(t, err)

	baseTables := make(map[relalg.RelName]*interp.Table, len(refs))
	for name := range refs {
		baseTables[name] = interp.NewTable()
	}

	for _, m := range muts {
		ref := refs[m.table]
		tblStorage, err := g.StorageName(ref)
		require.NoError(t, err)

		_, err = ev.Call(g.MethodName(m.op, tblStorage), m.row)
		require.NoError(t, err)

		edges, err := g.ConsumerEdges(ref)
		require.NoError(t, err)
		for _, edge := range edges {
			_, err := ev.Call(g.OnMethodName(edge.ParentStorage, edge.Slot, m.op), m.row)
			require.NoError(t, err)
		}

		switch m.op {
		case "Insert":
			baseTables[m.table].Insert(m.row)
		case "Delete":
			baseTables[m.table].Rows = removeRow(baseTables[m.table].Rows, m.row)
		default:
			t.Fatalf("unknown mutation op %q", m.op)
		}
	}

	rootStorage, err := g.StorageName(root)
	require.NoError(t, err)
	gotRows, err := ev.Rows(rootStorage)
	require.NoError(t, err)
	got := &interp.Table{Rows: gotRows}

	want, err := interp.New(baseTables).Interpret(root)
	require.NoError(t, err)

	assert.True(t, testdriver.RowsEqual(want, got), "generated structure and interpreter disagree: got %v, want %v", got.Rows, want.Rows)
}

func removeRow(rows []relalg.Row, row relalg.Row) []relalg.Row {
	out := rows[:0:0]
	for _, r := range rows {
		if !rowEqual(r, row) {
			out = append(out, r)
		}
	}
	return out
}

func rowEqual(a, b relalg.Row) bool {
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

func TestEvaluatorAgreesWithInterpreterUnion(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 1)
	b := rf.Ref("B", 1)
	union := rf.Union(a, b)

	muts := []mutation{
		{table: "A", row: relalg.Row{int64(1)}, op: "Insert"},
		{table: "A", row: relalg.Row{int64(2)}, op: "Insert"},
		{table: "B", row: relalg.Row{int64(2)}, op: "Insert"},
		{table: "B", row: relalg.Row{int64(3)}, op: "Insert"},
		{table: "A", row: relalg.Row{int64(1)}, op: "Delete"},
	}
	driveAndCompare(t, union, map[relalg.RelName]*relalg.RelationRef{"A": a, "B": b}, muts, nil)
}

func TestEvaluatorAgreesWithInterpreterDifference(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 1)
	b := rf.Ref("B", 1)
	diff := rf.Difference(a, b)

	muts := []mutation{
		{table: "A", row: relalg.Row{int64(1)}, op: "Insert"},
		{table: "A", row: relalg.Row{int64(2)}, op: "Insert"},
		{table: "A", row: relalg.Row{int64(3)}, op: "Insert"},
		{table: "B", row: relalg.Row{int64(2)}, op: "Insert"},
		{table: "A", row: relalg.Row{int64(2)}, op: "Delete"},
	}
	driveAndCompare(t, diff, map[relalg.RelName]*relalg.RelationRef{"A": a, "B": b}, muts, nil)
}

func TestEvaluatorAgreesWithInterpreterSelect(t *testing.T) {
	rf := relalg.NewRelationFactory()
	pf := relalg.NewPredicateFactory()
	edge := rf.Ref("Edge", 2)
	pred := pf.LessThan(0, 3)
	sel := rf.Select(edge, pred)

	muts := []mutation{
		{table: "Edge", row: relalg.Row{int64(1), int64(2)}, op: "Insert"},
		{table: "Edge", row: relalg.Row{int64(2), int64(3)}, op: "Insert"},
		{table: "Edge", row: relalg.Row{int64(3), int64(4)}, op: "Insert"},
		{table: "Edge", row: relalg.Row{int64(2), int64(3)}, op: "Delete"},
	}
	driveAndCompare(t, sel, map[relalg.RelName]*relalg.RelationRef{"Edge": edge}, muts, actionir.Predicates{"pred": pred.Eval})
}

func TestEvaluatorAgreesWithInterpreterView(t *testing.T) {
	rf := relalg.NewRelationFactory()
	edge := rf.Ref("Edge", 2)
	zero := relalg.Attr(0)
	view := rf.View(edge, relalg.AttrPartialPermutation{relalg.Hole(), &zero})

	muts := []mutation{
		{table: "Edge", row: relalg.Row{int64(1), int64(2)}, op: "Insert"},
		{table: "Edge", row: relalg.Row{int64(2), int64(3)}, op: "Insert"},
		{table: "Edge", row: relalg.Row{int64(3), int64(4)}, op: "Insert"},
		{table: "Edge", row: relalg.Row{int64(2), int64(3)}, op: "Delete"},
	}
	driveAndCompare(t, view, map[relalg.RelName]*relalg.RelationRef{"Edge": edge}, muts, nil)
}
