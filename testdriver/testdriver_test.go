package testdriver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relsynth/relsynth/interp"
	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/testdriver"
)

func edgeTable() *interp.Table {
	return &interp.Table{Rows: []relalg.Row{
		{int64(1), int64(2)},
		{int64(2), int64(3)},
		{int64(3), int64(4)},
	}}
}

func nodeTable() *interp.Table {
	return &interp.Table{Rows: []relalg.Row{
		{int64(2), "b"},
		{int64(3), "c"},
		{int64(9), "z"},
	}}
}

// scenarioJoin mirrors the original TestYannakakis() fixture: an edge
// relation joined to a node relation on the edge's second column.
func scenarioJoin(rf *relalg.RelationFactory) testdriver.Scenario {
	edge := rf.Ref("Edge", 2)
	node := rf.Ref("Node", 2)
	root := rf.Join(edge, node, relalg.JoinOn{{Left: 1, Right: 0}})
	return testdriver.Scenario{
		Name: "join_edge_node",
		Root: root,
		BaseTables: map[relalg.RelName]*interp.Table{
			"Edge": edgeTable(),
			"Node": nodeTable(),
		},
	}
}

func scenarioSemijoin(rf *relalg.RelationFactory) testdriver.Scenario {
	edge := rf.Ref("Edge", 2)
	node := rf.Ref("Node", 2)
	root := rf.Semijoin(edge, node, relalg.JoinOn{{Left: 1, Right: 0}})
	return testdriver.Scenario{
		Name: "semijoin_edge_node",
		Root: root,
		BaseTables: map[relalg.RelName]*interp.Table{
			"Edge": edgeTable(),
			"Node": nodeTable(),
		},
	}
}

func scenarioUnion(rf *relalg.RelationFactory) testdriver.Scenario {
	a := rf.Ref("A", 1)
	b := rf.Ref("B", 1)
	root := rf.Union(a, b)
	return testdriver.Scenario{
		Name: "union_a_b",
		Root: root,
		BaseTables: map[relalg.RelName]*interp.Table{
			"A": {Rows: []relalg.Row{{int64(1)}, {int64(2)}}},
			"B": {Rows: []relalg.Row{{int64(2)}, {int64(3)}}},
		},
	}
}

func scenarioDifference(rf *relalg.RelationFactory) testdriver.Scenario {
	a := rf.Ref("A", 1)
	b := rf.Ref("B", 1)
	root := rf.Difference(a, b)
	return testdriver.Scenario{
		Name: "difference_a_b",
		Root: root,
		BaseTables: map[relalg.RelName]*interp.Table{
			"A": {Rows: []relalg.Row{{int64(1)}, {int64(2)}, {int64(3)}}},
			"B": {Rows: []relalg.Row{{int64(2)}}},
		},
	}
}

func scenarioSelect(rf *relalg.RelationFactory, pf *relalg.PredicateFactory) testdriver.Scenario {
	edge := rf.Ref("Edge", 2)
	root := rf.Select(edge, pf.LessThan(0, 3))
	return testdriver.Scenario{
		Name: "select_edge_lt",
		Root: root,
		BaseTables: map[relalg.RelName]*interp.Table{
			"Edge": edgeTable(),
		},
	}
}

func scenarioView(rf *relalg.RelationFactory) testdriver.Scenario {
	edge := rf.Ref("Edge", 2)
	zero := relalg.Attr(0)
	// Source-indexed: drop column 0, keep column 1 as the sole output
	// column (destination 0).
	root := rf.View(edge, relalg.AttrPartialPermutation{relalg.Hole(), &zero})
	return testdriver.Scenario{
		Name: "view_edge_drop_first",
		Root: root,
		BaseTables: map[relalg.RelName]*interp.Table{
			"Edge": edgeTable(),
		},
	}
}

func allScenarios() []testdriver.Scenario {
	rf := relalg.NewRelationFactory()
	pf := relalg.NewPredicateFactory()
	return []testdriver.Scenario{
		scenarioJoin(rf),
		scenarioSemijoin(rf),
		scenarioUnion(rf),
		scenarioDifference(rf),
		scenarioSelect(rf, pf),
		scenarioView(rf),
	}
}

// TestInterpreterArityMatchesRelationArity is the Arity property from
// §8: every row the interpreter produces has exactly Root.Arity()
// columns.
func TestInterpreterArityMatchesRelationArity(t *testing.T) {
	for _, s := range allScenarios() {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			out, err := testdriver.RunInterpreter(s)
			require.NoError(t, err)
			for _, row := range out.Rows {
				assert.Len(t, row, s.Root.Arity())
			}
		})
	}
}

// TestSQLOracleAgreesWithInterpreter is the Equivalence-to-reference
// property from §8, checked against the independently implemented SQL
// oracle instead of a second instance of the same interpreter.
func TestSQLOracleAgreesWithInterpreter(t *testing.T) {
	for _, s := range allScenarios() {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			want, err := testdriver.RunInterpreter(s)
			require.NoError(t, err)

			ctx := context.Background()
			oracle, err := testdriver.OpenSQLOracle(ctx, s)
			require.NoError(t, err)

			got, err := oracle.Run(ctx, s.Root)
			require.NoError(t, err)

			assert.True(t, testdriver.RowsEqual(want, got), "interpreter and SQL oracle disagree for %s", s.Name)
		})
	}
}

// TestInterpreterIdempotentUnderMemoization is the Idempotence property
// from §8: re-interpreting the same Relation node returns an
// equivalent result both times (identity-keyed memoization must not
// corrupt state across repeated lookups).
func TestInterpreterIdempotentUnderMemoization(t *testing.T) {
	s := scenarioJoin(relalg.NewRelationFactory())
	in := interp.New(s.BaseTables)

	first, err := in.Interpret(s.Root)
	require.NoError(t, err)
	second, err := in.Interpret(s.Root)
	require.NoError(t, err)

	assert.True(t, testdriver.RowsEqual(first, second))
}

// TestFixtureRoundTrip is the Round-trip property from §8: encoding a
// scenario's base tables and decoding them again reproduces the same
// rows the interpreter would see directly.
func TestFixtureRoundTrip(t *testing.T) {
	s := scenarioSelect(relalg.NewRelationFactory(), relalg.NewPredicateFactory())

	data, err := testdriver.SaveFixture(s)
	require.NoError(t, err)

	name, tables, err := testdriver.LoadFixture(data)
	require.NoError(t, err)
	assert.Equal(t, s.Name, name)

	roundTripped := testdriver.Scenario{Name: s.Name, Root: s.Root, BaseTables: tables}
	want, err := testdriver.RunInterpreter(s)
	require.NoError(t, err)
	got, err := testdriver.RunInterpreter(roundTripped)
	require.NoError(t, err)
	assert.True(t, testdriver.RowsEqual(want, got))
}
