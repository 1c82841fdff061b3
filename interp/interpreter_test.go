package interp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relsynth/relsynth/interp"
	"github.com/relsynth/relsynth/relalg"
)

func TestInterpretJoinAndSemijoin(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 2)
	b := rf.Ref("B", 1)

	aTable := interp.NewTable()
	aTable.Insert(relalg.Row{int64(1), "x"})
	aTable.Insert(relalg.Row{int64(2), "y"})
	bTable := interp.NewTable()
	bTable.Insert(relalg.Row{int64(1)})

	in := interp.New(map[relalg.RelName]*interp.Table{"A": aTable, "B": bTable})

	join := rf.Join(a, b, relalg.JoinOn{{Left: 0, Right: 0}})
	joined, err := in.Interpret(join)
	require.NoError(t, err)
	assert.Len(t, joined.Rows, 1)
	assert.Equal(t, relalg.Row{int64(1), "x"}, joined.Rows[0])

	semi := rf.Semijoin(a, b, relalg.JoinOn{{Left: 0, Right: 0}})
	semiResult, err := in.Interpret(semi)
	require.NoError(t, err)
	assert.Len(t, semiResult.Rows, 1)
	assert.Equal(t, relalg.Row{int64(1), "x"}, semiResult.Rows[0])
}

func TestInterpretDifferenceAndUnion(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 1)
	b := rf.Ref("B", 1)

	aTable := interp.NewTable()
	aTable.Insert(relalg.Row{int64(1)})
	aTable.Insert(relalg.Row{int64(2)})
	bTable := interp.NewTable()
	bTable.Insert(relalg.Row{int64(2)})

	in := interp.New(map[relalg.RelName]*interp.Table{"A": aTable, "B": bTable})

	diff := rf.Difference(a, b)
	diffResult, err := in.Interpret(diff)
	require.NoError(t, err)
	assert.Len(t, diffResult.Rows, 1)
	assert.Equal(t, relalg.Row{int64(1)}, diffResult.Rows[0])

	union := rf.Union(a, b)
	unionResult, err := in.Interpret(union)
	require.NoError(t, err)
	assert.Len(t, unionResult.Rows, 2)
}

func TestInterpretMapIsNotImplemented(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 1)
	fn := relalg.Function{Name: "double", Call: func(r relalg.Row) (relalg.Row, error) { return r, nil }}
	m := rf.Map(a, fn, 1)

	in := interp.New(map[relalg.RelName]*interp.Table{"A": interp.NewTable()})
	_, err := in.Interpret(m)
	require.Error(t, err)
}

func TestInterpretTopLevelNotIsNotImplemented(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 1)
	not := rf.Not(a)

	in := interp.New(map[relalg.RelName]*interp.Table{"A": interp.NewTable()})
	_, err := in.Interpret(not)
	require.Error(t, err)
}

func TestInterpretMemoizesByIdentity(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 1)
	sel := rf.Select(a, relalg.NewPredicateFactory().Equals(0, 1))

	aTable := interp.NewTable()
	aTable.Insert(relalg.Row{int64(1)})
	in := interp.New(map[relalg.RelName]*interp.Table{"A": aTable})

	t1, err := in.Interpret(sel)
	require.NoError(t, err)
	t2, err := in.Interpret(sel)
	require.NoError(t, err)
	assert.Same(t, t1, t2)
}
