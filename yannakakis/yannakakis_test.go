package yannakakis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/yannakakis"
)

// TestTransformStarJoin mirrors the classic A-B-C star scenario: B and
// C are each joined to A on a shared column, with A as the root.
func TestTransformStarJoin(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 2)
	b := rf.Ref("B", 2)
	c := rf.Ref("C", 2)

	root := &yannakakis.JoinTreeNode{
		Relation: a,
		Children: []*yannakakis.JoinTreeNode{
			{Relation: b, OnParent: relalg.JoinOn{{Left: 0, Right: 0}}},
			{Relation: c, OnParent: relalg.JoinOn{{Left: 0, Right: 1}}},
		},
	}

	result, err := yannakakis.Transform(rf, root)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, relalg.RelationKindJoin, result.Kind())
}

func TestTransformNilRootErrors(t *testing.T) {
	rf := relalg.NewRelationFactory()
	_, err := yannakakis.Transform(rf, nil)
	require.Error(t, err)
}

func TestTransformSingleNodeReturnsItself(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 3)
	root := &yannakakis.JoinTreeNode{Relation: a}
	result, err := yannakakis.Transform(rf, root)
	require.NoError(t, err)
	assert.Equal(t, a, result)
}
