package fhd_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relsynth/relsynth/fhd"
	"github.com/relsynth/relsynth/hypergraph"
)

func lessInt(a, b int) bool { return a < b }

func TestComputeFHDStarJoinHasWidthOne(t *testing.T) {
	// A star join: edges {A,B}, {A,C}, {A,D} share vertex A — acyclic,
	// so a single edge should always be able to cover any bag, giving
	// width 1 throughout.
	h := hypergraph.New[int]()
	h.AddEdge(0, 1)
	h.AddEdge(0, 2)
	h.AddEdge(0, 3)

	tree, width, err := fhd.ComputeFHD(context.Background(), fhd.Request[int]{
		Hypergraph:    h,
		Less:          lessInt,
		SolverFactory: fhd.NewSolver,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, width, 1e-6)
	require.NotNil(t, tree.Root)
}

func TestComputeFHDEmptyHypergraphIsUnsatisfiable(t *testing.T) {
	h := hypergraph.New[int]()
	_, _, err := fhd.ComputeFHD(context.Background(), fhd.Request[int]{
		Hypergraph:    h,
		Less:          lessInt,
		SolverFactory: fhd.NewSolver,
	})
	require.Error(t, err)
}

func TestVerifyRunningIntersectionPropertyOnComputedTree(t *testing.T) {
	h := hypergraph.New[int]()
	h.AddEdge(0, 1, 2)
	h.AddEdge(2, 3)
	h.AddEdge(3, 4)

	tree, _, err := fhd.ComputeFHD(context.Background(), fhd.Request[int]{
		Hypergraph:    h,
		Less:          lessInt,
		SolverFactory: fhd.NewSolver,
	})
	require.NoError(t, err)
	assert.NoError(t, fhd.VerifyRunningIntersectionProperty(tree))
}
