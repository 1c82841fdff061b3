package hypergraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relsynth/relsynth/hypergraph"
)

func TestAddEdgeAndIncidence(t *testing.T) {
	h := hypergraph.New[string]()
	e1 := h.AddEdge("a", "b", "c")
	e2 := h.AddEdge("b", "d")

	assert.ElementsMatch(t, []string{"a", "b", "c"}, h.EdgeVertices(e1))
	assert.ElementsMatch(t, []hypergraph.EdgeID{e1, e2}, h.IncidentEdges("b"))
	assert.Equal(t, 3, h.EdgeArity(e1))
}

func TestRemoveEdgeKeepsIDButEmptiesSet(t *testing.T) {
	h := hypergraph.New[string]()
	e1 := h.AddEdge("a", "b")
	h.RemoveEdge(e1)

	assert.Empty(t, h.EdgeVertices(e1))
	assert.Contains(t, h.Edges(), e1)
	assert.NotContains(t, h.IncidentEdges("a"), e1)
}

func TestHasVertex(t *testing.T) {
	h := hypergraph.New[int]()
	e := h.AddEdge(1, 2, 3)
	assert.True(t, h.HasVertex(e, 2))
	assert.False(t, h.HasVertex(e, 4))
}
