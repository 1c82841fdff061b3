// Package fhd computes fractional hypertree decompositions of a join
// hypergraph: a tree of bags, each covering a subset of attributes with
// a fractional edge cover, such that every hyperedge's vertex set is
// covered by some bag and every attribute's set of covering bags forms
// a connected subtree (the running intersection property).
package fhd

import (
	"sort"

	"github.com/relsynth/relsynth/hypergraph"
)

// Bag is one node of a hypertree decomposition: a set of vertices plus
// the fractional edge-cover weights that justify its width.
type Bag[V comparable] struct {
	ID      int
	Vertices map[V]struct{}
	// Weights maps an edge covering this bag to its fractional weight
	// in [0, 1]; sum of Weights is the bag's width.
	Weights map[hypergraph.EdgeID]float64
}

// NewBag returns an empty bag with the given ID.
func NewBag[V comparable](id int) *Bag[V] {
	return &Bag[V]{ID: id, Vertices: make(map[V]struct{}), Weights: make(map[hypergraph.EdgeID]float64)}
}

// Width is the sum of the bag's fractional edge-cover weights.
func (b *Bag[V]) Width() float64 {
	w := 0.0
	for _, x := range b.Weights {
		w += x
	}
	return w
}

// SortedVertices returns the bag's vertices in a deterministic order,
// for stable output and testing. V must additionally satisfy a total
// order via the supplied less function.
func SortedVertices[V comparable](b *Bag[V], less func(a, c V) bool) []V {
	out := make([]V, 0, len(b.Vertices))
	for v := range b.Vertices {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Tree is a rooted tree of bags, the output shape of ComputeFHD.
type Tree[V comparable] struct {
	Root *TreeNode[V]
}

// TreeNode is one node of a Tree.
type TreeNode[V comparable] struct {
	Bag      *Bag[V]
	Children []*TreeNode[V]
}

// Walk visits every node of the tree in pre-order (parent before
// children), the order the Yannakakis transform's top-down pass relies
// on.
func (t *Tree[V]) Walk(visit func(*TreeNode[V])) {
	if t.Root == nil {
		return
	}
	var rec func(*TreeNode[V])
	rec = func(n *TreeNode[V]) {
		visit(n)
		for _, c := range n.Children {
			rec(c)
		}
	}
	rec(t.Root)
}

// WalkPostOrder visits every node in post-order (children before
// parent), the order the Yannakakis transform's bottom-up passes rely
// on.
func (t *Tree[V]) WalkPostOrder(visit func(*TreeNode[V])) {
	if t.Root == nil {
		return
	}
	var rec func(*TreeNode[V])
	rec = func(n *TreeNode[V]) {
		for _, c := range n.Children {
			rec(c)
		}
		visit(n)
	}
	rec(t.Root)
}
