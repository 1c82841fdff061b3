package fhd

import "github.com/relsynth/relsynth/relerr"

// Digraph is a directed graph of values of type Value, used as the
// intermediate shape for the elimination ordering ComputeFHD derives
// before it is folded into a rooted Tree via DigraphToTree.
type Digraph[Value comparable] struct {
	nodes map[Value]struct{}
	out   map[Value]map[Value]struct{}
	in    map[Value]map[Value]struct{}
}

// NewDigraph returns an empty digraph.
func NewDigraph[Value comparable]() *Digraph[Value] {
	return &Digraph[Value]{
		nodes: make(map[Value]struct{}),
		out:   make(map[Value]map[Value]struct{}),
		in:    make(map[Value]map[Value]struct{}),
	}
}

// AddNode inserts v if not already present.
func (d *Digraph[Value]) AddNode(v Value) {
	if _, ok := d.nodes[v]; ok {
		return
	}
	d.nodes[v] = struct{}{}
	d.out[v] = make(map[Value]struct{})
	d.in[v] = make(map[Value]struct{})
}

// AddEdge adds a directed edge from -> to, inserting either endpoint if
// needed.
func (d *Digraph[Value]) AddEdge(from, to Value) {
	d.AddNode(from)
	d.AddNode(to)
	d.out[from][to] = struct{}{}
	d.in[to][from] = struct{}{}
}

// Roots returns every node with no incoming edges.
func (d *Digraph[Value]) Roots() []Value {
	var out []Value
	for v := range d.nodes {
		if len(d.in[v]) == 0 {
			out = append(out, v)
		}
	}
	return out
}

// Children returns every node v has an outgoing edge to.
func (d *Digraph[Value]) Children(v Value) []Value {
	out := make([]Value, 0, len(d.out[v]))
	for c := range d.out[v] {
		out = append(out, c)
	}
	return out
}

// DigraphToTree folds a digraph with exactly one root and no cycles
// into a rooted Tree[Bag[V]], using toBag to materialize each node's
// Value into the bag payload. It returns a relerr.KindPrecondition
// error if the digraph has zero or more than one root (a hypertree
// decomposition's elimination digraph must fold into a single rooted
// tree).
func DigraphToTree[Value comparable, V comparable](d *Digraph[Value], toBag func(Value) *Bag[V]) (*Tree[V], error) {
	roots := d.Roots()
	if len(roots) != 1 {
		return nil, relerr.Precondition("fhd", "digraph has %d roots, want exactly 1", len(roots))
	}
	visited := make(map[Value]*TreeNode[V])
	var build func(v Value) *TreeNode[V]
	build = func(v Value) *TreeNode[V] {
		if n, ok := visited[v]; ok {
			return n
		}
		n := &TreeNode[V]{Bag: toBag(v)}
		visited[v] = n
		for _, c := range d.Children(v) {
			n.Children = append(n.Children, build(c))
		}
		return n
	}
	return &Tree[V]{Root: build(roots[0])}, nil
}
