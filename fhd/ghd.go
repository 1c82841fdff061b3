package fhd

import (
	"context"
	"fmt"
	"sort"

	"github.com/relsynth/relsynth/hypergraph"
	"github.com/relsynth/relsynth/relerr"
)

// maxExhaustiveVertices bounds how many vertices ComputeFHD will try
// every elimination ordering for. Beyond that it tries only one
// ordering, the vertices sorted by Request.Less, rather than exploring
// the factorial search space; no degree-based heuristic is applied.
const maxExhaustiveVertices = 8

// Request bundles ComputeFHD's inputs: the join hypergraph to
// decompose, a deterministic total order over its vertex type (needed
// for tie-breaking and for hashing-free output), and a factory that
// produces a fresh Solver for each candidate bag's fractional cover LP.
type Request[V comparable] struct {
	Hypergraph    *hypergraph.Hypergraph[V]
	Less          func(a, b V) bool
	SolverFactory func() Solver
}

// ComputeFHD finds a fractional hypertree decomposition of req's
// hypergraph by searching elimination orderings of its primal graph
// (the graph connecting any two vertices that co-occur in some
// hyperedge): each ordering yields a candidate tree of bags via the
// standard elimination-tree construction, each bag's width is the
// optimum of a fractional-edge-cover LP solved through req's Solver,
// and ComputeFHD returns the minimum-width candidate found (ties broken
// by ascending lexicographic order of the elimination sequence). It
// returns a relerr.KindDeadlineExceeded error if ctx is done before a
// decomposition is found, and relerr.KindUnsatisfiable if the
// hypergraph has no vertices.
func ComputeFHD[V comparable](ctx context.Context, req Request[V]) (*Tree[V], float64, error) {
	vertices := req.Hypergraph.Vertices()
	if len(vertices) == 0 {
		return nil, 0, relerr.Unsatisfiable("fhd", "hypergraph has no vertices")
	}
	sort.Slice(vertices, func(i, j int) bool { return req.Less(vertices[i], vertices[j]) })

	orderings := candidateOrderings(vertices)

	var best *Tree[V]
	bestWidth := -1.0
	for _, order := range orderings {
		select {
		case <-ctx.Done():
			return nil, 0, relerr.DeadlineExceeded("fhd", "ComputeFHD exceeded its deadline")
		default:
		}
		tree, width, err := buildCandidate(req, order)
		if err != nil {
			return nil, 0, err
		}
		if bestWidth < 0 || width < bestWidth {
			bestWidth = width
			best = tree
		}
	}
	if best == nil {
		return nil, 0, relerr.Internal("fhd", "no candidate decomposition was produced")
	}
	if err := VerifyRunningIntersectionProperty(best); err != nil {
		return nil, 0, err
	}
	var edgeSets [][]V
	for _, e := range req.Hypergraph.Edges() {
		if vs := req.Hypergraph.EdgeVertices(e); len(vs) > 0 {
			edgeSets = append(edgeSets, vs)
		}
	}
	if err := VerifyEdgeCoverage(best, edgeSets); err != nil {
		return nil, 0, err
	}
	return best, bestWidth, nil
}

// candidateOrderings returns every permutation of vertices, in
// lexicographic order of their positions in vertices, when small enough
// to search exhaustively, or otherwise the single ordering vertices
// itself (ComputeFHD passes it already sorted by Request.Less).
func candidateOrderings[V comparable](vertices []V) [][]V {
	if len(vertices) > maxExhaustiveVertices {
		return [][]V{append([]V(nil), vertices...)}
	}
	var out [][]V
	perm := append([]V(nil), vertices...)
	var permute func(k int)
	permute = func(k int) {
		if k == len(perm) {
			out = append(out, append([]V(nil), perm...))
			return
		}
		for i := k; i < len(perm); i++ {
			v := perm[i]
			copy(perm[k+1:i+1], perm[k:i])
			perm[k] = v
			permute(k + 1)
			copy(perm[k:i], perm[k+1:i+1])
			perm[i] = v
		}
	}
	permute(0)
	return out
}

// buildCandidate runs the elimination-tree construction for one vertex
// order and scores each resulting bag's width via req.SolverFactory.
func buildCandidate[V comparable](req Request[V], order []V) (*Tree[V], float64, error) {
	h := req.Hypergraph
	adjacency := make(map[V]map[V]struct{})
	for _, v := range h.Vertices() {
		adjacency[v] = make(map[V]struct{})
	}
	for _, e := range h.Edges() {
		vs := h.EdgeVertices(e)
		for i := range vs {
			for j := range vs {
				if i != j {
					adjacency[vs[i]][vs[j]] = struct{}{}
				}
			}
		}
	}

	remaining := make(map[V]struct{}, len(order))
	for _, v := range order {
		remaining[v] = struct{}{}
	}

	type bagRec struct {
		id       int
		bag      *Bag[V]
		eliminee V
	}
	var bags []bagRec
	posInOrder := make(map[V]int, len(order))
	for i, v := range order {
		posInOrder[v] = i
	}

	for idx, v := range order {
		var neighbors []V
		for n := range adjacency[v] {
			if _, ok := remaining[n]; ok {
				neighbors = append(neighbors, n)
			}
		}
		bagVerts := map[V]struct{}{v: {}}
		for _, n := range neighbors {
			bagVerts[n] = struct{}{}
		}
		for i := range neighbors {
			for j := range neighbors {
				if i != j {
					adjacency[neighbors[i]][neighbors[j]] = struct{}{}
				}
			}
		}
		bag := NewBag[V](idx)
		bag.Vertices = bagVerts
		_, weights, err := fractionalCoverWidth(req, h, bagVerts)
		if err != nil {
			return nil, 0, err
		}
		bag.Weights = weights
		bags = append(bags, bagRec{id: idx, bag: bag, eliminee: v})
		delete(remaining, v)
	}

	dg := NewDigraph[int]()
	for _, br := range bags {
		dg.AddNode(br.id)
	}
	for _, br := range bags {
		var parent *int
		bestPos := len(order) + 1
		for n := range adjacency[br.eliminee] {
			if p, ok := posInOrder[n]; ok && p > posInOrder[br.eliminee] && p < bestPos {
				pp := p
				parent = &pp
				bestPos = p
			}
		}
		if parent != nil {
			dg.AddEdge(*parent, br.id)
		}
	}

	byID := make(map[int]*Bag[V], len(bags))
	for _, br := range bags {
		byID[br.id] = br.bag
	}
	tree, err := DigraphToTree[int, V](dg, func(id int) *Bag[V] { return byID[id] })
	if err != nil {
		return nil, 0, err
	}

	maxWidth := 0.0
	tree.Walk(func(n *TreeNode[V]) {
		if w := n.Bag.Width(); w > maxWidth {
			maxWidth = w
		}
	})
	return tree, maxWidth, nil
}

// fractionalCoverWidth solves the LP: minimize sum_e w_e subject to,
// for every vertex v in bagVerts, sum_{e covering v} w_e >= 1 and
// 0 <= w_e <= 1, over the hyperedges that intersect bagVerts.
func fractionalCoverWidth[V comparable](req Request[V], h *hypergraph.Hypergraph[V], bagVerts map[V]struct{}) (float64, map[hypergraph.EdgeID]float64, error) {
	var relevant []hypergraph.EdgeID
	for _, e := range h.Edges() {
		vs := h.EdgeVertices(e)
		if len(vs) == 0 {
			continue
		}
		for _, v := range vs {
			if _, ok := bagVerts[v]; ok {
				relevant = append(relevant, e)
				break
			}
		}
	}
	if len(relevant) == 0 {
		return 0, map[hypergraph.EdgeID]float64{}, nil
	}

	solver := req.SolverFactory()
	varName := func(e hypergraph.EdgeID) string { return fmt.Sprintf("w_%d", e) }
	for _, e := range relevant {
		solver.Declare(varName(e))
	}
	for v := range bagVerts {
		expr := LinearExpr{Coeffs: map[string]float64{}}
		covered := false
		for _, e := range relevant {
			if h.HasVertex(e, v) {
				expr.Coeffs[varName(e)] = 1
				covered = true
			}
		}
		if !covered {
			continue
		}
		expr.Const = -1
		solver.Assert(Constraint{Expr: expr, Op: OpGE})
	}
	for _, e := range relevant {
		solver.Assert(Constraint{Expr: LinearExpr{Coeffs: map[string]float64{varName(e): 1}, Const: -1}, Op: OpLE})
	}
	obj := LinearExpr{Coeffs: map[string]float64{}}
	for _, e := range relevant {
		obj.Coeffs[varName(e)] = 1
	}
	solver.Minimize(obj)

	ok, err := solver.Check()
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		return 0, nil, relerr.Unsatisfiable("fhd", "no fractional edge cover exists for bag")
	}
	model := solver.Model()
	weights := make(map[hypergraph.EdgeID]float64, len(relevant))
	total := 0.0
	for _, e := range relevant {
		w := model[varName(e)]
		weights[e] = w
		total += w
	}
	return total, weights, nil
}
