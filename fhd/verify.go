package fhd

import (
	"github.com/relsynth/relsynth/relerr"
	"github.com/relsynth/relsynth/unionfind"
)

// VerifyRunningIntersectionProperty checks that for every vertex v
// appearing in some bag of t, the set of bags containing v forms a
// connected subtree (equivalently: v does not "reappear" after
// disappearing along any root-to-leaf path). It is implemented with a
// union-find-with-values per vertex: bags containing v are unioned
// across tree edges, and the property holds iff they all end up in one
// set.
func VerifyRunningIntersectionProperty[V comparable](t *Tree[V]) error {
	if t.Root == nil {
		return nil
	}
	allVertices := map[V]struct{}{}
	t.Walk(func(n *TreeNode[V]) {
		for v := range n.Bag.Vertices {
			allVertices[v] = struct{}{}
		}
	})

	type edge struct{ parent, child *TreeNode[V] }
	var edges []edge
	t.Walk(func(n *TreeNode[V]) {
		for _, c := range n.Children {
			edges = append(edges, edge{parent: n, child: c})
		}
	})

	var allNodes []*TreeNode[V]
	t.Walk(func(n *TreeNode[V]) { allNodes = append(allNodes, n) })

	for v := range allVertices {
		uf := unionfind.New[*TreeNode[V], struct{}]()
		containing := 0
		for _, n := range allNodes {
			if _, ok := n.Bag.Vertices[v]; ok {
				uf.MakeSet(n, struct{}{})
				containing++
			}
		}
		if containing == 0 {
			continue
		}
		for _, e := range edges {
			_, pOK := e.parent.Bag.Vertices[v]
			_, cOK := e.child.Bag.Vertices[v]
			if pOK && cOK {
				if err := uf.Union(e.parent, e.child, func(a, b struct{}) struct{} { return a }); err != nil {
					return relerr.Wrap(relerr.KindInternal, "fhd", "running intersection union-find failed", err)
				}
			}
		}
		var rep *TreeNode[V]
		for _, n := range allNodes {
			if _, ok := n.Bag.Vertices[v]; !ok {
				continue
			}
			r, err := uf.Find(n)
			if err != nil {
				return relerr.Wrap(relerr.KindInternal, "fhd", "running intersection union-find failed", err)
			}
			if rep == nil {
				rep = r
			} else if r != rep {
				return relerr.Precondition("fhd", "running intersection property violated for vertex %v", v)
			}
		}
	}
	return nil
}

// VerifyEdgeCoverage checks that every hyperedge's vertex set is a
// subset of some bag's vertex set, the other half of the hypertree
// decomposition contract alongside the running intersection property.
func VerifyEdgeCoverage[V comparable](t *Tree[V], edgeVertexSets [][]V) error {
	var bags []*Bag[V]
	t.Walk(func(n *TreeNode[V]) { bags = append(bags, n.Bag) })

	for _, vs := range edgeVertexSets {
		covered := false
		for _, b := range bags {
			ok := true
			for _, v := range vs {
				if _, has := b.Vertices[v]; !has {
					ok = false
					break
				}
			}
			if ok {
				covered = true
				break
			}
		}
		if !covered {
			return relerr.Precondition("fhd", "hyperedge %v is not covered by any bag", vs)
		}
	}
	return nil
}
