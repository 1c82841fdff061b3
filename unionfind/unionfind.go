// Package unionfind implements a union-find (disjoint-set) structure
// that additionally carries a value per element, used by the FHD
// planner's running-intersection-property check to verify that every
// attribute's set of bags forms a connected subtree (§4.10).
package unionfind

import "github.com/relsynth/relsynth/relerr"

// UnionFind is a disjoint-set-with-values structure over comparable
// keys K, each associated with a value of type Val. Union merges two
// sets' values with a caller-supplied combine function so the merged
// representative's value is deterministic regardless of union order.
type UnionFind[K comparable, Val any] struct {
	parent map[K]K
	rank   map[K]int
	value  map[K]Val
}

// New returns an empty UnionFind.
func New[K comparable, Val any]() *UnionFind[K, Val] {
	return &UnionFind[K, Val]{
		parent: make(map[K]K),
		rank:   make(map[K]int),
		value:  make(map[K]Val),
	}
}

// MakeSet inserts k as a new singleton set with value v, if not already
// present.
func (u *UnionFind[K, Val]) MakeSet(k K, v Val) {
	if _, ok := u.parent[k]; ok {
		return
	}
	u.parent[k] = k
	u.rank[k] = 0
	u.value[k] = v
}

// Find returns the representative of k's set, path-compressing along
// the way. It returns a relerr.KindPrecondition error if k was never
// inserted via MakeSet.
func (u *UnionFind[K, Val]) Find(k K) (K, error) {
	p, ok := u.parent[k]
	if !ok {
		var zero K
		return zero, relerr.Precondition("unionfind", "key %v was never inserted", k)
	}
	if p == k {
		return k, nil
	}
	root, err := u.Find(p)
	if err != nil {
		return root, err
	}
	u.parent[k] = root
	return root, nil
}

// Value returns the value currently associated with k's set.
func (u *UnionFind[K, Val]) Value(k K) (Val, error) {
	root, err := u.Find(k)
	if err != nil {
		var zero Val
		return zero, err
	}
	return u.value[root], nil
}

// Union merges the sets containing a and b. The merged set's value is
// combine(valueOfA, valueOfB); combine is only invoked when a and b
// were in different sets (union is a no-op, value unchanged, if they
// already share a representative). Union-by-rank decides which root
// survives; combine must not assume which argument came from the
// surviving side.
func (u *UnionFind[K, Val]) Union(a, b K, combine func(Val, Val) Val) error {
	ra, err := u.Find(a)
	if err != nil {
		return err
	}
	rb, err := u.Find(b)
	if err != nil {
		return err
	}
	if ra == rb {
		return nil
	}
	merged := combine(u.value[ra], u.value[rb])
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
	u.value[ra] = merged
	delete(u.value, rb)
	return nil
}

// Connected reports whether a and b are currently in the same set.
func (u *UnionFind[K, Val]) Connected(a, b K) (bool, error) {
	ra, err := u.Find(a)
	if err != nil {
		return false, err
	}
	rb, err := u.Find(b)
	if err != nil {
		return false, err
	}
	return ra == rb, nil
}
