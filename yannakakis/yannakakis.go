// Package yannakakis implements the Yannakakis algorithm: a
// three-pass evaluation strategy for acyclic joins that runs in time
// linear in the input plus output size, by semijoin-reducing every
// relation against its neighbors before ever computing the final join.
package yannakakis

import (
	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/relerr"
)

// JoinTreeNode is one node of an acyclic join tree: a Relation plus,
// for every node but the root, the JoinOn describing how its columns
// relate to its parent's (Left indexes this node's own columns, Right
// indexes the parent's).
type JoinTreeNode struct {
	Relation relalg.Relation
	OnParent relalg.JoinOn
	Children []*JoinTreeNode
}

// Transform runs the three Yannakakis passes over root and returns the
// single Relation equivalent to the full join, built through rf so the
// intermediate semijoin/join nodes are owned by the same arena as
// everything else in the compilation.
//
// Pass 1 (bottom-up semijoin reduce): visiting children before
// parents, each node is semijoin-reduced against every already-reduced
// child, removing any row that cannot possibly contribute to the final
// join.
//
// Pass 2 (top-down semijoin reduce): visiting parents before children,
// using the join condition flipped relative to pass 1, each child is
// semijoin-reduced against its (now fully bottom-up-reduced) parent,
// removing rows the bottom-up pass alone could not catch.
//
// Pass 3 (bottom-up join): visiting children before parents again, each
// node is joined with every child, producing the final relation at the
// root.
func Transform(rf *relalg.RelationFactory, root *JoinTreeNode) (relalg.Relation, error) {
	if root == nil {
		return nil, relerr.Precondition("yannakakis", "join tree has no root")
	}

	var bottomUpSemijoin func(n *JoinTreeNode) error
	bottomUpSemijoin = func(n *JoinTreeNode) error {
		for _, c := range n.Children {
			if err := bottomUpSemijoin(c); err != nil {
				return err
			}
		}
		for _, c := range n.Children {
			on := relalg.FlipJoinOn(c.OnParent)
			n.Relation = rf.Semijoin(n.Relation, c.Relation, on)
		}
		return nil
	}
	if err := bottomUpSemijoin(root); err != nil {
		return nil, err
	}

	var topDownSemijoin func(n *JoinTreeNode) error
	topDownSemijoin = func(n *JoinTreeNode) error {
		for _, c := range n.Children {
			c.Relation = rf.Semijoin(c.Relation, n.Relation, c.OnParent)
			if err := topDownSemijoin(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := topDownSemijoin(root); err != nil {
		return nil, err
	}

	var bottomUpJoin func(n *JoinTreeNode) error
	bottomUpJoin = func(n *JoinTreeNode) error {
		for _, c := range n.Children {
			if err := bottomUpJoin(c); err != nil {
				return err
			}
		}
		for _, c := range n.Children {
			on := relalg.FlipJoinOn(c.OnParent)
			n.Relation = rf.Join(n.Relation, c.Relation, on)
		}
		return nil
	}
	if err := bottomUpJoin(root); err != nil {
		return nil, err
	}

	return root.Relation, nil
}
