package interp

import (
	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/relerr"
)

// Interpreter evaluates Relations directly against a fixed set of base
// Tables, memoizing every sub-term by Relation identity so a DAG with
// shared sub-terms is only recomputed once per Interpret call tree.
type Interpreter struct {
	base *relalg.RelationFactory
	refs map[relalg.RelName]*Table
	memo map[relalg.Relation]*Table
}

// New returns an Interpreter whose base Refs are resolved from refs
// (keyed by RelName, matching the RelationRef.Name each Ref node was
// minted with).
func New(refs map[relalg.RelName]*Table) *Interpreter {
	return &Interpreter{refs: refs, memo: make(map[relalg.Relation]*Table)}
}

// Interpret evaluates r, returning the Table of rows it denotes.
// Map and Not, at any depth of r, are unsupported: Map because a general
// transformation callback may not be invertible for the interpreter's
// purely extensional/set model, and Not because "every row not in
// Input" is not enumerable without a finite universe to complement
// against — both return a relerr.KindNotImplemented error, matching the
// reference interpreter's documented scope (SPEC_FULL.md §4.9).
func (in *Interpreter) Interpret(r relalg.Relation) (*Table, error) {
	if t, ok := in.memo[r]; ok {
		return t, nil
	}
	t, err := in.interpretUncached(r)
	if err != nil {
		return nil, err
	}
	in.memo[r] = t
	return t, nil
}

func (in *Interpreter) interpretUncached(r relalg.Relation) (*Table, error) {
	switch n := r.(type) {
	case *relalg.RelationRef:
		t, ok := in.refs[n.Name]
		if !ok {
			return nil, relerr.Precondition("interp", "no base table supplied for Ref %q", n.Name)
		}
		return t, nil

	case *relalg.RelationNot:
		return nil, relerr.NotImplemented("interp", "top-level Not has no enumerable interpretation")

	case *relalg.RelationJoin:
		left, err := in.Interpret(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.Interpret(n.Right)
		if err != nil {
			return nil, err
		}
		out := NewTable()
		for _, l := range left.Rows {
			for _, rr := range right.Rows {
				if !matchesOn(l, rr, n.On) {
					continue
				}
				out.Insert(joinRow(l, rr, n.On))
			}
		}
		return out, nil

	case *relalg.RelationSemijoin:
		left, err := in.Interpret(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.Interpret(n.Right)
		if err != nil {
			return nil, err
		}
		out := NewTable()
		for _, l := range left.Rows {
			for _, rr := range right.Rows {
				if matchesOn(l, rr, n.On) {
					out.Insert(l)
					break
				}
			}
		}
		return out, nil

	case *relalg.RelationUnion:
		left, err := in.Interpret(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.Interpret(n.Right)
		if err != nil {
			return nil, err
		}
		out := NewTable()
		for _, r := range left.Rows {
			out.Insert(r)
		}
		for _, r := range right.Rows {
			out.Insert(r)
		}
		return out, nil

	case *relalg.RelationDifference:
		left, err := in.Interpret(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := in.Interpret(n.Right)
		if err != nil {
			return nil, err
		}
		out := NewTable()
		for _, r := range left.Rows {
			if !right.Contains(r) {
				out.Insert(r)
			}
		}
		return out, nil

	case *relalg.RelationSelect:
		input, err := in.Interpret(n.Input)
		if err != nil {
			return nil, err
		}
		out := NewTable()
		for _, r := range input.Rows {
			ok, err := n.Pred.Eval(r)
			if err != nil {
				return nil, err
			}
			if ok {
				out.Insert(r)
			}
		}
		return out, nil

	case *relalg.RelationMap:
		return nil, relerr.NotImplemented("interp", "Map has no reference-interpreter semantics")

	case *relalg.RelationView:
		input, err := in.Interpret(n.Input)
		if err != nil {
			return nil, err
		}
		out := NewTable()
		for _, r := range input.Rows {
			out.Insert(project(r, n.Perm))
		}
		return out, nil

	default:
		return nil, relerr.Internal("interp", "unknown relation variant %T", r)
	}
}

func matchesOn(l, r relalg.Row, on relalg.JoinOn) bool {
	for _, pair := range on {
		if l[pair.Left] != r[pair.Right] {
			return false
		}
	}
	return true
}

func joinRow(l, r relalg.Row, on relalg.JoinOn) relalg.Row {
	rightExcluded := make(map[relalg.Attr]bool, len(on))
	for _, pair := range on {
		rightExcluded[pair.Right] = true
	}
	out := make(relalg.Row, 0, len(l)+len(r)-len(on))
	out = append(out, l...)
	for i, v := range r {
		if !rightExcluded[relalg.Attr(i)] {
			out = append(out, v)
		}
	}
	return out
}

// project builds the output row from r, source-indexed: perm[j] (if
// non-nil) names the destination column that r[j] is written to —
// matching original_source's interpreter.hpp exactly.
func project(r relalg.Row, perm relalg.AttrPartialPermutation) relalg.Row {
	out := make(relalg.Row, perm.Arity())
	for j, dest := range perm {
		if dest != nil {
			out[*dest] = r[j]
		}
	}
	return out
}
