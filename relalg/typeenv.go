package relalg

import (
	"github.com/relsynth/relsynth/relerr"
)

// TypeEnv maps every Relation reachable from a term to its Type, keyed
// by node identity (map key is the Relation interface value itself,
// whose dynamic value is always a pointer minted by a RelationFactory).
// A TypeEnv is total over every sub-term a consumer receives: a missing
// entry is a relerr.KindInternal bug, never a legitimate "unknown"
// state.
type TypeEnv struct {
	types map[Relation]Type
}

// NewTypeEnv returns an empty environment.
func NewTypeEnv() *TypeEnv {
	return &TypeEnv{types: make(map[Relation]Type)}
}

// Lookup returns the Type recorded for r, or a KindInternal error if r
// was never typed.
func (e *TypeEnv) Lookup(r Relation) (Type, error) {
	t, ok := e.types[r]
	if !ok {
		return nil, relerr.Internal("relalg", "no type recorded for relation %s", r)
	}
	return t, nil
}

// Set records t as the Type of r.
func (e *TypeEnv) Set(r Relation, t Type) {
	e.types[r] = t
}

// Infer walks r bottom-up, typing every sub-term with Elem as the
// scalar column type, and records the results (and those of every
// sub-term) into the TypeEnv. It re-validates the structural
// constraints each combinator requires (matching arity for
// Union/Difference, valid column references in JoinOn) and returns a
// relerr.KindPrecondition error the first time one is violated.
func (e *TypeEnv) Infer(r Relation, elem Type) (Type, error) {
	if t, ok := e.types[r]; ok {
		return t, nil
	}
	var t Type
	switch n := r.(type) {
	case *RelationRef:
		t = RowTypeOf(n.arity, elem)
	case *RelationNot:
		if _, err := e.Infer(n.Input, elem); err != nil {
			return nil, err
		}
		t = RowTypeOf(n.Input.Arity(), elem)
	case *RelationJoin:
		if err := e.inferBinary(n.Left, n.Right, elem); err != nil {
			return nil, err
		}
		if err := validateJoinOn(n.On, n.Left.Arity(), n.Right.Arity()); err != nil {
			return nil, err
		}
		t = RowTypeOf(n.Arity(), elem)
	case *RelationSemijoin:
		if err := e.inferBinary(n.Left, n.Right, elem); err != nil {
			return nil, err
		}
		if err := validateJoinOn(n.On, n.Left.Arity(), n.Right.Arity()); err != nil {
			return nil, err
		}
		t = RowTypeOf(n.Arity(), elem)
	case *RelationUnion:
		if err := e.inferBinary(n.Left, n.Right, elem); err != nil {
			return nil, err
		}
		if n.Left.Arity() != n.Right.Arity() {
			return nil, relerr.Precondition("relalg", "Union operands have mismatched arity: %d vs %d", n.Left.Arity(), n.Right.Arity())
		}
		t = RowTypeOf(n.Arity(), elem)
	case *RelationDifference:
		if err := e.inferBinary(n.Left, n.Right, elem); err != nil {
			return nil, err
		}
		if n.Left.Arity() != n.Right.Arity() {
			return nil, relerr.Precondition("relalg", "Difference operands have mismatched arity: %d vs %d", n.Left.Arity(), n.Right.Arity())
		}
		t = RowTypeOf(n.Arity(), elem)
	case *RelationSelect:
		if _, err := e.Infer(n.Input, elem); err != nil {
			return nil, err
		}
		t = RowTypeOf(n.Arity(), elem)
	case *RelationMap:
		if _, err := e.Infer(n.Input, elem); err != nil {
			return nil, err
		}
		t = RowTypeOf(n.arity, elem)
	case *RelationView:
		if _, err := e.Infer(n.Input, elem); err != nil {
			return nil, err
		}
		if len(n.Perm) != n.Input.Arity() {
			return nil, relerr.Precondition("relalg", "View permutation has %d entries for input arity %d", len(n.Perm), n.Input.Arity())
		}
		for _, dest := range n.Perm {
			if dest != nil && (int(*dest) < 0 || int(*dest) >= n.Arity()) {
				return nil, relerr.Precondition("relalg", "View permutation writes to column %d out of range for output arity %d", *dest, n.Arity())
			}
		}
		t = RowTypeOf(n.Arity(), elem)
	default:
		return nil, relerr.Internal("relalg", "unknown relation variant %T", r)
	}
	e.types[r] = t
	return t, nil
}

func (e *TypeEnv) inferBinary(l, r Relation, elem Type) error {
	if _, err := e.Infer(l, elem); err != nil {
		return err
	}
	if _, err := e.Infer(r, elem); err != nil {
		return err
	}
	return nil
}

func validateJoinOn(on JoinOn, leftArity, rightArity int) error {
	for _, p := range on {
		if int(p.Left) < 0 || int(p.Left) >= leftArity {
			return relerr.Precondition("relalg", "JoinOn left column %d out of range for arity %d", p.Left, leftArity)
		}
		if int(p.Right) < 0 || int(p.Right) >= rightArity {
			return relerr.Precondition("relalg", "JoinOn right column %d out of range for arity %d", p.Right, rightArity)
		}
	}
	return nil
}
