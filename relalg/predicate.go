package relalg

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/relsynth/relsynth/relerr"
)

// PredicateKind discriminates the concrete Predicate variants, used by
// consumers that need to switch without type assertions (the "tagged
// variant" shape the Design Notes call for).
type PredicateKind int

const (
	PredicateKindAnd PredicateKind = iota
	PredicateKindOr
	PredicateKindNot
	PredicateKindLike
	PredicateKindLessThan
	PredicateKindEquals
)

// Row is a single tuple of attribute values, indexed by Attr position.
type Row []any

// Predicate is a boolean-valued expression over a Row. Every concrete
// variant is only ever constructed through a PredicateFactory, so a
// *Predicate node's pointer identity is its identity for memoization
// purposes.
type Predicate interface {
	Kind() PredicateKind
	// Eval reports whether the predicate holds for row. Totality is a
	// caller contract: a well-typed predicate over a row of matching
	// arity must always return a definite answer or a relerr error, and
	// never panic.
	Eval(row Row) (bool, error)
	String() string
}

type predicateBase struct {
	id uuid.UUID
}

func (b predicateBase) debugID() string { return b.id.String()[:8] }

// PredicateAnd is the conjunction of its Operands.
type PredicateAnd struct {
	predicateBase
	Operands []Predicate
}

func (p *PredicateAnd) Kind() PredicateKind { return PredicateKindAnd }

func (p *PredicateAnd) Eval(row Row) (bool, error) {
	for _, op := range p.Operands {
		ok, err := op.Eval(row)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (p *PredicateAnd) String() string {
	return fmt.Sprintf("And(%s)#%s", joinStrings(p.Operands), p.debugID())
}

// PredicateOr is the disjunction of its Operands.
type PredicateOr struct {
	predicateBase
	Operands []Predicate
}

func (p *PredicateOr) Kind() PredicateKind { return PredicateKindOr }

func (p *PredicateOr) Eval(row Row) (bool, error) {
	for _, op := range p.Operands {
		ok, err := op.Eval(row)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (p *PredicateOr) String() string {
	return fmt.Sprintf("Or(%s)#%s", joinStrings(p.Operands), p.debugID())
}

// PredicateNot is the negation of Operand.
type PredicateNot struct {
	predicateBase
	Operand Predicate
}

func (p *PredicateNot) Kind() PredicateKind { return PredicateKindNot }

func (p *PredicateNot) Eval(row Row) (bool, error) {
	ok, err := p.Operand.Eval(row)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (p *PredicateNot) String() string {
	return fmt.Sprintf("Not(%s)#%s", p.Operand, p.debugID())
}

// PredicateLike tests a string column against a pattern. Its concrete
// matching dialect is intentionally unspecified (no corpus or
// original_source file defines one) — evaluating it always fails with
// relerr.KindNotImplemented, which is the documented Open Question
// resolution; callers needing real pattern matching must install their
// own Predicate implementation rather than using PredicateLike.
type PredicateLike struct {
	predicateBase
	Column  Attr
	Pattern string
}

func (p *PredicateLike) Kind() PredicateKind { return PredicateKindLike }

func (p *PredicateLike) Eval(Row) (bool, error) {
	return false, relerr.NotImplemented("relalg", "Like predicate has no built-in matching dialect")
}

func (p *PredicateLike) String() string {
	return fmt.Sprintf("Like(%d, %q)#%s", p.Column, p.Pattern, p.debugID())
}

// PredicateLessThan tests row[Attr] < Int, a column against a literal
// integer (not another column — see original_source/src/predicate.hpp's
// PredicateLessThan, which carries one Attr and one int32_t).
type PredicateLessThan struct {
	predicateBase
	Attr Attr
	Int  int32
}

func (p *PredicateLessThan) Kind() PredicateKind { return PredicateKindLessThan }

func (p *PredicateLessThan) Eval(row Row) (bool, error) {
	v, err := column(row, p.Attr)
	if err != nil {
		return false, err
	}
	return compare(v, int64(p.Int)) < 0, nil
}

func (p *PredicateLessThan) String() string {
	return fmt.Sprintf("LessThan(%d, %d)#%s", p.Attr, p.Int, p.debugID())
}

// PredicateEquals tests row[Attr] == Int, a column against a literal
// integer (see original_source/src/predicate.hpp's PredicateEquals).
type PredicateEquals struct {
	predicateBase
	Attr Attr
	Int  int32
}

func (p *PredicateEquals) Kind() PredicateKind { return PredicateKindEquals }

func (p *PredicateEquals) Eval(row Row) (bool, error) {
	v, err := column(row, p.Attr)
	if err != nil {
		return false, err
	}
	return compare(v, int64(p.Int)) == 0, nil
}

func (p *PredicateEquals) String() string {
	return fmt.Sprintf("Equals(%d, %d)#%s", p.Attr, p.Int, p.debugID())
}

func column(row Row, a Attr) (any, error) {
	if int(a) < 0 || int(a) >= len(row) {
		return nil, relerr.Precondition("relalg", "column reference out of range for row of arity %d", len(row))
	}
	return row[a], nil
}

// compare provides a total order over the dynamic Value types relsynth
// supports (int64, float64, string, bool); equal/incomparable dynamic
// types fall back to formatted-string comparison so Eval never panics.
func compare(a, b any) int {
	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			default:
				return 0
			}
		}
	}
	as, bs := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func joinStrings(ps []Predicate) string {
	s := ""
	for i, p := range ps {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s
}

// PredicateFactory is the arena that owns every Predicate node minted
// during one compilation. Nodes are identified by pointer, never by
// structural hash, so two syntactically identical predicates built
// through two separate calls are distinct nodes.
type PredicateFactory struct {
	all []Predicate
}

// NewPredicateFactory returns an empty arena.
func NewPredicateFactory() *PredicateFactory {
	return &PredicateFactory{}
}

func (f *PredicateFactory) register(p Predicate) Predicate {
	f.all = append(f.all, p)
	return p
}

// All returns every predicate minted by this factory, in minting order.
func (f *PredicateFactory) All() []Predicate {
	return f.all
}

func (f *PredicateFactory) And(operands ...Predicate) *PredicateAnd {
	p := &PredicateAnd{predicateBase: predicateBase{id: uuid.New()}, Operands: operands}
	f.register(p)
	return p
}

func (f *PredicateFactory) Or(operands ...Predicate) *PredicateOr {
	p := &PredicateOr{predicateBase: predicateBase{id: uuid.New()}, Operands: operands}
	f.register(p)
	return p
}

func (f *PredicateFactory) Not(operand Predicate) *PredicateNot {
	p := &PredicateNot{predicateBase: predicateBase{id: uuid.New()}, Operand: operand}
	f.register(p)
	return p
}

func (f *PredicateFactory) Like(col Attr, pattern string) *PredicateLike {
	p := &PredicateLike{predicateBase: predicateBase{id: uuid.New()}, Column: col, Pattern: pattern}
	f.register(p)
	return p
}

func (f *PredicateFactory) LessThan(attr Attr, integer int32) *PredicateLessThan {
	p := &PredicateLessThan{predicateBase: predicateBase{id: uuid.New()}, Attr: attr, Int: integer}
	f.register(p)
	return p
}

func (f *PredicateFactory) Equals(attr Attr, integer int32) *PredicateEquals {
	p := &PredicateEquals{predicateBase: predicateBase{id: uuid.New()}, Attr: attr, Int: integer}
	f.register(p)
	return p
}
