package relalg

import (
	"fmt"

	"github.com/google/uuid"
)

// RelationKind discriminates the concrete Relation variants.
type RelationKind int

const (
	RelationKindRef RelationKind = iota
	RelationKindNot
	RelationKindJoin
	RelationKindSemijoin
	RelationKindUnion
	RelationKindDifference
	RelationKindSelect
	RelationKindMap
	RelationKindView
)

func (k RelationKind) String() string {
	switch k {
	case RelationKindRef:
		return "Ref"
	case RelationKindNot:
		return "Not"
	case RelationKindJoin:
		return "Join"
	case RelationKindSemijoin:
		return "Semijoin"
	case RelationKindUnion:
		return "Union"
	case RelationKindDifference:
		return "Difference"
	case RelationKindSelect:
		return "Select"
	case RelationKindMap:
		return "Map"
	case RelationKindView:
		return "View"
	default:
		return "Unknown"
	}
}

// RelName is the user-facing/debug name of a base relation.
type RelName string

// AttrPair is one (left, right) equi-join column pair.
type AttrPair struct {
	Left, Right Attr
}

// JoinOn is a list of equi-join column pairs. The factory methods store
// it exactly as the caller passes it: pairs are neither sorted nor
// deduplicated, so two JoinOns naming the same pairs in different
// orders are not structurally equal.
type JoinOn []AttrPair

// FlipJoinOn swaps Left/Right in every pair, used when the Yannakakis
// transform's top-down pass re-applies a semijoin in the opposite
// direction.
func FlipJoinOn(on JoinOn) JoinOn {
	flipped := make(JoinOn, len(on))
	for i, p := range on {
		flipped[i] = AttrPair{Left: p.Right, Right: p.Left}
	}
	return flipped
}

// Function wraps a pure row-transformation used by Map. Name is purely
// for debug output and generated-code naming; the transform itself is
// an opaque callback supplied by the caller (relsynth does not attempt
// to compile arbitrary user functions).
type Function struct {
	Name string
	Call func(Row) (Row, error)
}

// Relation is a node in the relational-algebra term tree. Concrete
// variants are only ever constructed through a RelationFactory, so a
// Relation's pointer identity is its node identity for memoization
// (TypeEnv, codegen's view/table maps) purposes — never structural
// hash.
type Relation interface {
	Kind() RelationKind
	// Arity returns the number of columns this relation's rows carry.
	Arity() int
	String() string
}

type relationBase struct {
	id uuid.UUID
}

func (b relationBase) debugID() string { return b.id.String()[:8] }

// RelationRef is a reference to a base (stored) table.
type RelationRef struct {
	relationBase
	Name  RelName
	arity int
}

func (r *RelationRef) Kind() RelationKind { return RelationKindRef }
func (r *RelationRef) Arity() int         { return r.arity }
func (r *RelationRef) String() string {
	return fmt.Sprintf("Ref(%s)#%s", r.Name, r.debugID())
}

// RelationNot is the logical negation of a relation — a relation whose
// membership is "every row not in Input". Only meaningful as an
// immediate operand elsewhere; the reference interpreter rejects it as
// a top-level query per spec.md §4.9.
type RelationNot struct {
	relationBase
	Input Relation
}

func (r *RelationNot) Kind() RelationKind { return RelationKindNot }
func (r *RelationNot) Arity() int         { return r.Input.Arity() }
func (r *RelationNot) String() string {
	return fmt.Sprintf("Not(%s)#%s", r.Input, r.debugID())
}

// RelationJoin is an equi-join of Left and Right on the column pairs in
// On. Arity is Left.Arity() + Right.Arity() minus len(On) (the shared
// right-hand columns are not duplicated in the output).
type RelationJoin struct {
	relationBase
	Left, Right Relation
	On          JoinOn
}

func (r *RelationJoin) Kind() RelationKind { return RelationKindJoin }
func (r *RelationJoin) Arity() int {
	return r.Left.Arity() + r.Right.Arity() - len(r.On)
}
func (r *RelationJoin) String() string {
	return fmt.Sprintf("Join(%s, %s, %v)#%s", r.Left, r.Right, r.On, r.debugID())
}

// RelationSemijoin keeps only the Left rows that have a matching Right
// row on On; arity equals Left.Arity() (Right contributes no columns).
type RelationSemijoin struct {
	relationBase
	Left, Right Relation
	On          JoinOn
}

func (r *RelationSemijoin) Kind() RelationKind { return RelationKindSemijoin }
func (r *RelationSemijoin) Arity() int         { return r.Left.Arity() }
func (r *RelationSemijoin) String() string {
	return fmt.Sprintf("Semijoin(%s, %s, %v)#%s", r.Left, r.Right, r.On, r.debugID())
}

// RelationUnion is the set union of Left and Right, which must share
// arity.
type RelationUnion struct {
	relationBase
	Left, Right Relation
}

func (r *RelationUnion) Kind() RelationKind { return RelationKindUnion }
func (r *RelationUnion) Arity() int         { return r.Left.Arity() }
func (r *RelationUnion) String() string {
	return fmt.Sprintf("Union(%s, %s)#%s", r.Left, r.Right, r.debugID())
}

// RelationDifference is Left minus Right (set difference), which must
// share arity.
type RelationDifference struct {
	relationBase
	Left, Right Relation
}

func (r *RelationDifference) Kind() RelationKind { return RelationKindDifference }
func (r *RelationDifference) Arity() int         { return r.Left.Arity() }
func (r *RelationDifference) String() string {
	return fmt.Sprintf("Difference(%s, %s)#%s", r.Left, r.Right, r.debugID())
}

// RelationSelect keeps the Input rows for which Pred holds.
type RelationSelect struct {
	relationBase
	Input Relation
	Pred  Predicate
}

func (r *RelationSelect) Kind() RelationKind { return RelationKindSelect }
func (r *RelationSelect) Arity() int         { return r.Input.Arity() }
func (r *RelationSelect) String() string {
	return fmt.Sprintf("Select(%s, %s)#%s", r.Input, r.Pred, r.debugID())
}

// RelationMap applies Fn to every Input row. Fn need not be injective,
// which is why every consumer of a Map node must store its output as a
// multiset (see codegen's uniform Bag-storage policy).
type RelationMap struct {
	relationBase
	Input Relation
	Fn    Function
	arity int
}

func (r *RelationMap) Kind() RelationKind { return RelationKindMap }
func (r *RelationMap) Arity() int         { return r.arity }
func (r *RelationMap) String() string {
	return fmt.Sprintf("Map(%s, %s)#%s", r.Input, r.Fn.Name, r.debugID())
}

// RelationView projects Input's columns through Perm, which may drop
// columns (holes) or reorder them. Arity is Perm.Arity().
type RelationView struct {
	relationBase
	Input Relation
	Perm  AttrPartialPermutation
}

func (r *RelationView) Kind() RelationKind { return RelationKindView }
func (r *RelationView) Arity() int         { return r.Perm.Arity() }
func (r *RelationView) String() string {
	return fmt.Sprintf("View(%s, %v)#%s", r.Input, r.Perm, r.debugID())
}

// Viewed pairs an arbitrary value (typically a Relation) with an
// AttrPartialPermutation describing how its columns map onto some
// outer context. It generalizes RelationView's projection so other
// phases (e.g. the FHD planner's bag-to-relation bindings) can reuse
// the same column-remapping shape without allocating a RelationView
// node.
type Viewed[T any] struct {
	Value T
	Perm  AttrPartialPermutation
}

// Arity returns the number of non-hole columns in v's permutation.
func (v Viewed[T]) Arity() int { return v.Perm.Arity() }

// RelationFactory is the arena that owns every Relation node minted
// during one compilation, by pointer identity (never structural hash).
type RelationFactory struct {
	all []Relation
}

// NewRelationFactory returns an empty arena.
func NewRelationFactory() *RelationFactory {
	return &RelationFactory{}
}

// All returns every relation minted by this factory, in minting order.
func (f *RelationFactory) All() []Relation {
	return f.all
}

func (f *RelationFactory) register(r Relation) Relation {
	f.all = append(f.all, r)
	return r
}

func (f *RelationFactory) Ref(name RelName, arity int) *RelationRef {
	r := &RelationRef{relationBase: relationBase{id: uuid.New()}, Name: name, arity: arity}
	f.register(r)
	return r
}

func (f *RelationFactory) Not(input Relation) *RelationNot {
	r := &RelationNot{relationBase: relationBase{id: uuid.New()}, Input: input}
	f.register(r)
	return r
}

func (f *RelationFactory) Join(left, right Relation, on JoinOn) *RelationJoin {
	r := &RelationJoin{relationBase: relationBase{id: uuid.New()}, Left: left, Right: right, On: on}
	f.register(r)
	return r
}

func (f *RelationFactory) Semijoin(left, right Relation, on JoinOn) *RelationSemijoin {
	r := &RelationSemijoin{relationBase: relationBase{id: uuid.New()}, Left: left, Right: right, On: on}
	f.register(r)
	return r
}

func (f *RelationFactory) Union(left, right Relation) *RelationUnion {
	r := &RelationUnion{relationBase: relationBase{id: uuid.New()}, Left: left, Right: right}
	f.register(r)
	return r
}

func (f *RelationFactory) Difference(left, right Relation) *RelationDifference {
	r := &RelationDifference{relationBase: relationBase{id: uuid.New()}, Left: left, Right: right}
	f.register(r)
	return r
}

func (f *RelationFactory) Select(input Relation, pred Predicate) *RelationSelect {
	r := &RelationSelect{relationBase: relationBase{id: uuid.New()}, Input: input, Pred: pred}
	f.register(r)
	return r
}

func (f *RelationFactory) Map(input Relation, fn Function, arity int) *RelationMap {
	r := &RelationMap{relationBase: relationBase{id: uuid.New()}, Input: input, Fn: fn, arity: arity}
	f.register(r)
	return r
}

func (f *RelationFactory) View(input Relation, perm AttrPartialPermutation) *RelationView {
	r := &RelationView{relationBase: relationBase{id: uuid.New()}, Input: input, Perm: perm}
	f.register(r)
	return r
}
