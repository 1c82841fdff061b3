package relalg

import "fmt"

// TypeKind discriminates the concrete Type variants.
type TypeKind int

const (
	TypeKindInt TypeKind = iota
	TypeKindBasic
	TypeKindRow
	TypeKindHashSet
	TypeKindBag
	TypeKindHashMap
	TypeKindTrie
	TypeKindVector
)

// Type describes the shape of the value a Relation (or an Action-IR
// container) carries. Types form their own small tree (Row contains
// element Types, HashSet/Bag/Vector wrap an element Type, HashMap wraps
// a key and value Type, Trie wraps a sequence of Types).
type Type interface {
	Kind() TypeKind
	String() string
}

// TypeInt is the built-in integer scalar type.
type TypeInt struct{}

func (TypeInt) Kind() TypeKind { return TypeKindInt }
func (TypeInt) String() string { return "Int" }

// TypeBasic is an opaque named scalar type (string, bool, float, or any
// caller-defined scalar), identified by Name.
type TypeBasic struct {
	Name string
}

func (t TypeBasic) Kind() TypeKind { return TypeKindBasic }
func (t TypeBasic) String() string { return t.Name }

// TypeRow is the tuple type: a fixed sequence of column Types.
type TypeRow struct {
	Columns []Type
}

func (t TypeRow) Kind() TypeKind { return TypeKindRow }
func (t TypeRow) String() string {
	s := "Row("
	for i, c := range t.Columns {
		if i > 0 {
			s += ", "
		}
		s += c.String()
	}
	return s + ")"
}

// TypeHashSet is a deduplicated unordered collection of Elem.
type TypeHashSet struct {
	Elem Type
}

func (t TypeHashSet) Kind() TypeKind { return TypeKindHashSet }
func (t TypeHashSet) String() string { return fmt.Sprintf("HashSet(%s)", t.Elem) }

// TypeBag is a reference-counted multiset of Elem, the storage kind
// every derived (non-base) node in the generated code uses, per the
// uniform incremental-deletion policy.
type TypeBag struct {
	Elem Type
}

func (t TypeBag) Kind() TypeKind { return TypeKindBag }
func (t TypeBag) String() string { return fmt.Sprintf("Bag(%s)", t.Elem) }

// TypeHashMap is a map from Key to Value, used for Semijoin/Join
// support indices as well as any user-level grouping structure.
type TypeHashMap struct {
	Key, Value Type
}

func (t TypeHashMap) Kind() TypeKind { return TypeKindHashMap }
func (t TypeHashMap) String() string { return fmt.Sprintf("HashMap(%s, %s)", t.Key, t.Value) }

// TypeTrie is a prefix-tree keyed by a sequence of Types, used when a
// container must support incremental prefix lookups (e.g. a
// multi-column support index probed one column at a time).
type TypeTrie struct {
	KeySequence []Type
	Value       Type
}

func (t TypeTrie) Kind() TypeKind { return TypeKindTrie }
func (t TypeTrie) String() string { return fmt.Sprintf("Trie(%v -> %s)", t.KeySequence, t.Value) }

// TypeVector is an ordered, indexable sequence of Elem.
type TypeVector struct {
	Elem Type
}

func (t TypeVector) Kind() TypeKind { return TypeKindVector }
func (t TypeVector) String() string { return fmt.Sprintf("Vector(%s)", t.Elem) }

// RowTypeOf builds the TypeRow for a relation of the given arity over
// a single element type (relsynth does not track per-column scalar
// types beyond what a caller supplies explicitly).
func RowTypeOf(arity int, elem Type) TypeRow {
	cols := make([]Type, arity)
	for i := range cols {
		cols[i] = elem
	}
	return TypeRow{Columns: cols}
}
