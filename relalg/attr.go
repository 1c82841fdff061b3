// Package relalg implements the relational-algebra intermediate
// representation: attributes, predicates, relations, and their type
// environment. It is the core data model every other phase of the
// compiler (hypergraph, fhd, yannakakis, codegen, interp) consumes.
package relalg

// Attr identifies a column position within a row. Attrs are compared by
// value, not identity — two relations sharing an Attr value are
// declaring that their corresponding columns carry the same logical
// attribute.
type Attr int32

// AttrPermutation maps old column position to new column position.
type AttrPermutation []Attr

// AttrPartialPermutation is source-indexed: perm[j] names the output
// column that input column j is written to, or nil if input column j
// is a "hole" dropped by a View (mirrors original_source's
// interpreter.hpp, where `output_tuple[*attr_maybe] = input_tuple[j]`
// is computed by iterating the permutation in input-column order).
// Arity is len(perm) minus the hole count.
type AttrPartialPermutation []*Attr

// Arity returns the number of non-hole entries.
func (p AttrPartialPermutation) Arity() int {
	n := 0
	for _, a := range p {
		if a != nil {
			n++
		}
	}
	return n
}

// Hole returns a nil entry, used to build partial permutations that
// drop a column.
func Hole() *Attr { return nil }

// Some wraps an Attr as a present (non-hole) permutation entry.
func Some(a Attr) *Attr { return &a }
