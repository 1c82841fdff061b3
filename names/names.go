// Package names provides the compiler's single fresh-name counter,
// used by codegen so that the variable and relation names it mints
// never collide.
package names

import "fmt"

// Source mints fresh variable and relation names from one shared
// counter. A single counter (rather than independent per-kind counters,
// as the original C++ FreshVariableSource used) is what the Design
// Notes recommend: it keeps every name unique across the whole
// compilation, not just within one kind.
type Source struct {
	next int
}

// NewSource returns a Source starting from zero.
func NewSource() *Source {
	return &Source{}
}

// FreshVar returns a new variable name with the given prefix.
func (s *Source) FreshVar(prefix string) string {
	return s.fresh(prefix)
}

// FreshRelation returns a new relation name with the given prefix.
func (s *Source) FreshRelation(prefix string) string {
	return s.fresh(prefix)
}

func (s *Source) fresh(prefix string) string {
	n := s.next
	s.next++
	if prefix == "" {
		prefix = "v"
	}
	return fmt.Sprintf("%s%d", prefix, n)
}

// Count returns the number of names minted so far.
func (s *Source) Count() int {
	return s.next
}
