package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relsynth/relsynth/names"
)

func TestSourceMintsUniqueNames(t *testing.T) {
	s := names.NewSource()
	v := s.FreshVar("x")
	r := s.FreshRelation("R")
	assert.NotEqual(t, v, r)
	assert.Equal(t, 2, s.Count())
}

func TestSourceSharedCounterAcrossKinds(t *testing.T) {
	s := names.NewSource()
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		var n string
		if i%2 == 0 {
			n = s.FreshVar("v")
		} else {
			n = s.FreshRelation("R")
		}
		assert.False(t, seen[n], "name %q minted twice", n)
		seen[n] = true
	}
}
