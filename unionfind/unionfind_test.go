package unionfind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relsynth/relsynth/unionfind"
)

func TestUnionMergesValues(t *testing.T) {
	u := unionfind.New[string, int]()
	u.MakeSet("a", 1)
	u.MakeSet("b", 2)
	u.MakeSet("c", 4)

	sum := func(x, y int) int { return x + y }
	require.NoError(t, u.Union("a", "b", sum))
	require.NoError(t, u.Union("b", "c", sum))

	v, err := u.Value("a")
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	connected, err := u.Connected("a", "c")
	require.NoError(t, err)
	assert.True(t, connected)
}

func TestFindUnknownKeyErrors(t *testing.T) {
	u := unionfind.New[string, int]()
	_, err := u.Find("missing")
	require.Error(t, err)
}

func TestUnionSameSetIsNoop(t *testing.T) {
	u := unionfind.New[string, int]()
	u.MakeSet("a", 10)
	calls := 0
	combine := func(x, y int) int { calls++; return x + y }
	require.NoError(t, u.Union("a", "a", combine))
	assert.Equal(t, 0, calls)
}
