package relerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relsynth/relsynth/relerr"
)

func TestErrorIsSentinel(t *testing.T) {
	err := relerr.Precondition("relalg", "arity mismatch: want %d got %d", 2, 3)
	assert.True(t, errors.Is(err, relerr.ErrPrecondition))
	assert.False(t, errors.Is(err, relerr.ErrInternal))
	assert.True(t, relerr.Is(err, relerr.KindPrecondition))
}

func TestErrorWrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := relerr.Wrap(relerr.KindInternal, "codegen", "unknown relation variant", cause)
	require.ErrorIs(t, err, relerr.ErrInternal)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "codegen")
	assert.Contains(t, err.Error(), "boom")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unsatisfiable", relerr.KindUnsatisfiable.String())
	assert.Equal(t, "not_implemented", relerr.KindNotImplemented.String())
}
