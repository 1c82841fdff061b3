package golang_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relsynth/relsynth/actionir"
	"github.com/relsynth/relsynth/relalg"
	golang "github.com/relsynth/relsynth/render/golang"
)

func TestRenderProducesStructAndMethod(t *testing.T) {
	ds := &actionir.DataStructure{
		Name: "UnionDS",
		Members: []actionir.Member{
			{Name: "tbl_A", Kind: actionir.ContainerKindHashSet, Type: relalg.TypeHashSet{Elem: relalg.TypeInt{}}},
		},
		Methods: []actionir.Method{
			{
				Name:   "Insert_tbl_A",
				Params: []string{"row"},
				Body: []actionir.Action{
					actionir.ContainerInsert{Container: "tbl_A", Value: "row"},
				},
			},
		},
	}

	src, err := golang.Render("generated", ds)
	require.NoError(t, err)
	assert.True(t, strings.Contains(src, "package generated"))
	assert.True(t, strings.Contains(src, "UnionDS"))
	assert.True(t, strings.Contains(src, "type Unionds struct"))
	assert.True(t, strings.Contains(src, "InsertTblA("))
}
