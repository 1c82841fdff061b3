package actionir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relsynth/relsynth/actionir"
	"github.com/relsynth/relsynth/relalg"
)

func TestActionKindsAreDistinct(t *testing.T) {
	kinds := map[actionir.ActionKind]bool{}
	actions := []actionir.Action{
		actionir.AssignConstant{},
		actionir.ConstructRow{},
		actionir.IndexRow{},
		actionir.Invoke{},
		actionir.IfEqual{},
		actionir.ContainerCreate{},
		actionir.ContainerInsert{},
		actionir.ContainerDelete{},
		actionir.ContainerIterate{},
		actionir.ContainerContains{},
	}
	for _, a := range actions {
		kinds[a.Kind()] = true
	}
	assert.Len(t, kinds, len(actions))
}

func TestDataStructureString(t *testing.T) {
	ds := actionir.DataStructure{
		Name: "Example",
		Members: []actionir.Member{
			{Name: "storage", Kind: actionir.ContainerKindBag, Type: relalg.TypeBag{Elem: relalg.TypeInt{}}},
		},
		Methods: []actionir.Method{
			{
				Name:   "Insert",
				Params: []string{"row"},
				Body: []actionir.Action{
					actionir.ContainerInsert{Container: "storage", Value: "row"},
				},
			},
		},
	}
	out := ds.String()
	assert.Contains(t, out, "Example")
	assert.Contains(t, out, "storage.insert(row)")
}
