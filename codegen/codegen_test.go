package codegen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relsynth/relsynth/actionir"
	"github.com/relsynth/relsynth/codegen"
	"github.com/relsynth/relsynth/names"
	"github.com/relsynth/relsynth/relalg"
)

func buildUnionOfTwoRefs(t *testing.T) (relalg.Relation, *relalg.TypeEnv) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 1)
	b := rf.Ref("B", 1)
	union := rf.Union(a, b)

	env := relalg.NewTypeEnv()
	_, err := env.Infer(union, relalg.TypeInt{})
	require.NoError(t, err)
	return union, env
}

func TestCompileUnionEmitsStorageAndMethods(t *testing.T) {
	union, env := buildUnionOfTwoRefs(t)

	g := codegen.New(env, names.NewSource(), "UnionDS")
	ds, err := g.Compile(union)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(ds.Members), 3) // tbl_A, tbl_B, union storage
	var methodNames []string
	for _, m := range ds.Methods {
		methodNames = append(methodNames, m.Name)
	}
	assert.Contains(t, methodNames, "Insert_tbl_A")
	assert.Contains(t, methodNames, "Insert_tbl_B")
}

func TestCompileSemijoinEmitsSupportIndices(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 2)
	b := rf.Ref("B", 1)
	semi := rf.Semijoin(a, b, relalg.JoinOn{{Left: 0, Right: 0}})

	env := relalg.NewTypeEnv()
	_, err := env.Infer(semi, relalg.TypeInt{})
	require.NoError(t, err)

	g := codegen.New(env, names.NewSource(), "SemiDS")
	ds, err := g.Compile(semi)
	require.NoError(t, err)

	found := false
	for _, m := range ds.Members {
		if m.Kind == actionir.ContainerKindHashMap {
			found = true
		}
	}
	assert.True(t, found, "expected a HashMap support index member")
}

func TestCompileNotReturnsNotImplemented(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("A", 1)
	not := rf.Not(a)

	env := relalg.NewTypeEnv()
	_, err := env.Infer(not, relalg.TypeInt{})
	require.NoError(t, err)

	g := codegen.New(env, names.NewSource(), "NotDS")
	_, err = g.Compile(not)
	require.Error(t, err)
}

func TestCompileManyRunsJobsConcurrently(t *testing.T) {
	union, env := buildUnionOfTwoRefs(t)
	rf2 := relalg.NewRelationFactory()
	c := rf2.Ref("C", 1)
	env2 := relalg.NewTypeEnv()
	_, err := env2.Infer(c, relalg.TypeInt{})
	require.NoError(t, err)

	results, err := codegen.CompileMany(context.Background(), []codegen.Job{
		{Root: union, Env: env, Name: "First"},
		{Root: c, Env: env2, Name: "Second"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "First", results[0].Name)
	assert.Equal(t, "Second", results[1].Name)
}
