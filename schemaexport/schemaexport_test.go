package schemaexport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/schemaexport"
)

func TestExportRendersTablePerRef(t *testing.T) {
	rf := relalg.NewRelationFactory()
	a := rf.Ref("Edge", 2)

	env := relalg.NewTypeEnv()
	_, err := env.Infer(a, relalg.TypeInt{})
	require.NoError(t, err)

	sch, err := schemaexport.Export("relsynth", []*relalg.RelationRef{a}, env)
	require.NoError(t, err)
	assert.Len(t, sch.Tables, 1)
	assert.Len(t, sch.Tables[0].Columns, 2)
}
