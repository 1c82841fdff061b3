// Package schemaexport renders a relalg.TypeEnv's base-table row types
// as an ariga.io/atlas SQL schema, documenting the storage shape of a
// compiled program's base relations. This is additive to the core
// compiler (SPEC_FULL.md §1) — nothing in relalg, codegen, or interp
// depends on it.
package schemaexport

import (
	"ariga.io/atlas/sql/schema"

	"github.com/relsynth/relsynth/internal/naming"
	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/relerr"
)

// Export renders every Ref in refs as a table in the returned
// *schema.Schema named schemaName, with one column per row position.
func Export(schemaName string, refs []*relalg.RelationRef, env *relalg.TypeEnv) (*schema.Schema, error) {
	sch := schema.New(schemaName)
	for _, ref := range refs {
		t, err := env.Lookup(ref)
		if err != nil {
			return nil, err
		}
		row, ok := t.(relalg.TypeRow)
		if !ok {
			return nil, relerr.Internal("schemaexport", "Ref %q typed as non-Row %T", ref.Name, t)
		}
		table := schema.NewTable(naming.TableName(string(ref.Name)))
		for i, col := range row.Columns {
			table.AddColumns(schema.NewColumn(columnName(i)).SetType(columnType(col)))
		}
		sch.AddTables(table)
	}
	return sch, nil
}

func columnName(i int) string {
	return naming.GoIdent("col") + intSuffix(i)
}

func intSuffix(i int) string {
	digits := "0123456789"
	if i == 0 {
		return "_0"
	}
	var buf []byte
	for i > 0 {
		buf = append([]byte{digits[i%10]}, buf...)
		i /= 10
	}
	return "_" + string(buf)
}

func columnType(t relalg.Type) *schema.ColumnType {
	switch t.Kind() {
	case relalg.TypeKindInt:
		return &schema.ColumnType{Type: &schema.IntegerType{T: "bigint"}}
	default:
		return &schema.ColumnType{Type: &schema.StringType{T: "text"}}
	}
}
