package testdriver

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/relsynth/relsynth/interp"
	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/relerr"
)

// Fixture is the serializable form of a scenario's base-table contents
// — everything about a Scenario except its Relation term and TypeEnv,
// which are Go values constructed by the test itself rather than data
// that crosses a serialization boundary.
type Fixture struct {
	Name   string             `msgpack:"name"`
	Tables map[string][][]any `msgpack:"tables"`
}

// SaveFixture encodes a Scenario's base tables into a Fixture's msgpack
// wire form.
func SaveFixture(s Scenario) ([]byte, error) {
	f := Fixture{Name: s.Name, Tables: map[string][][]any{}}
	for name, table := range s.BaseTables {
		rows := make([][]any, len(table.Rows))
		for i, r := range table.Rows {
			rows[i] = []any(r)
		}
		f.Tables[string(name)] = rows
	}
	b, err := msgpack.Marshal(f)
	if err != nil {
		return nil, relerr.Wrap(relerr.KindInternal, "testdriver", "encoding fixture", err)
	}
	return b, nil
}

// LoadFixture decodes a msgpack-encoded Fixture back into base tables
// keyed by relalg.RelName, ready to assign to Scenario.BaseTables.
func LoadFixture(data []byte) (string, map[relalg.RelName]*interp.Table, error) {
	var f Fixture
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return "", nil, relerr.Wrap(relerr.KindInternal, "testdriver", "decoding fixture", err)
	}
	tables := make(map[relalg.RelName]*interp.Table, len(f.Tables))
	for name, rows := range f.Tables {
		rs := make([]relalg.Row, len(rows))
		for i, r := range rows {
			rs[i] = relalg.Row(r)
		}
		tables[relalg.RelName(name)] = &interp.Table{Rows: rs}
	}
	return f.Name, tables, nil
}
