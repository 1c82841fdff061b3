package codegen

import (
	"fmt"

	"github.com/relsynth/relsynth/actionir"
	"github.com/relsynth/relsynth/relalg"
)

// emitStorage allocates n's storage member(s): a HashSet for a base
// Ref (true set semantics — reinserting an already-present row leaves
// the set unchanged), a Bag for every derived node (reference-counted multiset, so
// deletes fall out of the same container the inserts use), and, for
// Semijoin/Join, the auxiliary support indices described in
// SPEC_FULL.md §4.8.
func (g *Codegen) emitStorage(n relalg.Relation) error {
	elem, err := g.elemType(n)
	if err != nil {
		return err
	}

	switch t := n.(type) {
	case *relalg.RelationRef:
		storage := fmt.Sprintf("tbl_%s", t.Name)
		g.tableRelations[t] = storage
		g.ds.Members = append(g.ds.Members, actionir.Member{
			Name: storage, Kind: actionir.ContainerKindHashSet, Type: relalg.TypeHashSet{Elem: elem},
		})
		return nil
	}

	storage := g.names.FreshVar("node")
	g.viewRelations[n] = storage
	g.ds.Members = append(g.ds.Members, actionir.Member{
		Name: storage, Kind: actionir.ContainerKindBag, Type: relalg.TypeBag{Elem: elem},
	})

	switch t := n.(type) {
	case *relalg.RelationSemijoin:
		g.addSupportIndices(n, storage, t.Right)
	case *relalg.RelationJoin:
		g.addSupportIndices(n, storage, t.Left)
		g.addSupportIndices(n, storage, t.Right)
	}
	return nil
}

// addSupportIndices allocates the HashMap<projection, ...> index (and,
// for Semijoin, the accompanying witness counter) that lets a
// Semijoin/Join maintain itself on deletion without rescanning side.
func (g *Codegen) addSupportIndices(n relalg.Relation, storage string, side relalg.Relation) {
	elem, _ := g.elemType(side)
	indexName := g.names.FreshVar(storage + "_idx")
	if g.supportNames[n] == nil {
		g.supportNames[n] = make(map[string]string)
	}
	g.supportNames[n][sideKey(n, side)] = indexName

	if _, ok := n.(*relalg.RelationSemijoin); ok {
		g.ds.Members = append(g.ds.Members, actionir.Member{
			Name: indexName, Kind: actionir.ContainerKindHashMap,
			Type: relalg.TypeHashMap{Key: relalg.TypeInt{}, Value: relalg.TypeHashSet{Elem: elem}},
		})
		witnessName := g.names.FreshVar(storage + "_witness")
		g.supportNames[n]["witness:"+sideKey(n, side)] = witnessName
		g.ds.Members = append(g.ds.Members, actionir.Member{
			Name: witnessName, Kind: actionir.ContainerKindHashMap,
			Type: relalg.TypeHashMap{Key: relalg.TypeInt{}, Value: relalg.TypeInt{}},
		})
		return
	}

	g.ds.Members = append(g.ds.Members, actionir.Member{
		Name: indexName, Kind: actionir.ContainerKindHashMap,
		Type: relalg.TypeHashMap{Key: relalg.TypeInt{}, Value: relalg.TypeBag{Elem: elem}},
	})
}

func sideKey(n, side relalg.Relation) string {
	return fmt.Sprintf("%p:%p", n, side)
}
