package codegen

import (
	"sort"

	"github.com/relsynth/relsynth/actionir"
	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/relerr"
)

// emitMaintenance emits n's local Insert/Delete storage-mutation
// methods and, for every consumer edge recorded by collectConsumers,
// the per-operator propagation method that consumer reacts with.
func (g *Codegen) emitMaintenance(n relalg.Relation) error {
	storage, err := g.storageName(n)
	if err != nil {
		return err
	}

	switch n.(type) {
	case *relalg.RelationRef:
		g.emitLocalMutation(storage, actionir.ContainerKindHashSet)
	case *relalg.RelationNot:
		return relerr.NotImplemented("codegen", "incremental maintenance for Not is undefined (not an enumerable complement)")
	default:
		g.emitLocalMutation(storage, actionir.ContainerKindBag)
	}

	for _, edge := range g.consumers[n] {
		if err := g.emitPropagation(n, storage, edge); err != nil {
			return err
		}
	}
	return nil
}

func (g *Codegen) emitLocalMutation(storage string, kind actionir.ContainerKind) {
	g.ds.Methods = append(g.ds.Methods,
		actionir.Method{
			Name:   g.methodName("Insert", storage),
			Params: []string{"row"},
			Body:   []actionir.Action{actionir.ContainerInsert{Container: storage, Value: "row"}},
		},
		actionir.Method{
			Name:   g.methodName("Delete", storage),
			Params: []string{"row"},
			Body:   []actionir.Action{actionir.ContainerDelete{Container: storage, Value: "row"}},
		},
	)
}

// emitPropagation emits, on edge.parent, the pair of methods reacting
// to an insert/delete on the child whose storage is childStorage,
// arriving through edge.slot. Each recipe is exactly the one named for
// that operator in SPEC_FULL.md §4.8.
func (g *Codegen) emitPropagation(child relalg.Relation, childStorage string, edge consumerEdge) error {
	parentStorage, err := g.storageName(edge.parent)
	if err != nil {
		return err
	}

	switch p := edge.parent.(type) {
	case *relalg.RelationUnion:
		g.emitUnionPropagation(parentStorage)
	case *relalg.RelationDifference:
		g.emitDifferencePropagation(p, parentStorage, edge.slot)
	case *relalg.RelationSelect:
		g.emitSelectPropagation(p, parentStorage)
	case *relalg.RelationMap:
		g.emitMapPropagation(p, parentStorage)
	case *relalg.RelationView:
		g.emitViewPropagation(p, parentStorage)
	case *relalg.RelationSemijoin:
		g.emitSemijoinPropagation(p, edge.parent, parentStorage, edge.slot)
	case *relalg.RelationJoin:
		g.emitJoinPropagation(p, edge.parent, parentStorage, edge.slot)
	default:
		return relerr.Internal("codegen", "unknown consumer kind %T", edge.parent)
	}
	// parentStorage's own consumers get their On*_<parent> methods from
	// a later emitMaintenance(edge.parent) call in the same bottom-up
	// Compile pass. The Insert_/Delete_ methods from emitLocalMutation
	// only mutate their own storage and invoke no On* method, so the
	// generated structure does not cascade by itself: a caller carries a
	// delta upward by invoking the consumers' On* methods (found through
	// ConsumerEdges and OnMethodName) itself.
	return nil
}

func insertDeleteNames(parentStorage string, slot OperandSlot, g *Codegen) (insert, del string) {
	return g.onMethodName(parentStorage, slot, "Insert"), g.onMethodName(parentStorage, slot, "Delete")
}

func (g *Codegen) emitUnionPropagation(parentStorage string) {
	for _, slot := range []OperandSlot{SlotLeft, SlotRight} {
		insertName, deleteName := insertDeleteNames(parentStorage, slot, g)
		g.ds.Methods = append(g.ds.Methods,
			actionir.Method{Name: insertName, Params: []string{"row"}, Body: []actionir.Action{
				actionir.Invoke{Receiver: "self", Method: g.methodName("Insert", parentStorage), Args: []string{"row"}},
			}},
			actionir.Method{Name: deleteName, Params: []string{"row"}, Body: []actionir.Action{
				actionir.Invoke{Receiver: "self", Method: g.methodName("Delete", parentStorage), Args: []string{"row"}},
			}},
		)
	}
}

// emitDifferencePropagation implements Difference(L,R)'s exact
// recipe: L.insert increments out; R.insert decrements out; L.delete
// decrements out; R.delete increments out only if L still contains the
// row.
func (g *Codegen) emitDifferencePropagation(p *relalg.RelationDifference, parentStorage string, slot OperandSlot) {
	leftStorage, _ := g.storageName(p.Left)
	insertName, deleteName := insertDeleteNames(parentStorage, slot, g)
	if slot == SlotLeft {
		g.ds.Methods = append(g.ds.Methods,
			actionir.Method{Name: insertName, Params: []string{"row"}, Body: []actionir.Action{
				actionir.Invoke{Receiver: "self", Method: g.methodName("Insert", parentStorage), Args: []string{"row"}},
			}},
			actionir.Method{Name: deleteName, Params: []string{"row"}, Body: []actionir.Action{
				actionir.Invoke{Receiver: "self", Method: g.methodName("Delete", parentStorage), Args: []string{"row"}},
			}},
		)
		return
	}
	g.ds.Methods = append(g.ds.Methods,
		actionir.Method{Name: insertName, Params: []string{"row"}, Body: []actionir.Action{
			actionir.Invoke{Receiver: "self", Method: g.methodName("Delete", parentStorage), Args: []string{"row"}},
		}},
		actionir.Method{Name: deleteName, Params: []string{"row"}, Body: []actionir.Action{
			actionir.ContainerContains{Var: "stillInLeft", Container: leftStorage, Value: "row"},
			actionir.IfEqual{Left: "stillInLeft", Right: "true", Then: []actionir.Action{
				actionir.Invoke{Receiver: "self", Method: g.methodName("Insert", parentStorage), Args: []string{"row"}},
			}},
		}},
	)
}

// emitSelectPropagation implements Select(pred, Input): a row is
// forwarded to out, in the same direction as it arrived, only when
// pred holds for it. pred's purity is what makes this sound across
// both insert and delete, per SPEC_FULL.md §4.8.
func (g *Codegen) emitSelectPropagation(p *relalg.RelationSelect, parentStorage string) {
	insertName, deleteName := insertDeleteNames(parentStorage, SlotInput, g)
	g.ds.Methods = append(g.ds.Methods,
		actionir.Method{Name: insertName, Params: []string{"row"}, Body: []actionir.Action{
			actionir.Invoke{Var: "matches", Receiver: "pred", Method: "Eval", Args: []string{"row"}},
			actionir.IfEqual{Left: "matches", Right: "true", Then: []actionir.Action{
				actionir.Invoke{Receiver: "self", Method: g.methodName("Insert", parentStorage), Args: []string{"row"}},
			}},
		}},
		actionir.Method{Name: deleteName, Params: []string{"row"}, Body: []actionir.Action{
			actionir.Invoke{Var: "matches", Receiver: "pred", Method: "Eval", Args: []string{"row"}},
			actionir.IfEqual{Left: "matches", Right: "true", Then: []actionir.Action{
				actionir.Invoke{Receiver: "self", Method: g.methodName("Delete", parentStorage), Args: []string{"row"}},
			}},
		}},
	)
	_ = p
}

// emitMapPropagation implements Map(f, Input): every row is
// transformed by f and forwarded, in the same direction it arrived.
// Because f need not be injective, parentStorage must be a Bag (it
// always is, per the uniform policy) so an unrelated deletion cannot
// remove a still-live derived tuple.
func (g *Codegen) emitMapPropagation(p *relalg.RelationMap, parentStorage string) {
	insertName, deleteName := insertDeleteNames(parentStorage, SlotInput, g)
	g.ds.Methods = append(g.ds.Methods,
		actionir.Method{Name: insertName, Params: []string{"row"}, Body: []actionir.Action{
			actionir.Invoke{Var: "mapped", Receiver: p.Fn.Name, Method: "Call", Args: []string{"row"}},
			actionir.Invoke{Receiver: "self", Method: g.methodName("Insert", parentStorage), Args: []string{"mapped"}},
		}},
		actionir.Method{Name: deleteName, Params: []string{"row"}, Body: []actionir.Action{
			actionir.Invoke{Var: "mapped", Receiver: p.Fn.Name, Method: "Call", Args: []string{"row"}},
			actionir.Invoke{Receiver: "self", Method: g.methodName("Delete", parentStorage), Args: []string{"mapped"}},
		}},
	)
}

// emitViewPropagation implements View(perm, Input): every row is
// projected through perm and forwarded, in the same direction it
// arrived. perm is source-indexed — perm[j] names the destination
// column that input column j lands in, or nil to drop it (matching
// original_source's interpreter.hpp) — so the projected row is
// assembled by reading columns in destination order. Same
// non-injectivity argument as Map.
func (g *Codegen) emitViewPropagation(p *relalg.RelationView, parentStorage string) {
	insertName, deleteName := insertDeleteNames(parentStorage, SlotInput, g)
	project := func() []actionir.Action {
		acts := []actionir.Action{}
		type destCol struct {
			dest int
			col  string
		}
		destCols := make([]destCol, 0, p.Perm.Arity())
		for j, dest := range p.Perm {
			if dest == nil {
				continue
			}
			col := g.names.FreshVar("col")
			acts = append(acts, actionir.IndexRow{Var: col, Row: "row", Index: j})
			destCols = append(destCols, destCol{dest: int(*dest), col: col})
		}
		sort.Slice(destCols, func(i, k int) bool { return destCols[i].dest < destCols[k].dest })
		cols := make([]string, len(destCols))
		for i, dc := range destCols {
			cols[i] = dc.col
		}
		acts = append(acts, actionir.ConstructRow{Var: "projected", Columns: cols})
		return acts
	}
	g.ds.Methods = append(g.ds.Methods,
		actionir.Method{Name: insertName, Params: []string{"row"}, Body: append(project(),
			actionir.Invoke{Receiver: "self", Method: g.methodName("Insert", parentStorage), Args: []string{"projected"}})},
		actionir.Method{Name: deleteName, Params: []string{"row"}, Body: append(project(),
			actionir.Invoke{Receiver: "self", Method: g.methodName("Delete", parentStorage), Args: []string{"projected"}})},
	)
}

// emitSemijoinPropagation implements Semijoin(L,R,on) via support
// counting: R maintains a witness count per shared projection value,
// and L rows are forwarded to out only while their projection's
// witness count is positive.
func (g *Codegen) emitSemijoinPropagation(p *relalg.RelationSemijoin, node relalg.Relation, parentStorage string, slot OperandSlot) {
	rightIndex := g.supportNames[node][sideKey(node, p.Right)]
	witness := g.supportNames[node]["witness:"+sideKey(node, p.Right)]
	insertName, deleteName := insertDeleteNames(parentStorage, slot, g)

	if slot == SlotRight {
		g.ds.Methods = append(g.ds.Methods,
			actionir.Method{Name: insertName, Params: []string{"row"}, Body: []actionir.Action{
				actionir.Invoke{Var: "proj", Receiver: "row", Method: "Project", Args: []string{"onRight"}},
				actionir.Invoke{Receiver: witness, Method: "Increment", Args: []string{"proj"}},
				actionir.Invoke{Receiver: rightIndex, Method: "InsertInto", Args: []string{"proj", "row"}},
			}},
			actionir.Method{Name: deleteName, Params: []string{"row"}, Body: []actionir.Action{
				actionir.Invoke{Var: "proj", Receiver: "row", Method: "Project", Args: []string{"onRight"}},
				actionir.Invoke{Receiver: rightIndex, Method: "DeleteFrom", Args: []string{"proj", "row"}},
				actionir.Invoke{Receiver: witness, Method: "Decrement", Args: []string{"proj"}},
			}},
		)
		return
	}

	g.ds.Methods = append(g.ds.Methods,
		actionir.Method{Name: insertName, Params: []string{"row"}, Body: []actionir.Action{
			actionir.Invoke{Var: "proj", Receiver: "row", Method: "Project", Args: []string{"onLeft"}},
			actionir.Invoke{Var: "hasWitness", Receiver: witness, Method: "Positive", Args: []string{"proj"}},
			actionir.IfEqual{Left: "hasWitness", Right: "true", Then: []actionir.Action{
				actionir.Invoke{Receiver: "self", Method: g.methodName("Insert", parentStorage), Args: []string{"row"}},
			}},
		}},
		actionir.Method{Name: deleteName, Params: []string{"row"}, Body: []actionir.Action{
			actionir.Invoke{Var: "proj", Receiver: "row", Method: "Project", Args: []string{"onLeft"}},
			actionir.Invoke{Var: "hasWitness", Receiver: witness, Method: "Positive", Args: []string{"proj"}},
			actionir.IfEqual{Left: "hasWitness", Right: "true", Then: []actionir.Action{
				actionir.Invoke{Receiver: "self", Method: g.methodName("Delete", parentStorage), Args: []string{"row"}},
			}},
		}},
	)
}

// emitJoinPropagation implements Join(L,R,on) via a Bag-valued support
// index on each side: inserting a row on one side looks up the
// opposite side's index at its shared projection and emits one derived
// tuple per match; deleting does the same in reverse, after
// de-indexing the row.
func (g *Codegen) emitJoinPropagation(p *relalg.RelationJoin, node relalg.Relation, parentStorage string, slot OperandSlot) {
	var ownIndex, otherIndex string
	var other relalg.Relation
	if slot == SlotLeft {
		ownIndex = g.supportNames[node][sideKey(node, p.Left)]
		otherIndex = g.supportNames[node][sideKey(node, p.Right)]
		other = p.Right
	} else {
		ownIndex = g.supportNames[node][sideKey(node, p.Right)]
		otherIndex = g.supportNames[node][sideKey(node, p.Left)]
		other = p.Left
	}
	_ = other
	insertName, deleteName := insertDeleteNames(parentStorage, slot, g)

	g.ds.Methods = append(g.ds.Methods,
		actionir.Method{Name: insertName, Params: []string{"row"}, Body: []actionir.Action{
			actionir.Invoke{Var: "proj", Receiver: "row", Method: "Project", Args: []string{"on"}},
			actionir.ContainerIterate{Container: otherIndex, LoopVar: "match", Body: []actionir.Action{
				actionir.Invoke{Var: "joined", Receiver: "row", Method: "ConcatDropRightOn", Args: []string{"match"}},
				actionir.Invoke{Receiver: "self", Method: g.methodName("Insert", parentStorage), Args: []string{"joined"}},
			}},
			actionir.Invoke{Receiver: ownIndex, Method: "InsertInto", Args: []string{"proj", "row"}},
		}},
		actionir.Method{Name: deleteName, Params: []string{"row"}, Body: []actionir.Action{
			actionir.Invoke{Var: "proj", Receiver: "row", Method: "Project", Args: []string{"on"}},
			actionir.Invoke{Receiver: ownIndex, Method: "DeleteFrom", Args: []string{"proj", "row"}},
			actionir.ContainerIterate{Container: otherIndex, LoopVar: "match", Body: []actionir.Action{
				actionir.Invoke{Var: "joined", Receiver: "row", Method: "ConcatDropRightOn", Args: []string{"match"}},
				actionir.Invoke{Receiver: "self", Method: g.methodName("Delete", parentStorage), Args: []string{"joined"}},
			}},
		}},
	)
}
