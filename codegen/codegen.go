// Package codegen implements the incremental code generator: a
// bottom-up, memoized walk over a Relation DAG that allocates per-node
// storage plus insert/delete maintenance methods, emitting an
// actionir.DataStructure. It resolves the uniform deletion policy
// described in SPEC_FULL.md §4.8: every base Ref is stored as a true
// HashSet, every derived node as a reference-counted Bag, and
// Semijoin/Join additionally carry auxiliary witness/support indices
// so deletions can be propagated without rescanning their inputs.
package codegen

import (
	"fmt"

	"github.com/relsynth/relsynth/actionir"
	"github.com/relsynth/relsynth/names"
	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/relerr"
)

// OperandSlot names which operand position a node occupies within its
// consumer (Left/Right for the binary operators, Input for the unary
// ones).
type OperandSlot int

const (
	SlotInput OperandSlot = iota
	SlotLeft
	SlotRight
)

type consumerEdge struct {
	parent relalg.Relation
	slot   OperandSlot
}

// Codegen compiles a single Relation DAG into an actionir.DataStructure.
type Codegen struct {
	env   *relalg.TypeEnv
	names *names.Source

	// tableRelations maps every base Ref encountered to its storage
	// member name — the public insertion points of the generated data
	// structure.
	tableRelations map[*relalg.RelationRef]string
	// viewRelations maps every non-Ref node to its storage member name.
	viewRelations map[relalg.Relation]string
	supportNames  map[relalg.Relation]map[string]string

	consumers map[relalg.Relation][]consumerEdge
	order     []relalg.Relation
	seen      map[relalg.Relation]bool

	ds *actionir.DataStructure
}

// New returns a Codegen that will name its output DataStructure
// dsName and mint fresh internal names from ns.
func New(env *relalg.TypeEnv, ns *names.Source, dsName string) *Codegen {
	return &Codegen{
		env:            env,
		names:          ns,
		tableRelations: make(map[*relalg.RelationRef]string),
		viewRelations:  make(map[relalg.Relation]string),
		supportNames:   make(map[relalg.Relation]map[string]string),
		consumers:      make(map[relalg.Relation][]consumerEdge),
		seen:           make(map[relalg.Relation]bool),
		ds:             &actionir.DataStructure{Name: dsName},
	}
}

// Compile generates storage and maintenance methods for every node
// reachable from root and returns the finished DataStructure.
func (g *Codegen) Compile(root relalg.Relation) (*actionir.DataStructure, error) {
	g.collectConsumers(root, nil, SlotInput)
	g.topoSort(root)

	for _, n := range g.order {
		if err := g.emitStorage(n); err != nil {
			return nil, err
		}
	}
	for _, n := range g.order {
		if err := g.emitMaintenance(n); err != nil {
			return nil, err
		}
	}
	return g.ds, nil
}

// collectConsumers walks the DAG from root, recording for every node
// which parent(s) consume it and in which operand slot, so maintenance
// code can later cascade a child's delta into every consumer without a
// second traversal.
func (g *Codegen) collectConsumers(r relalg.Relation, parent relalg.Relation, slot OperandSlot) {
	if parent != nil {
		g.consumers[r] = append(g.consumers[r], consumerEdge{parent: parent, slot: slot})
	}
	switch n := r.(type) {
	case *relalg.RelationRef:
		return
	case *relalg.RelationNot:
		g.collectConsumers(n.Input, r, SlotInput)
	case *relalg.RelationJoin:
		g.collectConsumers(n.Left, r, SlotLeft)
		g.collectConsumers(n.Right, r, SlotRight)
	case *relalg.RelationSemijoin:
		g.collectConsumers(n.Left, r, SlotLeft)
		g.collectConsumers(n.Right, r, SlotRight)
	case *relalg.RelationUnion:
		g.collectConsumers(n.Left, r, SlotLeft)
		g.collectConsumers(n.Right, r, SlotRight)
	case *relalg.RelationDifference:
		g.collectConsumers(n.Left, r, SlotLeft)
		g.collectConsumers(n.Right, r, SlotRight)
	case *relalg.RelationSelect:
		g.collectConsumers(n.Input, r, SlotInput)
	case *relalg.RelationMap:
		g.collectConsumers(n.Input, r, SlotInput)
	case *relalg.RelationView:
		g.collectConsumers(n.Input, r, SlotInput)
	}
}

// topoSort produces a deduplicated post-order (children before
// parents) traversal of the DAG reachable from root.
func (g *Codegen) topoSort(r relalg.Relation) {
	if g.seen[r] {
		return
	}
	g.seen[r] = true
	switch n := r.(type) {
	case *relalg.RelationRef:
	case *relalg.RelationNot:
		g.topoSort(n.Input)
	case *relalg.RelationJoin:
		g.topoSort(n.Left)
		g.topoSort(n.Right)
	case *relalg.RelationSemijoin:
		g.topoSort(n.Left)
		g.topoSort(n.Right)
	case *relalg.RelationUnion:
		g.topoSort(n.Left)
		g.topoSort(n.Right)
	case *relalg.RelationDifference:
		g.topoSort(n.Left)
		g.topoSort(n.Right)
	case *relalg.RelationSelect:
		g.topoSort(n.Input)
	case *relalg.RelationMap:
		g.topoSort(n.Input)
	case *relalg.RelationView:
		g.topoSort(n.Input)
	}
	g.order = append(g.order, r)
}

// StorageName returns the storage member name Compile allocated for r.
// Exported for drivers (including tests) that need to find a node's
// insert/delete/propagation method names after compilation, the way a
// real caller of the generated structure would.
func (g *Codegen) StorageName(r relalg.Relation) (string, error) {
	return g.storageName(r)
}

// ConsumerEdge is the exported form of consumerEdge: enough for a
// driver to name the propagation method a node's consumer expects.
type ConsumerEdge struct {
	ParentStorage string
	Slot          OperandSlot
}

// ConsumerEdges returns, for node r, the storage name and operand slot
// of every consumer Compile recorded while walking the DAG — the
// information a driver needs to find which On<Slot><Op>_<parentStorage>
// method to invoke next when propagating a delta on r.
func (g *Codegen) ConsumerEdges(r relalg.Relation) ([]ConsumerEdge, error) {
	edges := g.consumers[r]
	out := make([]ConsumerEdge, 0, len(edges))
	for _, e := range edges {
		parentStorage, err := g.storageName(e.parent)
		if err != nil {
			return nil, err
		}
		out = append(out, ConsumerEdge{ParentStorage: parentStorage, Slot: e.slot})
	}
	return out, nil
}

// OnMethodName returns the name Compile gave the propagation method
// that parentStorage's consumer in slot reacts to op ("Insert" or
// "Delete") with.
func (g *Codegen) OnMethodName(parentStorage string, slot OperandSlot, op string) string {
	return g.onMethodName(parentStorage, slot, op)
}

// MethodName returns the name Compile gave storage's local mutation
// method for op ("Insert" or "Delete").
func (g *Codegen) MethodName(op, storage string) string {
	return g.methodName(op, storage)
}

func (g *Codegen) storageName(r relalg.Relation) (string, error) {
	if ref, ok := r.(*relalg.RelationRef); ok {
		if name, ok := g.tableRelations[ref]; ok {
			return name, nil
		}
		return "", relerr.Internal("codegen", "storage requested before it was emitted for %s", r)
	}
	if name, ok := g.viewRelations[r]; ok {
		return name, nil
	}
	return "", relerr.Internal("codegen", "storage requested before it was emitted for %s", r)
}

func (g *Codegen) elemType(r relalg.Relation) (relalg.Type, error) {
	return g.env.Lookup(r)
}

func (g *Codegen) methodName(prefix, storage string) string {
	return fmt.Sprintf("%s_%s", prefix, storage)
}

func (g *Codegen) onMethodName(parentStorage string, slot OperandSlot, op string) string {
	slotName := map[OperandSlot]string{SlotInput: "Input", SlotLeft: "Left", SlotRight: "Right"}[slot]
	return fmt.Sprintf("On%s%s_%s", slotName, op, parentStorage)
}

