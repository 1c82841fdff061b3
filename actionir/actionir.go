// Package actionir implements the Action IR: the small imperative
// target language the incremental code generator emits into, and the
// Member/Method/DataStructure shapes that describe a complete generated
// data structure. Rendering Action IR into a concrete target language's
// text is deliberately out of this package's scope — see render/golang
// for the one concrete backend relsynth ships.
package actionir

import "github.com/relsynth/relsynth/relalg"

// ActionKind discriminates the concrete Action variants.
type ActionKind int

const (
	ActionKindAssignConstant ActionKind = iota
	ActionKindConstructRow
	ActionKindIndexRow
	ActionKindInvoke
	ActionKindIfEqual
	ActionKindContainerCreate
	ActionKindContainerInsert
	ActionKindContainerDelete
	ActionKindContainerIterate
	ActionKindContainerContains
)

// Action is one statement of the Action IR.
type Action interface {
	Kind() ActionKind
}

// AssignConstant binds Var to a literal Value.
type AssignConstant struct {
	Var   string
	Value any
}

func (AssignConstant) Kind() ActionKind { return ActionKindAssignConstant }

// ConstructRow builds a row named Var out of the named variables in
// Columns, in order.
type ConstructRow struct {
	Var     string
	Columns []string
}

func (ConstructRow) Kind() ActionKind { return ActionKindConstructRow }

// IndexRow binds Var to column Index of the row named Row.
type IndexRow struct {
	Var   string
	Row   string
	Index int
}

func (IndexRow) Kind() ActionKind { return ActionKindIndexRow }

// Invoke calls Method on Receiver with Args, optionally binding the
// result to Var (empty Var means the result, if any, is discarded).
type Invoke struct {
	Var      string
	Receiver string
	Method   string
	Args     []string
}

func (Invoke) Kind() ActionKind { return ActionKindInvoke }

// IfEqual branches on whether the named variables Left and Right are
// equal, the only conditional primitive the Action IR exposes (per
// spec.md's "conditional-on-equality" primitive).
type IfEqual struct {
	Left, Right string
	Then, Else  []Action
}

func (IfEqual) Kind() ActionKind { return ActionKindIfEqual }

// ContainerKind discriminates the four container shapes the Action IR
// can declare and operate on.
type ContainerKind int

const (
	ContainerKindHashSet ContainerKind = iota
	ContainerKindHashMap
	ContainerKindBag
	ContainerKindTrie
)

// ContainerCreate declares and zero-initializes a container member
// named Container of the given Kind and element/value Type.
type ContainerCreate struct {
	Container string
	Kind_     ContainerKind
	Type      relalg.Type
}

func (ContainerCreate) Kind() ActionKind { return ActionKindContainerCreate }

// ContainerInsert inserts the row named Value into Container. For a Bag
// container this increments Value's reference count; for a HashSet it
// is idempotent.
type ContainerInsert struct {
	Container string
	Value     string
}

func (ContainerInsert) Kind() ActionKind { return ActionKindContainerInsert }

// ContainerDelete removes the row named Value from Container. For a Bag
// container this decrements Value's reference count, floored at zero
// (removing the entry once the count reaches zero); for a HashSet it
// is a plain removal.
type ContainerDelete struct {
	Container string
	Value     string
}

func (ContainerDelete) Kind() ActionKind { return ActionKindContainerDelete }

// ContainerIterate runs Body once per element of Container, binding
// each element to LoopVar.
type ContainerIterate struct {
	Container string
	LoopVar   string
	Body      []Action
}

func (ContainerIterate) Kind() ActionKind { return ActionKindContainerIterate }

// ContainerContains binds Var to whether Value is currently a member of
// Container (count > 0, for a Bag).
type ContainerContains struct {
	Var       string
	Container string
	Value     string
}

func (ContainerContains) Kind() ActionKind { return ActionKindContainerContains }

// Member is one field of a generated DataStructure: a named container.
type Member struct {
	Name string
	Kind ContainerKind
	Type relalg.Type
}

// Method is one maintenance or query procedure of a generated
// DataStructure: a name, its parameter names, and its body.
type Method struct {
	Name   string
	Params []string
	Body   []Action
}

// DataStructure is the complete output of the incremental code
// generator for one compiled Relation: its storage members and the
// insert/delete/query methods that maintain them.
type DataStructure struct {
	Name    string
	Members []Member
	Methods []Method
}
