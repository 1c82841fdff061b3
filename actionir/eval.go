package actionir

import (
	"fmt"

	"github.com/relsynth/relsynth/relalg"
	"github.com/relsynth/relsynth/relerr"
)

// Predicates binds the external predicate objects an emitted Select
// propagation method invokes by the fixed receiver name "pred" (see
// codegen's emitSelectPropagation): the evaluator has no notion of
// relalg.Predicate itself, so the caller supplies the same predicate
// the DataStructure was compiled against, keyed by that receiver name.
type Predicates map[string]func(relalg.Row) (bool, error)

// hashSet is a true set of rows: reinsertion is a no-op.
type hashSet struct {
	rows map[string]relalg.Row
}

func newHashSet() *hashSet { return &hashSet{rows: make(map[string]relalg.Row)} }

func (s *hashSet) insert(r relalg.Row)        { s.rows[rowKey(r)] = r }
func (s *hashSet) delete(r relalg.Row)        { delete(s.rows, rowKey(r)) }
func (s *hashSet) contains(r relalg.Row) bool { _, ok := s.rows[rowKey(r)]; return ok }

func (s *hashSet) all() []relalg.Row {
	out := make([]relalg.Row, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out
}

// bag is a reference-counted multiset: delete floors the count at
// zero and drops the entry once it reaches zero, matching
// ContainerDelete's documented Bag semantics.
type bag struct {
	rows   map[string]relalg.Row
	counts map[string]int
}

func newBag() *bag { return &bag{rows: make(map[string]relalg.Row), counts: make(map[string]int)} }

func (b *bag) insert(r relalg.Row) {
	k := rowKey(r)
	b.rows[k] = r
	b.counts[k]++
}

func (b *bag) delete(r relalg.Row) {
	k := rowKey(r)
	if b.counts[k] <= 0 {
		return
	}
	b.counts[k]--
	if b.counts[k] == 0 {
		delete(b.counts, k)
		delete(b.rows, k)
	}
}

func (b *bag) contains(r relalg.Row) bool { return b.counts[rowKey(r)] > 0 }

func (b *bag) all() []relalg.Row {
	out := make([]relalg.Row, 0, len(b.rows))
	for _, r := range b.rows {
		out = append(out, r)
	}
	return out
}

func rowKey(r relalg.Row) string {
	s := ""
	for i, v := range r {
		if i > 0 {
			s += "|"
		}
		s += fmt.Sprint(v)
	}
	return s
}

// Evaluator executes a compiled DataStructure's methods directly,
// without going through render/golang: the reference "runtime" that
// spec.md §8's Equivalence-to-reference property is checked against on
// the generated side, the way interp.Interpreter is checked against on
// the algebraic side. It supports every node kind whose maintenance
// recipe only touches HashSet/Bag containers and self-Invokes — Ref,
// Union, Difference, Select, View — which is everything codegen emits
// outside Join/Semijoin/Map. Those three propagate through Invoke
// receivers ("row", a support index, a Function) that codegen never
// binds to a Member, so render/golang can't execute them either; see
// DESIGN.md.
type Evaluator struct {
	methods map[string]*Method
	sets    map[string]*hashSet
	bags    map[string]*bag
	preds   Predicates
}

// NewEvaluator allocates zeroed storage for every Member of ds and
// returns an Evaluator ready to run its Methods. preds supplies the
// external predicate bindings a Select propagation method invokes by
// name; nil is fine for a DataStructure with no Select node.
func NewEvaluator(ds *DataStructure, preds Predicates) (*Evaluator, error) {
	e := &Evaluator{
		methods: make(map[string]*Method, len(ds.Methods)),
		sets:    make(map[string]*hashSet),
		bags:    make(map[string]*bag),
		preds:   preds,
	}
	for i := range ds.Methods {
		m := &ds.Methods[i]
		e.methods[m.Name] = m
	}
	for _, mem := range ds.Members {
		switch mem.Kind {
		case ContainerKindHashSet:
			e.sets[mem.Name] = newHashSet()
		case ContainerKindBag:
			e.bags[mem.Name] = newBag()
		default:
			return nil, relerr.NotImplemented("actionir", "evaluator has no runtime container for kind %v (member %s)", mem.Kind, mem.Name)
		}
	}
	return e, nil
}

// Call invokes the method named name with the given positional
// arguments, one per the method's declared Params.
func (e *Evaluator) Call(name string, args ...any) (any, error) {
	m, ok := e.methods[name]
	if !ok {
		return nil, relerr.Internal("actionir", "no method named %s", name)
	}
	if len(args) != len(m.Params) {
		return nil, relerr.Internal("actionir", "method %s wants %d args, got %d", name, len(m.Params), len(args))
	}
	env := make(map[string]any, len(m.Params))
	for i, p := range m.Params {
		env[p] = args[i]
	}
	return e.run(m.Body, env)
}

// Rows returns every row currently stored in the named container
// member, regardless of whether it is a HashSet or a Bag.
func (e *Evaluator) Rows(member string) ([]relalg.Row, error) {
	if s, ok := e.sets[member]; ok {
		return s.all(), nil
	}
	if b, ok := e.bags[member]; ok {
		return b.all(), nil
	}
	return nil, relerr.Internal("actionir", "no such container member %s", member)
}

func (e *Evaluator) run(body []Action, env map[string]any) (any, error) {
	var last any
	for _, a := range body {
		v, err := e.exec(a, env)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// lookup resolves a variable name against env, falling back to the
// boolean literals true/false for names that are never bound by an
// AssignConstant — generated Go code spells IfEqual's operands as bare
// identifiers (see render/golang), and "true"/"false" are exactly the
// two identifiers Go itself predeclares, which is what IfEqual{Right:
// "true"} after a ContainerContains/predicate Invoke relies on.
func lookup(env map[string]any, name string) (any, error) {
	if v, ok := env[name]; ok {
		return v, nil
	}
	switch name {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return nil, relerr.Internal("actionir", "unbound variable %q", name)
}

func (e *Evaluator) exec(a Action, env map[string]any) (any, error) {
	switch v := a.(type) {
	case AssignConstant:
		env[v.Var] = v.Value
		return v.Value, nil

	case ConstructRow:
		row := make(relalg.Row, len(v.Columns))
		for i, c := range v.Columns {
			val, err := lookup(env, c)
			if err != nil {
				return nil, err
			}
			row[i] = val
		}
		env[v.Var] = row
		return row, nil

	case IndexRow:
		row, err := e.rowArg(env, v.Row)
		if err != nil {
			return nil, err
		}
		if v.Index < 0 || v.Index >= len(row) {
			return nil, relerr.Internal("actionir", "column %d out of range for row of arity %d", v.Index, len(row))
		}
		env[v.Var] = row[v.Index]
		return row[v.Index], nil

	case Invoke:
		args := make([]any, len(v.Args))
		for i, name := range v.Args {
			val, err := lookup(env, name)
			if err != nil {
				return nil, err
			}
			args[i] = val
		}
		result, err := e.invoke(v.Receiver, v.Method, args)
		if err != nil {
			return nil, err
		}
		if v.Var != "" {
			env[v.Var] = result
		}
		return result, nil

	case IfEqual:
		l, err := lookup(env, v.Left)
		if err != nil {
			return nil, err
		}
		r, err := lookup(env, v.Right)
		if err != nil {
			return nil, err
		}
		if l == r {
			return e.run(v.Then, env)
		}
		return e.run(v.Else, env)

	case ContainerCreate:
		switch v.Kind_ {
		case ContainerKindHashSet:
			e.sets[v.Container] = newHashSet()
		case ContainerKindBag:
			e.bags[v.Container] = newBag()
		default:
			return nil, relerr.NotImplemented("actionir", "evaluator cannot create container kind %v", v.Kind_)
		}
		return nil, nil

	case ContainerInsert:
		row, err := e.rowArg(env, v.Value)
		if err != nil {
			return nil, err
		}
		return nil, e.containerInsert(v.Container, row)

	case ContainerDelete:
		row, err := e.rowArg(env, v.Value)
		if err != nil {
			return nil, err
		}
		return nil, e.containerDelete(v.Container, row)

	case ContainerIterate:
		rows, err := e.Rows(v.Container)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			loopEnv := make(map[string]any, len(env)+1)
			for k, val := range env {
				loopEnv[k] = val
			}
			loopEnv[v.LoopVar] = r
			if _, err := e.run(v.Body, loopEnv); err != nil {
				return nil, err
			}
		}
		return nil, nil

	case ContainerContains:
		row, err := e.rowArg(env, v.Value)
		if err != nil {
			return nil, err
		}
		ok, err := e.containerContains(v.Container, row)
		if err != nil {
			return nil, err
		}
		env[v.Var] = ok
		return ok, nil

	default:
		return nil, relerr.Internal("actionir", "evaluator has no case for action kind %T", a)
	}
}

func (e *Evaluator) rowArg(env map[string]any, name string) (relalg.Row, error) {
	v, err := lookup(env, name)
	if err != nil {
		return nil, err
	}
	row, ok := v.(relalg.Row)
	if !ok {
		return nil, relerr.Internal("actionir", "%s is not a row", name)
	}
	return row, nil
}

func (e *Evaluator) containerInsert(name string, row relalg.Row) error {
	if s, ok := e.sets[name]; ok {
		s.insert(row)
		return nil
	}
	if b, ok := e.bags[name]; ok {
		b.insert(row)
		return nil
	}
	return relerr.Internal("actionir", "no such container member %s", name)
}

func (e *Evaluator) containerDelete(name string, row relalg.Row) error {
	if s, ok := e.sets[name]; ok {
		s.delete(row)
		return nil
	}
	if b, ok := e.bags[name]; ok {
		b.delete(row)
		return nil
	}
	return relerr.Internal("actionir", "no such container member %s", name)
}

func (e *Evaluator) containerContains(name string, row relalg.Row) (bool, error) {
	if s, ok := e.sets[name]; ok {
		return s.contains(row), nil
	}
	if b, ok := e.bags[name]; ok {
		return b.contains(row), nil
	}
	return false, relerr.Internal("actionir", "no such container member %s", name)
}

func (e *Evaluator) invoke(receiver, method string, args []any) (any, error) {
	if receiver == "self" {
		return e.Call(method, args...)
	}
	if fn, ok := e.preds[receiver]; ok && method == "Eval" {
		row, ok := args[0].(relalg.Row)
		if !ok {
			return nil, relerr.Internal("actionir", "predicate arg is not a row")
		}
		return fn(row)
	}
	return nil, relerr.NotImplemented("actionir", "evaluator has no binding for %s.%s — Join/Semijoin support-index and Map-function invokes are outside its scope", receiver, method)
}
