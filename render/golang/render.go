// Package golang is relsynth's one concrete rendering backend: it turns
// an actionir.DataStructure into real, gofmt-clean Go source text using
// jennifer, the same code-generation library the teacher repo's own
// generator pipeline is built on. The core compiler has no dependency
// on this package — spec.md treats textual rendering as an out-of-scope,
// pluggable concern, and this is the one instance relsynth ships.
package golang

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/relsynth/relsynth/actionir"
	"github.com/relsynth/relsynth/internal/naming"
	"github.com/relsynth/relsynth/relerr"
)

// Render renders ds as a single Go source file defining a struct named
// naming.GoIdent(ds.Name) with one field per Member and one method per
// Method.
func Render(packageName string, ds *actionir.DataStructure) (string, error) {
	f := jen.NewFile(packageName)
	f.HeaderComment(fmt.Sprintf("Code generated for %s. DO NOT EDIT.", ds.Name))

	structName := naming.GoIdent(ds.Name)
	fields := make([]jen.Code, 0, len(ds.Members))
	for _, m := range ds.Members {
		fields = append(fields, jen.Id(naming.GoIdent(m.Name)).Add(containerType(m)))
	}
	f.Type().Id(structName).Struct(fields...)

	for _, m := range ds.Methods {
		stmt, err := renderMethod(structName, m)
		if err != nil {
			return "", err
		}
		f.Add(stmt)
	}

	formatted, err := imports.Process("", []byte(f.GoString()), nil)
	if err != nil {
		return "", relerr.Wrap(relerr.KindInternal, "render/golang", "formatting generated source", err)
	}
	return string(formatted), nil
}

func containerType(m actionir.Member) jen.Code {
	switch m.Kind {
	case actionir.ContainerKindHashSet:
		return jen.Map(jen.Any()).Struct()
	case actionir.ContainerKindBag:
		return jen.Map(jen.Any()).Int()
	case actionir.ContainerKindHashMap:
		return jen.Map(jen.Any()).Any()
	case actionir.ContainerKindTrie:
		return jen.Map(jen.Any()).Any()
	default:
		return jen.Any()
	}
}

func renderMethod(structName string, m actionir.Method) (*jen.Statement, error) {
	params := make([]jen.Code, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, jen.Id(p).Any())
	}
	body, err := renderActions(m.Body)
	if err != nil {
		return nil, err
	}
	return jen.Func().Params(jen.Id("ds").Op("*").Id(structName)).Id(naming.GoIdent(m.Name)).
		Params(params...).Block(body...), nil
}

func renderActions(actions []actionir.Action) ([]jen.Code, error) {
	out := make([]jen.Code, 0, len(actions))
	for _, a := range actions {
		stmt, err := renderAction(a)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func renderAction(a actionir.Action) (jen.Code, error) {
	switch v := a.(type) {
	case actionir.AssignConstant:
		return jen.Id(v.Var).Op(":=").Lit(v.Value), nil
	case actionir.ConstructRow:
		args := make([]jen.Code, 0, len(v.Columns))
		for _, c := range v.Columns {
			args = append(args, jen.Id(c))
		}
		return jen.Id(v.Var).Op(":=").Index().Any().Values(args...), nil
	case actionir.IndexRow:
		return jen.Id(v.Var).Op(":=").Id(v.Row).Index(jen.Lit(v.Index)), nil
	case actionir.Invoke:
		call := jen.Id("ds").Dot(v.Receiver).Dot(v.Method).Call(idList(v.Args)...)
		if v.Var == "" {
			return call, nil
		}
		return jen.Id(v.Var).Op(":=").Add(call), nil
	case actionir.IfEqual:
		thenBlock, err := renderActions(v.Then)
		if err != nil {
			return nil, err
		}
		elseBlock, err := renderActions(v.Else)
		if err != nil {
			return nil, err
		}
		stmt := jen.If(jen.Id(v.Left).Op("==").Id(v.Right)).Block(thenBlock...)
		if len(elseBlock) > 0 {
			stmt = stmt.Else().Block(elseBlock...)
		}
		return stmt, nil
	case actionir.ContainerCreate:
		return jen.Id("ds").Dot(naming.GoIdent(v.Container)).Op("=").Make(containerTypeOf(v.Kind_)), nil
	case actionir.ContainerInsert:
		return jen.Id("ds").Dot(naming.GoIdent(v.Container)).Index(jen.Id(v.Value)).Op("++"), nil
	case actionir.ContainerDelete:
		return jen.Id("ds").Dot(naming.GoIdent(v.Container)).Index(jen.Id(v.Value)).Op("--"), nil
	case actionir.ContainerIterate:
		body, err := renderActions(v.Body)
		if err != nil {
			return nil, err
		}
		return jen.For(jen.Id(v.LoopVar).Op(":=").Range().Id("ds").Dot(naming.GoIdent(v.Container))).Block(body...), nil
	case actionir.ContainerContains:
		return jen.List(jen.Id("_"), jen.Id(v.Var)).Op(":=").Id("ds").Dot(naming.GoIdent(v.Container)).Index(jen.Id(v.Value)), nil
	default:
		return nil, relerr.Internal("render/golang", "unknown action kind %T", a)
	}
}

func containerTypeOf(kind actionir.ContainerKind) jen.Code {
	switch kind {
	case actionir.ContainerKindHashSet:
		return jen.Map(jen.Any()).Struct()
	case actionir.ContainerKindBag:
		return jen.Map(jen.Any()).Int()
	default:
		return jen.Map(jen.Any()).Any()
	}
}

func idList(names []string) []jen.Code {
	out := make([]jen.Code, 0, len(names))
	for _, n := range names {
		out = append(out, jen.Id(n))
	}
	return out
}
