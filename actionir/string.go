package actionir

import (
	"fmt"
	"strings"
)

// String renders a, indented, in a language-agnostic debug form, in
// the same spirit as the original AST's ToCpp pretty-printer but
// without committing to any concrete target language — purely for
// logs and test failure messages.
func String(a Action) string {
	return indent(a, 0)
}

func indent(a Action, depth int) string {
	pad := strings.Repeat("  ", depth)
	switch v := a.(type) {
	case AssignConstant:
		return fmt.Sprintf("%s%s := %v", pad, v.Var, v.Value)
	case ConstructRow:
		return fmt.Sprintf("%s%s := Row(%s)", pad, v.Var, strings.Join(v.Columns, ", "))
	case IndexRow:
		return fmt.Sprintf("%s%s := %s[%d]", pad, v.Var, v.Row, v.Index)
	case Invoke:
		return fmt.Sprintf("%s%s%s.%s(%s)", pad, assignPrefix(v.Var), v.Receiver, v.Method, strings.Join(v.Args, ", "))
	case IfEqual:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%sif %s == %s {\n", pad, v.Left, v.Right)
		for _, t := range v.Then {
			sb.WriteString(indent(t, depth+1))
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s} else {\n", pad)
		for _, e := range v.Else {
			sb.WriteString(indent(e, depth+1))
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s}", pad)
		return sb.String()
	case ContainerCreate:
		return fmt.Sprintf("%screate %s: %s", pad, v.Container, v.Type)
	case ContainerInsert:
		return fmt.Sprintf("%s%s.insert(%s)", pad, v.Container, v.Value)
	case ContainerDelete:
		return fmt.Sprintf("%s%s.delete(%s)", pad, v.Container, v.Value)
	case ContainerIterate:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%sfor %s in %s {\n", pad, v.LoopVar, v.Container)
		for _, b := range v.Body {
			sb.WriteString(indent(b, depth+1))
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s}", pad)
		return sb.String()
	case ContainerContains:
		return fmt.Sprintf("%s%s := %s.contains(%s)", pad, v.Var, v.Container, v.Value)
	default:
		return fmt.Sprintf("%s<unknown action %T>", pad, a)
	}
}

func assignPrefix(v string) string {
	if v == "" {
		return ""
	}
	return v + " := "
}

// String renders ds as an indented outline of its members and methods.
func (ds DataStructure) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DataStructure %s {\n", ds.Name)
	for _, m := range ds.Members {
		fmt.Fprintf(&sb, "  %s: %s\n", m.Name, m.Type)
	}
	for _, m := range ds.Methods {
		fmt.Fprintf(&sb, "  func %s(%s) {\n", m.Name, strings.Join(m.Params, ", "))
		for _, a := range m.Body {
			sb.WriteString(indent(a, 2))
			sb.WriteString("\n")
		}
		sb.WriteString("  }\n")
	}
	sb.WriteString("}")
	return sb.String()
}
