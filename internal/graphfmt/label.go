// Package graphfmt renders a built context graph as text, DOT or a msgpack
// snapshot.
package graphfmt

import (
	"fmt"
	"strings"

	"ctxgraph/internal/builtins"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/graph"
)

// Label is a one-line description of node id.
func Label(g *graph.Graph, reg *builtins.Registry, id graph.NodeID) string {
	switch n := g.Node(id).(type) {
	case *ctxir.SourceUnit:
		return n.Path
	case *ctxir.Contract:
		return "contract " + n.Name
	case *ctxir.Function:
		if n.Builtin {
			return "builtin " + n.Name
		}
		return "function " + n.Name
	case *ctxir.FunctionParam:
		return slotLabel("param", n.Index, n.Name, n.TypeName)
	case *ctxir.FunctionReturn:
		return slotLabel("return", n.Index, n.Name, n.TypeName)
	case *ctxir.Context:
		if n.Unchecked {
			return "scope (unchecked)"
		}
		return "scope"
	case *ctxir.ContextVar:
		var sb strings.Builder
		sb.WriteString(n.Name)
		if n.Tmp && n.Display != "" {
			sb.WriteString(" = " + n.Display)
		}
		if t := typeName(reg, n.Type); t != "" {
			sb.WriteString(": " + t)
		}
		sb.WriteString(" " + n.Range.String())
		return sb.String()
	case *builtins.Node:
		return n.Name
	case nil:
		return "<missing>"
	default:
		return n.Kind().String()
	}
}

func slotLabel(what string, idx int, name, typ string) string {
	if name == "" {
		name = "_"
	}
	if typ == "" {
		return fmt.Sprintf("%s %d %s", what, idx, name)
	}
	return fmt.Sprintf("%s %d %s: %s", what, idx, name, typ)
}

func typeName(reg *builtins.Registry, id graph.NodeID) string {
	if reg == nil {
		return ""
	}
	if n, ok := reg.Get(id); ok {
		return n.Name
	}
	return ""
}
