package graphfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"ctxgraph/internal/analyzer"
	"ctxgraph/internal/graph"
)

var dotShapes = map[graph.NodeKind]string{
	graph.KindSourceUnit:     "folder",
	graph.KindContract:       "component",
	graph.KindFunction:       "box",
	graph.KindFunctionParam:  "note",
	graph.KindFunctionReturn: "note",
	graph.KindContext:        "box3d",
	graph.KindContextVar:     "ellipse",
	graph.KindBuiltin:        "plaintext",
}

// edges drawn dashed: history and declarations
var dotDashed = map[graph.EdgeKind]bool{
	graph.EdgePrev:           true,
	graph.EdgeFunctionParam:  true,
	graph.EdgeFunctionReturn: true,
}

// DOT writes the graph in Graphviz format. Tainted nodes are filled red.
func DOT(w io.Writer, res *analyzer.Result, name string) error {
	g := res.Graph
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", strconv.Quote(name))
	sb.WriteString("  node [fontname=\"monospace\" fontsize=10];\n")
	sb.WriteString("  edge [fontname=\"monospace\" fontsize=8];\n")

	for id, n := range g.Nodes {
		shape := dotShapes[n.Kind()]
		if shape == "" {
			shape = "ellipse"
		}
		fmt.Fprintf(&sb, "  n%d [shape=%s label=%s", id, shape, strconv.Quote(Label(g, res.Registry, id)))
		if res.Tainted(id) {
			sb.WriteString(" style=filled fillcolor=\"#f4cccc\"")
		}
		sb.WriteString("];\n")
	}
	for _, e := range g.AllEdges() {
		fmt.Fprintf(&sb, "  n%d -> n%d [label=%s", e.From, e.To, strconv.Quote(e.Kind.String()))
		if dotDashed[e.Kind] {
			sb.WriteString(" style=dashed")
		}
		sb.WriteString("];\n")
	}
	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
