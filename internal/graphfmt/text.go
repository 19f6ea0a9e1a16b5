package graphfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ctxgraph/internal/analyzer"
	"ctxgraph/internal/graph"
)

type TextOpts struct {
	Color bool
	// Edges lists outgoing edges under every node.
	Edges bool
}

var kindColors = map[graph.NodeKind]color.Attribute{
	graph.KindSourceUnit:     color.FgMagenta,
	graph.KindContract:       color.FgMagenta,
	graph.KindFunction:       color.FgBlue,
	graph.KindFunctionParam:  color.FgCyan,
	graph.KindFunctionReturn: color.FgCyan,
	graph.KindContext:        color.FgYellow,
	graph.KindContextVar:     color.FgGreen,
	graph.KindBuiltin:        color.FgWhite,
}

func colorer(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Text writes one line per node in id order. Nodes of failed function
// passes are marked "tainted".
func Text(w io.Writer, res *analyzer.Result, opts TextOpts) error {
	g := res.Graph
	faint := colorer(opts.Color, color.Faint)
	bad := colorer(opts.Color, color.FgRed, color.Bold)
	kinds := make(map[graph.NodeKind]*color.Color, len(kindColors))
	for k, attr := range kindColors {
		kinds[k] = colorer(opts.Color, attr)
	}

	var sb strings.Builder
	for id, n := range g.Nodes {
		kind := n.Kind()
		kc := kinds[kind]
		if kc == nil {
			kc = faint
		}
		fmt.Fprintf(&sb, "%s %s %s", faint.Sprintf("#%d", id), kc.Sprintf("%-14s", kind), Label(g, res.Registry, id))
		if res.Tainted(id) {
			sb.WriteString(" " + bad.Sprint("tainted"))
		}
		sb.WriteByte('\n')

		if !opts.Edges {
			continue
		}
		for _, e := range g.Edges(id, graph.Outgoing, graph.AnyEdge) {
			fmt.Fprintf(&sb, "    %s %s\n", faint.Sprintf("-%s->", e.Kind), faint.Sprintf("#%d", e.To))
		}
	}
	for _, p := range res.Failed() {
		fmt.Fprintf(&sb, "%s function %s: %v\n", bad.Sprint("failed"), p.Name, p.Err)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
