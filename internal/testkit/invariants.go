// Package testkit holds structural checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ctxgraph/internal/ast"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span lies within the file content
// 2) every item span is non-empty and fully contained in file.Span
// 3) file.Span covers the union of item spans
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.File(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}

	var union source.Span
	var haveItem bool
	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.Empty() {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if !f.Span.Contains(sp) {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		if !haveItem {
			union = sp
			haveItem = true
		} else {
			union = union.Cover(sp)
		}
	}
	if haveItem && !f.Span.Contains(union) {
		return fmt.Errorf("file span %v does not cover union of items %v", f.Span, union)
	}
	return nil
}

// CheckGraphInvariants verifies the shape a build must leave behind:
// 1) every Context hangs off exactly one function or parent scope
// 2) Prev edges join versions of the same variable, at most one each way
// 3) following Prev from any version ends without revisiting a node
func CheckGraphInvariants(g *graph.Graph) error {
	for id, n := range g.Nodes {
		switch n := n.(type) {
		case *ctxir.Context:
			owners := len(g.Targets(id, graph.EdgeContext)) + len(g.Targets(id, graph.EdgeSubcontext))
			if owners != 1 {
				return fmt.Errorf("context #%d has %d owners", id, owners)
			}
		case *ctxir.ContextVar:
			prev := g.Targets(id, graph.EdgePrev)
			next := g.Sources(id, graph.EdgePrev)
			if len(prev) > 1 || len(next) > 1 {
				return fmt.Errorf("var #%d has %d previous and %d next versions", id, len(prev), len(next))
			}
			if len(prev) == 1 {
				p, ok := g.Node(prev[0]).(*ctxir.ContextVar)
				if !ok {
					return fmt.Errorf("var #%d: Prev points at %s #%d", id, g.Kind(prev[0]), prev[0])
				}
				if p.Name != n.Name {
					return fmt.Errorf("var #%d (%s) follows #%d (%s)", id, n.Name, prev[0], p.Name)
				}
			}
			if err := checkHistory(g, id); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkHistory(g *graph.Graph, start graph.NodeID) error {
	seen := map[graph.NodeID]bool{start: true}
	cur := start
	for {
		prev := g.Targets(cur, graph.EdgePrev)
		if len(prev) == 0 {
			return nil
		}
		cur = prev[0]
		if seen[cur] {
			return fmt.Errorf("history of var #%d loops at #%d", start, cur)
		}
		seen[cur] = true
	}
}
