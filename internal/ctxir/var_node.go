package ctxir

import (
	"errors"
	"fmt"

	"ctxgraph/internal/graph"
	"ctxgraph/internal/ranges"
)

// ErrFrozen is returned when a range is set on a version that other nodes
// already refer to.
var ErrFrozen = errors.New("variable version is already referenced")

// VarNode is a handle to a ContextVar stored in a graph.
type VarNode graph.NodeID

func (v VarNode) ID() graph.NodeID { return graph.NodeID(v) }

func (v VarNode) Underlying(g *graph.Graph) (*ContextVar, error) {
	return graph.Lookup[*ContextVar](g, v.ID(), graph.KindContextVar)
}

// Name returns the variable name, or "" when v is not a ContextVar.
func (v VarNode) Name(g *graph.Graph) string {
	cv, err := v.Underlying(g)
	if err != nil {
		return ""
	}
	return cv.Name
}

// Prev returns the version v replaced.
func (v VarNode) Prev(g *graph.Graph) (VarNode, bool) {
	ts := g.Targets(v.ID(), graph.EdgePrev)
	if len(ts) == 0 {
		return 0, false
	}
	return VarNode(ts[0]), true
}

// Next returns the version that replaced v.
func (v VarNode) Next(g *graph.Graph) (VarNode, bool) {
	srcs := g.Sources(v.ID(), graph.EdgePrev)
	if len(srcs) == 0 {
		return 0, false
	}
	return VarNode(srcs[0]), true
}

// Latest follows Next links to the most recent write.
func (v VarNode) Latest(g *graph.Graph) VarNode {
	seen := map[VarNode]struct{}{v: {}}
	cur := v
	for {
		next, ok := cur.Next(g)
		if !ok {
			return cur
		}
		if _, dup := seen[next]; dup {
			return cur
		}
		seen[next] = struct{}{}
		cur = next
	}
}

// History lists v and every earlier version, newest first.
func (v VarNode) History(g *graph.Graph) []VarNode {
	seen := map[VarNode]struct{}{}
	var res []VarNode
	for cur, ok := v, true; ok; cur, ok = cur.Prev(g) {
		if _, dup := seen[cur]; dup {
			break
		}
		seen[cur] = struct{}{}
		res = append(res, cur)
	}
	return res
}

// Range returns the version's range; nil means unknown.
func (v VarNode) Range(g *graph.Graph) (*ranges.Range, error) {
	cv, err := v.Underlying(g)
	if err != nil {
		return nil, err
	}
	return cv.Range, nil
}

// SetRange installs r on a version nothing refers to yet.
func (v VarNode) SetRange(g *graph.Graph, r *ranges.Range) error {
	cv, err := v.Underlying(g)
	if err != nil {
		return err
	}
	if in := g.Edges(v.ID(), graph.Incoming, graph.AnyEdge); len(in) > 0 {
		return fmt.Errorf("set range on node %d (%s): %w", v, cv.Name, ErrFrozen)
	}
	cv.Range = r
	return nil
}
