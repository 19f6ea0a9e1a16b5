package ctxir

import (
	"ctxgraph/internal/graph"
)

// ContextNode is a handle to a Context stored in a graph.
type ContextNode graph.NodeID

func (c ContextNode) ID() graph.NodeID { return graph.NodeID(c) }

// Underlying returns the Context payload.
func (c ContextNode) Underlying(g *graph.Graph) (*Context, error) {
	return graph.Lookup[*Context](g, c.ID(), graph.KindContext)
}

// Vars lists the versions attached to the scope through Variable edges,
// in edge order.
func (c ContextNode) Vars(g *graph.Graph) []VarNode {
	srcs := g.Sources(c.ID(), graph.EdgeVariable)
	vars := make([]VarNode, 0, len(srcs))
	for _, id := range srcs {
		vars = append(vars, VarNode(id))
	}
	return vars
}

// VarByName returns the first attached version named name.
func (c ContextNode) VarByName(g *graph.Graph, name string) (VarNode, bool) {
	for _, v := range c.Vars(g) {
		cv, err := v.Underlying(g)
		if err != nil {
			continue
		}
		if cv.Name == name {
			return v, true
		}
	}
	return 0, false
}

// LatestVarByName is VarByName followed by Latest.
func (c ContextNode) LatestVarByName(g *graph.Graph, name string) (VarNode, bool) {
	v, ok := c.VarByName(g, name)
	if !ok {
		return 0, false
	}
	return v.Latest(g), true
}

// NewTmp returns the current counter value and increments it.
func (c ContextNode) NewTmp(g *graph.Graph) (uint32, error) {
	ctx, err := c.Underlying(g)
	if err != nil {
		return 0, err
	}
	n := ctx.TmpCounter
	ctx.TmpCounter++
	return n, nil
}

// Parent returns the enclosing scope of a nested block.
func (c ContextNode) Parent(g *graph.Graph) (ContextNode, bool) {
	ts := g.Targets(c.ID(), graph.EdgeSubcontext)
	if len(ts) == 0 {
		return 0, false
	}
	return ContextNode(ts[0]), true
}

// AssociatedFn finds the function owning the scope.
func (c ContextNode) AssociatedFn(g *graph.Graph) (FunctionNode, bool) {
	id, ok := g.SearchForAncestor(c.ID(), graph.EdgeContext)
	if !ok {
		return 0, false
	}
	return FunctionNode(id), true
}

// Subcontexts lists nested scopes in creation order.
func (c ContextNode) Subcontexts(g *graph.Graph) []ContextNode {
	srcs := g.Sources(c.ID(), graph.EdgeSubcontext)
	res := make([]ContextNode, 0, len(srcs))
	for _, id := range srcs {
		res = append(res, ContextNode(id))
	}
	return res
}
