package ctxir

import "ctxgraph/internal/graph"

// FunctionNode is a handle to a Function stored in a graph.
type FunctionNode graph.NodeID

func (f FunctionNode) ID() graph.NodeID { return graph.NodeID(f) }

func (f FunctionNode) Underlying(g *graph.Graph) (*Function, error) {
	return graph.Lookup[*Function](g, f.ID(), graph.KindFunction)
}

// Params lists declared parameters in declaration order.
func (f FunctionNode) Params(g *graph.Graph) []*FunctionParam {
	var res []*FunctionParam
	for _, id := range g.Sources(f.ID(), graph.EdgeFunctionParam) {
		if p, err := graph.Lookup[*FunctionParam](g, id, graph.KindFunctionParam); err == nil {
			res = append(res, p)
		}
	}
	return res
}

// Returns lists declared return slots in declaration order.
func (f FunctionNode) Returns(g *graph.Graph) []*FunctionReturn {
	var res []*FunctionReturn
	for _, id := range g.Sources(f.ID(), graph.EdgeFunctionReturn) {
		if r, err := graph.Lookup[*FunctionReturn](g, id, graph.KindFunctionReturn); err == nil {
			res = append(res, r)
		}
	}
	return res
}

// Body returns the top-level scope of the function, if built.
func (f FunctionNode) Body(g *graph.Graph) (ContextNode, bool) {
	srcs := g.Sources(f.ID(), graph.EdgeContext)
	if len(srcs) == 0 {
		return 0, false
	}
	return ContextNode(srcs[0]), true
}

// Contract returns the contract declaring f.
func (f FunctionNode) Contract(g *graph.Graph) (graph.NodeID, bool) {
	ts := g.Targets(f.ID(), graph.EdgeFunc)
	if len(ts) == 0 {
		return graph.NoNodeID, false
	}
	return ts[0], true
}
