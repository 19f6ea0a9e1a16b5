package analyzer

import (
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/graph"
)

// scopeResolver resolves calls by name: functions of the caller's contract
// first, then free functions of the file. The first declaration of a name
// wins; overloads are not told apart.
type scopeResolver struct {
	g      *graph.Graph
	owners map[graph.NodeID]map[string]ctxir.FunctionNode
	unit   graph.NodeID
}

func newScopeResolver(g *graph.Graph) *scopeResolver {
	return &scopeResolver{g: g, owners: make(map[graph.NodeID]map[string]ctxir.FunctionNode)}
}

func (r *scopeResolver) declare(owner graph.NodeID, name string, fn ctxir.FunctionNode) {
	if name == "" {
		return
	}
	if r.g.Kind(owner) == graph.KindSourceUnit {
		r.unit = owner
	}
	fns := r.owners[owner]
	if fns == nil {
		fns = make(map[string]ctxir.FunctionNode)
		r.owners[owner] = fns
	}
	if _, dup := fns[name]; !dup {
		fns[name] = fn
	}
}

func (r *scopeResolver) ResolveFunction(ctx ctxir.ContextNode, name string) (ctxir.FunctionNode, bool) {
	if fn, ok := ctx.AssociatedFn(r.g); ok {
		if owner, ok := fn.Contract(r.g); ok {
			if found, ok := r.owners[owner][name]; ok {
				return found, true
			}
		}
	}
	if r.unit.IsValid() {
		if found, ok := r.owners[r.unit][name]; ok {
			return found, true
		}
	}
	return 0, false
}
