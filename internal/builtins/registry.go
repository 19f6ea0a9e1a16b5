package builtins

import (
	"ctxgraph/internal/graph"
)

// Registry keeps at most one graph node per distinct builtin Type, so node
// identity stands in for type equality downstream. One Registry belongs to
// one Graph.
type Registry struct {
	g     *graph.Graph
	index map[Type]graph.NodeID
}

func NewRegistry(g *graph.Graph) *Registry {
	return &Registry{g: g, index: make(map[Type]graph.NodeID, 16)}
}

// Intern returns the node of t, creating it on first use.
func (r *Registry) Intern(t Type) graph.NodeID {
	if t.Kind == KindInvalid {
		return graph.NoNodeID
	}
	if id, ok := r.index[t]; ok {
		return id
	}
	id := r.g.AddNode(&Node{Type: t, Name: r.name(t)})
	r.index[t] = id
	return id
}

// Lookup returns the node of t if it was interned.
func (r *Registry) Lookup(t Type) (graph.NodeID, bool) {
	id, ok := r.index[t]
	return id, ok
}

// Get reads back the descriptor of an interned node.
func (r *Registry) Get(id graph.NodeID) (*Node, bool) {
	n, err := graph.Lookup[*Node](r.g, id, graph.KindBuiltin)
	if err != nil {
		return nil, false
	}
	return n, true
}

// ArrayOf interns the dynamic array of elem.
func (r *Registry) ArrayOf(elem graph.NodeID) graph.NodeID {
	return r.Intern(Type{Kind: KindArray, Elem: elem})
}

func (r *Registry) Len() int { return len(r.index) }

func (r *Registry) name(t Type) string {
	if t.Kind != KindArray {
		return t.baseName()
	}
	if elem, ok := r.Get(t.Elem); ok {
		return elem.Name + "[]"
	}
	return "<invalid>[]"
}
