package graph

import (
	"fmt"

	"fortio.org/safecast"
)

// Graph owns every node and edge of one analysis. It has a single writer.
type Graph struct {
	nodes []Node
	edges []Edge
	out   [][]EdgeID
	in    [][]EdgeID
}

// New creates an empty graph with room for capHint nodes.
func New(capHint uint) *Graph {
	return &Graph{
		nodes: make([]Node, 0, capHint),
		out:   make([][]EdgeID, 0, capHint),
		in:    make([][]EdgeID, 0, capHint),
	}
}

// AddNode stores n and returns its id (1-based).
func (g *Graph) AddNode(n Node) NodeID {
	g.nodes = append(g.nodes, n)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return NodeID(index(len(g.nodes)))
}

// AddEdge links from -> to. Both ends must exist.
func (g *Graph) AddEdge(from, to NodeID, kind EdgeKind) (EdgeID, error) {
	if !g.Has(from) || !g.Has(to) {
		return NoEdgeID, fmt.Errorf("add %s edge %d -> %d: %w", kind, from, to, ErrNoSuchNode)
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Kind: kind})
	id := EdgeID(index(len(g.edges)))
	g.edges[id-1].ID = id
	g.out[from-1] = append(g.out[from-1], id)
	g.in[to-1] = append(g.in[to-1], id)
	return id, nil
}

// MustAddEdge is AddEdge for ids the caller has just created.
func (g *Graph) MustAddEdge(from, to NodeID, kind EdgeKind) EdgeID {
	id, err := g.AddEdge(from, to, kind)
	if err != nil {
		panic(err)
	}
	return id
}

// Has reports whether id names a stored node.
func (g *Graph) Has(id NodeID) bool {
	return id.IsValid() && int(id) <= len(g.nodes)
}

// Node returns the payload stored under id, or nil.
func (g *Graph) Node(id NodeID) Node {
	if !g.Has(id) {
		return nil
	}
	return g.nodes[id-1]
}

// Kind returns the kind of the node, KindInvalid when absent.
func (g *Graph) Kind(id NodeID) NodeKind {
	n := g.Node(id)
	if n == nil {
		return KindInvalid
	}
	return n.Kind()
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	if !id.IsValid() || int(id) > len(g.edges) {
		return Edge{}, false
	}
	return g.edges[id-1], true
}

func (g *Graph) NodeCount() int { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes iterates ids in insertion order.
func (g *Graph) Nodes(yield func(NodeID, Node) bool) {
	for i, n := range g.nodes {
		if !yield(NodeID(index(i + 1)), n) {
			return
		}
	}
}

// AllEdges returns a copy of every edge in insertion order.
func (g *Graph) AllEdges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Edges lists edges of id in the given direction, filtered by kind
// (AnyEdge for all), in insertion order.
func (g *Graph) Edges(id NodeID, dir Direction, kind EdgeKind) []Edge {
	if !g.Has(id) {
		return nil
	}
	list := g.out[id-1]
	if dir == Incoming {
		list = g.in[id-1]
	}
	var res []Edge
	for _, eid := range list {
		e := g.edges[eid-1]
		if kind == AnyEdge || e.Kind == kind {
			res = append(res, e)
		}
	}
	return res
}

// Sources returns the From end of every incoming edge of kind.
func (g *Graph) Sources(id NodeID, kind EdgeKind) []NodeID {
	edges := g.Edges(id, Incoming, kind)
	res := make([]NodeID, 0, len(edges))
	for _, e := range edges {
		res = append(res, e.From)
	}
	return res
}

// Targets returns the To end of every outgoing edge of kind.
func (g *Graph) Targets(id NodeID, kind EdgeKind) []NodeID {
	edges := g.Edges(id, Outgoing, kind)
	res := make([]NodeID, 0, len(edges))
	for _, e := range edges {
		res = append(res, e.To)
	}
	return res
}

// SearchForAncestor walks outgoing edges breadth-first from start and
// returns the target of the first edge of kind it meets.
func (g *Graph) SearchForAncestor(start NodeID, kind EdgeKind) (NodeID, bool) {
	if !g.Has(start) {
		return NoNodeID, false
	}
	seen := map[NodeID]struct{}{start: {}}
	queue := []NodeID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, eid := range g.out[cur-1] {
			e := g.edges[eid-1]
			if e.Kind == kind {
				return e.To, true
			}
			if _, ok := seen[e.To]; !ok {
				seen[e.To] = struct{}{}
				queue = append(queue, e.To)
			}
		}
	}
	return NoNodeID, false
}

func index(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("graph index overflow: %w", err))
	}
	return v
}
