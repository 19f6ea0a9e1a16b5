// Package graph is the append-only store behind the context IR.
//
// Nodes live in a 1-based arena indexed by NodeID; an id never changes once
// issued. Edges are typed and directed, and every node keeps its incoming
// and outgoing edge lists in insertion order so that queries such as
// "first Variable edge into this scope" are deterministic.
package graph
