// Package ranges describes the symbolic value range attached to a variable
// version. A bound is concrete, a deferred reference to another node's
// bound, or an unevaluated combination of two bounds. Nothing here resolves
// deferred bounds; that is left to a later pass over the graph.
package ranges
