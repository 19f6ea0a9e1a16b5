// Package ctxir defines the payloads of the context graph and the typed
// handles used to query it.
//
// A Context is one lexical scope. A ContextVar is one immutable version of a
// variable; writes create a new ContextVar linked to the old one with a Prev
// edge, so the latest version is always found by walking Prev edges and is
// never stored.
package ctxir
