// Package builder lowers function bodies into the context graph: scopes,
// versioned variables and their ranges.
package builder

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/builtins"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/trace"
)

// SeedMode selects which scopes receive the enclosing function's
// parameters and named returns as fresh versions.
type SeedMode uint8

const (
	// SeedFunctionEntry seeds only the top-level body scope; nested scopes
	// see the entries through their Subcontext chain.
	SeedFunctionEntry SeedMode = iota
	// SeedEveryScope re-instantiates parameters and returns in every block.
	SeedEveryScope
)

func (m SeedMode) String() string {
	if m == SeedEveryScope {
		return "every"
	}
	return "entry"
}

// ParseSeedMode accepts "entry" and "every".
func ParseSeedMode(s string) (SeedMode, bool) {
	switch s {
	case "entry", "":
		return SeedFunctionEntry, true
	case "every":
		return SeedEveryScope, true
	default:
		return SeedFunctionEntry, false
	}
}

// Resolver finds functions visible from a scope by name, typically the
// functions of the enclosing contract.
type Resolver interface {
	ResolveFunction(ctx ctxir.ContextNode, name string) (ctxir.FunctionNode, bool)
}

// StmtHandler gives semantics to a statement kind the builder does not
// handle itself.
type StmtHandler func(b *Builder, stmt ast.StmtID, ctx ctxir.ContextNode) error

type Options struct {
	Seed     SeedMode
	Resolver Resolver
	Reporter diag.Reporter
	Tracer   trace.Tracer
}

// Builder writes into one graph. It is not safe for concurrent use.
type Builder struct {
	g        *graph.Graph
	reg      *builtins.Registry
	arenas   *ast.Builder
	opts     Options
	handlers map[ast.StmtKind]StmtHandler

	builtinFns  map[string]graph.NodeID
	globals     map[string]graph.NodeID
	traceParent uint64
}

func New(g *graph.Graph, reg *builtins.Registry, arenas *ast.Builder, opts Options) *Builder {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Builder{
		g:          g,
		reg:        reg,
		arenas:     arenas,
		opts:       opts,
		handlers:   make(map[ast.StmtKind]StmtHandler),
		builtinFns: make(map[string]graph.NodeID, 2),
		globals:    make(map[string]graph.NodeID),
	}
}

// Shared reports whether id is reused by every pass over the graph rather
// than owned by one: interned types, require/assert, environment globals
// and their members.
func (b *Builder) Shared(id graph.NodeID) bool {
	switch n := b.g.Node(id).(type) {
	case *builtins.Node:
		return true
	case *ctxir.Function:
		return n.Builtin
	case *ctxir.ContextVar:
		if g, ok := b.globals[n.Name]; ok && g == id {
			return true
		}
		// msg.sender and the like hang off a global and are reused with it
		for _, base := range b.g.Targets(id, graph.EdgeAttrAccess) {
			if b.Shared(base) {
				return true
			}
		}
	}
	return false
}

// Extend registers h for kind, replacing any earlier handler.
func (b *Builder) Extend(kind ast.StmtKind, h StmtHandler) {
	if h == nil {
		delete(b.handlers, kind)
		return
	}
	b.handlers[kind] = h
}

func (b *Builder) Graph() *graph.Graph          { return b.g }
func (b *Builder) Registry() *builtins.Registry { return b.reg }
func (b *Builder) Arenas() *ast.Builder         { return b.arenas }
func (b *Builder) Options() Options             { return b.opts }

// SetTraceParent nests the builder's trace events under span id.
func (b *Builder) SetTraceParent(id uint64) { b.traceParent = id }

// report emits err as a diagnostic.
func (b *Builder) report(err *Error) {
	diag.ReportError(b.opts.Reporter, err.Kind.Code(), err.Span, err.Error()).Emit()
	trace.Point(b.opts.Tracer, trace.ScopeNode, "report", err.Error(), b.traceParent)
}

// absorb reports recoverable errors and swallows them; others pass through.
func (b *Builder) absorb(err error) error {
	if err == nil {
		return nil
	}
	be, ok := AsError(err)
	if !ok || !be.Kind.Recoverable() {
		return err
	}
	b.report(be)
	return nil
}
