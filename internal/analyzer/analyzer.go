// Package analyzer lowers parsed files into the context graph: declarations
// become SourceUnit, Contract, Function, FunctionParam and FunctionReturn
// nodes, and every function body is handed to the builder.
package analyzer

import (
	"errors"
	"fmt"

	"ctxgraph/internal/ast"
	"ctxgraph/internal/builder"
	"ctxgraph/internal/builtins"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/source"
	"ctxgraph/internal/trace"
)

type Options struct {
	Reporter diag.Reporter
	Tracer   trace.Tracer
	Seed     builder.SeedMode
	// NoDeclarations leaves local variable declarations unhandled.
	NoDeclarations bool
	// TraceParent nests function spans under an outer span.
	TraceParent uint64
}

// Pass records the build of one function body. Nodes with ids in
// [First, Last] were created by it; First > Last when it created none.
type Pass struct {
	Function    ctxir.FunctionNode
	Name        string
	First       graph.NodeID
	Last        graph.NodeID
	Err         error
	Unsupported int
}

func (p Pass) Failed() bool { return p.Err != nil }

// Result is the graph of one file with the bookkeeping of its passes.
type Result struct {
	Graph    *graph.Graph
	Registry *builtins.Registry
	Unit     graph.NodeID
	Passes   []Pass

	shared func(graph.NodeID) bool
}

// Tainted reports whether id was created by a function pass that failed.
// Nodes every pass reuses are never tainted, whichever pass created them.
func (r *Result) Tainted(id graph.NodeID) bool {
	if r.shared != nil && r.shared(id) {
		return false
	}
	for _, p := range r.Passes {
		if p.Failed() && id >= p.First && id <= p.Last {
			return true
		}
	}
	return false
}

// Failed lists failed passes in build order.
func (r *Result) Failed() []Pass {
	var res []Pass
	for _, p := range r.Passes {
		if p.Failed() {
			res = append(res, p)
		}
	}
	return res
}

type fnDecl struct {
	node ctxir.FunctionNode
	data *ast.FnData
	name string
}

type analyzer struct {
	arenas  *ast.Builder
	opts    Options
	g       *graph.Graph
	reg     *builtins.Registry
	b       *builder.Builder
	res     *Result
	scope   *scopeResolver
	counter *countingReporter
	fns     []fnDecl
}

// Analyze lowers file into a fresh graph. Function bodies are built in
// declaration order after every declaration is lowered, so calls resolve
// to functions declared later in the contract.
func Analyze(arenas *ast.Builder, file ast.FileID, path string, opts Options) *Result {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}

	g := graph.New(256)
	reg := builtins.NewRegistry(g)
	a := &analyzer{
		arenas:  arenas,
		opts:    opts,
		g:       g,
		reg:     reg,
		res:     &Result{Graph: g, Registry: reg},
		scope:   newScopeResolver(g),
		counter: &countingReporter{next: opts.Reporter},
	}
	a.b = builder.New(g, reg, arenas, builder.Options{
		Seed:     opts.Seed,
		Resolver: a.scope,
		Reporter: a.counter,
		Tracer:   opts.Tracer,
	})
	a.res.shared = a.b.Shared
	if !opts.NoDeclarations {
		a.b.Extend(ast.StmtVarDecl, builder.DeclareVar)
	}

	f := arenas.File(file)
	if f == nil {
		return a.res
	}
	a.res.Unit = g.AddNode(&ctxir.SourceUnit{Path: path, File: f.Span.File})
	a.lowerItems(f.Items)
	for _, fn := range a.fns {
		a.buildBody(fn)
	}
	return a.res
}

func (a *analyzer) lowerItems(items []ast.ItemID) {
	for _, it := range items {
		switch item := a.arenas.Items.Get(it); item.Kind {
		case ast.ItemContract:
			c, _ := a.arenas.Items.Contract(it)
			id := a.g.AddNode(&ctxir.Contract{Name: a.arenas.Name(c.Name), Span: item.Span})
			a.g.MustAddEdge(id, a.res.Unit, graph.EdgeContract)
			for _, m := range c.Members {
				if fd, ok := a.arenas.Items.Fn(m); ok {
					a.lowerFn(fd, a.arenas.Items.Get(m).Span, id)
				}
			}
		case ast.ItemFunction:
			fd, _ := a.arenas.Items.Fn(it)
			a.lowerFn(fd, item.Span, a.res.Unit)
		}
	}
}

var fnKindNames = map[ast.FnKind]string{
	ast.FnConstructor: "constructor",
	ast.FnFallback:    "fallback",
	ast.FnReceive:     "receive",
}

func (a *analyzer) lowerFn(fd *ast.FnData, span source.Span, owner graph.NodeID) {
	name := a.arenas.Name(fd.Name)
	if special, ok := fnKindNames[fd.Kind]; ok && name == "" {
		name = special
	}
	fn := ctxir.FunctionNode(a.g.AddNode(&ctxir.Function{Name: name, Span: span}))
	a.g.MustAddEdge(fn.ID(), owner, graph.EdgeFunc)
	a.scope.declare(owner, name, fn)

	for i, pid := range fd.Params {
		p := a.arenas.Items.Param(pid)
		typ := a.b.DeclaredType(p.Type)
		id := a.g.AddNode(&ctxir.FunctionParam{
			Index:    i,
			Name:     a.arenas.Name(p.Name),
			Type:     typ,
			TypeName: a.typeName(typ),
			Span:     p.Span,
		})
		a.g.MustAddEdge(id, fn.ID(), graph.EdgeFunctionParam)
	}
	for i, pid := range fd.Returns {
		p := a.arenas.Items.Param(pid)
		typ := a.b.DeclaredType(p.Type)
		id := a.g.AddNode(&ctxir.FunctionReturn{
			Index:    i,
			Name:     a.arenas.Name(p.Name),
			Type:     typ,
			TypeName: a.typeName(typ),
			Span:     p.Span,
		})
		a.g.MustAddEdge(id, fn.ID(), graph.EdgeFunctionReturn)
	}

	if fd.Body.IsValid() {
		a.fns = append(a.fns, fnDecl{node: fn, data: fd, name: name})
	}
}

func (a *analyzer) typeName(id graph.NodeID) string {
	if n, ok := a.reg.Get(id); ok {
		return n.Name
	}
	return ""
}

func (a *analyzer) buildBody(fn fnDecl) {
	span := trace.Begin(a.opts.Tracer, trace.ScopeFunction, "build "+fn.name, a.opts.TraceParent)
	a.b.SetTraceParent(span.ID())

	pass := Pass{
		Function: fn.node,
		Name:     fn.name,
		First:    graph.NodeID(a.g.NodeCount() + 1),
	}
	before := a.counter.unsupported
	pass.Err = a.b.Statement(fn.data.Body, false, fn.node.ID())
	pass.Last = graph.NodeID(a.g.NodeCount())
	pass.Unsupported = a.counter.unsupported - before
	a.res.Passes = append(a.res.Passes, pass)

	detail := fmt.Sprintf("%d nodes", int(pass.Last)-int(pass.First)+1)
	if pass.Err != nil {
		a.reportFatal(fn, pass.Err)
		detail = "failed: " + pass.Err.Error()
	}
	span.End(detail)
}

func (a *analyzer) reportFatal(fn fnDecl, err error) {
	be, ok := builder.AsError(err)
	if !ok {
		diag.ReportError(a.opts.Reporter, diag.IRInfo, fn.data.NameSpan,
			fmt.Sprintf("building %s: %v", fn.name, err)).Emit()
		return
	}
	rb := diag.ReportError(a.opts.Reporter, be.Kind.Code(), be.Span, be.Error())
	if errors.Is(err, builder.ErrNodeKindMismatch) || errors.Is(err, builder.ErrEmptyEvaluation) {
		rb = rb.WithNote(fn.data.NameSpan, "graph of "+fn.name+" is incomplete")
	}
	rb.Emit()
}

// countingReporter forwards diagnostics and counts unsupported constructs.
type countingReporter struct {
	next        diag.Reporter
	unsupported int
}

func (c *countingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if code == diag.IRUnsupportedConstruct {
		c.unsupported++
	}
	c.next.Report(code, sev, primary, msg, notes)
}
