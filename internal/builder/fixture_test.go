package builder

import (
	"testing"

	"ctxgraph/internal/ast"
	"ctxgraph/internal/builtins"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/parser"
	"ctxgraph/internal/source"
)

type fixture struct {
	g     *graph.Graph
	reg   *builtins.Registry
	ast   *ast.Builder
	b     *Builder
	bag   *diag.Bag
	fn    graph.NodeID
	body  ast.StmtID
	fnAST *ast.FnData
}

// newFixture parses src, lowers the first function's header by hand and
// prepares a Builder; the body is not built yet.
func newFixture(t *testing.T, src string, opts Options) *fixture {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sol", []byte(src))
	arenas := ast.NewBuilder(0)
	bag := diag.NewBag(100)
	res := parser.ParseFile(fs.Get(fileID), arenas, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %d", bag.Len())
	}

	var fnData *ast.FnData
	for _, it := range arenas.File(res.File).Items {
		if c, ok := arenas.Items.Contract(it); ok {
			for _, m := range c.Members {
				if fd, ok := arenas.Items.Fn(m); ok {
					fnData = fd
					break
				}
			}
		}
		if fd, ok := arenas.Items.Fn(it); ok && fnData == nil {
			fnData = fd
		}
		if fnData != nil {
			break
		}
	}
	if fnData == nil {
		t.Fatal("no function in source")
	}

	g := graph.New(0)
	reg := builtins.NewRegistry(g)
	opts.Reporter = diag.BagReporter{Bag: bag}
	b := New(g, reg, arenas, opts)

	fn := g.AddNode(&ctxir.Function{Name: arenas.Name(fnData.Name)})
	for i, pid := range fnData.Params {
		p := arenas.Items.Param(pid)
		id := g.AddNode(&ctxir.FunctionParam{Index: i, Name: arenas.Name(p.Name), Type: b.DeclaredType(p.Type), Span: p.Span})
		g.MustAddEdge(id, fn, graph.EdgeFunctionParam)
	}
	for i, pid := range fnData.Returns {
		p := arenas.Items.Param(pid)
		id := g.AddNode(&ctxir.FunctionReturn{Index: i, Name: arenas.Name(p.Name), Type: b.DeclaredType(p.Type), Span: p.Span})
		g.MustAddEdge(id, fn, graph.EdgeFunctionReturn)
	}

	return &fixture{g: g, reg: reg, ast: arenas, b: b, bag: bag, fn: fn, body: fnData.Body, fnAST: fnData}
}

// build parses and lowers the body, failing on an aborting error.
func build(t *testing.T, src string, opts Options) *fixture {
	t.Helper()
	f := newFixture(t, src, opts)
	if err := f.b.Statement(f.body, false, f.fn); err != nil {
		t.Fatalf("Statement: %v", err)
	}
	return f
}

func (f *fixture) contexts() []ctxir.ContextNode {
	var res []ctxir.ContextNode
	for id, n := range f.g.Nodes {
		if n.Kind() == graph.KindContext {
			res = append(res, ctxir.ContextNode(id))
		}
	}
	return res
}

func (f *fixture) body0(t *testing.T) ctxir.ContextNode {
	t.Helper()
	ctx, ok := ctxir.FunctionNode(f.fn).Body(f.g)
	if !ok {
		t.Fatal("function has no body scope")
	}
	return ctx
}

func (f *fixture) varOf(t *testing.T, ctx ctxir.ContextNode, name string) ctxir.VarNode {
	t.Helper()
	v, ok := ctx.VarByName(f.g, name)
	if !ok {
		t.Fatalf("no %q in scope %d", name, ctx)
	}
	return v
}

func (f *fixture) rangeOf(t *testing.T, v ctxir.VarNode) (min, max string) {
	t.Helper()
	r, err := v.Range(f.g)
	if err != nil {
		t.Fatalf("Range(%d): %v", v, err)
	}
	if r == nil {
		return "?", "?"
	}
	return r.Min.String(), r.Max.String()
}
