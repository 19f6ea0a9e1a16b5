package analyzer

import (
	"testing"

	"ctxgraph/internal/ast"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/parser"
	"ctxgraph/internal/source"
)

func analyze(t *testing.T, src string, opts Options) (*Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sol", []byte(src))
	arenas := ast.NewBuilder(0)
	bag := diag.NewBag(100)
	res := parser.ParseFile(fs.Get(id), arenas, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %d", bag.Len())
	}
	opts.Reporter = diag.BagReporter{Bag: bag}
	return Analyze(arenas, res.File, "test.sol", opts), bag
}

func functions(r *Result) map[string]ctxir.FunctionNode {
	fns := make(map[string]ctxir.FunctionNode)
	for id, n := range r.Graph.Nodes {
		if fn, ok := n.(*ctxir.Function); ok && !fn.Builtin {
			fns[fn.Name] = ctxir.FunctionNode(id)
		}
	}
	return fns
}

func TestLowersDeclarations(t *testing.T) {
	src := `
contract C {
    function g() { f(1); }
    function f(uint a, bytes memory) returns (uint8 r) { return a; }
    constructor() {}
}
function h() {}
`
	r, bag := analyze(t, src, Options{})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}

	unit, ok := r.Graph.Node(r.Unit).(*ctxir.SourceUnit)
	if !ok || unit.Path != "test.sol" {
		t.Fatalf("unit = %v", r.Graph.Node(r.Unit))
	}
	contracts := r.Graph.Sources(r.Unit, graph.EdgeContract)
	if len(contracts) != 1 {
		t.Fatalf("expected 1 contract, got %d", len(contracts))
	}

	fns := functions(r)
	for _, name := range []string{"f", "g", "h", "constructor"} {
		if _, ok := fns[name]; !ok {
			t.Errorf("function %s not lowered", name)
		}
	}
	if owner, _ := fns["f"].Contract(r.Graph); owner != contracts[0] {
		t.Errorf("f owned by %d", owner)
	}
	if owner, _ := fns["h"].Contract(r.Graph); owner != r.Unit {
		t.Errorf("free function owned by %d", owner)
	}

	params := fns["f"].Params(r.Graph)
	if len(params) != 2 || params[0].Name != "a" || params[0].TypeName != "uint256" || params[1].Name != "" {
		t.Errorf("params = %+v", params)
	}
	rets := fns["f"].Returns(r.Graph)
	if len(rets) != 1 || rets[0].TypeName != "uint8" {
		t.Errorf("returns = %+v", rets)
	}

	// g calls f, declared after it
	body, ok := fns["g"].Body(r.Graph)
	if !ok {
		t.Fatal("g has no body scope")
	}
	if calls := r.Graph.Sources(body.ID(), graph.EdgeCall); len(calls) != 1 || calls[0] != fns["f"].ID() {
		t.Errorf("g's call resolved to %v", calls)
	}

	if len(r.Passes) != 4 {
		t.Errorf("expected 4 passes, got %d", len(r.Passes))
	}
	if len(r.Failed()) != 0 {
		t.Errorf("failed passes: %+v", r.Failed())
	}
}

func TestFailedPassIsTainted(t *testing.T) {
	src := `
contract C {
    function bad() { require = 1; }
    function good(uint x) { x = 1; }
}
`
	r, bag := analyze(t, src, Options{})
	if bag.Count(diag.IRNodeKindMismatch) != 1 {
		t.Fatalf("expected the mismatch to be reported, got %d", bag.Count(diag.IRNodeKindMismatch))
	}

	failed := r.Failed()
	if len(failed) != 1 || failed[0].Name != "bad" {
		t.Fatalf("failed = %+v", failed)
	}
	fns := functions(r)
	bad, _ := fns["bad"].Body(r.Graph)
	good, ok := fns["good"].Body(r.Graph)
	if !ok {
		t.Fatal("good was not built after bad failed")
	}
	if !r.Tainted(bad.ID()) {
		t.Error("scope of failed pass not tainted")
	}
	if r.Tainted(good.ID()) || r.Tainted(fns["bad"].ID()) {
		t.Error("nodes outside the failed pass are tainted")
	}
}

func TestUnsupportedPerPass(t *testing.T) {
	r, bag := analyze(t, `function f(uint x) { if (x > 0) { x = 1; } while (true) {} x = 2; }`, Options{})
	if len(r.Passes) != 1 {
		t.Fatalf("expected 1 pass, got %d", len(r.Passes))
	}
	p := r.Passes[0]
	if p.Failed() || p.Unsupported != 2 {
		t.Errorf("pass = %+v", p)
	}
	if bag.Count(diag.IRUnsupportedConstruct) != 2 {
		t.Errorf("bag holds %d unsupported", bag.Count(diag.IRUnsupportedConstruct))
	}
	if p.First > p.Last {
		t.Error("pass recorded no nodes")
	}
}

func TestDeclarationsToggle(t *testing.T) {
	src := `function f() { uint a = 1; a = 2; }`

	r, bag := analyze(t, src, Options{})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", bag.Len())
	}
	body, _ := functions(r)["f"].Body(r.Graph)
	a, ok := body.VarByName(r.Graph, "a")
	if !ok || a.Latest(r.Graph) == a {
		t.Error("declared variable not versioned")
	}

	_, bag = analyze(t, src, Options{NoDeclarations: true})
	if bag.Count(diag.IRUnsupportedConstruct) != 1 || bag.Count(diag.IRUnresolvedName) != 1 {
		t.Errorf("got %d unsupported, %d unresolved", bag.Count(diag.IRUnsupportedConstruct), bag.Count(diag.IRUnresolvedName))
	}
}

func TestBodylessFunctionsAreNotBuilt(t *testing.T) {
	r, _ := analyze(t, `interface I { function f(uint a) external returns (uint); }`, Options{})
	if len(r.Passes) != 0 {
		t.Errorf("expected no passes, got %d", len(r.Passes))
	}
	if len(functions(r)["f"].Params(r.Graph)) != 1 {
		t.Error("declaration not lowered")
	}
}

func TestSharedNodesSurviveFailedPass(t *testing.T) {
	src := `
contract C {
    function bad(uint x) { require(x > 0); x = msg.value; require = 1; }
    function good(uint y) { require(y > 0); y = msg.value; }
}
`
	r, _ := analyze(t, src, Options{})
	failed := r.Failed()
	if len(failed) != 1 || failed[0].Name != "bad" {
		t.Fatalf("failed = %+v", failed)
	}
	bad := failed[0]

	var sawRequire, sawMsg, sawMember bool
	for id, n := range r.Graph.Nodes {
		shared := false
		switch n := n.(type) {
		case *ctxir.Function:
			shared = n.Builtin
			sawRequire = sawRequire || (n.Builtin && id >= bad.First && id <= bad.Last)
		case *ctxir.ContextVar:
			shared = n.Name == "msg" || n.Name == "msg.value"
			sawMsg = sawMsg || (n.Name == "msg" && id >= bad.First)
			sawMember = sawMember || n.Name == "msg.value"
		default:
			shared = n.Kind() == graph.KindBuiltin
		}
		if shared && r.Tainted(id) {
			t.Errorf("shared node %d (%s) tainted by the failed pass", id, n.Kind())
		}
	}
	if !sawRequire || !sawMsg || !sawMember {
		t.Fatalf("shared nodes not created inside the failed pass: require=%v msg=%v member=%v", sawRequire, sawMsg, sawMember)
	}

	body, _ := functions(r)["bad"].Body(r.Graph)
	if !r.Tainted(body.ID()) {
		t.Error("scope of failed pass not tainted")
	}
}
