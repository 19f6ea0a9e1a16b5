package builder

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"ctxgraph/internal/ast"
	"ctxgraph/internal/builtins"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/ranges"
	"ctxgraph/internal/source"
)

func TestEndToEndIncrementAndReturn(t *testing.T) {
	f := build(t, `contract C { function f(uint x) returns (uint y) { x = x + 1; return x; } }`, Options{})
	if f.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", f.bag.Len())
	}

	if n := len(f.contexts()); n != 1 {
		t.Fatalf("expected 1 context, got %d", n)
	}
	ctx := f.body0(t)

	vars := ctx.Vars(f.g)
	if len(vars) != 2 || vars[0].Name(f.g) != "x" || vars[1].Name(f.g) != "y" {
		t.Fatalf("scope vars = %v", vars)
	}
	if min, max := f.rangeOf(t, vars[1]); min != "0" || max != "0" {
		t.Errorf("return slot range = [%s, %s]", min, max)
	}

	x0 := vars[0]
	x1 := x0.Latest(f.g)
	if x1 == x0 {
		t.Fatal("assignment did not create a new version")
	}
	if prev, ok := x1.Prev(f.g); !ok || prev != x0 {
		t.Fatalf("Prev(%d) = %d, %v", x1, prev, ok)
	}
	if h := x1.History(f.g); len(h) != 2 {
		t.Fatalf("history length %d", len(h))
	}
	if min, _ := f.rangeOf(t, x1); min != "1" {
		t.Errorf("x1 min = %s", min)
	}

	// x + 1 alone must not write x
	named := 0
	for _, n := range f.g.Nodes {
		if cv, ok := n.(*ctxir.ContextVar); ok && cv.Name == "x" {
			named++
		}
	}
	if named != 2 {
		t.Errorf("expected 2 versions of x, got %d", named)
	}

	if rets := f.g.Sources(ctx.ID(), graph.EdgeReturn); len(rets) != 1 || rets[0] != x1.ID() {
		t.Errorf("Return sources = %v, want [%d]", rets, x1)
	}
	if calls := f.g.Sources(ctx.ID(), graph.EdgeCall); len(calls) != 1 || calls[0] != x1.ID() {
		t.Errorf("Call sources = %v", calls)
	}
}

func TestNestingTopology(t *testing.T) {
	f := build(t, `contract C { function f() { { 1; } } }`, Options{})
	ctxs := f.contexts()
	if len(ctxs) != 2 {
		t.Fatalf("expected 2 contexts, got %d", len(ctxs))
	}
	outer := f.body0(t)
	subs := outer.Subcontexts(f.g)
	if len(subs) != 1 {
		t.Fatalf("expected 1 subcontext, got %d", len(subs))
	}
	inner := subs[0]
	if p, ok := inner.Parent(f.g); !ok || p != outer {
		t.Errorf("Parent(inner) = %d, %v", p, ok)
	}
	if len(f.g.Targets(outer.ID(), graph.EdgeSubcontext)) != 0 {
		t.Error("outer scope must not be a subcontext")
	}
	if fn, ok := inner.AssociatedFn(f.g); !ok || fn.ID() != f.fn {
		t.Errorf("AssociatedFn(inner) = %d, %v", fn, ok)
	}
	if len(f.g.Sources(inner.ID(), graph.EdgeCall)) != 1 {
		t.Error("inner statement not attached to inner scope")
	}
}

func TestDeferredRangeOnUnknownRhs(t *testing.T) {
	f := build(t, `contract C { function f(uint x, bytes y) { x = y; } }`, Options{})
	ctx := f.body0(t)
	y := f.varOf(t, ctx, "y")
	if r, _ := y.Range(f.g); r != nil {
		t.Fatalf("bytes parameter should have no range, got %s", r)
	}

	x := f.varOf(t, ctx, "x").Latest(f.g)
	cv, err := x.Underlying(f.g)
	if err != nil {
		t.Fatal(err)
	}
	r := cv.Range
	if r == nil {
		t.Fatal("no range installed")
	}
	for _, tc := range []struct {
		elem ranges.Elem
		side ranges.Side
	}{{r.Min, ranges.Min}, {r.Max, ranges.Max}} {
		if tc.elem.Kind != ranges.ElemDynamic || tc.elem.Node != y.ID() || tc.elem.Side != tc.side {
			t.Errorf("%s bound = %s, want deferred on #%d", tc.side, tc.elem, y)
		}
		if tc.elem.Span != cv.Span {
			t.Errorf("%s bound span %v, assignment at %v", tc.side, tc.elem.Span, cv.Span)
		}
	}
}

func TestBuiltinInterning(t *testing.T) {
	f := build(t, `contract C { function f() { } }`, Options{})
	ctx := f.body0(t)
	sp := source.Span{File: 1}

	eval := func(name string) graph.NodeID {
		t.Helper()
		res, err := f.b.Expr(f.ast.Exprs.NewElementary(sp, name, false), ctx)
		if err != nil || len(res) != 1 {
			t.Fatalf("Expr(%s) = %v, %v", name, res, err)
		}
		return res[0]
	}

	a := eval("uint256")
	b := eval("uint")
	c := eval("uint8")
	if a != b {
		t.Errorf("uint256 and uint resolved to %d and %d", a, b)
	}
	if a == c {
		t.Error("uint256 and uint8 share a node")
	}
	if f.reg.Len() != 2 {
		t.Errorf("registry holds %d types", f.reg.Len())
	}
	if n, ok := f.reg.Get(c); !ok || n.Name != "uint8" {
		t.Errorf("Get(%d) = %v, %v", c, n, ok)
	}
}

func TestLatestVarByNameSeesAssignment(t *testing.T) {
	f := build(t, `contract C { function f(uint a) { a = 2; } }`, Options{})
	ctx := f.body0(t)

	first, ok := ctx.VarByName(f.g, "a")
	if !ok {
		t.Fatal("parameter not attached")
	}
	if _, err := graph.Lookup[*ctxir.FunctionParam](f.g, first.ID(), graph.KindFunctionParam); err == nil {
		t.Fatal("scope member must be a version, not the declaration")
	}
	latest, _ := ctx.LatestVarByName(f.g, "a")
	if latest == first {
		t.Fatal("LatestVarByName returned the parameter version")
	}
	if min, max := f.rangeOf(t, latest); min != "2" || max != "2" {
		t.Errorf("latest range = [%s, %s]", min, max)
	}
	if len(ctx.Vars(f.g)) != 1 {
		t.Error("assignment must not attach a second scope member")
	}
}

func TestSingleAssignmentChain(t *testing.T) {
	f := build(t, `contract C { function f(uint x) { x = 1; x += 2; x = x * 3; require(x < 10); } }`, Options{})
	if f.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", f.bag.Len())
	}
	x0 := f.varOf(t, f.body0(t), "x")
	latest := x0.Latest(f.g)

	hist := latest.History(f.g)
	if len(hist) != 5 {
		t.Fatalf("expected 5 versions, got %d", len(hist))
	}
	if hist[len(hist)-1] != x0 {
		t.Error("history does not end at the parameter version")
	}
	if _, ok := x0.Prev(f.g); ok {
		t.Error("declaration has a Prev edge")
	}
	seen := map[ctxir.VarNode]bool{}
	for _, v := range hist {
		if seen[v] {
			t.Fatalf("version %d visited twice", v)
		}
		seen[v] = true
		if n := len(f.g.Sources(v.ID(), graph.EdgePrev)); n > 1 {
			t.Errorf("version %d has %d successors", v, n)
		}
	}

	wantRanges := [][2]string{{"9", "9"}, {"9", "9"}, {"3", "3"}, {"1", "1"}}
	for i, want := range wantRanges {
		if min, max := f.rangeOf(t, hist[i]); min != want[0] || max != want[1] {
			t.Errorf("version %d range = [%s, %s], want [%s, %s]", i, min, max, want[0], want[1])
		}
	}
}

func TestUnsupportedStatementIsNoop(t *testing.T) {
	with := build(t, `contract C { function f(uint x) { x = 1; while (x > 0) { x = 0; } } }`, Options{})
	without := build(t, `contract C { function f(uint x) { x = 1; } }`, Options{})

	if with.g.NodeCount() != without.g.NodeCount() || with.g.EdgeCount() != without.g.EdgeCount() {
		t.Errorf("while changed the graph: %d/%d nodes, %d/%d edges",
			with.g.NodeCount(), without.g.NodeCount(), with.g.EdgeCount(), without.g.EdgeCount())
	}
	if with.bag.Count(diag.IRUnsupportedConstruct) != 1 {
		t.Errorf("expected 1 unsupported diagnostic, got %d", with.bag.Count(diag.IRUnsupportedConstruct))
	}
	if without.bag.Len() != 0 {
		t.Errorf("baseline produced %d diagnostics", without.bag.Len())
	}
}

func TestSeedModes(t *testing.T) {
	src := `contract C { function f(uint x) { { x = 1; } } }`

	t.Run("entry", func(t *testing.T) {
		f := build(t, src, Options{Seed: SeedFunctionEntry})
		outer := f.body0(t)
		inner := outer.Subcontexts(f.g)[0]
		if n := len(inner.Vars(f.g)); n != 0 {
			t.Fatalf("nested scope was seeded with %d vars", n)
		}
		x := f.varOf(t, outer, "x")
		if x.Latest(f.g) == x {
			t.Error("write in nested scope did not version the entry parameter")
		}
	})

	t.Run("every", func(t *testing.T) {
		f := build(t, src, Options{Seed: SeedEveryScope})
		outer := f.body0(t)
		inner := outer.Subcontexts(f.g)[0]
		ix := f.varOf(t, inner, "x")
		ox := f.varOf(t, outer, "x")
		if ix == ox {
			t.Fatal("nested scope shares the entry version")
		}
		if ox.Latest(f.g) != ox {
			t.Error("outer parameter version was written")
		}
		if ix.Latest(f.g) == ix {
			t.Error("inner parameter version was not written")
		}
	})
}

func TestRequireNarrowing(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		min, max string
	}{
		{"lt", `function f(uint8 x) { require(x < 10); }`, "0", "9"},
		{"lte", `function f(uint8 x) { require(x <= 10); }`, "0", "10"},
		{"gt", `function f(uint8 x) { require(x > 10); }`, "11", "255"},
		{"gte mirrored", `function f(uint8 x) { require(5 <= x, "low"); }`, "5", "255"},
		{"eq", `function f(uint8 x) { assert(x == 7); }`, "7", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := build(t, tt.src, Options{})
			if f.bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %d", f.bag.Len())
			}
			x := f.varOf(t, f.body0(t), "x")
			latest := x.Latest(f.g)
			if latest == x {
				t.Fatal("require did not narrow x")
			}
			if min, max := f.rangeOf(t, latest); min != tt.min || max != tt.max {
				t.Errorf("range = [%s, %s], want [%s, %s]", min, max, tt.min, tt.max)
			}
			if calls := f.g.Sources(f.body0(t).ID(), graph.EdgeCall); len(calls) != 0 {
				t.Errorf("require yielded a value: %v", calls)
			}
		})
	}
}

func TestRequireNarrowingIntersects(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		min, max string
	}{
		{"looser max kept tight", `function f(uint8 x) { require(x <= 10); require(x <= 100); }`, "0", "10"},
		{"looser min kept tight", `function f(uint8 x) { require(x >= 5); require(x >= 2); }`, "5", "255"},
		{"both sides", `function f(uint8 x) { require(x > 3); require(x < 8); }`, "4", "7"},
		{"past the type limit", `function f(uint8 x) { require(x < 300); }`, "0", "255"},
		{"eq inside", `function f(uint8 x) { require(x <= 10); assert(x == 7); }`, "7", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := build(t, tt.src, Options{})
			if f.bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %d", f.bag.Len())
			}
			latest := f.varOf(t, f.body0(t), "x").Latest(f.g)
			if min, max := f.rangeOf(t, latest); min != tt.min || max != tt.max {
				t.Errorf("range = [%s, %s], want [%s, %s]", min, max, tt.min, tt.max)
			}
		})
	}
}

func TestRequireNeverMetLeavesRange(t *testing.T) {
	f := build(t, `function f(uint8 x) { require(x > 300); }`, Options{})
	x := f.varOf(t, f.body0(t), "x")
	if x.Latest(f.g) != x {
		t.Errorf("unsatisfiable require wrote x: %v", f.g.Node(x.Latest(f.g).ID()))
	}
}

func TestRequireAgainstDeferredBound(t *testing.T) {
	f := build(t, `function f(uint8 x, uint8 y) { y = msg.value; require(x <= y); }`, Options{})
	latest := f.varOf(t, f.body0(t), "x").Latest(f.g)
	min, max := f.rangeOf(t, latest)
	if min != "0" || !strings.HasPrefix(max, "#") {
		t.Errorf("range = [%s, %s], want [0, deferred]", min, max)
	}
}

// tmpRange finds the temporary displayed as display and returns its range.
func (f *fixture) tmpRange(t *testing.T, display string) (min, max string) {
	t.Helper()
	for id, n := range f.g.Nodes {
		if cv, ok := n.(*ctxir.ContextVar); ok && cv.Tmp && cv.Display == display {
			return f.rangeOf(t, ctxir.VarNode(id))
		}
	}
	t.Fatalf("no temporary %q", display)
	return "", ""
}

func TestArithmeticRanges(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expr     string
		min, max string
	}{
		{"add", `function f(uint8 x, uint8 y) { x + y; }`, "(x + y)", "0", "510"},
		{"sub", `function f(uint8 x, uint8 y) { x - y; }`, "(x - y)", "-255", "255"},
		{"mul signed", `function f(int8 x) { x * x; }`, "(x * x)", "-16256", "16384"},
		{"mul unsigned", `function f(uint8 x, uint8 y) { require(x <= 3); require(y <= 4); x * y; }`, "(x * y)", "0", "12"},
		{"div by at least one", `function f(uint8 x, uint8 y) { require(y >= 1); x / y; }`, "(x / y)", "0", "255"},
		{"div narrowed", `function f(uint8 x, uint8 y) { require(x >= 10); require(x <= 20); require(y >= 2); require(y <= 5); x / y; }`, "(x / y)", "2", "10"},
		{"div zero divisor skipped", `function f(uint8 x, uint8 y) { x / y; }`, "(x / y)", "0", "255"},
		{"div signed", `function f(int8 x, int8 y) { x / y; }`, "(x / y)", "-128", "128"},
		{"mod", `function f(uint8 x) { require(x <= 10); x % 3; }`, "(x % 3)", "0", "2"},
		{"mod small dividend", `function f(uint8 x) { require(x <= 1); x % 7; }`, "(x % 7)", "0", "1"},
		{"mod signed", `function f(int8 x) { x % 10; }`, "(x % 10)", "-9", "9"},
		{"unknown sign falls back to type", `function f(int8 x) { x = msg.value; x * x; }`, "(x * x)", "-128", "127"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := build(t, tt.src, Options{})
			if f.bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %d", f.bag.Len())
			}
			if min, max := f.tmpRange(t, tt.expr); min != tt.min || max != tt.max {
				t.Errorf("%s = [%s, %s], want [%s, %s]", tt.expr, min, max, tt.min, tt.max)
			}
		})
	}
}

func TestCompoundAssignRange(t *testing.T) {
	f := build(t, `function f(uint8 x) { require(x <= 10); x %= 4; }`, Options{})
	latest := f.varOf(t, f.body0(t), "x").Latest(f.g)
	if min, max := f.rangeOf(t, latest); min != "0" || max != "3" {
		t.Errorf("range = [%s, %s], want [0, 3]", min, max)
	}
}

func TestRequireNeverVersionsLiterals(t *testing.T) {
	f := build(t, `function f(uint x) { require(x > 1); }`, Options{})
	for id, n := range f.g.Nodes {
		cv, ok := n.(*ctxir.ContextVar)
		if !ok || !cv.Tmp {
			continue
		}
		if _, has := ctxir.VarNode(id).Prev(f.g); has {
			t.Errorf("temporary %s was versioned", cv.Name)
		}
	}
}

func TestUnresolvedNameIsReportedAndSkipped(t *testing.T) {
	f := build(t, `function f(uint x) { foo = 1; x = 2; }`, Options{})
	if f.bag.Count(diag.IRUnresolvedName) != 1 {
		t.Fatalf("expected 1 unresolved diagnostic, got %d", f.bag.Count(diag.IRUnresolvedName))
	}
	x := f.varOf(t, f.body0(t), "x")
	if x.Latest(f.g) == x {
		t.Error("statement after the failure was not built")
	}
}

func TestAbortingErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"assign to function", `function f() { require = 1; }`, ErrNodeKindMismatch},
		{"assign void", `function f(uint x) { x = require(x > 0); }`, ErrEmptyEvaluation},
		{"return void", `function f(uint x) returns (uint) { return require(x > 0); }`, ErrEmptyEvaluation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.src, Options{})
			err := f.b.Statement(f.body, false, f.fn)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			be, ok := AsError(err)
			if !ok || be.Kind.Recoverable() || be.Span.Empty() {
				t.Errorf("error = %+v", be)
			}
			// partial graph stays
			if len(f.contexts()) != 1 {
				t.Error("scope created before the failure was lost")
			}
		})
	}
}

func TestStatementOutsideScope(t *testing.T) {
	f := newFixture(t, `function f(uint x) { x = 1; }`, Options{})
	blk, _ := f.ast.Stmts.Block(f.body)
	err := f.b.Statement(blk.Stmts[0], false, f.fn)
	if !errors.Is(err, ErrNodeKindMismatch) {
		t.Fatalf("err = %v", err)
	}
	var mm *graph.KindMismatchError
	if !errors.As(err, &mm) || mm.Want != graph.KindContext {
		t.Errorf("mismatch detail = %+v", mm)
	}
}

func TestDeclareVar(t *testing.T) {
	f := newFixture(t, `function f() { uint a = 5; uint b; a = b; uint a; bool c = a < b; }`, Options{})
	f.b.Extend(ast.StmtVarDecl, DeclareVar)
	if err := f.b.Statement(f.body, false, f.fn); err != nil {
		t.Fatal(err)
	}
	ctx := f.body0(t)
	if n := len(ctx.Vars(f.g)); n != 3 {
		t.Fatalf("expected 3 declarations, got %d", n)
	}
	a := f.varOf(t, ctx, "a")
	if min, max := f.rangeOf(t, a); min != "5" || max != "5" {
		t.Errorf("a = [%s, %s]", min, max)
	}
	if min, max := f.rangeOf(t, f.varOf(t, ctx, "b")); min != "0" || max != "0" {
		t.Errorf("b = [%s, %s]", min, max)
	}
	if min, _ := f.rangeOf(t, a.Latest(f.g)); min != "0" {
		t.Errorf("a after a = b has min %s", min)
	}
	if f.bag.Count(diag.IRDuplicateDeclaration) != 1 {
		t.Errorf("expected a redeclaration warning")
	}
	if min, max := f.rangeOf(t, f.varOf(t, ctx, "c")); min != "0" || max != "0" {
		t.Errorf("c = [%s, %s]", min, max)
	}
}

func TestIndexAccessReusesElement(t *testing.T) {
	f := build(t, `function f(uint[] memory xs, uint i) { xs[i] = 1; xs[i]; }`, Options{})
	if f.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", f.bag.Len())
	}
	ctx := f.body0(t)
	calls := f.g.Sources(ctx.ID(), graph.EdgeCall)
	if len(calls) != 2 || calls[0] != calls[1] {
		t.Fatalf("Call sources = %v", calls)
	}
	elem := ctxir.VarNode(calls[1])
	if min, max := f.rangeOf(t, elem); min != "1" || max != "1" {
		t.Errorf("element range = [%s, %s]", min, max)
	}
	first := elem.History(f.g)[1]
	xs := f.varOf(t, ctx, "xs")
	if ts := f.g.Targets(first.ID(), graph.EdgeIndexAccess); len(ts) != 1 || ts[0] != xs.ID() {
		t.Errorf("IndexAccess targets = %v", ts)
	}
	i := f.varOf(t, ctx, "i")
	if ts := f.g.Targets(i.ID(), graph.EdgeIndex); len(ts) != 1 || ts[0] != first.ID() {
		t.Errorf("Index targets = %v", ts)
	}
	cv, _ := first.Underlying(f.g)
	if n, ok := f.reg.Get(cv.Type); !ok || n.Type.Kind != builtins.KindUint {
		t.Errorf("element type = %v", cv.Type)
	}
}

func TestMemberAccessOnGlobal(t *testing.T) {
	f := build(t, `function f() { msg.sender; msg.sender; }`, Options{})
	if f.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", f.bag.Len())
	}
	calls := f.g.Sources(f.body0(t).ID(), graph.EdgeCall)
	if len(calls) != 2 || calls[0] != calls[1] {
		t.Fatalf("Call sources = %v", calls)
	}
	attr := ctxir.VarNode(calls[0])
	if attr.Name(f.g) != "msg.sender" {
		t.Errorf("attribute name %q", attr.Name(f.g))
	}
	if ts := f.g.Targets(attr.ID(), graph.EdgeAttrAccess); len(ts) != 1 || ctxir.VarNode(ts[0]).Name(f.g) != "msg" {
		t.Errorf("AttrAccess targets = %v", ts)
	}
}

func TestLiterals(t *testing.T) {
	f := build(t, `function f() { 0.5 ether; 3 gwei; 2 days; 0x10; true; "a" "b"; }`, Options{})
	if f.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %d", f.bag.Len())
	}
	calls := f.g.Sources(f.body0(t).ID(), graph.EdgeCall)
	want := []string{"500000000000000000", "3000000000", "172800", "16", "1", "?"}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(calls))
	}
	for i, w := range want {
		v := ctxir.VarNode(calls[i])
		if min, max := f.rangeOf(t, v); min != w || max != w {
			t.Errorf("literal %d range = [%s, %s], want %s", i, min, max, w)
		}
		cv, _ := v.Underlying(f.g)
		if !cv.Tmp || cv.Name != fmt.Sprintf("tmp%d", i) {
			t.Errorf("literal %d named %q tmp=%v", i, cv.Name, cv.Tmp)
		}
	}
	if ctx, _ := f.body0(t).Underlying(f.g); ctx.TmpCounter != 7 {
		t.Errorf("tmp counter = %d, want 7", ctx.TmpCounter)
	}
}

func TestConversionYieldsArgument(t *testing.T) {
	f := build(t, `function f(uint x) { uint8(x); }`, Options{})
	x := f.varOf(t, f.body0(t), "x")
	if calls := f.g.Sources(f.body0(t).ID(), graph.EdgeCall); len(calls) != 1 || calls[0] != x.ID() {
		t.Errorf("Call sources = %v, want [%d]", calls, x)
	}
}

type mapResolver map[string]ctxir.FunctionNode

func (m mapResolver) ResolveFunction(_ ctxir.ContextNode, name string) (ctxir.FunctionNode, bool) {
	fn, ok := m[name]
	return fn, ok
}

func TestCallYieldsCallee(t *testing.T) {
	res := mapResolver{}
	f := newFixture(t, `function f(uint x) { g(x = 3); }`, Options{Resolver: res})
	g := ctxir.FunctionNode(f.g.AddNode(&ctxir.Function{Name: "g"}))
	res["g"] = g
	if err := f.b.Statement(f.body, false, f.fn); err != nil {
		t.Fatal(err)
	}
	ctx := f.body0(t)
	if calls := f.g.Sources(ctx.ID(), graph.EdgeCall); len(calls) != 1 || calls[0] != g.ID() {
		t.Errorf("Call sources = %v", calls)
	}
	x := f.varOf(t, ctx, "x")
	if x.Latest(f.g) == x {
		t.Error("argument side effects were skipped")
	}
}

func TestExtendHandlesStatementKind(t *testing.T) {
	f := newFixture(t, `function f() { emit E(1); emit E(2); }`, Options{})
	seen := 0
	f.b.Extend(ast.StmtEmit, func(b *Builder, stmt ast.StmtID, ctx ctxir.ContextNode) error {
		seen++
		return nil
	})
	if err := f.b.Statement(f.body, false, f.fn); err != nil {
		t.Fatal(err)
	}
	if seen != 2 || f.bag.Len() != 0 {
		t.Errorf("handler ran %d times, %d diagnostics", seen, f.bag.Len())
	}

	f2 := newFixture(t, `function f() { emit E(1); }`, Options{})
	f2.b.Extend(ast.StmtEmit, func(*Builder, ast.StmtID, ctxir.ContextNode) error { return nil })
	f2.b.Extend(ast.StmtEmit, nil)
	if err := f2.b.Statement(f2.body, false, f2.fn); err != nil {
		t.Fatal(err)
	}
	if f2.bag.Count(diag.IRUnsupportedConstruct) != 1 {
		t.Error("removed handler still runs")
	}
}

func TestUnsupportedExpression(t *testing.T) {
	f := build(t, `function f(uint x) { x = x ** 2; -x; x = 1; }`, Options{})
	if got := f.bag.Count(diag.IRUnsupportedConstruct); got != 2 {
		t.Errorf("expected 2 unsupported diagnostics, got %d", got)
	}
	x := f.varOf(t, f.body0(t), "x")
	if h := x.Latest(f.g).History(f.g); len(h) != 2 {
		t.Errorf("expected only the last assignment to land, history %d", len(h))
	}
}

func TestErrKindCodes(t *testing.T) {
	tests := []struct {
		kind        ErrKind
		code        diag.Code
		recoverable bool
		sentinel    error
	}{
		{KindNodeKindMismatch, diag.IRNodeKindMismatch, false, ErrNodeKindMismatch},
		{KindMissingEnclosingFunction, diag.IRMissingEnclosingFunction, false, ErrMissingEnclosingFunction},
		{KindUnsupportedConstruct, diag.IRUnsupportedConstruct, true, ErrUnsupported},
		{KindEmptyEvaluationResult, diag.IREmptyEvaluationResult, false, ErrEmptyEvaluation},
		{KindUnresolvedName, diag.IRUnresolvedName, true, ErrUnresolvedName},
	}
	for _, tt := range tests {
		if tt.kind.Code() != tt.code || tt.kind.Recoverable() != tt.recoverable {
			t.Errorf("%s: code %s recoverable %v", tt.kind, tt.kind.Code(), tt.kind.Recoverable())
		}
		err := error(&Error{Kind: tt.kind, Detail: "x"})
		if !errors.Is(err, tt.sentinel) {
			t.Errorf("%s does not match its sentinel", tt.kind)
		}
	}
}

func TestParseSeedMode(t *testing.T) {
	for in, want := range map[string]SeedMode{"entry": SeedFunctionEntry, "": SeedFunctionEntry, "every": SeedEveryScope} {
		if got, ok := ParseSeedMode(in); !ok || got != want {
			t.Errorf("ParseSeedMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseSeedMode("sometimes"); ok {
		t.Error("accepted unknown mode")
	}
}
