package ctxir

import (
	"errors"
	"testing"

	"ctxgraph/internal/bignum"
	"ctxgraph/internal/builtins"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/ranges"
)

func newScope(t *testing.T) (*graph.Graph, FunctionNode, ContextNode) {
	t.Helper()
	g := graph.New(0)
	fn := FunctionNode(g.AddNode(&Function{Name: "f"}))
	ctx := ContextNode(g.AddNode(&Context{}))
	g.MustAddEdge(ctx.ID(), fn.ID(), graph.EdgeContext)
	return g, fn, ctx
}

func attach(g *graph.Graph, ctx ContextNode, name string) VarNode {
	id := g.AddNode(&ContextVar{Name: name, Display: name})
	g.MustAddEdge(id, ctx.ID(), graph.EdgeVariable)
	return VarNode(id)
}

func advance(g *graph.Graph, v VarNode) VarNode {
	cv, _ := v.Underlying(g)
	id := g.AddNode(cv.Clone())
	g.MustAddEdge(id, v.ID(), graph.EdgePrev)
	return VarNode(id)
}

func TestVarByNameFirstMatch(t *testing.T) {
	g, _, ctx := newScope(t)
	a1 := attach(g, ctx, "a")
	attach(g, ctx, "b")
	attach(g, ctx, "a")

	if got := ctx.Vars(g); len(got) != 3 {
		t.Fatalf("Vars = %v, want 3 entries", got)
	}
	if got, ok := ctx.VarByName(g, "a"); !ok || got != a1 {
		t.Fatalf("VarByName(a) = %d, %v; want %d", got, ok, a1)
	}
	if _, ok := ctx.VarByName(g, "zz"); ok {
		t.Fatal("unexpected match")
	}
}

func TestLatestVarByNameFollowsPrev(t *testing.T) {
	g, _, ctx := newScope(t)
	a := attach(g, ctx, "a")
	a2 := advance(g, a)
	a3 := advance(g, a2)

	got, ok := ctx.LatestVarByName(g, "a")
	if !ok || got != a3 {
		t.Fatalf("LatestVarByName = %d, want %d", got, a3)
	}
	if h := a3.History(g); len(h) != 3 || h[2] != a {
		t.Fatalf("History = %v", h)
	}
	if a.Latest(g) != a3 || a2.Latest(g) != a3 {
		t.Fatal("Latest must be the same from every version")
	}
}

func TestNewTmpIsMonotonic(t *testing.T) {
	g, _, ctx := newScope(t)
	for want := uint32(0); want < 3; want++ {
		got, err := ctx.NewTmp(g)
		if err != nil || got != want {
			t.Fatalf("NewTmp = %d, %v; want %d", got, err, want)
		}
	}
	c, _ := ctx.Underlying(g)
	if c.TmpCounter != 3 {
		t.Fatalf("TmpCounter = %d", c.TmpCounter)
	}
}

func TestNewTmpOnWrongKind(t *testing.T) {
	g, fn, _ := newScope(t)
	_, err := ContextNode(fn).NewTmp(g)
	var km *graph.KindMismatchError
	if !errors.As(err, &km) || km.Got != graph.KindFunction {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
}

func TestAssociatedFnThroughNesting(t *testing.T) {
	g, fn, ctx := newScope(t)
	inner := ContextNode(g.AddNode(&Context{}))
	g.MustAddEdge(inner.ID(), ctx.ID(), graph.EdgeSubcontext)

	if got, ok := inner.AssociatedFn(g); !ok || got != fn {
		t.Fatalf("AssociatedFn = %d, %v", got, ok)
	}
	if p, ok := inner.Parent(g); !ok || p != ctx {
		t.Fatalf("Parent = %d, %v", p, ok)
	}
	orphan := ContextNode(g.AddNode(&Context{}))
	if _, ok := orphan.AssociatedFn(g); ok {
		t.Fatal("orphan scope has no function")
	}
}

func TestSetRangeOnlyOnFreshVersions(t *testing.T) {
	g, _, ctx := newScope(t)
	a := attach(g, ctx, "a")
	fresh := VarNode(g.AddNode(&ContextVar{Name: "a"}))

	if err := fresh.SetRange(g, ranges.Exact(bignum.FromInt64(4))); err != nil {
		t.Fatalf("SetRange(fresh) = %v", err)
	}
	if r, _ := fresh.Range(g); r.String() != "[4, 4]" {
		t.Fatalf("Range = %s", r)
	}
	if err := a.SetRange(g, nil); !errors.Is(err, ErrFrozen) {
		t.Fatalf("SetRange(referenced) = %v, want ErrFrozen", err)
	}
}

func TestVarFromParamDeclines(t *testing.T) {
	g := graph.New(0)
	reg := builtins.NewRegistry(g)
	uintID := reg.Intern(builtins.Type{Kind: builtins.KindUint, Size: 256})

	if _, ok := VarFromParam(reg, &FunctionParam{Type: uintID}); ok {
		t.Error("unnamed parameter accepted")
	}
	if _, ok := VarFromParam(reg, &FunctionParam{Name: "m"}); ok {
		t.Error("parameter without builtin type accepted")
	}
	v, ok := VarFromParam(reg, &FunctionParam{Name: "x", Type: uintID})
	if !ok || v.Name != "x" || v.Range == nil || v.Range.Min.String() != "0" {
		t.Fatalf("VarFromParam = %+v, %v", v, ok)
	}
	ret, ok := VarFromReturn(reg, &FunctionReturn{Name: "y", Type: uintID})
	if !ok || ret.Range.String() != "[0, 0]" {
		t.Fatalf("VarFromReturn = %+v, %v", ret, ok)
	}
}
