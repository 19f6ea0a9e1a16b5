package graph

import (
	"errors"
	"testing"
)

type testNode struct{ kind NodeKind }

func (n *testNode) Kind() NodeKind { return n.kind }

func TestIDsAreStableAndOneBased(t *testing.T) {
	g := New(0)
	a := g.AddNode(&testNode{KindContext})
	b := g.AddNode(&testNode{KindContextVar})
	if a != 1 || b != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", a, b)
	}
	first := g.Node(a)
	for range 100 {
		g.AddNode(&testNode{KindContextVar})
	}
	if g.Node(a) != first {
		t.Fatal("node identity changed after insertions")
	}
	if g.Node(NoNodeID) != nil || g.Node(1000) != nil {
		t.Fatal("out-of-range lookup must return nil")
	}
}

func TestEdgesFilteredInInsertionOrder(t *testing.T) {
	g := New(0)
	scope := g.AddNode(&testNode{KindContext})
	v1 := g.AddNode(&testNode{KindContextVar})
	v2 := g.AddNode(&testNode{KindContextVar})
	v3 := g.AddNode(&testNode{KindContextVar})
	g.MustAddEdge(v2, scope, EdgeVariable)
	g.MustAddEdge(v1, scope, EdgeCall)
	g.MustAddEdge(v1, scope, EdgeVariable)
	g.MustAddEdge(v3, v2, EdgePrev)

	got := g.Sources(scope, EdgeVariable)
	if len(got) != 2 || got[0] != v2 || got[1] != v1 {
		t.Fatalf("Variable sources = %v, want [%d %d]", got, v2, v1)
	}
	if n := len(g.Edges(scope, Incoming, AnyEdge)); n != 3 {
		t.Fatalf("incoming edges = %d, want 3", n)
	}
	if tg := g.Targets(v3, EdgePrev); len(tg) != 1 || tg[0] != v2 {
		t.Fatalf("Prev targets = %v", tg)
	}
	if _, err := g.AddEdge(v1, 99, EdgePrev); !errors.Is(err, ErrNoSuchNode) {
		t.Fatalf("expected ErrNoSuchNode, got %v", err)
	}
}

func TestSearchForAncestor(t *testing.T) {
	g := New(0)
	fn := g.AddNode(&testNode{KindFunction})
	outer := g.AddNode(&testNode{KindContext})
	inner := g.AddNode(&testNode{KindContext})
	orphan := g.AddNode(&testNode{KindContext})
	g.MustAddEdge(outer, fn, EdgeContext)
	g.MustAddEdge(inner, outer, EdgeSubcontext)

	if got, ok := g.SearchForAncestor(inner, EdgeContext); !ok || got != fn {
		t.Fatalf("ancestor of inner = %d, %v; want %d", got, ok, fn)
	}
	if _, ok := g.SearchForAncestor(orphan, EdgeContext); ok {
		t.Fatal("orphan scope must have no function ancestor")
	}
}

func TestLookupKindMismatch(t *testing.T) {
	g := New(0)
	id := g.AddNode(&testNode{KindBuiltin})

	type other struct{ testNode }
	_, err := Lookup[*other](g, id, KindContext)
	var km *KindMismatchError
	if !errors.As(err, &km) {
		t.Fatalf("expected KindMismatchError, got %v", err)
	}
	if km.Want != KindContext || km.Got != KindBuiltin {
		t.Fatalf("unexpected mismatch %+v", km)
	}
	if n, err := Lookup[*testNode](g, id, KindBuiltin); err != nil || n.kind != KindBuiltin {
		t.Fatalf("Lookup = %v, %v", n, err)
	}
}

func TestParseEdgeKind(t *testing.T) {
	for k := EdgeContext; k <= EdgeFunctionReturn; k++ {
		got, ok := ParseEdgeKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseEdgeKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseEdgeKind("Invalid"); ok {
		t.Error("Invalid must not parse")
	}
}
