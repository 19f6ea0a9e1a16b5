package ranges

import (
	"testing"

	"ctxgraph/internal/bignum"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/source"
)

func TestFoldConcrete(t *testing.T) {
	two, three := Concrete(bignum.FromInt64(2)), Concrete(bignum.FromInt64(3))
	tests := []struct {
		op   Op
		want string
	}{
		{OpAdd, "5"},
		{OpSub, "-1"},
		{OpMul, "6"},
		{OpDiv, "0"},
		{OpMod, "2"},
		{OpLt, "1"},
		{OpGte, "0"},
		{OpNeq, "1"},
	}
	for _, tt := range tests {
		got := Fold(two, tt.op, three)
		if !got.IsConcrete() || got.String() != tt.want {
			t.Errorf("2 %s 3 = %s, want %s", tt.op, got, tt.want)
		}
	}
}

func TestFoldKeepsDeferredBounds(t *testing.T) {
	span := source.Span{File: 1, Start: 4, End: 9}
	dyn := Dynamic(graph.NodeID(7), Max, span)
	got := Fold(dyn, OpSub, Concrete(bignum.FromInt64(1)))
	if got.Kind != ElemExpr {
		t.Fatalf("kind = %v, want ElemExpr", got.Kind)
	}
	if got.String() != "(#7.max - 1)" {
		t.Fatalf("String = %s", got)
	}
	refs := got.Refs()
	if len(refs) != 1 || refs[0] != 7 {
		t.Fatalf("Refs = %v", refs)
	}
}

func TestDivByZeroStaysSymbolic(t *testing.T) {
	got := Fold(Concrete(bignum.FromInt64(1)), OpDiv, Concrete(bignum.Int{}))
	if got.Kind != ElemExpr {
		t.Fatalf("1/0 folded to %s", got)
	}
}

func TestWidthRanges(t *testing.T) {
	if got := Uint(8).String(); got != "[0, 255]" {
		t.Errorf("Uint(8) = %s", got)
	}
	if got := Int(8).String(); got != "[-128, 127]" {
		t.Errorf("Int(8) = %s", got)
	}
	var unknown *Range
	if unknown.IsConcrete() || unknown.String() != "[?]" {
		t.Error("nil range must read as unknown")
	}
}

func TestElemEqual(t *testing.T) {
	span := source.Span{File: 1, Start: 0, End: 1}
	a := NewExpr(Dynamic(3, Min, span), OpAdd, Concrete(bignum.FromInt64(1)))
	b := NewExpr(Dynamic(3, Min, span), OpAdd, Concrete(bignum.FromInt64(1)))
	c := NewExpr(Dynamic(3, Max, span), OpAdd, Concrete(bignum.FromInt64(1)))
	if !a.Equal(b) || a.Equal(c) {
		t.Fatal("structural equality broken")
	}
}

func between(lo, hi int64) Range {
	return Range{Min: Concrete(bignum.FromInt64(lo)), Max: Concrete(bignum.FromInt64(hi))}
}

func TestApplyConcrete(t *testing.T) {
	tests := []struct {
		name string
		l    Range
		op   Op
		r    Range
		want string
	}{
		{"add", between(0, 255), OpAdd, between(1, 1), "[1, 256]"},
		{"sub", between(0, 10), OpSub, between(2, 3), "[-3, 8]"},
		{"mul signed", between(-128, 127), OpMul, between(-128, 127), "[-16256, 16384]"},
		{"mul mixed", between(-2, 3), OpMul, between(4, 5), "[-10, 15]"},
		{"div", between(0, 255), OpDiv, between(1, 255), "[0, 255]"},
		{"div skips zero", between(10, 20), OpDiv, between(0, 5), "[2, 20]"},
		{"div negative divisor", between(10, 20), OpDiv, between(-5, -2), "[-10, -2]"},
		{"mod", between(0, 10), OpMod, between(3, 3), "[0, 2]"},
		{"mod small dividend", between(0, 1), OpMod, between(7, 7), "[0, 1]"},
		{"mod signed", between(-128, 127), OpMod, between(-10, 10), "[-9, 9]"},
		{"mod negative dividend", between(-5, -1), OpMod, between(10, 10), "[-5, 0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Apply(tt.l, tt.op, tt.r)
			if !ok {
				t.Fatal("no range")
			}
			if got.String() != tt.want {
				t.Errorf("%s %s %s = %s, want %s", &tt.l, tt.op, &tt.r, &got, tt.want)
			}
			if got.Empty() {
				t.Errorf("inverted range %s", &got)
			}
		})
	}
}

func TestApplyRejectsUnsoundForms(t *testing.T) {
	dyn := Range{Min: Dynamic(3, Min, source.Span{}), Max: Dynamic(3, Max, source.Span{})}
	tests := []struct {
		name string
		l    Range
		op   Op
		r    Range
	}{
		{"mul unknown sign", dyn, OpMul, between(2, 2)},
		{"div unknown sign", dyn, OpDiv, between(2, 2)},
		{"mod unknown sign", dyn, OpMod, between(2, 2)},
		{"div by zero only", between(1, 5), OpDiv, between(0, 0)},
		{"mod by zero only", between(1, 5), OpMod, between(0, 0)},
	}
	for _, tt := range tests {
		if got, ok := Apply(tt.l, tt.op, tt.r); ok {
			t.Errorf("%s: got %s, want no range", tt.name, &got)
		}
	}
}

func TestApplyNonNegativeDeferred(t *testing.T) {
	hi := Dynamic(9, Max, source.Span{})
	l := Range{Min: Concrete(bignum.FromInt64(2)), Max: hi}

	got, ok := Apply(l, OpMul, between(3, 3))
	if !ok || got.String() != "[6, (#9.max * 3)]" {
		t.Errorf("mul = %s, %v", &got, ok)
	}
	got, ok = Apply(between(0, 100), OpDiv, Range{Min: Concrete(bignum.Int{}), Max: hi})
	if !ok || got.String() != "[(0 / #9.max), 100]" {
		t.Errorf("div = %s, %v", &got, ok)
	}
	got, ok = Apply(between(0, 100), OpMod, Range{Min: Concrete(bignum.FromInt64(1)), Max: hi})
	if !ok || got.String() != "[0, (#9.max - 1)]" {
		t.Errorf("mod = %s, %v", &got, ok)
	}
}

func TestIntersect(t *testing.T) {
	dyn := Dynamic(4, Max, source.Span{})
	tests := []struct {
		name string
		r, c Range
		want string
	}{
		{"tighter max kept", between(0, 10), Range{Max: Concrete(bignum.FromInt64(100))}, "[0, 10]"},
		{"tighter min taken", between(0, 255), Range{Min: Concrete(bignum.FromInt64(5))}, "[5, 255]"},
		{"both", between(0, 255), between(3, 7), "[3, 7]"},
		{"deferred wins", between(0, 255), Range{Max: dyn}, "[0, #4.max]"},
	}
	for _, tt := range tests {
		if got := Intersect(tt.r, tt.c); got.String() != tt.want {
			t.Errorf("%s: %s", tt.name, &got)
		}
	}
	empty := Intersect(between(0, 255), Range{Min: Concrete(bignum.FromInt64(300))})
	if !empty.Empty() {
		t.Errorf("%s should be empty", &empty)
	}
}
