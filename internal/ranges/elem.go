package ranges

import (
	"fmt"

	"ctxgraph/internal/bignum"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/source"
)

// Side picks the lower or upper bound of a range.
type Side uint8

const (
	Min Side = iota
	Max
)

func (s Side) String() string {
	if s == Max {
		return "max"
	}
	return "min"
}

type ElemKind uint8

const (
	ElemConcrete ElemKind = iota + 1
	ElemDynamic
	ElemExpr
)

// Elem is one range bound. The zero value is invalid.
type Elem struct {
	Kind ElemKind

	// ElemConcrete
	Value bignum.Int

	// ElemDynamic: "whatever Node's Side bound resolves to", recorded at Span.
	Node graph.NodeID
	Side Side
	Span source.Span

	// ElemExpr
	Expr *Expression
}

// Expression is Lhs Op Rhs left unevaluated.
type Expression struct {
	Lhs Elem
	Op  Op
	Rhs Elem
}

func Concrete(v bignum.Int) Elem { return Elem{Kind: ElemConcrete, Value: v} }

func Dynamic(node graph.NodeID, side Side, span source.Span) Elem {
	return Elem{Kind: ElemDynamic, Node: node, Side: side, Span: span}
}

func NewExpr(lhs Elem, op Op, rhs Elem) Elem {
	return Elem{Kind: ElemExpr, Expr: &Expression{Lhs: lhs, Op: op, Rhs: rhs}}
}

func (e Elem) IsValid() bool { return e.Kind != 0 }

func (e Elem) IsConcrete() bool { return e.Kind == ElemConcrete }

// Refs lists every node referenced by a deferred bound inside e.
func (e Elem) Refs() []graph.NodeID {
	switch e.Kind {
	case ElemDynamic:
		return []graph.NodeID{e.Node}
	case ElemExpr:
		return append(e.Expr.Lhs.Refs(), e.Expr.Rhs.Refs()...)
	default:
		return nil
	}
}

// Equal is structural equality.
func (e Elem) Equal(o Elem) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case ElemConcrete:
		return e.Value.Cmp(o.Value) == 0
	case ElemDynamic:
		return e.Node == o.Node && e.Side == o.Side && e.Span == o.Span
	case ElemExpr:
		return e.Expr.Op == o.Expr.Op && e.Expr.Lhs.Equal(o.Expr.Lhs) && e.Expr.Rhs.Equal(o.Expr.Rhs)
	default:
		return true
	}
}

func (e Elem) String() string {
	switch e.Kind {
	case ElemConcrete:
		return e.Value.String()
	case ElemDynamic:
		return fmt.Sprintf("#%d.%s", e.Node, e.Side)
	case ElemExpr:
		return fmt.Sprintf("(%s %s %s)", e.Expr.Lhs, e.Expr.Op, e.Expr.Rhs)
	default:
		return "<invalid>"
	}
}
