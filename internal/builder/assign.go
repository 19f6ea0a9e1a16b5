package builder

import (
	"fmt"

	"ctxgraph/internal/ast"
	"ctxgraph/internal/bignum"
	"ctxgraph/internal/builtins"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/ranges"
	"ctxgraph/internal/source"
)

// assign lowers lhs = rhs: the new version of lhs takes rhs's range when it
// is known and a deferred reference to rhs otherwise.
func (b *Builder) assign(span source.Span, lhs, rhs ast.ExprID, ctx ctxir.ContextNode) (graph.NodeID, error) {
	l, err := b.first(lhs, span, ctx)
	if err != nil {
		return graph.NoNodeID, err
	}
	r, err := b.first(rhs, span, ctx)
	if err != nil {
		return graph.NoNodeID, err
	}

	var rng ranges.Range
	if known := b.knownRange(r); known != nil {
		rng = *known
	} else {
		rng = ranges.Range{
			Min: ranges.Dynamic(r, ranges.Min, span),
			Max: ranges.Dynamic(r, ranges.Max, span),
		}
	}

	nv, err := b.advanceVar(l, span)
	if err != nil {
		return graph.NoNodeID, err
	}
	if err := nv.SetRange(b.g, &rng); err != nil {
		return graph.NoNodeID, lookupErr(err, span)
	}
	return nv.ID(), nil
}

// advanceVar records a write to v at span: the newest version is cloned
// with the new location and linked to it by Prev. Existing nodes are never
// modified.
func (b *Builder) advanceVar(v graph.NodeID, span source.Span) (ctxir.VarNode, error) {
	latest := ctxir.VarNode(v).Latest(b.g)
	cv, err := latest.Underlying(b.g)
	if err != nil {
		return 0, lookupErr(err, span)
	}
	next := cv.Clone()
	next.Span = span
	next.HasSpan = true
	id := b.g.AddNode(next)
	b.g.MustAddEdge(id, latest.ID(), graph.EdgePrev)
	return ctxir.VarNode(id), nil
}

// knownRange returns the range of a version, nil when id is not a
// version or its range is unknown.
func (b *Builder) knownRange(id graph.NodeID) *ranges.Range {
	cv, err := graph.Lookup[*ctxir.ContextVar](b.g, id, graph.KindContextVar)
	if err != nil {
		return nil
	}
	return cv.Range
}

// bound is one side of id's range, or a deferred reference when unknown.
func (b *Builder) bound(id graph.NodeID, side ranges.Side, span source.Span) ranges.Elem {
	if r := b.knownRange(id); r != nil {
		if side == ranges.Min && r.Min.IsValid() {
			return r.Min
		}
		if side == ranges.Max && r.Max.IsValid() {
			return r.Max
		}
	}
	return ranges.Dynamic(id, side, span)
}

// opExpr lowers an arithmetic operator. The pure form yields a temporary;
// the compound form (assign) yields a new version of lhs. Operands are
// never versioned by the pure form.
func (b *Builder) opExpr(span source.Span, lhs, rhs ast.ExprID, ctx ctxir.ContextNode, op ranges.Op, assign bool) (graph.NodeID, error) {
	l, err := b.first(lhs, span, ctx)
	if err != nil {
		return graph.NoNodeID, err
	}
	r, err := b.first(rhs, span, ctx)
	if err != nil {
		return graph.NoNodeID, err
	}

	rng := b.arith(l, op, r, span)

	if assign {
		if _, err := graph.Lookup[*ctxir.ContextVar](b.g, l, graph.KindContextVar); err != nil {
			return graph.NoNodeID, lookupErr(err, span)
		}
		nv, err := b.advanceVar(l, span)
		if err != nil {
			return graph.NoNodeID, err
		}
		if err := nv.SetRange(b.g, rng); err != nil {
			return graph.NoNodeID, lookupErr(err, span)
		}
		return nv.ID(), nil
	}

	display := fmt.Sprintf("(%s %s %s)", b.display(l), op, b.display(r))
	return b.tmp(ctx, span, display, b.typeOf(l), rng)
}

// arith is the range of l op r. When the operator has no bound form for the
// operands, the result falls back to the full range of l's type, which
// checked arithmetic cannot leave, and to unknown without a type.
func (b *Builder) arith(l graph.NodeID, op ranges.Op, r graph.NodeID, span source.Span) *ranges.Range {
	lr := ranges.Range{Min: b.bound(l, ranges.Min, span), Max: b.bound(l, ranges.Max, span)}
	rr := ranges.Range{Min: b.bound(r, ranges.Min, span), Max: b.bound(r, ranges.Max, span)}
	if rng, ok := ranges.Apply(lr, op, rr); ok {
		return &rng
	}
	if typ := b.typeOf(l); typ.IsValid() {
		return b.rangeOfType(typ)
	}
	return b.rangeOfType(b.typeOf(r))
}

// cmp lowers a comparison into a temporary bool: [0, 1], or the folded
// answer when both operands are single values.
func (b *Builder) cmp(span source.Span, lhs ast.ExprID, op ranges.Op, rhs ast.ExprID, ctx ctxir.ContextNode) (graph.NodeID, error) {
	l, err := b.first(lhs, span, ctx)
	if err != nil {
		return graph.NoNodeID, err
	}
	r, err := b.first(rhs, span, ctx)
	if err != nil {
		return graph.NoNodeID, err
	}
	rng := ranges.Bool()
	if lv, ok := b.exact(l); ok {
		if rv, ok := b.exact(r); ok {
			rng = &ranges.Range{Min: ranges.Fold(lv, op, rv), Max: ranges.Fold(lv, op, rv)}
		}
	}
	display := fmt.Sprintf("(%s %s %s)", b.display(l), op, b.display(r))
	boolType := b.reg.Intern(builtins.Type{Kind: builtins.KindBool})
	return b.tmp(ctx, span, display, boolType, rng)
}

// tmp inserts a temporary named after ctx's counter. Temporaries are not
// scope members, so name lookup never finds them.
func (b *Builder) tmp(ctx ctxir.ContextNode, span source.Span, display string, typ graph.NodeID, rng *ranges.Range) (graph.NodeID, error) {
	n, err := ctx.NewTmp(b.g)
	if err != nil {
		return graph.NoNodeID, lookupErr(err, span)
	}
	return b.g.AddNode(&ctxir.ContextVar{
		Name:    fmt.Sprintf("tmp%d", n),
		Display: display,
		Span:    span,
		HasSpan: true,
		Type:    typ,
		Tmp:     true,
		Range:   rng,
	}), nil
}

func (b *Builder) display(id graph.NodeID) string {
	switch n := b.g.Node(id).(type) {
	case *ctxir.ContextVar:
		if n.Display != "" {
			return n.Display
		}
		return n.Name
	case *ctxir.Function:
		return n.Name
	case *builtins.Node:
		return n.Name
	default:
		return fmt.Sprintf("#%d", id)
	}
}

func (b *Builder) typeOf(id graph.NodeID) graph.NodeID {
	if cv, err := graph.Lookup[*ctxir.ContextVar](b.g, id, graph.KindContextVar); err == nil {
		return cv.Type
	}
	return graph.NoNodeID
}

// exact returns the value of a version whose range is a single number.
func (b *Builder) exact(id graph.NodeID) (ranges.Elem, bool) {
	r := b.knownRange(id)
	if !r.IsConcrete() || r.Min.Value.Cmp(r.Max.Value) != 0 {
		return ranges.Elem{}, false
	}
	return r.Min, true
}

func concrete(v int64) ranges.Elem { return ranges.Concrete(bignum.FromInt64(v)) }
