package builder

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/bignum"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/diag"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/ranges"
	"ctxgraph/internal/source"
)

// DeclareVar handles `T name [= init];`. The declared version joins ctx;
// an initializer contributes its range like an assignment does, otherwise
// the variable starts zeroed.
func DeclareVar(b *Builder, stmt ast.StmtID, ctx ctxir.ContextNode) error {
	d, ok := b.arenas.Stmts.VarDecl(stmt)
	if !ok {
		return newError(KindNodeKindMismatch, b.arenas.Stmts.Get(stmt).Span, "expected variable declaration")
	}
	span := b.arenas.Stmts.Get(stmt).Span
	name := b.arenas.Name(d.Name)

	if prev, exists := ctx.VarByName(b.g, name); exists {
		diag.ReportWarning(b.opts.Reporter, diag.IRDuplicateDeclaration, d.NameSpan, "redeclaration of "+name).
			WithNote(b.spanOf(prev.ID()), "previous declaration").
			Emit()
		return nil
	}

	typ := b.DeclaredType(d.Type)
	var rng *ranges.Range
	if d.Init.IsValid() {
		init, err := b.first(d.Init, span, ctx)
		if err != nil {
			return err
		}
		if known := b.knownRange(init); known != nil {
			cp := *known
			rng = &cp
		} else {
			rng = &ranges.Range{
				Min: ranges.Dynamic(init, ranges.Min, span),
				Max: ranges.Dynamic(init, ranges.Max, span),
			}
		}
	} else if b.rangeOfType(typ) != nil {
		rng = ranges.Exact(bignum.Int{})
	}

	b.attach(&ctxir.ContextVar{
		Name:    name,
		Display: name,
		Span:    span,
		HasSpan: true,
		Type:    typ,
		Range:   rng,
	}, ctx)
	return nil
}

// DeclaredType interns elementary types and arrays of them; other types
// are left untyped.
func (b *Builder) DeclaredType(expr ast.ExprID) graph.NodeID {
	e := b.arenas.Exprs.Get(expr)
	if e == nil {
		return graph.NoNodeID
	}
	switch e.Kind {
	case ast.ExprElementaryType:
		d, _ := b.arenas.Exprs.ElementaryType(expr)
		id, err := b.elementary(d, e.Span)
		if err != nil {
			return graph.NoNodeID
		}
		return id
	case ast.ExprIndex:
		d, _ := b.arenas.Exprs.Index(expr)
		if d.Index.IsValid() {
			return graph.NoNodeID
		}
		elem := b.DeclaredType(d.Base)
		if !elem.IsValid() {
			return graph.NoNodeID
		}
		return b.reg.ArrayOf(elem)
	default:
		return graph.NoNodeID
	}
}

func (b *Builder) spanOf(id graph.NodeID) source.Span {
	if cv, err := graph.Lookup[*ctxir.ContextVar](b.g, id, graph.KindContextVar); err == nil {
		return cv.Span
	}
	return source.Span{}
}
