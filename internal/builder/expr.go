package builder

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/ranges"
	"ctxgraph/internal/source"
)

// Expr evaluates expr in ctx and returns its value nodes. Most expressions
// yield one node; multi-part string literals yield one per part, and
// require/assert calls yield none.
func (b *Builder) Expr(expr ast.ExprID, ctx ctxir.ContextNode) ([]graph.NodeID, error) {
	e := b.arenas.Exprs.Get(expr)
	if e == nil {
		return nil, newError(KindNodeKindMismatch, source.Span{}, "expression %d does not exist", expr)
	}
	exprs := b.arenas.Exprs

	switch e.Kind {
	case ast.ExprIdent:
		d, _ := exprs.Ident(expr)
		return b.one(b.variable(b.arenas.Name(d.Name), e.Span, ctx))

	case ast.ExprNumber, ast.ExprAddress, ast.ExprBool, ast.ExprString, ast.ExprHexString:
		return b.literal(expr, e, ctx)

	case ast.ExprBinary:
		d, _ := exprs.Binary(expr)
		return b.binary(d, e.Span, ctx)

	case ast.ExprIndex:
		d, _ := exprs.Index(expr)
		if !d.Index.IsValid() {
			return b.one(b.arrayType(d.Base, e.Span, ctx))
		}
		return b.one(b.indexAccess(d, e.Span, ctx))

	case ast.ExprElementaryType:
		d, _ := exprs.ElementaryType(expr)
		return b.one(b.elementary(d, e.Span))

	case ast.ExprMember:
		d, _ := exprs.Member(expr)
		return b.one(b.memberAccess(d, e.Span, ctx))

	case ast.ExprCall:
		d, _ := exprs.Call(expr)
		return b.call(d, e.Span, ctx)

	default:
		return nil, unsupported(e.Span, e.Kind.String())
	}
}

func (b *Builder) one(id graph.NodeID, err error) ([]graph.NodeID, error) {
	if err != nil {
		return nil, err
	}
	return []graph.NodeID{id}, nil
}

// first evaluates expr and keeps its first value.
func (b *Builder) first(expr ast.ExprID, span source.Span, ctx ctxir.ContextNode) (graph.NodeID, error) {
	res, err := b.Expr(expr, ctx)
	if err != nil {
		return graph.NoNodeID, err
	}
	if len(res) == 0 {
		return graph.NoNodeID, newError(KindEmptyEvaluationResult, span, "operand yields no value")
	}
	return res[0], nil
}

var arithOps = map[ast.BinaryOp]ranges.Op{
	ast.OpAdd: ranges.OpAdd,
	ast.OpSub: ranges.OpSub,
	ast.OpMul: ranges.OpMul,
	ast.OpDiv: ranges.OpDiv,
	ast.OpMod: ranges.OpMod,
}

var compoundOps = map[ast.BinaryOp]ranges.Op{
	ast.OpAssignAdd: ranges.OpAdd,
	ast.OpAssignSub: ranges.OpSub,
	ast.OpAssignMul: ranges.OpMul,
	ast.OpAssignDiv: ranges.OpDiv,
	ast.OpAssignMod: ranges.OpMod,
}

var cmpOps = map[ast.BinaryOp]ranges.Op{
	ast.OpEq:  ranges.OpEq,
	ast.OpNeq: ranges.OpNeq,
	ast.OpLt:  ranges.OpLt,
	ast.OpGt:  ranges.OpGt,
	ast.OpLe:  ranges.OpLte,
	ast.OpGe:  ranges.OpGte,
}

func (b *Builder) binary(d *ast.BinaryData, span source.Span, ctx ctxir.ContextNode) ([]graph.NodeID, error) {
	if op, ok := arithOps[d.Op]; ok {
		return b.one(b.opExpr(span, d.Left, d.Right, ctx, op, false))
	}
	if op, ok := compoundOps[d.Op]; ok {
		return b.one(b.opExpr(span, d.Left, d.Right, ctx, op, true))
	}
	if op, ok := cmpOps[d.Op]; ok {
		return b.one(b.cmp(span, d.Left, op, d.Right, ctx))
	}
	if d.Op == ast.OpAssign {
		return b.one(b.assign(span, d.Left, d.Right, ctx))
	}
	return nil, unsupported(span, "operator "+d.Op.String())
}

// variable resolves name: scope chain first, then visible functions, then
// builtin functions and environment globals.
func (b *Builder) variable(name string, span source.Span, ctx ctxir.ContextNode) (graph.NodeID, error) {
	for c, ok := ctx, true; ok; c, ok = c.Parent(b.g) {
		if v, found := c.LatestVarByName(b.g, name); found {
			return v.ID(), nil
		}
	}
	if b.opts.Resolver != nil {
		if fn, ok := b.opts.Resolver.ResolveFunction(ctx, name); ok {
			return fn.ID(), nil
		}
	}
	if id, ok := b.builtinFn(name); ok {
		return id, nil
	}
	if id, ok := b.global(name, span); ok {
		return id, nil
	}
	return graph.NoNodeID, newError(KindUnresolvedName, span, "%q", name)
}
