package builder

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/source"
	"ctxgraph/internal/trace"
)

// Statement lowers stmt under parent, which is a Function for a body block,
// a Context for anything nested, or NoNodeID for a detached block.
// Recoverable errors are reported and swallowed; the returned error aborts
// the enclosing function pass.
func (b *Builder) Statement(stmt ast.StmtID, unchecked bool, parent graph.NodeID) error {
	s := b.arenas.Stmts.Get(stmt)
	if s == nil {
		return newError(KindNodeKindMismatch, source.Span{}, "statement %d does not exist", stmt)
	}

	if s.Kind == ast.StmtBlock {
		blk, _ := b.arenas.Stmts.Block(stmt)
		return b.block(blk, s.Span, unchecked, parent)
	}

	ctx, err := b.contextOf(parent, s.Span)
	if err != nil {
		return err
	}

	switch s.Kind {
	case ast.StmtExpr:
		es, _ := b.arenas.Stmts.Expr(stmt)
		return b.absorb(b.exprStmt(es.Expr, ctx))
	case ast.StmtReturn:
		ret, _ := b.arenas.Stmts.Return(stmt)
		return b.absorb(b.returnStmt(ret.Expr, s.Span, ctx))
	}

	if h, ok := b.handlers[s.Kind]; ok {
		return b.absorb(h(b, stmt, ctx))
	}
	// no handler: report it and leave the graph alone
	b.report(unsupported(s.Span, s.Kind.String()))
	return nil
}

func (b *Builder) contextOf(id graph.NodeID, span source.Span) (ctxir.ContextNode, error) {
	ctx := ctxir.ContextNode(id)
	if _, err := ctx.Underlying(b.g); err != nil {
		return 0, lookupErr(err, span)
	}
	return ctx, nil
}

func (b *Builder) block(blk *ast.BlockData, span source.Span, unchecked bool, parent graph.NodeID) error {
	unchecked = unchecked || blk.Unchecked
	ctx := ctxir.ContextNode(b.g.AddNode(&ctxir.Context{Span: span, Unchecked: unchecked}))

	sp := trace.Begin(b.opts.Tracer, trace.ScopeNode, "block", b.traceParent)
	defer sp.End("")

	if parent.IsValid() {
		switch b.g.Kind(parent) {
		case graph.KindFunction:
			b.g.MustAddEdge(ctx.ID(), parent, graph.EdgeContext)
			if err := b.seed(ctx, ctxir.FunctionNode(parent)); err != nil {
				return err
			}
		case graph.KindContext:
			b.g.MustAddEdge(ctx.ID(), parent, graph.EdgeSubcontext)
			if b.opts.Seed == SeedEveryScope {
				fn, ok := ctx.AssociatedFn(b.g)
				if !ok {
					return newError(KindMissingEnclosingFunction, span, "scope %d", ctx)
				}
				if err := b.seed(ctx, fn); err != nil {
					return err
				}
			}
		}
	}

	for _, sub := range blk.Stmts {
		if err := b.Statement(sub, unchecked, ctx.ID()); err != nil {
			return err
		}
	}
	return nil
}

// seed attaches a fresh version of every accepted parameter and named
// return of fn to ctx.
func (b *Builder) seed(ctx ctxir.ContextNode, fn ctxir.FunctionNode) error {
	if _, err := fn.Underlying(b.g); err != nil {
		return lookupErr(err, source.Span{})
	}
	for _, p := range fn.Params(b.g) {
		if cv, ok := ctxir.VarFromParam(b.reg, p); ok {
			b.attach(cv, ctx)
		}
	}
	for _, r := range fn.Returns(b.g) {
		if cv, ok := ctxir.VarFromReturn(b.reg, r); ok {
			b.attach(cv, ctx)
		}
	}
	return nil
}

// attach inserts cv as a member of ctx.
func (b *Builder) attach(cv *ctxir.ContextVar, ctx ctxir.ContextNode) ctxir.VarNode {
	id := b.g.AddNode(cv)
	b.g.MustAddEdge(id, ctx.ID(), graph.EdgeVariable)
	return ctxir.VarNode(id)
}

func (b *Builder) exprStmt(expr ast.ExprID, ctx ctxir.ContextNode) error {
	res, err := b.Expr(expr, ctx)
	if err != nil {
		return err
	}
	if len(res) > 0 {
		b.g.MustAddEdge(res[0], ctx.ID(), graph.EdgeCall)
	}
	return nil
}

func (b *Builder) returnStmt(expr ast.ExprID, span source.Span, ctx ctxir.ContextNode) error {
	if !expr.IsValid() {
		return nil
	}
	res, err := b.Expr(expr, ctx)
	if err != nil {
		return err
	}
	if len(res) == 0 {
		return newError(KindEmptyEvaluationResult, span, "return value")
	}
	b.g.MustAddEdge(res[0], ctx.ID(), graph.EdgeReturn)
	return nil
}
