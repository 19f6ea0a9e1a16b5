package builder

import (
	"ctxgraph/internal/ast"
	"ctxgraph/internal/builtins"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/ranges"
	"ctxgraph/internal/source"
)

// names the builder resolves to synthetic functions
var builtinFnNames = map[string]bool{
	"require": true,
	"assert":  true,
}

// builtinFn returns the synthetic function node for require/assert.
func (b *Builder) builtinFn(name string) (graph.NodeID, bool) {
	if !builtinFnNames[name] {
		return graph.NoNodeID, false
	}
	if id, ok := b.builtinFns[name]; ok {
		return id, true
	}
	id := b.g.AddNode(&ctxir.Function{Name: name, Builtin: true})
	b.builtinFns[name] = id
	return id, true
}

// call evaluates the callee and then the arguments. A call to a function
// yields the callee itself: return values are not modelled yet. A call to
// an elementary type is a conversion and yields its argument.
func (b *Builder) call(d *ast.CallData, span source.Span, ctx ctxir.ContextNode) ([]graph.NodeID, error) {
	callee, err := b.first(d.Callee, span, ctx)
	if err != nil {
		return nil, err
	}

	switch fn := b.g.Node(callee).(type) {
	case *ctxir.Function:
		if fn.Builtin && builtinFnNames[fn.Name] {
			return nil, b.handleRequire(d.Args, span, ctx)
		}
		for _, arg := range d.Args {
			if _, err := b.Expr(arg, ctx); err != nil {
				return nil, err
			}
		}
		return []graph.NodeID{callee}, nil

	case *builtins.Node:
		if len(d.Args) != 1 {
			return nil, unsupported(span, "conversion to "+fn.Name+" with multiple arguments")
		}
		return b.one(b.first(d.Args[0], span, ctx))

	case *ctxir.ContextVar:
		return nil, unsupported(span, "call through value "+b.display(callee))

	default:
		return nil, newError(KindNodeKindMismatch, span, "callee is %s, want function", b.g.Kind(callee))
	}
}

// handleRequire installs the constraint of require(l op r) as narrowed
// versions of the compared variables. Remaining arguments are evaluated for
// their side effects only.
func (b *Builder) handleRequire(args []ast.ExprID, span source.Span, ctx ctxir.ContextNode) error {
	if len(args) == 0 {
		return nil
	}

	narrowed := false
	if bin, ok := b.arenas.Exprs.Binary(args[0]); ok {
		if op, isCmp := cmpOps[bin.Op]; isCmp && op != ranges.OpNeq {
			l, err := b.first(bin.Left, span, ctx)
			if err != nil {
				return err
			}
			r, err := b.first(bin.Right, span, ctx)
			if err != nil {
				return err
			}
			if err := b.narrow(l, op, r, span); err != nil {
				return err
			}
			if err := b.narrow(r, op.Mirror(), l, span); err != nil {
				return err
			}
			narrowed = true
		}
	}
	if !narrowed {
		if _, err := b.Expr(args[0], ctx); err != nil {
			return err
		}
	}

	for _, arg := range args[1:] {
		if _, err := b.Expr(arg, ctx); err != nil {
			return err
		}
	}
	return nil
}

// narrow writes a new version of v constrained by "v op other", intersected
// with what is already known about v. Constants and temporaries are left
// alone, and so is a constraint no value can meet: the code after such a
// require never runs.
func (b *Builder) narrow(v graph.NodeID, op ranges.Op, other graph.NodeID, span source.Span) error {
	cv, err := graph.Lookup[*ctxir.ContextVar](b.g, v, graph.KindContextVar)
	if err != nil || cv.Tmp {
		return nil
	}

	var c ranges.Range
	switch op {
	case ranges.OpLt:
		c.Max = ranges.Fold(b.bound(other, ranges.Max, span), ranges.OpSub, concrete(1))
	case ranges.OpLte:
		c.Max = b.bound(other, ranges.Max, span)
	case ranges.OpGt:
		c.Min = ranges.Fold(b.bound(other, ranges.Min, span), ranges.OpAdd, concrete(1))
	case ranges.OpGte:
		c.Min = b.bound(other, ranges.Min, span)
	case ranges.OpEq:
		c.Min = b.bound(other, ranges.Min, span)
		c.Max = b.bound(other, ranges.Max, span)
	default:
		return nil
	}

	cur := ranges.Range{Min: b.bound(v, ranges.Min, span), Max: b.bound(v, ranges.Max, span)}
	rng := ranges.Intersect(cur, c)
	if rng.Empty() {
		return nil
	}

	nv, err := b.advanceVar(v, span)
	if err != nil {
		return err
	}
	return lookupErr(nv.SetRange(b.g, &rng), span)
}
