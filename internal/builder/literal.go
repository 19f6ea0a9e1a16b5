package builder

import (
	"encoding/hex"
	"strconv"
	"strings"

	"ctxgraph/internal/ast"
	"ctxgraph/internal/bignum"
	"ctxgraph/internal/builtins"
	"ctxgraph/internal/ctxir"
	"ctxgraph/internal/graph"
	"ctxgraph/internal/ranges"
)

// decimal exponents of the ether denominations
var etherUnits = map[string]int{
	"wei":   0,
	"gwei":  9,
	"ether": 18,
}

var timeUnits = map[string]int64{
	"seconds": 1,
	"minutes": 60,
	"hours":   60 * 60,
	"days":    24 * 60 * 60,
	"weeks":   7 * 24 * 60 * 60,
}

// literal lowers constants into temporaries with exact ranges. A string
// literal split into parts yields one temporary per part, in source order.
func (b *Builder) literal(id ast.ExprID, e *ast.Expr, ctx ctxir.ContextNode) ([]graph.NodeID, error) {
	exprs := b.arenas.Exprs
	switch e.Kind {
	case ast.ExprNumber:
		d, _ := exprs.Number(id)
		v, err := numberValue(d.Value, d.Unit)
		if err != nil {
			return nil, &Error{Kind: KindUnsupportedConstruct, Span: e.Span, Detail: "number literal " + d.Value, Err: err}
		}
		typ := b.reg.Intern(builtins.Type{Kind: builtins.KindUint, Size: 256})
		display := d.Value
		if d.Unit != "" {
			display += " " + d.Unit
		}
		return b.one(b.tmp(ctx, e.Span, display, typ, ranges.Exact(v)))

	case ast.ExprAddress:
		d, _ := exprs.Address(id)
		v, err := bignum.ParseLiteral(d.Value)
		if err != nil {
			return nil, &Error{Kind: KindUnsupportedConstruct, Span: e.Span, Detail: "address literal " + d.Value, Err: err}
		}
		typ := b.reg.Intern(builtins.Type{Kind: builtins.KindAddress})
		return b.one(b.tmp(ctx, e.Span, d.Value, typ, ranges.Exact(v)))

	case ast.ExprBool:
		d, _ := exprs.Bool(id)
		v := bignum.Int{}
		if d.Value {
			v = bignum.FromInt64(1)
		}
		typ := b.reg.Intern(builtins.Type{Kind: builtins.KindBool})
		return b.one(b.tmp(ctx, e.Span, strconv.FormatBool(d.Value), typ, ranges.Exact(v)))

	case ast.ExprString:
		d, _ := exprs.StringLit(id)
		typ := b.reg.Intern(builtins.Type{Kind: builtins.KindString})
		res := make([]graph.NodeID, 0, len(d.Parts))
		for _, part := range d.Parts {
			n, err := b.tmp(ctx, part.Span, strconv.Quote(part.Value), typ, nil)
			if err != nil {
				return nil, err
			}
			res = append(res, n)
		}
		return res, nil

	default:
		d, _ := exprs.HexString(id)
		typ := b.reg.Intern(builtins.Type{Kind: builtins.KindBytes})
		return b.one(b.tmp(ctx, e.Span, "hex\""+hex.EncodeToString(d.Value)+"\"", typ, nil))
	}
}

// numberValue applies a denomination to the literal text. Ether units shift
// the decimal exponent so fractional amounts such as 0.5 ether stay exact.
func numberValue(text, unit string) (bignum.Int, error) {
	if exp, ok := etherUnits[unit]; ok && exp > 0 {
		if !strings.ContainsAny(text, "eExX") {
			return bignum.ParseLiteral(text + "e" + strconv.Itoa(exp))
		}
		v, err := bignum.ParseLiteral(text)
		if err != nil {
			return bignum.Int{}, err
		}
		scale, err := bignum.FromInt64(10).Exp(bignum.FromInt64(int64(exp)))
		if err != nil {
			return bignum.Int{}, err
		}
		return v.Mul(scale)
	}
	v, err := bignum.ParseLiteral(text)
	if err != nil {
		return bignum.Int{}, err
	}
	if f, ok := timeUnits[unit]; ok && f != 1 {
		return v.Mul(bignum.FromInt64(f))
	}
	return v, nil
}
