package ranges

import "ctxgraph/internal/bignum"

// Fold combines two bounds. When both are concrete and the operation is
// defined the result is concrete; otherwise an Expr bound is built.
// Comparisons fold to 1 or 0.
func Fold(lhs Elem, op Op, rhs Elem) Elem {
	if lhs.IsConcrete() && rhs.IsConcrete() {
		if v, ok := eval(lhs.Value, op, rhs.Value); ok {
			return Concrete(v)
		}
	}
	return NewExpr(lhs, op, rhs)
}

func eval(a bignum.Int, op Op, b bignum.Int) (bignum.Int, bool) {
	var (
		v   bignum.Int
		err error
	)
	switch op {
	case OpAdd:
		v, err = a.Add(b)
	case OpSub:
		v, err = a.Sub(b)
	case OpMul:
		v, err = a.Mul(b)
	case OpDiv:
		v, err = a.Quo(b)
	case OpMod:
		v, err = a.Rem(b)
	case OpEq, OpNeq, OpLt, OpGt, OpLte, OpGte:
		return boolInt(compare(a.Cmp(b), op)), true
	default:
		return bignum.Int{}, false
	}
	return v, err == nil
}

func compare(c int, op Op) bool {
	switch op {
	case OpEq:
		return c == 0
	case OpNeq:
		return c != 0
	case OpLt:
		return c < 0
	case OpGt:
		return c > 0
	case OpLte:
		return c <= 0
	default:
		return c >= 0
	}
}

func boolInt(b bool) bignum.Int {
	if b {
		return bignum.FromInt64(1)
	}
	return bignum.Int{}
}
