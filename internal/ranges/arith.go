package ranges

import "ctxgraph/internal/bignum"

// Apply computes the range of l op r for an arithmetic op. Addition and
// subtraction always have a bound form. Multiplication, division and
// remainder need concrete bounds or non-negative operands; when neither
// holds Apply reports false and the caller picks a fallback.
func Apply(l Range, op Op, r Range) (Range, bool) {
	switch op {
	case OpAdd:
		return Range{Min: Fold(l.Min, OpAdd, r.Min), Max: Fold(l.Max, OpAdd, r.Max)}, true
	case OpSub:
		return Range{Min: Fold(l.Min, OpSub, r.Max), Max: Fold(l.Max, OpSub, r.Min)}, true
	case OpMul:
		return mul(l, r)
	case OpDiv:
		return div(l, r)
	case OpMod:
		return mod(l, r)
	default:
		return Range{}, false
	}
}

func mul(l, r Range) (Range, bool) {
	if l.IsConcrete() && r.IsConcrete() {
		return corners(OpMul, []bignum.Int{l.Min.Value, l.Max.Value}, []bignum.Int{r.Min.Value, r.Max.Value})
	}
	if nonNegative(l) && nonNegative(r) {
		return Range{Min: Fold(l.Min, OpMul, r.Min), Max: Fold(l.Max, OpMul, r.Max)}, true
	}
	return Range{}, false
}

// div follows truncating division. A zero divisor reverts, so it is left
// out of the divisor range.
func div(l, r Range) (Range, bool) {
	if l.IsConcrete() && r.IsConcrete() {
		var divisors []bignum.Int
		for _, d := range []bignum.Int{r.Min.Value, r.Max.Value, bignum.FromInt64(-1), bignum.FromInt64(1)} {
			if d.Sign() != 0 && d.Cmp(r.Min.Value) >= 0 && d.Cmp(r.Max.Value) <= 0 {
				divisors = append(divisors, d)
			}
		}
		if len(divisors) == 0 {
			return Range{}, false
		}
		return corners(OpDiv, []bignum.Int{l.Min.Value, l.Max.Value}, divisors)
	}
	if nonNegative(l) && nonNegative(r) {
		lo := r.Min
		if lo.Value.Sign() == 0 {
			lo = Concrete(bignum.FromInt64(1))
		}
		return Range{Min: Fold(l.Min, OpDiv, r.Max), Max: Fold(l.Max, OpDiv, lo)}, true
	}
	return Range{}, false
}

// mod follows the sign of the dividend: |l % r| < |r| and |l % r| <= |l|.
func mod(l, r Range) (Range, bool) {
	zero := bignum.Int{}
	if l.IsConcrete() && r.IsConcrete() {
		limit := maxInt(r.Min.Value.Abs(), r.Max.Value.Abs())
		if limit.Sign() == 0 {
			return Range{}, false
		}
		limit, _ = limit.Sub(bignum.FromInt64(1))
		lo, hi := zero, zero
		if l.Min.Value.Sign() < 0 {
			lo = maxInt(l.Min.Value, limit.Neg())
		}
		if l.Max.Value.Sign() > 0 {
			hi = minInt(l.Max.Value, limit)
		}
		return Range{Min: Concrete(lo), Max: Concrete(hi)}, true
	}
	if nonNegative(l) && nonNegative(r) {
		hi := Fold(r.Max, OpSub, Concrete(bignum.FromInt64(1)))
		if l.Max.IsConcrete() && hi.IsConcrete() {
			hi = Concrete(minInt(l.Max.Value, hi.Value))
		}
		return Range{Min: Concrete(zero), Max: hi}, true
	}
	return Range{}, false
}

// corners spans every a op b; the extremes of a monotone op lie there.
func corners(op Op, as, bs []bignum.Int) (Range, bool) {
	var lo, hi bignum.Int
	first := true
	for _, a := range as {
		for _, b := range bs {
			v, ok := eval(a, op, b)
			if !ok {
				return Range{}, false
			}
			if first || v.Cmp(lo) < 0 {
				lo = v
			}
			if first || v.Cmp(hi) > 0 {
				hi = v
			}
			first = false
		}
	}
	return Range{Min: Concrete(lo), Max: Concrete(hi)}, true
}

func nonNegative(r Range) bool {
	return r.Min.IsConcrete() && r.Min.Value.Sign() >= 0 && r.Max.IsValid()
}

func minInt(a, b bignum.Int) bignum.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func maxInt(a, b bignum.Int) bignum.Int {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Intersect narrows r by c. A side where both bounds are concrete keeps the
// tighter one; otherwise the bound from c wins, since it is the newer
// constraint. An invalid bound in c leaves that side alone.
func Intersect(r, c Range) Range {
	res := r
	if c.Min.IsValid() {
		if r.Min.IsConcrete() && c.Min.IsConcrete() {
			res.Min = Concrete(maxInt(r.Min.Value, c.Min.Value))
		} else {
			res.Min = c.Min
		}
	}
	if c.Max.IsValid() {
		if r.Max.IsConcrete() && c.Max.IsConcrete() {
			res.Max = Concrete(minInt(r.Max.Value, c.Max.Value))
		} else {
			res.Max = c.Max
		}
	}
	return res
}

// Empty reports a concrete range with Min > Max.
func (r *Range) Empty() bool {
	return r.IsConcrete() && r.Min.Value.Cmp(r.Max.Value) > 0
}
