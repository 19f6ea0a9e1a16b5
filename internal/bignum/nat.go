package bignum

import "math/bits"

// nat is a base-2^32 little-endian magnitude. Canonical zero is nil.
type nat []uint32

func natFromUint64(v uint64) nat {
	if v == 0 {
		return nil
	}
	lo := uint32(v)       //nolint:gosec // G115: low limb
	hi := uint32(v >> 32) //nolint:gosec // G115: high limb
	if hi == 0 {
		return nat{lo}
	}
	return nat{lo, hi}
}

func (x nat) norm() nat {
	for len(x) > 0 && x[len(x)-1] == 0 {
		x = x[:len(x)-1]
	}
	if len(x) == 0 {
		return nil
	}
	return x
}

func (x nat) bitLen() int {
	x = x.norm()
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*32 + bits.Len32(x[len(x)-1])
}

func (x nat) cmp(y nat) int {
	x, y = x.norm(), y.norm()
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

func (x nat) add(y nat) (nat, error) {
	if len(x) < len(y) {
		x, y = y, x
	}
	out := make(nat, len(x)+1)
	var carry uint32
	for i := range x {
		var yv uint32
		if i < len(y) {
			yv = y[i]
		}
		out[i], carry = bits.Add32(x[i], yv, carry)
	}
	out[len(x)] = carry
	return checkLimbs(out.norm())
}

// sub assumes x >= y.
func (x nat) sub(y nat) nat {
	out := make(nat, len(x))
	var borrow uint32
	for i := range x {
		var yv uint32
		if i < len(y) {
			yv = y[i]
		}
		out[i], borrow = bits.Sub32(x[i], yv, borrow)
	}
	return out.norm()
}

func (x nat) mul(y nat) (nat, error) {
	x, y = x.norm(), y.norm()
	if len(x) == 0 || len(y) == 0 {
		return nil, nil
	}
	if len(x)+len(y) > MaxLimbs+1 {
		return nil, ErrTooLarge
	}
	out := make(nat, len(x)+len(y))
	for i, xv := range x {
		var carry uint64
		for j, yv := range y {
			t := uint64(out[i+j]) + uint64(xv)*uint64(yv) + carry
			out[i+j] = uint32(t) //nolint:gosec // G115: limb arithmetic
			carry = t >> 32
		}
		out[i+len(y)] = uint32(carry) //nolint:gosec // G115: limb arithmetic
	}
	return checkLimbs(out.norm())
}

func (x nat) mulAddWord(m, a uint32) (nat, error) {
	out := make(nat, len(x)+1)
	carry := uint64(a)
	for i, xv := range x {
		t := uint64(xv)*uint64(m) + carry
		out[i] = uint32(t) //nolint:gosec // G115: limb arithmetic
		carry = t >> 32
	}
	out[len(x)] = uint32(carry) //nolint:gosec // G115: limb arithmetic
	return checkLimbs(out.norm())
}

func (x nat) divModWord(d uint32) (q nat, r uint32) {
	q = make(nat, len(x))
	var rem uint32
	for i := len(x) - 1; i >= 0; i-- {
		q[i], rem = bits.Div32(rem, x[i], d)
	}
	return q.norm(), rem
}

func (x nat) shl(n uint) (nat, error) {
	x = x.norm()
	if len(x) == 0 || n == 0 {
		return x, nil
	}
	words, shift := int(n/32), n%32
	out := make(nat, len(x)+words+1)
	for i, v := range x {
		out[i+words] |= v << shift
		if shift != 0 {
			out[i+words+1] = v >> (32 - shift)
		}
	}
	return checkLimbs(out.norm())
}

func (x nat) shr1() nat {
	out := make(nat, len(x))
	var carry uint32
	for i := len(x) - 1; i >= 0; i-- {
		out[i] = x[i]>>1 | carry<<31
		carry = x[i] & 1
	}
	return out.norm()
}

// divMod is shift-subtract long division; operands are at most a few hundred bits.
func (x nat) divMod(y nat) (q, r nat, err error) {
	x, y = x.norm(), y.norm()
	if len(y) == 0 {
		return nil, nil, ErrDivByZero
	}
	if x.cmp(y) < 0 {
		return nil, x, nil
	}
	if len(y) == 1 {
		q, rw := x.divModWord(y[0])
		return q, natFromUint64(uint64(rw)), nil
	}
	shift := x.bitLen() - y.bitLen()
	d, err := y.shl(uint(shift)) //nolint:gosec // shift is non-negative here
	if err != nil {
		return nil, nil, err
	}
	rem := append(nat(nil), x...)
	q = make(nat, shift/32+1)
	for i := shift; i >= 0; i-- {
		if rem.cmp(d) >= 0 {
			rem = rem.sub(d)
			q[i/32] |= 1 << (i % 32)
		}
		d = d.shr1()
	}
	return q.norm(), rem.norm(), nil
}

func checkLimbs(x nat) (nat, error) {
	if len(x) > MaxLimbs {
		return nil, ErrTooLarge
	}
	return x, nil
}
