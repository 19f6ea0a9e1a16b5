package bignum

import "errors"

// MaxLimbs bounds magnitudes to 1024 bits, four times the widest EVM word.
const MaxLimbs = 32

var (
	ErrTooLarge   = errors.New("numeric size limit exceeded")
	ErrDivByZero  = errors.New("division by zero")
	ErrNegativeOp = errors.New("negative operand")
)

// Int is an immutable arbitrary-precision signed integer.
// The zero value is 0.
type Int struct {
	neg bool
	mag nat
}

// FromInt64 creates an Int from an int64.
func FromInt64(v int64) Int {
	if v >= 0 {
		return Int{mag: natFromUint64(uint64(v))}
	}
	u := uint64(-(v + 1)) + 1 //nolint:gosec // G115: -(v+1) fits in uint64
	return Int{neg: true, mag: natFromUint64(u)}
}

// FromUint64 creates an Int from a uint64.
func FromUint64(v uint64) Int { return Int{mag: natFromUint64(v)} }

func makeInt(neg bool, mag nat) Int {
	mag = mag.norm()
	if len(mag) == 0 {
		return Int{}
	}
	return Int{neg: neg, mag: mag}
}

func (x Int) IsZero() bool { return len(x.mag.norm()) == 0 }

// Sign returns -1, 0 or 1.
func (x Int) Sign() int {
	switch {
	case x.IsZero():
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// BitLen is the bit length of the magnitude.
func (x Int) BitLen() int { return x.mag.bitLen() }

func (x Int) Neg() Int { return makeInt(!x.neg, x.mag) }

func (x Int) Abs() Int { return makeInt(false, x.mag) }

// Cmp compares x and y and returns -1, 0 or 1.
func (x Int) Cmp(y Int) int {
	xs, ys := x.Sign(), y.Sign()
	if xs != ys {
		if xs < ys {
			return -1
		}
		return 1
	}
	c := x.mag.cmp(y.mag)
	if xs < 0 {
		return -c
	}
	return c
}

// Int64 converts x to int64 if it fits.
func (x Int) Int64() (int64, bool) {
	m := x.mag.norm()
	if len(m) > 2 {
		return 0, false
	}
	var u uint64
	if len(m) > 0 {
		u = uint64(m[0])
	}
	if len(m) > 1 {
		u |= uint64(m[1]) << 32
	}
	if !x.neg {
		if u > 1<<63-1 {
			return 0, false
		}
		return int64(u), true
	}
	if u > 1<<63 {
		return 0, false
	}
	return -int64(u-1) - 1, true //nolint:gosec // G115: u-1 <= MaxInt64
}

// Add returns x+y.
func (x Int) Add(y Int) (Int, error) {
	if x.neg == y.neg {
		sum, err := x.mag.add(y.mag)
		if err != nil {
			return Int{}, err
		}
		return makeInt(x.neg, sum), nil
	}
	switch c := x.mag.cmp(y.mag); {
	case c == 0:
		return Int{}, nil
	case c > 0:
		return makeInt(x.neg, x.mag.norm().sub(y.mag)), nil
	default:
		return makeInt(y.neg, y.mag.norm().sub(x.mag)), nil
	}
}

// Sub returns x-y.
func (x Int) Sub(y Int) (Int, error) { return x.Add(y.Neg()) }

// Mul returns x*y.
func (x Int) Mul(y Int) (Int, error) {
	p, err := x.mag.mul(y.mag)
	if err != nil {
		return Int{}, err
	}
	return makeInt(x.neg != y.neg, p), nil
}

// QuoRem returns truncated quotient and remainder; the remainder takes
// the sign of x, like EVM SDIV/SMOD.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	qm, rm, err := x.mag.divMod(y.mag)
	if err != nil {
		return Int{}, Int{}, err
	}
	return makeInt(x.neg != y.neg, qm), makeInt(x.neg, rm), nil
}

// Quo returns x/y truncated toward zero.
func (x Int) Quo(y Int) (Int, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns x%y.
func (x Int) Rem(y Int) (Int, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

// Exp returns x**y for non-negative y.
func (x Int) Exp(y Int) (Int, error) {
	if y.neg && !y.IsZero() {
		return Int{}, ErrNegativeOp
	}
	result := FromInt64(1)
	base := x
	for e := y.mag.norm(); len(e) > 0; {
		if e[0]&1 == 1 {
			var err error
			if result, err = result.Mul(base); err != nil {
				return Int{}, err
			}
		}
		e = e.shr1()
		if len(e) == 0 {
			break
		}
		var err error
		if base, err = base.Mul(base); err != nil {
			return Int{}, err
		}
	}
	return result, nil
}

// Lsh returns x << n.
func (x Int) Lsh(n uint) (Int, error) {
	m, err := x.mag.shl(n)
	if err != nil {
		return Int{}, err
	}
	return makeInt(x.neg, m), nil
}

// Pow2 returns 2**n.
func Pow2(n uint) Int {
	v, err := FromInt64(1).Lsh(n)
	if err != nil {
		panic(err)
	}
	return v
}
