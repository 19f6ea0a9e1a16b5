package bignum

import (
	"errors"
	"fmt"
	"strings"
)

var ErrParse = errors.New("invalid numeric format")

// ParseLiteral parses a source number literal: decimal with optional
// scientific exponent (1e18), or hex with 0x prefix. Underscores are
// separators. Negative exponents that leave a fraction are rejected.
func ParseLiteral(s string) (Int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return Int{}, ErrParse
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return parseDigits(s[2:], 16)
	}

	mantissa, exp := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exp = s[:i], s[i+1:]
		if exp == "" {
			return Int{}, fmt.Errorf("%w: %q", ErrParse, s)
		}
	}
	intPart, frac := mantissa, ""
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		intPart, frac = mantissa[:i], mantissa[i+1:]
	}
	shift := -len(frac)
	if exp != "" {
		e, err := parseDigits(strings.TrimPrefix(strings.TrimPrefix(exp, "+"), "-"), 10)
		if err != nil {
			return Int{}, err
		}
		ev, ok := e.Int64()
		if !ok || ev > 4*MaxLimbs*32 {
			return Int{}, ErrTooLarge
		}
		if strings.HasPrefix(exp, "-") {
			ev = -ev
		}
		shift += int(ev)
	}
	digits := strings.TrimLeft(intPart+frac, "0")
	if digits == "" {
		return Int{}, nil
	}
	for shift < 0 {
		if !strings.HasSuffix(digits, "0") {
			return Int{}, fmt.Errorf("%w: %q is not an integer", ErrParse, s)
		}
		digits = digits[:len(digits)-1]
		shift++
	}
	v, err := parseDigits(digits, 10)
	if err != nil {
		return Int{}, err
	}
	if shift == 0 {
		return v, nil
	}
	scale, err := FromInt64(10).Exp(FromInt64(int64(shift)))
	if err != nil {
		return Int{}, err
	}
	return v.Mul(scale)
}

// Parse parses an optionally signed decimal integer.
func Parse(s string) (Int, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(s, "+-")
	v, err := parseDigits(s, 10)
	if err != nil {
		return Int{}, err
	}
	if neg {
		return v.Neg(), nil
	}
	return v, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Int {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func parseDigits(s string, base uint32) (Int, error) {
	if s == "" {
		return Int{}, ErrParse
	}
	var out nat
	for i := range len(s) {
		d, ok := digitValue(s[i], base)
		if !ok {
			return Int{}, fmt.Errorf("%w: %q", ErrParse, s)
		}
		var err error
		if out, err = out.mulAddWord(base, d); err != nil {
			return Int{}, err
		}
	}
	return makeInt(false, out), nil
}

func digitValue(ch byte, base uint32) (uint32, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		d := uint32(ch - '0')
		return d, d < base
	case base == 16 && ch >= 'a' && ch <= 'f':
		return 10 + uint32(ch-'a'), true
	case base == 16 && ch >= 'A' && ch <= 'F':
		return 10 + uint32(ch-'A'), true
	default:
		return 0, false
	}
}
