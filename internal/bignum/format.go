package bignum

import (
	"fmt"
	"strings"
)

// String formats x in decimal.
func (x Int) String() string {
	m := x.mag.norm()
	if len(m) == 0 {
		return "0"
	}
	const chunk = 1_000_000_000
	var parts []uint32
	for len(m) > 0 {
		var r uint32
		m, r = m.divModWord(chunk)
		parts = append(parts, r)
	}
	var sb strings.Builder
	if x.neg {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, "%d", parts[len(parts)-1])
	for i := len(parts) - 2; i >= 0; i-- {
		fmt.Fprintf(&sb, "%09d", parts[i])
	}
	return sb.String()
}

// Hex formats x with a 0x prefix.
func (x Int) Hex() string {
	m := x.mag.norm()
	if len(m) == 0 {
		return "0x0"
	}
	var sb strings.Builder
	if x.neg {
		sb.WriteByte('-')
	}
	sb.WriteString("0x")
	fmt.Fprintf(&sb, "%x", m[len(m)-1])
	for i := len(m) - 2; i >= 0; i-- {
		fmt.Fprintf(&sb, "%08x", m[i])
	}
	return sb.String()
}

// Limbs exposes the magnitude for serialization.
func (x Int) Limbs() (neg bool, limbs []uint32) {
	return x.neg, append([]uint32(nil), x.mag.norm()...)
}

// FromLimbs is the inverse of Limbs.
func FromLimbs(neg bool, limbs []uint32) Int {
	return makeInt(neg, append(nat(nil), limbs...))
}
