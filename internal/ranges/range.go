package ranges

import (
	"fmt"

	"ctxgraph/internal/bignum"
)

// Range is a closed interval [Min, Max] of bounds.
type Range struct {
	Min Elem
	Max Elem
}

// Exact is the singleton range [v, v].
func Exact(v bignum.Int) *Range {
	return &Range{Min: Concrete(v), Max: Concrete(v)}
}

// Bool is [0, 1].
func Bool() *Range {
	return &Range{Min: Concrete(bignum.Int{}), Max: Concrete(bignum.FromInt64(1))}
}

// Uint is the full range of a uintN.
func Uint(bits uint) *Range {
	return &Range{Min: Concrete(bignum.Int{}), Max: Concrete(bignum.UintMax(bits))}
}

// Int is the full range of an intN.
func Int(bits uint) *Range {
	return &Range{Min: Concrete(bignum.IntMin(bits)), Max: Concrete(bignum.IntMax(bits))}
}

// IsConcrete reports whether both bounds are numbers.
func (r *Range) IsConcrete() bool {
	return r != nil && r.Min.IsConcrete() && r.Max.IsConcrete()
}

func (r *Range) String() string {
	if r == nil {
		return "[?]"
	}
	return fmt.Sprintf("[%s, %s]", r.Min, r.Max)
}
