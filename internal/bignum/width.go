package bignum

// UintMax is the largest value of a uintN: 2**bits - 1.
func UintMax(bits uint) Int {
	v, _ := Pow2(bits).Sub(FromInt64(1)) //nolint:errcheck // cannot overflow
	return v
}

// IntMax is the largest value of an intN: 2**(bits-1) - 1.
func IntMax(bits uint) Int {
	if bits == 0 {
		return Int{}
	}
	return UintMax(bits - 1)
}

// IntMin is the smallest value of an intN: -2**(bits-1).
func IntMin(bits uint) Int {
	if bits == 0 {
		return Int{}
	}
	return Pow2(bits - 1).Neg()
}
