// Package word provides unsigned primitives on 32- and 64-bit words used by
// the multi-word arithmetic in package natural.
//
// Every function is pure and total as long as the caller respects the
// documented preconditions (non-zero divisors, quotients that fit a word,
// shift amounts in [0, 32)).
package word

import "math/bits"

const (
	// Bits is the width of a magnitude word.
	Bits = 32
	// Mask selects the low word of a 64-bit value.
	Mask = 1<<Bits - 1
	// Max is the largest word value.
	Max uint32 = Mask
)

// Compare32 compares a and b as unsigned values and returns -1, 0 or +1.
func Compare32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Compare64 compares a and b as unsigned values and returns -1, 0 or +1.
func Compare64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Len32 returns the number of bits required to represent x; 0 for x == 0.
func Len32(x uint32) int { return bits.Len32(x) }

// Len64 returns the number of bits required to represent x; 0 for x == 0.
func Len64(x uint64) int { return bits.Len64(x) }

// TrailingZeros32 returns the number of trailing zero bits in x; 32 for x == 0.
func TrailingZeros32(x uint32) int { return bits.TrailingZeros32(x) }

// TrailingZeros64 returns the number of trailing zero bits in x; 64 for x == 0.
func TrailingZeros64(x uint64) int { return bits.TrailingZeros64(x) }

// LeadingZeros32 returns the number of leading zero bits in x; 32 for x == 0.
func LeadingZeros32(x uint32) int { return bits.LeadingZeros32(x) }

// LeadingZeros64 returns the number of leading zero bits in x; 64 for x == 0.
func LeadingZeros64(x uint64) int { return bits.LeadingZeros64(x) }

// Split64 splits x into its high and low 32-bit halves.
func Split64(x uint64) (hi, lo uint32) {
	return uint32(x >> Bits), uint32(x)
}

// Join64 is the inverse of Split64.
func Join64(hi, lo uint32) uint64 {
	return uint64(hi)<<Bits | uint64(lo)
}

// DivWord divides a 64-bit dividend by a 32-bit divisor and returns the
// remainder and quotient packed as remainder<<32 | quotient.
//
// The divisor must be non-zero and the quotient must fit in 32 bits, which
// holds whenever dividend>>32 < divisor. Long division loops maintain that
// invariant by feeding the previous remainder back as the high word.
func DivWord(dividend uint64, divisor uint32) uint64 {
	d := uint64(divisor)
	q := dividend / d
	r := dividend - q*d
	return r<<Bits | q&Mask
}

// UnpackDivWord splits the result of DivWord into quotient and remainder.
func UnpackDivWord(packed uint64) (q, r uint32) {
	return uint32(packed), uint32(packed >> Bits)
}

// DivWord64 divides a full 64-bit dividend by a 32-bit divisor. Unlike
// DivWord the quotient may use all 64 bits.
func DivWord64(dividend uint64, divisor uint32) (q uint64, r uint32) {
	d := uint64(divisor)
	q = dividend / d
	return q, uint32(dividend - q*d)
}

// MulAdd32 returns the 64-bit value x*y + add + carry split into words.
// The sum cannot overflow: (2^32-1)^2 + 2(2^32-1) = 2^64-1.
func MulAdd32(x, y, add, carry uint32) (hi, lo uint32) {
	t := uint64(x)*uint64(y) + uint64(add) + uint64(carry)
	return Split64(t)
}

// GCD32 returns the greatest common divisor of a and b using the binary
// (Stein) algorithm. GCD32(a, 0) == a and GCD32(0, 0) == 0.
func GCD32(a, b uint32) uint32 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	shift := bits.TrailingZeros32(a | b)
	a >>= bits.TrailingZeros32(a)
	for {
		b >>= bits.TrailingZeros32(b)
		if a > b {
			a, b = b, a
		}
		b -= a
		if b == 0 {
			return a << shift
		}
	}
}

// GCD64 is the 64-bit analogue of GCD32.
func GCD64(a, b uint64) uint64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	shift := bits.TrailingZeros64(a | b)
	a >>= bits.TrailingZeros64(a)
	for {
		b >>= bits.TrailingZeros64(b)
		if a > b {
			a, b = b, a
		}
		b -= a
		if b == 0 {
			return a << shift
		}
	}
}
