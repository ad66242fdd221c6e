package rational

import (
	"math"

	"github.com/agbru/bitexact/internal/natural"
)

// format describes an IEEE 754 binary interchange format.
type format struct {
	mantBits int // stored significand bits, without the implicit leading one
	expBits  int
	bias     int
}

var (
	binary32 = format{mantBits: 23, expBits: 8, bias: 127}
	binary64 = format{mantBits: 52, expBits: 11, bias: 1023}
)

// minExp is the exponent of the smallest normal value.
func (f format) minExp() int { return 1 - f.bias }

// maxExp is the exponent of the largest finite value.
func (f format) maxExp() int { return f.bias }

func (f format) signBit() uint64 { return 1 << (f.mantBits + f.expBits) }

func (f format) infBits() uint64 { return (1<<f.expBits - 1) << f.mantBits }

// roundBits returns the bit pattern of the value closest to
// (-1)^neg * n/d * 2^shift, breaking ties to even. d must be non-zero.
//
// Results that exceed the largest finite value become infinities and
// results below half of the smallest subnormal become signed zeros; both are
// regular IEEE 754 outcomes rather than errors.
func (f format) roundBits(neg bool, n, d natural.Natural, shift int) uint64 {
	var sign uint64
	if neg {
		sign = f.signBit()
	}
	if n.IsZero() {
		return sign
	}

	// Locate the binary point: 2^e <= n/d * 2^shift < 2^(e+1).
	e := n.BitLen() - d.BitLen() - 1
	if scaledCmp(n, d, e+1) >= 0 {
		e++
	}
	e += shift

	switch {
	case e > f.maxExp():
		return sign | f.infBits()
	case e < f.minExp()-f.mantBits-1:
		return sign
	}

	// Scale so that the integer quotient carries exactly the representable
	// significand bits. Subnormals share the fixed minimum exponent and so
	// keep fewer bits.
	s := e - f.mantBits
	subnormal := e < f.minExp()
	if subnormal {
		s = f.minExp() - f.mantBits
	}
	num, den := n, d
	if k := shift - s; k >= 0 {
		num = num.Lsh(k)
	} else {
		den = den.Lsh(-k)
	}

	q, r := natural.DivRem(num, den)
	mant := q.Uint64()
	switch c := r.Lsh(1).Cmp(den); {
	case c > 0, c == 0 && mant&1 == 1:
		mant++
	}

	if subnormal {
		// A carry out of the subnormal range lands on exponent field 1
		// with a zero fraction, which is exactly the smallest normal.
		return sign | mant
	}
	if mant == 1<<(f.mantBits+1) {
		mant >>= 1
		e++
		if e > f.maxExp() {
			return sign | f.infBits()
		}
	}
	mant &= 1<<f.mantBits - 1
	return sign | uint64(e+f.bias)<<f.mantBits | mant
}

// scaledCmp compares n with d*2^k for any sign of k.
func scaledCmp(n, d natural.Natural, k int) int {
	if k >= 0 {
		return n.Cmp(d.Lsh(k))
	}
	return n.Lsh(-k).Cmp(d)
}

func float64FromParts(neg bool, n, d natural.Natural, shift int) float64 {
	return math.Float64frombits(binary64.roundBits(neg, n, d, shift))
}

func float32FromParts(neg bool, n, d natural.Natural, shift int) float32 {
	return math.Float32frombits(uint32(binary32.roundBits(neg, n, d, shift)))
}

// decompose splits the finite value with the given bit pattern into sign,
// integer significand and binary exponent.
func (f format) decompose(bits uint64) (neg bool, mant uint64, exp int) {
	neg = bits&f.signBit() != 0
	field := int(bits>>f.mantBits) & (1<<f.expBits - 1)
	mant = bits & (1<<f.mantBits - 1)
	if field == 0 {
		return neg, mant, f.minExp() - f.mantBits
	}
	return neg, mant | 1<<f.mantBits, field - f.bias - f.mantBits
}
