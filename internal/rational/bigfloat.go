package rational

import (
	"fmt"
	"math"

	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/natural"
)

// BigFloat is an immutable binary floating value (-1)^neg * sig * 2^exp of
// unbounded precision.
//
// The significand is zero or odd: trailing zero bits are folded into the
// exponent at construction, which makes the representation canonical. The
// zero value is 0.
type BigFloat struct {
	neg bool
	sig natural.Natural
	exp int
}

// NewBigFloat returns (-1)^neg * sig * 2^exp in canonical form.
func NewBigFloat(neg bool, sig natural.Natural, exp int) BigFloat {
	if sig.IsZero() {
		return BigFloat{}
	}
	tz := int(sig.TrailingZeroBits())
	return BigFloat{neg: neg, sig: sig.Rsh(tz), exp: exp + tz}
}

// BigFloatFromInt64 returns x as a BigFloat.
func BigFloatFromInt64(x int64) BigFloat {
	neg, n := abs64(x)
	return NewBigFloat(neg, n, 0)
}

// BigFloatFromFloat64 returns the exact value of f. NaN and infinities
// return a ValidationError. Negative zero becomes zero.
func BigFloatFromFloat64(f float64) (BigFloat, error) {
	if !isFinite(f) {
		return BigFloat{}, apperrors.ValidationError{Field: "float64", Message: fmt.Sprintf("%v has no exact value", f)}
	}
	neg, mant, exp := binary64.decompose(math.Float64bits(f))
	return NewBigFloat(neg, natural.FromUint64(mant), exp), nil
}

// BigFloatFromFloat32 returns the exact value of f.
func BigFloatFromFloat32(f float32) (BigFloat, error) {
	if !isFinite(float64(f)) {
		return BigFloat{}, apperrors.ValidationError{Field: "float32", Message: fmt.Sprintf("%v has no exact value", f)}
	}
	neg, mant, exp := binary32.decompose(uint64(math.Float32bits(f)))
	return NewBigFloat(neg, natural.FromUint64(mant), exp), nil
}

// BigFloatFromDecimal is not supported: most decimal fractions have no
// finite binary expansion, so no exact BigFloat exists for them. It always
// returns an UnsupportedError; go through Rational instead.
func BigFloatFromDecimal(string) (BigFloat, error) {
	return BigFloat{}, apperrors.UnsupportedError{Operation: "BigFloat from decimal"}
}

// Sig returns the odd significand magnitude, or zero.
func (x BigFloat) Sig() natural.Natural { return x.sig }

// Exp returns the binary exponent.
func (x BigFloat) Exp() int { return x.exp }

// Sign returns -1, 0 or +1.
func (x BigFloat) Sign() int {
	switch {
	case x.sig.IsZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// align returns the significands of x and y scaled to the common exponent
// min(x.exp, y.exp).
func align(x, y BigFloat) (xs, ys natural.Natural, exp int) {
	exp = min(x.exp, y.exp)
	return x.sig.Lsh(x.exp - exp), y.sig.Lsh(y.exp - exp), exp
}

// Add returns x + y exactly.
func (x BigFloat) Add(y BigFloat) BigFloat {
	switch {
	case x.sig.IsZero():
		return y
	case y.sig.IsZero():
		return x
	}
	xs, ys, exp := align(x, y)
	neg, s := addSigned(x.neg, xs, y.neg, ys)
	return NewBigFloat(neg, s, exp)
}

// Sub returns x - y exactly.
func (x BigFloat) Sub(y BigFloat) BigFloat { return x.Add(y.Neg()) }

// Neg returns -x.
func (x BigFloat) Neg() BigFloat {
	if x.sig.IsZero() {
		return x
	}
	x.neg = !x.neg
	return x
}

// Mul returns x * y exactly. The product of odd significands is odd, so
// no renormalization is needed.
func (x BigFloat) Mul(y BigFloat) BigFloat {
	if x.sig.IsZero() || y.sig.IsZero() {
		return BigFloat{}
	}
	return BigFloat{neg: x.neg != y.neg, sig: natural.Mul(x.sig, y.sig), exp: x.exp + y.exp}
}

// Lsh returns x * 2^n; n may be negative.
func (x BigFloat) Lsh(n int) BigFloat {
	if x.sig.IsZero() {
		return x
	}
	x.exp += n
	return x
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x BigFloat) Cmp(y BigFloat) int {
	xs, ys := x.Sign(), y.Sign()
	if xs != ys {
		if xs < ys {
			return -1
		}
		return 1
	}
	if xs == 0 {
		return 0
	}
	// Compare magnitudes by the position of the leading bit before aligning.
	c := 0
	xt, yt := x.sig.BitLen()+x.exp, y.sig.BitLen()+y.exp
	switch {
	case xt < yt:
		c = -1
	case xt > yt:
		c = 1
	default:
		a, b, _ := align(x, y)
		c = a.Cmp(b)
	}
	if xs < 0 {
		return -c
	}
	return c
}

// Equal reports whether x and y are the same number.
func (x BigFloat) Equal(y BigFloat) bool {
	return x.neg == y.neg && x.exp == y.exp && x.sig.Equal(y.sig)
}

// Hash returns a hash consistent with Equal.
func (x BigFloat) Hash() uint64 {
	h := x.sig.Hash()*31 + uint64(int64(x.exp))
	if x.neg {
		h = ^h
	}
	return h
}

// Rational returns the exact value of x as a Rational.
func (x BigFloat) Rational() Rational {
	switch {
	case x.sig.IsZero():
		return RatZero
	case x.exp >= 0:
		return Rational{neg: x.neg, num: x.sig.Lsh(x.exp)}
	}
	// An odd significand is coprime to any power of two.
	return Rational{neg: x.neg, num: x.sig, den: natural.One.Lsh(-x.exp)}
}

// Float64 returns the binary64 value nearest to x, ties to even.
func (x BigFloat) Float64() float64 {
	return float64FromParts(x.neg, x.sig, natural.One, x.exp)
}

// Float32 returns the binary32 value nearest to x, ties to even.
func (x BigFloat) Float32() float32 {
	return float32FromParts(x.neg, x.sig, natural.One, x.exp)
}

// String returns the value as "sig*2^exp" with an optional minus sign.
func (x BigFloat) String() string {
	sign := ""
	if x.neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%s*2^%d", sign, x.sig, x.exp)
}
