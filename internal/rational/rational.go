// Package rational provides exact signed rational numbers and binary
// floating values built on package natural, together with their correctly
// rounded conversion to IEEE 754 binary32 and binary64.
package rational

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/natural"
)

var errZeroDenominator = apperrors.PreconditionError{Op: "rational.New", Message: "zero denominator"}

// Rational is an immutable exact rational number num/den.
//
// Every constructor reduces the fraction, so gcd(num, den) == 1, den > 0
// and zero is never negative. The zero value is 0.
type Rational struct {
	neg bool
	num natural.Natural
	den natural.Natural // zero means 1
}

// Frequently used constants.
var (
	RatZero     = Rational{}
	RatOne      = Rational{num: natural.One}
	RatTwo      = Rational{num: natural.Two}
	RatTen      = Rational{num: natural.Ten}
	RatMinusOne = Rational{neg: true, num: natural.One}
)

func (x Rational) denom() natural.Natural {
	if x.den.IsZero() {
		return natural.One
	}
	return x.den
}

// FromNaturals returns (-1)^neg * n/d in reduced form. It panics if d is
// zero.
func FromNaturals(neg bool, n, d natural.Natural) Rational {
	if d.IsZero() {
		panic(errZeroDenominator)
	}
	if n.IsZero() {
		return RatZero
	}
	if g := natural.GCD(n, d); !g.Equal(natural.One) {
		n = natural.Div(n, g)
		d = natural.Div(d, g)
	}
	return Rational{neg: neg, num: n, den: d}
}

func abs64(x int64) (bool, natural.Natural) {
	if x < 0 {
		return true, natural.FromUint64(uint64(-(x + 1)) + 1)
	}
	return false, natural.FromUint64(uint64(x))
}

// New returns num/den. It panics if den is zero.
func New(num, den int64) Rational {
	nneg, n := abs64(num)
	dneg, d := abs64(den)
	return FromNaturals(nneg != dneg, n, d)
}

// FromInt64 returns x as a Rational.
func FromInt64(x int64) Rational {
	neg, n := abs64(x)
	return Rational{neg: neg, num: n}
}

// FromNatural returns x as a Rational.
func FromNatural(x natural.Natural) Rational {
	return Rational{num: x}
}

// FromFloat64 returns the exact value of f. NaN and infinities have no
// rational value and return a ValidationError.
func FromFloat64(f float64) (Rational, error) {
	b, err := BigFloatFromFloat64(f)
	if err != nil {
		return RatZero, err
	}
	return b.Rational(), nil
}

// FromFloat32 returns the exact value of f.
func FromFloat32(f float32) (Rational, error) {
	b, err := BigFloatFromFloat32(f)
	if err != nil {
		return RatZero, err
	}
	return b.Rational(), nil
}

// FromBigRat returns the value of r.
func FromBigRat(r *big.Rat) Rational {
	n := r.Num()
	return FromNaturals(n.Sign() < 0, natural.FromBig(new(big.Int).Abs(n)), natural.FromBig(r.Denom()))
}

// Parse reads a decimal fraction "a/b" or integer "a", each optionally
// preceded by a minus sign on the numerator.
func Parse(s string) (Rational, error) {
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	numText, denText, hasDen := strings.Cut(body, "/")

	n, err := natural.Parse(numText, 10)
	if err != nil {
		return RatZero, apperrors.WrapError(err, "rational %q: numerator", s)
	}
	d := natural.One
	if hasDen {
		if d, err = natural.Parse(denText, 10); err != nil {
			return RatZero, apperrors.WrapError(err, "rational %q: denominator", s)
		}
		if d.IsZero() {
			return RatZero, apperrors.ValidationError{Field: "denominator", Message: fmt.Sprintf("zero in %q", s)}
		}
	}
	return FromNaturals(neg, n, d), nil
}

// Num returns the magnitude of the numerator.
func (x Rational) Num() natural.Natural { return x.num }

// Denom returns the denominator, which is always positive.
func (x Rational) Denom() natural.Natural { return x.denom() }

// Sign returns -1, 0 or +1.
func (x Rational) Sign() int {
	switch {
	case x.num.IsZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// IsInt reports whether the denominator is 1.
func (x Rational) IsInt() bool { return x.denom().Equal(natural.One) }

// addSigned returns the signed sum of two signed magnitudes.
func addSigned(aneg bool, a natural.Natural, bneg bool, b natural.Natural) (bool, natural.Natural) {
	if aneg == bneg {
		return aneg, natural.Add(a, b)
	}
	if a.Cmp(b) >= 0 {
		return aneg, natural.Sub(a, b)
	}
	return bneg, natural.Sub(b, a)
}

// Add returns x + y.
func (x Rational) Add(y Rational) Rational {
	xd, yd := x.denom(), y.denom()
	if xd.Equal(natural.One) && yd.Equal(natural.One) {
		neg, n := addSigned(x.neg, x.num, y.neg, y.num)
		if n.IsZero() {
			return RatZero
		}
		return Rational{neg: neg, num: n}
	}
	neg, n := addSigned(x.neg, natural.Mul(x.num, yd), y.neg, natural.Mul(y.num, xd))
	return FromNaturals(neg, n, natural.Mul(xd, yd))
}

// Sub returns x - y.
func (x Rational) Sub(y Rational) Rational { return x.Add(y.Neg()) }

// Neg returns -x.
func (x Rational) Neg() Rational {
	if x.num.IsZero() {
		return x
	}
	x.neg = !x.neg
	return x
}

// Mul returns x * y.
func (x Rational) Mul(y Rational) Rational {
	if x.num.IsZero() || y.num.IsZero() {
		return RatZero
	}
	// Cross-reduce first so the products stay small.
	g1 := natural.GCD(x.num, y.denom())
	g2 := natural.GCD(y.num, x.denom())
	n := natural.Mul(natural.Div(x.num, g1), natural.Div(y.num, g2))
	d := natural.Mul(natural.Div(x.denom(), g2), natural.Div(y.denom(), g1))
	return Rational{neg: x.neg != y.neg, num: n, den: d}
}

// Quo returns x / y. It panics if y is zero.
func (x Rational) Quo(y Rational) Rational {
	if y.num.IsZero() {
		panic(natural.ErrDivisionByZero)
	}
	return x.Mul(Rational{neg: y.neg, num: y.denom(), den: y.num})
}

// Inv returns 1 / x. It panics if x is zero.
func (x Rational) Inv() Rational {
	if x.num.IsZero() {
		panic(natural.ErrDivisionByZero)
	}
	return Rational{neg: x.neg, num: x.denom(), den: x.num}
}

// AdditiveInverse returns -x.
func (x Rational) AdditiveInverse() Rational { return x.Neg() }

// MultiplicativeInverse returns 1 / x. It reports false for zero, which has
// no inverse.
func (x Rational) MultiplicativeInverse() (Rational, bool) {
	if x.num.IsZero() {
		return RatZero, false
	}
	return x.Inv(), true
}

// Adder returns the addition operator on Rational values.
func Adder() func(x, y Rational) Rational { return Rational.Add }

// Multiplier returns the multiplication operator on Rational values.
func Multiplier() func(x, y Rational) Rational { return Rational.Mul }

// Cmp compares x and y and returns -1, 0 or +1.
func (x Rational) Cmp(y Rational) int {
	xs, ys := x.Sign(), y.Sign()
	if xs != ys {
		if xs < ys {
			return -1
		}
		return 1
	}
	c := natural.Mul(x.num, y.denom()).Cmp(natural.Mul(y.num, x.denom()))
	if xs < 0 {
		return -c
	}
	return c
}

// Equal reports whether x and y are the same number. Reduced form makes
// this a field-wise comparison.
func (x Rational) Equal(y Rational) bool {
	return x.neg == y.neg && x.num.Equal(y.num) && x.denom().Equal(y.denom())
}

// Hash returns a hash consistent with Equal.
func (x Rational) Hash() uint64 {
	h := x.num.Hash()*31 + x.denom().Hash()
	if x.neg {
		h = ^h
	}
	return h
}

// Float64 returns the binary64 value nearest to x, ties to even. Values
// beyond the finite range become infinities, tiny values signed zeros.
func (x Rational) Float64() float64 {
	return float64FromParts(x.neg, x.num, x.denom(), 0)
}

// Float32 returns the binary32 value nearest to x, ties to even.
func (x Rational) Float32() float32 {
	return float32FromParts(x.neg, x.num, x.denom(), 0)
}

// Int64 returns x truncated toward zero, keeping the low 64 bits.
func (x Rational) Int64() int64 {
	q := natural.Div(x.num, x.denom()).Int64()
	if x.neg {
		return -q
	}
	return q
}

// Big returns x as a new big.Rat.
func (x Rational) Big() *big.Rat {
	n := x.num.Big()
	if x.neg {
		n.Neg(n)
	}
	return new(big.Rat).SetFrac(n, x.denom().Big())
}

// String returns "a/b", or "a" for integers.
func (x Rational) String() string {
	var sb strings.Builder
	if x.neg {
		sb.WriteByte('-')
	}
	sb.WriteString(x.num.String())
	if !x.IsInt() {
		sb.WriteByte('/')
		sb.WriteString(x.denom().String())
	}
	return sb.String()
}

// isFinite reports whether f is neither NaN nor an infinity.
func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
