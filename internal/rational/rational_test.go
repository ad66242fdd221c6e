package rational

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/natural"
)

func TestReducedForm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x    Rational
		want string
	}{
		{"reduces", New(6, -8), "-3/4"},
		{"negative over negative", New(-6, -8), "3/4"},
		{"integer", New(10, 5), "2"},
		{"zero is non-negative", New(0, -7), "0"},
		{"min int64", New(math.MinInt64, 2), "-4611686018427387904"},
		{"from naturals", FromNaturals(true, natural.FromUint32(21), natural.FromUint32(35)), "-3/5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.x.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
			g := natural.GCD(tt.x.Num(), tt.x.Denom())
			if !tt.x.Num().IsZero() && !g.Equal(natural.One) {
				t.Errorf("not reduced: gcd = %s", g)
			}
		})
	}
}

func TestZeroDenominatorPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r != errZeroDenominator {
			t.Fatalf("expected zero-denominator panic, got %v", r)
		}
	}()
	New(1, 0)
}

func TestArithmetic(t *testing.T) {
	t.Parallel()
	a, b := New(1, 6), New(-3, 10)
	tests := []struct {
		name string
		got  Rational
		want Rational
	}{
		{"add", a.Add(b), New(-2, 15)},
		{"sub", a.Sub(b), New(7, 15)},
		{"mul", a.Mul(b), New(-1, 20)},
		{"quo", a.Quo(b), New(-5, 9)},
		{"inv", b.Inv(), New(-10, 3)},
		{"neg", b.Neg(), New(3, 10)},
		{"add inverse", a.Add(a.AdditiveInverse()), RatZero},
		{"integers", FromInt64(7).Add(FromInt64(-9)), FromInt64(-2)},
	}
	for _, tt := range tests {
		if !tt.got.Equal(tt.want) {
			t.Errorf("%s = %s, want %s", tt.name, tt.got, tt.want)
		}
		if tt.got.Hash() != tt.want.Hash() {
			t.Errorf("%s: equal values with different hashes", tt.name)
		}
	}
}

func TestCollaboratorContract(t *testing.T) {
	t.Parallel()
	add, mul := Adder(), Multiplier()
	x, y := New(2, 3), New(5, 7)
	if !add(x, y).Equal(x.Add(y)) || !mul(x, y).Equal(x.Mul(y)) {
		t.Errorf("operators disagree with methods")
	}
	if _, ok := RatZero.MultiplicativeInverse(); ok {
		t.Errorf("zero must have no multiplicative inverse")
	}
	inv, ok := x.MultiplicativeInverse()
	if !ok || !mul(x, inv).Equal(RatOne) {
		t.Errorf("x * x^-1 = %s", mul(x, inv))
	}
}

func TestCmpAndConversions(t *testing.T) {
	t.Parallel()
	if New(1, 3).Cmp(New(1, 2)) != -1 || New(-1, 3).Cmp(New(-1, 2)) != 1 || New(2, 4).Cmp(New(1, 2)) != 0 {
		t.Errorf("Cmp ordering wrong")
	}
	if got := New(-7, 2).Int64(); got != -3 {
		t.Errorf("Int64() = %d, want -3 (truncation)", got)
	}
	if New(4, 2).IsInt() != true || New(1, 2).IsInt() {
		t.Errorf("IsInt wrong")
	}
	r := New(-22, 7)
	if r.Big().Cmp(big.NewRat(-22, 7)) != 0 || !FromBigRat(big.NewRat(-22, 7)).Equal(r) {
		t.Errorf("big.Rat round trip failed")
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Rational
		wantErr bool
	}{
		{"3/4", New(3, 4), false},
		{"-10/4", New(-5, 2), false},
		{"42", FromInt64(42), false},
		{"1/0", RatZero, true},
		{"x/2", RatZero, true},
		{"1/", RatZero, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestBigFloat(t *testing.T) {
	t.Parallel()
	x := NewBigFloat(false, natural.FromUint32(12), 3) // 3 * 2^5
	if x.Sig().Uint32() != 3 || x.Exp() != 5 {
		t.Errorf("not canonical: sig=%s exp=%d", x.Sig(), x.Exp())
	}
	y := BigFloatFromInt64(-5).Lsh(-2) // -1.25
	tests := []struct {
		name string
		got  BigFloat
		want float64
	}{
		{"add", x.Add(y), 94.75},
		{"sub", x.Sub(y), 97.25},
		{"mul", x.Mul(y), -120},
		{"neg", y.Neg(), 1.25},
		{"cancel", x.Sub(x), 0},
	}
	for _, tt := range tests {
		if got := tt.got.Float64(); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
	if !x.Sub(x).Equal(BigFloat{}) {
		t.Errorf("x - x must be canonical zero")
	}
	if x.Cmp(y) != 1 || y.Cmp(x) != -1 || x.Cmp(x.Lsh(0)) != 0 {
		t.Errorf("Cmp ordering wrong")
	}
	if got := y.Rational(); !got.Equal(New(-5, 4)) {
		t.Errorf("Rational() = %s", got)
	}
	if huge := BigFloatFromInt64(1).Lsh(1 << 20); !math.IsInf(huge.Float64(), 1) {
		t.Errorf("2^(2^20) must overflow without materializing the value")
	}
}

func TestBigFloatFromDecimalUnsupported(t *testing.T) {
	t.Parallel()
	_, err := BigFloatFromDecimal("0.1")
	var ue apperrors.UnsupportedError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnsupportedError, got %v", err)
	}
	if _, again := BigFloatFromDecimal("0.1"); again == nil || again.Error() != err.Error() {
		t.Errorf("unsupported conversion must fail identically on retry")
	}
}

func TestRationalProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	ratGen := gopter.CombineGens(gen.Int64(), gen.Int64Range(1, math.MaxInt64)).Map(func(v []any) Rational {
		return New(v[0].(int64), v[1].(int64))
	})

	properties.Property("addition is commutative", prop.ForAll(
		func(x, y Rational) bool { return x.Add(y).Equal(y.Add(x)) },
		ratGen, ratGen,
	))

	properties.Property("addition is associative", prop.ForAll(
		func(x, y, z Rational) bool { return x.Add(y).Add(z).Equal(x.Add(y.Add(z))) },
		ratGen, ratGen, ratGen,
	))

	properties.Property("multiplication is commutative", prop.ForAll(
		func(x, y Rational) bool { return x.Mul(y).Equal(y.Mul(x)) },
		ratGen, ratGen,
	))

	properties.Property("multiplication is associative", prop.ForAll(
		func(x, y, z Rational) bool { return x.Mul(y).Mul(z).Equal(x.Mul(y.Mul(z))) },
		ratGen, ratGen, ratGen,
	))

	properties.Property("Float64 matches math/big", prop.ForAll(
		func(x Rational) bool {
			got := x.Float64()
			want, _ := x.Big().Float64()
			return got == want
		},
		ratGen,
	))

	properties.TestingRun(t)
}
