//go:build gmp

// GMP is opt-in: building with -tags=gmp requires libgmp (libgmp-dev on
// Debian/Ubuntu, gmp on Homebrew).

package crosscheck

import (
	"fmt"

	"github.com/ncw/gmp"

	"github.com/agbru/bitexact/internal/natural"
)

func init() {
	extraOracles = append(extraOracles, func(natural.Engine) Oracle { return gmpOracle{} })
}

// gmpOracle computes with GMP's assembly kernels, an implementation sharing
// no code with either the engine or math/big.
type gmpOracle struct{}

func (gmpOracle) Name() string { return "gmp" }

func (gmpOracle) Supports(kind Kind) bool { return kind != KindRound }

func toGMP(x natural.Natural) *gmp.Int { return new(gmp.Int).SetBytes(x.Bytes()) }

func fromGMP(g *gmp.Int) natural.Natural { return natural.FromBytes(g.Bytes()) }

func (gmpOracle) Compute(kind Kind, c Case) ([]byte, error) {
	a, b := toGMP(c.A), toGMP(c.B)
	switch kind {
	case KindMul:
		return AppendNatural(nil, fromGMP(a.Mul(a, b))), nil
	case KindSqr:
		return AppendNatural(nil, fromGMP(a.Mul(a, a))), nil
	case KindDiv:
		if c.B.IsZero() {
			return nil, fmt.Errorf("division by zero")
		}
		q, r := new(gmp.Int).QuoRem(a, b, new(gmp.Int))
		return AppendNatural(AppendNatural(nil, fromGMP(q)), fromGMP(r)), nil
	case KindGCD:
		return AppendNatural(nil, fromGMP(new(gmp.Int).GCD(nil, nil, a, b))), nil
	}
	return nil, fmt.Errorf("oracle gmp does not support %s", kind)
}
