//go:generate mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks

package crosscheck

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"slices"
	"sort"

	"github.com/agbru/bitexact/internal/natural"
	"github.com/agbru/bitexact/internal/rational"
)

// Oracle is one implementation of the checked operations.
type Oracle interface {
	// Name identifies the oracle in reports and metrics.
	Name() string
	// Supports reports whether the oracle implements kind.
	Supports(kind Kind) bool
	// Compute evaluates kind on c and returns the canonical encoding of
	// the result (see AppendNatural and AppendFloats).
	Compute(kind Kind, c Case) ([]byte, error)
}

// ReferenceOracle is the oracle other results are compared against when it
// takes part in a check.
const ReferenceOracle = "math/big"

// AppendNatural appends the canonical encoding of x: its word count as a
// little-endian uint32 followed by its little-endian words.
func AppendNatural(dst []byte, x natural.Natural) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(x.Len()))
	for i := 0; i < x.Len(); i++ {
		dst = binary.LittleEndian.AppendUint32(dst, x.Word(i))
	}
	return dst
}

// AppendFloats appends the IEEE 754 bit patterns of a rounding result.
func AppendFloats(dst []byte, f64 float64, f32 float32) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(f64))
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(f32))
}

// ─────────────────────────────────────────────────────────────────────────────
// Engine oracles
// ─────────────────────────────────────────────────────────────────────────────

// engineOracle adapts a set of natural package functions. Nil functions mark
// unsupported kinds.
type engineOracle struct {
	name  string
	mul   func(x, y natural.Natural) natural.Natural
	sqr   func(x natural.Natural) natural.Natural
	div   func(u, v natural.Natural) (q, r natural.Natural)
	gcd   func(u, v natural.Natural) natural.Natural
	round func(n, d natural.Natural) (float64, float32)
}

func (o engineOracle) Name() string { return o.name }

func (o engineOracle) Supports(kind Kind) bool {
	switch kind {
	case KindMul:
		return o.mul != nil
	case KindSqr:
		return o.sqr != nil
	case KindDiv:
		return o.div != nil
	case KindGCD:
		return o.gcd != nil
	case KindRound:
		return o.round != nil
	}
	return false
}

func (o engineOracle) Compute(kind Kind, c Case) ([]byte, error) {
	if !o.Supports(kind) {
		return nil, fmt.Errorf("oracle %s does not support %s", o.name, kind)
	}
	switch kind {
	case KindMul:
		return AppendNatural(nil, o.mul(c.A, c.B)), nil
	case KindSqr:
		return AppendNatural(nil, o.sqr(c.A)), nil
	case KindDiv:
		q, r := o.div(c.A, c.B)
		return AppendNatural(AppendNatural(nil, q), r), nil
	case KindGCD:
		return AppendNatural(nil, o.gcd(c.A, c.B)), nil
	default:
		f64, f32 := o.round(c.A, c.B)
		return AppendFloats(nil, f64, f32), nil
	}
}

func roundRational(n, d natural.Natural) (float64, float32) {
	r := rational.FromNaturals(false, n, d)
	return r.Float64(), r.Float32()
}

// engineOracles returns the engine-backed oracles. The forced strategies
// ignore e's dispatch thresholds, but Burnikel-Ziegler still recurses down
// to e's threshold.
func engineOracles(e natural.Engine) []Oracle {
	return []Oracle{
		engineOracle{name: "schoolbook", mul: natural.MulSchoolbook, sqr: natural.SqrSchoolbook},
		engineOracle{name: "karatsuba", mul: natural.MulKaratsuba, sqr: natural.SqrKaratsuba},
		engineOracle{name: "toom3", mul: natural.MulToomCook3, sqr: natural.SqrToomCook3},
		engineOracle{name: "knuth", div: e.DivRemKnuth},
		engineOracle{name: "burnikel-ziegler", div: e.DivRemBurnikelZiegler},
		engineOracle{name: "engine", mul: e.Mul, sqr: e.Sqr, div: e.DivRem, gcd: e.GCD, round: roundRational},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// math/big oracle
// ─────────────────────────────────────────────────────────────────────────────

// bigOracle is the independent reference: the standard library's math/big.
type bigOracle struct{}

func (bigOracle) Name() string { return ReferenceOracle }

func (bigOracle) Supports(Kind) bool { return true }

func (bigOracle) Compute(kind Kind, c Case) ([]byte, error) {
	a, b := c.A.Big(), c.B.Big()
	switch kind {
	case KindMul:
		return AppendNatural(nil, natural.FromBig(a.Mul(a, b))), nil
	case KindSqr:
		return AppendNatural(nil, natural.FromBig(a.Mul(a, a))), nil
	case KindDiv:
		if b.Sign() == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		q, r := new(big.Int).QuoRem(a, b, new(big.Int))
		return AppendNatural(AppendNatural(nil, natural.FromBig(q)), natural.FromBig(r)), nil
	case KindGCD:
		return AppendNatural(nil, natural.FromBig(new(big.Int).GCD(nil, nil, a, b))), nil
	case KindRound:
		if b.Sign() == 0 {
			return nil, fmt.Errorf("zero denominator")
		}
		r := new(big.Rat).SetFrac(a, b)
		f64, _ := r.Float64()
		f32, _ := r.Float32()
		return AppendFloats(nil, f64, f32), nil
	}
	return nil, fmt.Errorf("oracle %s does not support %s", ReferenceOracle, kind)
}

// ─────────────────────────────────────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────────────────────────────────────

// extraOracles holds constructors registered by optional builds (gmp).
var extraOracles []func(natural.Engine) Oracle

// Registry indexes oracles by name.
type Registry struct {
	oracles map[string]Oracle
}

// NewRegistry returns a registry holding every available oracle, with
// engine-backed oracles bound to e.
func NewRegistry(e natural.Engine) *Registry {
	r := &Registry{oracles: make(map[string]Oracle)}
	for _, o := range engineOracles(e) {
		r.Register(o)
	}
	r.Register(bigOracle{})
	for _, mk := range extraOracles {
		r.Register(mk(e))
	}
	return r
}

// Register adds or replaces an oracle.
func (r *Registry) Register(o Oracle) { r.oracles[o.Name()] = o }

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.oracles))
	for name := range r.oracles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the oracle registered under name.
func (r *Registry) Get(name string) (Oracle, error) {
	o, ok := r.oracles[name]
	if !ok {
		return nil, fmt.Errorf("unknown oracle %q (available: %v)", name, r.List())
	}
	return o, nil
}

// Select returns the named oracles in sorted order, or all of them when
// names is empty.
func (r *Registry) Select(names []string) ([]Oracle, error) {
	if len(names) == 0 {
		names = r.List()
	} else {
		names = slices.Clone(names)
		sort.Strings(names)
		names = slices.Compact(names)
	}
	out := make([]Oracle, 0, len(names))
	for _, name := range names {
		o, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
