package crosscheck

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/agbru/bitexact/internal/natural"
)

// Kind names the operation a check exercises.
type Kind string

const (
	KindMul   Kind = "mul"
	KindSqr   Kind = "sqr"
	KindDiv   Kind = "div"
	KindGCD   Kind = "gcd"
	KindRound Kind = "round"
)

// AllKinds lists every check kind in execution order.
func AllKinds() []Kind { return []Kind{KindMul, KindSqr, KindDiv, KindGCD, KindRound} }

// KindNames returns AllKinds as strings, for flag validation and completion.
func KindNames() []string {
	kinds := AllKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// ParseKinds resolves a -check value into the kinds to run.
func ParseKinds(name string) ([]Kind, error) {
	if name == "all" {
		return AllKinds(), nil
	}
	for _, k := range AllKinds() {
		if string(k) == name {
			return []Kind{k}, nil
		}
	}
	return nil, fmt.Errorf("unknown check %q", name)
}

// Workload describes the operands generated for a check.
type Workload struct {
	Words        int
	DivisorWords int
	Iterations   int
	Seed         int64
}

// Case is one operand pair. Unary operations ignore B. For rounding, A/B is
// the ratio to convert.
type Case struct {
	A, B natural.Natural
}

// Cases generates the operands of kind deterministically from the seed.
// Each kind derives its own stream so that selecting a subset of checks
// does not change the operands of the others.
func (w Workload) Cases(kind Kind) []Case {
	rng := rand.New(rand.NewSource(w.Seed ^ kindSalt(kind)))
	cases := make([]Case, w.Iterations)
	for i := range cases {
		switch kind {
		case KindMul:
			cases[i] = Case{A: randOperand(rng, w.Words, i), B: randOperand(rng, mulShape(rng, w, i), i/3)}
		case KindSqr:
			cases[i] = Case{A: randOperand(rng, w.Words, i)}
		case KindDiv:
			cases[i] = Case{A: randOperand(rng, w.Words, i), B: divisor(rng, w.DivisorWords, i)}
		case KindGCD:
			cases[i] = gcdCase(rng, w)
		case KindRound:
			cases[i] = roundCase(rng, w, i)
		}
	}
	return cases
}

func kindSalt(kind Kind) int64 {
	h := fnv.New64a()
	h.Write([]byte(kind))
	return int64(h.Sum64())
}

// mulShape cycles the second operand through balanced, unbalanced and tiny
// sizes so every multiplication path sees both shapes.
func mulShape(rng *rand.Rand, w Workload, i int) int {
	switch i % 3 {
	case 0:
		return w.Words
	case 1:
		return w.DivisorWords
	default:
		return 1 + rng.Intn(max(w.Words/8, 1))
	}
}

// randOperand returns a natural of exactly words words. pattern selects
// between uniform words and the carry-heavy shapes that break naive
// implementations: all ones, a lone top bit, and sparse words.
func randOperand(rng *rand.Rand, words, pattern int) natural.Natural {
	w := make([]uint32, words)
	switch pattern % 8 {
	case 5:
		for i := range w {
			w[i] = ^uint32(0)
		}
	case 6:
		w[words-1] = 1 << 31
	case 7:
		for i := range w {
			if rng.Intn(8) == 0 {
				w[i] = rng.Uint32()
			}
		}
	default:
		for i := range w {
			w[i] = rng.Uint32()
		}
	}
	if w[words-1] == 0 {
		w[words-1] = 1 + rng.Uint32()>>1
	}
	return natural.FromWords(w...)
}

// divisor returns a non-zero divisor of words words. Every fourth divisor
// has a top word of the form 0x8000_xxxx, which makes Knuth's estimate
// overshoot and exercises the add-back step.
func divisor(rng *rand.Rand, words, i int) natural.Natural {
	d := randOperand(rng, words, i)
	if i%4 == 3 {
		d = d.SetWord(words-1, 1<<31|rng.Uint32()&0xFFFF)
	}
	return d
}

// gcdCase multiplies two random cofactors by a shared factor so the gcd is
// large rather than almost always 1.
func gcdCase(rng *rand.Rand, w Workload) Case {
	g := randOperand(rng, max(w.DivisorWords/2, 1), 0)
	a := natural.Mul(g, randOperand(rng, max(w.Words-g.Len(), 1), 0))
	b := natural.Mul(g, randOperand(rng, max(w.DivisorWords-g.Len(), 1), 0))
	return Case{A: a, B: b}
}

// roundCase returns a ratio to round. Odd cases are random quotients; even
// cases sit exactly on or next to a float64 rounding tie, and every eighth
// lands in the subnormal range.
func roundCase(rng *rand.Rand, w Workload, i int) Case {
	if i%2 == 1 {
		return Case{A: randOperand(rng, w.Words, 0), B: randOperand(rng, w.DivisorWords, 0)}
	}
	// m is a 54-bit odd integer: halfway between two adjacent 53-bit
	// significands. Nudging it by ±1 at a lower bit moves it off the tie.
	m := natural.FromUint64(1<<53 | rng.Uint64()&(1<<53-1) | 1)
	num := m.Lsh(64)
	switch i % 6 {
	case 2:
		num = natural.AddUint32(num, 1)
	case 4:
		num = natural.Sub(num, natural.One)
	}
	shift := rng.Intn(2000) - 1000
	if i%8 == 0 {
		shift = 1140 + rng.Intn(60)
	}
	if shift >= 0 {
		return Case{A: num, B: natural.One.Lsh(shift)}
	}
	return Case{A: num.Lsh(-shift), B: natural.One}
}
