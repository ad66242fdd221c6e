// This file implements division with remainder: single-word long division,
// Knuth's Algorithm D and the recursive Burnikel-Ziegler method.

package natural

import (
	"math/bits"

	"github.com/agbru/bitexact/internal/word"
)

// ─────────────────────────────────────────────────────────────────────────────
// Public API
// ─────────────────────────────────────────────────────────────────────────────

// DivRem returns the quotient u / v and the remainder u % v using
// DefaultEngine. It panics with ErrDivisionByZero if v is zero.
func DivRem(u, v Natural) (q, r Natural) { return DefaultEngine.DivRem(u, v) }

// Div returns u / v. It panics with ErrDivisionByZero if v is zero.
func Div(u, v Natural) Natural {
	q, _ := DefaultEngine.DivRem(u, v)
	return q
}

// Rem returns u % v. It panics with ErrDivisionByZero if v is zero.
func Rem(u, v Natural) Natural {
	_, r := DefaultEngine.DivRem(u, v)
	return r
}

// DivRemUint32 divides u by a single word in one linear pass.
func DivRemUint32(u Natural, v uint32) (Natural, uint32) {
	if v == 0 {
		panic(ErrDivisionByZero)
	}
	q, r := divW(u.w, v)
	return wrap(q), r
}

// DivRemKnuth divides with Algorithm D regardless of operand size.
func DivRemKnuth(u, v Natural) (q, r Natural) { return DefaultEngine.DivRemKnuth(u, v) }

// DivRemBurnikelZiegler divides with Burnikel-Ziegler at the top level
// regardless of operand size, using DefaultEngine's block threshold.
func DivRemBurnikelZiegler(u, v Natural) (q, r Natural) {
	return DefaultEngine.DivRemBurnikelZiegler(u, v)
}

// DivRem returns u / v and u % v, choosing Knuth's Algorithm D for small or
// unbalanced operands and Burnikel-Ziegler otherwise.
func (e Engine) DivRem(u, v Natural) (q, r Natural) {
	qn, rn := e.divRem(u.w, v.w)
	return wrap(qn), wrap(rn)
}

// DivRemKnuth is DivRem restricted to Algorithm D.
func (e Engine) DivRemKnuth(u, v Natural) (q, r Natural) {
	if v.IsZero() {
		panic(ErrDivisionByZero)
	}
	qn, rn := divSmall(u.w, v.w)
	return wrap(qn), wrap(rn)
}

// DivRemBurnikelZiegler is DivRem restricted to Burnikel-Ziegler at the top
// level. Recursion still bottoms out in Algorithm D below the engine's
// Burnikel-Ziegler threshold.
func (e Engine) DivRemBurnikelZiegler(u, v Natural) (q, r Natural) {
	if v.IsZero() {
		panic(ErrDivisionByZero)
	}
	if u.w.cmp(v.w) < 0 {
		return Zero, u
	}
	qn, rn := e.divBurnikelZiegler(u.w, v.w)
	return wrap(qn), wrap(rn)
}

// divRem dispatches on operand sizes.
func (e Engine) divRem(u, v nat) (q, r nat) {
	switch {
	case len(v) == 0:
		panic(ErrDivisionByZero)
	case len(v) < e.t.BurnikelZiegler, len(u)-len(v) < e.t.BurnikelZieglerOffset:
		return divSmall(u, v)
	}
	return e.divBurnikelZiegler(u, v)
}

// divSmall handles the trivial cases and the single-word divisor before
// falling back to Algorithm D. v must be non-zero.
func divSmall(u, v nat) (q, r nat) {
	switch {
	case u.cmp(v) < 0:
		return nil, u.clone()
	case len(v) == 1:
		q, rw := divW(u, v[0])
		return q, natFromUint64(uint64(rw))
	}
	return divKnuth(u, v)
}

// ─────────────────────────────────────────────────────────────────────────────
// Single word
// ─────────────────────────────────────────────────────────────────────────────

// divW returns x / y and x % y for a single-word divisor.
func divW(x nat, y uint32) (q nat, r uint32) {
	m := len(x)
	switch {
	case y == 0:
		panic(ErrDivisionByZero)
	case y == 1:
		return x.clone(), 0
	case m == 0:
		return nil, 0
	}
	q = make(nat, m)
	r = divWVW(q, 0, x, y)
	return q.norm(), r
}

// ─────────────────────────────────────────────────────────────────────────────
// Knuth Algorithm D
// ─────────────────────────────────────────────────────────────────────────────

// divKnuth implements Knuth's Algorithm D (TAOCP vol. 2, 4.3.1). It requires
// len(v) >= 2 and u >= v.
//
// The divisor is shifted so that its top bit is set; each quotient digit is
// then estimated from the two leading remainder words and the leading
// divisor word, corrected with the second divisor word, and fixed up by a
// single add-back when the multiply-subtract still borrows.
func divKnuth(u, v nat) (q, r nat) {
	n := len(v)
	m := len(u) - n

	shift := uint(bits.LeadingZeros32(v[n-1]))
	vn := make(nat, n)
	shlVU(vn, v, shift)
	un := make(nat, len(u)+1)
	un[len(u)] = shlVU(un[:len(u)], u, shift)

	q = make(nat, m+1)
	qhatv := make(nat, n+1)
	vn1, vn2 := vn[n-1], vn[n-2]

	for j := m; j >= 0; j-- {
		qhat := word.Max
		if ujn := un[j+n]; ujn != vn1 {
			var rhat uint32
			qhat, rhat = word.UnpackDivWord(word.DivWord(word.Join64(ujn, un[j+n-1]), vn1))

			// qhat is at most two too large; the second divisor word
			// detects both cases.
			ujn2 := un[j+n-2]
			for {
				hi, lo := bits.Mul32(qhat, vn2)
				if hi < rhat || (hi == rhat && lo <= ujn2) {
					break
				}
				qhat--
				prev := rhat
				rhat += vn1
				if rhat < prev {
					break
				}
			}
		}

		qhatv[n] = mulAddVWW(qhatv[:n], vn, qhat, 0)
		if subVV(un[j:j+n+1], un[j:j+n+1], qhatv) != 0 {
			c := addVV(un[j:j+n], un[j:j+n], vn)
			un[j+n] += c
			qhat--
		}
		q[j] = qhat
	}

	r = make(nat, n)
	shrVU(r, un[:n], shift)
	return q.norm(), r.norm()
}

// ─────────────────────────────────────────────────────────────────────────────
// Burnikel-Ziegler
// ─────────────────────────────────────────────────────────────────────────────

// divBurnikelZiegler implements "Fast Recursive Division" (Burnikel and
// Ziegler, MPI-I-98-1-022). It requires u >= v > 0.
//
// The divisor is padded to n = j*2^k words with its top bit set, where j is
// below the engine threshold so that the recursion of divide2n1n ends in
// Algorithm D. The dividend is cut into t blocks of n words and divided
// block by block, schoolbook style, with divide2n1n as the digit step.
func (e Engine) divBurnikelZiegler(u, v nat) (q, r nat) {
	s := len(v)
	m := 1 << bits.Len(uint(s/e.t.BurnikelZiegler))
	j := (s + m - 1) / m
	n := j * m
	n32 := n * word.Bits

	sigma := uint(max(0, n32-v.bitLen()))
	b := lsh(v, sigma)
	a := lsh(u, sigma)

	// t blocks hold a plus one spare bit, so the top block is below b.
	t := max((a.bitLen()+n32)/n32, 2)

	q = make(nat, (t-1)*n)
	z := a.part((t-2)*n, t*n)
	for i := t - 2; i > 0; i-- {
		qi, ri := e.divide2n1n(z, b)
		copy(q[i*n:], qi)
		z = joinWords(ri, a.part((i-1)*n, i*n), n)
	}
	qi, ri := e.divide2n1n(z, b)
	copy(q, qi)

	return q.norm(), rsh(ri, sigma)
}

// divide2n1n divides a < b*B^n by the n-word divisor b, whose top bit is set.
func (e Engine) divide2n1n(a, b nat) (q, r nat) {
	n := len(b)
	if n%2 != 0 || n < e.t.BurnikelZiegler {
		return divSmall(a, b)
	}
	half := n / 2

	// [a1,a2,a3] / [b1,b2], then [r1,r2,a4] / [b1,b2].
	q1, r1 := e.divide3n2n(a.highWords(half), b, half)
	q2, r := e.divide3n2n(joinWords(r1, a.lowWords(half), half), b, half)
	return joinWords(q1, q2, half), r
}

// divide3n2n divides a < b*B^n by the 2n-word divisor b = [b1,b2], whose top
// bit is set. The quotient fits in n words.
func (e Engine) divide3n2n(a, b nat, n int) (q, r nat) {
	a12 := a.highWords(n)
	a1 := a.highWords(2 * n)
	a3 := a.lowWords(n)
	b1 := b.highWords(n)
	b2 := b.lowWords(n)

	var r1 nat
	if a1.cmp(b1) < 0 {
		q, r1 = e.divide2n1n(a12, b1)
	} else {
		// a1 == b1: the quotient digit saturates at B^n - 1 and
		// r1 = a12 - q*b1 = [a2] + b1.
		q = ones(n)
		r1 = add(sub(a12, joinWords(b1, nil, n)), b1)
	}
	d := e.mul(q, b2)

	// r = r1*B^n + a3 - d, corrected by adding b back at most twice.
	x := joinWords(r1, a3, n)
	if x.cmp(d) >= 0 {
		return q, sub(x, d)
	}
	deficit := sub(d, x)
	for {
		q = sub(q, One.w)
		if deficit.cmp(b) <= 0 {
			return q, sub(b, deficit)
		}
		deficit = sub(deficit, b)
	}
}
