// This file implements multiplication: the schoolbook method, Karatsuba and
// Toom-Cook-3, selected by operand size.

package natural

// mulFunc multiplies two normalized magnitudes in any order and returns the
// product in fresh storage. Implementations never return a slice that
// aliases an input.
type mulFunc func(x, y nat) nat

// ─────────────────────────────────────────────────────────────────────────────
// Dispatch
// ─────────────────────────────────────────────────────────────────────────────

// mul multiplies x and y with the algorithm the engine thresholds select for
// the smaller operand. Recursive sub-products are dispatched again, so every
// level picks the algorithm that fits its own size.
func (e Engine) mul(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	switch n := len(y); {
	case n == 0:
		return nil
	case n == 1:
		return mulWord(x, y[0])
	case n < e.t.KaratsubaMul:
		return mulSchoolbook(x, y)
	case len(x) >= 2*n:
		return mulChunked(x, y, e.mul)
	case n < e.t.ToomCook3Mul:
		return karatsuba(x, y, e.mul)
	}
	return toomCook3(x, y, e.mul)
}

// forcedKaratsuba multiplies with Karatsuba at every level down to
// karatsubaFloor, regardless of the engine thresholds.
func forcedKaratsuba(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	switch n := len(y); {
	case n == 0:
		return nil
	case n < karatsubaFloor:
		return mulSchoolbook(x, y)
	case len(x) >= 2*n:
		return mulChunked(x, y, forcedKaratsuba)
	}
	return karatsuba(x, y, forcedKaratsuba)
}

// forcedToomCook3 multiplies with Toom-Cook-3 at every level down to
// toomCook3Floor.
func forcedToomCook3(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	switch n := len(y); {
	case n == 0:
		return nil
	case n < toomCook3Floor:
		return mulSchoolbook(x, y)
	case len(x) >= 2*n:
		return mulChunked(x, y, forcedToomCook3)
	}
	return toomCook3(x, y, forcedToomCook3)
}

// mulChunked multiplies an operand x at least twice as long as y by cutting
// x into len(y)-word chunks, so that rec only sees balanced operands.
func mulChunked(x, y nat, rec mulFunc) nat {
	n := len(y)
	z := make(nat, len(x)+len(y)+1)
	for i := 0; i < len(x); i += n {
		hi := i + n
		if hi > len(x) {
			hi = len(x)
		}
		addAt(z, rec(x[i:hi].norm(), y), i)
	}
	return z.norm()
}

// ─────────────────────────────────────────────────────────────────────────────
// Schoolbook
// ─────────────────────────────────────────────────────────────────────────────

// mulSchoolbook computes x*y in O(len(x)*len(y)) word operations with a 64-bit
// accumulator per step.
func mulSchoolbook(x, y nat) nat {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	z := make(nat, len(x)+len(y))
	for i, d := range y {
		if d != 0 {
			z[len(x)+i] = addMulVVW(z[i:i+len(x)], x, d)
		}
	}
	return z.norm()
}

// ─────────────────────────────────────────────────────────────────────────────
// Karatsuba
// ─────────────────────────────────────────────────────────────────────────────

// karatsuba splits both operands at k = ceil(len(x)/2) words into (hi, lo)
// and computes
//
//	z0 = lo(x)*lo(y)
//	z2 = hi(x)*hi(y)
//	z1 = (lo(x)+hi(x))*(lo(y)+hi(y)) - z0 - z2
//
// so that x*y = z2*B^2k + z1*B^k + z0 with three recursive products.
// It requires len(x) >= len(y) and len(x) < 2*len(y).
func karatsuba(x, y nat, rec mulFunc) nat {
	k := (len(x) + 1) / 2
	x0, x1 := x.lowWords(k), x.highWords(k)
	y0, y1 := y.lowWords(k), y.highWords(k)

	z0 := rec(x0, y0)
	z2 := rec(x1, y1)

	sx := acquireScratch(k + 1)
	defer releaseScratch(sx)
	sy := acquireScratch(k + 1)
	defer releaseScratch(sy)
	addInto(sx, x0, x1)
	addInto(sy, y0, y1)

	z1 := rec(sx.norm(), sy.norm())
	subAt(z1, z0, 0)
	subAt(z1, z2, 0)
	z1 = z1.norm()

	z := make(nat, len(x)+len(y)+1)
	copy(z, z0)
	copy(z[2*k:], z2)
	addAt(z, z1, k)
	return z.norm()
}

// addInto stores x + y into z, which must have room for the carry word.
func addInto(z, x, y nat) {
	if len(x) < len(y) {
		x, y = y, x
	}
	clear(z)
	copy(z, x)
	addAt(z, y, 0)
}

// ─────────────────────────────────────────────────────────────────────────────
// Toom-Cook-3
// ─────────────────────────────────────────────────────────────────────────────

// toomCook3 splits both operands into three k-word parts, evaluates the
// resulting polynomials at 0, 1, -1, 2 and infinity, multiplies pointwise and
// interpolates the five coefficients. The interpolation uses two exact
// halvings and one exact division by 3. It requires len(x) >= len(y) and
// len(x) < 2*len(y).
func toomCook3(x, y nat, rec mulFunc) nat {
	k := (len(x) + 2) / 3
	x0, x1, x2 := x.part(0, k), x.part(k, 2*k), x.part(2*k, len(x))
	y0, y1, y2 := y.part(0, k), y.part(k, 2*k), y.part(2*k, len(y))

	v0 := rec(x0, y0)
	vInf := rec(x2, y2)

	// p(1) and p(-1) share p0 = x0 + x2.
	px0 := add(x0, x2)
	qy0 := add(y0, y2)
	pm1 := signedSub(px0, x1)
	qm1 := signedSub(qy0, y1)
	vm1 := signed{neg: pm1.neg != qm1.neg, mag: rec(pm1.mag, qm1.mag)}
	if len(vm1.mag) == 0 {
		vm1.neg = false
	}

	p1 := add(px0, x1)
	q1 := add(qy0, y1)
	v1 := rec(p1, q1)

	// p(2) = 2*(p(1) + x2) - x0 = x0 + 2*x1 + 4*x2.
	p2 := sub(lsh(add(p1, x2), 1), x0)
	q2 := sub(lsh(add(q1, y2), 1), y0)
	v2 := rec(p2, q2)

	return toomInterpolate(v0, v1, vm1, v2, vInf, k, len(x)+len(y))
}

// toomInterpolate recovers the five product coefficients from the pointwise
// values r(0), r(1), r(-1), r(2), r(inf) and assembles them at word offset
// multiples of k. Every intermediate except r(-1) is non-negative because
// the coefficients of a product of natural polynomials are non-negative.
func toomInterpolate(v0, v1 nat, vm1 signed, v2, vInf nat, k, size int) nat {
	// t2 = (r(2) - r(-1)) / 3 = c1 + c2 + 3c3 + 5c4
	t2 := divExact3(signedSubFrom(v2, vm1))
	// tm1 = (r(1) - r(-1)) / 2 = c1 + c3
	tm1 := rsh(signedSubFrom(v1, vm1), 1)
	// t1 = r(1) - r(0) = c1 + c2 + c3 + c4
	t1 := sub(v1, v0)
	// t2 = (t2 - t1) / 2 = c3 + 2c4
	t2 = rsh(sub(t2, t1), 1)
	// t1 = t1 - tm1 - r(inf) = c2
	t1 = sub(sub(t1, tm1), vInf)
	// t2 = t2 - 2*r(inf) = c3
	t2 = sub(t2, lsh(vInf, 1))
	// tm1 = tm1 - t2 = c1
	tm1 = sub(tm1, t2)

	z := make(nat, size+1)
	copy(z, v0)
	addAt(z, tm1, k)
	addAt(z, t1, 2*k)
	addAt(z, t2, 3*k)
	addAt(z, vInf, 4*k)
	return z.norm()
}

// signed is a sign-magnitude value used only for the Toom-Cook evaluation at
// -1, where p0 - x1 may be negative.
type signed struct {
	neg bool
	mag nat
}

// signedSub returns x - y as a signed value.
func signedSub(x, y nat) signed {
	if x.cmp(y) >= 0 {
		return signed{mag: sub(x, y)}
	}
	return signed{neg: true, mag: sub(y, x)}
}

// signedSubFrom returns x - s for a result known to be non-negative.
func signedSubFrom(x nat, s signed) nat {
	if s.neg {
		return add(x, s.mag)
	}
	return sub(x, s.mag)
}

// inverse3 is the multiplicative inverse of 3 modulo 2^32.
const inverse3 = 0xAAAAAAAB

// divExact3 divides x by 3 when x is known to be a multiple of 3. Each word is
// multiplied by the modular inverse of 3; the borrow carried into the next
// word is the number of times 3*q exceeds the current word.
func divExact3(x nat) nat {
	z := make(nat, len(x))
	var borrow uint32
	for i, xi := range x {
		w := xi - borrow
		if borrow > xi {
			borrow = 1
		} else {
			borrow = 0
		}
		q := w * inverse3
		z[i] = q
		// 3*q overflows the word by 0, 1 or 2 multiples of 2^32.
		if q >= 0x55555556 {
			borrow++
			if q >= 0xAAAAAAAB {
				borrow++
			}
		}
	}
	return z.norm()
}
