// This file implements the squaring ladder. Squaring shares the structure of
// multiplication but every sub-product is itself a square, which roughly
// halves the schoolbook work and removes one recursive product per level.

package natural

// sqrFunc squares a normalized magnitude into fresh storage.
type sqrFunc func(x nat) nat

// sqr squares x with the algorithm the engine's square thresholds select.
func (e Engine) sqr(x nat) nat {
	switch n := len(x); {
	case n == 0:
		return nil
	case n == 1:
		return mulWord(x, x[0])
	case n < e.t.KaratsubaSqr:
		return sqrSchoolbook(x)
	case n < e.t.ToomCook3Sqr:
		return sqrKaratsuba(x, e.sqr)
	}
	return sqrToomCook3(x, e.sqr)
}

func forcedSqrKaratsuba(x nat) nat {
	if len(x) < karatsubaFloor {
		return sqrSchoolbook(x)
	}
	return sqrKaratsuba(x, forcedSqrKaratsuba)
}

func forcedSqrToomCook3(x nat) nat {
	if len(x) < toomCook3Floor {
		return sqrSchoolbook(x)
	}
	return sqrToomCook3(x, forcedSqrToomCook3)
}

// sqrSchoolbook accumulates each cross product x[i]*x[j] (i < j) once,
// doubles the sum with a one-bit shift and adds the diagonal squares.
func sqrSchoolbook(x nat) nat {
	n := len(x)
	if n == 0 {
		return nil
	}
	z := make(nat, 2*n)
	for i := 1; i < n; i++ {
		if x[i] != 0 {
			z[2*i] = addMulVVW(z[i:2*i], x[:i], x[i])
		}
	}
	z[2*n-1] = shlVU(z[:2*n-1], z[:2*n-1], 1)

	diag := make(nat, 2*n)
	for i, d := range x {
		t := uint64(d) * uint64(d)
		diag[2*i] = uint32(t)
		diag[2*i+1] = uint32(t >> 32)
	}
	addVV(z, z, diag)
	return z.norm()
}

// sqrKaratsuba computes x^2 = hi^2*B^2k + ((hi+lo)^2 - hi^2 - lo^2)*B^k + lo^2,
// using three squares instead of three general products.
func sqrKaratsuba(x nat, rec sqrFunc) nat {
	k := (len(x) + 1) / 2
	x0, x1 := x.lowWords(k), x.highWords(k)

	z0 := rec(x0)
	z2 := rec(x1)

	s := acquireScratch(k + 1)
	defer releaseScratch(s)
	addInto(s, x0, x1)

	z1 := rec(s.norm())
	subAt(z1, z0, 0)
	subAt(z1, z2, 0)
	z1 = z1.norm()

	z := make(nat, 2*len(x)+1)
	copy(z, z0)
	copy(z[2*k:], z2)
	addAt(z, z1, k)
	return z.norm()
}

// sqrToomCook3 is toomCook3 with both operands equal: five squares, and the
// value at -1 is always non-negative.
func sqrToomCook3(x nat, rec sqrFunc) nat {
	k := (len(x) + 2) / 3
	x0, x1, x2 := x.part(0, k), x.part(k, 2*k), x.part(2*k, len(x))

	v0 := rec(x0)
	vInf := rec(x2)

	px0 := add(x0, x2)
	pm1 := signedSub(px0, x1)
	vm1 := signed{mag: rec(pm1.mag)}

	p1 := add(px0, x1)
	v1 := rec(p1)

	p2 := sub(lsh(add(p1, x2), 1), x0)
	v2 := rec(p2)

	return toomInterpolate(v0, v1, vm1, v2, vInf, k, 2*len(x))
}
