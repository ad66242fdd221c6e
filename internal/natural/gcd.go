package natural

import "github.com/agbru/bitexact/internal/word"

// GCD returns the greatest common divisor of u and v using DefaultEngine.
// GCD(u, 0) == u and GCD(0, 0) == 0.
func GCD(u, v Natural) Natural { return DefaultEngine.GCD(u, v) }

// GCD returns the greatest common divisor of u and v.
//
// Euclidean steps run while the operands differ by two or more words, so
// each division costs about as much as the size gap it removes. Once the
// sizes converge the binary algorithm takes over.
func (e Engine) GCD(u, v Natural) Natural {
	return wrap(e.gcd(u.w, v.w))
}

func (e Engine) gcd(a, b nat) nat {
	if a.cmp(b) < 0 {
		a, b = b, a
	}
	for len(b) > 0 && len(a)-len(b) >= 2 {
		_, r := e.divRem(a, b)
		a, b = b, r
	}
	switch {
	case len(b) == 0:
		return a.clone()
	case len(b) == 1:
		return nat{word.GCD32(b[0], modWV(a, b[0]))}
	}
	return e.binaryGCD(a, b)
}

// binaryGCD computes gcd(a, b) for non-zero a and b by stripping their
// common power of two, then repeatedly subtracting the smaller odd value
// from the larger and shifting out the trailing zeros.
func (e Engine) binaryGCD(a, b nat) nat {
	za, zb := a.trailingZeroBits(), b.trailingZeroBits()
	k := min(za, zb)

	// Fresh copies, updated in place below.
	u, v := rsh(a, za), rsh(b, zb)
	for {
		switch c := u.cmp(v); {
		case c == 0:
			return lsh(u, k)
		case c < 0:
			u, v = v, u
		}
		// u > v, both odd.
		if len(u) == 1 {
			return lsh(nat{word.GCD32(u[0], v[0])}, k)
		}
		if len(u)-len(v) >= 2 {
			_, u = e.divRem(u, v)
			if len(u) == 0 {
				return lsh(v, k)
			}
		} else {
			bw := subVV(u[:len(v)], u[:len(v)], v)
			if len(u) > len(v) {
				subVW(u[len(v):], u[len(v):], bw)
			}
			u = u.norm()
		}
		u = u.shrInPlace(u.trailingZeroBits())
	}
}

// shrInPlace shifts z right by s bits reusing its storage.
func (z nat) shrInPlace(s uint) nat {
	ws := int(s / word.Bits)
	if ws >= len(z) {
		return z[:0]
	}
	if ws > 0 {
		copy(z, z[ws:])
		z = z[:len(z)-ws]
	}
	shrVU(z, z, s%word.Bits)
	return z.norm()
}
