package natural

import (
	"math/bits"

	"github.com/agbru/bitexact/internal/word"
)

// nat is an unsigned magnitude stored as little-endian 32-bit words.
//
// A normalized nat has no zero high words; zero is the empty slice. All
// helpers below accept and return normalized values unless stated
// otherwise. Results are written to freshly allocated storage unless the
// receiver is explicitly documented as reusable, so that immutable
// Natural values never share a mutable backing array.
type nat []uint32

// norm strips zero high words.
func (z nat) norm() nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[0:i]
}

// clone returns a normalized copy of x in fresh storage.
func (x nat) clone() nat {
	x = x.norm()
	if len(x) == 0 {
		return nil
	}
	z := make(nat, len(x))
	copy(z, x)
	return z
}

func natFromUint64(x uint64) nat {
	hi, lo := word.Split64(x)
	switch {
	case hi != 0:
		return nat{lo, hi}
	case lo != 0:
		return nat{lo}
	}
	return nil
}

// cmp compares normalized x and y.
func (x nat) cmp(y nat) int {
	m, n := len(x), len(y)
	if m != n {
		if m < n {
			return -1
		}
		return 1
	}
	for i := m - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// add returns x + y in fresh storage.
func add(x, y nat) nat {
	m, n := len(x), len(y)
	if m < n {
		return add(y, x)
	}
	if m == 0 {
		return nil
	}
	if n == 0 {
		return x.clone()
	}
	z := make(nat, m+1)
	c := addVV(z[:n], x[:n], y)
	if m > n {
		c = addVW(z[n:m], x[n:], c)
	}
	z[m] = c
	return z.norm()
}

// sub returns x - y in fresh storage. It panics if x < y.
func sub(x, y nat) nat {
	m, n := len(x), len(y)
	switch {
	case m < n:
		panic(errNegativeDifference)
	case n == 0:
		return x.clone()
	}
	z := make(nat, m)
	b := subVV(z[:n], x[:n], y)
	if m > n {
		b = subVW(z[n:], x[n:], b)
	}
	if b != 0 {
		panic(errNegativeDifference)
	}
	return z.norm()
}

// addAt adds x into z starting at word offset i and propagates the carry.
// z must be large enough to hold the result; the carry out of z is
// returned and is zero whenever the caller sized z for the exact sum.
func addAt(z, x nat, i int) uint32 {
	n := len(x)
	if n == 0 {
		return 0
	}
	if i+n > len(z) {
		// The high words of x beyond z must be zero for a correctly sized z.
		n = len(z) - i
	}
	c := addVV(z[i:i+n], z[i:i+n], x[:n])
	if c != 0 && i+n < len(z) {
		c = addVW(z[i+n:], z[i+n:], c)
	}
	return c
}

// subAt subtracts x from z starting at word offset i and returns the borrow.
func subAt(z, x nat, i int) uint32 {
	n := len(x)
	if n == 0 {
		return 0
	}
	b := subVV(z[i:i+n], z[i:i+n], x)
	if b != 0 && i+n < len(z) {
		b = subVW(z[i+n:], z[i+n:], b)
	}
	return b
}

// bitLen returns the length of x in bits.
func (x nat) bitLen() int {
	if i := len(x) - 1; i >= 0 {
		return i*word.Bits + bits.Len32(x[i])
	}
	return 0
}

// trailingZeroBits returns the number of consecutive zero bits from the
// least significant end; 0 for x == 0.
func (x nat) trailingZeroBits() uint {
	for i, w := range x {
		if w != 0 {
			return uint(i)*word.Bits + uint(bits.TrailingZeros32(w))
		}
	}
	return 0
}

// lsh returns x << s in fresh storage.
func lsh(x nat, s uint) nat {
	m := len(x)
	if m == 0 {
		return nil
	}
	if s == 0 {
		return x.clone()
	}
	n := m + int(s/word.Bits)
	z := make(nat, n+1)
	z[n] = shlVU(z[n-m:n], x, s%word.Bits)
	return z.norm()
}

// rsh returns x >> s in fresh storage.
func rsh(x nat, s uint) nat {
	m := len(x)
	n := m - int(s/word.Bits)
	if n <= 0 {
		return nil
	}
	z := make(nat, n)
	shrVU(z, x[m-n:], s%word.Bits)
	return z.norm()
}

// lowWords returns the normalized low n words of x, sharing storage.
func (x nat) lowWords(n int) nat {
	if n >= len(x) {
		return x
	}
	return x[:n].norm()
}

// highWords returns x >> (32*n), sharing storage.
func (x nat) highWords(n int) nat {
	if n >= len(x) {
		return nil
	}
	return x[n:]
}

// part returns the normalized words [lo, hi) of x clamped to its length,
// sharing storage.
func (x nat) part(lo, hi int) nat {
	if lo >= len(x) {
		return nil
	}
	if hi > len(x) {
		hi = len(x)
	}
	return x[lo:hi].norm()
}

// joinWords returns hi*B^n + lo where lo < B^n, in fresh storage.
func joinWords(hi, lo nat, n int) nat {
	if len(hi) == 0 {
		return lo.clone()
	}
	z := make(nat, n+len(hi))
	copy(z, lo)
	copy(z[n:], hi)
	return z.norm()
}

// mulWord returns x*y in fresh storage.
func mulWord(x nat, y uint32) nat {
	m := len(x)
	if m == 0 || y == 0 {
		return nil
	}
	z := make(nat, m+1)
	z[m] = mulAddVWW(z[:m], x, y, 0)
	return z.norm()
}

// ones returns B^n - 1.
func ones(n int) nat {
	z := make(nat, n)
	for i := range z {
		z[i] = word.Max
	}
	return z
}

// isOdd reports whether the lowest bit of x is set.
func (x nat) isOdd() bool {
	return len(x) > 0 && x[0]&1 == 1
}
