// This file contains the word-vector primitives every algorithm in the
// package is built from. They follow the math/big naming scheme
// (addVV, subVW, mulAddVWW, ...): V is a vector operand, W a single word,
// U an unsigned shift count.

package natural

import (
	"math/bits"

	"github.com/agbru/bitexact/internal/word"
)

// addVV computes z = x + y for len(z) == len(x) == len(y) and returns the carry.
func addVV(z, x, y []uint32) (c uint32) {
	for i := range z {
		z[i], c = bits.Add32(x[i], y[i], c)
	}
	return c
}

// subVV computes z = x - y for len(z) == len(x) == len(y) and returns the borrow.
func subVV(z, x, y []uint32) (b uint32) {
	for i := range z {
		z[i], b = bits.Sub32(x[i], y[i], b)
	}
	return b
}

// addVW computes z = x + y for a single word y and returns the carry.
func addVW(z, x []uint32, y uint32) (c uint32) {
	c = y
	for i := range z {
		z[i], c = bits.Add32(x[i], c, 0)
	}
	return c
}

// subVW computes z = x - y for a single word y and returns the borrow.
func subVW(z, x []uint32, y uint32) (b uint32) {
	b = y
	for i := range z {
		z[i], b = bits.Sub32(x[i], b, 0)
	}
	return b
}

// shlVU computes z = x << s for s in [0, 32) and returns the bits shifted
// out of the top word. z may alias x.
func shlVU(z, x []uint32, s uint) (c uint32) {
	if len(z) == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	rs := word.Bits - s
	c = x[len(z)-1] >> rs
	for i := len(z) - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>rs
	}
	z[0] = x[0] << s
	return c
}

// shrVU computes z = x >> s for s in [0, 32) and returns the bits shifted
// out of the bottom word, left aligned. z may alias x.
func shrVU(z, x []uint32, s uint) (c uint32) {
	if len(z) == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x)
		return 0
	}
	rs := word.Bits - s
	c = x[0] << rs
	for i := 0; i < len(z)-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<rs
	}
	z[len(z)-1] = x[len(z)-1] >> s
	return c
}

// mulAddVWW computes z = x*y + r and returns the carry word.
func mulAddVWW(z, x []uint32, y, r uint32) (c uint32) {
	c = r
	for i := range z {
		t := uint64(x[i])*uint64(y) + uint64(c)
		z[i] = uint32(t)
		c = uint32(t >> word.Bits)
	}
	return c
}

// addMulVVW computes z += x*y and returns the carry word.
func addMulVVW(z, x []uint32, y uint32) (c uint32) {
	for i := range z {
		t := uint64(x[i])*uint64(y) + uint64(z[i]) + uint64(c)
		z[i] = uint32(t)
		c = uint32(t >> word.Bits)
	}
	return c
}

// divWVW divides the vector x, extended by the high word xn, by the single
// word y. The quotient is stored in z (len(z) == len(x)) and the remainder
// returned. xn must be < y.
func divWVW(z []uint32, xn uint32, x []uint32, y uint32) (r uint32) {
	r = xn
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = word.UnpackDivWord(word.DivWord(word.Join64(r, x[i]), y))
	}
	return r
}

// modWV returns x mod y without materialising the quotient.
func modWV(x []uint32, y uint32) (r uint32) {
	for i := len(x) - 1; i >= 0; i-- {
		_, r = word.UnpackDivWord(word.DivWord(word.Join64(r, x[i]), y))
	}
	return r
}
