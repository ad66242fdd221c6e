// This file converts Natural values to and from strings, byte slices and
// math/big integers.

package natural

import (
	"fmt"
	"math/big"
	"strings"

	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/word"
)

// MaxBase is the largest radix accepted by Parse and Text.
const MaxBase = 36

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// radixChunk describes the largest power of a radix that fits in a word.
type radixChunk struct {
	bb uint32 // radix^n
	n  int    // digits per chunk
}

// radixChunks is indexed by radix and filled once at startup.
var radixChunks = func() (t [MaxBase + 1]radixChunk) {
	for b := 2; b <= MaxBase; b++ {
		bb, n := uint64(b), 1
		for bb*uint64(b) <= uint64(word.Max) {
			bb *= uint64(b)
			n++
		}
		t[b] = radixChunk{bb: uint32(bb), n: n}
	}
	return t
}()

func digitValue(c byte) uint32 {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0')
	case 'a' <= c && c <= 'z':
		return uint32(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return uint32(c-'A') + 10
	}
	return MaxBase + 1
}

// Parse interprets s as a number in the given radix (2 to 36). Digits above
// 9 may be upper or lower case. No sign, prefix or separator is accepted.
func Parse(s string, radix int) (Natural, error) {
	if radix < 2 || radix > MaxBase {
		return Zero, apperrors.ValidationError{Field: "radix", Message: fmt.Sprintf("must be in [2, %d], got %d", MaxBase, radix)}
	}
	if s == "" {
		return Zero, apperrors.ValidationError{Field: "digits", Message: "empty string"}
	}

	chunk := radixChunks[radix]
	b := NewBuilder(len(s)/chunk.n + 1)
	var acc, scale uint32 = 0, 1
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d >= uint32(radix) {
			return Zero, apperrors.ValidationError{Field: "digits", Message: fmt.Sprintf("invalid base-%d digit %q at offset %d", radix, s[i], i)}
		}
		acc = acc*uint32(radix) + d
		scale *= uint32(radix)
		if scale == chunk.bb {
			b.MulAddWord(scale, acc)
			acc, scale = 0, 1
		}
	}
	if scale > 1 {
		b.MulAddWord(scale, acc)
	}
	return b.Natural(), nil
}

// MustParse is like Parse but panics on malformed input. It is intended for
// constants and tests.
func MustParse(s string, radix int) Natural {
	x, err := Parse(s, radix)
	if err != nil {
		panic(err)
	}
	return x
}

// Text returns the representation of x in the given radix (2 to 36) using
// lowercase letters for digits above 9.
func (x Natural) Text(radix int) string {
	if radix < 2 || radix > MaxBase {
		panic(apperrors.PreconditionError{Op: "natural.Text", Message: fmt.Sprintf("radix %d out of range", radix)})
	}
	if len(x.w) == 0 {
		return "0"
	}

	chunk := radixChunks[radix]
	q := x.w.clone()
	// Chunks are produced least significant first.
	buf := make([]byte, 0, len(q)*word.Bits)
	for len(q) > 0 {
		r := divWVW(q, 0, q, chunk.bb)
		q = q.norm()
		for i := 0; i < chunk.n; i++ {
			if len(q) == 0 && r == 0 {
				break
			}
			buf = append(buf, digits[r%uint32(radix)])
			r /= uint32(radix)
		}
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// Format implements fmt.Formatter. It accepts the verbs %d, %s and %v
// (decimal), %b (binary), %o (octal), %x and %X (hexadecimal). The '#'
// flag adds the 0b, 0, 0x or 0X prefix, and widths pad on the left.
func (x Natural) Format(s fmt.State, ch rune) {
	var text, prefix string
	switch ch {
	case 'd', 's', 'v':
		text = x.Text(10)
	case 'b':
		text, prefix = x.Text(2), "0b"
	case 'o':
		text, prefix = x.Text(8), "0"
	case 'x':
		text, prefix = x.Text(16), "0x"
	case 'X':
		text, prefix = strings.ToUpper(x.Text(16)), "0X"
	default:
		fmt.Fprintf(s, "%%!%c(natural.Natural=%s)", ch, x.Text(10))
		return
	}
	if s.Flag('#') {
		text = prefix + text
	}
	if w, ok := s.Width(); ok && len(text) < w {
		pad := " "
		if s.Flag('0') {
			pad = "0"
		}
		if s.Flag('-') {
			text += strings.Repeat(" ", w-len(text))
		} else {
			text = strings.Repeat(pad, w-len(text)) + text
		}
	}
	_, _ = s.Write([]byte(text))
}

// FromBytes interprets b as a big-endian unsigned integer.
func FromBytes(b []byte) Natural {
	z := make(nat, (len(b)+3)/4)
	for i := range b {
		j := len(b) - 1 - i
		z[j/4] |= uint32(b[i]) << (8 * (j % 4))
	}
	return wrap(z)
}

// FromBytesLE interprets b as a little-endian unsigned integer.
func FromBytesLE(b []byte) Natural {
	z := make(nat, (len(b)+3)/4)
	for i, c := range b {
		z[i/4] |= uint32(c) << (8 * (i % 4))
	}
	return wrap(z)
}

// Bytes returns the minimal big-endian encoding of x; zero encodes as an
// empty slice. FromBytes(x.Bytes()) equals x.
func (x Natural) Bytes() []byte {
	le := x.BytesLE()
	for i, j := 0, len(le)-1; i < j; i, j = i+1, j-1 {
		le[i], le[j] = le[j], le[i]
	}
	return le
}

// BytesLE returns the minimal little-endian encoding of x.
func (x Natural) BytesLE() []byte {
	b := make([]byte, 0, 4*len(x.w))
	for _, w := range x.w {
		b = append(b, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return b
}

// Big returns x as a new big.Int.
func (x Natural) Big() *big.Int {
	return new(big.Int).SetBytes(x.Bytes())
}

// FromBig returns the value of b. It panics if b is negative.
func FromBig(b *big.Int) Natural {
	if b.Sign() < 0 {
		panic(errNegativeValue)
	}
	return FromBytes(b.Bytes())
}
