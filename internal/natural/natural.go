package natural

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	apperrors "github.com/agbru/bitexact/internal/errors"
	"github.com/agbru/bitexact/internal/word"
)

// Panic values for violated preconditions. They are comparable, so callers
// that recover can test them with == or errors.Is.
var (
	// ErrDivisionByZero is raised by every division with a zero divisor.
	ErrDivisionByZero = apperrors.PreconditionError{Op: "natural.DivRem", Message: "division by zero"}

	errNegativeDifference = apperrors.PreconditionError{Op: "natural.Sub", Message: "subtrahend exceeds minuend"}
	errNegativeShift      = apperrors.PreconditionError{Op: "natural.Shift", Message: "negative shift count"}
	errNegativeValue      = apperrors.PreconditionError{Op: "natural.From", Message: "negative value"}
	errNegativeIndex      = apperrors.PreconditionError{Op: "natural.SetWord", Message: "negative word index"}
)

// Natural is an immutable arbitrary-precision non-negative integer. Its
// value is the sum of Word(i)*2^(32*i).
//
// The stored words are always canonical: no zero high words, and zero is
// the empty vector. Equal and Hash rely on this. Natural values never
// change after construction and may be shared freely between goroutines.
// The zero value is the number 0.
type Natural struct {
	w nat
}

// smallLimit bounds the table of preallocated small values.
const smallLimit = 256

var small = func() (t [smallLimit + 1]Natural) {
	for i := range t {
		t[i] = Natural{w: natFromUint64(uint64(i))}
	}
	return t
}()

// Frequently used constants.
var (
	Zero = Natural{}
	One  = small[1]
	Two  = small[2]
	Ten  = small[10]
)

func wrap(z nat) Natural {
	z = z.norm()
	if len(z) == 1 && z[0] <= smallLimit {
		return small[z[0]]
	}
	return Natural{w: z}
}

// FromUint32 returns x as a Natural.
func FromUint32(x uint32) Natural {
	if x <= smallLimit {
		return small[x]
	}
	return Natural{w: nat{x}}
}

// FromUint64 returns x as a Natural.
func FromUint64(x uint64) Natural {
	return wrap(natFromUint64(x))
}

// FromInt64 returns x as a Natural. It panics if x is negative.
func FromInt64(x int64) Natural {
	if x < 0 {
		panic(errNegativeValue)
	}
	return FromUint64(uint64(x))
}

// FromWords returns the Natural whose little-endian words are w. The words
// are copied and high zero words are dropped.
func FromWords(w ...uint32) Natural {
	return wrap(nat(w).clone())
}

// Word returns the i-th little-endian word, or 0 when i lies outside the
// stored range.
func (x Natural) Word(i int) uint32 {
	if i < 0 || i >= len(x.w) {
		return 0
	}
	return x.w[i]
}

// Words returns a copy of the canonical little-endian words of x.
func (x Natural) Words() []uint32 {
	if len(x.w) == 0 {
		return []uint32{}
	}
	return []uint32(x.w.clone())
}

// Len returns the number of words of x; 0 for zero.
func (x Natural) Len() int { return len(x.w) }

// BitLen returns the length of x in bits; 0 for zero.
func (x Natural) BitLen() int { return x.w.bitLen() }

// IsZero reports whether x == 0.
func (x Natural) IsZero() bool { return len(x.w) == 0 }

// IsOdd reports whether x is odd.
func (x Natural) IsOdd() bool { return x.w.isOdd() }

// HiInt returns the index of the highest non-zero word, or -1 for zero.
func (x Natural) HiInt() int { return len(x.w) - 1 }

// LoInt returns the index of the lowest non-zero word, or -1 for zero.
func (x Natural) LoInt() int {
	for i, w := range x.w {
		if w != 0 {
			return i
		}
	}
	return -1
}

// TrailingZeroBits returns the number of consecutive zero bits from the
// least significant end; 0 for zero.
func (x Natural) TrailingZeroBits() uint { return x.w.trailingZeroBits() }

// Bit returns the value of the i-th bit of x.
func (x Natural) Bit(i uint) uint {
	j := i / word.Bits
	if j >= uint(len(x.w)) {
		return 0
	}
	return uint(x.w[j]>>(i%word.Bits)) & 1
}

// SetWord returns a copy of x with its i-th word replaced by w. x itself is
// not modified.
func (x Natural) SetWord(i int, w uint32) Natural {
	if i < 0 {
		panic(errNegativeIndex)
	}
	if i >= len(x.w) && w == 0 {
		return x
	}
	n := max(len(x.w), i+1)
	z := make(nat, n)
	copy(z, x.w)
	z[i] = w
	return wrap(z)
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Natural) Cmp(y Natural) int { return x.w.cmp(y.w) }

// Equal reports whether x and y represent the same number.
func (x Natural) Equal(y Natural) bool { return x.w.cmp(y.w) == 0 }

// Hash returns a hash of the canonical little-endian encoding of x. Equal
// values have equal hashes.
func (x Natural) Hash() uint64 {
	d := xxhash.New()
	var buf [4]byte
	for _, w := range x.w {
		binary.LittleEndian.PutUint32(buf[:], w)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Lsh returns x << n. It panics if n is negative.
func (x Natural) Lsh(n int) Natural {
	if n < 0 {
		panic(errNegativeShift)
	}
	return wrap(lsh(x.w, uint(n)))
}

// Rsh returns x >> n. Shifting past the bit length yields zero. It panics if
// n is negative.
func (x Natural) Rsh(n int) Natural {
	if n < 0 {
		panic(errNegativeShift)
	}
	return wrap(rsh(x.w, uint(n)))
}

// Uint32 returns the low 32 bits of x.
func (x Natural) Uint32() uint32 { return x.Word(0) }

// Uint64 returns the low 64 bits of x.
func (x Natural) Uint64() uint64 { return uint64(x.Word(1))<<32 | uint64(x.Word(0)) }

// Int64 returns the low 64 bits of x reinterpreted as a signed integer.
func (x Natural) Int64() int64 { return int64(x.Uint64()) }

// Int returns the low bits of x that fit an int, reinterpreted as signed.
func (x Natural) Int() int { return int(x.Uint64()) }

// IsUint64 reports whether x fits in a uint64.
func (x Natural) IsUint64() bool { return len(x.w) <= 2 }

// Add returns x + y.
func Add(x, y Natural) Natural { return wrap(add(x.w, y.w)) }

// Sub returns x - y. It panics if y > x.
func Sub(x, y Natural) Natural { return wrap(sub(x.w, y.w)) }

// AddUint32 returns x + y.
func AddUint32(x Natural, y uint32) Natural {
	if y == 0 {
		return x
	}
	return wrap(add(x.w, nat{y}))
}

// Mul returns x * y using DefaultEngine.
func Mul(x, y Natural) Natural { return DefaultEngine.Mul(x, y) }

// Sqr returns x * x using DefaultEngine.
func Sqr(x Natural) Natural { return DefaultEngine.Sqr(x) }

// MulUint32 returns x * y in a single linear pass.
func MulUint32(x Natural, y uint32) Natural { return wrap(mulWord(x.w, y)) }

// MulUint64 returns x * y in at most two linear passes.
func MulUint64(x Natural, y uint64) Natural {
	hi, lo := uint32(y>>32), uint32(y)
	if hi == 0 {
		return MulUint32(x, lo)
	}
	z := make(nat, len(x.w)+3)
	z[len(x.w)] = mulAddVWW(z[:len(x.w)], x.w, lo, 0)
	z[len(x.w)+1] = addMulVVW(z[1:len(x.w)+1], x.w, hi)
	return wrap(z)
}

// MulSchoolbook returns x * y computed with the quadratic schoolbook method
// regardless of operand size.
func MulSchoolbook(x, y Natural) Natural { return wrap(mulSchoolbook(x.w, y.w)) }

// MulKaratsuba returns x * y computed with Karatsuba at every recursion level
// that is large enough to split.
func MulKaratsuba(x, y Natural) Natural { return wrap(forcedKaratsuba(x.w, y.w)) }

// MulToomCook3 returns x * y computed with Toom-Cook-3 at every recursion
// level that is large enough to split.
func MulToomCook3(x, y Natural) Natural { return wrap(forcedToomCook3(x.w, y.w)) }

// SqrSchoolbook returns x * x with the schoolbook squaring method.
func SqrSchoolbook(x Natural) Natural { return wrap(sqrSchoolbook(x.w)) }

// SqrKaratsuba returns x * x with Karatsuba squaring at every level.
func SqrKaratsuba(x Natural) Natural { return wrap(forcedSqrKaratsuba(x.w)) }

// SqrToomCook3 returns x * x with Toom-Cook-3 squaring at every level.
func SqrToomCook3(x Natural) Natural { return wrap(forcedSqrToomCook3(x.w)) }

// Mul returns x * y. Operands that share their storage are squared.
func (e Engine) Mul(x, y Natural) Natural {
	if len(x.w) == len(y.w) && len(x.w) > 0 && &x.w[0] == &y.w[0] {
		return e.Sqr(x)
	}
	return wrap(e.mul(x.w, y.w))
}

// Sqr returns x * x.
func (e Engine) Sqr(x Natural) Natural { return wrap(e.sqr(x.w)) }

// String returns the decimal representation of x.
func (x Natural) String() string { return x.Text(10) }

// Hex returns the lowercase hexadecimal representation of x without prefix.
// It is meant for debugging output.
func (x Natural) Hex() string { return x.Text(16) }

// GoString implements fmt.GoStringer.
func (x Natural) GoString() string {
	return fmt.Sprintf("natural.MustParse(%q, 16)", x.Hex())
}
