package natural

// Builder is a mutable Natural used as scratch space by multi-step
// computations.
//
// A Builder is confined to one goroutine. Its word range is not kept
// minimal: EndWord may include zero high words left over by earlier
// operations. Calling Natural moves the buffer into an immutable Natural
// and leaves the Builder empty, so the buffer always has exactly one owner.
type Builder struct {
	w nat
}

// NewBuilder returns an empty Builder with room for capWords words.
func NewBuilder(capWords int) *Builder {
	return &Builder{w: make(nat, 0, max(capWords, 0))}
}

// BuilderFrom returns a Builder holding a private copy of x.
func BuilderFrom(x Natural) *Builder {
	w := make(nat, len(x.w), len(x.w)+1)
	copy(w, x.w)
	return &Builder{w: w}
}

// Len returns the number of words in the builder's current range,
// including zero high words.
func (b *Builder) Len() int { return len(b.w) }

// StartWord returns the first index of the word range; always 0.
func (b *Builder) StartWord() int { return 0 }

// EndWord returns one past the last index of the word range. Words at or
// above EndWord are zero; words below it may be zero too.
func (b *Builder) EndWord() int { return len(b.w) }

// Word returns the i-th word, or 0 outside the range.
func (b *Builder) Word(i int) uint32 {
	if i < 0 || i >= len(b.w) {
		return 0
	}
	return b.w[i]
}

// SetWord stores w at index i, growing the range as needed.
func (b *Builder) SetWord(i int, w uint32) *Builder {
	if i < 0 {
		panic(errNegativeIndex)
	}
	if i >= len(b.w) {
		if w == 0 {
			return b
		}
		b.grow(i + 1)
	}
	b.w[i] = w
	return b
}

// IsZero reports whether every word is zero.
func (b *Builder) IsZero() bool { return len(b.w.norm()) == 0 }

// Reset clears the builder, keeping its storage.
func (b *Builder) Reset() *Builder {
	b.w = b.w[:0]
	return b
}

// grow extends the range to n words, zero filling the new words.
func (b *Builder) grow(n int) {
	if n <= len(b.w) {
		return
	}
	old := len(b.w)
	if n <= cap(b.w) {
		b.w = b.w[:n]
		clear(b.w[old:])
		return
	}
	w := make(nat, n, n+n/2+1)
	copy(w, b.w)
	b.w = w
}

// AddNatural adds x in place.
func (b *Builder) AddNatural(x Natural) *Builder {
	n := max(len(b.w), len(x.w)) + 1
	b.grow(n)
	addAt(b.w, x.w, 0)
	return b
}

// SubNatural subtracts x in place. It panics if x exceeds the current value,
// in which case the builder contents are unspecified.
func (b *Builder) SubNatural(x Natural) *Builder {
	b.w = b.w.norm()
	if len(x.w) > len(b.w) || subAt(b.w, x.w, 0) != 0 {
		panic(errNegativeDifference)
	}
	return b
}

// MulWord multiplies the value by y in place.
func (b *Builder) MulWord(y uint32) *Builder {
	return b.MulAddWord(y, 0)
}

// MulAddWord sets the value to value*y + r in place.
func (b *Builder) MulAddWord(y, r uint32) *Builder {
	n := len(b.w)
	c := mulAddVWW(b.w, b.w, y, r)
	if c != 0 {
		b.grow(n + 1)
		b.w[n] = c
	}
	return b
}

// DivWord divides the value by y in place and returns the remainder.
func (b *Builder) DivWord(y uint32) uint32 {
	if y == 0 {
		panic(ErrDivisionByZero)
	}
	b.w = b.w.norm()
	return divWVW(b.w, 0, b.w, y)
}

// Lsh shifts the value left by n bits in place.
func (b *Builder) Lsh(n int) *Builder {
	if n < 0 {
		panic(errNegativeShift)
	}
	m := len(b.w)
	ws, s := n/32, uint(n%32)
	b.grow(m + ws + 1)
	b.w[m+ws] = shlVU(b.w[ws:m+ws], b.w[:m], s)
	clear(b.w[:ws])
	return b
}

// Rsh shifts the value right by n bits in place.
func (b *Builder) Rsh(n int) *Builder {
	if n < 0 {
		panic(errNegativeShift)
	}
	b.w = b.w.shrInPlace(uint(n))
	return b
}

// Natural moves the builder's buffer into an immutable Natural. The builder
// is left empty and must be reused only through its methods.
func (b *Builder) Natural() Natural {
	w := b.w
	b.w = nil
	return wrap(w)
}

// Snapshot returns the current value as a Natural without giving up the
// buffer.
func (b *Builder) Snapshot() Natural {
	return wrap(b.w.clone())
}
