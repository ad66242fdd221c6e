package natural

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/bitexact/internal/errors"
)

// expectPanic runs fn and fails unless it panics with want.
func expectPanic(t *testing.T, want apperrors.PreconditionError, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected panic %v, got %v", want, r)
		}
		if !errors.Is(err, want) {
			t.Fatalf("expected panic %v, got %v", want, err)
		}
	}()
	fn()
}

func TestCarryAcrossWordBoundary(t *testing.T) {
	t.Parallel()
	got := Add(MustParse("FFFFFFFF", 16), One)
	want := MustParse("100000000", 16)
	if !got.Equal(want) {
		t.Fatalf("FFFFFFFF + 1 = %x, want %x", got, want)
	}
	if got.Len() != 2 || got.Word(0) != 0 || got.Word(1) != 1 {
		t.Errorf("unexpected words %v", got.Words())
	}
}

func TestCanonicalForm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		words []uint32
		want  []uint32
	}{
		{"empty", nil, []uint32{}},
		{"all zero", []uint32{0, 0, 0}, []uint32{}},
		{"high zeros stripped", []uint32{5, 0, 0}, []uint32{5}},
		{"inner zeros kept", []uint32{0, 7, 0}, []uint32{0, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			x := FromWords(tt.words...)
			if diff := cmp.Diff(tt.want, x.Words()); diff != "" {
				t.Errorf("Words() mismatch (-want +got):\n%s", diff)
			}
			if x.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", x.Len(), len(tt.want))
			}
		})
	}
}

func TestFromWordsCopies(t *testing.T) {
	t.Parallel()
	w := []uint32{1, 2, 3}
	x := FromWords(w...)
	w[0] = 99
	if x.Word(0) != 1 {
		t.Fatal("FromWords must not retain the caller's slice")
	}
}

func TestAccessors(t *testing.T) {
	t.Parallel()
	x := FromWords(0, 0, 0x80, 0x1)
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"Len", x.Len(), 4},
		{"BitLen", x.BitLen(), 3*32 + 1},
		{"HiInt", x.HiInt(), 3},
		{"LoInt", x.LoInt(), 2},
		{"TrailingZeroBits", int(x.TrailingZeroBits()), 2*32 + 7},
		{"Bit(71)", int(x.Bit(71)), 1},
		{"Bit(70)", int(x.Bit(70)), 0},
		{"Bit(1000)", int(x.Bit(1000)), 0},
		{"Word(-1)", int(x.Word(-1)), 0},
		{"Word(10)", int(x.Word(10)), 0},
		{"zero HiInt", Zero.HiInt(), -1},
		{"zero LoInt", Zero.LoInt(), -1},
		{"zero BitLen", Zero.BitLen(), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestSetWordCopyOnWrite(t *testing.T) {
	t.Parallel()
	x := FromWords(1, 2)
	y := x.SetWord(4, 9)
	if diff := cmp.Diff([]uint32{1, 2}, x.Words()); diff != "" {
		t.Errorf("receiver modified (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]uint32{1, 2, 0, 0, 9}, y.Words()); diff != "" {
		t.Errorf("SetWord result (-want +got):\n%s", diff)
	}
	if z := y.SetWord(4, 0); !z.Equal(x) {
		t.Errorf("clearing the top word should restore canonical form, got %v", z.Words())
	}
	expectPanic(t, errNegativeIndex, func() { x.SetWord(-1, 1) })
}

func TestEqualAndHash(t *testing.T) {
	t.Parallel()
	a := MustParse("123456789abcdef0123456789", 16)
	b := FromWords(a.Words()...).SetWord(10, 0)
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Errorf("equal values must be Equal with equal hashes")
	}
	if a.Equal(AddUint32(a, 1)) {
		t.Errorf("distinct values reported equal")
	}
	if Zero.Hash() != FromWords(0, 0).Hash() {
		t.Errorf("zero hash depends on representation")
	}
}

func TestShifts(t *testing.T) {
	t.Parallel()
	rng := newRNG(t)
	for _, words := range []int{1, 2, 5, 17} {
		x := randNatural(rng, words)
		for _, s := range []int{0, 1, 31, 32, 33, 64, 100} {
			want := new(big.Int).Lsh(toBig(x), uint(s))
			if got := x.Lsh(s); got.Big().Cmp(want) != 0 {
				t.Errorf("Lsh(%d) of %d words: got %x want %x", s, words, got, want)
			}
			want = new(big.Int).Rsh(toBig(x), uint(s))
			if got := x.Rsh(s); got.Big().Cmp(want) != 0 {
				t.Errorf("Rsh(%d) of %d words: got %x want %x", s, words, got, want)
			}
		}
		if !x.Rsh(x.BitLen()).IsZero() {
			t.Errorf("shifting past the bit length must give zero")
		}
	}
	expectPanic(t, errNegativeShift, func() { One.Lsh(-1) })
	expectPanic(t, errNegativeShift, func() { One.Rsh(-1) })
}

func TestConstructorsAndTruncation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x    Natural
		u64  uint64
		i64  int64
	}{
		{"zero", FromUint64(0), 0, 0},
		{"small", FromUint32(256), 256, 256},
		{"two words", FromUint64(1<<63 | 5), 1<<63 | 5, -(1 << 63) + 5},
		{"int64", FromInt64(1 << 40), 1 << 40, 1 << 40},
		{"truncated", FromWords(1, 2, 3), 2<<32 | 1, 2<<32 | 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.x.Uint64(); got != tt.u64 {
				t.Errorf("Uint64() = %#x, want %#x", got, tt.u64)
			}
			if got := tt.x.Int64(); got != tt.i64 {
				t.Errorf("Int64() = %d, want %d", got, tt.i64)
			}
		})
	}
	expectPanic(t, errNegativeValue, func() { FromInt64(-1) })
	expectPanic(t, errNegativeValue, func() { FromBig(big.NewInt(-3)) })
}

func TestAddSub(t *testing.T) {
	t.Parallel()
	rng := newRNG(t)
	for i := 0; i < 200; i++ {
		x := randNatural(rng, 1+rng.Intn(20))
		y := randNatural(rng, rng.Intn(20))
		sum := Add(x, y)
		if want := new(big.Int).Add(toBig(x), toBig(y)); sum.Big().Cmp(want) != 0 {
			t.Fatalf("Add: got %x want %x", sum, want)
		}
		if got := Sub(sum, y); !got.Equal(x) {
			t.Fatalf("Sub(x+y, y) = %x, want %x", got, x)
		}
	}
	expectPanic(t, errNegativeDifference, func() { Sub(One, Two) })
	expectPanic(t, errNegativeDifference, func() { Sub(FromWords(0, 1), FromWords(1, 1)) })
}

func TestAdditionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	words := gen.SliceOfN(12, gen.UInt32())

	properties.Property("addition is commutative", prop.ForAll(
		func(a, b []uint32) bool {
			x, y := FromWords(a...), FromWords(b...)
			return Add(x, y).Equal(Add(y, x))
		},
		words, words,
	))

	properties.Property("addition is associative", prop.ForAll(
		func(a, b, c []uint32) bool {
			x, y, z := FromWords(a...), FromWords(b...), FromWords(c...)
			return Add(Add(x, y), z).Equal(Add(x, Add(y, z)))
		},
		words, words, words,
	))

	properties.Property("bytes round trip", prop.ForAll(
		func(a []uint32) bool {
			x := FromWords(a...)
			return FromBytes(x.Bytes()).Equal(x) && FromBytesLE(x.BytesLE()).Equal(x)
		},
		words,
	))

	properties.TestingRun(t)
}

func ExampleNatural_Format() {
	x := MustParse("255", 10)
	fmt.Printf("%d %x %#X %08b\n", x, x, x, x)
	// Output: 255 ff 0XFF 11111111
}
