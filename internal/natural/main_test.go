package natural

import (
	"flag"
	"log"
	"math/big"
	"math/rand"
	"os"
	"testing"
	"time"
)

var testSeed int64

func TestMain(m *testing.M) {
	flag.Int64Var(&testSeed, "natural.seed", 0, "Seed for random operands (0 == current nanotime)")
	flag.Parse()

	if testSeed == 0 {
		testSeed = time.Now().UnixNano()
	}
	log.Println("natural seed:", testSeed)

	os.Exit(m.Run())
}

// newRNG returns a generator private to one test, seeded from the package
// seed and the test name so that failures reproduce with -natural.seed.
func newRNG(t testing.TB) *rand.Rand {
	var h int64
	for _, c := range t.Name() {
		h = h*31 + int64(c)
	}
	return rand.New(rand.NewSource(testSeed ^ h))
}

// randNatural returns a value with exactly words words. High words may be
// forced to all ones to exercise carries.
func randNatural(rng *rand.Rand, words int) Natural {
	if words == 0 {
		return Zero
	}
	w := make([]uint32, words)
	for i := range w {
		switch rng.Intn(8) {
		case 0:
			w[i] = 0xFFFFFFFF
		case 1:
			w[i] = 0
		default:
			w[i] = rng.Uint32()
		}
	}
	if w[words-1] == 0 {
		w[words-1] = 1 + rng.Uint32()%0xFFFFFFFE
	}
	return FromWords(w...)
}

// toBig is a shorthand for x.Big().
func toBig(x Natural) *big.Int { return x.Big() }
