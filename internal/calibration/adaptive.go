// This file builds the operand-size ladders the calibration sweeps and
// post-processes the measured crossovers.

package calibration

import "github.com/agbru/bitexact/internal/natural"

// hostWordSize is the native word size of the running binary.
const hostWordSize = 32 << (^uint(0) >> 63)

// ─────────────────────────────────────────────────────────────────────────────
// Size Ladders
// ─────────────────────────────────────────────────────────────────────────────

// GenerateKaratsubaLadder returns the operand sizes, in words, at which the
// schoolbook/Karatsuba crossover is searched. 32-bit hosts emulate the
// 64-bit inner product, so the ladder starts lower there.
func GenerateKaratsubaLadder() []int {
	if hostWordSize == 64 {
		return []int{16, 24, 32, 48, 64, 80, 96, 128, 160}
	}
	return []int{12, 16, 24, 32, 48, 64, 80, 96}
}

// GenerateToomLadder returns the sizes at which the Karatsuba/Toom-Cook-3
// crossover is searched. Every size is at least karatsuba, which keeps the
// result monotonic.
func GenerateToomLadder(karatsuba int) []int {
	base := []int{96, 128, 160, 192, 240, 320, 400, 512}
	ladder := make([]int, 0, len(base))
	for _, n := range base {
		if n >= karatsuba {
			ladder = append(ladder, n)
		}
	}
	if len(ladder) == 0 {
		ladder = append(ladder, karatsuba)
	}
	return ladder
}

// GenerateBurnikelZieglerLadder returns the divisor sizes at which the
// Knuth/Burnikel-Ziegler crossover is searched.
func GenerateBurnikelZieglerLadder() []int {
	return []int{24, 32, 48, 64, 80, 96, 128, 192}
}

// ─────────────────────────────────────────────────────────────────────────────
// Crossover Selection
// ─────────────────────────────────────────────────────────────────────────────

// crossover returns the first size from which the candidate algorithm wins
// at two consecutive ladder points (or at the last point). If it never
// wins, the threshold is placed past the ladder.
func crossover(results []calibrationResult) int {
	for i, r := range results {
		if !r.candidateWins() {
			continue
		}
		if i == len(results)-1 || results[i+1].candidateWins() {
			return r.Threshold
		}
	}
	if len(results) == 0 {
		return 0
	}
	return 2 * results[len(results)-1].Threshold
}

// buildThresholds turns measured crossovers into engine thresholds. Zero
// values keep the defaults. Squaring thresholds keep their default ratio
// to multiplication, and every selection stays monotonic.
func buildThresholds(karatsuba, toom, bz int) natural.Thresholds {
	t := natural.DefaultThresholds()
	if karatsuba > 0 {
		t.KaratsubaMul = max(2, karatsuba)
		t.KaratsubaSqr = max(2, karatsuba*natural.DefaultKaratsubaSquareThreshold/natural.DefaultKaratsubaThreshold)
	}
	if toom > 0 {
		t.ToomCook3Mul = toom
		t.ToomCook3Sqr = toom * natural.DefaultToomCook3SquareThreshold / natural.DefaultToomCook3Threshold
	}
	t.ToomCook3Mul = max(t.ToomCook3Mul, t.KaratsubaMul, 3)
	t.ToomCook3Sqr = max(t.ToomCook3Sqr, t.KaratsubaSqr, 3)
	if bz > 0 {
		t.BurnikelZiegler = max(2, bz)
	}
	return t
}
