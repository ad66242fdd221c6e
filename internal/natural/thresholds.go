package natural

import (
	"fmt"

	apperrors "github.com/agbru/bitexact/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Algorithm Selection Thresholds
// ─────────────────────────────────────────────────────────────────────────────
//
// All thresholds are expressed in 32-bit words of the smaller operand (for
// multiplication) or of the divisor (for division).

const (
	// DefaultKaratsubaThreshold is the operand size from which multiplication
	// switches from the schoolbook method to Karatsuba.
	DefaultKaratsubaThreshold = 80

	// DefaultToomCook3Threshold is the operand size from which multiplication
	// switches from Karatsuba to Toom-Cook-3.
	DefaultToomCook3Threshold = 240

	// DefaultKaratsubaSquareThreshold is the squaring analogue of
	// DefaultKaratsubaThreshold. Schoolbook squaring halves the cross
	// products, so it stays competitive for longer.
	DefaultKaratsubaSquareThreshold = 120

	// DefaultToomCook3SquareThreshold is the squaring analogue of
	// DefaultToomCook3Threshold.
	DefaultToomCook3SquareThreshold = 240

	// DefaultBurnikelZieglerThreshold is the divisor size from which division
	// uses Burnikel-Ziegler instead of Knuth's Algorithm D.
	DefaultBurnikelZieglerThreshold = 80

	// DefaultBurnikelZieglerOffset is the minimum difference between dividend
	// and divisor word counts for Burnikel-Ziegler to pay off.
	DefaultBurnikelZieglerOffset = 40
)

// Forced variants recurse with the same algorithm until operands drop under
// these floors, then finish with the schoolbook method.
const (
	karatsubaFloor = 8
	toomCook3Floor = 12
)

// Thresholds selects between the multiplication and division strategies.
// The zero value is not usable; start from DefaultThresholds.
type Thresholds struct {
	KaratsubaMul          int `json:"karatsuba_mul"`
	ToomCook3Mul          int `json:"toom_cook3_mul"`
	KaratsubaSqr          int `json:"karatsuba_sqr"`
	ToomCook3Sqr          int `json:"toom_cook3_sqr"`
	BurnikelZiegler       int `json:"burnikel_ziegler"`
	BurnikelZieglerOffset int `json:"burnikel_ziegler_offset"`
}

// DefaultThresholds returns the built-in thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		KaratsubaMul:          DefaultKaratsubaThreshold,
		ToomCook3Mul:          DefaultToomCook3Threshold,
		KaratsubaSqr:          DefaultKaratsubaSquareThreshold,
		ToomCook3Sqr:          DefaultToomCook3SquareThreshold,
		BurnikelZiegler:       DefaultBurnikelZieglerThreshold,
		BurnikelZieglerOffset: DefaultBurnikelZieglerOffset,
	}
}

// Validate checks that every threshold is usable and that selection is
// monotonic: a larger operand never falls back to an asymptotically worse
// algorithm.
func (t Thresholds) Validate() error {
	switch {
	case t.KaratsubaMul < 2:
		return apperrors.ValidationError{Field: "karatsuba", Message: fmt.Sprintf("must be at least 2 words, got %d", t.KaratsubaMul)}
	case t.KaratsubaSqr < 2:
		return apperrors.ValidationError{Field: "karatsuba-sqr", Message: fmt.Sprintf("must be at least 2 words, got %d", t.KaratsubaSqr)}
	case t.ToomCook3Mul < t.KaratsubaMul || t.ToomCook3Mul < 3:
		return apperrors.ValidationError{Field: "toom", Message: fmt.Sprintf("must be >= karatsuba threshold %d and >= 3, got %d", t.KaratsubaMul, t.ToomCook3Mul)}
	case t.ToomCook3Sqr < t.KaratsubaSqr || t.ToomCook3Sqr < 3:
		return apperrors.ValidationError{Field: "toom-sqr", Message: fmt.Sprintf("must be >= karatsuba square threshold %d and >= 3, got %d", t.KaratsubaSqr, t.ToomCook3Sqr)}
	case t.BurnikelZiegler < 2:
		return apperrors.ValidationError{Field: "bz", Message: fmt.Sprintf("must be at least 2 words, got %d", t.BurnikelZiegler)}
	case t.BurnikelZieglerOffset < 0:
		return apperrors.ValidationError{Field: "bz-offset", Message: fmt.Sprintf("must be non-negative, got %d", t.BurnikelZieglerOffset)}
	}
	return nil
}

// Engine runs the arithmetic algorithms with a fixed set of thresholds.
// It is a small value type and safe for concurrent use.
type Engine struct {
	t Thresholds
}

// NewEngine returns an Engine using t. It fails if t does not validate.
func NewEngine(t Thresholds) (Engine, error) {
	if err := t.Validate(); err != nil {
		return Engine{}, err
	}
	return Engine{t: t}, nil
}

// Thresholds returns the thresholds the engine selects algorithms with.
func (e Engine) Thresholds() Thresholds { return e.t }

// DefaultEngine is used by the package-level arithmetic functions.
var DefaultEngine = Engine{t: DefaultThresholds()}
