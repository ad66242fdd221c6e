package config

import (
	"github.com/agbru/bitexact/internal/natural"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (-karatsuba, -toom, -bz, -bz-offset)
//   2. Environment variables (BITEXACT_KARATSUBA, etc.)
//   3. Cached calibration profile (~/.bitexact_calibration.json)
//   4. Adaptive host estimation (this file)
//   5. Static defaults in natural/thresholds.go

// hostWordSize is the native word size of the running binary.
const hostWordSize = 32 << (^uint(0) >> 63)

// ApplyAdaptiveThresholds fills every zero threshold with an estimate for
// the host. Non-zero values are left untouched.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Karatsuba == 0 {
		cfg.Karatsuba = EstimateKaratsubaThreshold()
	}
	if cfg.Toom == 0 {
		cfg.Toom = EstimateToomCook3Threshold()
	}
	if cfg.BZ == 0 {
		cfg.BZ = EstimateBurnikelZieglerThreshold()
	}
	if cfg.BZOffset == 0 {
		cfg.BZOffset = natural.DefaultBurnikelZieglerOffset
	}
	return cfg
}

// EstimateKaratsubaThreshold estimates the schoolbook/Karatsuba crossover
// without running benchmarks. The inner product uses 64-bit arithmetic, which
// a 32-bit host emulates, so the quadratic method loses ground sooner there.
func EstimateKaratsubaThreshold() int {
	if hostWordSize == 64 {
		return natural.DefaultKaratsubaThreshold
	}
	return 48
}

// EstimateToomCook3Threshold estimates the Karatsuba/Toom-Cook-3 crossover.
func EstimateToomCook3Threshold() int {
	if hostWordSize == 64 {
		return natural.DefaultToomCook3Threshold
	}
	return 160
}

// EstimateBurnikelZieglerThreshold estimates the Knuth/Burnikel-Ziegler
// crossover.
func EstimateBurnikelZieglerThreshold() int {
	if hostWordSize == 64 {
		return natural.DefaultBurnikelZieglerThreshold
	}
	return 60
}

// ToThresholds converts the resolved configuration into engine thresholds.
// Squaring thresholds keep the default ratio to their multiplication
// counterparts. Zero fields fall back to the built-in defaults, so the
// result is usable even before ApplyAdaptiveThresholds.
func (c AppConfig) ToThresholds() natural.Thresholds {
	t := natural.DefaultThresholds()
	if c.Karatsuba > 0 {
		t.KaratsubaMul = c.Karatsuba
		t.KaratsubaSqr = max(2, c.Karatsuba*natural.DefaultKaratsubaSquareThreshold/natural.DefaultKaratsubaThreshold)
	}
	if c.Toom > 0 {
		t.ToomCook3Mul = c.Toom
		t.ToomCook3Sqr = c.Toom * natural.DefaultToomCook3SquareThreshold / natural.DefaultToomCook3Threshold
	}
	t.ToomCook3Sqr = max(t.ToomCook3Sqr, t.KaratsubaSqr, 3)
	if c.BZ > 0 {
		t.BurnikelZiegler = c.BZ
	}
	if c.BZOffset > 0 {
		t.BurnikelZieglerOffset = c.BZOffset
	}
	return t
}
