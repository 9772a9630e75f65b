// Package backoff computes delays between retry attempts.
package backoff

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// Jitter selects how randomness is applied to a computed delay.
type Jitter int

const (
	// None returns the capped exponential value unchanged.
	None Jitter = iota

	// Full returns a uniformly random value in [0, capped].
	Full

	// Decorrelated returns min(max, random(base, previous*3)); the previous
	// delay is state tracked by the engine, not the policy.
	Decorrelated
)

// String returns the lowercase name of the jitter mode.
func (j Jitter) String() string {
	switch j {
	case Full:
		return "full"
	case Decorrelated:
		return "decorrelated"
	default:
		return "none"
	}
}

// ParseJitter parses a jitter mode name, as produced by Jitter.String.
func ParseJitter(s string) (Jitter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "full":
		return Full, nil
	case "decorrelated":
		return Decorrelated, nil
	default:
		return None, fmt.Errorf("backoff: unknown jitter mode %q", s)
	}
}

// Exponential computes exponentially growing delays with a cap and jitter.
type Exponential struct {
	// Base is the delay before the first retry.
	Base time.Duration

	// Max caps every computed delay. A server-provided hint above Max is
	// ignored in favor of the computed delay.
	Max time.Duration

	// Multiplier is the factor by which the delay grows. Defaults to 2.
	Multiplier float64

	// Jitter selects the randomization mode.
	Jitter Jitter

	// Rand supplies uniform values in [0, 1). Defaults to math/rand/v2.
	// Injectable for deterministic tests.
	Rand func() float64
}

// Delay returns the backoff before retry number attempt (1-based).
//
// A positive hint at or below Max takes precedence over the computed value:
// the remote service knows better than the policy when it will recover.
// prev is the previously chosen delay, consulted only in Decorrelated mode;
// pass 0 before the first retry. Attempts below 1 are clamped to 1.
// The result is never negative and never exceeds Max.
func (b Exponential) Delay(attempt int, prev, hint time.Duration) time.Duration {
	if hint > 0 && hint <= b.Max {
		return hint
	}
	if attempt < 1 {
		attempt = 1
	}

	multiplier := b.Multiplier
	if multiplier <= 1 {
		multiplier = 2
	}

	capped := float64(b.Base) * math.Pow(multiplier, float64(attempt-1))
	if capped > float64(b.Max) {
		capped = float64(b.Max)
	}

	var d time.Duration
	switch b.Jitter {
	case Full:
		d = time.Duration(b.random() * capped)
	case Decorrelated:
		low := float64(b.Base)
		high := float64(prev) * 3
		if prev <= 0 {
			high = low * 3
		}
		if high < low {
			high = low
		}
		d = time.Duration(low + b.random()*(high-low))
		if d > b.Max {
			d = b.Max
		}
	default:
		d = time.Duration(capped)
	}

	if d < 0 {
		d = 0
	}
	return d
}

func (b Exponential) random() float64 {
	if b.Rand != nil {
		return b.Rand()
	}
	return rand.Float64()
}
