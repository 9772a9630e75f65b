package rebound

import (
	"fmt"
	"time"

	"github.com/hedeqiang/rebound/backoff"
	"github.com/hedeqiang/rebound/classify"
)

// Policy is the immutable configuration for one logical call.
//
// The zero value is not usable; start from DefaultPolicy and override
// fields, or build one explicitly and check it with Validate.
type Policy struct {
	// MaxAttempts is the maximum number of invocations, including the
	// initial try. Must be at least 1.
	MaxAttempts int

	// MaxElapsed bounds the whole retry loop, not an individual attempt.
	// 0 means unbounded.
	MaxElapsed time.Duration

	// BaseDelay is the delay before the first retry. 0 means immediate retry.
	BaseDelay time.Duration

	// MaxDelay caps every backoff delay, including server hints.
	MaxDelay time.Duration

	// Multiplier is the factor by which the delay grows. Must be > 1.
	Multiplier float64

	// Jitter selects the backoff randomization mode.
	Jitter backoff.Jitter

	// RetryOn lists the failure kinds worth retrying. A kind not listed is
	// terminal on first sight, even with budget remaining.
	RetryOn []classify.Kind
}

// DefaultPolicy returns the documented defaults: 3 attempts, unbounded
// elapsed time, 100ms base delay doubling up to 20s with full jitter,
// retrying only transient and throttling failures.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    20 * time.Second,
		Multiplier:  2,
		Jitter:      backoff.Full,
		RetryOn:     []classify.Kind{classify.Transient, classify.Throttling},
	}
}

// AggressivePolicy retries harder: more attempts, a shorter base delay, and
// resource conflicts treated as retryable. Suited to idempotent calls on
// the critical path.
func AggressivePolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		BaseDelay:   50 * time.Millisecond,
		MaxDelay:    60 * time.Second,
		Multiplier:  2,
		Jitter:      backoff.Full,
		RetryOn: []classify.Kind{
			classify.Transient,
			classify.Throttling,
			classify.ResourceConflict,
		},
	}
}

// ConservativePolicy retries once, after a full second, and only on
// transient failures.
func ConservativePolicy() Policy {
	return Policy{
		MaxAttempts: 2,
		BaseDelay:   1 * time.Second,
		MaxDelay:    10 * time.Second,
		Multiplier:  2,
		Jitter:      backoff.Full,
		RetryOn:     []classify.Kind{classify.Transient},
	}
}

// Validate reports whether the policy is internally consistent.
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be >= 1, got %d", ErrInvalidPolicy, p.MaxAttempts)
	}
	if p.MaxElapsed < 0 {
		return fmt.Errorf("%w: max elapsed must be >= 0, got %v", ErrInvalidPolicy, p.MaxElapsed)
	}
	if p.BaseDelay < 0 {
		return fmt.Errorf("%w: base delay must be >= 0, got %v", ErrInvalidPolicy, p.BaseDelay)
	}
	if p.MaxDelay < p.BaseDelay {
		return fmt.Errorf("%w: max delay %v is below base delay %v", ErrInvalidPolicy, p.MaxDelay, p.BaseDelay)
	}
	if p.Multiplier <= 1 {
		return fmt.Errorf("%w: multiplier must be > 1, got %v", ErrInvalidPolicy, p.Multiplier)
	}
	return nil
}

// Retryable reports whether the policy retries the given failure kind.
func (p Policy) Retryable(kind classify.Kind) bool {
	for _, k := range p.RetryOn {
		if k == kind {
			return true
		}
	}
	return false
}

// backoff builds the delay calculator for one call.
func (p Policy) backoff(random func() float64) backoff.Exponential {
	return backoff.Exponential{
		Base:       p.BaseDelay,
		Max:        p.MaxDelay,
		Multiplier: p.Multiplier,
		Jitter:     p.Jitter,
		Rand:       random,
	}
}
