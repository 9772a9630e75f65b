package rebound

import (
	"errors"
	"fmt"
	"time"

	"github.com/hedeqiang/rebound/classify"
)

var (
	// ErrExhausted is matched by terminal errors whose retry budget ran out.
	ErrExhausted = errors.New("rebound: retries exhausted")

	// ErrInvalidPolicy is returned when a policy fails validation.
	ErrInvalidPolicy = errors.New("rebound: invalid policy")
)

// Reason says why a call ended without success.
type Reason int

const (
	// ReasonNonRetryable means the failure's classification was not in the
	// policy's retryable set. Authoritative: budget remaining is irrelevant.
	ReasonNonRetryable Reason = iota

	// ReasonExhausted means the failure was retryable but the attempt or
	// elapsed-time budget ran out.
	ReasonExhausted

	// ReasonCancelled means the caller's context ended the call.
	ReasonCancelled
)

// String returns a short human-readable form of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonExhausted:
		return "retries exhausted"
	case ReasonCancelled:
		return "cancelled"
	default:
		return "non-retryable"
	}
}

// Error is the terminal failure returned by Execute. It annotates the
// original cause with the final classification, the number of attempts made,
// and the total elapsed time.
type Error struct {
	// Kind is the classification of the last failure.
	Kind classify.Kind

	// Attempts is how many times the operation was invoked.
	Attempts int

	// Elapsed is the total time spent in the call.
	Elapsed time.Duration

	// Reason distinguishes exhausted budgets from authoritative failures
	// and cancellation.
	Reason Reason

	// Err is the underlying cause; for cancelled calls it joins the
	// context error with the last failure, so both survive errors.Is.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("rebound: call failed after %d attempt(s) in %v (%s, %s): %v",
		e.Attempts, e.Elapsed.Round(time.Millisecond), e.Kind, e.Reason, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches ErrExhausted for the exhausted-budget variant.
func (e *Error) Is(target error) bool {
	return target == ErrExhausted && e.Reason == ReasonExhausted
}
