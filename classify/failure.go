package classify

import (
	"errors"
	"time"
)

// Coder is implemented by errors that carry a service-provided error code.
type Coder interface {
	ErrorCode() string
}

// Hinter is implemented by errors that carry a server-suggested retry delay.
type Hinter interface {
	RetryAfterHint() time.Duration
}

// Failure wraps the error returned by a remote operation with the metadata
// the classifier and backoff need: an optional service error code and an
// optional retry-after hint.
type Failure struct {
	// Code is the service-provided error code, if any.
	Code string

	// RetryAfter is the delay the remote service suggested, if any.
	RetryAfter time.Duration

	// Err is the underlying cause. Never masked; always reachable via Unwrap.
	Err error
}

// NewFailure wraps err with a service error code.
func NewFailure(code string, err error) *Failure {
	return &Failure{Code: code, Err: err}
}

// WithRetryAfter returns a copy of the failure carrying a retry-after hint.
func (f *Failure) WithRetryAfter(d time.Duration) *Failure {
	clone := *f
	clone.RetryAfter = d
	return &clone
}

// Error implements the error interface.
func (f *Failure) Error() string {
	switch {
	case f.Code != "" && f.Err != nil:
		return f.Code + ": " + f.Err.Error()
	case f.Code != "":
		return f.Code
	case f.Err != nil:
		return f.Err.Error()
	default:
		return "unknown failure"
	}
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error { return f.Err }

// ErrorCode implements Coder.
func (f *Failure) ErrorCode() string { return f.Code }

// RetryAfterHint implements Hinter.
func (f *Failure) RetryAfterHint() time.Duration { return f.RetryAfter }

// Code extracts the service error code from anywhere in the error chain.
// Returns the empty string if no error in the chain carries one.
func Code(err error) string {
	for err != nil {
		if c, ok := err.(Coder); ok {
			if code := c.ErrorCode(); code != "" {
				return code
			}
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// RetryAfter extracts a server-suggested retry delay from anywhere in the
// error chain. Returns 0 if no error in the chain carries one.
func RetryAfter(err error) time.Duration {
	for err != nil {
		if h, ok := err.(Hinter); ok {
			if d := h.RetryAfterHint(); d > 0 {
				return d
			}
		}
		err = errors.Unwrap(err)
	}
	return 0
}
