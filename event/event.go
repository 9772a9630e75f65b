// Package event defines the structured attempt records emitted by the
// execution engine, and the sink interface that consumes them.
package event

import (
	"time"

	"github.com/hedeqiang/rebound/classify"
)

// Outcome is the result of a single attempt.
type Outcome int

const (
	// OutcomeRetry means the attempt failed and another one will follow
	// after the recorded delay.
	OutcomeRetry Outcome = iota

	// OutcomeSuccess means the attempt succeeded; terminal.
	OutcomeSuccess

	// OutcomeFailure means the call gave up; terminal.
	OutcomeFailure

	// OutcomeCancelled means the caller's context ended the call; terminal.
	OutcomeCancelled
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "retry"
	}
}

// Terminal reports whether the outcome ends the call.
func (o Outcome) Terminal() bool { return o != OutcomeRetry }

// Record describes one attempt of one logical call. Records are ephemeral:
// the engine creates one per loop iteration, hands it to the sink, and
// forgets it.
type Record struct {
	// CallID correlates all records of one Execute invocation.
	CallID string

	// Attempt is the 1-based attempt index. The terminal record repeats the
	// index of the last attempt made.
	Attempt int

	// Outcome is what happened on this attempt.
	Outcome Outcome

	// Kind is the failure classification. Meaningless when Err is nil.
	Kind classify.Kind

	// Err is the failure that ended the attempt, nil on success.
	Err error

	// Delay is the backoff chosen before the next attempt; zero on terminal
	// records.
	Delay time.Duration

	// Elapsed is the time since the call started.
	Elapsed time.Duration

	// Time is when the record was produced.
	Time time.Time
}

// Sink receives attempt records for observability.
//
// A sink shared across concurrent executions must be safe for concurrent
// use; the engine does not serialize calls to it. Panics from a sink are
// swallowed by the engine and never influence the retry decision.
type Sink interface {
	OnAttempt(rec Record)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(rec Record)

// OnAttempt calls f.
func (f SinkFunc) OnAttempt(rec Record) { f(rec) }

// Nop returns a sink that discards every record.
func Nop() Sink {
	return SinkFunc(func(Record) {})
}

// Multi fans records out to every given sink, in order.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(rec Record) {
		for _, s := range sinks {
			s.OnAttempt(rec)
		}
	})
}
