// Package rebound executes flaky remote calls under an explicit retry policy.
//
// Rebound — every remote call deserves a second bounce.
//
// Usage:
//
//	e := rebound.New(
//	    rebound.WithSink(event.NewLogSink(nil)),
//	)
//
//	err := e.Execute(ctx, rebound.DefaultPolicy(), func(ctx context.Context) error {
//	    return client.PutItem(ctx, item)
//	})
//
// The engine invokes the operation, classifies each failure, consults the
// retry budget and backoff policy, sleeps (cancellably), and repeats until
// success, exhaustion, or a terminal classification. One event per attempt
// goes to the configured sink.
package rebound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hedeqiang/rebound/classify"
	"github.com/hedeqiang/rebound/event"
)

// Operation is one unit of remote work. The engine never inspects its
// internals and assumes at-least-once semantics: a side-effecting operation
// is the caller's to make idempotent.
type Operation func(ctx context.Context) error

// Engine orchestrates retries. Safe for concurrent use: each Execute call
// runs its own sequential state machine with no shared mutable state.
type Engine struct {
	classifier classify.Classifier
	sink       event.Sink
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
	random     func() float64
	newCallID  func() string
}

// New creates an Engine with the given options. By default it classifies
// with the built-in code table plus network-error detection, emits no
// events, and sleeps on the real clock.
func New(opts ...Option) *Engine {
	e := &Engine{
		classifier: classify.First(classify.Default(), classify.Network()),
		sink:       event.Nop(),
		now:        time.Now,
		sleep:      sleepContext,
		newCallID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Do executes op under policy on a default engine with no sink.
func Do(ctx context.Context, policy Policy, op Operation) error {
	return defaultEngine.Execute(ctx, policy, op)
}

// Execute runs op until it succeeds, the policy gives up, or ctx ends.
//
// The returned error is nil on success, or a *Error carrying the final
// classification, attempt count, elapsed time, and the original cause.
// errors.Is(err, ErrExhausted) identifies a spent budget; a cancelled call
// satisfies errors.Is against the context error.
func (e *Engine) Execute(ctx context.Context, policy Policy, op Operation) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	var (
		callID = e.newCallID()
		start  = e.now()
		budget = NewBudget(policy, start)
		delays = policy.backoff(e.random)
		prev   time.Duration
	)

	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return e.cancelled(callID, attempt-1, classify.Fatal, nil, ctx, start)
		}

		err := op(ctx)
		now := e.now()
		elapsed := now.Sub(start)

		if err == nil {
			e.emit(event.Record{
				CallID:  callID,
				Attempt: attempt,
				Outcome: event.OutcomeSuccess,
				Elapsed: elapsed,
				Time:    now,
			})
			return nil
		}

		kind := e.classify(err)

		if !policy.Retryable(kind) {
			e.emit(event.Record{
				CallID:  callID,
				Attempt: attempt,
				Outcome: event.OutcomeFailure,
				Kind:    kind,
				Err:     err,
				Elapsed: elapsed,
				Time:    now,
			})
			return &Error{Kind: kind, Attempts: attempt, Elapsed: elapsed, Reason: ReasonNonRetryable, Err: err}
		}

		if !budget.CanRetry(attempt, now) {
			e.emit(event.Record{
				CallID:  callID,
				Attempt: attempt,
				Outcome: event.OutcomeFailure,
				Kind:    kind,
				Err:     err,
				Elapsed: elapsed,
				Time:    now,
			})
			return &Error{Kind: kind, Attempts: attempt, Elapsed: elapsed, Reason: ReasonExhausted, Err: err}
		}

		delay := delays.Delay(attempt, prev, classify.RetryAfter(err))
		e.emit(event.Record{
			CallID:  callID,
			Attempt: attempt,
			Outcome: event.OutcomeRetry,
			Kind:    kind,
			Err:     err,
			Delay:   delay,
			Elapsed: elapsed,
			Time:    now,
		})

		if e.sleep(ctx, delay) != nil {
			return e.cancelled(callID, attempt, kind, err, ctx, start)
		}
		prev = delay
	}
}

// Execute runs a result-returning operation on e under policy.
func Execute[T any](ctx context.Context, e *Engine, policy Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := e.Execute(ctx, policy, func(ctx context.Context) error {
		var opErr error
		result, opErr = op(ctx)
		return opErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// cancelled emits the terminal cancellation record and builds its error.
func (e *Engine) cancelled(callID string, attempts int, kind classify.Kind, lastErr error, ctx context.Context, start time.Time) error {
	now := e.now()
	elapsed := now.Sub(start)
	e.emit(event.Record{
		CallID:  callID,
		Attempt: attempts,
		Outcome: event.OutcomeCancelled,
		Kind:    kind,
		Err:     lastErr,
		Elapsed: elapsed,
		Time:    now,
	})
	return &Error{
		Kind:     kind,
		Attempts: attempts,
		Elapsed:  elapsed,
		Reason:   ReasonCancelled,
		Err:      errors.Join(ctx.Err(), lastErr),
	}
}

// classify never lets a broken classifier take the call down: a panic during
// classification degrades to Fatal.
func (e *Engine) classify(err error) (kind classify.Kind) {
	defer func() {
		if recover() != nil {
			kind = classify.Fatal
		}
	}()
	return e.classifier.Classify(err)
}

// emit delivers a record to the sink, swallowing sink panics.
func (e *Engine) emit(rec event.Record) {
	defer func() {
		_ = recover()
	}()
	e.sink.OnAttempt(rec)
}

// sleepContext waits for d, or returns early with the context error.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
