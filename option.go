package rebound

import (
	"context"
	"time"

	"github.com/hedeqiang/rebound/classify"
	"github.com/hedeqiang/rebound/event"
)

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier sets the failure classifier.
func WithClassifier(c classify.Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// WithSink sets the attempt event sink.
func WithSink(s event.Sink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithSinks fans attempt events out to several sinks.
func WithSinks(sinks ...event.Sink) Option {
	return WithSink(event.Multi(sinks...))
}

// WithClock sets the time source. Tests inject a fake clock here.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithSleep sets the cancellable wait used between attempts. Tests inject a
// recording sleeper here so backoff is observable without real sleeping.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Engine) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

// WithRand sets the uniform [0, 1) source used for jitter.
func WithRand(random func() float64) Option {
	return func(e *Engine) {
		e.random = random
	}
}

// WithCallIDs sets the generator for per-call correlation IDs.
func WithCallIDs(newID func() string) Option {
	return func(e *Engine) {
		if newID != nil {
			e.newCallID = newID
		}
	}
}
