package event

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hedeqiang/rebound/classify"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		name     string
		terminal bool
	}{
		{OutcomeRetry, "retry", false},
		{OutcomeSuccess, "success", true},
		{OutcomeFailure, "failure", true},
		{OutcomeCancelled, "cancelled", true},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.outcome.Terminal(); got != tt.terminal {
			t.Errorf("%s.Terminal() = %v, want %v", tt.name, got, tt.terminal)
		}
	}
}

func TestMultiFansOutInOrder(t *testing.T) {
	var order []string
	a := SinkFunc(func(Record) { order = append(order, "a") })
	b := SinkFunc(func(Record) { order = append(order, "b") })

	Multi(a, b).OnAttempt(Record{})

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("fan-out order = %v, want [a b]", order)
	}
}

func TestNop(t *testing.T) {
	Nop().OnAttempt(Record{Attempt: 1}) // must not panic
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := NewLogSink(logger)

	sink.OnAttempt(Record{
		CallID:  "call-1",
		Attempt: 2,
		Outcome: OutcomeRetry,
		Kind:    classify.Throttling,
		Err:     errors.New("rate exceeded"),
		Delay:   250 * time.Millisecond,
		Elapsed: time.Second,
		Time:    time.Now(),
	})
	sink.OnAttempt(Record{CallID: "call-1", Attempt: 3, Outcome: OutcomeSuccess})

	out := buf.String()
	for _, want := range []string{"call-1", "attempt=2", "throttling", "retrying", "call finished"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogSinkNilLoggerUsesDefault(t *testing.T) {
	NewLogSink(nil).OnAttempt(Record{Attempt: 1, Outcome: OutcomeSuccess}) // must not panic
}
