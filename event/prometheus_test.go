package event

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hedeqiang/rebound/classify"
)

func TestPromSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := NewPromSink(reg)

	sink.OnAttempt(Record{
		Attempt: 1,
		Outcome: OutcomeRetry,
		Kind:    classify.Throttling,
		Err:     errors.New("rate exceeded"),
		Delay:   100 * time.Millisecond,
	})
	sink.OnAttempt(Record{
		Attempt: 2,
		Outcome: OutcomeRetry,
		Kind:    classify.Throttling,
		Err:     errors.New("rate exceeded"),
		Delay:   200 * time.Millisecond,
	})
	sink.OnAttempt(Record{Attempt: 3, Outcome: OutcomeSuccess})

	if got := testutil.ToFloat64(sink.attempts.WithLabelValues("retry", "throttling")); got != 2 {
		t.Errorf("retry counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(sink.attempts.WithLabelValues("success", "")); got != 1 {
		t.Errorf("success counter = %v, want 1", got)
	}

	// Only retries observe a delay.
	if got := testutil.CollectAndCount(sink.delay); got != 1 {
		t.Errorf("delay histogram metric count = %d, want 1", got)
	}
}
