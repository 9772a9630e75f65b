package event

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromSink exports attempt records as Prometheus metrics.
type PromSink struct {
	attempts *prometheus.CounterVec
	delay    prometheus.Histogram
}

// NewPromSink creates a Prometheus sink registered on reg. If reg is nil,
// the default registerer is used.
func NewPromSink(reg prometheus.Registerer) *PromSink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PromSink{
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rebound_attempts_total",
				Help: "Total number of attempts, by outcome and failure kind",
			},
			[]string{"outcome", "kind"},
		),
		delay: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rebound_backoff_delay_seconds",
				Help:    "Backoff delay chosen before a retry",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
		),
	}
}

// OnAttempt records the attempt counters and, for retries, the chosen delay.
func (p *PromSink) OnAttempt(rec Record) {
	kind := ""
	if rec.Err != nil {
		kind = rec.Kind.String()
	}
	p.attempts.WithLabelValues(rec.Outcome.String(), kind).Inc()

	if rec.Outcome == OutcomeRetry {
		p.delay.Observe(rec.Delay.Seconds())
	}
}
