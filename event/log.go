package event

import (
	"log/slog"
)

// LogSink writes attempt records to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a logging sink. If logger is nil, slog.Default is used.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// OnAttempt logs the record. Retries log at debug, terminal failures at
// warn, the rest at info.
func (l *LogSink) OnAttempt(rec Record) {
	attrs := []any{
		"call", rec.CallID,
		"attempt", rec.Attempt,
		"outcome", rec.Outcome.String(),
		"elapsed", rec.Elapsed,
	}
	if rec.Err != nil {
		attrs = append(attrs, "kind", rec.Kind.String(), "error", rec.Err)
	}
	if rec.Delay > 0 {
		attrs = append(attrs, "delay", rec.Delay)
	}

	switch rec.Outcome {
	case OutcomeRetry:
		l.logger.Debug("attempt failed, retrying", attrs...)
	case OutcomeFailure:
		l.logger.Warn("call failed", attrs...)
	default:
		l.logger.Info("call finished", attrs...)
	}
}
