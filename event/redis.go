package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSink publishes attempt records as JSON to a Redis pub/sub channel,
// for dashboards watching retry behavior across processes.
//
// Publish failures are dropped: observability must never influence the
// retry decision.
type RedisSink struct {
	rdb     *redis.Client
	channel string
	timeout time.Duration
}

// NewRedisSink creates a sink publishing to the given channel.
func NewRedisSink(rdb *redis.Client, channel string) *RedisSink {
	return &RedisSink{
		rdb:     rdb,
		channel: channel,
		timeout: 2 * time.Second,
	}
}

// wireRecord is the published shape; errors flatten to strings.
type wireRecord struct {
	CallID  string `json:"call_id"`
	Attempt int    `json:"attempt"`
	Outcome string `json:"outcome"`
	Kind    string `json:"kind,omitempty"`
	Error   string `json:"error,omitempty"`
	DelayMS int64  `json:"delay_ms,omitempty"`
	Elapsed int64  `json:"elapsed_ms"`
	Time    int64  `json:"time_unix_ms"`
}

// OnAttempt publishes the record.
func (r *RedisSink) OnAttempt(rec Record) {
	w := wireRecord{
		CallID:  rec.CallID,
		Attempt: rec.Attempt,
		Outcome: rec.Outcome.String(),
		DelayMS: rec.Delay.Milliseconds(),
		Elapsed: rec.Elapsed.Milliseconds(),
		Time:    rec.Time.UnixMilli(),
	}
	if rec.Err != nil {
		w.Kind = rec.Kind.String()
		w.Error = rec.Err.Error()
	}

	payload, err := json.Marshal(w)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	r.rdb.Publish(ctx, r.channel, payload)
}
