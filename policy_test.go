package rebound

import (
	"errors"
	"testing"
	"time"

	"github.com/hedeqiang/rebound/backoff"
	"github.com/hedeqiang/rebound/classify"
)

func TestPolicyRoundTrip(t *testing.T) {
	p := Policy{
		MaxAttempts: 7,
		MaxElapsed:  90 * time.Second,
		BaseDelay:   250 * time.Millisecond,
		MaxDelay:    45 * time.Second,
		Multiplier:  1.5,
		Jitter:      backoff.Decorrelated,
		RetryOn:     []classify.Kind{classify.Transient, classify.ResourceConflict},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	if p.MaxAttempts != 7 || p.MaxElapsed != 90*time.Second ||
		p.BaseDelay != 250*time.Millisecond || p.MaxDelay != 45*time.Second ||
		p.Multiplier != 1.5 || p.Jitter != backoff.Decorrelated {
		t.Errorf("fields changed after construction: %+v", p)
	}
	if len(p.RetryOn) != 2 || p.RetryOn[0] != classify.Transient || p.RetryOn[1] != classify.ResourceConflict {
		t.Errorf("RetryOn changed after construction: %v", p.RetryOn)
	}
}

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Policy)
		ok     bool
	}{
		{"default", func(*Policy) {}, true},
		{"zero attempts", func(p *Policy) { p.MaxAttempts = 0 }, false},
		{"negative attempts", func(p *Policy) { p.MaxAttempts = -1 }, false},
		{"multiplier one", func(p *Policy) { p.Multiplier = 1 }, false},
		{"multiplier below one", func(p *Policy) { p.Multiplier = 0.5 }, false},
		{"negative elapsed", func(p *Policy) { p.MaxElapsed = -time.Second }, false},
		{"negative base delay", func(p *Policy) { p.BaseDelay = -time.Millisecond }, false},
		{"max below base", func(p *Policy) { p.MaxDelay = p.BaseDelay / 2 }, false},
		{"zero base delay", func(p *Policy) { p.BaseDelay = 0 }, true},
		{"empty retry set", func(p *Policy) { p.RetryOn = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			tt.mutate(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("Validate() = nil, want error")
				}
				if !errors.Is(err, ErrInvalidPolicy) {
					t.Errorf("errors.Is(err, ErrInvalidPolicy) = false, err = %v", err)
				}
			}
		})
	}
}

func TestPolicyPresets(t *testing.T) {
	for name, p := range map[string]Policy{
		"default":      DefaultPolicy(),
		"aggressive":   AggressivePolicy(),
		"conservative": ConservativePolicy(),
	} {
		if err := p.Validate(); err != nil {
			t.Errorf("%s preset invalid: %v", name, err)
		}
	}

	d := DefaultPolicy()
	if d.MaxAttempts != 3 || d.BaseDelay != 100*time.Millisecond ||
		d.MaxDelay != 20*time.Second || d.Multiplier != 2 || d.Jitter != backoff.Full {
		t.Errorf("DefaultPolicy() = %+v, want documented defaults", d)
	}
	for _, k := range []classify.Kind{classify.Fatal, classify.NotFound, classify.InvalidInput, classify.PermissionDenied} {
		if d.Retryable(k) {
			t.Errorf("default policy retries %v, must not", k)
		}
	}
	for _, k := range []classify.Kind{classify.Transient, classify.Throttling} {
		if !d.Retryable(k) {
			t.Errorf("default policy does not retry %v, must", k)
		}
	}
}
