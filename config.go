package rebound

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/hedeqiang/rebound/backoff"
	"github.com/hedeqiang/rebound/classify"
)

// policyFile is the YAML shape of a policy. Durations are strings in Go
// syntax ("100ms", "2m"); absent fields keep their defaults.
type policyFile struct {
	MaxAttempts *int     `yaml:"max_attempts"`
	MaxElapsed  string   `yaml:"max_elapsed"`
	BaseDelay   string   `yaml:"base_delay"`
	MaxDelay    string   `yaml:"max_delay"`
	Multiplier  *float64 `yaml:"multiplier"`
	Jitter      string   `yaml:"jitter"`
	RetryOn     []string `yaml:"retry_on"`
}

// LoadPolicy reads a policy from a YAML file, layered over DefaultPolicy.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("rebound: read policy file: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy parses a YAML policy document, layered over DefaultPolicy.
// The result is validated before being returned.
func ParsePolicy(data []byte) (Policy, error) {
	var f policyFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return Policy{}, fmt.Errorf("rebound: parse policy: %w", err)
	}

	p := DefaultPolicy()

	if f.MaxAttempts != nil {
		p.MaxAttempts = *f.MaxAttempts
	}
	if f.Multiplier != nil {
		p.Multiplier = *f.Multiplier
	}

	var err error
	if p.MaxElapsed, err = overrideDuration(f.MaxElapsed, p.MaxElapsed); err != nil {
		return Policy{}, fmt.Errorf("rebound: max_elapsed: %w", err)
	}
	if p.BaseDelay, err = overrideDuration(f.BaseDelay, p.BaseDelay); err != nil {
		return Policy{}, fmt.Errorf("rebound: base_delay: %w", err)
	}
	if p.MaxDelay, err = overrideDuration(f.MaxDelay, p.MaxDelay); err != nil {
		return Policy{}, fmt.Errorf("rebound: max_delay: %w", err)
	}

	if f.Jitter != "" {
		if p.Jitter, err = backoff.ParseJitter(f.Jitter); err != nil {
			return Policy{}, fmt.Errorf("rebound: %w", err)
		}
	}

	if f.RetryOn != nil {
		kinds := make([]classify.Kind, 0, len(f.RetryOn))
		for _, name := range f.RetryOn {
			k, err := classify.ParseKind(name)
			if err != nil {
				return Policy{}, fmt.Errorf("rebound: retry_on: %w", err)
			}
			kinds = append(kinds, k)
		}
		p.RetryOn = kinds
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func overrideDuration(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	return time.ParseDuration(s)
}
