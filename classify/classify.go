// Package classify maps remote-call failures to a closed set of failure kinds.
package classify

import (
	"fmt"
	"strings"
)

// Kind is the classification of a failed remote call.
type Kind int

const (
	// Fatal is the zero value and the fallback for unrecognized failures.
	// Fatal failures are never retried silently.
	Fatal Kind = iota

	// Transient marks internal/server-side failures expected to clear on their own.
	Transient

	// Throttling marks rate-limit or quota exhaustion responses.
	Throttling

	// ResourceConflict marks conflicting concurrent state changes
	// (already exists, in use, being deleted).
	ResourceConflict

	// NotFound marks failures where the target object does not exist.
	NotFound

	// InvalidInput marks malformed requests and validation failures.
	InvalidInput

	// PermissionDenied marks authorization failures.
	PermissionDenied
)

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case Transient:
		return "transient"
	case Throttling:
		return "throttling"
	case ResourceConflict:
		return "resource_conflict"
	case NotFound:
		return "not_found"
	case InvalidInput:
		return "invalid_input"
	case PermissionDenied:
		return "permission_denied"
	default:
		return "fatal"
	}
}

// ParseKind parses the snake_case name of a kind, as produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fatal":
		return Fatal, nil
	case "transient":
		return Transient, nil
	case "throttling":
		return Throttling, nil
	case "resource_conflict":
		return ResourceConflict, nil
	case "not_found":
		return NotFound, nil
	case "invalid_input":
		return InvalidInput, nil
	case "permission_denied":
		return PermissionDenied, nil
	default:
		return Fatal, fmt.Errorf("classify: unknown kind %q", s)
	}
}

// Classifier maps an error to a Kind.
//
// Implementations must be total: every error gets a Kind, with Fatal as the
// answer for anything unrecognized.
type Classifier interface {
	Classify(err error) Kind
}

// Func adapts a plain function to the Classifier interface.
type Func func(err error) Kind

// Classify calls f.
func (f Func) Classify(err error) Kind { return f(err) }

// First composes classifiers: the first one returning a non-Fatal kind wins.
// If every classifier answers Fatal, the result is Fatal.
func First(cs ...Classifier) Classifier {
	return Func(func(err error) Kind {
		for _, c := range cs {
			if k := c.Classify(err); k != Fatal {
				return k
			}
		}
		return Fatal
	})
}
