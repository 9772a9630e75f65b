package rebound

import "time"

// Budget bounds the retries of one Execute call: attempts made against the
// policy's maximum, and elapsed time against the policy's deadline.
//
// A Budget belongs to exactly one call; the engine is its sole consumer and
// destroys it when the call resolves.
type Budget struct {
	maxAttempts int
	maxElapsed  time.Duration
	start       time.Time
}

// NewBudget creates the budget for a call starting at start.
func NewBudget(p Policy, start time.Time) *Budget {
	return &Budget{
		maxAttempts: p.MaxAttempts,
		maxElapsed:  p.MaxElapsed,
		start:       start,
	}
}

// CanRetry reports whether another attempt fits the budget, given the number
// of attempts already used and the current time. Pure given its inputs.
func (b *Budget) CanRetry(attemptsUsed int, now time.Time) bool {
	if attemptsUsed >= b.maxAttempts {
		return false
	}
	if b.maxElapsed > 0 && now.Sub(b.start) >= b.maxElapsed {
		return false
	}
	return true
}
