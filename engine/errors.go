package engine

import "fmt"

// InvariantViolation is fatal: it means the engine's own bookkeeping
// disagrees with itself or was set up inconsistently (a phase-transition
// budget blown, a current phase missing from the ruleset, mismatched
// player ID and name lists, an unknown deck preset, no shared zone for
// the deck). The engine runs no card-count check, and CreatePlayerView
// never raises it: an unknown viewer ID gets the observer view. Per spec §7 it is
// never expected in correct operation and is never recovered from — the
// caller should treat it as a bug report, not a condition to branch on.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Message)
}

func invariantf(format string, args ...any) *InvariantViolation {
	return &InvariantViolation{Message: fmt.Sprintf(format, args...)}
}
