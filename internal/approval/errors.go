package approval

import "errors"

// Sentinel errors surfaced by the engine. None of them mutate state; the
// caller maps them to HTTP statuses.
var (
	// ErrUnauthorized: the acting user is not eligible at the expense's
	// current level under its bound rule.
	ErrUnauthorized = errors.New("approver not eligible at current level")

	// ErrDuplicateDecision: the approver already finalized a decision at
	// this level. Decide is idempotent-rejecting, not idempotent-silent.
	ErrDuplicateDecision = errors.New("decision already recorded at this level")

	// ErrInvalidTransition: the expense is no longer pending.
	ErrInvalidTransition = errors.New("expense is not pending")

	// ErrRuleMisconfigured blocks rule activation. It is never raised for
	// an already-bound expense, which keeps its snapshot.
	ErrRuleMisconfigured = errors.New("approval rule misconfigured")
)
