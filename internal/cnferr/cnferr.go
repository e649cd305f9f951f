// Package cnferr defines the two error kinds the engine reports: a
// recoverable complexity overflow and a programmer-error invariant
// violation.
package cnferr

import "fmt"

// ComplicatedExpression is raised when a size bound is exceeded while
// grouping impossibilities for formula negation. It is recoverable: the
// caller is expected to catch it and omit assertions for the offending
// conditional.
type ComplicatedExpression struct {
	// Stage names the pass that tripped the bound.
	Stage string
	// ClauseCount is the number of clauses generated at the point of
	// failure.
	ClauseCount int
}

func (e *ComplicatedExpression) Error() string {
	return fmt.Sprintf("condlogic: %s produced %d clauses, too complex to reason about", e.Stage, e.ClauseCount)
}

// InvalidState signals a broken precondition on the caller's part, e.g.
// invoking the grouper on a clause without computed impossibilities. It is a
// programming-error failure, not a recoverable one.
type InvalidState struct {
	Op     string
	Reason string
}

func (e *InvalidState) Error() string {
	return fmt.Sprintf("condlogic: invalid state in %s: %s", e.Op, e.Reason)
}
