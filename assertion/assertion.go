// Package assertion defines the contract the CNF engine consumes from the
// surrounding analyzer: an opaque, render-able, negate-able predicate about a
// single program variable.
package assertion

import "strings"

// VarKey identifies the program variable a possibility or impossibility is
// keyed on. Keys beginning with '*' denote synthetic variables introduced by
// the analyzer rather than ones that trace back to source, and are treated
// as opaque by the simplifier's short-circuit path.
type VarKey string

// IsUnknown reports whether k names a synthetic variable.
func (k VarKey) IsUnknown() bool {
	return strings.HasPrefix(string(k), "*")
}

// Assertion is an atomic predicate about a variable, e.g. "x is a string" or
// "y is not null". The engine never inspects an Assertion's meaning directly;
// it only renders, negates, and compares them.
type Assertion interface {
	// Render returns the canonical textual form used for equality and
	// hashing. Two assertions with equal Render output are treated as the
	// same literal by the engine.
	Render() string

	// Negate returns the logical complement of this assertion.
	Negate() Assertion

	// IsNegationOf reports whether this assertion is the logical
	// complement of other.
	IsNegationOf(other Assertion) bool

	// IsNegation reports whether this assertion is itself a negative form.
	IsNegation() bool

	// IsFalsy reports whether this assertion is the "falsy" marker variant
	// consulted by the truth extractor when deciding whether a
	// multi-possibility clause contains only positive information.
	IsFalsy() bool
}
