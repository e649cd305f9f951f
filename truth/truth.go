// Package truth extracts single-valued variable facts from a simplified CNF
// formula: which variables have a known value (or known restricted set of
// values) regardless of how the rest of the formula resolves.
package truth

import (
	"github.com/flowlint/condlogic/assertion"
	"github.com/flowlint/condlogic/clause"
	"github.com/flowlint/condlogic/internal/logctx"
	"github.com/sirupsen/logrus"
)

type options struct {
	logger *logrus.Entry
}

func defaultOptions() options {
	return options{logger: logctx.Discard()}
}

// Option configures an Extract call.
type Option func(*options)

// WithLogger attaches a logger for tracing which clauses contributed facts.
func WithLogger(l *logrus.Entry) Option { return func(o *options) { o.logger = l } }

// Disjunction is one known fact about a variable: the variable satisfies at
// least one of these assertions.
type Disjunction []assertion.Assertion

// Result holds the facts extracted from a formula.
type Result struct {
	// Truths holds every fact found, keyed by variable.
	Truths map[assertion.VarKey][]Disjunction
	// ActiveTruths holds the subset of Truths attributable to the
	// conditional passed to Extract.
	ActiveTruths map[assertion.VarKey][]Disjunction
}

// Extract reads known per-variable facts out of clauses. creatingConditionalID
// selects which facts are reported back as "active" (attributable to that
// conditional). condReferencedVarIDs is mutated in place: the entry for a
// variable is deleted whenever a generated multi-possibility clause yields a
// fact for it, since such a fact is synthesized rather than a direct source
// reference.
func Extract(clauses []clause.Clause, creatingConditionalID int64, condReferencedVarIDs map[assertion.VarKey]struct{}, opts ...Option) Result {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.WithFields(logctx.Stage("truth", "entry", len(clauses)))

	result := Result{
		Truths:       map[assertion.VarKey][]Disjunction{},
		ActiveTruths: map[assertion.VarKey][]Disjunction{},
	}

	for _, c := range clauses {
		if c.Wedge() || !c.Reconcilable() {
			continue
		}
		poss := c.Possibilities()
		if len(poss) != 1 {
			continue
		}

		var v assertion.VarKey
		var list []assertion.Assertion
		for vv, l := range poss {
			v, list = vv, l
		}
		if v.IsUnknown() {
			continue
		}

		var fact Disjunction
		switch {
		case len(list) == 1:
			fact = singlePossibility(result.Truths, v, list[0], c)
		default:
			fact = multiPossibility(result.Truths, v, list)
			if fact != nil && c.Generated() {
				delete(condReferencedVarIDs, v)
			}
		}
		if fact == nil {
			continue
		}

		result.Truths[v] = append(result.Truths[v], fact)
		if c.CreatingConditionalID() == creatingConditionalID {
			result.ActiveTruths[v] = append(result.ActiveTruths[v], fact)
		}
		log.WithFields(logrus.Fields{"var": string(v)}).Debug("fact recorded")
	}

	return result
}

// singlePossibility implements the unit-clause rule: append the fact, unless
// v is redefined by this clause and already has a recorded fact, in which
// case the new fact replaces every prior one.
func singlePossibility(truths map[assertion.VarKey][]Disjunction, v assertion.VarKey, t assertion.Assertion, c clause.Clause) Disjunction {
	fact := Disjunction{t}
	if _, redefined := c.RedefinedVars()[v]; redefined {
		if _, exists := truths[v]; exists {
			truths[v] = nil
		}
	}
	return fact
}

// multiPossibility implements the multi-possibility rule: the whole list
// becomes a fact only if no pure-negative assertion appears in it.
func multiPossibility(truths map[assertion.VarKey][]Disjunction, v assertion.VarKey, list []assertion.Assertion) Disjunction {
	for _, t := range list {
		if !t.IsFalsy() && t.IsNegation() {
			return nil
		}
	}
	return append(Disjunction(nil), list...)
}
