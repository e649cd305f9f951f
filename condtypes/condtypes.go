// Package condtypes negates a var-keyed set of known disjunctions — the
// shape produced by truth extraction — independently of the clause-level
// engine in package negate. Where negate works over []clause.Clause,
// NegateTypes works directly over the map[VarKey][]Disjunction shape, which
// has no clause identity or provenance to preserve.
package condtypes

import "github.com/flowlint/condlogic/assertion"

// NegateTypes negates each variable's known facts independently:
//
//   - if a variable has more than one recorded fact and every one is a
//     single assertion (a conjunction of unit facts), each is negated in
//     place, keeping the same count.
//   - if a variable has exactly one recorded fact (a single disjunction,
//     possibly with several assertions), De Morgan's law applies: the
//     disjunction's negation is the conjunction of each assertion's
//     negation, so the result has one singleton fact per original
//     assertion.
//   - any other shape carries no single clear negation, so the variable is
//     dropped from the result.
func NegateTypes(types map[assertion.VarKey][][]assertion.Assertion) map[assertion.VarKey][][]assertion.Assertion {
	out := make(map[assertion.VarKey][][]assertion.Assertion, len(types))
	for v, facts := range types {
		switch {
		case len(facts) > 1 && allSingletons(facts):
			negated := make([][]assertion.Assertion, len(facts))
			for i, f := range facts {
				negated[i] = []assertion.Assertion{f[0].Negate()}
			}
			out[v] = negated
		case len(facts) == 1:
			negated := make([][]assertion.Assertion, len(facts[0]))
			for i, a := range facts[0] {
				negated[i] = []assertion.Assertion{a.Negate()}
			}
			out[v] = negated
		}
	}
	return out
}

func allSingletons(facts [][]assertion.Assertion) bool {
	for _, f := range facts {
		if len(f) != 1 {
			return false
		}
	}
	return true
}
