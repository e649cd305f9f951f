// Package condlogic is the top-level facade over the CNF engine: simplify,
// negate, extract truths, combine, and negate-types in one import, the same
// convenience each sub-package already provides individually.
package condlogic

import (
	"github.com/flowlint/condlogic/assertion"
	"github.com/flowlint/condlogic/clause"
	"github.com/flowlint/condlogic/combine"
	"github.com/flowlint/condlogic/condtypes"
	"github.com/flowlint/condlogic/negate"
	"github.com/flowlint/condlogic/simplify"
	"github.com/flowlint/condlogic/truth"
)

// Clause, VarKey, Assertion, Disjunction, and TruthResult are re-exported so
// callers only need this one import for the common case.
type Clause = clause.Clause
type VarKey = assertion.VarKey
type Assertion = assertion.Assertion
type Disjunction = truth.Disjunction
type TruthResult = truth.Result

// Simplify reduces a CNF clause list to a logically equivalent, smaller
// form.
func Simplify(clauses []Clause, opts ...simplify.Option) []Clause {
	return simplify.Simplify(clauses, opts...)
}

// Negate returns the CNF of the logical negation of clauses.
func Negate(clauses []Clause, opts ...negate.Option) ([]Clause, error) {
	return negate.Negate(clauses, opts...)
}

// Truths extracts known per-variable facts from clauses. condReferencedVarIDs
// is mutated in place; see truth.Extract.
func Truths(clauses []Clause, creatingConditionalID int64, condReferencedVarIDs map[VarKey]struct{}, opts ...truth.Option) TruthResult {
	return truth.Extract(clauses, creatingConditionalID, condReferencedVarIDs, opts...)
}

// CombineOred merges two CNF formulae under logical disjunction.
func CombineOred(left, right []Clause, mergeConditionalID int64, opts ...combine.Option) []Clause {
	return combine.CombineOred(left, right, mergeConditionalID, opts...)
}

// NegateTypes negates a var-keyed set of known disjunctions.
func NegateTypes(types map[VarKey][][]Assertion) map[VarKey][][]Assertion {
	return condtypes.NegateTypes(types)
}
