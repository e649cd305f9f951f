// Package negate turns a CNF formula into the CNF of its logical negation.
// Negation is implemented as: compute each clause's impossibilities,
// distribute them into a new CNF (the grouper), then simplify the result.
package negate

import (
	"github.com/flowlint/condlogic/assertion"
	"github.com/flowlint/condlogic/clause"
	"github.com/flowlint/condlogic/internal/cnferr"
	"github.com/flowlint/condlogic/internal/logctx"
	"github.com/flowlint/condlogic/internal/provenance"
	"github.com/flowlint/condlogic/simplify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type options struct {
	maxGroupClauses int
	logger          *logrus.Entry
}

func defaultOptions() options {
	return options{
		maxGroupClauses: 20000,
		logger:          logctx.Discard(),
	}
}

// Option configures a Negate call.
type Option func(*options)

// WithMaxGroupClauses overrides the grouper's growth ceiling (default
// 20000) above which Negate returns ComplicatedExpression.
func WithMaxGroupClauses(n int) Option { return func(o *options) { o.maxGroupClauses = n } }

// WithLogger attaches a logger for tracing negation.
func WithLogger(l *logrus.Entry) Option { return func(o *options) { o.logger = l } }

// Negate returns the CNF of the logical negation of clauses. Clauses that
// aren't reconcilable are dropped before negating, since they carry no
// information the negation needs to preserve. The result is always
// non-empty: a wedge clause stands in whenever nothing more specific can be
// concluded.
func Negate(clauses []clause.Clause, opts ...Option) ([]clause.Clause, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.WithFields(logctx.Stage("negate", "entry", len(clauses)))

	reconcilable := make([]clause.Clause, 0, len(clauses))
	for _, c := range clauses {
		if c.Reconcilable() {
			reconcilable = append(reconcilable, c)
		}
	}
	if len(reconcilable) == 0 {
		log.Debug("no reconcilable clauses, negation is a wedge")
		return []clause.Clause{newWedge()}, nil
	}

	negated := make([]clause.Clause, len(reconcilable))
	for i, c := range reconcilable {
		negated[i] = c.CalculateNegation()
	}

	grouped, err := groupImpossibilities(negated, o.maxGroupClauses)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(grouped) == 0 {
		log.Debug("grouping exhausted all information, negation is a wedge")
		return []clause.Clause{newWedge()}, nil
	}

	simplified := simplify.Simplify(grouped, simplify.WithLogger(o.logger))
	if len(simplified) == 0 {
		log.Debug("simplification exhausted all information, negation is a wedge")
		return []clause.Clause{newWedge()}, nil
	}
	return simplified, nil
}

func newWedge() clause.Clause {
	return clause.NewWedge(provenance.NewID(), provenance.NewID())
}

// groupImpossibilities distributes one impossibility from each clause into
// a single CNF: the distributive expansion of ANDing one impossibility from
// each clause in turn. Every clause passed in must already have
// Impossibilities computed, or InvalidState is returned.
func groupImpossibilities(clauses []clause.Clause, maxClauses int) ([]clause.Clause, error) {
	for _, c := range clauses {
		if c.Impossibilities() == nil {
			return nil, &cnferr.InvalidState{
				Op:     "negate.groupImpossibilities",
				Reason: "clause has no computed impossibilities",
			}
		}
	}

	last := clauses[len(clauses)-1]
	working := clauses[:len(clauses)-1]

	var result []clause.Clause
	for v, imps := range last.Impossibilities() {
		for _, imp := range imps {
			result = append(result, clause.New(
				map[assertion.VarKey][]assertion.Assertion{v: {imp}},
				last.CreatingConditionalID(), last.CreatingObjectID(),
				clause.Generated(true),
			))
		}
	}

	complexity := len(result)
	for i := len(working) - 1; i >= 0; i-- {
		c := working[i]
		next := make([]clause.Clause, 0, len(result))
		for _, g := range result {
			for v, imps := range c.Impossibilities() {
				for _, imp := range imps {
					complexity++
					if complexity > maxClauses {
						return nil, &cnferr.ComplicatedExpression{
							Stage:       "group",
							ClauseCount: complexity,
						}
					}
					if merged, ok := mergeImpossibility(g, v, imp); ok {
						next = append(next, merged)
					}
				}
			}
		}
		result = next
	}
	return result, nil
}

// mergeImpossibility adds (v, imp) to g's possibilities. If that creates a
// mutual-negation pair within v's list, both are dropped (the clause would
// be a tautology on that variable); if the clause becomes empty as a
// result, it is dropped entirely and ok is false.
func mergeImpossibility(g clause.Clause, v assertion.VarKey, imp assertion.Assertion) (clause.Clause, bool) {
	next := g.Possibilities()
	list := append(append([]assertion.Assertion(nil), next[v]...), imp)

	if i, j, found := findMutualNegation(list); found {
		list = removeIndices(list, i, j)
	}

	if len(list) == 0 {
		delete(next, v)
	} else {
		next[v] = list
	}

	if len(next) == 0 {
		return clause.Clause{}, false
	}
	merged := clause.New(next, g.CreatingConditionalID(), g.CreatingObjectID(), clause.Generated(true))
	return merged, true
}

func findMutualNegation(list []assertion.Assertion) (int, int, bool) {
	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			if list[i].IsNegationOf(list[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func removeIndices(list []assertion.Assertion, i, j int) []assertion.Assertion {
	out := make([]assertion.Assertion, 0, len(list)-2)
	for k, a := range list {
		if k == i || k == j {
			continue
		}
		out = append(out, a)
	}
	return out
}
