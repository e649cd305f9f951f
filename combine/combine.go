// Package combine merges two CNF formulae under logical disjunction: given
// L and R, it produces a CNF for L ∨ R by pairwise-disjoining every clause
// of L with every clause of R.
package combine

import (
	"sort"

	"github.com/flowlint/condlogic/assertion"
	"github.com/flowlint/condlogic/clause"
	"github.com/flowlint/condlogic/internal/logctx"
	"github.com/flowlint/condlogic/internal/provenance"
	"github.com/sirupsen/logrus"
)

type options struct {
	maxPerSide int
	logger     *logrus.Entry
}

func defaultOptions() options {
	return options{
		maxPerSide: 60000,
		logger:     logctx.Discard(),
	}
}

// Option configures a CombineOred call.
type Option func(*options)

// WithMaxPerSide overrides the per-side clause-count ceiling (default
// 60000) above which CombineOred gives up and returns an empty formula.
func WithMaxPerSide(n int) Option { return func(o *options) { o.maxPerSide = n } }

// WithLogger attaches a logger that records when CombineOred gives up at the
// per-side ceiling.
func WithLogger(l *logrus.Entry) Option { return func(o *options) { o.logger = l } }

// CombineOred merges left and right into a CNF for their logical disjunction.
// mergeConditionalID tags synthesized clauses whose two sides disagree on
// provenance. When no clause carries redefined vars, the result is
// commutative up to clause order: CombineOred(L, R, id) and
// CombineOred(R, L, id) carry the same set of clauses. Redefined vars make
// the merge direction-sensitive, since only the left clause's entries for
// vars redefined by the right clause are skipped.
func CombineOred(left, right []clause.Clause, mergeConditionalID int64, opts ...Option) []clause.Clause {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.WithFields(logctx.Stage("combine", "entry", len(left)+len(right)))

	if len(left) > o.maxPerSide || len(right) > o.maxPerSide {
		log.Debug("exceeded per-side ceiling")
		return nil
	}

	multiLeft := len(left) > 1
	multiRight := len(right) > 1

	var out []clause.Clause
	sawBothWedge := false

	for _, l := range left {
		for _, r := range right {
			if l.Wedge() && r.Wedge() {
				sawBothWedge = true
				continue
			}
			if merged, ok := mergePair(l, r, mergeConditionalID, multiLeft, multiRight); ok {
				out = append(out, merged)
			}
		}
	}

	if sawBothWedge {
		out = append(out, clause.NewWedge(provenance.NewID(), provenance.NewID()))
	}
	return out
}

// mergePair disjoins one clause from each side. It returns ok=false when the
// merged clause would be a tautology (a variable ends up with exactly two
// mutually negating possibilities) and is therefore dropped rather than
// weakening the result.
func mergePair(l, r clause.Clause, mergeConditionalID int64, multiLeft, multiRight bool) (clause.Clause, bool) {
	redefinedByR := r.RedefinedVars()

	merged := map[assertion.VarKey][]assertion.Assertion{}
	for v, list := range l.Possibilities() {
		if _, skip := redefinedByR[v]; skip {
			continue
		}
		merged[v] = append([]assertion.Assertion(nil), list...)
	}
	for v, list := range r.Possibilities() {
		merged[v] = append(merged[v], list...)
	}

	if multiLeft && multiRight {
		for v, list := range merged {
			merged[v] = dedupeByRender(list)
		}
	}

	for _, list := range merged {
		if len(list) == 2 && list[0].IsNegationOf(list[1]) {
			return clause.Clause{}, false
		}
	}

	conditionalID := mergeConditionalID
	if l.CreatingConditionalID() == r.CreatingConditionalID() {
		conditionalID = l.CreatingConditionalID()
	}
	objectID := mergeConditionalID
	if l.CreatingObjectID() == r.CreatingObjectID() {
		objectID = l.CreatingObjectID()
	}

	canReconcile := l.Reconcilable() && r.Reconcilable() && !l.Wedge() && !r.Wedge()
	generated := l.Generated() || r.Generated() || multiLeft || multiRight

	return clause.New(merged, conditionalID, objectID,
		clause.Reconcilable(canReconcile),
		clause.Generated(generated),
	), true
}

func dedupeByRender(list []assertion.Assertion) []assertion.Assertion {
	seen := make(map[string]struct{}, len(list))
	out := make([]assertion.Assertion, 0, len(list))
	for _, a := range list {
		r := a.Render()
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Render() < out[j].Render() })
	return out
}
