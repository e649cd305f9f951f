// Package simplify implements CNF simplification via unit resolution and
// subsumption: given a conjunction of clauses, it removes clauses and
// literals that add no information, without changing what the formula
// means.
package simplify

import (
	"sort"

	"github.com/flowlint/condlogic/assertion"
	"github.com/flowlint/condlogic/clause"
	"github.com/flowlint/condlogic/internal/logctx"
	"github.com/sirupsen/logrus"
)

type options struct {
	maxClauses        int
	unknownShortCircuit int
	threeWayMin       int
	threeWayMax       int
	logger            *logrus.Entry
}

func defaultOptions() options {
	return options{
		maxClauses:          65536,
		unknownShortCircuit: 50,
		threeWayMin:         2,
		threeWayMax:         256,
		logger:              logctx.Discard(),
	}
}

// Option configures a Simplify call.
type Option func(*options)

// WithMaxClauses overrides the hard clause-count ceiling (default 65536)
// above which Simplify gives up and returns an empty list.
func WithMaxClauses(n int) Option { return func(o *options) { o.maxClauses = n } }

// WithLogger attaches a logger that records when Simplify returns early at
// the hard ceiling or the all-unknown short circuit.
func WithLogger(l *logrus.Entry) Option { return func(o *options) { o.logger = l } }

// Simplify reduces a CNF clause list to a logically equivalent, smaller
// form. An empty result means the input is trivially true (or, for inputs
// past the hard ceiling, that no conclusion could be drawn in bounded
// time — the caller treats the two cases identically).
func Simplify(clauses []clause.Clause, opts ...Option) []clause.Clause {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.WithFields(logctx.Stage("simplify", "entry", len(clauses)))

	if len(clauses) > o.maxClauses {
		log.Debug("exceeded hard clause ceiling")
		return nil
	}
	if len(clauses) > o.unknownShortCircuit && allUnknown(clauses) {
		log.Debug("all-unknown short circuit")
		return append([]clause.Clause(nil), clauses...)
	}

	current := dedupe(clauses)
	current = unitResolve(current)
	current = subsume(current)
	if n := len(current); n > o.threeWayMin && n < o.threeWayMax {
		current = threeWayResolve(current)
	}
	return current
}

func allUnknown(clauses []clause.Clause) bool {
	for _, c := range clauses {
		for v := range c.Possibilities() {
			if !v.IsUnknown() {
				return false
			}
		}
	}
	return true
}

// dedupe calls MakeUnique on each clause and keeps the first clause seen per
// hash, preserving insertion order.
func dedupe(clauses []clause.Clause) []clause.Clause {
	seen := make(map[string]struct{}, len(clauses))
	out := make([]clause.Clause, 0, len(clauses))
	for _, c := range clauses {
		u := c.MakeUnique()
		if _, ok := seen[u.Hash()]; ok {
			continue
		}
		seen[u.Hash()] = struct{}{}
		out = append(out, u)
	}
	return out
}

func sameKeySet(a, b clause.Clause) bool {
	ap, bp := a.Possibilities(), b.Possibilities()
	if len(ap) != len(bp) {
		return false
	}
	for v := range ap {
		if _, ok := bp[v]; !ok {
			return false
		}
	}
	return true
}

// unitResolve runs both sub-cases of step 3: complementary-literal
// elimination across same-shaped multi-variable clauses, and unit-clause
// propagation into clauses sharing that variable.
//
// The multi-variable sub-case only ever narrows the clause it's applied to,
// so it runs as a single in-place pass. The unit-clause sub-case can remove
// other clauses outright, which shifts indices out from under a naive
// index-based loop — it runs to a fixed point instead, which is safe here
// because each propagation only ever removes or narrows a possibility.
func unitResolve(clauses []clause.Clause) []clause.Clause {
	working := append([]clause.Clause(nil), clauses...)

	for i := range working {
		a := working[i]
		if a.Wedge() || !a.Reconcilable() {
			continue
		}
		if len(a.Possibilities()) > 1 {
			working[i] = resolveMultiVar(a, working, i)
		}
	}

	for changed := true; changed; {
		changed = false
		for _, a := range working {
			if a.Wedge() || !a.Reconcilable() || !a.IsUnit() {
				continue
			}
			var v assertion.VarKey
			var t assertion.Assertion
			for vv, list := range a.Possibilities() {
				v, t = vv, list[0]
			}
			next := propagateUnit(working, v, t)
			if !sameClauses(working, next) {
				working = next
				changed = true
				break
			}
		}
	}

	return working
}

func sameClauses(a, b []clause.Clause) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Hash() != b[i].Hash() {
			return false
		}
	}
	return true
}

// resolveMultiVar implements step 3's first sub-case for clause a: for the
// first other same-shaped clause in which exactly one of the textually
// disagreeing keys holds mutually negating single assertions, drop that key
// from a.
func resolveMultiVar(a clause.Clause, working []clause.Clause, selfIdx int) clause.Clause {
	ap := a.Possibilities()

	for j, b := range working {
		if j == selfIdx || b.Wedge() || !b.Reconcilable() {
			continue
		}
		if !sameKeySet(a, b) {
			continue
		}
		bp := b.Possibilities()

		var opposing []assertion.VarKey
		for v, alist := range ap {
			blist := bp[v]
			if renderSet(alist) == renderSet(blist) {
				continue // keys must disagree textually to count
			}
			if len(alist) == 1 && len(blist) == 1 && alist[0].IsNegationOf(blist[0]) {
				opposing = append(opposing, v)
			}
		}
		if len(opposing) == 1 {
			if narrowed, ok := a.RemovePossibilities(opposing[0]); ok {
				return narrowed
			}
		}
	}
	return a
}

func renderSet(list []assertion.Assertion) string {
	rs := make([]string, len(list))
	for i, a := range list {
		rs[i] = a.Render()
	}
	sort.Strings(rs)
	out := ""
	for _, r := range rs {
		out += r + ","
	}
	return out
}

// propagateUnit implements step 3's second sub-case for the unit clause
// {v: [t]}: any other clause containing v has possibilities equal to ¬t
// removed.
func propagateUnit(working []clause.Clause, v assertion.VarKey, t assertion.Assertion) []clause.Clause {
	negated := t.Negate().Render()

	out := make([]clause.Clause, 0, len(working))
	for _, b := range working {
		list, ok := b.Possibilities()[v]
		if !ok {
			out = append(out, b)
			continue
		}
		var rest []assertion.Assertion
		matched := false
		for _, a := range list {
			if a.Render() == negated {
				matched = true
				continue
			}
			rest = append(rest, a)
		}
		if !matched {
			out = append(out, b)
			continue
		}
		if len(rest) > 0 {
			nb, _ := b.WithPossibilities(v, rest)
			out = append(out, nb)
			continue
		}
		// rest is empty: drop b's v-list; if that empties b entirely, drop b.
		if nb, ok := b.RemovePossibilities(v); ok {
			out = append(out, nb)
		}
	}
	return out
}

// subsume removes any clause implied by a strictly stronger one already in
// the set.
func subsume(clauses []clause.Clause) []clause.Clause {
	out := make([]clause.Clause, 0, len(clauses))
	for i, a := range clauses {
		subsumed := false
		for j, b := range clauses {
			if i == j || a.Wedge() || b.Wedge() {
				continue
			}
			if a.Hash() == b.Hash() {
				continue
			}
			if a.Contains(b) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			out = append(out, a)
		}
	}
	return out
}

// threeWayResolve implements step 5: (A∨X) ∧ (¬A∨Y) ∧ (X∨Y) ⇒ drop the
// third clause when it is exactly the union of the other two's non-shared
// entries.
func threeWayResolve(clauses []clause.Clause) []clause.Clause {
	toRemove := make(map[string]struct{})

	for i, a := range clauses {
		if a.Wedge() || !a.Reconcilable() {
			continue
		}
		ap := a.Possibilities()
		for j := i + 1; j < len(clauses); j++ {
			b := clauses[j]
			if b.Wedge() || !b.Reconcilable() {
				continue
			}
			bp := b.Possibilities()

			shared := sharedKeys(ap, bp)
			if len(shared) == 0 {
				continue
			}
			if !allMutualNegationSingletons(ap, bp, shared) {
				continue
			}

			synthetic := map[assertion.VarKey][]assertion.Assertion{}
			for v, list := range ap {
				if _, isShared := shared[v]; !isShared {
					synthetic[v] = list
				}
			}
			for v, list := range bp {
				if _, isShared := shared[v]; !isShared {
					synthetic[v] = list
				}
			}
			if len(synthetic) == 0 {
				continue
			}
			sc := clause.New(synthetic, a.CreatingConditionalID(), a.CreatingObjectID())
			for _, c := range clauses {
				if c.Hash() == sc.Hash() {
					toRemove[c.Hash()] = struct{}{}
				}
			}
		}
	}

	if len(toRemove) == 0 {
		return clauses
	}
	out := make([]clause.Clause, 0, len(clauses))
	for _, c := range clauses {
		if _, drop := toRemove[c.Hash()]; drop {
			continue
		}
		out = append(out, c)
	}
	return out
}

func sharedKeys(a, b map[assertion.VarKey][]assertion.Assertion) map[assertion.VarKey]struct{} {
	shared := map[assertion.VarKey]struct{}{}
	for v := range a {
		if _, ok := b[v]; ok {
			shared[v] = struct{}{}
		}
	}
	return shared
}

func allMutualNegationSingletons(a, b map[assertion.VarKey][]assertion.Assertion, shared map[assertion.VarKey]struct{}) bool {
	for v := range shared {
		al, bl := a[v], b[v]
		if len(al) != 1 || len(bl) != 1 {
			return false
		}
		if !al[0].IsNegationOf(bl[0]) {
			return false
		}
	}
	return true
}
