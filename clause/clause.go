// Package clause implements the immutable CNF clause value the rest of the
// engine operates on: a disjunction of per-variable possibilities, content
// addressed by hash.
package clause

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/flowlint/condlogic/assertion"
)

// Clause is one disjunction in a CNF formula. Possibilities is keyed by
// variable: the clause holds if any variable satisfies any assertion in its
// list. Clause values are immutable once constructed — every "modification"
// documented below returns a new value.
type Clause struct {
	possibilities map[assertion.VarKey][]assertion.Assertion
	strings       map[assertion.VarKey]map[string]struct{}
	impossible    map[assertion.VarKey][]assertion.Assertion

	wedge        bool
	reconcilable bool
	generated    bool
	redefined    map[assertion.VarKey]struct{}

	creatingConditionalID int64
	creatingObjectID      int64

	hash string
}

// Option configures a Clause at construction time.
type Option func(*config)

type config struct {
	wedge        bool
	reconcilable bool
	generated    bool
	redefined    []assertion.VarKey
}

func defaultConfig() config {
	return config{reconcilable: true}
}

// Wedge marks the constructed clause as a wedge: "unknown/ambiguous",
// always satisfiable, inert during simplification. New ignores any
// possibilities passed alongside this option — a wedge clause carries none.
func Wedge() Option { return func(c *config) { c.wedge = true } }

// Reconcilable overrides the default (true) participation flag.
func Reconcilable(v bool) Option { return func(c *config) { c.reconcilable = v } }

// Generated marks the clause as produced by logical transformation rather
// than taken directly from source.
func Generated(v bool) Option { return func(c *config) { c.generated = v } }

// RedefinedVars records variables whose prior facts must not carry across
// this clause.
func RedefinedVars(vars ...assertion.VarKey) Option {
	return func(c *config) { c.redefined = vars }
}

// New constructs a Clause from a possibilities map. Keys mapping to an empty
// or nil assertion list are dropped (invariant: every inner list is
// non-empty). The possibilities and per-key string sets are computed once,
// here, and never mutated afterward.
func New(possibilities map[assertion.VarKey][]assertion.Assertion, creatingConditionalID, creatingObjectID int64, opts ...Option) Clause {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := Clause{
		creatingConditionalID: creatingConditionalID,
		creatingObjectID:      creatingObjectID,
		wedge:                 cfg.wedge,
		reconcilable:          cfg.reconcilable,
		generated:             cfg.generated,
	}

	if len(cfg.redefined) > 0 {
		c.redefined = make(map[assertion.VarKey]struct{}, len(cfg.redefined))
		for _, v := range cfg.redefined {
			c.redefined[v] = struct{}{}
		}
	}

	if cfg.wedge {
		c.possibilities = map[assertion.VarKey][]assertion.Assertion{}
		c.strings = map[assertion.VarKey]map[string]struct{}{}
		c.hash = computeHash(c.strings, c.wedge, c.reconcilable, c.generated)
		return c
	}

	c.possibilities = make(map[assertion.VarKey][]assertion.Assertion, len(possibilities))
	c.strings = make(map[assertion.VarKey]map[string]struct{}, len(possibilities))
	for v, list := range possibilities {
		if len(list) == 0 {
			continue
		}
		cp := make([]assertion.Assertion, len(list))
		copy(cp, list)
		c.possibilities[v] = cp

		set := make(map[string]struct{}, len(cp))
		for _, a := range cp {
			set[a.Render()] = struct{}{}
		}
		c.strings[v] = set
	}

	c.hash = computeHash(c.strings, c.wedge, c.reconcilable, c.generated)
	return c
}

// NewWedge constructs a wedge clause with the given provenance ids.
func NewWedge(creatingConditionalID, creatingObjectID int64) Clause {
	return New(nil, creatingConditionalID, creatingObjectID, Wedge())
}

func computeHash(strs map[assertion.VarKey]map[string]struct{}, wedge, reconcilable, generated bool) string {
	keys := make([]string, 0, len(strs))
	for v := range strs {
		keys = append(keys, string(v))
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		renders := make([]string, 0, len(strs[assertion.VarKey(k)]))
		for r := range strs[assertion.VarKey(k)] {
			renders = append(renders, r)
		}
		sort.Strings(renders)
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(strings.Join(renders, ","))
		b.WriteByte(';')
	}
	if wedge {
		b.WriteString("w1")
	} else {
		b.WriteString("w0")
	}
	if reconcilable {
		b.WriteString("r1")
	} else {
		b.WriteString("r0")
	}
	if generated {
		b.WriteString("g1")
	} else {
		b.WriteString("g0")
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Hash returns the content-addressed identity of the clause. Two clauses
// with equal rendered possibilities and equal wedge/reconcilable/generated
// flags compare equal by Hash.
func (c Clause) Hash() string { return c.hash }

// Wedge reports whether this is the always-satisfiable wedge marker.
func (c Clause) Wedge() bool { return c.wedge }

// Reconcilable reports whether the clause may participate in simplification
// and truth extraction.
func (c Clause) Reconcilable() bool { return c.reconcilable }

// Generated reports whether the clause was produced by logical
// transformation rather than directly from source.
func (c Clause) Generated() bool { return c.generated }

// CreatingConditionalID returns the provenance id of the conditional that
// produced this clause.
func (c Clause) CreatingConditionalID() int64 { return c.creatingConditionalID }

// CreatingObjectID returns the provenance id of the syntactic object that
// produced this clause.
func (c Clause) CreatingObjectID() int64 { return c.creatingObjectID }

// RedefinedVars returns the set of variables whose prior facts must not
// carry across this clause.
func (c Clause) RedefinedVars() map[assertion.VarKey]struct{} {
	out := make(map[assertion.VarKey]struct{}, len(c.redefined))
	for v := range c.redefined {
		out[v] = struct{}{}
	}
	return out
}

// Possibilities returns a copy of the clause's possibility map.
func (c Clause) Possibilities() map[assertion.VarKey][]assertion.Assertion {
	out := make(map[assertion.VarKey][]assertion.Assertion, len(c.possibilities))
	for v, list := range c.possibilities {
		cp := make([]assertion.Assertion, len(list))
		copy(cp, list)
		out[v] = cp
	}
	return out
}

// PossibilityStrings returns the cached rendered forms used for equivalence
// checks.
func (c Clause) PossibilityStrings() map[assertion.VarKey]map[string]struct{} {
	out := make(map[assertion.VarKey]map[string]struct{}, len(c.strings))
	for v, set := range c.strings {
		cp := make(map[string]struct{}, len(set))
		for s := range set {
			cp[s] = struct{}{}
		}
		out[v] = cp
	}
	return out
}

// Impossibilities returns the precomputed negation of every possibility, or
// nil if CalculateNegation has not been called.
func (c Clause) Impossibilities() map[assertion.VarKey][]assertion.Assertion {
	if c.impossible == nil {
		return nil
	}
	out := make(map[assertion.VarKey][]assertion.Assertion, len(c.impossible))
	for v, list := range c.impossible {
		cp := make([]assertion.Assertion, len(list))
		copy(cp, list)
		out[v] = cp
	}
	return out
}

// IsUnit reports whether the clause has exactly one variable with exactly
// one possibility.
func (c Clause) IsUnit() bool {
	if len(c.possibilities) != 1 {
		return false
	}
	for _, list := range c.possibilities {
		return len(list) == 1
	}
	return false
}

// String renders the clause for logging and the CLI, e.g. "(x:A ∨ x:B ∨ y:C)".
func (c Clause) String() string {
	if c.wedge {
		return "⋀" // wedge: no information
	}
	keys := make([]string, 0, len(c.possibilities))
	for v := range c.possibilities {
		keys = append(keys, string(v))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := assertion.VarKey(k)
		list := c.possibilities[v]
		renders := make([]string, len(list))
		for i, a := range list {
			renders[i] = k + ":" + a.Render()
		}
		parts = append(parts, strings.Join(renders, " ∨ "))
	}
	return "(" + strings.Join(parts, " ∨ ") + ")"
}

func cloneOptions(c Clause) []Option {
	opts := []Option{Reconcilable(c.reconcilable), Generated(c.generated)}
	if c.wedge {
		opts = append(opts, Wedge())
	}
	if len(c.redefined) > 0 {
		vars := make([]assertion.VarKey, 0, len(c.redefined))
		for v := range c.redefined {
			vars = append(vars, v)
		}
		opts = append(opts, RedefinedVars(vars...))
	}
	return opts
}

// MakeUnique returns a clause whose per-variable possibility lists are
// deduplicated by rendered form, preserving first-occurrence order.
func (c Clause) MakeUnique() Clause {
	if c.wedge {
		return c
	}
	deduped := make(map[assertion.VarKey][]assertion.Assertion, len(c.possibilities))
	for v, list := range c.possibilities {
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
		deduped[v] = out
	}
	return New(deduped, c.creatingConditionalID, c.creatingObjectID, cloneOptions(c)...)
}

// RemovePossibilities returns a clause without var's entry, and reports
// false if the result would have no possibilities left at all.
func (c Clause) RemovePossibilities(v assertion.VarKey) (Clause, bool) {
	if c.wedge {
		return Clause{}, false
	}
	if _, ok := c.possibilities[v]; !ok {
		return c, true
	}
	next := make(map[assertion.VarKey][]assertion.Assertion, len(c.possibilities)-1)
	for k, list := range c.possibilities {
		if k == v {
			continue
		}
		next[k] = list
	}
	if len(next) == 0 {
		return Clause{}, false
	}
	return New(next, c.creatingConditionalID, c.creatingObjectID, cloneOptions(c)...), true
}

// WithPossibilities returns a clause with var's list replaced by list. An
// empty list removes the key, per RemovePossibilities' rules.
func (c Clause) WithPossibilities(v assertion.VarKey, list []assertion.Assertion) (Clause, bool) {
	if len(list) == 0 {
		return c.RemovePossibilities(v)
	}
	next := c.Possibilities()
	next[v] = list
	return New(next, c.creatingConditionalID, c.creatingObjectID, cloneOptions(c)...), true
}

// AddPossibilities unions extras into var's possibility list, skipping any
// assertion already present by rendered form.
func (c Clause) AddPossibilities(v assertion.VarKey, extras []assertion.Assertion) Clause {
	next := c.Possibilities()
	existing := next[v]
	seen := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		seen[a.Render()] = struct{}{}
	}
	for _, a := range extras {
		r := a.Render()
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		existing = append(existing, a)
	}
	next[v] = existing
	return New(next, c.creatingConditionalID, c.creatingObjectID, cloneOptions(c)...)
}

// Contains reports whether every (var, assertion) pair in other is present
// in c — subsumption in the resolution sense: if the stronger disjunction
// other holds, c (a superset of its literals) is redundant.
func (c Clause) Contains(other Clause) bool {
	if other.wedge || c.wedge {
		return false
	}
	for v, set := range other.strings {
		mine, ok := c.strings[v]
		if !ok {
			return false
		}
		for r := range set {
			if _, ok := mine[r]; !ok {
				return false
			}
		}
	}
	return true
}

// CalculateNegation returns a clause with Impossibilities set to the
// per-variable negation of every possibility.
func (c Clause) CalculateNegation() Clause {
	c2 := c
	if c.wedge {
		c2.impossible = map[assertion.VarKey][]assertion.Assertion{}
		return c2
	}
	imp := make(map[assertion.VarKey][]assertion.Assertion, len(c.possibilities))
	for v, list := range c.possibilities {
		negs := make([]assertion.Assertion, len(list))
		for i, a := range list {
			negs[i] = a.Negate()
		}
		imp[v] = negs
	}
	c2.impossible = imp
	return c2
}
