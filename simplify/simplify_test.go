package simplify_test

import (
	"testing"

	"github.com/flowlint/condlogic/assertion"
	"github.com/flowlint/condlogic/clause"
	"github.com/flowlint/condlogic/simplify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unit(v assertion.VarKey, a assertion.Assertion) clause.Clause {
	return clause.New(map[assertion.VarKey][]assertion.Assertion{v: {a}}, 1, 1)
}

func multi(pairs map[assertion.VarKey]assertion.Assertion) clause.Clause {
	m := map[assertion.VarKey][]assertion.Assertion{}
	for v, a := range pairs {
		m[v] = []assertion.Assertion{a}
	}
	return clause.New(m, 1, 1)
}

func hashes(cs []clause.Clause) map[string]struct{} {
	out := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		out[c.Hash()] = struct{}{}
	}
	return out
}

// Scenario 1: (a) ∧ (a ∨ b) -> (a)
func TestSimplifyScenario1Subsumption(t *testing.T) {
	a := assertion.NewAtom("a")
	b := assertion.NewAtom("b")

	c1 := unit("a", a)
	c2 := multi(map[assertion.VarKey]assertion.Assertion{"a": a, "b": b})

	out := simplify.Simplify([]clause.Clause{c1, c2})
	require.Len(t, out, 1)
	assert.Equal(t, c1.Hash(), out[0].Hash())
}

// Scenario 2: (!a) ∧ (!b) ∧ (a ∨ b ∨ c) -> (!a) ∧ (!b) ∧ (c)
func TestSimplifyScenario2UnitPropagation(t *testing.T) {
	a := assertion.NewAtom("a")
	b := assertion.NewAtom("b")
	c := assertion.NewAtom("c")

	notA := unit("a", a.Negate())
	notB := unit("b", b.Negate())
	abc := multi(map[assertion.VarKey]assertion.Assertion{"a": a, "b": b, "c": c})

	out := simplify.Simplify([]clause.Clause{notA, notB, abc})
	require.Len(t, out, 3)

	hs := hashes(out)
	_, hasC := hs[unit("c", c).Hash()]
	assert.True(t, hasC, "the resolved (c) clause must survive")
}

// Scenario 3: (a ∨ x) ∧ (!a ∨ y) ∧ (x ∨ y) -> (a ∨ x) ∧ (!a ∨ y)
func TestSimplifyScenario3ThreeWayResolution(t *testing.T) {
	a := assertion.NewAtom("a")
	x := assertion.NewAtom("x")
	y := assertion.NewAtom("y")

	c1 := multi(map[assertion.VarKey]assertion.Assertion{"a": a, "x": x})
	c2 := multi(map[assertion.VarKey]assertion.Assertion{"a": a.Negate(), "y": y})
	c3 := multi(map[assertion.VarKey]assertion.Assertion{"x": x, "y": y})

	out := simplify.Simplify([]clause.Clause{c1, c2, c3})
	require.Len(t, out, 2)

	hs := hashes(out)
	_, has1 := hs[c1.Hash()]
	_, has2 := hs[c2.Hash()]
	assert.True(t, has1)
	assert.True(t, has2)
}

// Scenario 7: 65,537 trivial clauses -> simplifier returns [].
func TestSimplifyHardCeiling(t *testing.T) {
	clauses := make([]clause.Clause, 65537)
	for i := range clauses {
		clauses[i] = unit(assertion.VarKey("v"), assertion.NewAtom(string(rune('a'+i%26))))
	}
	out := simplify.Simplify(clauses)
	assert.Empty(t, out)
}

func TestSimplifyAllUnknownShortCircuit(t *testing.T) {
	clauses := make([]clause.Clause, 51)
	for i := range clauses {
		clauses[i] = unit(assertion.VarKey("*tmp"), assertion.NewAtom("A"))
	}
	out := simplify.Simplify(clauses)
	assert.Len(t, out, 51, "more than 50 all-unknown clauses pass through unchanged")
}

func TestSimplifyIdempotent(t *testing.T) {
	a := assertion.NewAtom("a")
	b := assertion.NewAtom("b")
	c := assertion.NewAtom("c")
	clauses := []clause.Clause{
		unit("a", a.Negate()),
		unit("b", b.Negate()),
		multi(map[assertion.VarKey]assertion.Assertion{"a": a, "b": b, "c": c}),
	}

	once := simplify.Simplify(clauses)
	twice := simplify.Simplify(once)
	assert.Equal(t, hashes(once), hashes(twice))
}

func TestSimplifyWedgePreserved(t *testing.T) {
	w := clause.NewWedge(1, 1)
	a := unit("a", assertion.NewAtom("a"))
	out := simplify.Simplify([]clause.Clause{w, a})
	require.Len(t, out, 2)
	hs := hashes(out)
	_, hasWedge := hs[w.Hash()]
	assert.True(t, hasWedge)
}
