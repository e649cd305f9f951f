package clause_test

import (
	"testing"

	"github.com/flowlint/condlogic/assertion"
	"github.com/flowlint/condlogic/clause"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poss(pairs ...interface{}) map[assertion.VarKey][]assertion.Assertion {
	m := map[assertion.VarKey][]assertion.Assertion{}
	for i := 0; i < len(pairs); i += 2 {
		v := pairs[i].(assertion.VarKey)
		list := pairs[i+1].([]assertion.Assertion)
		m[v] = list
	}
	return m
}

func TestNewDropsEmptyKeys(t *testing.T) {
	c := clause.New(poss("x", []assertion.Assertion{}), 1, 1)
	assert.Empty(t, c.Possibilities())
}

func TestHashEqualForEquivalentContent(t *testing.T) {
	a := assertion.NewAtom("A")
	b := assertion.NewAtom("B")

	c1 := clause.New(poss("x", []assertion.Assertion{a, b}), 1, 1)
	c2 := clause.New(poss("x", []assertion.Assertion{b, a}), 2, 2)

	assert.Equal(t, c1.Hash(), c2.Hash(), "hash depends on rendered content, not insertion order or provenance ids")
}

func TestHashDiffersOnFlags(t *testing.T) {
	a := assertion.NewAtom("A")
	c1 := clause.New(poss("x", []assertion.Assertion{a}), 1, 1)
	c2 := clause.New(poss("x", []assertion.Assertion{a}), 1, 1, clause.Generated(true))
	assert.NotEqual(t, c1.Hash(), c2.Hash())
}

func TestMakeUniqueDeduplicates(t *testing.T) {
	a := assertion.NewAtom("A")
	c := clause.New(poss("x", []assertion.Assertion{a, a, a}), 1, 1)
	u := u1(t, c)
	assert.Len(t, u.Possibilities()["x"], 1)
}

func u1(t *testing.T, c clause.Clause) clause.Clause {
	t.Helper()
	return c.MakeUnique()
}

func TestContainsSubsumption(t *testing.T) {
	a := assertion.NewAtom("A")
	b := assertion.NewAtom("B")
	weak := clause.New(poss("x", []assertion.Assertion{a, b}), 1, 1)
	strong := clause.New(poss("x", []assertion.Assertion{a}), 1, 1)

	assert.True(t, weak.Contains(strong), "x:A implies x:A∨x:B")
	assert.False(t, strong.Contains(weak))
}

func TestRemovePossibilitiesEmptiesToNone(t *testing.T) {
	a := assertion.NewAtom("A")
	c := clause.New(poss("x", []assertion.Assertion{a}), 1, 1)
	_, ok := c.RemovePossibilities("x")
	assert.False(t, ok)
}

func TestRemovePossibilitiesKeepsOthers(t *testing.T) {
	a := assertion.NewAtom("A")
	b := assertion.NewAtom("B")
	c := clause.New(poss("x", []assertion.Assertion{a}, "y", []assertion.Assertion{b}), 1, 1)
	r, ok := c.RemovePossibilities("x")
	require.True(t, ok)
	_, hasX := r.Possibilities()["x"]
	assert.False(t, hasX)
	assert.Contains(t, r.Possibilities(), assertion.VarKey("y"))
}

func TestAddPossibilitiesUnions(t *testing.T) {
	a := assertion.NewAtom("A")
	b := assertion.NewAtom("B")
	c := clause.New(poss("x", []assertion.Assertion{a}), 1, 1)
	c2 := c.AddPossibilities("x", []assertion.Assertion{a, b})
	assert.Len(t, c2.Possibilities()["x"], 2)
}

func TestCalculateNegation(t *testing.T) {
	a := assertion.NewAtom("A")
	c := clause.New(poss("x", []assertion.Assertion{a}), 1, 1)
	assert.Nil(t, c.Impossibilities())

	neg := c.CalculateNegation()
	require.NotNil(t, neg.Impossibilities())
	assert.True(t, neg.Impossibilities()["x"][0].IsNegationOf(a))
}

func TestWedgeHasNoPossibilities(t *testing.T) {
	w := clause.NewWedge(1, 1)
	assert.True(t, w.Wedge())
	assert.Empty(t, w.Possibilities())
	assert.False(t, w.Contains(w), "wedges neither subsume nor are subsumed")
}

func TestImmutabilityOfAccessors(t *testing.T) {
	a := assertion.NewAtom("A")
	c := clause.New(poss("x", []assertion.Assertion{a}), 1, 1)
	p := c.Possibilities()
	p["x"] = append(p["x"], assertion.NewAtom("B"))
	assert.Len(t, c.Possibilities()["x"], 1, "mutating a returned map must not affect the clause")
}
