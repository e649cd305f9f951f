package assertion_test

import (
	"testing"

	"github.com/flowlint/condlogic/assertion"
	"github.com/stretchr/testify/assert"
)

func TestVarKeyIsUnknown(t *testing.T) {
	assert.True(t, assertion.VarKey("*tmp0").IsUnknown())
	assert.False(t, assertion.VarKey("x").IsUnknown())
}

func TestAtomRenderAndNegate(t *testing.T) {
	a := assertion.NewAtom("string")
	assert.Equal(t, "string", a.Render())
	assert.False(t, a.IsNegation())

	na := a.Negate()
	assert.Equal(t, "!string", na.Render())
	assert.True(t, na.IsNegation())
	assert.True(t, na.IsNegationOf(a))
	assert.True(t, a.IsNegationOf(na))
	assert.False(t, a.IsNegationOf(a))
}

func TestAtomIsNegationOfDifferentName(t *testing.T) {
	a := assertion.NewAtom("string")
	b := assertion.NewAtom("number").Negate()
	assert.False(t, a.IsNegationOf(b))
}

func TestFalsyTruthyComplement(t *testing.T) {
	var f assertion.Assertion = assertion.Falsy{}
	var tr assertion.Assertion = assertion.Truthy{}

	assert.True(t, f.IsFalsy())
	assert.False(t, tr.IsFalsy())
	assert.True(t, f.IsNegationOf(tr))
	assert.True(t, tr.IsNegationOf(f))
	assert.Equal(t, tr, f.Negate())
	assert.Equal(t, f, tr.Negate())
}
