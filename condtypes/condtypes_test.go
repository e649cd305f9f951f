package condtypes_test

import (
	"testing"

	"github.com/flowlint/condlogic/assertion"
	"github.com/flowlint/condlogic/condtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegateTypesMultipleSingletonFacts(t *testing.T) {
	a := assertion.NewAtom("a")
	types := map[assertion.VarKey][][]assertion.Assertion{
		"v": {{a}, {a.Negate()}},
	}

	out := condtypes.NegateTypes(types)
	require.Len(t, out["v"], 2)
	assert.Equal(t, []assertion.Assertion{a.Negate()}, out["v"][0])
	assert.Equal(t, []assertion.Assertion{a}, out["v"][1])
}

func TestNegateTypesSingleDisjunctionDistributes(t *testing.T) {
	a := assertion.NewAtom("a")
	b := assertion.NewAtom("b")
	types := map[assertion.VarKey][][]assertion.Assertion{
		"v": {{a, b}},
	}

	out := condtypes.NegateTypes(types)
	require.Len(t, out["v"], 2)
	assert.ElementsMatch(t, [][]assertion.Assertion{{a.Negate()}, {b.Negate()}}, out["v"])
}

func TestNegateTypesAmbiguousShapeDropped(t *testing.T) {
	a := assertion.NewAtom("a")
	b := assertion.NewAtom("b")
	types := map[assertion.VarKey][][]assertion.Assertion{
		"v": {{a, b}, {a}},
	}

	out := condtypes.NegateTypes(types)
	assert.NotContains(t, out, assertion.VarKey("v"))
}

func TestNegateTypesEmptyInput(t *testing.T) {
	out := condtypes.NegateTypes(map[assertion.VarKey][][]assertion.Assertion{})
	assert.Empty(t, out)
}
