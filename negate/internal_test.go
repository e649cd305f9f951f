package negate

import (
	"testing"

	"github.com/flowlint/condlogic/assertion"
	"github.com/flowlint/condlogic/clause"
	"github.com/flowlint/condlogic/internal/cnferr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// groupImpossibilities requires every clause to have already run through
// CalculateNegation; a raw clause trips InvalidState.
func TestGroupImpossibilitiesRequiresComputedNegation(t *testing.T) {
	raw := clause.New(map[assertion.VarKey][]assertion.Assertion{
		"a": {assertion.NewAtom("a")},
	}, 1, 1)

	_, err := groupImpossibilities([]clause.Clause{raw}, 20000)
	require.Error(t, err)
	var invalid *cnferr.InvalidState
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, "negate.groupImpossibilities", invalid.Op)
}
