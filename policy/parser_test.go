package policy

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleAnd(t *testing.T) {
	n, err := Parse("(1 OR 2) AND (3 OR 4)")
	require.NoError(t, err)

	leafs := n.Leafs()
	sort.Ints(leafs)
	assert.Equal(t, []int{1, 2, 3, 4}, leafs)
	assert.Equal(t, AND, n.gate)
}

func TestParseNaryGate(t *testing.T) {
	n, err := Parse("1 AND 2 AND 3")
	require.NoError(t, err)
	assert.Equal(t, 3, len(n.Children()))
	assert.Equal(t, 3, n.Threshold())
}

func TestParseSingleLeaf(t *testing.T) {
	n, err := Parse("1")
	require.NoError(t, err)
	assert.True(t, n.IsLeaf())
	assert.Equal(t, 1, n.Attr())
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
}

func TestParseRejectsMixedGateWithoutParens(t *testing.T) {
	_, err := Parse("1 AND 2 OR 3")
	assert.Error(t, err)
}

func TestParseRejectsDuplicateLeaves(t *testing.T) {
	_, err := Parse("1 OR 1")
	assert.Error(t, err)
}

func TestParseRejectsUnbalancedParens(t *testing.T) {
	_, err := Parse("(1 OR 2")
	assert.Error(t, err)
}

func TestParseRejectsGarbageToken(t *testing.T) {
	_, err := Parse("1 XOR 2")
	assert.Error(t, err)
}
