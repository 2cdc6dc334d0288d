package policy

import (
	"sort"
	"testing"

	"github.com/Nik-U/pbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/census-labs/kpabe-core/internal/pairing"
)

// buildFixture mirrors original_source/kpabe_test.cpp's InitPolicy:
// (1 OR 2) AND (3 OR 4).
func buildFixture() Node {
	return And(
		Or(Leaf(1), Leaf(2)),
		Or(Leaf(3), Leaf(4)),
	)
}

func TestLeafsEnumeratesEachAttributeOnce(t *testing.T) {
	leafs := buildFixture().Leafs()
	sort.Ints(leafs)
	assert.Equal(t, []int{1, 2, 3, 4}, leafs)
}

func TestThresholdAndPolyDegree(t *testing.T) {
	root := buildFixture()
	assert.Equal(t, 2, root.Threshold())
	assert.Equal(t, 1, root.PolyDegree())
	assert.Equal(t, 1, root.Children()[0].Threshold())
	assert.Equal(t, 0, root.Children()[0].PolyDegree())
}

func TestSecretSharesCountMatchesLeafCount(t *testing.T) {
	root := buildFixture()
	secret := pairing.Context().NewZr().Rand()
	shares := root.SecretShares(secret)
	assert.Len(t, shares, len(root.Leafs()))
}

func TestRecoverCoefficientsThresholdTwo(t *testing.T) {
	// A 2-child AND node has threshold 2; the Lagrange weights at 0 for
	// points {1, 2} are [2, -1] in Zr.
	root := And(Leaf(1), Leaf(2))
	coeffs := root.RecoverCoefficients()
	require.Len(t, coeffs, 2)

	p := pairing.Context()
	want0 := p.NewZr().SetInt32(2)
	want1 := p.NewZr().SetInt32(-1)

	assert.True(t, coeffs[0].Equals(want0), "expected coefficient 0 to be 2")
	assert.True(t, coeffs[1].Equals(want1), "expected coefficient 1 to be -1")
}

func TestSatisfyingAttributesPositive(t *testing.T) {
	root := buildFixture()
	one := pairing.Context().NewZr().Set1()

	sat := root.SatisfyingAttributes(map[int]bool{1: true, 3: true}, one)
	require.Len(t, sat, 2)

	var attrs []int
	for _, ac := range sat {
		attrs = append(attrs, ac.Attr)
		assert.False(t, ac.Coeff.Is0(), "coefficient should be non-zero")
	}
	sort.Ints(attrs)
	assert.Equal(t, []int{1, 3}, attrs)
}

func TestSatisfyingAttributesNegative(t *testing.T) {
	root := buildFixture()
	one := pairing.Context().NewZr().Set1()

	sat := root.SatisfyingAttributes(map[int]bool{1: true}, one)
	assert.Nil(t, sat)
}

func TestSecretReconstruction(t *testing.T) {
	root := buildFixture()
	secret := pairing.Context().NewZr().Rand()
	shares := root.SecretShares(secret)

	leafs := root.Leafs()
	shareByAttr := make(map[int]*pbc.Element)
	for i, a := range leafs {
		shareByAttr[a] = shares[i]
	}

	one := pairing.Context().NewZr().Set1()
	sat := root.SatisfyingAttributes(map[int]bool{1: true, 3: true}, one)
	require.NotNil(t, sat)

	sum := pairing.Context().NewZr().Set0()
	for _, ac := range sat {
		term := pairing.Context().NewZr().Set(shareByAttr[ac.Attr]).ThenMul(ac.Coeff)
		sum.ThenAdd(term)
	}

	assert.True(t, sum.Equals(secret), "reconstructed secret should equal the root secret")
}

func TestValidateRejectsEmptyInner(t *testing.T) {
	bad := Node{gate: AND}
	assert.Error(t, bad.Validate())
}

func TestValidateRejectsDuplicateLeaves(t *testing.T) {
	bad := Or(Leaf(1), Leaf(1))
	assert.Error(t, bad.Validate())
}
