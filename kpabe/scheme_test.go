package kpabe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/census-labs/kpabe-core/policy"
)

// fixturePolicy mirrors original_source/kpabe_test.cpp's InitPolicy:
// (1 OR 2) AND (3 OR 4).
func fixturePolicy() policy.Node {
	return policy.And(
		policy.Or(policy.Leaf(1), policy.Leaf(2)),
		policy.Or(policy.Leaf(3), policy.Leaf(4)),
	)
}

// S1: setup is independent of any policy and covers the whole attribute
// universe.
func TestSetupProducesEntryPerAttribute(t *testing.T) {
	pub, priv := Setup([]int{1, 2, 3, 4, 5})
	assert.Len(t, pub.P, 5)
	assert.Len(t, priv.S, 5)
	assert.NotNil(t, pub.Pk)
	assert.NotNil(t, priv.Mk)
}

// S2: createSecret and recoverSecret agree on the same KEM seed whenever the
// decryption key's policy is satisfied by the encryption attribute set.
func TestCreateSecretAndRecoverSecretAgree(t *testing.T) {
	pub, priv := Setup([]int{1, 2, 3, 4})
	key, err := KeyGen(priv, fixturePolicy())
	require.NoError(t, err)

	cw, cs, err := CreateSecret(pub, []int{1, 3})
	require.NoError(t, err)

	recovered, err := RecoverSecret(key, cw, []int{1, 3})
	require.NoError(t, err)

	assert.True(t, cs.Equals(recovered))
}

// S3: an attribute set that does not satisfy the policy fails closed with
// ErrUnsatisfiable rather than returning a wrong secret.
func TestRecoverSecretFailsClosedWhenUnsatisfied(t *testing.T) {
	pub, priv := Setup([]int{1, 2, 3, 4})
	key, err := KeyGen(priv, fixturePolicy())
	require.NoError(t, err)

	cw, _, err := CreateSecret(pub, []int{1})
	require.NoError(t, err)

	_, err = RecoverSecret(key, cw, []int{1})
	assert.True(t, errors.Is(err, ErrUnsatisfiable))
}

// S4: end-to-end Encrypt/Decrypt round trip under a satisfying attribute
// set.
func TestEncryptDecryptRoundTrip(t *testing.T) {
	pub, priv := Setup([]int{1, 2, 3, 4, 5})
	key, err := KeyGen(priv, fixturePolicy())
	require.NoError(t, err)

	message := []byte("the quick brown fox jumps over the lazy dog")
	cw, ct, err := Encrypt(pub, []int{1, 3}, message)
	require.NoError(t, err)

	plaintext, err := Decrypt(key, cw, []int{1, 3}, ct)
	require.NoError(t, err)
	assert.Equal(t, message, plaintext)
}

// S4b: the same round trip holds when the satisfying path runs through the
// other half of the tree.
func TestEncryptDecryptRoundTripAlternatePath(t *testing.T) {
	pub, priv := Setup([]int{1, 2, 3, 4})
	key, err := KeyGen(priv, fixturePolicy())
	require.NoError(t, err)

	message := []byte("alternate path")
	cw, ct, err := Encrypt(pub, []int{2, 4}, message)
	require.NoError(t, err)

	plaintext, err := Decrypt(key, cw, []int{2, 4}, ct)
	require.NoError(t, err)
	assert.Equal(t, message, plaintext)
}

// S5: decryption with an unsatisfying attribute set fails with
// ErrUnsatisfiable instead of returning garbage plaintext.
func TestDecryptUnsatisfiableAttributeSet(t *testing.T) {
	pub, priv := Setup([]int{1, 2, 3, 4})
	key, err := KeyGen(priv, fixturePolicy())
	require.NoError(t, err)

	cw, ct, err := Encrypt(pub, []int{1}, []byte("secret"))
	require.NoError(t, err)

	_, err = Decrypt(key, cw, []int{1}, ct)
	assert.True(t, errors.Is(err, ErrUnsatisfiable))
}

// S6: the empty message round-trips too - the NUL terminator convention
// must not choke on a zero-length plaintext.
func TestEncryptDecryptEmptyMessage(t *testing.T) {
	pub, priv := Setup([]int{1, 2, 3, 4})
	key, err := KeyGen(priv, fixturePolicy())
	require.NoError(t, err)

	cw, ct, err := Encrypt(pub, []int{1, 3}, []byte{})
	require.NoError(t, err)

	plaintext, err := Decrypt(key, cw, []int{1, 3}, ct)
	require.NoError(t, err)
	assert.Equal(t, []byte{}, plaintext)
}

func TestKeyGenRejectsAttributeOutsideUniverse(t *testing.T) {
	_, priv := Setup([]int{1, 2, 3})
	_, err := KeyGen(priv, policy.Leaf(99))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestCreateSecretRejectsAttributeOutsideUniverse(t *testing.T) {
	pub, _ := Setup([]int{1, 2, 3})
	_, _, err := CreateSecret(pub, []int{99})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

// Two independent Setup runs over the same universe must not agree on a
// master secret - otherwise every key generated under one would decrypt
// ciphertexts encrypted under the other.
func TestSetupIsRandomizedPerCall(t *testing.T) {
	pub1, _ := Setup([]int{1, 2, 3})
	pub2, _ := Setup([]int{1, 2, 3})
	assert.False(t, pub1.Pk.Equals(pub2.Pk))
}

// A plain leaf policy is its own satisfying set.
func TestSingleLeafPolicyRoundTrip(t *testing.T) {
	pub, priv := Setup([]int{7})
	key, err := KeyGen(priv, policy.Leaf(7))
	require.NoError(t, err)

	cw, ct, err := Encrypt(pub, []int{7}, []byte("single leaf"))
	require.NoError(t, err)

	plaintext, err := Decrypt(key, cw, []int{7}, ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("single leaf"), plaintext)
}

func TestDecryptionKeyCloneIsIndependentlyClearable(t *testing.T) {
	_, priv := Setup([]int{1, 2, 3, 4})
	key, err := KeyGen(priv, fixturePolicy())
	require.NoError(t, err)

	clone := key.Clone()
	key.Clear()

	// The clone must still hold valid, usable elements after the original
	// is cleared.
	for a, e := range clone.D {
		assert.False(t, e.Is0(), "clone share for attribute %d should survive original's Clear", a)
	}
}
