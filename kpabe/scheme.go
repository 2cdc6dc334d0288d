// Package kpabe implements the Goyal-Pandey-Sahai-Waters Key-Policy
// Attribute-Based Encryption scheme: Setup, KeyGen, Encrypt, Decrypt, and
// the CreateSecret/RecoverSecret pair that factors the KEM step out of the
// hybrid encryption layer.
package kpabe

import (
	"fmt"

	"github.com/Nik-U/pbc"

	"github.com/census-labs/kpabe-core/internal/kem"
	"github.com/census-labs/kpabe-core/internal/pairing"
	"github.com/census-labs/kpabe-core/policy"
)

// DecryptionKey binds an owned copy of an access policy to a per-leaf
// scrambled share D_a = share_a / s_a. It is produced by KeyGen and
// consumed by Decrypt/RecoverSecret.
type DecryptionKey struct {
	Policy policy.Node
	D      map[int]*pbc.Element
}

// Clone returns a DecryptionKey holding independent copies of every
// element k owns (policy.Node itself is already an immutable value type
// with no element handles, so it is copied by assignment). Two clones can
// be Clear()'d independently without a double-free.
func (k *DecryptionKey) Clone() DecryptionKey {
	d := make(map[int]*pbc.Element, len(k.D))
	for a, e := range k.D {
		d[a] = deepCopyZr(e)
	}
	return DecryptionKey{Policy: k.Policy, D: d}
}

// Clear releases every element the key owns.
func (k *DecryptionKey) Clear() {
	for a, e := range k.D {
		e.Clear()
		delete(k.D, a)
	}
}

// Setup samples a fresh master secret and, for every attribute in universe,
// a public/private element pair. The generator g used to derive them is
// sampled and then discarded; only its images survive in the returned
// parameters.
func Setup(universe []int) (PublicParams, PrivateParams) {
	p := pairing.Context()

	mk := p.NewZr().Rand()
	g := p.NewG1().Rand()

	pub := PublicParams{
		Pk: p.NewG1(),
		P:  make(map[int]*pbc.Element, len(universe)),
	}
	priv := PrivateParams{
		Mk: deepCopyZr(mk),
		S:  make(map[int]*pbc.Element, len(universe)),
	}

	for _, a := range universe {
		s := p.NewZr().Rand()
		priv.S[a] = s
		pub.P[a] = p.NewG1().Set(g).ThenPowZn(s)
	}

	pub.Pk.Set(g).ThenPowZn(mk)

	mk.Clear()
	g.Clear()

	return pub, priv
}

// KeyGen derives a DecryptionKey for accessPolicy from the master secret in
// priv. It fails with ErrMalformedInput if any leaf attribute of
// accessPolicy has no entry in priv.S.
func KeyGen(priv PrivateParams, accessPolicy policy.Node) (DecryptionKey, error) {
	leafs := accessPolicy.Leafs()
	for _, a := range leafs {
		if _, ok := priv.S[a]; !ok {
			return DecryptionKey{}, fmt.Errorf("%w: attribute %d not present in private parameters", ErrMalformedInput, a)
		}
	}

	shares := accessPolicy.SecretShares(priv.Mk)

	p := pairing.Context()
	d := make(map[int]*pbc.Element, len(leafs))
	for i, a := range leafs {
		d[a] = p.NewZr().Set(shares[i]).ThenDiv(priv.S[a])
	}

	return DecryptionKey{Policy: accessPolicy, D: d}, nil
}

// CreateSecret is the KEM-encapsulation half of Encrypt: it samples a fresh
// scalar k, computes the KEM seed Cs = pk^k, and Cw[a] = P_a^k for every
// attribute in attrs. k itself is discarded after use.
func CreateSecret(pub PublicParams, attrs []int) (Cw, *pbc.Element, error) {
	p := pairing.Context()

	for _, a := range attrs {
		if _, ok := pub.P[a]; !ok {
			return nil, nil, fmt.Errorf("%w: attribute %d not present in public parameters", ErrMalformedInput, a)
		}
	}

	k := p.NewZr().Rand()
	defer k.Clear()

	cs := p.NewG1().Set(pub.Pk).ThenPowZn(k)

	cw := make(Cw, len(attrs))
	for _, a := range attrs {
		cw[a] = p.NewG1().Set(pub.P[a]).ThenPowZn(k)
	}

	return cw, cs, nil
}

// RecoverSecret reconstructs the KEM seed Cs a DecryptionKey and the
// matching Cw agree on, provided attrs satisfies key.Policy. It returns
// ErrUnsatisfiable otherwise.
func RecoverSecret(key DecryptionKey, cw Cw, attrs []int) (*pbc.Element, error) {
	p := pairing.Context()

	attrSet := make(map[int]bool, len(attrs))
	for _, a := range attrs {
		attrSet[a] = true
	}

	rootCoeff := p.NewZr().Set1()
	defer rootCoeff.Clear()

	sat := key.Policy.SatisfyingAttributes(attrSet, rootCoeff)
	if sat == nil {
		return nil, ErrUnsatisfiable
	}

	cs := p.NewG1()
	first := true
	for _, ac := range sat {
		c, ok := cw[ac.Attr]
		if !ok {
			return nil, fmt.Errorf("%w: attribute %d not present in ciphertext", ErrMalformedInput, ac.Attr)
		}
		exp := p.NewZr().Set(key.D[ac.Attr]).ThenMul(ac.Coeff)
		z := p.NewG1().Set(c).ThenPowZn(exp)

		// product = prod_a Ca ^ (Da * coeff_a); by construction this equals
		// prod_a g^(k * share_a/s_a * coeff_a) = g^(k * mk) = pk^k.
		if first {
			cs.Set(z)
			first = false
		} else {
			cs.ThenMul(z)
		}
	}

	return cs, nil
}

// Encrypt seals message under attrs: it derives Cw and a KEM seed via
// CreateSecret, hashes the seed to a symmetric key, and AES-256-CBC
// encrypts a NUL-terminated copy of message.
func Encrypt(pub PublicParams, attrs []int, message []byte) (Cw, []byte, error) {
	cw, cs, err := CreateSecret(pub, attrs)
	if err != nil {
		return nil, nil, err
	}
	defer cs.Clear()

	symKey := pairing.HashElement(cs)

	padded := make([]byte, len(message)+1)
	copy(padded, message)
	// padded[len(message)] is already the zero byte NUL terminator.

	ct, err := kem.Seal(padded, symKey)
	if err != nil {
		cw.Clear()
		return nil, nil, fmt.Errorf("%w: %v", ErrCryptoBackendError, err)
	}

	return cw, ct, nil
}

// Decrypt recovers the KEM seed via RecoverSecret and uses it to
// AES-256-CBC decrypt ct, returning the plaintext up to (not including) its
// first NUL byte. It returns ErrUnsatisfiable if attrs does not satisfy
// key.Policy; it does not authenticate the decrypted bytes, so a
// wrong-but-satisfying key/attrs combination either fails PKCS#7 unpadding
// (reported as ErrCryptoBackendError) or yields garbled output.
func Decrypt(key DecryptionKey, cw Cw, attrs []int, ct []byte) ([]byte, error) {
	cs, err := RecoverSecret(key, cw, attrs)
	if err != nil {
		return nil, err
	}
	defer cs.Clear()

	symKey := pairing.HashElement(cs)

	padded, err := kem.Open(ct, symKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoBackendError, err)
	}

	for i, b := range padded {
		if b == 0 {
			return padded[:i], nil
		}
	}
	return padded, nil
}
