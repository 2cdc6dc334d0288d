package kpabe

import (
	"github.com/Nik-U/pbc"

	"github.com/census-labs/kpabe-core/internal/pairing"
)

// PublicParams is the scheme's public key material: pk = g^mk and, for
// every attribute in the universe Setup ran over, P_a = g^s_a. It is safe
// to share with any encryptor.
type PublicParams struct {
	Pk *pbc.Element
	P  map[int]*pbc.Element
}

// Clear releases every element PublicParams owns. Safe to call more than
// once.
func (pp *PublicParams) Clear() {
	if pp.Pk != nil {
		pp.Pk.Clear()
		pp.Pk = nil
	}
	for a, e := range pp.P {
		e.Clear()
		delete(pp.P, a)
	}
}

// PrivateParams is the scheme's master secret: mk and, per attribute, s_a.
// Only the key authority holds this.
type PrivateParams struct {
	Mk *pbc.Element
	S  map[int]*pbc.Element
}

// Clear releases every element PrivateParams owns.
func (priv *PrivateParams) Clear() {
	if priv.Mk != nil {
		priv.Mk.Clear()
		priv.Mk = nil
	}
	for a, e := range priv.S {
		e.Clear()
		delete(priv.S, a)
	}
}

// Cw is the per-attribute ciphertext material produced by CreateSecret /
// Encrypt: C_a = P_a^k for every attribute a in the encryption set.
type Cw map[int]*pbc.Element

// Clear releases every element Cw owns.
func (cw Cw) Clear() {
	for a, e := range cw {
		e.Clear()
		delete(cw, a)
	}
}

// Bytes returns the canonical byte encoding of every element in cw, keyed
// by attribute id, suitable for a caller-defined wire format. It is not
// itself a container format; callers decide how to frame it alongside a
// ciphertext body.
func (cw Cw) Bytes() map[int][]byte {
	out := make(map[int][]byte, len(cw))
	for a, e := range cw {
		out[a] = e.Bytes()
	}
	return out
}

// CwFromBytes rebuilds a Cw from the encoding Bytes produces.
func CwFromBytes(data map[int][]byte) Cw {
	p := pairing.Context()
	cw := make(Cw, len(data))
	for a, b := range data {
		cw[a] = p.NewG1().SetBytes(b)
	}
	return cw
}

// deepCopyZr returns a fresh element holding the same value as e, so that
// two DecryptionKey copies never share an underlying *pbc.Element handle -
// each can be Clear()'d independently, at the cost of one byte round trip
// per element.
func deepCopyZr(e *pbc.Element) *pbc.Element {
	return pairing.Context().NewZr().SetBytes(e.Bytes())
}
