package kpabe

import "errors"

// ErrUnsatisfiable is returned by Decrypt/RecoverSecret when the attribute
// set presented at decryption time does not satisfy the decryption key's
// access policy. It is the only domain error this package raises; every
// other failure is either ErrMalformedInput or a wrapped backend error.
var ErrUnsatisfiable = errors.New("kpabe: attribute set does not satisfy the access policy")

// ErrMalformedInput is returned when an attribute referenced by a policy or
// a ciphertext has no corresponding entry in the parameters it is being
// evaluated against (e.g. an encryption attribute absent from
// PublicParams, or a key leaf attribute absent from PrivateParams).
var ErrMalformedInput = errors.New("kpabe: attribute missing from parameters")

// ErrCryptoBackendError wraps a failure surfaced by the pairing or cipher
// library itself (e.g. a rejected key size, a malformed ciphertext block
// count) rather than a policy/attribute mismatch. It is not expected to be
// recovered from; callers should treat it as fatal to the operation.
var ErrCryptoBackendError = errors.New("kpabe: crypto backend error")
