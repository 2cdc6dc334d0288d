// Package kem implements the symmetric half of the hybrid KP-ABE scheme:
// AES-256-CBC with a fixed all-zero IV and PKCS#7 padding, keyed by the
// 32-byte SHA-256 hash of a pairing-group element.
//
// Security note: the zero IV and absence of a MAC are a deliberate
// reproduction of the scheme this package ports, preserved for wire
// interoperability. This construction is not safe for encrypting more than
// one message under the same derived key; it must not be used as a
// general-purpose AEAD replacement.
package kem

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Seal pads plaintext with PKCS#7 and encrypts it under AES-256-CBC with a
// zero IV, keyed by key.
func Seal(plaintext []byte, key [32]byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("kem: %w", err)
	}

	padded := pad(plaintext, block.BlockSize())

	iv := make([]byte, block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return out, nil
}

// Open decrypts ciphertext produced by Seal under key and removes the
// PKCS#7 padding. It does not authenticate the ciphertext: a wrong key
// typically (but not always) yields an error from malformed padding, and
// may instead silently yield garbled plaintext. Callers that need to
// detect tampering must add their own integrity check.
func Open(ciphertext []byte, key [32]byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("kem: %w", err)
	}
	if len(ciphertext)%block.BlockSize() != 0 {
		return nil, fmt.Errorf("kem: ciphertext is not a multiple of the block size")
	}

	iv := make([]byte, block.BlockSize())
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	return unpad(padded, block.BlockSize())
}

func pad(data []byte, blockSize int) []byte {
	padLen := blockSize - (len(data) % blockSize)
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("kem: empty plaintext")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, fmt.Errorf("kem: invalid padding")
	}
	return data[:len(data)-padLen], nil
}
