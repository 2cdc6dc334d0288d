// Package pairing provides the process-wide bilinear pairing context the
// KP-ABE scheme is built on: a symmetric Type-A pairing e: G1 x G1 -> GT
// with scalar field Zr, initialized once from a compiled-in parameter
// block (see params.go).
package pairing

import (
	"crypto/sha256"
	"sync"

	"github.com/Nik-U/pbc"
	hclog "github.com/hashicorp/go-hclog"
)

var (
	once    sync.Once
	pairing *pbc.Pairing
	log     = hclog.New(&hclog.LoggerOptions{Name: "kpabe.pairing"})
)

// Context returns the singleton pairing instance, initializing it on first
// use. All Zr/G1/GT element allocation in this module must go through the
// pairing returned here; mixing elements allocated against two different
// pairing instances is a programmer error the pbc library does not detect.
func Context() *pbc.Pairing {
	once.Do(func() {
		params, err := pbc.NewParamsFromString(typeAParams)
		if err != nil {
			// The parameter block is a compiled-in literal; a parse failure
			// here means the binary itself is broken, not a runtime condition
			// callers can recover from.
			panic("pairing: invalid embedded Type-A parameters: " + err.Error())
		}
		pairing = params.NewPairing()
		log.Debug("initialized Type-A pairing singleton")
	})
	return pairing
}

// HashElement canonicalizes e to the pbc library's fixed-size byte encoding
// and returns its SHA-256 digest. Equal elements always hash to equal bytes,
// including across separate processes, since the encoding is determined by
// the (shared) pairing parameters alone.
func HashElement(e *pbc.Element) [32]byte {
	return sha256.Sum256(e.Bytes())
}
