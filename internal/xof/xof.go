// Package xof provides the domain separated extendable-output functions used across Lion.
// Every derivation gets its own cSHAKE customization string, so outputs of different
// derivations are independent even when their inputs coincide.
package xof

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// New128 returns a cSHAKE128 instance customized with domain.
func New128(domain string) sha3.ShakeHash {
	return sha3.NewCShake128(nil, []byte(domain))
}

// New256 returns a cSHAKE256 instance customized with domain.
func New256(domain string) sha3.ShakeHash {
	return sha3.NewCShake256(nil, []byte(domain))
}

// Derive absorbs every input into a cSHAKE256 instance customized with domain and
// squeezes outLen bytes.
func Derive(domain string, outLen int, inputs ...[]byte) []byte {
	h := New256(domain)
	for _, in := range inputs {
		h.Write(in)
	}
	out := make([]byte, outLen)
	// ShakeHash.Read never fails
	_, _ = io.ReadFull(h, out)
	return out
}
