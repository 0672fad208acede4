package lattice

import (
	"crypto/subtle"
	"fmt"

	"github.com/cryptosuite/lion/internal/xof"
	"github.com/cryptosuite/lion/params"
)

// KeyImage is the linkability tag H*s1, where H is expanded from a hash of the owner's
// public key. It depends on the secret key only, never on the message or the ring.
type KeyImage struct {
	image *PolyVec
}

// NewKeyImage derives the key image of sk.
func NewKeyImage(sk *SecretKey) (*KeyImage, error) {
	if sk == nil || !isVecL(sk.s1) {
		return nil, ErrInvalidSecretKey
	}
	hSeed := xof.Derive(params.DomainKeyImage, params.SeedBytes, sk.publicKey.Bytes())
	var seed [params.SeedBytes]byte
	copy(seed[:], hSeed)
	h, err := expandMatrixNTT(seed)
	if err != nil {
		return nil, fmt.Errorf("NewKeyImage: %w", err)
	}

	s1NTT := sk.s1.NTT()
	defer s1NTT.Zeroize()
	return &KeyImage{image: h.MulVector(s1NTT).InvNTT()}, nil
}

// Bytes packs the image like a public key's t: K polynomials at 10 bits per coefficient.
// The encoding is idempotent, so Bytes of a decoded key image equals the bytes it came from.
func (ki *KeyImage) Bytes() []byte {
	return packVecT10(ki.image)
}

func KeyImageFromBytes(b []byte) (*KeyImage, error) {
	if len(b) != params.KeyImageBytes {
		return nil, fmt.Errorf("KeyImageFromBytes: %w: got %d bytes, want %d", ErrInvalidKeyImage, len(b), params.KeyImageBytes)
	}
	return &KeyImage{image: unpackVecT10(b, params.K)}, nil
}

// Equal compares the serialized forms, which is what double-spend detection keys on.
func (ki *KeyImage) Equal(o *KeyImage) bool {
	if ki == nil || o == nil {
		return ki == o
	}
	return subtle.ConstantTimeCompare(ki.Bytes(), o.Bytes()) == 1
}

// Validate checks the structure of a key image built outside this package's decoders.
func (ki *KeyImage) Validate() error {
	if ki == nil || !isVecK(ki.image) {
		return ErrInvalidKeyImage
	}
	return nil
}
