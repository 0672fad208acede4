// Package lion exposes Lion linkable ring signatures over byte encodings, for callers that
// store and ship keys and signatures as opaque blobs.
//
// Public keys cross this API in their lossless encoding (params.PublicKeyFullBytes), since ring
// arithmetic needs t at full precision. The compact encoding is available through
// CompactPublicKey for display and indexing.
package lion

import (
	"crypto/rand"
	"fmt"

	"github.com/cryptosuite/lion/lattice"
	"github.com/cryptosuite/lion/params"
	"github.com/cryptosuite/lion/ringsig"
)

// KeyGen derives a key pair from a 32-byte seed, or from crypto/rand when seed is nil.
// It returns the lossless public key encoding and the secret key encoding.
func KeyGen(seed []byte) (publicKey []byte, secretKey []byte, err error) {
	var kp *lattice.KeyPair
	if seed == nil {
		kp, err = lattice.GenerateKeyPair(rand.Reader)
	} else {
		kp, err = lattice.KeyPairFromSeed(seed)
	}
	if err != nil {
		return nil, nil, err
	}
	defer kp.Destroy()

	return kp.PublicKey().FullBytes(), kp.SecretKey().Bytes(), nil
}

// KeyVerify reports whether secretKey re-derives exactly publicKey.
func KeyVerify(publicKey []byte, secretKey []byte) (bool, error) {
	pk, err := lattice.PublicKeyFromFullBytes(publicKey)
	if err != nil {
		return false, err
	}
	sk, err := lattice.SecretKeyFromBytes(secretKey)
	if err != nil {
		return false, err
	}
	defer sk.Zeroize()
	return sk.MatchesPublicKey(pk), nil
}

// CompactPublicKey converts a lossless public key encoding into the compact one.
func CompactPublicKey(publicKey []byte) ([]byte, error) {
	pk, err := lattice.PublicKeyFromFullBytes(publicKey)
	if err != nil {
		return nil, err
	}
	return pk.Bytes(), nil
}

// Sign signs message as the member at realIndex of ring, drawing randomness from crypto/rand.
func Sign(message []byte, ring [][]byte, realIndex int, secretKey []byte) ([]byte, error) {
	r, err := decodeRing(ring)
	if err != nil {
		return nil, err
	}
	sk, err := lattice.SecretKeyFromBytes(secretKey)
	if err != nil {
		return nil, err
	}
	defer sk.Zeroize()

	sig, err := ringsig.Sign(message, r, realIndex, sk, rand.Reader)
	if err != nil {
		return nil, err
	}
	return sig.Bytes()
}

// Verify checks signature on message against ring.
func Verify(message []byte, ring [][]byte, signature []byte) error {
	r, err := decodeRing(ring)
	if err != nil {
		return err
	}
	sig, err := ringsig.SignatureFromBytes(signature)
	if err != nil {
		return err
	}
	return ringsig.Verify(message, r, sig)
}

// KeyImageOf returns the serialized key image carried by signature, the value a ledger keys
// its double-spend index on.
func KeyImageOf(signature []byte) ([]byte, error) {
	sig, err := ringsig.SignatureFromBytes(signature)
	if err != nil {
		return nil, err
	}
	ki, err := ringsig.KeyImageOf(sig)
	if err != nil {
		return nil, err
	}
	return ki.Bytes(), nil
}

// SecretKeyImage returns the serialized key image of secretKey.
func SecretKeyImage(secretKey []byte) ([]byte, error) {
	sk, err := lattice.SecretKeyFromBytes(secretKey)
	if err != nil {
		return nil, err
	}
	defer sk.Zeroize()
	ki, err := lattice.NewKeyImage(sk)
	if err != nil {
		return nil, err
	}
	return ki.Bytes(), nil
}

func decodeRing(ring [][]byte) (ringsig.PublicKeyRing, error) {
	if len(ring) != params.RingSize {
		return nil, &ringsig.InvalidRingSizeError{Expected: params.RingSize, Got: len(ring)}
	}
	rst := make(ringsig.PublicKeyRing, len(ring))
	for i, b := range ring {
		pk, err := lattice.PublicKeyFromFullBytes(b)
		if err != nil {
			return nil, fmt.Errorf("ring member %d: %w", i, err)
		}
		rst[i] = pk
	}
	return rst, nil
}
