package lattice

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/cryptosuite/lion/internal/xof"
	"github.com/cryptosuite/lion/params"
)

// PublicKey is (seed, t) with t = A*s1 + s2 and A = ExpandA(seed).
type PublicKey struct {
	seed [params.SeedBytes]byte
	t    *PolyVec

	// rounded marks a key decoded from the compact encoding, whose t lost its low TShift bits.
	rounded bool
}

// SecretKey holds (s1, s2) together with the public key they define.
type SecretKey struct {
	s1        *PolyVec
	s2        *PolyVec
	publicKey *PublicKey
}

// KeyPair pairs a secret key with its public key. Call Destroy once the pair is no longer needed.
type KeyPair struct {
	secretKey *SecretKey
	publicKey *PublicKey
}

// KeyPairFromSeed deterministically derives a key pair from a 32-byte seed.
// The seed is split by cSHAKE256 into a matrix seed and the ChaCha20 keys s1 and s2 are sampled from.
func KeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != params.SeedBytes {
		return nil, fmt.Errorf("KeyPairFromSeed: seed has %d bytes, want %d", len(seed), params.SeedBytes)
	}

	expanded := xof.Derive(params.DomainKeyGen, 3*params.SeedBytes, seed)
	defer wipeBytes(expanded)
	matrixSeed := expanded[:params.SeedBytes]
	s1Seed := expanded[params.SeedBytes : 2*params.SeedBytes]
	s2Seed := expanded[2*params.SeedBytes:]

	s1RNG, err := NewSeededRNG(s1Seed)
	if err != nil {
		return nil, err
	}
	s1, err := SampleSmallVec(s1RNG, params.L, params.Eta)
	if err != nil {
		return nil, fmt.Errorf("KeyPairFromSeed: sampling s1: %w", err)
	}

	s2RNG, err := NewSeededRNG(s2Seed)
	if err != nil {
		s1.Zeroize()
		return nil, err
	}
	s2, err := SampleSmallVec(s2RNG, params.K, params.Eta)
	if err != nil {
		s1.Zeroize()
		return nil, fmt.Errorf("KeyPairFromSeed: sampling s2: %w", err)
	}

	sk, err := newSecretKey(matrixSeed, s1, s2)
	if err != nil {
		s1.Zeroize()
		s2.Zeroize()
		return nil, err
	}
	return &KeyPair{secretKey: sk, publicKey: sk.publicKey}, nil
}

// GenerateKeyPair draws a fresh 32-byte seed from rng and derives a key pair from it.
func GenerateKeyPair(rng io.Reader) (*KeyPair, error) {
	seed := make([]byte, params.SeedBytes)
	defer wipeBytes(seed)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, fmt.Errorf("GenerateKeyPair: reading seed: %w", err)
	}
	return KeyPairFromSeed(seed)
}

// newSecretKey computes t = A*s1 + s2 and assembles the secret key that owns its public key.
func newSecretKey(matrixSeed []byte, s1 *PolyVec, s2 *PolyVec) (*SecretKey, error) {
	if !isVecL(s1) || !isVecK(s2) {
		return nil, ErrInvalidSecretKey
	}
	if !s1.CheckNorm(params.Eta) || !s2.CheckNorm(params.Eta) {
		return nil, fmt.Errorf("newSecretKey: %w: secret vector exceeds eta", ErrInvalidSecretKey)
	}

	ck, err := NewCommitmentKey(matrixSeed)
	if err != nil {
		return nil, err
	}
	t, err := ck.Commit(s1, s2)
	if err != nil {
		return nil, err
	}

	pk := &PublicKey{t: t.c}
	copy(pk.seed[:], matrixSeed)
	sk := &SecretKey{s1: s1, s2: s2, publicKey: pk}
	runtime.SetFinalizer(sk, func(sk *SecretKey) { sk.Zeroize() })
	return sk, nil
}

func (kp *KeyPair) SecretKey() *SecretKey {
	return kp.secretKey
}

func (kp *KeyPair) PublicKey() *PublicKey {
	return kp.publicKey
}

// Destroy zeroizes the secret key. The public key stays usable.
func (kp *KeyPair) Destroy() {
	if kp == nil {
		return
	}
	kp.secretKey.Zeroize()
}

// Seed returns a copy of the matrix seed.
func (pk *PublicKey) Seed() []byte {
	rst := make([]byte, params.SeedBytes)
	copy(rst, pk.seed[:])
	return rst
}

// T returns a copy of the public vector t.
func (pk *PublicKey) T() *PolyVec {
	return pk.t.Copy()
}

// Rounded reports whether the key came from the compact encoding. Such a key identifies
// its owner but cannot take part in ring arithmetic, which needs t at full precision.
func (pk *PublicKey) Rounded() bool {
	return pk.rounded
}

// CommitmentKey returns the commitment key of pk's matrix A.
func (pk *PublicKey) CommitmentKey() (*CommitmentKey, error) {
	return NewCommitmentKey(pk.seed[:])
}

func (pk *PublicKey) Equal(o *PublicKey) bool {
	if pk == nil || o == nil {
		return pk == o
	}
	return pk.seed == o.seed && pk.t.Equal(o.t)
}

// Validate checks the structure of a public key built outside this package's decoders.
func (pk *PublicKey) Validate() error {
	if pk == nil || !isVecK(pk.t) {
		return ErrInvalidPublicKey
	}
	return nil
}

// Bytes returns the compact encoding: seed || K polynomials at 10 bits per coefficient (t>>TShift).
func (pk *PublicKey) Bytes() []byte {
	buf := make([]byte, 0, params.PublicKeyBytes)
	buf = append(buf, pk.seed[:]...)
	return append(buf, packVecT10(pk.t)...)
}

// FullBytes returns the lossless encoding: seed || K polynomials at full width.
func (pk *PublicKey) FullBytes() []byte {
	buf := make([]byte, 0, params.PublicKeyFullBytes)
	buf = append(buf, pk.seed[:]...)
	return append(buf, pk.t.Bytes()...)
}

// PublicKeyFromBytes decodes the compact encoding. The resulting key is Rounded.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != params.PublicKeyBytes {
		return nil, fmt.Errorf("PublicKeyFromBytes: %w: got %d bytes, want %d", ErrInvalidPublicKey, len(b), params.PublicKeyBytes)
	}
	pk := &PublicKey{t: unpackVecT10(b[params.SeedBytes:], params.K), rounded: true}
	copy(pk.seed[:], b[:params.SeedBytes])
	return pk, nil
}

// PublicKeyFromFullBytes decodes the lossless encoding.
func PublicKeyFromFullBytes(b []byte) (*PublicKey, error) {
	if len(b) != params.PublicKeyFullBytes {
		return nil, fmt.Errorf("PublicKeyFromFullBytes: %w: got %d bytes, want %d", ErrInvalidPublicKey, len(b), params.PublicKeyFullBytes)
	}
	t, err := PolyVecFromBytes(b[params.SeedBytes:], params.K)
	if err != nil {
		return nil, fmt.Errorf("PublicKeyFromFullBytes: %w", err)
	}
	pk := &PublicKey{t: t}
	copy(pk.seed[:], b[:params.SeedBytes])
	return pk, nil
}

// PublicKey returns the public key owned by sk.
func (sk *SecretKey) PublicKey() *PublicKey {
	return sk.publicKey
}

// MatchesPublicKey reports whether sk's recomputed public key equals pk. SecretKeyFromBytes
// accepts any well-formed encoding, so callers holding a trusted public key should cross-check
// with this before signing.
func (sk *SecretKey) MatchesPublicKey(pk *PublicKey) bool {
	if sk == nil || pk == nil {
		return false
	}
	if pk.rounded {
		return bytes.Equal(sk.publicKey.Bytes(), pk.Bytes())
	}
	return sk.publicKey.Equal(pk)
}

// Respond returns z = y + c*s1 for a masking L-vector y and a challenge c.
func (sk *SecretKey) Respond(y *PolyVec, c *Poly) (*PolyVec, error) {
	if sk == nil || sk.s1 == nil {
		return nil, ErrInvalidSecretKey
	}
	if !isVecL(y) || c == nil {
		return nil, errors.New("Respond: y must be an L-vector and c a polynomial")
	}
	s1NTT := sk.s1.NTT()
	defer s1NTT.Zeroize()
	cs1NTT := s1NTT.ScaleMul(c.NTT())
	defer cs1NTT.Zeroize()
	cs1 := cs1NTT.InvNTT()
	defer cs1.Zeroize()
	return y.Add(cs1), nil
}

// Bytes returns seed || s1 || s2, every secret polynomial at 3 bits per coefficient.
// The caller owns the returned secret material and should wipe it after use.
func (sk *SecretKey) Bytes() []byte {
	buf := make([]byte, params.SecretKeyBytes)
	copy(buf, sk.publicKey.seed[:])
	off := params.SeedBytes
	for _, p := range sk.s1.polys {
		packPolyEta(buf[off:], p)
		off += params.PolyEtaBytes
	}
	for _, p := range sk.s2.polys {
		packPolyEta(buf[off:], p)
		off += params.PolyEtaBytes
	}
	return buf
}

// SecretKeyFromBytes decodes a secret key and recomputes its public key from seed, s1 and s2.
// Nothing ties the result to a previously advertised public key; see MatchesPublicKey.
func SecretKeyFromBytes(b []byte) (*SecretKey, error) {
	if len(b) != params.SecretKeyBytes {
		return nil, fmt.Errorf("SecretKeyFromBytes: %w: got %d bytes, want %d", ErrInvalidSecretKey, len(b), params.SecretKeyBytes)
	}
	s1 := &PolyVec{polys: make([]*Poly, 0, params.L)}
	s2 := &PolyVec{polys: make([]*Poly, 0, params.K)}
	fail := func(err error) (*SecretKey, error) {
		s1.Zeroize()
		s2.Zeroize()
		return nil, fmt.Errorf("SecretKeyFromBytes: %w", err)
	}

	off := params.SeedBytes
	for i := 0; i < params.L; i++ {
		p, err := unpackPolyEta(b[off : off+params.PolyEtaBytes])
		if err != nil {
			return fail(err)
		}
		s1.polys = append(s1.polys, p)
		off += params.PolyEtaBytes
	}
	for i := 0; i < params.K; i++ {
		p, err := unpackPolyEta(b[off : off+params.PolyEtaBytes])
		if err != nil {
			return fail(err)
		}
		s2.polys = append(s2.polys, p)
		off += params.PolyEtaBytes
	}

	sk, err := newSecretKey(b[:params.SeedBytes], s1, s2)
	if err != nil {
		return fail(err)
	}
	return sk, nil
}

// Zeroize wipes s1 and s2. The key must not be used afterwards.
func (sk *SecretKey) Zeroize() {
	if sk == nil {
		return
	}
	sk.s1.Zeroize()
	sk.s2.Zeroize()
}
