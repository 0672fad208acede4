package lattice

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/cryptosuite/lion/params"
	"github.com/stretchr/testify/require"
)

func testKeyPair(t *testing.T, b byte) *KeyPair {
	kp, err := KeyPairFromSeed(bytes.Repeat([]byte{b}, params.SeedBytes))
	require.NoError(t, err)
	return kp
}

func TestExpandA(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, params.SeedBytes)
	a, err := ExpandA(seed)
	require.NoError(t, err)
	b, err := ExpandA(seed)
	require.NoError(t, err)
	require.True(t, a.Equal(b))
	require.False(t, a.Entry(0, 0).Equal(a.Entry(0, 1)))
	require.False(t, a.Entry(0, 1).Equal(a.Entry(1, 0)))

	c, err := ExpandA(bytes.Repeat([]byte{8}, params.SeedBytes))
	require.NoError(t, err)
	require.False(t, a.Equal(c))

	_, err = ExpandA(seed[:31])
	require.Error(t, err)
}

func TestCommitmentKey_Commit(t *testing.T) {
	ck, err := NewCommitmentKey(bytes.Repeat([]byte{3}, params.SeedBytes))
	require.NoError(t, err)

	value, err := SampleSmallVec(testRNG(t, 1), params.L, params.Eta)
	require.NoError(t, err)
	randomness, err := SampleSmallVec(testRNG(t, 2), params.K, params.Eta)
	require.NoError(t, err)

	c1, err := ck.Commit(value, randomness)
	require.NoError(t, err)
	c2, err := ck.Commit(value.Copy(), randomness.Copy())
	require.NoError(t, err)
	require.True(t, c1.Equal(c2))

	other, err := SampleSmallVec(testRNG(t, 3), params.L, params.Eta)
	require.NoError(t, err)
	c3, err := ck.Commit(other, randomness)
	require.NoError(t, err)
	require.False(t, c1.Equal(c3))

	// the commitment is linear in value: Commit(v, r) - r = A*v
	av := ck.MulVector(value.NTT()).InvNTT()
	require.True(t, av.Equal(c1.Vector().Sub(randomness)))

	_, err = ck.Commit(NewPolyVec(params.L+1), randomness)
	require.Error(t, err)
	_, err = ck.Commit(value, NewPolyVec(params.K+1))
	require.Error(t, err)
	_, err = ck.Commit(nil, randomness)
	require.Error(t, err)
}

func TestKeyPairFromSeed_Deterministic(t *testing.T) {
	kp1 := testKeyPair(t, 1)
	kp2 := testKeyPair(t, 1)
	require.True(t, kp1.PublicKey().Equal(kp2.PublicKey()))
	require.Equal(t, kp1.SecretKey().Bytes(), kp2.SecretKey().Bytes())
	require.True(t, kp1.SecretKey().s1.Equal(kp2.SecretKey().s1))

	kp3 := testKeyPair(t, 2)
	require.False(t, kp1.PublicKey().Equal(kp3.PublicKey()))

	require.Same(t, kp1.PublicKey(), kp1.SecretKey().PublicKey())
	require.True(t, kp1.SecretKey().s1.CheckNorm(params.Eta))
	require.True(t, kp1.SecretKey().s2.CheckNorm(params.Eta))

	_, err := KeyPairFromSeed([]byte("short"))
	require.Error(t, err)
}

func TestKeyPair_PublicRelation(t *testing.T) {
	kp := testKeyPair(t, 4)
	sk := kp.SecretKey()
	ck, err := kp.PublicKey().CommitmentKey()
	require.NoError(t, err)
	// t = A*s1 + s2
	want := ck.MulVector(sk.s1.NTT()).InvNTT().Add(sk.s2)
	require.True(t, want.Equal(kp.PublicKey().T()))
}

func TestGenerateKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	require.NoError(t, kp.PublicKey().Validate())

	_, err = GenerateKeyPair(bytes.NewReader([]byte{1, 2, 3}))
	require.Error(t, err)
}

func TestPublicKey_Serialization(t *testing.T) {
	pk := testKeyPair(t, 5).PublicKey()

	compact := pk.Bytes()
	require.Len(t, compact, params.PublicKeyBytes)
	decoded, err := PublicKeyFromBytes(compact)
	require.NoError(t, err)
	require.True(t, decoded.Rounded())
	require.Equal(t, pk.Seed(), decoded.Seed())
	require.Equal(t, compact, decoded.Bytes())
	require.False(t, pk.Equal(decoded))

	full := pk.FullBytes()
	require.Len(t, full, params.PublicKeyFullBytes)
	lossless, err := PublicKeyFromFullBytes(full)
	require.NoError(t, err)
	require.False(t, lossless.Rounded())
	require.True(t, pk.Equal(lossless))

	_, err = PublicKeyFromBytes(compact[1:])
	require.ErrorIs(t, err, ErrInvalidPublicKey)
	_, err = PublicKeyFromFullBytes(full[1:])
	require.ErrorIs(t, err, ErrInvalidPublicKey)

	full[params.SeedBytes+2] = 0xFF
	_, err = PublicKeyFromFullBytes(full)
	var derr *DeserializationError
	require.ErrorAs(t, err, &derr)
}

func TestSecretKey_Serialization(t *testing.T) {
	kp := testKeyPair(t, 6)
	sk := kp.SecretKey()

	b := sk.Bytes()
	require.Len(t, b, params.SecretKeyBytes)
	decoded, err := SecretKeyFromBytes(b)
	require.NoError(t, err)
	require.True(t, sk.s1.Equal(decoded.s1))
	require.True(t, sk.s2.Equal(decoded.s2))
	require.True(t, decoded.PublicKey().Equal(kp.PublicKey()))
	require.True(t, decoded.MatchesPublicKey(kp.PublicKey()))

	rounded, err := PublicKeyFromBytes(kp.PublicKey().Bytes())
	require.NoError(t, err)
	require.True(t, decoded.MatchesPublicKey(rounded))
	require.False(t, decoded.MatchesPublicKey(testKeyPair(t, 7).PublicKey()))

	_, err = SecretKeyFromBytes(b[:100])
	require.ErrorIs(t, err, ErrInvalidSecretKey)

	b[params.SeedBytes] = 0xFF
	_, err = SecretKeyFromBytes(b)
	var derr *DeserializationError
	require.ErrorAs(t, err, &derr)
}

func TestSecretKey_Respond(t *testing.T) {
	sk := testKeyPair(t, 8).SecretKey()
	y, err := SampleMaskingVec(testRNG(t, 1))
	require.NoError(t, err)
	c := SampleChallenge([]byte("c"))

	z, err := sk.Respond(y, c)
	require.NoError(t, err)
	// ||c*s1|| <= Beta
	require.LessOrEqual(t, z.Sub(y).InfNorm(), int64(params.Beta))

	_, err = sk.Respond(NewPolyVec(params.K+1), c)
	require.Error(t, err)
}

func TestKeyPair_Destroy(t *testing.T) {
	kp := testKeyPair(t, 9)
	kp.Destroy()
	require.Zero(t, kp.SecretKey().s1.InfNorm())
	require.Zero(t, kp.SecretKey().s2.InfNorm())
	require.NoError(t, kp.PublicKey().Validate())
}

func TestKeyImage(t *testing.T) {
	kp0 := testKeyPair(t, 0)
	kp1 := testKeyPair(t, 1)

	ki0, err := NewKeyImage(kp0.SecretKey())
	require.NoError(t, err)
	again, err := NewKeyImage(kp0.SecretKey())
	require.NoError(t, err)
	require.True(t, ki0.Equal(again))

	ki1, err := NewKeyImage(kp1.SecretKey())
	require.NoError(t, err)
	require.False(t, ki0.Equal(ki1))

	// a secret key restored from bytes links to the same image
	restored, err := SecretKeyFromBytes(kp0.SecretKey().Bytes())
	require.NoError(t, err)
	ki0r, err := NewKeyImage(restored)
	require.NoError(t, err)
	require.Equal(t, ki0.Bytes(), ki0r.Bytes())

	b := ki0.Bytes()
	require.Len(t, b, params.KeyImageBytes)
	decoded, err := KeyImageFromBytes(b)
	require.NoError(t, err)
	require.True(t, ki0.Equal(decoded))
	require.Equal(t, b, decoded.Bytes())
	require.NoError(t, decoded.Validate())

	_, err = KeyImageFromBytes(b[2:])
	require.ErrorIs(t, err, ErrInvalidKeyImage)

	_, err = NewKeyImage(nil)
	require.ErrorIs(t, err, ErrInvalidSecretKey)
}
