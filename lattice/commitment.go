package lattice

import (
	"errors"
	"fmt"

	"github.com/cryptosuite/lion/params"
)

// CommitmentKey is the public matrix A = ExpandA(seed), in NTT form.
//
// Commit(value, randomness) = A*value + randomness is binding under M-SIS and hiding under
// M-LWE when randomness is short. Public keys are commitments to s1 with blinding s2.
type CommitmentKey struct {
	seed [params.SeedBytes]byte
	a    *PolyNTTMatrix
}

// Commitment is a K-vector produced by CommitmentKey.Commit.
type Commitment struct {
	c *PolyVec
}

func NewCommitmentKey(seed []byte) (*CommitmentKey, error) {
	if len(seed) != params.SeedBytes {
		return nil, fmt.Errorf("NewCommitmentKey: seed has %d bytes, want %d", len(seed), params.SeedBytes)
	}
	ck := &CommitmentKey{}
	copy(ck.seed[:], seed)
	a, err := expandMatrixNTT(ck.seed)
	if err != nil {
		return nil, err
	}
	ck.a = a
	return ck, nil
}

// Seed returns a copy of the seed A was expanded from.
func (ck *CommitmentKey) Seed() []byte {
	rst := make([]byte, params.SeedBytes)
	copy(rst, ck.seed[:])
	return rst
}

// Commit returns A*value + randomness for an L-vector value and a K-vector randomness.
func (ck *CommitmentKey) Commit(value *PolyVec, randomness *PolyVec) (*Commitment, error) {
	if !isVecL(value) || !isVecK(randomness) {
		return nil, errors.New("Commit: value must be an L-vector and randomness a K-vector")
	}
	valueNTT := value.NTT()
	defer valueNTT.Zeroize()
	return &Commitment{c: ck.a.MulVector(valueNTT).InvNTT().Add(randomness)}, nil
}

// MulVector returns A*v for an L-vector v.
func (ck *CommitmentKey) MulVector(v *PolyNTTVec) *PolyNTTVec {
	return ck.a.MulVector(v)
}

// Vector returns a copy of the committed K-vector.
func (c *Commitment) Vector() *PolyVec {
	return c.c.Copy()
}

func (c *Commitment) Equal(o *Commitment) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.c.Equal(o.c)
}
