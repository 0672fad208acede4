package ringsig

import (
	"encoding/binary"
	"io"

	"github.com/cryptosuite/lion/internal/xof"
	"github.com/cryptosuite/lion/lattice"
	"github.com/cryptosuite/lion/params"
	"golang.org/x/crypto/sha3"
)

// transcript is the challenge hash H(message, ring, key image, i, commitment_i).
// The fixed prefix is absorbed once; each ring step clones the absorbed state.
type transcript struct {
	prefix sha3.ShakeHash
}

// newTranscript absorbs left_encode(len(message)) || message || every member's compact
// public key || key image. Sign and Verify must build it from identical inputs.
func newTranscript(message []byte, pks []*lattice.PublicKey, ki *lattice.KeyImage) *transcript {
	h := xof.New256(params.DomainChallenge)
	h.Write(xof.LeftEncode(uint64(len(message))))
	h.Write(message)
	for _, pk := range pks {
		h.Write(pk.Bytes())
	}
	h.Write(ki.Bytes())
	return &transcript{prefix: h}
}

// challenge derives the challenge for position index+1 from the commitment at position index.
func (tr *transcript) challenge(index int, w *lattice.PolyVec) *lattice.Poly {
	h := tr.prefix.Clone()
	var idx [2]byte
	binary.LittleEndian.PutUint16(idx[:], uint16(index))
	h.Write(idx[:])
	h.Write(w.HighBits())

	seed := make([]byte, params.SeedBytes)
	_, _ = io.ReadFull(h, seed)
	return lattice.SampleChallenge(seed)
}

// commitment computes w = A*z - c*t for a ring member, the relation shared by the simulated
// positions, the real signer's closing check and the verifier.
func commitment(pk *lattice.PublicKey, z *lattice.PolyVec, c *lattice.Poly) (*lattice.PolyVec, error) {
	ck, err := pk.CommitmentKey()
	if err != nil {
		return nil, err
	}
	az := ck.MulVector(z.NTT())
	ct := pk.T().NTT().ScaleMul(c.NTT())
	return az.Sub(ct).InvNTT(), nil
}
