package ringsig

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cryptosuite/lion/lattice"
	"github.com/cryptosuite/lion/params"
)

// Sign produces a linkable ring signature on message by the member at realIndex, who must
// hold sk. rng supplies the masking and decoy randomness and must not be shared with
// concurrent signers without synchronization.
//
// Starting right after realIndex the signer walks the ring once: every other position gets a
// uniformly random response, and the challenge chain is closed at realIndex with
// z = y + c*s1. A candidate z that would leak s1 (norm too large, or HighBits of A*z - c*t
// not matching HighBits of A*y) is discarded and signing restarts with fresh y.
//
// The key image enters only the challenge transcript; no relation ties it to s1. A signer
// running modified code can attach any well-formed key image, so a spent set over honest
// signatures does not stop a malicious signer from spending twice.
func Sign(message []byte, ring Ring, realIndex int, sk *lattice.SecretKey, rng io.Reader) (*Signature, error) {
	n := ringSize(ring)
	if n != params.RingSize {
		return nil, &InvalidRingSizeError{Expected: params.RingSize, Got: n}
	}
	if realIndex < 0 || realIndex >= n {
		return nil, &IndexOutOfBoundsError{Index: realIndex, RingSize: n}
	}
	if sk == nil {
		return nil, lattice.ErrInvalidSecretKey
	}
	pks, err := members(ring)
	if err != nil {
		return nil, err
	}
	if !sk.MatchesPublicKey(pks[realIndex]) {
		return nil, fmt.Errorf("Sign: %w: secret key does not match ring member %d", lattice.ErrInvalidSecretKey, realIndex)
	}

	keyImage, err := lattice.NewKeyImage(sk)
	if err != nil {
		return nil, err
	}

	s := &signer{
		pks:       pks,
		realIndex: realIndex,
		sk:        sk,
		rng:       rng,
		tr:        newTranscript(message, pks, keyImage),
	}
	for attempt := 0; attempt < params.MaxRejectionIterations; attempt++ {
		responses, c0, ok, err := s.attempt()
		if err != nil {
			return nil, err
		}
		if ok {
			return &Signature{C0: c0, KeyImage: keyImage, Responses: responses}, nil
		}
	}
	return nil, fmt.Errorf("Sign: %w", lattice.ErrRejectionSampling)
}

type signer struct {
	pks       []*lattice.PublicKey
	realIndex int
	sk        *lattice.SecretKey
	rng       io.Reader
	tr        *transcript
}

// attempt runs one pass around the ring. ok is false when the real response was rejected.
func (s *signer) attempt() (responses []*Response, c0 *lattice.Poly, ok bool, err error) {
	n := len(s.pks)
	pi := s.realIndex

	y, err := lattice.SampleMaskingVec(s.rng)
	if err != nil {
		return nil, nil, false, err
	}
	defer y.Zeroize()

	ck, err := s.pks[pi].CommitmentKey()
	if err != nil {
		return nil, nil, false, err
	}
	yNTT := y.NTT()
	defer yNTT.Zeroize()
	w := ck.MulVector(yNTT).InvNTT()
	defer w.Zeroize()
	highW := w.HighBits()

	challenges := make([]*lattice.Poly, n)
	responses = make([]*Response, n)

	c := s.tr.challenge(pi, w)
	for step := 1; step < n; step++ {
		i := (pi + step) % n
		challenges[i] = c

		z, err := lattice.SampleResponseVec(s.rng)
		if err != nil {
			return nil, nil, false, err
		}
		responses[i] = &Response{Z: z}

		wi, err := commitment(s.pks[i], z, c)
		if err != nil {
			return nil, nil, false, err
		}
		c = s.tr.challenge(i, wi)
	}
	challenges[pi] = c

	z, err := s.sk.Respond(y, c)
	if err != nil {
		return nil, nil, false, err
	}
	if z.InfNorm() >= params.ResponseBound {
		z.Zeroize()
		return nil, nil, false, nil
	}
	wz, err := commitment(s.pks[pi], z, c)
	if err != nil {
		z.Zeroize()
		return nil, nil, false, err
	}
	if !bytes.Equal(wz.HighBits(), highW) {
		z.Zeroize()
		return nil, nil, false, nil
	}
	responses[pi] = &Response{Z: z}
	return responses, challenges[0], true, nil
}
