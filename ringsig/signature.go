package ringsig

import (
	"fmt"

	"github.com/cryptosuite/lion/lattice"
	"github.com/cryptosuite/lion/params"
)

// Response is the L-vector z answered for one ring position.
type Response struct {
	Z *lattice.PolyVec
}

// Signature is a linkable ring signature. C0 is the challenge at ring position 0;
// every other challenge is re-derived during verification.
type Signature struct {
	C0        *lattice.Poly
	KeyImage  *lattice.KeyImage
	Responses []*Response
}

// Bytes returns c0 || key image || one full-width response per ring position.
func (sig *Signature) Bytes() ([]byte, error) {
	if err := sig.checkStructure(); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, params.PolyBytes+params.KeyImageBytes+len(sig.Responses)*params.ResponseBytes)
	buf = append(buf, sig.C0.Bytes()...)
	buf = append(buf, sig.KeyImage.Bytes()...)
	for _, r := range sig.Responses {
		buf = append(buf, r.Z.Bytes()...)
	}
	return buf, nil
}

// SignatureFromBytes decodes a signature over a ring of RingSize members.
func SignatureFromBytes(b []byte) (*Signature, error) {
	if len(b) != params.SignatureBytes {
		return nil, fmt.Errorf("SignatureFromBytes: %w: got %d bytes, want %d", ErrInvalidSignature, len(b), params.SignatureBytes)
	}

	c0, err := lattice.PolyFromBytes(b[:params.PolyBytes])
	if err != nil {
		return nil, fmt.Errorf("SignatureFromBytes: c0: %w", err)
	}
	off := params.PolyBytes
	ki, err := lattice.KeyImageFromBytes(b[off : off+params.KeyImageBytes])
	if err != nil {
		return nil, fmt.Errorf("SignatureFromBytes: key image: %w", err)
	}
	off += params.KeyImageBytes

	responses := make([]*Response, params.RingSize)
	for i := range responses {
		z, err := lattice.PolyVecFromBytes(b[off:off+params.ResponseBytes], params.L)
		if err != nil {
			return nil, fmt.Errorf("SignatureFromBytes: response %d: %w", i, err)
		}
		responses[i] = &Response{Z: z}
		off += params.ResponseBytes
	}
	return &Signature{C0: c0, KeyImage: ki, Responses: responses}, nil
}

// checkStructure rejects signatures with missing parts, so that later stages can index freely.
func (sig *Signature) checkStructure() error {
	if sig == nil || sig.C0 == nil {
		return ErrInvalidSignature
	}
	if err := sig.KeyImage.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	for i, r := range sig.Responses {
		if r == nil || r.Z == nil || r.Z.Len() != params.L {
			return fmt.Errorf("%w: malformed response %d", ErrInvalidSignature, i)
		}
	}
	return nil
}
