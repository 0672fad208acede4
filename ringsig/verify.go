package ringsig

import (
	"fmt"

	"github.com/cryptosuite/lion/lattice"
	"github.com/cryptosuite/lion/params"
)

// Verify checks sig on message against ring. Structural problems (ring size, response count,
// malformed members or signature parts) are reported as such; every cryptographic failure
// is ErrVerificationFailed.
//
// A valid signature proves that some ring member signed the message and the key image
// together. It does not prove that the key image was derived from that member's secret key.
func Verify(message []byte, ring Ring, sig *Signature) error {
	n := ringSize(ring)
	if n != params.RingSize {
		return &InvalidRingSizeError{Expected: params.RingSize, Got: n}
	}
	if sig == nil {
		return ErrInvalidSignature
	}
	if len(sig.Responses) != n {
		return fmt.Errorf("%w: %d responses for a ring of %d", ErrInvalidSignature, len(sig.Responses), n)
	}
	if err := sig.checkStructure(); err != nil {
		return err
	}
	pks, err := members(ring)
	if err != nil {
		return err
	}

	// cheap rejection before any ring arithmetic
	for _, r := range sig.Responses {
		if r.Z.InfNorm() >= params.ResponseBound {
			return ErrVerificationFailed
		}
	}

	tr := newTranscript(message, pks, sig.KeyImage)
	c := sig.C0
	for i := 0; i < n; i++ {
		w, err := commitment(pks[i], sig.Responses[i].Z, c)
		if err != nil {
			return err
		}
		c = tr.challenge(i, w)
	}

	if !c.Equal(sig.C0) {
		return ErrVerificationFailed
	}
	return nil
}

// KeyImageOf returns the linkability tag carried by sig.
func KeyImageOf(sig *Signature) (*lattice.KeyImage, error) {
	if sig == nil || sig.KeyImage == nil {
		return nil, ErrInvalidSignature
	}
	return sig.KeyImage, nil
}
