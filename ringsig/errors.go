package ringsig

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSignature reports a signature encoding of the wrong length or a
	// structurally incomplete Signature value.
	ErrInvalidSignature = errors.New("lion: invalid signature")

	// ErrVerificationFailed is the only outcome of a signature that does not verify.
	// It carries no detail about which check failed.
	ErrVerificationFailed = errors.New("lion: ring signature verification failed")
)

// InvalidRingSizeError reports a ring whose length is not RingSize.
type InvalidRingSizeError struct {
	Expected int
	Got      int
}

func (e *InvalidRingSizeError) Error() string {
	return fmt.Sprintf("lion: invalid ring size: expected %d, got %d", e.Expected, e.Got)
}

// IndexOutOfBoundsError reports a signer index or ring access outside the ring.
type IndexOutOfBoundsError struct {
	Index    int
	RingSize int
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("lion: index %d out of bounds for ring of size %d", e.Index, e.RingSize)
}
