package lattice

import "errors"

var (
	// ErrInvalidPublicKey reports a public key encoding of the wrong length.
	ErrInvalidPublicKey = errors.New("lion: invalid public key")
	// ErrInvalidSecretKey reports a secret key encoding of the wrong length, or a secret key
	// that is unusable for the requested operation.
	ErrInvalidSecretKey = errors.New("lion: invalid secret key")
	// ErrInvalidKeyImage reports a key image encoding of the wrong length.
	ErrInvalidKeyImage = errors.New("lion: invalid key image")
	// ErrRejectionSampling reports a rejection loop that hit its iteration bound.
	// With a working CSPRNG this does not happen in practice.
	ErrRejectionSampling = errors.New("lion: rejection sampling exceeded its iteration bound")
)

// DeserializationError reports structurally invalid bytes inside a correctly sized encoding.
type DeserializationError struct {
	Reason string
}

func (e *DeserializationError) Error() string {
	return "lion: deserialization error: " + e.Reason
}
