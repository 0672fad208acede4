package ringsig

import (
	"fmt"

	"github.com/cryptosuite/lion/lattice"
)

// Ring is an ordered set of candidate public keys. Any indexable container can serve
// as a ring by implementing this contract.
type Ring interface {
	// Size returns the number of members.
	Size() int
	// Get returns the member at index, or an *IndexOutOfBoundsError.
	Get(index int) (*lattice.PublicKey, error)
	// Validate checks that every member can take part in ring arithmetic.
	Validate() error
}

// PublicKeyRing is the slice-backed Ring.
type PublicKeyRing []*lattice.PublicKey

func (r PublicKeyRing) Size() int {
	return len(r)
}

func (r PublicKeyRing) Get(index int) (*lattice.PublicKey, error) {
	if index < 0 || index >= len(r) {
		return nil, &IndexOutOfBoundsError{Index: index, RingSize: len(r)}
	}
	return r[index], nil
}

// Validate rejects nil members and members decoded from the rounded public key encoding.
func (r PublicKeyRing) Validate() error {
	for i, pk := range r {
		if err := pk.Validate(); err != nil {
			return fmt.Errorf("ring member %d: %w", i, err)
		}
		if pk.Rounded() {
			return fmt.Errorf("ring member %d: %w: rounded encoding, full precision required", i, lattice.ErrInvalidPublicKey)
		}
	}
	return nil
}

// ringSize returns the number of members, treating a nil ring as empty.
func ringSize(ring Ring) int {
	if ring == nil {
		return 0
	}
	return ring.Size()
}

// members validates ring and returns its members in order.
func members(ring Ring) ([]*lattice.PublicKey, error) {
	if err := ring.Validate(); err != nil {
		return nil, err
	}
	pks := make([]*lattice.PublicKey, ring.Size())
	for i := range pks {
		pk, err := ring.Get(i)
		if err != nil {
			return nil, err
		}
		if err := pk.Validate(); err != nil {
			return nil, fmt.Errorf("ring member %d: %w", i, err)
		}
		pks[i] = pk
	}
	return pks, nil
}
