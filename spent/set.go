// Package spent indexes the key images of accepted ring signatures, so that a second spend
// by the same secret key is detected regardless of which ring it hides in.
package spent

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/cryptosuite/lion/lattice"
	"github.com/google/btree"
	"go.uber.org/zap"
)

// ErrDoubleSpend reports a key image that is already in the set.
var ErrDoubleSpend = errors.New("spent: key image already spent")

const btreeDegree = 32

type entry struct {
	image  string
	height uint64
}

func lessEntry(a, b entry) bool {
	return a.image < b.image
}

// Set is an ordered set of serialized key images. Two signatures share a key image if and
// only if their serialized key images are equal, so the set keys on the bytes.
// A Set is safe for concurrent use.
type Set struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[entry]
	log  *zap.Logger
}

// NewSet returns an empty set. A nil logger is replaced by a no-op logger.
func NewSet(logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Set{
		tree: btree.NewG[entry](btreeDegree, lessEntry),
		log:  logger,
	}
}

// Add records ki as spent at height. It fails with ErrDoubleSpend if ki is already present,
// leaving the recorded height unchanged.
func (s *Set) Add(ki *lattice.KeyImage, height uint64) error {
	if err := ki.Validate(); err != nil {
		return err
	}
	e := entry{image: string(ki.Bytes()), height: height}

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.tree.Get(e); ok {
		s.log.Warn("double spend attempt",
			zap.String("keyImagePrefix", hex.EncodeToString([]byte(e.image[:8]))),
			zap.Uint64("spentAt", prev.height),
			zap.Uint64("height", height),
		)
		return fmt.Errorf("%w at height %d", ErrDoubleSpend, prev.height)
	}
	s.tree.ReplaceOrInsert(e)
	return nil
}

// Contains reports whether ki has been spent.
func (s *Set) Contains(ki *lattice.KeyImage) bool {
	if ki.Validate() != nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Has(entry{image: string(ki.Bytes())})
}

// Remove forgets ki, as needed when the block that spent it is rolled back.
// It reports whether ki was present.
func (s *Set) Remove(ki *lattice.KeyImage) bool {
	if ki.Validate() != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tree.Delete(entry{image: string(ki.Bytes())})
	return ok
}

// RemoveAbove forgets every key image spent above height and returns how many were removed.
func (s *Set) RemoveAbove(height uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var doomed []entry
	s.tree.Ascend(func(e entry) bool {
		if e.height > height {
			doomed = append(doomed, e)
		}
		return true
	})
	for _, e := range doomed {
		s.tree.Delete(e)
	}
	if len(doomed) > 0 {
		s.log.Info("rolled back spent key images", zap.Int("count", len(doomed)), zap.Uint64("height", height))
	}
	return len(doomed)
}

func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Len()
}

// Ascend calls fn with every serialized key image in byte order until fn returns false.
// fn must not modify the set.
func (s *Set) Ascend(fn func(image []byte, height uint64) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.tree.Ascend(func(e entry) bool {
		return fn([]byte(e.image), e.height)
	})
}
