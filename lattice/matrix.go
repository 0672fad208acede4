package lattice

import (
	"fmt"
	"log"

	"github.com/cryptosuite/lion/internal/xof"
	"github.com/cryptosuite/lion/params"
	lru "github.com/hashicorp/golang-lru"
)

// matrixCacheSize covers a few dozen rings worth of distinct members.
const matrixCacheSize = 512

// matrixCache memoizes ExpandA(seed).NTT(). Cached matrices are shared and never mutated.
var matrixCache *lru.Cache

func init() {
	c, err := lru.New(matrixCacheSize)
	if err != nil {
		log.Panic("lattice: failed to build the matrix cache: ", err)
	}
	matrixCache = c
}

// ExpandA deterministically expands a 32-byte seed into a K x L matrix with coefficients
// uniform over Z_q. Entry (i, j) is read from cSHAKE128 under the expand domain, fed with
// seed || j || i.
func ExpandA(seed []byte) (*PolyMatrix, error) {
	if len(seed) != params.SeedBytes {
		return nil, fmt.Errorf("ExpandA: seed has %d bytes, want %d", len(seed), params.SeedBytes)
	}
	m := &PolyMatrix{rows: make([]*PolyVec, params.K)}
	for i := 0; i < params.K; i++ {
		row := &PolyVec{polys: make([]*Poly, params.L)}
		for j := 0; j < params.L; j++ {
			h := xof.New128(params.DomainExpand)
			h.Write(seed)
			h.Write([]byte{byte(j), byte(i)})
			p, err := sampleUniform(h)
			if err != nil {
				return nil, fmt.Errorf("ExpandA: entry (%d, %d): %w", i, j, err)
			}
			row.polys[j] = p
		}
		m.rows[i] = row
	}
	return m, nil
}

// expandMatrixNTT returns ExpandA(seed) in NTT form, served from the cache when possible.
func expandMatrixNTT(seed [params.SeedBytes]byte) (*PolyNTTMatrix, error) {
	if cached, ok := matrixCache.Get(seed); ok {
		return cached.(*PolyNTTMatrix), nil
	}
	m, err := ExpandA(seed[:])
	if err != nil {
		return nil, err
	}
	mNTT := m.NTT()
	matrixCache.Add(seed, mNTT)
	return mNTT, nil
}
