package lattice

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/cryptosuite/lion/params"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/sha3"
)

// filterWithBound reads consecutive bitNumPerSample-bit little-endian samples from buf
// and keeps those in [0, bound], stopping after expectedCount accepted samples.
// bitNumPerSample must not exceed 56.
func filterWithBound(buf []byte, expectedCount int, bitNumPerSample int, bound int64) []int64 {
	rst := make([]int64, 0, expectedCount)
	mask := uint64(1)<<bitNumPerSample - 1

	var acc uint64
	accBits := 0
	for _, b := range buf {
		if len(rst) == expectedCount {
			break
		}
		acc |= uint64(b) << accBits
		accBits += 8
		for accBits >= bitNumPerSample && len(rst) < expectedCount {
			sample := int64(acc & mask)
			acc >>= bitNumPerSample
			accBits -= bitNumPerSample
			if sample <= bound {
				rst = append(rst, sample)
			}
		}
	}
	return rst
}

// sampleBounded draws N integers uniformly from [0, bound] using bitNumPerSample-bit
// rejection sampling over rng. It gives up after MaxRejectionIterations reads.
func sampleBounded(rng io.Reader, bitNumPerSample int, bound int64) ([]int64, error) {
	// expected bits consumed per accepted sample, rounded up
	expectedBitsPerSample := int(float64(bitNumPerSample)*(float64(uint64(1)<<bitNumPerSample)/float64(bound+1))) + 1

	sampled := make([]int64, 0, params.N)
	for round := 0; len(sampled) < params.N; round++ {
		if round >= params.MaxRejectionIterations {
			return nil, ErrRejectionSampling
		}
		need := params.N - len(sampled)
		buf := make([]byte, (need*expectedBitsPerSample+7)/8)
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, fmt.Errorf("sampleBounded: reading randomness: %w", err)
		}
		sampled = append(sampled, filterWithBound(buf, need, bitNumPerSample, bound)...)
		wipeBytes(buf)
	}
	return sampled, nil
}

// SampleSmall returns a polynomial with coefficients uniform over [-eta, eta].
func SampleSmall(rng io.Reader, eta int) (*Poly, error) {
	if eta <= 0 {
		return nil, fmt.Errorf("SampleSmall: eta must be positive, got %d", eta)
	}
	sampled, err := sampleBounded(rng, bits.Len(uint(2*eta)), int64(2*eta))
	if err != nil {
		return nil, err
	}
	rst := NewPoly()
	for i, s := range sampled {
		rst.coeffs[i] = reduceInt64(int64(eta) - s)
		sampled[i] = 0
	}
	return rst, nil
}

// SampleSmallVec returns length polynomials drawn by SampleSmall.
func SampleSmallVec(rng io.Reader, length int, eta int) (*PolyVec, error) {
	rst := &PolyVec{polys: make([]*Poly, length)}
	for i := 0; i < length; i++ {
		p, err := SampleSmall(rng, eta)
		if err != nil {
			rst.polys = rst.polys[:i]
			rst.Zeroize()
			return nil, err
		}
		rst.polys[i] = p
	}
	return rst, nil
}

// SampleMaskingVec returns an L-vector with coefficients uniform over [-(Gamma1-1), Gamma1].
// 2*Gamma1 = 2^18, so every 18-bit sample is accepted.
func SampleMaskingVec(rng io.Reader) (*PolyVec, error) {
	rst := &PolyVec{polys: make([]*Poly, params.L)}
	for i := 0; i < params.L; i++ {
		sampled, err := sampleBounded(rng, 18, 2*params.Gamma1-1)
		if err != nil {
			rst.polys = rst.polys[:i]
			rst.Zeroize()
			return nil, err
		}
		p := NewPoly()
		for j, s := range sampled {
			p.coeffs[j] = reduceInt64(params.Gamma1 - s)
			sampled[j] = 0
		}
		rst.polys[i] = p
	}
	return rst, nil
}

// SampleResponseVec returns an L-vector with coefficients uniform over
// [-(ResponseBound-1), ResponseBound-1], the distribution of an accepted real response.
func SampleResponseVec(rng io.Reader) (*PolyVec, error) {
	const bound = params.ResponseBound - 1
	rst := &PolyVec{polys: make([]*Poly, params.L)}
	for i := 0; i < params.L; i++ {
		sampled, err := sampleBounded(rng, 18, 2*bound)
		if err != nil {
			return nil, err
		}
		p := NewPoly()
		for j, s := range sampled {
			p.coeffs[j] = reduceInt64(s - bound)
		}
		rst.polys[i] = p
	}
	return rst, nil
}

// sampleUniform fills a polynomial with coefficients uniform over [0, Q) from an XOF,
// reading 23-bit candidates from 3-byte chunks.
func sampleUniform(x io.Reader) (*Poly, error) {
	rst := NewPoly()
	buf := make([]byte, 3*168)
	ctr := 0
	for round := 0; ctr < params.N; round++ {
		if round >= params.MaxRejectionIterations {
			return nil, ErrRejectionSampling
		}
		if _, err := io.ReadFull(x, buf); err != nil {
			return nil, fmt.Errorf("sampleUniform: %w", err)
		}
		for pos := 0; pos+3 <= len(buf) && ctr < params.N; pos += 3 {
			c := uint64(buf[pos]) | uint64(buf[pos+1])<<8 | uint64(buf[pos+2]&0x7F)<<16
			if c < params.Q {
				rst.coeffs[ctr] = c
				ctr++
			}
		}
	}
	return rst, nil
}

// SampleChallenge expands a seed into a challenge polynomial with exactly Tau
// coefficients in {-1, 1} and all others zero.
func SampleChallenge(seed []byte) *Poly {
	h := sha3.NewShake256()
	h.Write(seed)

	var signBytes [8]byte
	h.Read(signBytes[:])
	signs := binary.LittleEndian.Uint64(signBytes[:])

	rst := NewPoly()
	var b [1]byte
	for i := params.N - params.Tau; i < params.N; i++ {
		for {
			h.Read(b[:])
			if int(b[0]) <= i {
				break
			}
		}
		j := int(b[0])
		rst.coeffs[i] = rst.coeffs[j]
		if signs&1 == 1 {
			rst.coeffs[j] = params.Q - 1
		} else {
			rst.coeffs[j] = 1
		}
		signs >>= 1
	}
	return rst
}

// seededRNG is a ChaCha20 keystream exposed as an io.Reader.
type seededRNG struct {
	cipher *chacha20.Cipher
}

// NewSeededRNG returns a deterministic CSPRNG keyed by a 32-byte seed. Two readers with
// the same seed produce the same stream. The reader is not safe for concurrent use.
func NewSeededRNG(seed []byte) (io.Reader, error) {
	if len(seed) != chacha20.KeySize {
		return nil, fmt.Errorf("NewSeededRNG: seed has %d bytes, want %d", len(seed), chacha20.KeySize)
	}
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed, nonce[:])
	if err != nil {
		return nil, err
	}
	return &seededRNG{cipher: c}, nil
}

func (r *seededRNG) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}

func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
