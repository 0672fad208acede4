// Package params holds the single parameter set shared by every Lion component.
// Nothing outside this package redeclares a modulus, a dimension or a byte size.
package params

const (
	// N is the degree of the ring R_q = Z_q[X]/(X^N+1).
	N = 256
	// Q = 2^23 - 2^13 + 1, so that 2N | Q-1 and R_q admits a full negacyclic NTT.
	Q = 8380417

	// K is the rank of the public vector t, L the rank of the secret vector s1.
	K = 4
	L = 4

	// Eta bounds the secret coefficients: ||s1||, ||s2|| <= Eta.
	Eta = 2
	// Tau is the number of +-1 coefficients of a challenge polynomial.
	Tau = 39
	// Gamma1 bounds the masking vector y.
	Gamma1 = 1 << 17
	// Gamma2 is the low-order rounding range used by HighBits.
	Gamma2 = (Q - 1) / 88
	// Beta bounds ||c*s1|| and ||c*s2|| for a challenge c.
	Beta = Tau * Eta

	// ResponseBound is the exclusive bound on ||z||: every response must satisfy ||z|| < ResponseBound.
	ResponseBound = Gamma1 - Beta

	// RingSize is the fixed number of public keys in every ring.
	RingSize = 7

	// MaxRejectionIterations bounds every rejection loop, sampler rounds and signing attempts alike.
	MaxRejectionIterations = 256
)

// Byte sizes.
const (
	SeedBytes = 32

	// PolyBytes is a polynomial packed at full width, 3 bytes per coefficient.
	PolyBytes = N * 3
	// PolyT10Bytes is a polynomial rounded by TShift bits and packed at 10 bits per coefficient.
	PolyT10Bytes = N * 10 / 8
	// PolyEtaBytes is a polynomial with coefficients in [-Eta, Eta] packed at 3 bits per coefficient.
	PolyEtaBytes = N * 3 / 8
	// PolyHighBitsBytes is HighBits of a polynomial, one byte per coefficient.
	PolyHighBitsBytes = N

	// TShift is the number of low-order bits dropped when t (or a key image) is packed.
	TShift = 13

	PublicKeyBytes     = SeedBytes + K*PolyT10Bytes
	PublicKeyFullBytes = SeedBytes + K*PolyBytes
	SecretKeyBytes     = SeedBytes + (L+K)*PolyEtaBytes
	KeyImageBytes      = K * PolyT10Bytes
	ResponseBytes      = L * PolyBytes
	SignatureBytes     = PolyBytes + KeyImageBytes + RingSize*ResponseBytes
)

// Domain separation strings. Each one customizes its own cSHAKE instance, so no two
// derivations can collide even on identical input bytes.
const (
	DomainKeyGen      = "lion-keygen-v1"
	DomainExpand      = "lion-expand-v1"
	DomainKeyImage    = "lion-keyimage-v1"
	DomainChallenge   = "lion-challenge-v1"
	DomainVerifyCache = "lion-verifycache-v1"
)
