package lattice

import "github.com/cryptosuite/lion/params"

// Poly is an element of R_q in coefficient form. Every coefficient lies in [0, Q).
type Poly struct {
	coeffs []uint64
}

// PolyNTT is an element of R_q in evaluation (NTT) form.
type PolyNTT struct {
	coeffs []uint64
}

func NewPoly() *Poly {
	return &Poly{coeffs: make([]uint64, params.N)}
}

func NewPolyNTT() *PolyNTT {
	return &PolyNTT{coeffs: make([]uint64, params.N)}
}

// NewPolyFromInt64 builds a polynomial from signed coefficients, reducing each one mod Q.
// Missing trailing coefficients are zero; extra ones are ignored.
func NewPolyFromInt64(coeffs []int64) *Poly {
	rst := NewPoly()
	for i := 0; i < params.N && i < len(coeffs); i++ {
		rst.coeffs[i] = reduceInt64(coeffs[i])
	}
	return rst
}

// Coeff returns the centered representative of the i-th coefficient.
func (p *Poly) Coeff(i int) int64 {
	return centered(p.coeffs[i])
}

func reduceInt64(a int64) uint64 {
	r := a % params.Q
	if r < 0 {
		r += params.Q
	}
	return uint64(r)
}

// centered maps c in [0, Q) to its representative in [-(Q-1)/2, (Q-1)/2].
func centered(c uint64) int64 {
	if c > (params.Q-1)/2 {
		return int64(c) - params.Q
	}
	return int64(c)
}

func (p *Poly) infNorm() int64 {
	rst := int64(0)
	for _, c := range p.coeffs {
		v := centered(c)
		if v < 0 {
			v = -v
		}
		if v > rst {
			rst = v
		}
	}
	return rst
}

// InfNorm returns the largest absolute value among the centered coefficients.
func (p *Poly) InfNorm() int64 {
	return p.infNorm()
}

// CheckNorm reports whether every centered coefficient has absolute value at most bound.
func (p *Poly) CheckNorm(bound int64) bool {
	return p.infNorm() <= bound
}

// Equal runs in time independent of where the polynomials differ.
func (p *Poly) Equal(b *Poly) bool {
	if p == nil || b == nil {
		return p == b
	}
	return equalCoeffs(p.coeffs, b.coeffs)
}

func (p *PolyNTT) Equal(b *PolyNTT) bool {
	if p == nil || b == nil {
		return p == b
	}
	return equalCoeffs(p.coeffs, b.coeffs)
}

func equalCoeffs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	var diff uint64
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

func (p *Poly) Copy() *Poly {
	rst := NewPoly()
	copy(rst.coeffs, p.coeffs)
	return rst
}

// Zeroize overwrites every coefficient with zero.
func (p *Poly) Zeroize() {
	if p == nil {
		return
	}
	for i := range p.coeffs {
		p.coeffs[i] = 0
	}
}

func (p *PolyNTT) Zeroize() {
	if p == nil {
		return
	}
	for i := range p.coeffs {
		p.coeffs[i] = 0
	}
}
