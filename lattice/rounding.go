package lattice

import "github.com/cryptosuite/lion/params"

// decompose splits a in [0, Q) as a = a1*2*Gamma2 + a0 with a0 in (-Gamma2, Gamma2],
// except that the top bucket a - a0 = Q-1 folds to a1 = 0, a0 = a0 - 1.
func decompose(a uint64) (a1 uint64, a0 int64) {
	const alpha = 2 * params.Gamma2
	r0 := int64(a % alpha)
	if r0 > params.Gamma2 {
		r0 -= alpha
	}
	if int64(a)-r0 == params.Q-1 {
		return 0, r0 - 1
	}
	return uint64((int64(a) - r0) / alpha), r0
}

// HighBits returns the high-order part of every coefficient, one byte each.
func (p *Poly) HighBits() []byte {
	rst := make([]byte, params.PolyHighBitsBytes)
	for i, c := range p.coeffs {
		a1, _ := decompose(c)
		rst[i] = byte(a1)
	}
	return rst
}

// HighBits concatenates HighBits of every entry of v.
func (v *PolyVec) HighBits() []byte {
	rst := make([]byte, 0, len(v.polys)*params.PolyHighBitsBytes)
	for _, p := range v.polys {
		rst = append(rst, p.HighBits()...)
	}
	return rst
}
