package lattice

import (
	"log"

	"github.com/cryptosuite/lion/params"
	"github.com/tuneinsight/lattigo/v4/ring"
)

// ringQ is the negacyclic ring Z_q[X]/(X^N+1) with a single NTT-friendly modulus.
// Every arithmetic routine in this package runs on it; it is never mutated after init.
var ringQ *ring.Ring

func init() {
	r, err := ring.NewRing(params.N, []uint64{params.Q})
	if err != nil {
		log.Panic("lattice: failed to build the polynomial ring: ", err)
	}
	ringQ = r
}

// view exposes a coefficient slice as a single-level lattigo polynomial without copying.
func view(coeffs []uint64) *ring.Poly {
	return &ring.Poly{Coeffs: [][]uint64{coeffs}}
}

// normalize brings every coefficient into [0, Q).
func normalize(coeffs []uint64) {
	for i := range coeffs {
		if coeffs[i] >= params.Q {
			coeffs[i] %= params.Q
		}
	}
}

// NTT returns the evaluation form of p.
func (p *Poly) NTT() *PolyNTT {
	rst := NewPolyNTT()
	copy(rst.coeffs, p.coeffs)
	ringQ.NTT(view(rst.coeffs), view(rst.coeffs))
	normalize(rst.coeffs)
	return rst
}

// InvNTT returns the coefficient form of p.
func (p *PolyNTT) InvNTT() *Poly {
	rst := NewPoly()
	copy(rst.coeffs, p.coeffs)
	ringQ.InvNTT(view(rst.coeffs), view(rst.coeffs))
	normalize(rst.coeffs)
	return rst
}

// Mul returns the pointwise product a*b, i.e. the NTT of the negacyclic convolution.
func (p *PolyNTT) Mul(b *PolyNTT) *PolyNTT {
	// MulCoeffsMontgomery divides by 2^64, so one operand is lifted into Montgomery form first.
	aMont := NewPolyNTT()
	ringQ.MForm(view(p.coeffs), view(aMont.coeffs))
	rst := NewPolyNTT()
	ringQ.MulCoeffsMontgomery(view(aMont.coeffs), view(b.coeffs), view(rst.coeffs))
	normalize(rst.coeffs)
	return rst
}

func (p *PolyNTT) Add(b *PolyNTT) *PolyNTT {
	rst := NewPolyNTT()
	ringQ.Add(view(p.coeffs), view(b.coeffs), view(rst.coeffs))
	normalize(rst.coeffs)
	return rst
}

func (p *PolyNTT) Sub(b *PolyNTT) *PolyNTT {
	rst := NewPolyNTT()
	ringQ.Sub(view(p.coeffs), view(b.coeffs), view(rst.coeffs))
	normalize(rst.coeffs)
	return rst
}

// Mul returns the product of p and b in R_q, computed through the NTT.
func (p *Poly) Mul(b *Poly) *Poly {
	return p.NTT().Mul(b.NTT()).InvNTT()
}

func (p *Poly) Add(b *Poly) *Poly {
	rst := NewPoly()
	ringQ.Add(view(p.coeffs), view(b.coeffs), view(rst.coeffs))
	normalize(rst.coeffs)
	return rst
}

func (p *Poly) Sub(b *Poly) *Poly {
	rst := NewPoly()
	ringQ.Sub(view(p.coeffs), view(b.coeffs), view(rst.coeffs))
	normalize(rst.coeffs)
	return rst
}

func (p *Poly) Neg() *Poly {
	rst := NewPoly()
	ringQ.Neg(view(p.coeffs), view(rst.coeffs))
	normalize(rst.coeffs)
	return rst
}

// ScalarMul returns s*p for a scalar s taken mod Q.
func (p *Poly) ScalarMul(s uint64) *Poly {
	rst := NewPoly()
	ringQ.MulScalar(view(p.coeffs), s%params.Q, view(rst.coeffs))
	normalize(rst.coeffs)
	return rst
}
