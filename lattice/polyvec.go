package lattice

import "github.com/cryptosuite/lion/params"

// PolyVec is a vector of polynomials in coefficient form. Vectors of length L (secret and
// response vectors) and of length K (public and key-image vectors) share this type.
type PolyVec struct {
	polys []*Poly
}

type PolyNTTVec struct {
	polys []*PolyNTT
}

// PolyMatrix is a K x L matrix in coefficient form, always expanded from a seed.
type PolyMatrix struct {
	rows []*PolyVec
}

type PolyNTTMatrix struct {
	rows []*PolyNTTVec
}

func NewPolyVec(length int) *PolyVec {
	rst := &PolyVec{polys: make([]*Poly, length)}
	for i := range rst.polys {
		rst.polys[i] = NewPoly()
	}
	return rst
}

func NewPolyNTTVec(length int) *PolyNTTVec {
	rst := &PolyNTTVec{polys: make([]*PolyNTT, length)}
	for i := range rst.polys {
		rst.polys[i] = NewPolyNTT()
	}
	return rst
}

func (v *PolyVec) Len() int {
	return len(v.polys)
}

// Poly returns the i-th polynomial. The result aliases v.
func (v *PolyVec) Poly(i int) *Poly {
	return v.polys[i]
}

func (v *PolyVec) NTT() *PolyNTTVec {
	rst := &PolyNTTVec{polys: make([]*PolyNTT, len(v.polys))}
	for i, p := range v.polys {
		rst.polys[i] = p.NTT()
	}
	return rst
}

func (v *PolyNTTVec) InvNTT() *PolyVec {
	rst := &PolyVec{polys: make([]*Poly, len(v.polys))}
	for i, p := range v.polys {
		rst.polys[i] = p.InvNTT()
	}
	return rst
}

func (v *PolyVec) Add(b *PolyVec) *PolyVec {
	rst := &PolyVec{polys: make([]*Poly, len(v.polys))}
	for i := range v.polys {
		rst.polys[i] = v.polys[i].Add(b.polys[i])
	}
	return rst
}

func (v *PolyVec) Sub(b *PolyVec) *PolyVec {
	rst := &PolyVec{polys: make([]*Poly, len(v.polys))}
	for i := range v.polys {
		rst.polys[i] = v.polys[i].Sub(b.polys[i])
	}
	return rst
}

func (v *PolyNTTVec) Add(b *PolyNTTVec) *PolyNTTVec {
	rst := &PolyNTTVec{polys: make([]*PolyNTT, len(v.polys))}
	for i := range v.polys {
		rst.polys[i] = v.polys[i].Add(b.polys[i])
	}
	return rst
}

func (v *PolyNTTVec) Sub(b *PolyNTTVec) *PolyNTTVec {
	rst := &PolyNTTVec{polys: make([]*PolyNTT, len(v.polys))}
	for i := range v.polys {
		rst.polys[i] = v.polys[i].Sub(b.polys[i])
	}
	return rst
}

// ScaleMul multiplies every entry of v by the polynomial c.
func (v *PolyNTTVec) ScaleMul(c *PolyNTT) *PolyNTTVec {
	rst := &PolyNTTVec{polys: make([]*PolyNTT, len(v.polys))}
	for i := range v.polys {
		rst.polys[i] = c.Mul(v.polys[i])
	}
	return rst
}

// InnerProduct returns <v, b>.
func (v *PolyNTTVec) InnerProduct(b *PolyNTTVec) *PolyNTT {
	rst := NewPolyNTT()
	for i := range v.polys {
		rst = rst.Add(v.polys[i].Mul(b.polys[i]))
	}
	return rst
}

func (v *PolyVec) InfNorm() int64 {
	rst := int64(0)
	for _, p := range v.polys {
		if tmp := p.infNorm(); tmp > rst {
			rst = tmp
		}
	}
	return rst
}

// CheckNorm reports whether every coefficient of every entry is at most bound in absolute value.
func (v *PolyVec) CheckNorm(bound int64) bool {
	return v.InfNorm() <= bound
}

func (v *PolyVec) Equal(b *PolyVec) bool {
	if v == nil || b == nil {
		return v == b
	}
	if len(v.polys) != len(b.polys) {
		return false
	}
	eq := true
	for i := range v.polys {
		// no early exit
		eq = v.polys[i].Equal(b.polys[i]) && eq
	}
	return eq
}

func (v *PolyNTTVec) Equal(b *PolyNTTVec) bool {
	if v == nil || b == nil {
		return v == b
	}
	if len(v.polys) != len(b.polys) {
		return false
	}
	eq := true
	for i := range v.polys {
		eq = v.polys[i].Equal(b.polys[i]) && eq
	}
	return eq
}

func (v *PolyVec) Copy() *PolyVec {
	rst := &PolyVec{polys: make([]*Poly, len(v.polys))}
	for i, p := range v.polys {
		rst.polys[i] = p.Copy()
	}
	return rst
}

func (v *PolyVec) Zeroize() {
	if v == nil {
		return
	}
	for _, p := range v.polys {
		p.Zeroize()
	}
}

func (v *PolyNTTVec) Zeroize() {
	if v == nil {
		return
	}
	for _, p := range v.polys {
		p.Zeroize()
	}
}

// NTT converts every entry of the matrix to evaluation form.
func (m *PolyMatrix) NTT() *PolyNTTMatrix {
	rst := &PolyNTTMatrix{rows: make([]*PolyNTTVec, len(m.rows))}
	for i, row := range m.rows {
		rst.rows[i] = row.NTT()
	}
	return rst
}

// Entry returns A[i][j]. The result aliases m.
func (m *PolyMatrix) Entry(i, j int) *Poly {
	return m.rows[i].polys[j]
}

func (m *PolyMatrix) Equal(b *PolyMatrix) bool {
	if len(m.rows) != len(b.rows) {
		return false
	}
	for i := range m.rows {
		if !m.rows[i].Equal(b.rows[i]) {
			return false
		}
	}
	return true
}

// MulVector returns A*v for a matrix with len(v) columns.
func (m *PolyNTTMatrix) MulVector(v *PolyNTTVec) *PolyNTTVec {
	rst := &PolyNTTVec{polys: make([]*PolyNTT, len(m.rows))}
	for i, row := range m.rows {
		rst.polys[i] = row.InnerProduct(v)
	}
	return rst
}

// isVecL / isVecK guard exported entry points against vectors of the wrong rank.
func isVecL(v *PolyVec) bool {
	return v != nil && len(v.polys) == params.L && allPolys(v.polys)
}

func isVecK(v *PolyVec) bool {
	return v != nil && len(v.polys) == params.K && allPolys(v.polys)
}

func allPolys(polys []*Poly) bool {
	for _, p := range polys {
		if p == nil || len(p.coeffs) != params.N {
			return false
		}
	}
	return true
}
