package lattice

import (
	"fmt"

	"github.com/cryptosuite/lion/params"
)

// Bytes packs p at full width: 3 little-endian bytes per coefficient.
func (p *Poly) Bytes() []byte {
	buf := make([]byte, params.PolyBytes)
	packPolyFull(buf, p)
	return buf
}

// PolyFromBytes unpacks a full-width polynomial, rejecting any coefficient >= Q.
func PolyFromBytes(b []byte) (*Poly, error) {
	if len(b) != params.PolyBytes {
		return nil, &DeserializationError{Reason: fmt.Sprintf("polynomial has %d bytes, want %d", len(b), params.PolyBytes)}
	}
	return unpackPolyFull(b)
}

func packPolyFull(buf []byte, p *Poly) {
	for i, c := range p.coeffs {
		buf[3*i] = byte(c)
		buf[3*i+1] = byte(c >> 8)
		buf[3*i+2] = byte(c >> 16)
	}
}

func unpackPolyFull(buf []byte) (*Poly, error) {
	rst := NewPoly()
	for i := 0; i < params.N; i++ {
		c := uint64(buf[3*i]) | uint64(buf[3*i+1])<<8 | uint64(buf[3*i+2])<<16
		if c >= params.Q {
			return nil, &DeserializationError{Reason: fmt.Sprintf("coefficient %d out of range", i)}
		}
		rst.coeffs[i] = c
	}
	return rst, nil
}

// packPolyT10 drops the low TShift bits of every coefficient and packs the remaining
// 10 bits, 4 coefficients into 5 bytes.
func packPolyT10(buf []byte, p *Poly) {
	for i := 0; i < params.N/4; i++ {
		var t [4]uint64
		for j := 0; j < 4; j++ {
			t[j] = p.coeffs[4*i+j] >> params.TShift
		}
		buf[5*i+0] = byte(t[0])
		buf[5*i+1] = byte(t[0]>>8) | byte(t[1]<<2)
		buf[5*i+2] = byte(t[1]>>6) | byte(t[2]<<4)
		buf[5*i+3] = byte(t[2]>>4) | byte(t[3]<<6)
		buf[5*i+4] = byte(t[3] >> 2)
	}
}

// unpackPolyT10 restores the rounded coefficients t<<TShift. Every 10-bit value maps
// below Q, so the encoding has no invalid inputs.
func unpackPolyT10(buf []byte) *Poly {
	rst := NewPoly()
	for i := 0; i < params.N/4; i++ {
		b := buf[5*i : 5*i+5]
		t0 := (uint64(b[0]) | uint64(b[1])<<8) & 0x3FF
		t1 := (uint64(b[1])>>2 | uint64(b[2])<<6) & 0x3FF
		t2 := (uint64(b[2])>>4 | uint64(b[3])<<4) & 0x3FF
		t3 := (uint64(b[3])>>6 | uint64(b[4])<<2) & 0x3FF
		rst.coeffs[4*i+0] = t0 << params.TShift
		rst.coeffs[4*i+1] = t1 << params.TShift
		rst.coeffs[4*i+2] = t2 << params.TShift
		rst.coeffs[4*i+3] = t3 << params.TShift
	}
	return rst
}

// etaToBits maps a coefficient with centered value in [-Eta, Eta] to [0, 2*Eta]:
// c if c <= Eta, else 2*Eta+1-(Q-c).
func etaToBits(c uint64) uint64 {
	if c <= params.Eta {
		return c
	}
	return 2*params.Eta + 1 - (params.Q - c)
}

func bitsToEta(m uint64) uint64 {
	if m <= params.Eta {
		return m
	}
	return params.Q - (2*params.Eta + 1 - m)
}

// packPolyEta packs a short polynomial at 3 bits per coefficient, 8 coefficients into 3 bytes.
func packPolyEta(buf []byte, p *Poly) {
	for i := 0; i < params.N/8; i++ {
		var t uint32
		for j := 0; j < 8; j++ {
			t |= uint32(etaToBits(p.coeffs[8*i+j])) << (3 * j)
		}
		buf[3*i] = byte(t)
		buf[3*i+1] = byte(t >> 8)
		buf[3*i+2] = byte(t >> 16)
	}
}

func unpackPolyEta(buf []byte) (*Poly, error) {
	rst := NewPoly()
	for i := 0; i < params.N/8; i++ {
		t := uint32(buf[3*i]) | uint32(buf[3*i+1])<<8 | uint32(buf[3*i+2])<<16
		for j := 0; j < 8; j++ {
			m := uint64(t>>(3*j)) & 0x7
			if m > 2*params.Eta {
				return nil, &DeserializationError{Reason: fmt.Sprintf("secret coefficient %d out of range", 8*i+j)}
			}
			rst.coeffs[8*i+j] = bitsToEta(m)
		}
	}
	return rst, nil
}

// Bytes packs every entry of v at full width.
func (v *PolyVec) Bytes() []byte {
	buf := make([]byte, len(v.polys)*params.PolyBytes)
	for i, p := range v.polys {
		packPolyFull(buf[i*params.PolyBytes:], p)
	}
	return buf
}

// PolyVecFromBytes unpacks length full-width polynomials.
func PolyVecFromBytes(b []byte, length int) (*PolyVec, error) {
	if len(b) != length*params.PolyBytes {
		return nil, &DeserializationError{Reason: fmt.Sprintf("vector has %d bytes, want %d", len(b), length*params.PolyBytes)}
	}
	rst := &PolyVec{polys: make([]*Poly, length)}
	for i := 0; i < length; i++ {
		p, err := unpackPolyFull(b[i*params.PolyBytes : (i+1)*params.PolyBytes])
		if err != nil {
			return nil, err
		}
		rst.polys[i] = p
	}
	return rst, nil
}

func packVecT10(v *PolyVec) []byte {
	buf := make([]byte, len(v.polys)*params.PolyT10Bytes)
	for i, p := range v.polys {
		packPolyT10(buf[i*params.PolyT10Bytes:], p)
	}
	return buf
}

func unpackVecT10(b []byte, length int) *PolyVec {
	rst := &PolyVec{polys: make([]*Poly, length)}
	for i := 0; i < length; i++ {
		rst.polys[i] = unpackPolyT10(b[i*params.PolyT10Bytes : (i+1)*params.PolyT10Bytes])
	}
	return rst
}
