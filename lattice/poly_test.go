package lattice

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/cryptosuite/lion/internal/xof"
	"github.com/cryptosuite/lion/params"
	"github.com/stretchr/testify/require"
)

// schoolbookMul multiplies in Z_q[X]/(X^N+1) without the NTT.
func schoolbookMul(a, b *Poly) *Poly {
	res := make([]int64, 2*params.N)
	bigQ := big.NewInt(params.Q)
	for i := 0; i < params.N; i++ {
		for j := 0; j < params.N; j++ {
			prod := new(big.Int).Mul(big.NewInt(int64(a.coeffs[i])), big.NewInt(int64(b.coeffs[j])))
			prod.Mod(prod, bigQ)
			res[i+j] = (res[i+j] + prod.Int64()) % params.Q
		}
	}
	rst := NewPoly()
	for i := 0; i < params.N; i++ {
		rst.coeffs[i] = reduceInt64(res[i] - res[i+params.N])
	}
	return rst
}

func testUniformPoly(t *testing.T, label string) *Poly {
	h := xof.New128("lion-test")
	h.Write([]byte(label))
	p, err := sampleUniform(h)
	require.NoError(t, err)
	return p
}

func TestPoly_MulMatchesSchoolbook(t *testing.T) {
	a := testUniformPoly(t, "a")
	b := testUniformPoly(t, "b")
	require.True(t, schoolbookMul(a, b).Equal(a.Mul(b)))

	// X * X^(N-1) = X^N = -1
	x := NewPolyFromInt64([]int64{0, 1})
	xn1 := NewPoly()
	xn1.coeffs[params.N-1] = 1
	require.True(t, NewPolyFromInt64([]int64{-1}).Equal(x.Mul(xn1)))
}

func TestPoly_NTTRoundTrip(t *testing.T) {
	a := testUniformPoly(t, "roundtrip")
	require.True(t, a.Equal(a.NTT().InvNTT()))

	b := testUniformPoly(t, "other")
	sum := a.NTT().Add(b.NTT()).InvNTT()
	require.True(t, a.Add(b).Equal(sum))
	diff := a.NTT().Sub(b.NTT()).InvNTT()
	require.True(t, a.Sub(b).Equal(diff))
}

func TestPoly_AddSubNeg(t *testing.T) {
	a := testUniformPoly(t, "x")
	b := testUniformPoly(t, "y")
	require.True(t, a.Equal(a.Add(b).Sub(b)))
	require.True(t, NewPoly().Equal(a.Add(a.Neg())))
	require.True(t, a.Add(a).Equal(a.ScalarMul(2)))
	require.True(t, a.Neg().Equal(a.ScalarMul(params.Q-1)))
	for _, c := range a.Neg().coeffs {
		require.Less(t, c, uint64(params.Q))
	}
}

func TestPoly_Norm(t *testing.T) {
	p := NewPolyFromInt64([]int64{2, -2, 1, 0, -1})
	require.Equal(t, int64(2), p.InfNorm())
	require.True(t, p.CheckNorm(2))
	require.False(t, p.CheckNorm(1))
	require.Equal(t, int64(-2), p.Coeff(1))

	q := NewPolyFromInt64([]int64{(params.Q - 1) / 2, -(params.Q - 1) / 2})
	require.Equal(t, int64((params.Q-1)/2), q.InfNorm())
}

func TestPoly_FullPacking(t *testing.T) {
	a := testUniformPoly(t, "pack")
	b := a.Bytes()
	require.Len(t, b, params.PolyBytes)
	got, err := PolyFromBytes(b)
	require.NoError(t, err)
	require.True(t, a.Equal(got))

	// Q itself is out of range
	q := uint32(params.Q)
	b[0], b[1], b[2] = byte(q), byte(q>>8), byte(q>>16)
	_, err = PolyFromBytes(b)
	var derr *DeserializationError
	require.ErrorAs(t, err, &derr)

	_, err = PolyFromBytes(b[:10])
	require.ErrorAs(t, err, &derr)
}

func TestPoly_T10Packing(t *testing.T) {
	v := &PolyVec{polys: []*Poly{testUniformPoly(t, "t0"), testUniformPoly(t, "t1")}}
	packed := packVecT10(v)
	require.Len(t, packed, 2*params.PolyT10Bytes)

	unpacked := unpackVecT10(packed, 2)
	for i := range v.polys {
		for j := 0; j < params.N; j++ {
			orig := v.polys[i].coeffs[j]
			got := unpacked.polys[i].coeffs[j]
			require.LessOrEqual(t, got, orig)
			require.Less(t, orig-got, uint64(1)<<params.TShift)
		}
	}
	require.True(t, bytes.Equal(packed, packVecT10(unpacked)))
}

func TestPoly_EtaPacking(t *testing.T) {
	p := NewPolyFromInt64([]int64{0, 1, 2, -1, -2, 2, -2, 1, -1})
	buf := make([]byte, params.PolyEtaBytes)
	packPolyEta(buf, p)
	got, err := unpackPolyEta(buf)
	require.NoError(t, err)
	require.True(t, p.Equal(got))

	// a 3-bit value of 7 maps to nothing
	buf[0] |= 0x07
	_, err = unpackPolyEta(buf)
	var derr *DeserializationError
	require.ErrorAs(t, err, &derr)
}

func TestPoly_HighBits(t *testing.T) {
	const alpha = 2 * params.Gamma2
	for _, a := range []uint64{0, 1, params.Gamma2, params.Gamma2 + 1, alpha, params.Q - 1, params.Q - params.Gamma2, 4190208, 12345} {
		a1, a0 := decompose(a)
		require.LessOrEqual(t, a1, uint64((params.Q-1)/alpha-1))
		require.LessOrEqual(t, a0, int64(params.Gamma2))
		require.GreaterOrEqual(t, a0, int64(-params.Gamma2))
		require.Equal(t, a, reduceInt64(int64(a1)*alpha+a0), "a=%d", a)
	}
	p := testUniformPoly(t, "hb")
	require.Len(t, p.HighBits(), params.PolyHighBitsBytes)
}
