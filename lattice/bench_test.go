package lattice

import (
	"bytes"
	"testing"

	"github.com/cryptosuite/lion/params"
)

func BenchmarkPolyMul(b *testing.B) {
	x := NewPolyFromInt64([]int64{1, -2, 3, 5, -8})
	y, err := SampleSmall(bytes.NewReader(bytes.Repeat([]byte{0x21}, 4096)), params.Eta)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Mul(y)
	}
}

func BenchmarkExpandA(b *testing.B) {
	seed := bytes.Repeat([]byte{7}, params.SeedBytes)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ExpandA(seed); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkKeyPairFromSeed(b *testing.B) {
	seed := make([]byte, params.SeedBytes)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		seed[0], seed[1] = byte(i), byte(i>>8)
		kp, err := KeyPairFromSeed(seed)
		if err != nil {
			b.Fatal(err)
		}
		kp.Destroy()
	}
}

func BenchmarkNewKeyImage(b *testing.B) {
	kp, err := KeyPairFromSeed(bytes.Repeat([]byte{1}, params.SeedBytes))
	if err != nil {
		b.Fatal(err)
	}
	defer kp.Destroy()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewKeyImage(kp.SecretKey()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSecretKeyFromBytes(b *testing.B) {
	kp, err := KeyPairFromSeed(bytes.Repeat([]byte{2}, params.SeedBytes))
	if err != nil {
		b.Fatal(err)
	}
	skBytes := kp.SecretKey().Bytes()
	kp.Destroy()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sk, err := SecretKeyFromBytes(skBytes)
		if err != nil {
			b.Fatal(err)
		}
		sk.Zeroize()
	}
}
