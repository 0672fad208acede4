package xof

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/sha3"
)

// KMAC256 as specified in NIST SP 800-185 [1], built on cSHAKE256.
//
// [1] https://nvlpubs.nist.gov/nistpubs/SpecialPublications/NIST.SP.800-185.pdf

const (
	// 64 bits was selected for safety, SP 800-185 allows 32.
	kmacMinimumOutputSize = 8

	kmacFunctionName = "KMAC"
)

type kmac struct {
	sha3.ShakeHash
	outputLen int

	// initBlock is bytepad(encode_string(key)), kept so that Reset can restore the keyed state.
	initBlock []byte
}

// NewKMAC256 creates a KMAC256 instance keyed with key (at least 32 bytes),
// producing outputLen bytes under the customization string custom.
// It panics on a short key or output length, both of which are programming errors.
func NewKMAC256(key []byte, outputLen int, custom []byte) hash.Hash {
	if len(key) < 32 {
		panic("xof: KMAC256 key must not be smaller than the security strength")
	}
	if outputLen < kmacMinimumOutputSize {
		panic("xof: KMAC256 output length is too small")
	}

	k := &kmac{
		ShakeHash: sha3.NewCShake256([]byte(kmacFunctionName), custom),
		outputLen: outputLen,
	}
	k.initBlock = EncodeString(key)
	k.Write(bytepad(k.initBlock, k.BlockSize()))
	return k
}

func (k *kmac) Reset() {
	k.ShakeHash.Reset()
	k.Write(bytepad(k.initBlock, k.ShakeHash.BlockSize()))
}

func (k *kmac) BlockSize() int {
	return k.ShakeHash.BlockSize()
}

func (k *kmac) Size() int {
	return k.outputLen
}

// Sum appends the current tag to b. It does not change the underlying state.
func (k *kmac) Sum(b []byte) []byte {
	dup := k.ShakeHash.Clone()
	dup.Write(rightEncode(uint64(k.outputLen * 8)))
	tag := make([]byte, k.outputLen)
	dup.Read(tag)
	return append(b, tag...)
}

// bytepad, SP 800-185 section 2.3.3.
func bytepad(input []byte, w int) []byte {
	buf := make([]byte, 0, 9+len(input)+w)
	buf = append(buf, LeftEncode(uint64(w))...)
	buf = append(buf, input...)
	padlen := w - (len(buf) % w)
	return append(buf, make([]byte, padlen)...)
}

// LeftEncode encodes x so that it can be parsed unambiguously from the start of a string
// (SP 800-185 section 2.3.1).
func LeftEncode(x uint64) []byte {
	var b [9]byte
	binary.BigEndian.PutUint64(b[1:], x)
	i := byte(1)
	for i < 8 && b[i] == 0 {
		i++
	}
	b[i-1] = 9 - i
	return b[i-1:]
}

// rightEncode, SP 800-185 section 2.3.1.
func rightEncode(x uint64) []byte {
	var b [9]byte
	binary.BigEndian.PutUint64(b[:8], x)
	i := byte(0)
	for i < 7 && b[i] == 0 {
		i++
	}
	b[8] = 8 - i
	return b[i:]
}

// EncodeString returns left_encode(bitlen(s)) || s (SP 800-185 section 2.3.2).
func EncodeString(s []byte) []byte {
	enc := LeftEncode(uint64(len(s)) * 8)
	out := make([]byte, 0, len(enc)+len(s))
	out = append(out, enc...)
	return append(out, s...)
}
