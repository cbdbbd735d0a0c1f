package pow

import (
	"encoding/binary"
	"math/bits"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
)

// noCopy may be embedded into structs which must not be copied
// after the first use. It is flagged by go vet's copylocks checker.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// xoShiRo256PlusPlus is the xoshiro256++ generator that fills the HeavyHash
// matrix. Two generators never share a stream unless one was explicitly
// cloned from the other.
type xoShiRo256PlusPlus struct {
	_ noCopy

	s0 uint64
	s1 uint64
	s2 uint64
	s3 uint64
}

func newxoShiRo256PlusPlus(hash *externalapi.DomainHash) *xoShiRo256PlusPlus {
	x := &xoShiRo256PlusPlus{}
	x.Reset(hash)
	return x
}

// Reset reseeds the generator in place. Lane i is the i-th little-endian
// 64-bit word of the seed.
func (x *xoShiRo256PlusPlus) Reset(hash *externalapi.DomainHash) {
	hashArray := hash.ByteArray()
	x.s0 = binary.LittleEndian.Uint64(hashArray[:8])
	x.s1 = binary.LittleEndian.Uint64(hashArray[8:16])
	x.s2 = binary.LittleEndian.Uint64(hashArray[16:24])
	x.s3 = binary.LittleEndian.Uint64(hashArray[24:32])
}

// Clone returns an independent generator positioned at the same point of
// the stream.
func (x *xoShiRo256PlusPlus) Clone() *xoShiRo256PlusPlus {
	return &xoShiRo256PlusPlus{s0: x.s0, s1: x.s1, s2: x.s2, s3: x.s3}
}

func (x *xoShiRo256PlusPlus) Uint64() uint64 {
	res := bits.RotateLeft64(x.s0+x.s3, 23) + x.s0
	t := x.s1 << 17

	x.s2 ^= x.s0
	x.s3 ^= x.s1
	x.s1 ^= x.s2
	x.s0 ^= x.s3

	x.s2 ^= t
	x.s3 = bits.RotateLeft64(x.s3, 45)

	return res
}
