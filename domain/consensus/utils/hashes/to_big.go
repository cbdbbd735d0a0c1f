package hashes

import (
	"math/big"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/holiman/uint256"
)

// ToBig converts a externalapi.DomainHash into a big.Int treated as a little endian string.
func ToBig(hash *externalapi.DomainHash) *big.Int {
	// A Hash is in little-endian, but the big package wants the bytes in
	// big-endian, so reverse them.
	buf := hash.ByteArray()
	reverse(buf)
	return new(big.Int).SetBytes(buf[:])
}

// ToUint256 converts a externalapi.DomainHash into a 256-bit integer treated as a little endian string.
func ToUint256(hash *externalapi.DomainHash) *uint256.Int {
	buf := hash.ByteArray()
	reverse(buf)
	return new(uint256.Int).SetBytes32(buf[:])
}

func reverse(buf *[externalapi.DomainHashSize]byte) {
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}
}
