// Package blockheader implements the fixed 80-byte block header whose
// serialization is the input of both the light hash and HeavyHash.
package blockheader

import (
	"encoding/binary"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/hashes"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

// HeaderSize is the size of a serialized block header.
const HeaderSize = 4 + externalapi.DomainHashSize + externalapi.DomainHashSize + 4 + 4 + 4

const (
	versionOffset    = 0
	prevBlockOffset  = versionOffset + 4
	merkleRootOffset = prevBlockOffset + externalapi.DomainHashSize
	timestampOffset  = merkleRootOffset + externalapi.DomainHashSize
	bitsOffset       = timestampOffset + 4
	nonceOffset      = bitsOffset + 4
)

// ErrMalformedHeader indicates a serialized header of the wrong size.
var ErrMalformedHeader = errors.New("malformed block header")

// BlockHeader is a block header. All integers are serialized little-endian
// and hashes in their natural byte order.
type BlockHeader struct {
	Version       int32
	PrevBlockHash *externalapi.DomainHash
	MerkleRoot    *externalapi.DomainHash
	Timestamp     uint32
	Bits          uint32
	Nonce         uint32
}

var _ model.BlockHeaderView = (*BlockHeader)(nil)

// NewBlockHeader returns a new BlockHeader. Nil hashes are replaced with the zero hash.
func NewBlockHeader(version int32, prevBlockHash, merkleRoot *externalapi.DomainHash,
	timestamp, bits, nonce uint32) *BlockHeader {

	if prevBlockHash == nil {
		prevBlockHash = externalapi.NewZeroHash()
	}
	if merkleRoot == nil {
		merkleRoot = externalapi.NewZeroHash()
	}
	return &BlockHeader{
		Version:       version,
		PrevBlockHash: prevBlockHash,
		MerkleRoot:    merkleRoot,
		Timestamp:     timestamp,
		Bits:          bits,
		Nonce:         nonce,
	}
}

// Serialize returns the HeaderSize bytes of the header.
func (h *BlockHeader) Serialize() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[versionOffset:], uint32(h.Version))
	copy(buf[prevBlockOffset:merkleRootOffset], h.PrevBlockHash.ByteSlice())
	copy(buf[merkleRootOffset:timestampOffset], h.MerkleRoot.ByteSlice())
	binary.LittleEndian.PutUint32(buf[timestampOffset:], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[bitsOffset:], h.Bits)
	binary.LittleEndian.PutUint32(buf[nonceOffset:], h.Nonce)
	return buf
}

// Deserialize decodes a header from exactly HeaderSize bytes.
func Deserialize(buf []byte) (*BlockHeader, error) {
	if len(buf) != HeaderSize {
		return nil, errors.Wrapf(ErrMalformedHeader, "got %d bytes, want %d", len(buf), HeaderSize)
	}
	prevBlockHash, err := externalapi.NewDomainHashFromByteSlice(buf[prevBlockOffset:merkleRootOffset])
	if err != nil {
		return nil, err
	}
	merkleRoot, err := externalapi.NewDomainHashFromByteSlice(buf[merkleRootOffset:timestampOffset])
	if err != nil {
		return nil, err
	}
	return &BlockHeader{
		Version:       int32(binary.LittleEndian.Uint32(buf[versionOffset:])),
		PrevBlockHash: prevBlockHash,
		MerkleRoot:    merkleRoot,
		Timestamp:     binary.LittleEndian.Uint32(buf[timestampOffset:]),
		Bits:          binary.LittleEndian.Uint32(buf[bitsOffset:]),
		Nonce:         binary.LittleEndian.Uint32(buf[nonceOffset:]),
	}, nil
}

// PoWBytes returns the bytes hashed by the proof of work.
func (h *BlockHeader) PoWBytes() []byte {
	return h.Serialize()
}

// ParentHash returns the hash of the previous block.
func (h *BlockHeader) ParentHash() *externalapi.DomainHash {
	return h.PrevBlockHash
}

// LightHash returns the cheap digest of the header that keys the pow cache.
func (h *BlockHeader) LightHash() *externalapi.DomainLightHash {
	return hashes.LightHash(h.Serialize())
}

// BlockHash returns the hash identifying the block, which is its HeavyHash.
// It always hashes from scratch; use a PoWHasher to go through the caches.
func (h *BlockHeader) BlockHash() *externalapi.DomainHash {
	return pow.HeavyHash(h.Serialize(), h.PrevBlockHash)
}
