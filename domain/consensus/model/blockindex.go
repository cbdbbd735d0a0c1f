package model

import "github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"

// BlockIndex is a read-only view of an accepted block's metadata, as kept by
// the chain-state collaborator.
type BlockIndex interface {
	Hash() *externalapi.DomainHash
	Height() uint64
	Timestamp() int64
	Bits() uint32
	MedianTimePast() int64

	// Parent returns the selected parent, or nil for genesis.
	Parent() BlockIndex
}

// BlockHeaderView is the part of a block header proof-of-work depends on.
type BlockHeaderView interface {
	// PoWBytes returns the exact serialized header layout that is hashed.
	PoWBytes() []byte
	ParentHash() *externalapi.DomainHash
}
