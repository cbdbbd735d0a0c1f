package model

import "github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"

// PoWHasher computes the proof-of-work hash of block headers
type PoWHasher interface {
	ComputePoWHash(header BlockHeaderView) *externalapi.DomainHash
	Close() error
}
