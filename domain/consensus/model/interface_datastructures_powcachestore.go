package model

import "github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"

// PoWCacheStore memoizes light hash to proof-of-work hash mappings
type PoWCacheStore interface {
	Have(lightHash *externalapi.DomainLightHash) bool
	Get(lightHash *externalapi.DomainLightHash) (*externalapi.DomainHash, bool)
	Put(lightHash *externalapi.DomainLightHash, powHash *externalapi.DomainHash)
	Hits() uint64
	Misses() uint64
	Close() error
}
