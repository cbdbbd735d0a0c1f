package externalapi

import "encoding/hex"

// DomainLightHashSize is the size of the cheap header digest used as a
// pow-cache lookup key.
const DomainLightHashSize = 20

// DomainLightHash is a cheap, non-consensus digest of a block header.
// It only identifies pow-cache entries and carries no security weight.
type DomainLightHash [DomainLightHashSize]byte

// String returns the light hash as a hexadecimal string.
func (hash DomainLightHash) String() string {
	return hex.EncodeToString(hash[:])
}
