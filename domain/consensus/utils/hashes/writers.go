package hashes

import (
	"hash"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// HashWriter is used to incrementally hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
// The used hash function is SHA3-256.
type HashWriter struct {
	inner hash.Hash
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.inner.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Write will always return (len(p), nil)
func (h HashWriter) Write(p []byte) (n int, err error) {
	return h.inner.Write(p)
}

// Finalize returns the resulting hash
func (h HashWriter) Finalize() *externalapi.DomainHash {
	var sum [externalapi.DomainHashSize]byte
	// This should prevent `Sum` for allocating an output buffer, by using the DomainHash buffer. we still copy because we don't want to rely on that.
	copy(sum[:], h.inner.Sum(sum[:0]))
	return externalapi.NewDomainHashFromByteArray(&sum)
}

// NewSHA3Writer returns a new HashWriter backed by SHA3-256, the hash used
// on both ends of HeavyHash and for deriving matrix seeds.
func NewSHA3Writer() HashWriter {
	return HashWriter{inner: sha3.New256()}
}

// SHA3 returns the SHA3-256 digest of data.
func SHA3(data []byte) *externalapi.DomainHash {
	sum := sha3.Sum256(data)
	return externalapi.NewDomainHashFromByteArray(&sum)
}

// LightHash returns the cheap 160-bit digest of data used to key the pow
// cache. It is BLAKE3 truncated to DomainLightHashSize bytes.
func LightHash(data []byte) *externalapi.DomainLightHash {
	hasher := blake3.New(externalapi.DomainLightHashSize, nil)
	// blake3.Hasher.Write never fails.
	_, _ = hasher.Write(data)
	var lightHash externalapi.DomainLightHash
	copy(lightHash[:], hasher.Sum(nil))
	return &lightHash
}
