package powhasher

import (
	"sync"
	"sync/atomic"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/blockheader"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/hashes"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/lrucache"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

// DefaultMatrixCacheSize is the number of parents whose HeavyHash matrix is kept.
const DefaultMatrixCacheSize = 16

// statsLogInterval is how many lookups pass between cache statistics logs.
const statsLogInterval = 1000

type powHasher struct {
	store       model.PoWCacheStore
	matrixCache *lrucache.LRUCache

	lookups   atomic.Uint64
	closeOnce sync.Once
}

// New instantiates a new PoWHasher. store may be nil, in which case every
// header is hashed from scratch.
func New(store model.PoWCacheStore, matrixCacheSize int) model.PoWHasher {
	if matrixCacheSize <= 0 {
		matrixCacheSize = DefaultMatrixCacheSize
	}
	return &powHasher{
		store:       store,
		matrixCache: lrucache.New(matrixCacheSize, true),
	}
}

// ComputePoWHash returns the HeavyHash of header, going through the pow cache
// first. It panics if the header does not serialize to blockheader.HeaderSize bytes.
func (ph *powHasher) ComputePoWHash(header model.BlockHeaderView) *externalapi.DomainHash {
	headerBytes := header.PoWBytes()
	if len(headerBytes) != blockheader.HeaderSize {
		panic(errors.Errorf("ComputePoWHash called with a %d byte header, expected %d",
			len(headerBytes), blockheader.HeaderSize))
	}

	if ph.store == nil {
		return ph.matrix(header.ParentHash()).HeavyHash(headerBytes)
	}

	lightHash := hashes.LightHash(headerBytes)
	defer ph.logStats()
	if powHash, ok := ph.store.Get(lightHash); ok {
		log.Tracef("Pow cache hit for %s: %s", lightHash, powHash)
		return powHash
	}

	powHash := ph.matrix(header.ParentHash()).HeavyHash(headerBytes)
	ph.store.Put(lightHash, powHash)
	return powHash
}

// matrix returns the HeavyHash matrix for children of prevBlockHash,
// generating it on first use.
func (ph *powHasher) matrix(prevBlockHash *externalapi.DomainHash) *pow.Matrix {
	seed := pow.MatrixSeed(prevBlockHash)
	if matrix, ok := ph.matrixCache.Get(seed); ok {
		return matrix.(*pow.Matrix)
	}
	matrix := pow.GenerateMatrix(seed)
	ph.matrixCache.Add(seed, matrix)
	return matrix
}

func (ph *powHasher) logStats() {
	if ph.lookups.Add(1)%statsLogInterval != 0 {
		return
	}
	log.Debugf("cachehit %6d cachemiss %6d", ph.store.Hits(), ph.store.Misses())
}

// Close closes the pow cache store. Later calls do nothing.
func (ph *powHasher) Close() error {
	var err error
	ph.closeOnce.Do(func() {
		if ph.store == nil {
			return
		}
		log.Infof("Closing the pow cache (cachehit %d cachemiss %d, %d matrices cached)",
			ph.store.Hits(), ph.store.Misses(), ph.matrixCache.Len())
		err = ph.store.Close()
	})
	return err
}
