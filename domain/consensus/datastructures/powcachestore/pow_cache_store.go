package powcachestore

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/infrastructure/db/database"
	"github.com/allegro/bigcache/v3"
	"github.com/pkg/errors"
)

const (
	hotCacheShards     = 64
	hotCacheLifeWindow = 10 * time.Minute
	hotCacheEntrySize  = externalapi.DomainLightHashSize + externalapi.DomainHashSize
	// hotCacheEntryCost approximates the bytes bigcache spends per entry
	// once its headers are included.
	hotCacheEntryCost = 2 * hotCacheEntrySize
)

// bucket is the root bucket: keys are exactly the 20-byte light hash.
var bucket = database.MakeBucket(nil)

// powCacheStore represents a store of light hash to proof-of-work hash mappings
type powCacheStore struct {
	lock   sync.RWMutex
	db     database.Database
	hot    *bigcache.BigCache
	closed bool

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New instantiates a new PoWCacheStore over db. A nil db yields a store that
// always misses. hotCacheSizeMiB bounds the in-memory tier kept in front of
// the database; zero disables it.
func New(db database.Database, hotCacheSizeMiB int) (model.PoWCacheStore, error) {
	store := &powCacheStore{db: db}
	if db == nil {
		log.Infof("No pow cache database configured, every lookup will recompute HeavyHash")
	}

	if hotCacheSizeMiB > 0 {
		config := bigcache.DefaultConfig(hotCacheLifeWindow)
		config.Shards = hotCacheShards
		config.MaxEntriesInWindow = hotCacheSizeMiB * 1024 * 1024 / hotCacheEntryCost
		config.MaxEntrySize = hotCacheEntrySize
		config.HardMaxCacheSize = hotCacheSizeMiB
		config.Verbose = false

		hot, err := bigcache.New(context.Background(), config)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create the pow cache hot tier")
		}
		store.hot = hot
	}
	return store, nil
}

// Have returns whether a proof-of-work hash is cached for lightHash.
// It does not count towards the hit and miss counters.
func (pcs *powCacheStore) Have(lightHash *externalapi.DomainLightHash) bool {
	pcs.lock.RLock()
	defer pcs.lock.RUnlock()

	if pcs.closed {
		return false
	}
	if pcs.hot != nil {
		if _, err := pcs.hot.Get(hotKey(lightHash)); err == nil {
			return true
		}
	}
	if pcs.db == nil {
		return false
	}
	exists, err := pcs.db.Has(bucket.Key(lightHash[:]))
	if err != nil {
		log.Warnf("Failed to look up %s in the pow cache: %s", lightHash, err)
		return false
	}
	return exists
}

// Get returns the cached proof-of-work hash of lightHash, if any.
func (pcs *powCacheStore) Get(lightHash *externalapi.DomainLightHash) (*externalapi.DomainHash, bool) {
	powHash, ok := pcs.get(lightHash)
	if ok {
		pcs.hits.Add(1)
		cacheHits.Inc()
	} else {
		pcs.misses.Add(1)
		cacheMisses.Inc()
	}
	return powHash, ok
}

func (pcs *powCacheStore) get(lightHash *externalapi.DomainLightHash) (*externalapi.DomainHash, bool) {
	pcs.lock.RLock()
	defer pcs.lock.RUnlock()

	if pcs.closed {
		return nil, false
	}
	if pcs.hot != nil {
		powHashBytes, err := pcs.hot.Get(hotKey(lightHash))
		if err == nil {
			if powHash, err := externalapi.NewDomainHashFromByteSlice(powHashBytes); err == nil {
				return powHash, true
			}
		} else if !errors.Is(err, bigcache.ErrEntryNotFound) {
			log.Warnf("Failed to read %s from the pow cache hot tier: %s", lightHash, err)
		}
	}
	if pcs.db == nil {
		return nil, false
	}

	powHashBytes, err := pcs.db.Get(bucket.Key(lightHash[:]))
	if err != nil {
		if !database.IsNotFoundError(err) {
			log.Warnf("Failed to read %s from the pow cache: %s", lightHash, err)
		}
		return nil, false
	}
	powHash, err := externalapi.NewDomainHashFromByteSlice(powHashBytes)
	if err != nil {
		log.Warnf("Ignoring malformed pow cache entry %s: %s", lightHash, err)
		return nil, false
	}
	pcs.setHot(lightHash, powHash)
	return powHash, true
}

// Put caches powHash as the proof-of-work hash of lightHash. Failures are
// logged and otherwise ignored.
func (pcs *powCacheStore) Put(lightHash *externalapi.DomainLightHash, powHash *externalapi.DomainHash) {
	pcs.lock.RLock()
	defer pcs.lock.RUnlock()

	if pcs.closed {
		return
	}
	pcs.setHot(lightHash, powHash)
	if pcs.db == nil {
		return
	}
	err := pcs.db.Put(bucket.Key(lightHash[:]), powHash.ByteSlice())
	if err != nil {
		cacheWriteErrors.Inc()
		log.Warnf("Failed to write %s to the pow cache: %s", lightHash, err)
	}
}

func (pcs *powCacheStore) setHot(lightHash *externalapi.DomainLightHash, powHash *externalapi.DomainHash) {
	if pcs.hot == nil {
		return
	}
	err := pcs.hot.Set(hotKey(lightHash), powHash.ByteSlice())
	if err != nil {
		log.Debugf("Failed to write %s to the pow cache hot tier: %s", lightHash, err)
	}
}

// Hits returns the number of Get calls answered from the cache by this store.
func (pcs *powCacheStore) Hits() uint64 {
	return pcs.hits.Load()
}

// Misses returns the number of Get calls this store could not answer.
func (pcs *powCacheStore) Misses() uint64 {
	return pcs.misses.Load()
}

// Close releases the hot tier. The database is owned by the caller and is
// left open. A closed store always misses.
func (pcs *powCacheStore) Close() error {
	pcs.lock.Lock()
	defer pcs.lock.Unlock()

	if pcs.closed {
		return nil
	}
	pcs.closed = true
	if pcs.hot != nil {
		return errors.WithStack(pcs.hot.Close())
	}
	return nil
}

func hotKey(lightHash *externalapi.DomainLightHash) string {
	return string(lightHash[:])
}
