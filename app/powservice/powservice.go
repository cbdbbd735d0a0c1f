// Package powservice wires the proof-of-work components together and scopes
// them to the lifetime of the pow cache they share.
package powservice

import (
	"github.com/Hoosat-Oy/heavypow/domain/consensus/datastructures/powcachestore"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/processes/blockvalidator"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/processes/difficultymanager"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/processes/powhasher"
	"github.com/Hoosat-Oy/heavypow/domain/dagconfig"
	"github.com/Hoosat-Oy/heavypow/infrastructure/config"
	"github.com/Hoosat-Oy/heavypow/infrastructure/db/powcachedb"
	"github.com/pkg/errors"
)

// PoWService owns the pow cache and the components built on top of it.
// It is created once at startup and closed once at shutdown.
type PoWService struct {
	params *dagconfig.Params
	db     *powcachedb.PoWCacheDB
	store  model.PoWCacheStore

	powHasher         model.PoWHasher
	difficultyManager model.DifficultyManager
	blockValidator    model.BlockValidator
}

// New builds a PoWService from cfg. legacy is the retarget algorithm used
// before ASERT activates and may be nil on networks that never need it.
func New(cfg *config.Config, legacy model.LegacyDifficultyCalculator) (*PoWService, error) {
	params := cfg.NetParams()
	service := &PoWService{params: params}

	if cfg.NoPoWCache {
		log.Infof("The pow cache is disabled")
	} else {
		db, err := powcachedb.Open(powcachedb.Options{
			Path:         cfg.PoWCacheDir,
			Backend:      cfg.PoWCacheBackend,
			CacheSizeMiB: cfg.PoWCacheSizeMiB,
			Memory:       cfg.PoWCacheMemory,
			Wipe:         cfg.PoWCacheWipe,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to open the pow cache")
		}
		service.db = db
	}

	store, err := newStore(service.db, cfg.HotCacheSizeMiB)
	if err != nil {
		if service.db != nil {
			_ = service.db.Close()
		}
		return nil, err
	}
	service.store = store

	service.powHasher = powhasher.New(store, cfg.MatrixCacheSize)
	service.difficultyManager = difficultymanager.New(params, legacy)
	service.blockValidator = blockvalidator.New(params, service.difficultyManager, service.powHasher)

	log.Infof("Proof-of-work service started on %s", params.Name)
	return service, nil
}

func newStore(db *powcachedb.PoWCacheDB, hotCacheSizeMiB int) (model.PoWCacheStore, error) {
	if db == nil {
		return powcachestore.New(nil, 0)
	}
	return powcachestore.New(db, hotCacheSizeMiB)
}

// Params returns the network parameters the service validates against.
func (s *PoWService) Params() *dagconfig.Params {
	return s.params
}

// PoWHasher returns the cached HeavyHash hasher.
func (s *PoWService) PoWHasher() model.PoWHasher {
	return s.powHasher
}

// PoWCacheStore returns the pow cache.
func (s *PoWService) PoWCacheStore() model.PoWCacheStore {
	return s.store
}

// DifficultyManager returns the difficulty manager.
func (s *PoWService) DifficultyManager() model.DifficultyManager {
	return s.difficultyManager
}

// BlockValidator returns the proof-of-work and difficulty validator.
func (s *PoWService) BlockValidator() model.BlockValidator {
	return s.blockValidator
}

// Close shuts the hasher down and closes the pow cache database.
func (s *PoWService) Close() error {
	err := s.powHasher.Close()
	if s.db != nil {
		dbErr := s.db.Close()
		if err == nil {
			err = dbErr
		}
	}
	log.Infof("Proof-of-work service stopped")
	return err
}
