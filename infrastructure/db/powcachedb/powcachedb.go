// Package powcachedb opens the database that backs the pow cache, in any of
// the supported storage engines, and guards its directory with a file lock.
package powcachedb

import (
	"os"
	"path/filepath"

	"github.com/Hoosat-Oy/heavypow/infrastructure/db/database"
	"github.com/Hoosat-Oy/heavypow/infrastructure/db/database/badger"
	"github.com/Hoosat-Oy/heavypow/infrastructure/db/database/ldb"
	"github.com/Hoosat-Oy/heavypow/infrastructure/db/database/pebble"
	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// Supported backends.
const (
	BackendLevelDB = "leveldb"
	BackendPebble  = "pebble"
	BackendBadger  = "badger"
)

// ErrLocked indicates another process already owns the pow cache directory.
var ErrLocked = errors.New("pow cache directory is locked by another process")

// Options describes how to open a pow cache database.
type Options struct {
	Path         string
	Backend      string
	CacheSizeMiB int
	// Memory keeps the database in memory only. Path is ignored.
	Memory bool
	// Wipe removes any existing database at Path before opening it.
	Wipe bool
}

// PoWCacheDB is a database.Database that also owns the lock on its directory.
type PoWCacheDB struct {
	database.Database
	fileLock *flock.Flock
}

// Open opens the pow cache database described by options.
func Open(options Options) (*PoWCacheDB, error) {
	if options.Memory {
		db, err := openMemory(options.Backend, options.CacheSizeMiB)
		if err != nil {
			return nil, err
		}
		log.Infof("Opened an in-memory %s pow cache", options.Backend)
		return &PoWCacheDB{Database: db}, nil
	}

	if options.Path == "" {
		return nil, errors.New("a pow cache path is required unless the cache is kept in memory")
	}
	err := os.MkdirAll(filepath.Dir(options.Path), 0700)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	fileLock := flock.New(lockPath(options.Path))
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to lock %s", fileLock.Path())
	}
	if !locked {
		return nil, errors.Wrapf(ErrLocked, "%s", options.Path)
	}

	if options.Wipe {
		log.Infof("Wiping the pow cache at %s", options.Path)
		err := os.RemoveAll(options.Path)
		if err != nil {
			_ = fileLock.Unlock()
			return nil, errors.WithStack(err)
		}
	}

	db, err := openPath(options.Backend, options.Path, options.CacheSizeMiB)
	if err != nil {
		_ = fileLock.Unlock()
		return nil, err
	}
	log.Infof("Opened the %s pow cache at %s", options.Backend, options.Path)
	return &PoWCacheDB{Database: db, fileLock: fileLock}, nil
}

func openPath(backend, path string, cacheSizeMiB int) (database.Database, error) {
	switch backend {
	case BackendLevelDB, "":
		return ldb.NewLevelDB(path, cacheSizeMiB)
	case BackendPebble:
		return pebble.NewPebbleDB(path, cacheSizeMiB)
	case BackendBadger:
		return badger.NewBadgerDB(path, cacheSizeMiB)
	default:
		return nil, errors.Errorf("unknown pow cache backend %q", backend)
	}
}

func openMemory(backend string, cacheSizeMiB int) (database.Database, error) {
	switch backend {
	case BackendLevelDB, "":
		return ldb.NewMemoryLevelDB(cacheSizeMiB)
	case BackendPebble:
		return pebble.NewMemoryPebbleDB(cacheSizeMiB)
	case BackendBadger:
		return badger.NewMemoryBadgerDB(cacheSizeMiB)
	default:
		return nil, errors.Errorf("unknown pow cache backend %q", backend)
	}
}

func lockPath(path string) string {
	return filepath.Clean(path) + ".lock"
}

// Close closes the database and releases the directory lock.
func (db *PoWCacheDB) Close() error {
	err := db.Database.Close()
	if db.fileLock != nil {
		unlockErr := db.fileLock.Unlock()
		if err == nil && unlockErr != nil {
			err = errors.WithStack(unlockErr)
		}
	}
	return err
}
