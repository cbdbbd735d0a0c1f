package pebble

import (
	"context"
	"os"

	"github.com/Hoosat-Oy/heavypow/infrastructure/db/database"
	"github.com/cockroachdb/pebble/v2"
	"github.com/cockroachdb/pebble/v2/vfs"
	"github.com/pkg/errors"
)

// PebbleDB defines a thin wrapper around Pebble.
type PebbleDB struct {
	db *pebble.DB
}

// NewPebbleDB opens a Pebble instance defined by the given path.
// A corrupted store is removed and recreated empty.
func NewPebbleDB(path string, cacheSizeMiB int) (*PebbleDB, error) {
	return open(path, cacheSizeMiB, nil)
}

// NewMemoryPebbleDB opens a Pebble instance backed by an in-memory filesystem.
func NewMemoryPebbleDB(cacheSizeMiB int) (*PebbleDB, error) {
	return open("", cacheSizeMiB, vfs.NewMem())
}

func open(path string, cacheSizeMiB int, fs vfs.FS) (*PebbleDB, error) {
	options := Options(cacheSizeMiB, fs)
	defer options.Cache.Unref()

	db, err := pebble.Open(path, options)
	if err != nil {
		if !errors.Is(err, pebble.ErrCorruption) || fs != nil {
			return nil, errors.WithStack(err)
		}
		log.Warnf("Pebble corruption detected at %s: %v", path, err)
		log.Warnf("Removing corrupted DB at %s", path)
		if rmErr := os.RemoveAll(path); rmErr != nil {
			return nil, errors.Wrap(rmErr, "failed to remove corrupted DB")
		}
		db, err = pebble.Open(path, options)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create fresh DB after corruption")
		}
		log.Warnf("Created fresh Pebble DB at %s", path)
	}
	return &PebbleDB{db: db}, nil
}

// Compact compacts the Pebble instance (full range).
func (db *PebbleDB) Compact() error {
	err := db.db.Compact(context.Background(), nil, []byte{0xff, 0xff, 0xff, 0xff}, false)
	return errors.WithStack(err)
}

// Close closes the Pebble instance.
func (db *PebbleDB) Close() error {
	err := db.db.Close()
	return errors.WithStack(err)
}

// Put sets the value for the given key. It overwrites any previous value for that key.
func (db *PebbleDB) Put(key *database.Key, value []byte) error {
	err := db.db.Set(key.Bytes(), value, pebble.NoSync)
	return errors.WithStack(err)
}

// Get gets the value for the given key. It returns ErrNotFound if the given key does not exist.
func (db *PebbleDB) Get(key *database.Key) ([]byte, error) {
	data, closer, err := db.db.Get(key.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound, "key %s not found", key)
		}
		return nil, errors.WithStack(err)
	}
	valueCopy := append([]byte(nil), data...)
	if closeErr := closer.Close(); closeErr != nil {
		return nil, errors.WithStack(closeErr)
	}
	return valueCopy, nil
}

// Has returns true if the database contains the given key.
func (db *PebbleDB) Has(key *database.Key) (bool, error) {
	_, closer, err := db.db.Get(key.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}
		return false, errors.WithStack(err)
	}
	defer closer.Close()
	return true, nil
}

// Delete deletes the value for the given key. Will not return an error if the key doesn't exist.
func (db *PebbleDB) Delete(key *database.Key) error {
	err := db.db.Delete(key.Bytes(), pebble.NoSync)
	return errors.WithStack(err)
}
