package badger

import (
	"os"

	"github.com/Hoosat-Oy/heavypow/infrastructure/db/database"
	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// BadgerDB defines a thin wrapper around BadgerDB.
type BadgerDB struct {
	db *badgerdb.DB
}

// NewBadgerDB opens a BadgerDB instance defined by the given path.
func NewBadgerDB(path string, cacheSizeMiB int) (*BadgerDB, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, errors.Wrapf(err, "failed to create badger directory %s", path)
	}
	db, err := badgerdb.Open(Options(path, cacheSizeMiB))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open badger at %s", path)
	}
	return &BadgerDB{db: db}, nil
}

// NewMemoryBadgerDB opens an in-memory BadgerDB instance.
func NewMemoryBadgerDB(cacheSizeMiB int) (*BadgerDB, error) {
	db, err := badgerdb.Open(Options("", cacheSizeMiB))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in-memory badger")
	}
	return &BadgerDB{db: db}, nil
}

// Compact flattens the LSM tree into a single level.
func (db *BadgerDB) Compact() error {
	err := db.db.Flatten(1)
	return errors.WithStack(err)
}

// Close closes the BadgerDB instance.
func (db *BadgerDB) Close() error {
	err := db.db.Close()
	return errors.WithStack(err)
}

// Put sets the value for the given key. It overwrites any previous value for that key.
func (db *BadgerDB) Put(key *database.Key, value []byte) error {
	err := db.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key.Bytes(), value)
	})
	return errors.WithStack(err)
}

// Get gets the value for the given key. It returns ErrNotFound if the given key does not exist.
func (db *BadgerDB) Get(key *database.Key) ([]byte, error) {
	var value []byte
	err := db.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key.Bytes())
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound, "key %s not found", key)
		}
		return nil, errors.WithStack(err)
	}
	return value, nil
}

// Has returns true if the database contains the given key.
func (db *BadgerDB) Has(key *database.Key) (bool, error) {
	err := db.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(key.Bytes())
		return err
	})
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return false, nil
		}
		return false, errors.WithStack(err)
	}
	return true, nil
}

// Delete deletes the value for the given key. Will not return an error if the key doesn't exist.
func (db *BadgerDB) Delete(key *database.Key) error {
	err := db.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(key.Bytes())
	})
	return errors.WithStack(err)
}
