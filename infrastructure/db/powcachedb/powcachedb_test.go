package powcachedb

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/Hoosat-Oy/heavypow/infrastructure/db/database"
	"github.com/pkg/errors"
)

var testKey = database.MakeBucket(nil).Key(bytes.Repeat([]byte{0xab}, 20))

func TestOpenBackends(t *testing.T) {
	for _, backend := range []string{BackendLevelDB, BackendPebble, BackendBadger} {
		for _, memory := range []bool{false, true} {
			path := filepath.Join(t.TempDir(), "powcache")
			db, err := Open(Options{Path: path, Backend: backend, CacheSizeMiB: 4, Memory: memory})
			if err != nil {
				t.Fatalf("TestOpenBackends: %s (memory=%t): %+v", backend, memory, err)
			}
			if err := db.Put(testKey, bytes.Repeat([]byte{1}, 32)); err != nil {
				t.Fatalf("TestOpenBackends: %s (memory=%t): Put: %+v", backend, memory, err)
			}
			if exists, err := db.Has(testKey); err != nil || !exists {
				t.Fatalf("TestOpenBackends: %s (memory=%t): Has returned (%t, %v)", backend, memory, exists, err)
			}
			if err := db.Close(); err != nil {
				t.Fatalf("TestOpenBackends: %s (memory=%t): Close: %+v", backend, memory, err)
			}
		}
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Options{Path: filepath.Join(t.TempDir(), "powcache"), Backend: "rocksdb"})
	if err == nil {
		t.Fatalf("TestOpenUnknownBackend: expected an error")
	}
	_, err = Open(Options{Backend: "rocksdb", Memory: true})
	if err == nil {
		t.Fatalf("TestOpenUnknownBackend: expected an error in memory mode")
	}
}

func TestOpenLocksDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powcache")
	db, err := Open(Options{Path: path, Backend: BackendLevelDB})
	if err != nil {
		t.Fatalf("TestOpenLocksDirectory: %+v", err)
	}

	_, err = Open(Options{Path: path, Backend: BackendLevelDB})
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("TestOpenLocksDirectory: expected ErrLocked, got: %+v", err)
	}

	if err := db.Close(); err != nil {
		t.Fatalf("TestOpenLocksDirectory: Close: %+v", err)
	}
	db, err = Open(Options{Path: path, Backend: BackendLevelDB})
	if err != nil {
		t.Fatalf("TestOpenLocksDirectory: reopen after Close: %+v", err)
	}
	_ = db.Close()
}

func TestOpenWipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powcache")
	db, err := Open(Options{Path: path, Backend: BackendPebble})
	if err != nil {
		t.Fatalf("TestOpenWipe: %+v", err)
	}
	if err := db.Put(testKey, bytes.Repeat([]byte{1}, 32)); err != nil {
		t.Fatalf("TestOpenWipe: Put: %+v", err)
	}
	_ = db.Close()

	db, err = Open(Options{Path: path, Backend: BackendPebble})
	if err != nil {
		t.Fatalf("TestOpenWipe: reopen: %+v", err)
	}
	if exists, _ := db.Has(testKey); !exists {
		t.Fatalf("TestOpenWipe: entry lost without a wipe")
	}
	_ = db.Close()

	db, err = Open(Options{Path: path, Backend: BackendPebble, Wipe: true})
	if err != nil {
		t.Fatalf("TestOpenWipe: reopen with wipe: %+v", err)
	}
	defer db.Close()
	if exists, _ := db.Has(testKey); exists {
		t.Fatalf("TestOpenWipe: entry survived a wipe")
	}
}
