package pebble

import (
	"github.com/cockroachdb/pebble/v2"
	"github.com/cockroachdb/pebble/v2/vfs"
)

const defaultCacheSizeMiB = 4

// Options returns the pebble.Options used for pow-cache databases. The caller
// owns the returned cache reference and must Unref it once the DB is open.
// A nil fs keeps pebble's default on-disk filesystem.
func Options(cacheSizeMiB int, fs vfs.FS) *pebble.Options {
	if cacheSizeMiB <= 0 {
		cacheSizeMiB = defaultCacheSizeMiB
	}
	cacheSize := int64(cacheSizeMiB) * 1024 * 1024
	opts := &pebble.Options{
		Cache:                       pebble.NewCache(cacheSize),
		MemTableSize:                uint64(cacheSize),
		MemTableStopWritesThreshold: 4,
		L0CompactionThreshold:       4,
		L0StopWritesThreshold:       16,
		FS:                          fs,
	}
	opts.EnsureDefaults()
	return opts
}
