package ldb

import "github.com/syndtr/goleveldb/leveldb/opt"

// Options returns the leveldb opt.Options used for pow-cache databases.
// Entries are small fixed-size records read far more often than written.
func Options() opt.Options {
	return opt.Options{
		Compression:            opt.NoCompression,
		NoSync:                 true,
		WriteBuffer:            2 * opt.MiB,
		BlockCacheCapacity:     4 * opt.MiB,
		OpenFilesCacheCapacity: 64,
		BlockRestartInterval:   16,
	}
}
