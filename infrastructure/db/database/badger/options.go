package badger

import (
	badgerdb "github.com/dgraph-io/badger/v3"
)

const defaultCacheSizeMiB = 4

// Options returns the badger options used for pow-cache databases.
// An empty path opens the store in memory.
func Options(path string, cacheSizeMiB int) badgerdb.Options {
	if cacheSizeMiB <= 0 {
		cacheSizeMiB = defaultCacheSizeMiB
	}
	var opts badgerdb.Options
	if path == "" {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badgerdb.DefaultOptions(path)
	}
	opts.SyncWrites = false
	opts.BlockCacheSize = int64(cacheSizeMiB) << 20
	opts.IndexCacheSize = int64(cacheSizeMiB) << 20
	opts.NumMemtables = 2
	opts.NumCompactors = 2
	opts.NumLevelZeroTables = 5
	opts.NumLevelZeroTablesStall = 10
	opts.Logger = badgerLogger{}
	return opts
}

// badgerLogger routes badger's internal logging into the BDGR subsystem.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{})   { log.Errorf(format, args...) }
func (badgerLogger) Warningf(format string, args ...interface{}) { log.Warnf(format, args...) }
func (badgerLogger) Infof(format string, args ...interface{})    { log.Debugf(format, args...) }
func (badgerLogger) Debugf(format string, args ...interface{})   { log.Tracef(format, args...) }
