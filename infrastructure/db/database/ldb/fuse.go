package ldb

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// ConflictStrategy defines how to handle key collisions when fusing databases.
type ConflictStrategy int

const (
	// Overwrite means keys from later sources overwrite existing values in dest.
	Overwrite ConflictStrategy = iota
	// KeepExisting means existing keys in dest are preserved; conflicting source keys are skipped.
	KeepExisting
)

// String implements fmt.Stringer for ConflictStrategy for readable logs.
func (s ConflictStrategy) String() string {
	switch s {
	case Overwrite:
		return "Overwrite"
	case KeepExisting:
		return "KeepExisting"
	default:
		return fmt.Sprintf("ConflictStrategy(%d)", int(s))
	}
}

// FuseOptions controls the behavior of FuseLevelDB.
type FuseOptions struct {
	// CacheSizeMiB sets the cache and write buffer sizing for opened DBs.
	// Zero keeps the defaults from Options().
	CacheSizeMiB int
	// BatchSize controls how many KV pairs are written per batch.
	BatchSize int
	// Strategy controls how to resolve key collisions.
	Strategy ConflictStrategy
	// CompactAfter compacts the destination DB after a successful fuse.
	CompactAfter bool
	// KeySize and ValueSize, when non-zero, restrict the fuse to entries of
	// exactly that shape. Anything else is counted as malformed and skipped.
	KeySize   int
	ValueSize int
	// ProgressInterval is how often the heartbeat logs progress.
	ProgressInterval time.Duration
}

// FuseStats reports what a fuse did.
type FuseStats struct {
	Written   int64
	Skipped   int64
	Malformed int64
}

func (o *FuseOptions) setDefaults() {
	if o.BatchSize <= 0 {
		o.BatchSize = 10_000
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = 2 * time.Second
	}
}

func (o *FuseOptions) accepts(key, value []byte) bool {
	if o.KeySize > 0 && len(key) != o.KeySize {
		return false
	}
	if o.ValueSize > 0 && len(value) != o.ValueSize {
		return false
	}
	return true
}

// FuseLevelDB merges one or more source LevelDB databases into a destination
// LevelDB database. Order of sourcePaths matters for the Overwrite strategy:
// later sources take precedence. It returns on the first unrecoverable error.
func FuseLevelDB(destPath string, sourcePaths []string, opts FuseOptions) (*FuseStats, error) {
	opts.setDefaults()

	if len(sourcePaths) == 0 {
		return nil, errors.New("no source paths provided")
	}

	absDest, _ := filepath.Abs(destPath)

	dest, err := NewLevelDB(destPath, opts.CacheSizeMiB)
	if err != nil {
		return nil, errors.Wrap(err, "open destination leveldb")
	}
	defer func() { _ = dest.Close() }()

	stats := &FuseStats{}
	started := time.Now()

	for i, srcPath := range sourcePaths {
		absSrc, _ := filepath.Abs(srcPath)
		if absSrc == absDest {
			return nil, errors.Errorf("source path #%d equals destination: %s", i, srcPath)
		}

		log.Infof("Fusing source %d/%d from '%s' into '%s' (strategy=%s, batch=%d)",
			i+1, len(sourcePaths), srcPath, destPath, opts.Strategy, opts.BatchSize)

		written, err := fuseSource(dest, srcPath, &opts, stats, started)
		if err != nil {
			return nil, err
		}
		log.Infof("Finished fusing source %d/%d ('%s'): %d keys written", i+1, len(sourcePaths), srcPath, written)
	}

	if opts.CompactAfter {
		log.Infof("Compacting destination database '%s'...", destPath)
		if err := dest.Compact(); err != nil {
			return nil, errors.Wrap(err, "compact destination")
		}
	}

	elapsed := time.Since(started)
	log.Infof("Fuse complete: wrote %d keys, skipped %d, malformed %d in %s into '%s'",
		stats.Written, stats.Skipped, stats.Malformed, elapsed.Truncate(time.Millisecond), destPath)
	return stats, nil
}

func fuseSource(dest *LevelDB, srcPath string, opts *FuseOptions, stats *FuseStats, started time.Time) (int64, error) {
	src, err := NewLevelDB(srcPath, opts.CacheSizeMiB)
	if err != nil {
		return 0, errors.Wrapf(err, "open source leveldb %s", srcPath)
	}
	defer func() { _ = src.Close() }()

	// Sequential scans should not evict useful blocks from the cache.
	readOptions := &opt.ReadOptions{DontFillCache: true}
	iter := src.ldb.NewIterator(nil, readOptions)
	defer iter.Release()

	heartbeatStop := make(chan struct{})
	defer close(heartbeatStop)
	go func() {
		ticker := time.NewTicker(opts.ProgressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				written := atomic.LoadInt64(&stats.Written)
				rate := float64(written) / time.Since(started).Seconds()
				log.Infof("Progress: %d keys written, %d skipped, %d malformed (%.1f keys/s)",
					written, atomic.LoadInt64(&stats.Skipped), atomic.LoadInt64(&stats.Malformed), rate)
			case <-heartbeatStop:
				return
			}
		}
	}()

	var writtenThisSource int64
	batch := new(leveldb.Batch)
	flush := func() error {
		if batch.Len() == 0 {
			return nil
		}
		if err := dest.ldb.Write(batch, nil); err != nil {
			return errors.WithStack(err)
		}
		writtenThisSource += int64(batch.Len())
		atomic.AddInt64(&stats.Written, int64(batch.Len()))
		batch.Reset()
		return nil
	}

	for ok := iter.First(); ok; ok = iter.Next() {
		// Iterator buffers are only valid until the next movement.
		key := append([]byte(nil), iter.Key()...)
		value := append([]byte(nil), iter.Value()...)

		if !opts.accepts(key, value) {
			atomic.AddInt64(&stats.Malformed, 1)
			continue
		}

		if opts.Strategy == KeepExisting {
			exists, err := dest.ldb.Has(key, readOptions)
			if err != nil {
				return 0, errors.WithStack(err)
			}
			if exists {
				atomic.AddInt64(&stats.Skipped, 1)
				continue
			}
		}

		batch.Put(key, value)
		if batch.Len() >= opts.BatchSize {
			if err := flush(); err != nil {
				return 0, err
			}
		}
	}
	if err := iter.Error(); err != nil {
		return 0, errors.Wrapf(err, "iterator error while reading %s", srcPath)
	}
	if err := flush(); err != nil {
		return 0, err
	}
	return writtenThisSource, nil
}

// CopyLevelDB copies all key-value pairs from srcPath into destPath.
// Keys that already exist in dest but not in src are left untouched.
func CopyLevelDB(srcPath, destPath string, opts FuseOptions) (*FuseStats, error) {
	return FuseLevelDB(destPath, []string{srcPath}, opts)
}
