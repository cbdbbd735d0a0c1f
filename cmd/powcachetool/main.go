package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/infrastructure/db/database/ldb"
	"github.com/Hoosat-Oy/heavypow/infrastructure/logger"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	logFilename    = "powcachetool.log"
	errLogFilename = "powcachetool_err.log"
)

type globalOptions struct {
	LogDir string `long:"logdir" description:"Also write the log to powcachetool.log and powcachetool_err.log in this directory"`
}

// commonOptions are shared by fuse and copy.
type commonOptions struct {
	Strategy string `long:"strategy" description:"Conflict strategy: overwrite | keep" default:"overwrite"`
	Batch    int    `long:"batch" description:"Batch size for writes" default:"10000"`
	Cache    int    `long:"cache" description:"Cache size (MiB) for DBs; 0 uses defaults from Options()" default:"0"`
	Compact  bool   `long:"compact" description:"Compact destination after the operation"`
	AnyShape bool   `long:"anyshape" description:"Also carry entries that are not 20 byte light hashes mapped to 32 byte pow hashes"`
}

func (o *commonOptions) fuseOptions() (ldb.FuseOptions, error) {
	var strategy ldb.ConflictStrategy
	switch strings.ToLower(o.Strategy) {
	case "overwrite", "over", "o":
		strategy = ldb.Overwrite
	case "keep", "keep-existing", "k":
		strategy = ldb.KeepExisting
	default:
		return ldb.FuseOptions{}, errors.Errorf("unknown strategy: %s", o.Strategy)
	}

	opts := ldb.FuseOptions{
		CacheSizeMiB: o.Cache,
		BatchSize:    o.Batch,
		Strategy:     strategy,
		CompactAfter: o.Compact,
	}
	if !o.AnyShape {
		opts.KeySize = externalapi.DomainLightHashSize
		opts.ValueSize = externalapi.DomainHashSize
	}
	return opts, nil
}

type fuseCommand struct {
	commonOptions
	Args struct {
		Dest    string   `positional-arg-name:"dest" required:"true"`
		Sources []string `positional-arg-name:"src" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

func (c *fuseCommand) Execute(_ []string) error {
	opts, err := c.fuseOptions()
	if err != nil {
		return err
	}
	// Provide immediate user feedback that the operation has started.
	fmt.Fprintf(os.Stderr, "Starting fuse into '%s' from %d source pow cache(s)...\n", c.Args.Dest, len(c.Args.Sources))
	stats, err := ldb.FuseLevelDB(c.Args.Dest, c.Args.Sources, opts)
	if err != nil {
		return errors.Wrap(err, "fuse failed")
	}
	fmt.Fprintf(os.Stderr, "Fuse completed: %d written, %d skipped, %d malformed.\n",
		stats.Written, stats.Skipped, stats.Malformed)
	return nil
}

type copyCommand struct {
	commonOptions
	Args struct {
		Source string `positional-arg-name:"src" required:"true"`
		Dest   string `positional-arg-name:"dest" required:"true"`
	} `positional-args:"yes" required:"yes"`
}

func (c *copyCommand) Execute(_ []string) error {
	opts, err := c.fuseOptions()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Starting copy from '%s' into '%s'...\n", c.Args.Source, c.Args.Dest)
	stats, err := ldb.CopyLevelDB(c.Args.Source, c.Args.Dest, opts)
	if err != nil {
		return errors.Wrap(err, "copy failed")
	}
	fmt.Fprintf(os.Stderr, "Copy completed: %d written, %d skipped, %d malformed.\n",
		stats.Written, stats.Skipped, stats.Malformed)
	return nil
}

func newParser() (*flags.Parser, error) {
	global := &globalOptions{}
	parser := flags.NewParser(global, flags.Default)
	parser.Name = "powcachetool"
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if global.LogDir != "" {
			err := logger.AddLogFiles(filepath.Join(global.LogDir, logFilename),
				filepath.Join(global.LogDir, errLogFilename))
			if err != nil {
				return err
			}
		}
		return cmd.Execute(args)
	}

	_, err := parser.AddCommand("fuse", "Merge pow caches",
		"Merges one or more LevelDB pow caches into a destination cache. Later sources win under the overwrite strategy.",
		&fuseCommand{})
	if err != nil {
		return nil, err
	}
	_, err = parser.AddCommand("copy", "Copy a pow cache",
		"Copies every entry of a LevelDB pow cache into a destination cache.",
		&copyCommand{})
	if err != nil {
		return nil, err
	}
	return parser, nil
}

func main() {
	os.Exit(run())
}

// run returns the exit code, so that the log backend is closed before the process exits.
func run() int {
	// Log to stdout at INFO level so fuse progress reported by the ldb package is visible.
	logger.InitLogStdout(logger.LevelInfo)
	logger.SetLogLevels(logger.LevelInfo)
	defer logger.BackendLog.Close()

	parser, err := newParser()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	_, err = parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		// flags.Default already printed parse errors.
		if !errors.As(err, &flagsErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 2
	}
	return 0
}
