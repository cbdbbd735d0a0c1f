// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 Hoosat Oy
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Hoosat-Oy/heavypow/infrastructure/logger"
	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultLogDirname      = "logs"
	defaultLogFilename     = "heavypow.log"
	defaultErrLogFilename  = "heavypow_err.log"
	defaultLogLevel        = "info"
	defaultPoWCacheDirname = "powcache"
	defaultPoWCacheSizeMiB = 4
	defaultPoWCacheBackend = "leveldb"
	defaultHotCacheSizeMiB = 1
	defaultMatrixCacheSize = 16
	showSubsystemsLogLevel = "show"
)

// DefaultAppDir is the default home directory for heavypow.
var DefaultAppDir = btcutil.AppDataDir("heavypow", false)

// PoWCacheBackends lists the storage engines the pow cache can be kept in.
var PoWCacheBackends = []string{"leveldb", "pebble", "badger"}

// Flags defines the configuration options for heavypow.
//
// See loadConfig for details on the configuration load process.
type Flags struct {
	AppDir     string `short:"b" long:"appdir" description:"Directory to store data"`
	LogDir     string `long:"logdir" description:"Directory to log output (default: <appdir>/logs)"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`

	PoWCacheDir     string `long:"powcachedir" description:"Directory of the pow cache database (default: <appdir>/<network>/powcache)"`
	PoWCacheSizeMiB int    `long:"powcachesize" description:"Memory budget of the pow cache database in MiB"`
	PoWCacheBackend string `long:"powcachebackend" description:"Storage engine of the pow cache {leveldb, pebble, badger}"`
	PoWCacheMemory  bool   `long:"powcachememory" description:"Keep the pow cache in memory only"`
	PoWCacheWipe    bool   `long:"powcachewipe" description:"Wipe the pow cache on startup"`
	NoPoWCache      bool   `long:"nopowcache" description:"Disable the pow cache and always compute HeavyHash"`
	HotCacheSizeMiB int    `long:"hotcachesize" description:"Size of the in-memory tier in front of the pow cache database in MiB, 0 disables it"`
	MatrixCacheSize int    `long:"matrixcachesize" description:"Number of HeavyHash matrices kept for reuse"`

	ASERTActivationTime int64 `long:"asertactivationtime" description:"Override the median time past at which ASERT activates (unix seconds)"`

	NetworkFlags
}

// Config defines the configuration options for heavypow.
type Config struct {
	*Flags
}

// CleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func CleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultAppDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// NewParser returns a parser over cfg's flags. Callers may add commands to it
// before parsing, and must call Finalize once parsing is done.
func NewParser(cfg *Config, options flags.Options) *flags.Parser {
	return flags.NewParser(cfg.Flags, options)
}

func defaultFlags() *Flags {
	return &Flags{
		AppDir:          DefaultAppDir,
		DebugLevel:      defaultLogLevel,
		PoWCacheSizeMiB: defaultPoWCacheSizeMiB,
		PoWCacheBackend: defaultPoWCacheBackend,
		HotCacheSizeMiB: defaultHotCacheSizeMiB,
		MatrixCacheSize: defaultMatrixCacheSize,
	}
}

// DefaultConfig returns the default heavypow configuration
func DefaultConfig() *Config {
	config := &Config{Flags: defaultFlags()}
	_ = config.ResolveNetwork(nil)
	return config
}

// LoadConfig initializes and parses the config using command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Parse the command line options and override or add any specified options
//  3. Resolve the network and apply parameter overrides
//
// The returned remaining arguments are the positional ones, left for the
// caller to interpret.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := DefaultConfig()
	parser := NewParser(cfg, flags.HelpFlag)
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil, err
		}
		return nil, nil, errors.Wrap(err, "failed to parse the command line")
	}
	err = cfg.Finalize(parser)
	if err != nil {
		return nil, nil, err
	}
	return cfg, remainingArgs, nil
}

// Finalize resolves the network, expands paths, validates the options and
// applies the log levels and parameter overrides. It is called once, after
// the command line is parsed.
func (cfg *Config) Finalize(parser *flags.Parser) error {
	err := cfg.ResolveNetwork(parser)
	if err != nil {
		return err
	}

	cfg.AppDir = CleanAndExpandPath(cfg.AppDir)
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.AppDir, defaultLogDirname)
	} else {
		cfg.LogDir = CleanAndExpandPath(cfg.LogDir)
	}
	if cfg.PoWCacheDir == "" {
		cfg.PoWCacheDir = filepath.Join(cfg.AppDir, cfg.ActiveNetParams.Name, defaultPoWCacheDirname)
	} else {
		cfg.PoWCacheDir = CleanAndExpandPath(cfg.PoWCacheDir)
	}

	if !isValidBackend(cfg.PoWCacheBackend) {
		return errors.Errorf("unknown pow cache backend %q, must be one of %s",
			cfg.PoWCacheBackend, strings.Join(PoWCacheBackends, ", "))
	}
	if cfg.PoWCacheSizeMiB < 0 {
		return errors.Errorf("powcachesize must not be negative, got %d", cfg.PoWCacheSizeMiB)
	}
	if cfg.HotCacheSizeMiB < 0 {
		return errors.Errorf("hotcachesize must not be negative, got %d", cfg.HotCacheSizeMiB)
	}

	if cfg.ASERTActivationTime != 0 {
		log.Infof("Overriding the ASERT activation time of %s to %d",
			cfg.ActiveNetParams.Name, cfg.ASERTActivationTime)
		cfg.ActiveNetParams.ASERTActivationTime = cfg.ASERTActivationTime
		// An explicit activation time replaces any checkpointed anchor.
		cfg.ActiveNetParams.ASERTAnchor = nil
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == showSubsystemsLogLevel {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}
	err = logger.ParseAndSetLogLevels(cfg.DebugLevel)
	if err != nil {
		return err
	}
	return nil
}

// LogFile returns the path of the main log file.
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}

// ErrLogFile returns the path of the error log file.
func (cfg *Config) ErrLogFile() string {
	return filepath.Join(cfg.LogDir, defaultErrLogFilename)
}

func isValidBackend(backend string) bool {
	for _, known := range PoWCacheBackends {
		if backend == known {
			return true
		}
	}
	return false
}
