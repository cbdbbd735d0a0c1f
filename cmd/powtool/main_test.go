package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/blockheader"
	"github.com/Hoosat-Oy/heavypow/infrastructure/config"
	"github.com/Hoosat-Oy/heavypow/infrastructure/logger"
	"github.com/Hoosat-Oy/heavypow/util/difficulty"
	"github.com/pkg/errors"
)

func runPowTool(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	appDir := t.TempDir()
	t.Cleanup(logger.BackendLog.Close)
	parser, err := newParser(config.DefaultConfig(), &out)
	if err != nil {
		t.Fatalf("newParser: %+v", err)
	}
	_, err = parser.ParseArgs(append([]string{"--appdir=" + appDir}, args...))
	if err != nil {
		t.Fatalf("powtool %v: %+v", args, err)
	}
	return out.String()
}

func TestASERTCommand(t *testing.T) {
	tests := []struct {
		timeDiff     string
		expectedBits string
	}{
		{timeDiff: "600", expectedBits: "0x1c00ffff"},
		{timeDiff: "173400", expectedBits: "0x1c01fffe"},
	}
	for _, test := range tests {
		output := runPowTool(t, "asert", "--refbits=0x1c00ffff", "--timediff="+test.timeDiff, "--heightdiff=0")
		if !strings.Contains(output, "next bits:   "+test.expectedBits) {
			t.Fatalf("TestASERTCommand: timediff %s: unexpected output:\n%s", test.timeDiff, output)
		}
	}
}

func TestMatrixCommand(t *testing.T) {
	output := runPowTool(t, "matrix", "--prev="+externalapi.NewZeroHash().String())
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 1+64+2 {
		t.Fatalf("TestMatrixCommand: got %d lines, want %d", len(lines), 1+64+2)
	}
	if lines[0] != "seed: 9e6291970cb44dd94008c79bcaf9d86f18b4b49ba5b2a04781db7199ed3b9e4e" {
		t.Fatalf("TestMatrixCommand: unexpected seed line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "d66635ab") || len(lines[1]) != 64 {
		t.Fatalf("TestMatrixCommand: unexpected first row %q", lines[1])
	}
}

func TestHashCommand(t *testing.T) {
	header := blockheader.NewBlockHeader(1, nil, nil, 1_700_000_000, 0x207fffff, 0)
	output := runPowTool(t, "--simnet", "--powcachememory", "hash",
		"--header="+hex.EncodeToString(header.Serialize()))

	if !strings.Contains(output, "pow hash:      "+header.BlockHash().String()) {
		t.Fatalf("TestHashCommand: unexpected output:\n%s", output)
	}
	if !strings.Contains(output, "light hash:    "+header.LightHash().String()) {
		t.Fatalf("TestHashCommand: unexpected output:\n%s", output)
	}
	if !strings.Contains(output, "block work:    "+difficulty.CalcWork(header.Bits).String()) {
		t.Fatalf("TestHashCommand: unexpected output:\n%s", output)
	}
}

func TestCacheStatsCommand(t *testing.T) {
	output := runPowTool(t, "--simnet", "--powcachememory", "cachestats", "--headers=3", "--rounds=2")
	if !strings.Contains(output, "cachehit      3 cachemiss      3") {
		t.Fatalf("TestCacheStatsCommand: unexpected output:\n%s", output)
	}
	if !strings.Contains(output, "heavypow_powcache_hits_total") {
		t.Fatalf("TestCacheStatsCommand: metrics missing from output:\n%s", output)
	}
}

func TestCommandWritesLogFiles(t *testing.T) {
	logDir := t.TempDir()
	runPowTool(t, "--simnet", "--powcachememory", "--logdir="+logDir, "cachestats", "--headers=1", "--rounds=1")

	for _, name := range []string{"heavypow.log", "heavypow_err.log"} {
		if _, err := os.Stat(filepath.Join(logDir, name)); err != nil {
			t.Fatalf("TestCommandWritesLogFiles: %s was not created: %s", name, err)
		}
	}
	content, err := os.ReadFile(filepath.Join(logDir, "heavypow.log"))
	if err != nil {
		t.Fatalf("TestCommandWritesLogFiles: %s", err)
	}
	if !strings.Contains(string(content), "Proof-of-work service started") {
		t.Fatalf("TestCommandWritesLogFiles: the service log line is missing:\n%s", content)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseService(t *testing.T) {
	errClose := errors.New("unlock failed")
	errCommand := errors.New("command failed")
	tests := []struct {
		name        string
		commandErr  error
		closeErr    error
		expectedErr error
	}{
		{name: "clean", commandErr: nil, closeErr: nil, expectedErr: nil},
		{name: "close fails", commandErr: nil, closeErr: errClose, expectedErr: errClose},
		{name: "command fails first", commandErr: errCommand, closeErr: errClose, expectedErr: errCommand},
	}
	for _, test := range tests {
		closed := false
		err := test.commandErr
		closeService(closerFunc(func() error {
			closed = true
			return test.closeErr
		}), &err)
		if !closed {
			t.Fatalf("TestCloseService: %s: the service was not closed", test.name)
		}
		if !errors.Is(err, test.expectedErr) || (test.expectedErr == nil && err != nil) {
			t.Fatalf("TestCloseService: %s: got %v, want %v", test.name, err, test.expectedErr)
		}
	}
}
