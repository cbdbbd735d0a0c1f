package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Hoosat-Oy/heavypow/infrastructure/config"
	"github.com/Hoosat-Oy/heavypow/infrastructure/logger"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// command is embedded by every powtool subcommand.
type command struct {
	cfg *config.Config
	out io.Writer
}

func newParser(cfg *config.Config, out io.Writer) (*flags.Parser, error) {
	parser := config.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		err := cfg.Finalize(parser)
		if err != nil {
			return err
		}
		logger.InitLog(cfg.LogFile(), cfg.ErrLogFile())
		return cmd.Execute(args)
	}

	base := command{cfg: cfg, out: out}
	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{"hash", "Compute the HeavyHash of a block header",
			"Computes the light hash and HeavyHash of an 80 byte block header and checks it against its bits.",
			&hashCommand{command: base}},
		{"matrix", "Print the HeavyHash matrix of a parent",
			"Generates the HeavyHash matrix used by the children of a block and prints it with its singular values.",
			&matrixCommand{command: base}},
		{"asert", "Compute an ASERT target",
			"Computes the next target from an anchor target and the time and height elapsed since the anchor.",
			&asertCommand{command: base}},
		{"cachestats", "Exercise the pow cache and print its statistics",
			"Hashes synthetic headers through the pow cache and prints the hit, miss and write error counters.",
			&cacheStatsCommand{command: base}},
	}
	for _, c := range commands {
		_, err := parser.AddCommand(c.name, c.short, c.long, c.data)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to add the %s command", c.name)
		}
	}
	return parser, nil
}

// closeService closes service, reporting its error through errp unless
// errp already holds one.
func closeService(service io.Closer, errp *error) {
	err := service.Close()
	if err != nil && *errp == nil {
		*errp = errors.Wrap(err, "failed to close the proof-of-work service")
	}
}

func main() {
	os.Exit(run())
}

// run returns the exit code, so that deferred calls finish before the process exits.
func run() int {
	defer logger.BackendLog.Close()

	parser, err := newParser(config.DefaultConfig(), os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	_, err = parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			return 0
		}
		fmt.Fprintf(os.Stderr, "powtool: %s\n", err)
		return 1
	}
	return 0
}
