package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Hoosat-Oy/heavypow/util/difficulty"
	"github.com/pkg/errors"
)

type asertCommand struct {
	command
	RefBits    string `long:"refbits" description:"Compact target of the anchor block, in hex" required:"true"`
	TimeDiff   int64  `long:"timediff" description:"Seconds between the anchor's parent and the previous block" required:"true"`
	HeightDiff int64  `long:"heightdiff" description:"Blocks between the anchor and the previous block" required:"true"`
}

func (c *asertCommand) Execute(_ []string) error {
	refBits, err := strconv.ParseUint(strings.TrimPrefix(c.RefBits, "0x"), 16, 32)
	if err != nil {
		return errors.Wrapf(err, "invalid reference bits %s", c.RefBits)
	}
	if c.HeightDiff < 0 {
		return errors.Errorf("heightdiff must not be negative, got %d", c.HeightDiff)
	}
	refTarget, negative, overflow := difficulty.CompactToTarget(uint32(refBits))
	if negative || overflow {
		return errors.Errorf("reference bits 0x%08x do not decode to a valid target", refBits)
	}

	params := c.cfg.NetParams()
	next := difficulty.CalculateASERT(refTarget, params.TargetSpacingSeconds(), c.TimeDiff, c.HeightDiff,
		params.PowMax, params.HalfLifeSeconds())

	fmt.Fprintf(c.out, "network:     %s\n", params.Name)
	fmt.Fprintf(c.out, "next target: %s\n", next.Hex())
	fmt.Fprintf(c.out, "next bits:   0x%08x\n", difficulty.TargetToCompact(next))
	return nil
}
