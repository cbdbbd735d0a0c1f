package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Hoosat-Oy/heavypow/app/powservice"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/blockheader"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/pow"
	"github.com/Hoosat-Oy/heavypow/util/difficulty"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

type hashCommand struct {
	command
	Header string `long:"header" description:"Hex encoded 80 byte block header. Read from stdin when omitted"`
}

func (c *hashCommand) Execute(_ []string) (err error) {
	headerHex := c.Header
	if headerHex == "" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("no header given, pass --header or pipe it on stdin")
		}
		input, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return errors.WithStack(readErr)
		}
		headerHex = string(input)
	}
	headerBytes, err := hex.DecodeString(strings.TrimSpace(headerHex))
	if err != nil {
		return errors.Wrap(err, "the header is not valid hex")
	}
	header, err := blockheader.Deserialize(headerBytes)
	if err != nil {
		return err
	}

	service, err := powservice.New(c.cfg, nil)
	if err != nil {
		return err
	}
	defer closeService(service, &err)

	powHash := service.PoWHasher().ComputePoWHash(header)
	fmt.Fprintf(c.out, "light hash:    %s\n", header.LightHash())
	fmt.Fprintf(c.out, "pow hash:      %s\n", powHash)
	fmt.Fprintf(c.out, "block work:    %s\n", difficulty.CalcWork(header.Bits))
	err = pow.CheckProofOfWorkWithTarget(powHash, header.Bits, service.Params().PowMax)
	if err != nil {
		fmt.Fprintf(c.out, "proof of work: invalid (%s)\n", err)
		return nil
	}
	fmt.Fprintf(c.out, "proof of work: valid\n")
	return nil
}
