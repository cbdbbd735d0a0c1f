package main

import (
	"fmt"
	"strings"

	"github.com/Hoosat-Oy/heavypow/app/powservice"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/blockheader"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsPrefix = "heavypow_"

type cacheStatsCommand struct {
	command
	Headers uint32 `long:"headers" description:"Number of synthetic headers to hash" default:"100"`
	Rounds  int    `long:"rounds" description:"Number of times every header is hashed" default:"2"`
}

func (c *cacheStatsCommand) Execute(_ []string) (err error) {
	service, err := powservice.New(c.cfg, nil)
	if err != nil {
		return err
	}
	defer closeService(service, &err)

	params := service.Params()
	for round := 0; round < c.Rounds; round++ {
		for nonce := uint32(0); nonce < c.Headers; nonce++ {
			header := blockheader.NewBlockHeader(1, externalapi.NewZeroHash(), nil, 0, params.PowLimitBits, nonce)
			service.PoWHasher().ComputePoWHash(header)
		}
	}

	store := service.PoWCacheStore()
	fmt.Fprintf(c.out, "cachehit %6d cachemiss %6d\n", store.Hits(), store.Misses())

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), metricsPrefix) {
			continue
		}
		for _, metric := range family.GetMetric() {
			fmt.Fprintf(c.out, "%s %g\n", family.GetName(), metric.GetCounter().GetValue())
		}
	}
	return nil
}
