package integration

import (
	"testing"
	"time"

	"github.com/Hoosat-Oy/heavypow/app/powservice"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model"
	"github.com/Hoosat-Oy/heavypow/domain/dagconfig"
	"github.com/Hoosat-Oy/heavypow/infrastructure/config"
)

const (
	anchorPrevBlockTime = 1_700_000_000
	testHalfLife        = time.Hour
)

// asertSimnetParams returns simnet with retargeting enabled and an ASERT
// anchor checkpointed at height 1.
func asertSimnetParams() *dagconfig.Params {
	params := dagconfig.SimnetParams.Clone()
	params.Name = "heavypow-asert-simnet"
	params.NoRetargeting = false
	params.ASERTHalfLife = testHalfLife
	params.ASERTAnchor = &dagconfig.ASERTAnchor{
		Height:        1,
		Bits:          params.PowLimitBits,
		PrevBlockTime: anchorPrevBlockTime,
	}
	return params
}

func commonConfig(t *testing.T) *config.Config {
	commonConfig := config.DefaultConfig()
	commonConfig.Simnet = true
	commonConfig.AppDir = t.TempDir()
	commonConfig.PoWCacheMemory = true
	commonConfig.DebugLevel = "error"
	return commonConfig
}

func setupService(t *testing.T, overrideDAGParams *dagconfig.Params,
	legacy model.LegacyDifficultyCalculator) (*powservice.PoWService, func()) {

	cfg := commonConfig(t)
	err := cfg.Finalize(nil)
	if err != nil {
		t.Fatalf("Finalize: %+v", err)
	}
	if overrideDAGParams != nil {
		cfg.ActiveNetParams = overrideDAGParams
	}

	service, err := powservice.New(cfg, legacy)
	if err != nil {
		t.Fatalf("powservice.New: %+v", err)
	}
	return service, func() {
		err := service.Close()
		if err != nil {
			t.Fatalf("service.Close: %+v", err)
		}
	}
}
