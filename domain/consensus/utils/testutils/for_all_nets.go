package testutils

import (
	"testing"

	"github.com/Hoosat-Oy/heavypow/domain/dagconfig"
)

// ForAllNets runs the passed testFunc with all available networks.
// Each run receives its own copy of the params, so tests may adjust them freely.
func ForAllNets(t *testing.T, testFunc func(*testing.T, *dagconfig.Params)) {
	allParams := []*dagconfig.Params{
		&dagconfig.MainnetParams,
		&dagconfig.TestnetParams,
		&dagconfig.SimnetParams,
		&dagconfig.DevnetParams,
	}

	for _, params := range allParams {
		params := params.Clone()
		t.Run(params.Name, func(t *testing.T) {
			t.Logf("Running test for %s", params.Name)
			testFunc(t, params)
		})
	}
}
