package difficultymanager

import (
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model"
	"github.com/Hoosat-Oy/heavypow/domain/dagconfig"
)

// IsASERTEnabled returns whether the block following prev is retargeted with
// ASERT. Networks with a checkpointed anchor activate by height, all others
// once the median time past of prev reaches the activation time.
func IsASERTEnabled(params *dagconfig.Params, prev model.BlockIndex) bool {
	if prev == nil {
		return false
	}

	if params.ASERTAnchor != nil {
		return prev.Height() >= params.ASERTAnchor.Height
	}

	return prev.MedianTimePast() >= params.ASERTActivationTime
}
