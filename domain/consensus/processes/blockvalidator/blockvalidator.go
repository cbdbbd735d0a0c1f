package blockvalidator

import (
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model"
	"github.com/Hoosat-Oy/heavypow/domain/dagconfig"
	"github.com/holiman/uint256"
)

// blockValidator exposes a set of validation functions that are
// applied to a block header's proof of work
type blockValidator struct {
	powMax          *uint256.Int
	skipProofOfWork bool

	difficultyManager model.DifficultyManager
	powHasher         model.PoWHasher
}

// New instantiates a new BlockValidator
func New(params *dagconfig.Params,
	difficultyManager model.DifficultyManager,
	powHasher model.PoWHasher) model.BlockValidator {

	return &blockValidator{
		powMax:            params.PowMax.Clone(),
		skipProofOfWork:   params.SkipProofOfWork,
		difficultyManager: difficultyManager,
		powHasher:         powHasher,
	}
}
