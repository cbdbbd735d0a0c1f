package blockvalidator

import (
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

// ValidateProofOfWorkAndDifficulty checks that bits are the difficulty
// required after prev and that the header's HeavyHash meets them.
func (v *blockValidator) ValidateProofOfWorkAndDifficulty(header model.BlockHeaderView, bits uint32,
	prev model.BlockIndex) error {

	log.Tracef("ValidateProofOfWorkAndDifficulty start for child of %s", header.ParentHash())
	defer log.Tracef("ValidateProofOfWorkAndDifficulty end for child of %s", header.ParentHash())

	err := v.validateDifficulty(bits, prev)
	if err != nil {
		return err
	}
	return v.validatePoW(header, bits)
}

func (v *blockValidator) validateDifficulty(bits uint32, prev model.BlockIndex) error {
	expectedBits, err := v.difficultyManager.NextRequiredTarget(prev)
	if err != nil {
		return err
	}
	if bits != expectedBits {
		return errors.Wrapf(pow.ErrUnexpectedDifficulty, "block difficulty of 0x%08x is not the expected value of 0x%08x",
			bits, expectedBits)
	}
	return nil
}

func (v *blockValidator) validatePoW(header model.BlockHeaderView, bits uint32) error {
	if v.skipProofOfWork {
		return nil
	}
	powHash := v.powHasher.ComputePoWHash(header)
	return pow.CheckProofOfWorkWithTarget(powHash, bits, v.powMax)
}
