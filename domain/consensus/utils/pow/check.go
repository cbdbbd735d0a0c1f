package pow

import (
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/hashes"
	"github.com/Hoosat-Oy/heavypow/util/difficulty"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var (
	// ErrUnexpectedDifficulty indicates the difficulty bits decode to a
	// target that is negative, zero, wider than 256 bits or easier than
	// the proof-of-work limit.
	ErrUnexpectedDifficulty = errors.New("unexpected difficulty")

	// ErrHighHash indicates the proof-of-work hash is above the target.
	ErrHighHash = errors.New("block hash is higher than expected difficulty")
)

// CheckProofOfWorkWithTarget checks that bits decode to a valid target no
// easier than powLimit and that powHash, read as a little-endian 256-bit
// number, does not exceed it.
func CheckProofOfWorkWithTarget(powHash *externalapi.DomainHash, bits uint32, powLimit *uint256.Int) error {
	target, negative, overflow := difficulty.CompactToTarget(bits)
	if negative {
		return errors.Wrapf(ErrUnexpectedDifficulty, "bits 0x%08x decode to a negative target", bits)
	}
	if overflow {
		return errors.Wrapf(ErrUnexpectedDifficulty, "bits 0x%08x overflow 256 bits", bits)
	}
	if target.IsZero() {
		return errors.Wrapf(ErrUnexpectedDifficulty, "bits 0x%08x decode to a zero target", bits)
	}
	if target.Gt(powLimit) {
		return errors.Wrapf(ErrUnexpectedDifficulty, "target %s is higher than the max of %s", target.Hex(), powLimit.Hex())
	}

	if hashes.ToUint256(powHash).Gt(target) {
		return errors.Wrapf(ErrHighHash, "hash %s is higher than the target %s", powHash, target.Hex())
	}
	return nil
}
