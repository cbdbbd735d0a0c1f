package difficulty

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// asertRadixBits is the number of fractional bits of the fixed-point exponent.
const asertRadixBits = 16

// CalculateASERT computes the target of the block following the reference
// (anchor) block with the absolutely scheduled exponentially rising targets
// algorithm, in its fixed-point aserti3-2d form:
//
//	next = refTarget * 2^((timeDiff - targetSpacing*(heightDiff+1)) / halfLife)
//
// timeDiff is measured from the parent of the reference block, heightDiff from
// the reference block itself. The result is clamped to [1, powLimit].
func CalculateASERT(refTarget *uint256.Int, targetSpacing, timeDiff, heightDiff int64,
	powLimit *uint256.Int, halfLife int64) *uint256.Int {

	if heightDiff < 0 {
		panic(errors.Errorf("negative height difference %d", heightDiff))
	}
	if targetSpacing <= 0 || halfLife <= 0 {
		panic(errors.Errorf("invalid target spacing %d or half-life %d", targetSpacing, halfLife))
	}

	ref := refTarget.Clone()
	if ref.IsZero() {
		ref.SetOne()
	}

	// exponent = ((timeDiff - targetSpacing*(heightDiff+1)) * 2^16) / halfLife,
	// truncated towards zero. Intermediate values may not fit in 64 bits.
	numerator := new(big.Int).Mul(big.NewInt(targetSpacing), new(big.Int).Add(big.NewInt(heightDiff), bigOne))
	numerator.Sub(big.NewInt(timeDiff), numerator)
	numerator.Lsh(numerator, asertRadixBits)
	bigExponent := numerator.Quo(numerator, big.NewInt(halfLife))
	if !bigExponent.IsInt64() {
		if bigExponent.Sign() > 0 {
			return powLimit.Clone()
		}
		return uint256.NewInt(1)
	}
	exponent := bigExponent.Int64()

	// 2^x = 2^shifts * 2^(frac/65536), with frac in [0, 1) after the
	// arithmetic shift.
	shifts := exponent >> asertRadixBits
	frac := uint64(uint16(exponent))

	// 65536 * 2^(frac/65536), approximated by a cubic polynomial.
	factor := 65536 + ((195766423245049*frac +
		971821376*frac*frac +
		5127*frac*frac*frac +
		(1 << 47)) >> 48)

	// The factor carries 16 fractional bits.
	shifts -= asertRadixBits

	next, overflow := new(uint256.Int).MulOverflow(ref, uint256.NewInt(factor))
	if overflow {
		return calculateASERTWide(ref, factor, shifts, powLimit)
	}

	if shifts <= 0 {
		next.Rsh(next, uint(-shifts))
	} else {
		shifted := new(uint256.Int).Lsh(next, uint(shifts))
		if !new(uint256.Int).Rsh(shifted, uint(shifts)).Eq(next) {
			return powLimit.Clone()
		}
		next = shifted
	}

	return clampTarget(next, powLimit)
}

// calculateASERTWide finishes the calculation with arbitrary precision when
// refTarget*factor does not fit in 256 bits.
func calculateASERTWide(ref *uint256.Int, factor uint64, shifts int64, powLimit *uint256.Int) *uint256.Int {
	next := new(big.Int).Mul(ref.ToBig(), new(big.Int).SetUint64(factor))
	if shifts > 0 {
		// next is already wider than 256 bits, so any left shift overflows.
		return powLimit.Clone()
	}
	next.Rsh(next, uint(-shifts))

	if next.BitLen() > 256 {
		return powLimit.Clone()
	}
	target, _ := uint256.FromBig(next)
	return clampTarget(target, powLimit)
}

func clampTarget(target, powLimit *uint256.Int) *uint256.Int {
	if target.IsZero() {
		return uint256.NewInt(1)
	}
	if target.Gt(powLimit) {
		return powLimit.Clone()
	}
	return target
}
