package difficultymanager

import (
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/lrucache"
	"github.com/Hoosat-Oy/heavypow/domain/dagconfig"
	"github.com/Hoosat-Oy/heavypow/util/difficulty"
	"github.com/pkg/errors"
)

const anchorCacheSize = 256

// asertReference is the reference block ASERT schedules against.
type asertReference struct {
	height     uint64
	bits       uint32
	parentTime int64
}

// difficultyManager provides a method to resolve the
// difficulty value of a block
type difficultyManager struct {
	params      *dagconfig.Params
	legacy      model.LegacyDifficultyCalculator
	anchorCache *lrucache.LRUCache
}

// New instantiates a new DifficultyManager. legacy computes the target of
// blocks mined before ASERT activates and may be nil on networks where ASERT
// is active from the first block.
func New(params *dagconfig.Params, legacy model.LegacyDifficultyCalculator) model.DifficultyManager {
	return &difficultyManager{
		params:      params,
		legacy:      legacy,
		anchorCache: lrucache.New(anchorCacheSize, true),
	}
}

// NextRequiredTarget returns the compact target required of the block
// following prev.
func (dm *difficultyManager) NextRequiredTarget(prev model.BlockIndex) (uint32, error) {
	// Genesis block.
	if prev == nil {
		return dm.params.PowLimitBits, nil
	}

	if dm.params.NoRetargeting {
		return prev.Bits(), nil
	}

	if !IsASERTEnabled(dm.params, prev) {
		if dm.legacy == nil {
			return 0, errors.Errorf("ASERT is not enabled after block %s and no legacy "+
				"difficulty calculator is configured", prev.Hash())
		}
		return dm.legacy.NextRequiredBits(prev)
	}

	return dm.nextASERTTarget(prev)
}

func (dm *difficultyManager) nextASERTTarget(prev model.BlockIndex) (uint32, error) {
	reference, err := dm.asertReference(prev)
	if err != nil {
		return 0, err
	}

	refTarget, negative, overflow := difficulty.CompactToTarget(reference.bits)
	if negative || overflow {
		return 0, errors.Errorf("invalid ASERT anchor bits 0x%08x", reference.bits)
	}
	if prev.Height() < reference.height {
		return 0, errors.Errorf("block %s at height %d precedes the ASERT anchor at height %d",
			prev.Hash(), prev.Height(), reference.height)
	}

	timeDiff := prev.Timestamp() - reference.parentTime
	heightDiff := int64(prev.Height() - reference.height)

	nextTarget := difficulty.CalculateASERT(refTarget, dm.params.TargetSpacingSeconds(), timeDiff, heightDiff,
		dm.params.PowMax, dm.params.HalfLifeSeconds())
	nextBits := difficulty.TargetToCompact(nextTarget)

	log.Tracef("ASERT target after %s: anchor height %d, time diff %d, height diff %d, bits 0x%08x",
		prev.Hash(), reference.height, timeDiff, heightDiff, nextBits)
	return nextBits, nil
}

func (dm *difficultyManager) asertReference(prev model.BlockIndex) (*asertReference, error) {
	if anchor := dm.params.ASERTAnchor; anchor != nil {
		return &asertReference{
			height:     anchor.Height,
			bits:       anchor.Bits,
			parentTime: anchor.PrevBlockTime,
		}, nil
	}

	anchor := dm.findAnchor(prev)
	parentTime := anchor.Timestamp() - dm.params.TargetSpacingSeconds()
	if anchorParent := anchor.Parent(); anchorParent != nil {
		parentTime = anchorParent.Timestamp()
	}
	return &asertReference{
		height:     anchor.Height(),
		bits:       anchor.Bits(),
		parentTime: parentTime,
	}, nil
}

// findAnchor returns the first block of the chain ending at prev that was
// retargeted with ASERT. Anchors are memoized per block, so walking from a
// recently seen block's child stops after one step.
func (dm *difficultyManager) findAnchor(prev model.BlockIndex) model.BlockIndex {
	block := prev
	for {
		if cached, ok := dm.anchorCache.Get(block.Hash()); ok {
			anchor := cached.(model.BlockIndex)
			dm.anchorCache.Add(prev.Hash(), anchor)
			return anchor
		}

		parent := block.Parent()
		if parent == nil || !IsASERTEnabled(dm.params, parent) {
			log.Debugf("Resolved ASERT anchor %s at height %d", block.Hash(), block.Height())
			dm.anchorCache.Add(prev.Hash(), block)
			return block
		}
		block = parent
	}
}
