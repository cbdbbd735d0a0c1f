package model

// DifficultyManager provides a method to resolve the
// difficulty value of a block
type DifficultyManager interface {
	NextRequiredTarget(prev BlockIndex) (uint32, error)
}

// LegacyDifficultyCalculator is the retarget algorithm used before ASERT
// activates. It is provided by the chain-state collaborator.
type LegacyDifficultyCalculator interface {
	NextRequiredBits(prev BlockIndex) (uint32, error)
}
