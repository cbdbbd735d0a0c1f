package model

// BlockValidator exposes the proof-of-work and difficulty checks of a header
// against its selected parent.
type BlockValidator interface {
	ValidateProofOfWorkAndDifficulty(header BlockHeaderView, bits uint32, prev BlockIndex) error
}
