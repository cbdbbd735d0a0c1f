package pow

import (
	"github.com/Hoosat-Oy/heavypow/domain/consensus/model/externalapi"
	"github.com/Hoosat-Oy/heavypow/domain/consensus/utils/matrixchecks"
	"github.com/pkg/errors"
)

// MatrixSize is the dimension of the square HeavyHash matrix.
const MatrixSize = matrixchecks.MatrixSize

// maxMatrixGenerationAttempts bounds how many candidate matrices are drawn
// from one seed before giving up. A random 4-bit 64x64 matrix is singular
// with negligible probability, so reaching it means a broken generator.
const maxMatrixGenerationAttempts = 1000

// Matrix is a validated HeavyHash matrix: every entry is 4 bits and the
// matrix is full rank. It is never mutated after generation and may be
// shared between goroutines through its pointer.
type Matrix struct {
	_ noCopy

	rows [MatrixSize][MatrixSize]uint16
}

// GenerateMatrix deterministically derives the HeavyHash matrix of the given
// seed. Each row is filled by four generator draws of sixteen nibbles each,
// most significant nibble first. Candidates that fail validation are
// discarded and the next one is drawn from the same continuing stream.
func GenerateMatrix(seed *externalapi.DomainHash) *Matrix {
	mat := &Matrix{}
	generator := newxoShiRo256PlusPlus(seed)

	for attempt := 1; attempt <= maxMatrixGenerationAttempts; attempt++ {
		for i := range mat.rows {
			for j := 0; j < MatrixSize; j += 16 {
				val := generator.Uint64()
				for shift := 0; shift < 16; shift++ {
					mat.rows[i][j+shift] = uint16((val >> (60 - 4*shift)) & 0x0F)
				}
			}
		}
		if mat.isValid() {
			return mat
		}
	}
	panic(errors.Errorf("failed to generate a full rank matrix for seed %s "+
		"after %d attempts", seed, maxMatrixGenerationAttempts))
}

// At returns the entry at row i and column j.
func (mat *Matrix) At(i, j int) uint16 {
	return mat.rows[i][j]
}

// Equal returns whether both matrices hold the same entries.
func (mat *Matrix) Equal(other *Matrix) bool {
	return mat.rows == other.rows
}

func (mat *Matrix) isValid() bool {
	return matrixchecks.Is4BitPrecision(&mat.rows) && matrixchecks.IsFullRank(&mat.rows)
}
