// Package matrixchecks validates candidate HeavyHash matrices.
package matrixchecks

import "github.com/Hoosat-Oy/heavypow/domain/consensus/utils/svd"

// MatrixSize is the dimension of the square HeavyHash matrix.
const MatrixSize = 64

// Is4BitPrecision returns true if every entry of mat fits in 4 bits.
func Is4BitPrecision(mat *[MatrixSize][MatrixSize]uint16) bool {
	for i := range mat {
		for _, entry := range mat[i] {
			if entry > 0x0F {
				return false
			}
		}
	}
	return true
}

// IsFullRank returns true if mat has rank MatrixSize, judged by its singular
// values against svd.RankTolerance.
func IsFullRank(mat *[MatrixSize][MatrixSize]uint16) bool {
	values := make([]float64, 0, MatrixSize*MatrixSize)
	for i := range mat {
		for _, entry := range mat[i] {
			values = append(values, float64(entry))
		}
	}
	usv := svd.Decompose(svd.NewMatrixFromValues(MatrixSize, MatrixSize, values))
	return svd.IsFullRank(usv.S, MatrixSize)
}
