// Package svd implements a singular value decomposition of small dense
// matrices by Householder bidiagonalization followed by implicitly shifted
// Francis QR iterations.
package svd

import (
	"math"
	"sort"
)

// RankTolerance is the smallest singular value magnitude that still counts
// towards the rank of a matrix.
const RankTolerance = 1.000009e-12

// convergenceThreshold is the relative superdiagonal size below which the
// trailing singular value is considered converged.
const convergenceThreshold = 1.0e-15

// maxIterationsPerColumn bounds the Francis steps as a multiple of the column count.
const maxIterationsPerColumn = 10

// USV is the decomposition A = U * S * V^T.
type USV struct {
	U *Matrix
	S *DiagonalMatrix
	V *Matrix
}

// SingularValues returns the singular values in descending order.
func (usv *USV) SingularValues() []float64 {
	return usv.S.Values()
}

// Reconstruct returns U * S * V^T.
func (usv *USV) Reconstruct() *Matrix {
	return usv.U.Mul(usv.S.toMatrix()).Mul(usv.V.Transpose())
}

// Decompose computes the singular value decomposition of m. m is not modified.
//
// The singular values are non-negative and sorted in descending order, U is an
// orthonormal rows x rows matrix and V an orthonormal cols x cols matrix.
func Decompose(m *Matrix) *USV {
	rows, cols := m.Dims()
	if rows < cols {
		// A^T = V * S^T * U^T
		usvT := Decompose(m.Transpose())
		return &USV{
			U: usvT.V.Take(),
			S: usvT.S.Transpose(),
			V: usvT.U.Take(),
		}
	}

	u := Identity(rows)
	v := Identity(cols)
	b := bidiagonalize(u, m.Clone(), v)

	maxIterations := cols * maxIterationsPerColumn
	iteration := 0
	for n := cols; n >= 2; {
		bn := b.at(n-1, n-1)
		if bn == 0 || math.Abs(b.at(n-2, n-1)/bn) < convergenceThreshold {
			n--
			continue
		}
		iteration++
		if iteration > maxIterations {
			// Only the trailing superdiagonal entry is tested, so a reducible
			// matrix that splits higher up ends here with approximate values.
			break
		}
		b.doFrancis(u, v, n)
	}

	singularValues := make([]float64, cols)
	for i := range singularValues {
		if b.diagonal(i) < 0 {
			b.negateDiagonal(i)
			v.negateColumn(i)
		}
		singularValues[i] = b.diagonal(i)
	}

	if isDescending(singularValues) {
		return &USV{U: u, S: newDiagonalMatrix(rows, cols, singularValues), V: v}
	}

	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order[:cols], func(i, j int) bool {
		return singularValues[order[i]] > singularValues[order[j]]
	})
	sorted := make([]float64, cols)
	for i := range sorted {
		sorted[i] = singularValues[order[i]]
	}
	return &USV{
		U: u.shuffleColumns(order),
		S: newDiagonalMatrix(rows, cols, sorted),
		V: v.shuffleColumns(order[:cols]),
	}
}

// SingularValues returns the singular values of m in descending order.
func SingularValues(m *Matrix) []float64 {
	return Decompose(m).SingularValues()
}

// IsFullRank returns true if none of the singular values of a size x size
// matrix fall below RankTolerance.
func IsFullRank(s *DiagonalMatrix, size int) bool {
	for i := 0; i < size; i++ {
		if math.Abs(s.At(i, i)) < RankTolerance {
			return false
		}
	}
	return true
}

// bidiagonalize reduces m to upper bidiagonal form with alternating
// Householder reflections, accumulating them into u and v.
func bidiagonalize(u, m, v *Matrix) *bidiagonal {
	_, cols := m.Dims()
	for i := 0; i < cols; i++ {
		rU := newReflector(m.column(i, i))
		rU.applyFromLeftTo(m)
		rU.applyFromRightTo(u)
		if i < cols-1 {
			rV := newReflector(m.row(i, i+1))
			rV.applyFromRightTo(m)
			rV.applyFromRightTo(v)
		}
	}
	return newBidiagonal(m)
}

func isDescending(values []float64) bool {
	for i := 0; i+1 < len(values); i++ {
		if values[i] < values[i+1] {
			return false
		}
	}
	return true
}
