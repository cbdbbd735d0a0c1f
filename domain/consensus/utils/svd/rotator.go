package svd

import "math"

// rotator is a 2x2 Givens rotation Q with Q^T * (x1, x2) = (*, 0).
// elements is row-major: [cs, -sn, sn, cs].
type rotator struct {
	elements [4]float64
}

func newRotator(x1, x2 float64) *rotator {
	mx := math.Max(math.Abs(x1), math.Abs(x2))
	if mx == 0 {
		// Nothing to annihilate.
		return &rotator{elements: [4]float64{1, 0, 0, 1}}
	}
	x1 /= mx
	x2 /= mx
	norm := math.Sqrt(x1*x1 + x2*x2)
	cs := x1 / norm
	sn := x2 / norm
	return &rotator{elements: [4]float64{cs, -sn, sn, cs}}
}

func (r *rotator) at(i, j int) float64 {
	return r.elements[i*2+j]
}

// applyFromRightTo rotates columns k and k+1 of m.
func (r *rotator) applyFromRightTo(m *Matrix, k int) {
	for i := 0; i < m.rows; i++ {
		x1 := m.At(i, k)
		x2 := m.At(i, k+1)
		m.Set(i, k, x1*r.elements[0]+x2*r.elements[2])
		m.Set(i, k+1, x1*r.elements[1]+x2*r.elements[3])
	}
}
