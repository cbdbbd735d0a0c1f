package svd

import "math"

// reflector is the Householder transform H = I - gamma*u*u^T that maps a
// vector x onto (-tau, 0, ..., 0). Applied to an L-sized operand it acts on
// the trailing len(u) coordinates and leaves the rest untouched.
type reflector struct {
	u     []float64
	gamma float64
}

func newReflector(v []float64) *reflector {
	u := append([]float64(nil), v...)

	// Normalize by the maximum magnitude so the squares neither overflow nor underflow.
	mx := 0.0
	for _, x := range u {
		mx = math.Max(math.Abs(x), mx)
	}
	if mx == 0 {
		for i := range u {
			u[i] = 0
		}
		return &reflector{u: u, gamma: 0}
	}

	tau := 0.0
	for i := range u {
		u[i] /= mx
		tau += u[i] * u[i]
	}
	tau = math.Sqrt(tau)
	// tau carries the sign of the first element
	if u[0] < 0 {
		tau = -tau
	}
	u0 := u[0] + tau
	u[0] = u0
	for i := range u {
		u[i] /= u0
	}
	return &reflector{u: u, gamma: u0 / tau}
}

// applyFromLeftTo replaces m with H*m.
func (r *reflector) applyFromLeftTo(m *Matrix) {
	offset := m.rows - len(r.u)
	for j := 0; j < m.cols; j++ {
		gUM := 0.0
		for k, uk := range r.u {
			gUM += uk * m.At(offset+k, j)
		}
		gUM *= r.gamma
		for k, uk := range r.u {
			m.Set(offset+k, j, m.At(offset+k, j)-uk*gUM)
		}
	}
}

// applyFromRightTo replaces m with m*H.
func (r *reflector) applyFromRightTo(m *Matrix) {
	offset := m.cols - len(r.u)
	for i := 0; i < m.rows; i++ {
		gMU := 0.0
		for k, uk := range r.u {
			gMU += uk * m.At(i, offset+k)
		}
		gMU *= r.gamma
		for k, uk := range r.u {
			m.Set(i, offset+k, m.At(i, offset+k)-gMU*uk)
		}
	}
}
