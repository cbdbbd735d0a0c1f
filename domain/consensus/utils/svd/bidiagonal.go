package svd

import "math"

// bidiagonal is an upper bidiagonal N x N matrix stored as
// [b0, g0, b1, g1, ..., b(N-1)]: the diagonal at even indices and the
// superdiagonal at odd ones.
type bidiagonal struct {
	size  int
	block []float64
}

func newBidiagonal(m *Matrix) *bidiagonal {
	_, size := m.Dims()
	block := make([]float64, 2*size-1)
	for i := 0; i < size; i++ {
		block[2*i] = m.At(i, i)
		if i < size-1 {
			block[2*i+1] = m.At(i, i+1)
		}
	}
	return &bidiagonal{size: size, block: block}
}

func (b *bidiagonal) at(i, j int) float64 {
	switch j - i {
	case 0:
		return b.block[2*i]
	case 1:
		return b.block[2*i+1]
	default:
		return 0
	}
}

func (b *bidiagonal) diagonal(i int) float64 {
	return b.block[2*i]
}

func (b *bidiagonal) negateDiagonal(i int) {
	b.block[2*i] = -b.block[2*i]
}

// applyFirstRotatorFromRight rotates columns 0 and 1 and returns the bulge
// produced at (1, 0).
func (b *bidiagonal) applyFirstRotatorFromRight(r *rotator) float64 {
	b1, g1, b2 := b.block[0], b.block[1], b.block[2]
	r11, r12, r21, r22 := r.at(0, 0), r.at(0, 1), r.at(1, 0), r.at(1, 1)
	b.block[0] = b1*r11 + g1*r21
	b.block[1] = b1*r12 + g1*r22
	b.block[2] = b2 * r22
	return b2 * r21
}

// applyRotatorFromRight rotates columns n and n+1, chasing the bulge at
// (n-1, n+1) down to (n+1, n).
func (b *bidiagonal) applyRotatorFromRight(r *rotator, n int, bulge float64) float64 {
	p := b.block[2*n:]
	g0 := b.block[2*n-1]
	b1, g1, b2 := p[0], p[1], p[2]
	r11, r12, r21, r22 := r.at(0, 0), r.at(0, 1), r.at(1, 0), r.at(1, 1)
	b.block[2*n-1] = g0*r11 + bulge*r21
	p[0] = b1*r11 + g1*r21
	p[1] = b1*r12 + g1*r22
	p[2] = b2 * r22
	return b2 * r21
}

// applyRotatorFromLeft rotates rows n and n+1, chasing the bulge at
// (n+1, n) up to (n, n+2). The last rotation leaves no bulge behind.
func (b *bidiagonal) applyRotatorFromLeft(r *rotator, n int, bulge float64) float64 {
	p := b.block[2*n:]
	b1, g1, b2 := p[0], p[1], p[2]
	r11, r12, r21, r22 := r.at(0, 0), r.at(0, 1), r.at(1, 0), r.at(1, 1)
	p[0] = r11*b1 + r21*bulge
	p[1] = r11*g1 + r21*b2
	p[2] = r12*g1 + r22*b2
	if n < b.size-2 {
		g2 := p[3]
		p[3] = r22 * g2
		return r21 * g2
	}
	return 0
}

// calculateShift returns the Wilkinson shift taken from the trailing 2x2
// block of the leading n x n submatrix.
func (b *bidiagonal) calculateShift(n int) float64 {
	b1 := b.at(n-2, n-2)
	b2 := b.at(n-1, n-1)
	g1 := b.at(n-2, n-1)

	d := b1*b1 + b2*b2 + g1*g1
	e := b1 * b1 * b2 * b2
	f := d*d - 4*e
	if f < 0 {
		return b2
	}
	f = math.Sqrt(f)

	if d > f {
		l1 := math.Sqrt((d + f) / 2)
		l2 := math.Sqrt((d - f) / 2)
		if b2 >= 0 {
			if math.Abs(b2-l1) < math.Abs(b2-l2) {
				return l1
			}
			return l2
		}
		if math.Abs(b2+l1) < math.Abs(b2+l2) {
			return -l1
		}
		return -l2
	}

	l1 := math.Sqrt((d + f) / 2)
	if math.Abs(b2-l1) <= math.Abs(b2+l1) {
		return l1
	}
	return -l1
}

// doFrancis performs one implicitly shifted QR step on the leading n x n
// submatrix and accumulates the rotations into u and v.
func (b *bidiagonal) doFrancis(u, v *Matrix, n int) {
	rho := b.calculateShift(n)
	b1 := b.at(0, 0)
	g1 := b.at(0, 1)

	mx := math.Max(math.Abs(rho), math.Max(math.Abs(b1), math.Abs(g1)))
	if mx > 0 {
		rho /= mx
		b1 /= mx
		g1 /= mx
	}

	r0 := newRotator(b1*b1-rho*rho, b1*g1)
	bulge := b.applyFirstRotatorFromRight(r0)
	r0.applyFromRightTo(v, 0)

	r1 := newRotator(b.at(0, 0), bulge)
	bulge = b.applyRotatorFromLeft(r1, 0, bulge)
	r1.applyFromRightTo(u, 0)

	for i := 1; i+1 < n; i++ {
		rV := newRotator(b.at(i-1, i), bulge)
		bulge = b.applyRotatorFromRight(rV, i, bulge)
		rV.applyFromRightTo(v, i)

		rU := newRotator(b.at(i, i), bulge)
		bulge = b.applyRotatorFromLeft(rU, i, bulge)
		rU.applyFromRightTo(u, i)
	}
}
