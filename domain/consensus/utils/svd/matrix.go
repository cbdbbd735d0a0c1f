package svd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// noCopy may be embedded into structs which must not be copied
// after the first use. It is flagged by go vet's copylocks checker.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Matrix is a dense row-major matrix that exclusively owns its buffer.
// Matrices are handled by pointer only: duplicating one is an explicit Clone,
// and handing the buffer to a new owner is Take.
type Matrix struct {
	_ noCopy

	rows int
	cols int
	data []float64
}

// NewMatrix returns a zero rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(errors.Errorf("invalid matrix dimensions %dx%d", rows, cols))
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// NewMatrixFromValues returns a rows x cols matrix filled from values in
// row-major order. The matrix takes its own copy of values.
func NewMatrixFromValues(rows, cols int, values []float64) *Matrix {
	m := NewMatrix(rows, cols)
	if len(values) != rows*cols {
		panic(errors.Errorf("got %d values for a %dx%d matrix", len(values), rows, cols))
	}
	copy(m.data, values)
	return m
}

// Identity returns the size x size identity matrix.
func Identity(size int) *Matrix {
	m := NewMatrix(size, size)
	for i := 0; i < size; i++ {
		m.data[i*size+i] = 1
	}
	return m
}

// Dims returns the number of rows and columns of m.
func (m *Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// IsEmpty returns true if the buffer of m was moved out by Take.
func (m *Matrix) IsEmpty() bool {
	return m.data == nil
}

// At returns the element at row i and column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Set sets the element at row i and column j.
func (m *Matrix) Set(i, j int, value float64) {
	m.data[i*m.cols+j] = value
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{rows: m.rows, cols: m.cols, data: append([]float64(nil), m.data...)}
}

// Take moves the buffer of m into a new matrix and leaves m empty.
func (m *Matrix) Take() *Matrix {
	taken := &Matrix{rows: m.rows, cols: m.cols, data: m.data}
	m.rows, m.cols, m.data = 0, 0, nil
	return taken
}

// Transpose returns a new matrix that is the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	t := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return t
}

// Mul returns the product m * other.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	if m.cols != other.rows {
		panic(errors.Errorf("cannot multiply a %dx%d matrix by a %dx%d matrix",
			m.rows, m.cols, other.rows, other.cols))
	}
	product := NewMatrix(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			a := m.data[i*m.cols+k]
			if a == 0 {
				continue
			}
			for j := 0; j < other.cols; j++ {
				product.data[i*other.cols+j] += a * other.data[k*other.cols+j]
			}
		}
	}
	return product
}

// column copies column j from row `from` downwards.
func (m *Matrix) column(j, from int) []float64 {
	column := make([]float64, 0, m.rows-from)
	for i := from; i < m.rows; i++ {
		column = append(column, m.data[i*m.cols+j])
	}
	return column
}

// row copies row i from column `from` rightwards.
func (m *Matrix) row(i, from int) []float64 {
	return append([]float64(nil), m.data[i*m.cols+from:(i+1)*m.cols]...)
}

func (m *Matrix) negateColumn(j int) {
	for i := 0; i < m.rows; i++ {
		m.data[i*m.cols+j] = -m.data[i*m.cols+j]
	}
}

// shuffleColumns returns a matrix whose column j is column order[j] of m.
func (m *Matrix) shuffleColumns(order []int) *Matrix {
	shuffled := NewMatrix(m.rows, m.cols)
	for j := 0; j < m.cols; j++ {
		for i := 0; i < m.rows; i++ {
			shuffled.data[i*m.cols+j] = m.data[i*m.cols+order[j]]
		}
	}
	return shuffled
}

func (m *Matrix) String() string {
	var builder strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				builder.WriteByte('\t')
			}
			fmt.Fprintf(&builder, "%g", m.At(i, j))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// DiagonalMatrix is a rows x cols matrix whose only non-zero elements are on
// the main diagonal.
type DiagonalMatrix struct {
	rows   int
	cols   int
	values []float64
}

func newDiagonalMatrix(rows, cols int, values []float64) *DiagonalMatrix {
	size := rows
	if cols < size {
		size = cols
	}
	return &DiagonalMatrix{rows: rows, cols: cols, values: append([]float64(nil), values[:size]...)}
}

// Dims returns the number of rows and columns of d.
func (d *DiagonalMatrix) Dims() (rows, cols int) {
	return d.rows, d.cols
}

// At returns the element at row i and column j.
func (d *DiagonalMatrix) At(i, j int) float64 {
	if i != j {
		return 0
	}
	return d.values[i]
}

// Values returns a copy of the diagonal.
func (d *DiagonalMatrix) Values() []float64 {
	return append([]float64(nil), d.values...)
}

// Transpose returns the cols x rows diagonal matrix with the same diagonal.
func (d *DiagonalMatrix) Transpose() *DiagonalMatrix {
	return newDiagonalMatrix(d.cols, d.rows, d.values)
}

func (d *DiagonalMatrix) toMatrix() *Matrix {
	m := NewMatrix(d.rows, d.cols)
	for i, value := range d.values {
		m.Set(i, i, value)
	}
	return m
}
