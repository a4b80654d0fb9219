package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Matrix is a two-dimensional view over a tensor's store.
type Matrix[T DType] struct {
	view *Tensor[T]
}

// NewMatrix creates a matrix from rows of equal length. The elements are copied.
//
// Example:
//
//	m, err := tensor.NewMatrix([][]float64{{0, 0}, {0, 1}})
func NewMatrix[T DType](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrInvalidShape, "matrix needs at least one row")
	}
	cols := len(rows[0])
	elements := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrShapeMismatch, "row %d has %d columns, row 0 has %d", i, len(row), cols)
		}
		elements = append(elements, row...)
	}
	t, err := FromSlice(Shape{len(rows), cols}, elements)
	if err != nil {
		return nil, err
	}
	return &Matrix[T]{view: t}, nil
}

// AsMatrix slices t with specs and reinterprets the result as a matrix.
//
// After slicing, at most two dimensions may have size > 1. Those become the rows and
// columns, in their original order. If fewer than two remain, the highest-numbered
// size-1 dimensions fill in, so fixing every dimension to a point yields a 1×1 matrix.
// No elements are copied.
//
// Example:
//
//	t := tensor.MustFull[float64](Shape{2, 2, 2, 2}, 0)
//	m, err := t.AsMatrix(tensor.Point(1), tensor.Point(1), tensor.Interval(0, 1), tensor.Interval(0, 1)) // 2×2
func (t *Tensor[T]) AsMatrix(specs ...Index) (*Matrix[T], error) {
	if t.Rank() < 2 {
		return nil, errors.Wrapf(ErrShapeMismatch, "cannot extract a matrix from rank-%d shape %v", t.Rank(), t.geom.Shape)
	}
	geom, err := ComputeSliceGeometry(t.geom, specs)
	if err != nil {
		return nil, err
	}

	keep := make([]bool, geom.Rank())
	numKept := 0
	for d, size := range geom.Shape {
		if size > 1 {
			keep[d] = true
			numKept++
		}
	}
	if numKept > 2 {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"slice %s of shape %v leaves %d dimensions larger than 1, a matrix needs at most 2",
			formatSpecs(specs), t.geom.Shape, numKept)
	}
	for d := geom.Rank() - 1; d >= 0 && numKept < 2; d-- {
		if !keep[d] {
			keep[d] = true
			numKept++
		}
	}

	m := Geometry{Shape: make(Shape, 0, 2), Strides: make([]int, 0, 2), Offset: geom.Offset}
	for d, kept := range keep {
		if kept {
			m.Shape = append(m.Shape, geom.Shape[d])
			m.Strides = append(m.Strides, geom.Strides[d])
		}
	}
	t.store.addRef()
	return &Matrix[T]{view: newView(t.store, m)}, nil
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int {
	return m.view.geom.Shape[0]
}

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int {
	return m.view.geom.Shape[1]
}

// Dims returns the number of rows and columns.
func (m *Matrix[T]) Dims() (rows, cols int) {
	return m.Rows(), m.Cols()
}

// At returns the element at row i, column j. Panics if out of bounds.
func (m *Matrix[T]) At(i, j int) T {
	return m.view.At(i, j)
}

// Set writes the element at row i, column j. Panics if out of bounds.
func (m *Matrix[T]) Set(value T, i, j int) {
	m.view.Set(value, i, j)
}

// Tensor returns the rank-2 tensor view backing the matrix. It shares the store.
func (m *Matrix[T]) Tensor() *Tensor[T] {
	return m.view
}

// IsContiguous reports whether the matrix elements form one unit-step run.
func (m *Matrix[T]) IsContiguous() bool {
	return m.view.IsContiguous()
}

// Equal reports whether both matrices have the same dimensions and elements.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	if other == nil {
		return false
	}
	return m.view.Equal(other.view)
}

// ToSlices copies the matrix into a slice of rows.
func (m *Matrix[T]) ToSlices() [][]T {
	data := m.view.Data()
	rows, cols := m.Dims()
	out := make([][]T, rows)
	for i := range out {
		out[i] = data[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return out
}

// Release drops the matrix's reference to the store.
func (m *Matrix[T]) Release() {
	m.view.Release()
}

// String returns a one-line summary of the matrix.
func (m *Matrix[T]) String() string {
	return fmt.Sprintf("Matrix[%s]%dx%d %v", m.view.DType(), m.Rows(), m.Cols(), m.ToSlices())
}
