package tensor

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// ToDense converts a float64 matrix to a gonum dense matrix.
//
// When every row is a unit-step run of the store, the dense matrix aliases the store and
// writes through either side are shared. Otherwise the elements are copied.
func ToDense(m *Matrix[float64]) *mat.Dense {
	rows, cols := m.Dims()
	g := m.view.geom
	rowStride, colStride := g.Strides[0], g.Strides[1]
	if rows == 1 {
		rowStride = cols
	}
	if (cols == 1 || colStride == 1) && rowStride >= cols {
		end := g.Offset + (rows-1)*rowStride + cols
		var d mat.Dense
		d.SetRawMatrix(blas64.General{
			Rows:   rows,
			Cols:   cols,
			Stride: rowStride,
			Data:   m.view.store.data[g.Offset:end:end],
		})
		return &d
	}
	return mat.NewDense(rows, cols, m.view.Data())
}

// FromDense copies any gonum matrix into a new rank-2 tensor.
func FromDense(a mat.Matrix) (*Tensor[float64], error) {
	rows, cols := a.Dims()
	elements := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			elements = append(elements, a.At(i, j))
		}
	}
	return FromSlice(Shape{rows, cols}, elements)
}
