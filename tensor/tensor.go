// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/strided/internal/parallel"
	"github.com/born-ml/strided/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64, float16.Float16, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
	Float16 DataType = tensor.Float16
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Geometry is the shape, strides and origin offset of a view.
type Geometry = tensor.Geometry

// Index selects part of one dimension: a Point, an Interval or All.
type Index = tensor.Index

// Tensor is a generic strided view over shared storage.
//
// Example:
//
//	x, _ := tensor.Full[float32](tensor.Shape{2, 3}, 0)
//	row := x.MustSlice(tensor.Point(1), tensor.All)
//	row.Set(5, 0, 2) // x.At(1, 2) == 5
type Tensor[T DType] = tensor.Tensor[T]

// Matrix is a two-dimensional view.
type Matrix[T DType] = tensor.Matrix[T]

// ParallelConfig controls how large strided copies are split across goroutines.
type ParallelConfig = parallel.Config

// Errors reported by tensor operations.
var (
	ErrShapeMismatch    = tensor.ErrShapeMismatch
	ErrIndexOutOfBounds = tensor.ErrIndexOutOfBounds
	ErrInvalidShape     = tensor.ErrInvalidShape
)

// All selects a whole dimension.
var All = tensor.All

// Point selects a single position along a dimension.
func Point(i int) Index {
	return tensor.Point(i)
}

// Interval selects the closed range [lo, hi] along a dimension.
func Interval(lo, hi int) Index {
	return tensor.Interval(lo, hi)
}

// Points converts plain positions into Point indices.
func Points(indices ...int) []Index {
	return tensor.Points(indices...)
}

// Creation functions

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	x, err := tensor.Zeros[float32](tensor.Shape{2, 3})
func Zeros[T DType](shape Shape) (*Tensor[T], error) {
	return tensor.Zeros[T](shape)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	x, err := tensor.Full[float32](tensor.Shape{2, 3}, 3.14)
func Full[T DType](shape Shape, value T) (*Tensor[T], error) {
	return tensor.Full(shape, value)
}

// FromSlice creates a tensor from a flat row-major Go slice.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(tensor.Shape{2, 3}, data)
func FromSlice[T DType](shape Shape, elements []T) (*Tensor[T], error) {
	return tensor.FromSlice(shape, elements)
}

// MustFull is like Full but panics on error.
func MustFull[T DType](shape Shape, value T) *Tensor[T] {
	return tensor.MustFull(shape, value)
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice[T DType](shape Shape, elements []T) *Tensor[T] {
	return tensor.MustFromSlice(shape, elements)
}

// NewMatrix creates a matrix from rows of equal length.
//
// Example:
//
//	m, err := tensor.NewMatrix([][]float64{{0, 0}, {0, 1}})
func NewMatrix[T DType](rows [][]T) (*Matrix[T], error) {
	return tensor.NewMatrix(rows)
}

// Geometry functions

// PackedGeometry returns the row-major geometry of a freshly allocated tensor.
func PackedGeometry(shape Shape) (Geometry, error) {
	return tensor.PackedGeometry(shape)
}

// ComputeSliceGeometry applies one Index per dimension to base.
func ComputeSliceGeometry(base Geometry, specs []Index) (Geometry, error) {
	return tensor.ComputeSliceGeometry(base, specs)
}

// gonum interop

// ToDense converts a float64 matrix to a gonum dense matrix, sharing the store when
// every row is a unit-step run.
func ToDense(m *Matrix[float64]) *mat.Dense {
	return tensor.ToDense(m)
}

// FromDense copies a gonum matrix into a new rank-2 tensor.
func FromDense(a mat.Matrix) (*Tensor[float64], error) {
	return tensor.FromDense(a)
}

// Configuration

// SetParallelConfig controls how element-wise copies of large strided views are
// split across goroutines.
func SetParallelConfig(cfg ParallelConfig) {
	tensor.SetParallelConfig(cfg)
}

// GetParallelConfig returns the configuration used for element-wise copies.
func GetParallelConfig() ParallelConfig {
	return tensor.ParallelConfig()
}

// DefaultParallelConfig returns defaults based on CPU count.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// ParseSpecs parses a comma-separated list of indices such as "1...4, :, 2".
func ParseSpecs(s string) ([]Index, error) {
	return tensor.ParseSpecs(s)
}
