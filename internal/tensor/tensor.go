package tensor

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// Tensor is a strided view over a flat store of elements of type T.
//
// A tensor created by Full, Zeros or FromSlice owns a fresh store. Slice returns a view
// that aliases its parent's store: writes through either view are visible to the other.
// Views are not safe for concurrent mutation.
//
// Example:
//
//	t := tensor.MustFull[float64](tensor.Shape{5, 5, 5}, 0)
//	t.Set(16, 0, 1, 1)
//	s := t.MustSlice(tensor.Point(0), tensor.Interval(1, 2), tensor.All) // Shape: [1, 2, 5]
//	fmt.Println(s.At(0, 0, 1)) // 16
type Tensor[T DType] struct {
	store    *storage[T]
	geom     Geometry
	released atomic.Bool
}

func newView[T DType](store *storage[T], geom Geometry) *Tensor[T] {
	return &Tensor[T]{store: store, geom: geom}
}

// Zeros creates a tensor filled with the zero value of T.
func Zeros[T DType](shape Shape) (*Tensor[T], error) {
	geom, err := PackedGeometry(shape)
	if err != nil {
		return nil, err
	}
	return newView(newStorage[T](shape.NumElements()), geom), nil
}

// Full creates a tensor with every element set to value.
//
// Example:
//
//	t, err := tensor.Full[float32](tensor.Shape{3, 3}, 3.14)
func Full[T DType](shape Shape, value T) (*Tensor[T], error) {
	t, err := Zeros[T](shape)
	if err != nil {
		return nil, err
	}
	data := t.store.data
	for i := range data {
		data[i] = value
	}
	return t, nil
}

// FromSlice creates a tensor from a flat, row-major Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T DType](shape Shape, elements []T) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(elements) {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(elements))
	}
	t, err := Zeros[T](shape)
	if err != nil {
		return nil, err
	}
	copy(t.store.data, elements)
	return t, nil
}

// MustFull is like Full but panics on error.
func MustFull[T DType](shape Shape, value T) *Tensor[T] {
	t, err := Full(shape, value)
	if err != nil {
		panic(err)
	}
	return t
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice[T DType](shape Shape, elements []T) *Tensor[T] {
	t, err := FromSlice(shape, elements)
	if err != nil {
		panic(err)
	}
	return t
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor[T]) Shape() Shape {
	return t.geom.Shape.Clone()
}

// Strides returns a copy of the tensor's strides, in elements.
func (t *Tensor[T]) Strides() []int {
	return slices.Clone(t.geom.Strides)
}

// Offset returns the store position of logical index (0, ..., 0).
func (t *Tensor[T]) Offset() int {
	return t.geom.Offset
}

// Geometry returns a copy of the view's geometry.
func (t *Tensor[T]) Geometry() Geometry {
	return t.geom.Clone()
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return t.geom.Rank()
}

// NumElements returns the number of logical elements in the view.
func (t *Tensor[T]) NumElements() int {
	return t.geom.Shape.NumElements()
}

// DType returns the tensor's data type.
func (t *Tensor[T]) DType() DataType {
	return inferDataType[T]()
}

// Get returns the element at the given logical indices.
func (t *Tensor[T]) Get(indices ...int) (T, error) {
	flat, err := t.geom.FlatIndex(indices...)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.store.data[flat], nil
}

// Put writes value at the given logical indices. The write is visible to every view
// sharing the store.
func (t *Tensor[T]) Put(value T, indices ...int) error {
	flat, err := t.geom.FlatIndex(indices...)
	if err != nil {
		return err
	}
	t.store.data[flat] = value
	return nil
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
//
// Example:
//
//	t := tensor.MustFull[float32](Shape{3, 4}, 0)
//	value := t.At(1, 2) // Row 1, column 2
func (t *Tensor[T]) At(indices ...int) T {
	v, err := t.Get(indices...)
	if err != nil {
		panic(err)
	}
	return v
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T]) Set(value T, indices ...int) {
	if err := t.Put(value, indices...); err != nil {
		panic(err)
	}
}

// Slice returns a view selecting part of every dimension. Exactly one Index per
// dimension is required. No elements are copied: the view shares the store.
//
// Example:
//
//	t := tensor.MustFull[float64](Shape{2, 2, 2, 2}, 0)
//	s, err := t.Slice(tensor.Point(1), tensor.Point(1), tensor.All, tensor.All) // Shape: [1, 1, 2, 2]
func (t *Tensor[T]) Slice(specs ...Index) (*Tensor[T], error) {
	geom, err := ComputeSliceGeometry(t.geom, specs)
	if err != nil {
		return nil, err
	}
	t.store.addRef()
	return newView(t.store, geom), nil
}

// MustSlice is like Slice but panics on error.
func (t *Tensor[T]) MustSlice(specs ...Index) *Tensor[T] {
	s, err := t.Slice(specs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Squeeze returns a view without the size-1 dimensions.
// This is a view operation (no data copy).
//
// Example:
//
//	x := tensor.MustFull[float32](Shape{2, 1, 3}, 0)
//	y := x.Squeeze() // Shape: [2, 3]
func (t *Tensor[T]) Squeeze() *Tensor[T] {
	t.store.addRef()
	return newView(t.store, t.geom.Squeeze())
}

// IsContiguous reports whether the view's elements occupy one unbroken, unit-step
// run of the store in row-major order.
func (t *Tensor[T]) IsContiguous() bool {
	return t.geom.IsContiguous()
}

// SharesStorage reports whether t and other are views over the same store.
func (t *Tensor[T]) SharesStorage(other *Tensor[T]) bool {
	return t.store == other.store
}

// IsShared reports whether other live views reference the same store.
func (t *Tensor[T]) IsShared() bool {
	return !t.store.isUnique()
}

// Release drops this view's reference to the store. The view must not be used
// afterwards. Calling Release more than once has no further effect.
func (t *Tensor[T]) Release() {
	if t.released.CompareAndSwap(false, true) {
		t.store.release()
	}
}

// Data returns the logical elements in row-major order as a new slice.
func (t *Tensor[T]) Data() []T {
	out := make([]T, t.NumElements())
	if t.IsContiguous() {
		copy(out, t.store.data[t.geom.Offset:])
		return out
	}
	i := 0
	t.geom.forEachOffset(func(flat int) bool {
		out[i] = t.store.data[flat]
		i++
		return true
	})
	return out
}

// Clone returns a packed copy of the view with its own store.
func (t *Tensor[T]) Clone() *Tensor[T] {
	geom := Geometry{
		Shape:   t.geom.Shape.Clone(),
		Strides: t.geom.Shape.ComputeStrides(),
	}
	dst := newView(newStorage[T](t.NumElements()), geom)
	copyElements(dst, t)
	return dst
}

// Equal reports whether t and other have the same shape and the same elements in
// row-major order. Storage identity and strides do not matter.
func (t *Tensor[T]) Equal(other *Tensor[T]) bool {
	if other == nil {
		return false
	}
	if !t.geom.Shape.Equal(other.geom.Shape) {
		return false
	}
	return sameElements(t.geom, t.store.data, other.geom, other.store.data)
}

// EquivalentTo is like Equal, but size-1 dimensions are ignored on both sides.
// A [1, 2, 2] view and a [1, 1, 2, 2] view with the same elements are equivalent.
func (t *Tensor[T]) EquivalentTo(other *Tensor[T]) bool {
	if other == nil {
		return false
	}
	a, b := t.geom.Squeeze(), other.geom.Squeeze()
	if !a.Shape.Equal(b.Shape) {
		return false
	}
	return sameElements(a, t.store.data, b, other.store.data)
}

func sameElements[T DType](ga Geometry, a []T, gb Geometry, b []T) bool {
	eq := equalFunc[T]()
	if ga.IsContiguous() && gb.IsContiguous() {
		n := ga.Shape.NumElements()
		a, b = a[ga.Offset:ga.Offset+n], b[gb.Offset:gb.Offset+n]
		for i := range a {
			if !eq(a[i], b[i]) {
				return false
			}
		}
		return true
	}

	offsets := make([]int, 0, gb.Shape.NumElements())
	gb.forEachOffset(func(flat int) bool {
		offsets = append(offsets, flat)
		return true
	})
	equal := true
	i := 0
	ga.forEachOffset(func(flat int) bool {
		if !eq(a[flat], b[offsets[i]]) {
			equal = false
			return false
		}
		i++
		return true
	})
	return equal
}

// String returns a one-line summary of the view.
func (t *Tensor[T]) String() string {
	storeBytes := uint64(t.store.len() * t.DType().Size()) //nolint:gosec // lengths are non-negative
	return fmt.Sprintf("Tensor[%s]%v strides=%v offset=%d store=%s contiguous=%t",
		t.DType(), []int(t.geom.Shape), t.geom.Strides, t.geom.Offset, humanize.Bytes(storeBytes), t.IsContiguous())
}
