package tensor

import (
	"slices"

	"github.com/pkg/errors"
)

// Geometry describes how a view maps logical indices onto a flat store.
//
// The flat position of logical index (i0, i1, ...) is Offset + Σ i_d * Strides[d].
// Strides are counted in elements, not bytes.
type Geometry struct {
	Shape   Shape
	Strides []int
	Offset  int
}

// PackedGeometry returns the row-major geometry of a freshly allocated tensor.
func PackedGeometry(shape Shape) (Geometry, error) {
	if err := shape.Validate(); err != nil {
		return Geometry{}, err
	}
	return Geometry{
		Shape:   shape.Clone(),
		Strides: shape.ComputeStrides(),
		Offset:  0,
	}, nil
}

// Rank returns the number of dimensions.
func (g Geometry) Rank() int {
	return len(g.Shape)
}

// Clone returns a deep copy of the geometry.
func (g Geometry) Clone() Geometry {
	return Geometry{
		Shape:   g.Shape.Clone(),
		Strides: slices.Clone(g.Strides),
		Offset:  g.Offset,
	}
}

// ComputeSliceGeometry applies one Index per dimension to base and returns the
// geometry of the resulting view.
//
// Points and intervals move the origin by lo*stride along their dimension and keep the
// stride unchanged. A point keeps its dimension with size 1, so the rank never changes.
func ComputeSliceGeometry(base Geometry, specs []Index) (Geometry, error) {
	rank := base.Rank()
	if len(specs) != rank {
		return Geometry{}, errors.Wrapf(ErrIndexOutOfBounds,
			"got %d index specifications %s for rank-%d shape %v", len(specs), formatSpecs(specs), rank, base.Shape)
	}

	out := Geometry{
		Shape:   make(Shape, rank),
		Strides: slices.Clone(base.Strides),
		Offset:  base.Offset,
	}
	for d, ix := range specs {
		size := base.Shape[d]
		lo, hi := ix.Bounds(size)
		if lo < 0 || hi >= size || lo > hi {
			return Geometry{}, errors.Wrapf(ErrIndexOutOfBounds,
				"index %s for dimension %d of shape %v (size %d)", ix, d, base.Shape, size)
		}
		out.Shape[d] = hi - lo + 1
		out.Offset += lo * base.Strides[d]
	}
	return out, nil
}

// FlatIndex returns the store position of the given logical indices.
func (g Geometry) FlatIndex(indices ...int) (int, error) {
	if len(indices) != g.Rank() {
		return 0, errors.Wrapf(ErrIndexOutOfBounds,
			"expected %d indices for shape %v, got %d", g.Rank(), g.Shape, len(indices))
	}
	flat := g.Offset
	for d, idx := range indices {
		if idx < 0 || idx >= g.Shape[d] {
			return 0, errors.Wrapf(ErrIndexOutOfBounds,
				"index %d for dimension %d of shape %v (size %d)", idx, d, g.Shape, g.Shape[d])
		}
		flat += idx * g.Strides[d]
	}
	return flat, nil
}

// IsContiguous reports whether the view's elements, visited in row-major order, form
// one unbroken unit-step run of the store.
//
// Size-1 dimensions never step, so their strides are ignored.
func (g Geometry) IsContiguous() bool {
	expected := 1
	for d := g.Rank() - 1; d >= 0; d-- {
		if g.Shape[d] == 1 {
			continue
		}
		if g.Strides[d] != expected {
			return false
		}
		expected *= g.Shape[d]
	}
	return true
}

// Footprint returns the smallest and largest store positions the view touches.
func (g Geometry) Footprint() (lo, hi int) {
	lo, hi = g.Offset, g.Offset
	for d, size := range g.Shape {
		span := (size - 1) * g.Strides[d]
		if span < 0 {
			lo += span
		} else {
			hi += span
		}
	}
	return lo, hi
}

// Squeeze drops every size-1 dimension. The origin is unchanged.
func (g Geometry) Squeeze() Geometry {
	out := Geometry{
		Shape:   make(Shape, 0, g.Rank()),
		Strides: make([]int, 0, g.Rank()),
		Offset:  g.Offset,
	}
	for d, size := range g.Shape {
		if size == 1 {
			continue
		}
		out.Shape = append(out.Shape, size)
		out.Strides = append(out.Strides, g.Strides[d])
	}
	return out
}

// forEachOffset calls fn with the store position of every element in row-major
// order. Iteration stops early if fn returns false.
func (g Geometry) forEachOffset(fn func(flat int) bool) {
	g.iterate(make([]int, g.Rank()), func(flat int, _ []int) bool {
		return fn(flat)
	})
}

// iterate walks all logical indices in row-major order, keeping the flat position
// up to date incrementally. Size-1 axes are skipped when carrying.
//
// indices is owned by the iteration and must not be modified by fn.
func (g Geometry) iterate(indices []int, fn func(flat int, indices []int) bool) {
	for i := range indices {
		indices[i] = 0
	}
	axes := make([]int, 0, g.Rank())
	for d := g.Rank() - 1; d >= 0; d-- {
		if g.Shape[d] > 1 {
			axes = append(axes, d)
		}
	}

	flat := g.Offset
yielder:
	for {
		if !fn(flat, indices) {
			return
		}
		// Increment, last axis fastest.
		for _, axis := range axes {
			indices[axis]++
			flat += g.Strides[axis]
			if indices[axis] < g.Shape[axis] {
				continue yielder
			}
			flat -= indices[axis] * g.Strides[axis]
			indices[axis] = 0
		}
		// That was the last index.
		return
	}
}
