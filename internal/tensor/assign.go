package tensor

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/strided/internal/parallel"
)

var parallelConfig atomic.Pointer[parallel.Config]

func init() {
	cfg := parallel.DefaultConfig()
	parallelConfig.Store(&cfg)
}

// SetParallelConfig controls how element-wise copies of large strided views are
// split across goroutines. Copies still complete before the call returns.
func SetParallelConfig(cfg parallel.Config) {
	parallelConfig.Store(&cfg)
}

// ParallelConfig returns the configuration used for element-wise copies.
func ParallelConfig() parallel.Config {
	return *parallelConfig.Load()
}

// Assign copies src's elements into t, pairing positions in row-major order.
//
// The shapes must be equal, or equal once size-1 dimensions are dropped from both.
// Writes go to t's store and are visible through every view aliasing it. When src and t
// overlap in the same store, src is read completely before anything is written.
//
// Example:
//
//	dst := base.MustSlice(tensor.Point(1), tensor.All, tensor.All, tensor.All)
//	err := dst.Assign(other.MustSlice(tensor.Point(0), tensor.All, tensor.All, tensor.All))
func (t *Tensor[T]) Assign(src *Tensor[T]) error {
	if src == nil {
		return errors.Wrap(ErrShapeMismatch, "assign from nil tensor")
	}
	if !t.geom.Shape.Equal(src.geom.Shape) && !t.geom.Shape.Squeezed().Equal(src.geom.Shape.Squeezed()) {
		return errors.Wrapf(ErrShapeMismatch, "cannot assign shape %v to shape %v", src.geom.Shape, t.geom.Shape)
	}
	copyElements(t, src)
	return nil
}

// SliceAssign writes src into the view of t selected by specs: t[specs...] = src.
func (t *Tensor[T]) SliceAssign(src *Tensor[T], specs ...Index) error {
	dst, err := t.Slice(specs...)
	if err != nil {
		return err
	}
	defer dst.Release()
	return dst.Assign(src)
}

// copyElements copies src into dst in row-major order. Both must hold the same
// number of elements.
func copyElements[T DType](dst, src *Tensor[T]) {
	n := dst.NumElements()
	if dst.IsContiguous() && src.IsContiguous() {
		klog.V(2).Infof("tensor: contiguous copy of %d elements", n)
		// copy handles overlapping ranges.
		copy(dst.store.data[dst.geom.Offset:dst.geom.Offset+n], src.store.data[src.geom.Offset:src.geom.Offset+n])
		return
	}

	srcData, srcGeom := src.store.data, src.geom
	if overlaps(dst, src) {
		klog.V(2).Infof("tensor: source %v overlaps destination %v, staging %d elements", src.geom.Shape, dst.geom.Shape, n)
		srcData = src.Data()
		srcGeom = Geometry{Shape: src.geom.Shape, Strides: src.geom.Shape.ComputeStrides()}
	}

	klog.V(2).Infof("tensor: strided copy of %d elements", n)
	dstData, dstGeom := dst.store.data, dst.geom
	parallel.ForRange(n, func(start, end int) {
		dc := newCursor(dstGeom, start)
		sc := newCursor(srcGeom, start)
		for i := start; i < end; i++ {
			dstData[dc.flat] = srcData[sc.flat]
			dc.next()
			sc.next()
		}
	}, ParallelConfig())
}

// overlaps reports whether two views share a store and their footprints intersect.
func overlaps[T DType](a, b *Tensor[T]) bool {
	if a.store != b.store {
		return false
	}
	aLo, aHi := a.geom.Footprint()
	bLo, bHi := b.geom.Footprint()
	return aLo <= bHi && bLo <= aHi
}

// cursor walks a geometry in row-major order starting from any element.
type cursor struct {
	g       Geometry
	indices []int
	flat    int
}

// newCursor positions a cursor on the element with row-major rank start.
func newCursor(g Geometry, start int) *cursor {
	c := &cursor{g: g, indices: make([]int, g.Rank()), flat: g.Offset}
	for d := g.Rank() - 1; d >= 0; d-- {
		c.indices[d] = start % g.Shape[d]
		start /= g.Shape[d]
		c.flat += c.indices[d] * g.Strides[d]
	}
	return c
}

// next advances to the following element, last axis fastest.
func (c *cursor) next() {
	for d := c.g.Rank() - 1; d >= 0; d-- {
		c.indices[d]++
		c.flat += c.g.Strides[d]
		if c.indices[d] < c.g.Shape[d] {
			return
		}
		c.flat -= c.indices[d] * c.g.Strides[d]
		c.indices[d] = 0
	}
}
