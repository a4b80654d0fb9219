package tensor

import "iter"

// All iterates over the view's elements in row-major order (last dimension fastest).
//
// It yields the logical indices and the element. The yielded indices slice is owned by
// the iteration: don't change it inside the loop, and clone it if it must be kept.
//
// Example:
//
//	for indices, v := range t.All() {
//	    fmt.Println(indices, v)
//	}
func (t *Tensor[T]) All() iter.Seq2[[]int, T] {
	return func(yield func([]int, T) bool) {
		data := t.store.data
		t.geom.iterate(make([]int, t.Rank()), func(flat int, indices []int) bool {
			return yield(indices, data[flat])
		})
	}
}

// Values iterates over the view's elements in row-major order.
func (t *Tensor[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		data := t.store.data
		t.geom.forEachOffset(func(flat int) bool {
			return yield(data[flat])
		})
	}
}
