package tensor

import (
	"sync"
	"sync/atomic"
)

// storage is a reference-counted flat element buffer shared by every view over it.
// The count tracks live views so a view can tell whether it is the only one.
type storage[T DType] struct {
	data  []T
	views atomic.Int32
	mu    sync.Mutex // For safe deallocation
}

// newStorage creates a new buffer with views = 1.
func newStorage[T DType](size int) *storage[T] {
	s := &storage[T]{
		data: make([]T, size),
	}
	s.views.Store(1)
	return s
}

// addRef increments the view count (for Slice operations).
func (s *storage[T]) addRef() {
	s.views.Add(1)
}

// release decrements the view count and drops the data when it reaches 0.
func (s *storage[T]) release() {
	if s.views.Add(-1) == 0 {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.data = nil
	}
}

// isUnique returns true if only one view references this buffer.
func (s *storage[T]) isUnique() bool {
	return s.views.Load() == 1
}

// len returns the number of allocated elements.
func (s *storage[T]) len() int {
	return len(s.data)
}
