// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides strided multi-dimensional views over shared flat storage.
//
// # Overview
//
// A Tensor is a (shape, strides, offset, store) tuple. This package provides:
//   - Generic type-safe tensors (Tensor[T])
//   - Zero-copy slicing with points, closed intervals and All
//   - Contiguity analysis to pick fast memory copies over strided iteration
//   - Assignment between views, safe when they alias the same store
//   - Matrix extraction and gonum interop
//
// # Basic Usage
//
//	t, _ := tensor.Full[float64](tensor.Shape{5, 5, 5}, 0)
//	t.Set(1, 2, 2, 2)
//
//	// A view sharing t's store. Points keep their dimension with size 1.
//	s := t.MustSlice(tensor.Point(2), tensor.Interval(1, 3), tensor.All) // Shape: [1, 3, 5]
//	s.Set(16, 0, 0, 0)   // Visible as t.At(2, 1, 0)
//	s.IsContiguous()     // true
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float32, float64, float16.Float16 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers, useful for images)
//   - bool (boolean masks)
//
// # Memory Management
//
// Slices never copy. The store is reference-counted by the views over it and
// IsShared reports whether other views exist. Views are not safe for concurrent
// mutation; synchronization is up to the caller.
//
// # Errors
//
// Contract violations wrap ErrShapeMismatch, ErrIndexOutOfBounds or ErrInvalidShape
// and can be matched with errors.Is. At, Set and the Must* functions panic with the
// same errors.
package tensor
