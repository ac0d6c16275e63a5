// Copyright 2025 The Multiway Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the multiway
// preprocessing library.
//
// # Overview
//
// Tensors are the fundamental data structure in multiway. This package
// provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Reductions over arbitrary sets of modes
//   - Zero-copy operations where possible
//
// # Basic Usage
//
//	import (
//	    "github.com/multiway-ml/multiway/backend/cpu"
//	    "github.com/multiway-ml/multiway/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Randn[float64](tensor.Shape{5, 6, 7}, backend)
//
//	    // Reduce over modes 0 and 2, keeping them as size-1 dimensions
//	    m := x.MeanDims([]int{0, 2}, true)
//
//	    // Broadcasting subtracts the mode means from every element
//	    centered := x.Clone().Sub(m)
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType
// constraint:
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//
// Statistical operations (MeanDims, NormDims) require a floating-point
// element type, expressed by the narrower Float constraint.
//
// # Broadcasting
//
// Tensor operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float64](tensor.Shape{3, 1}, backend)     // (3, 1)
//	b := tensor.Ones[float64](tensor.Shape{3, 4}, backend)      // (3, 4)
//	c := a.Add(b)                                               // (3, 4)
//
// # Memory Management
//
// Tensors use zero-copy operations where possible. The underlying data is
// reference-counted; an operation whose operand holds the only reference
// to its buffer may reuse that buffer for the result. Clone is cheap: it
// shares the buffer and bumps the reference count, and a subsequent
// operation copies only when the buffer is shared.
//
// # Available Operations
//
// Element-wise arithmetic:
//
//	z := x.Add(y)            // Element-wise addition
//	z := x.Sub(y)            // Element-wise subtraction
//	z := x.Mul(y)            // Element-wise multiplication
//	z := x.Div(y)            // Element-wise division
//
// Scalar operations:
//
//	y := x.MulScalar(2.0)    // Multiply by scalar
//	y := x.AddScalar(1.0)    // Add scalar
//	y := x.SubScalar(0.5)    // Subtract scalar
//	y := x.DivScalar(2.0)    // Divide by scalar
//
// Math operations:
//
//	y := x.Sqrt()            // Square root
//
// Reductions:
//
//	s := x.SumAll()                      // Total sum (scalar tensor)
//	s := x.SumDims([]int{0, 2}, true)    // Sum over modes 0 and 2
//	m := x.MeanDims([]int{1}, false)     // Mean over mode 1, dropped
//	n := x.NormDims([]int{0}, true)      // Euclidean norm over mode 0
//
// See method documentation for the full list of operations.
package tensor
