// Copyright 2025 The Multiway Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/multiway-ml/multiway/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go with gonum-accelerated float64 kernels
//
// Backends operate on RawTensor and panic on programmer errors (dtype
// misuse, out-of-range dimensions); shape validation with recoverable
// errors happens in the layers above, such as preprocess.
//
// Example:
//
//	import (
//	    "github.com/multiway-ml/multiway/backend/cpu"
//	    "github.com/multiway-ml/multiway/tensor"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float64](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float64](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.
	Div(a, b *RawTensor) *RawTensor // Element-wise division.

	// Scalar operations (element-wise with scalar).
	MulScalar(x *RawTensor, scalar any) *RawTensor // Multiply by scalar.
	AddScalar(x *RawTensor, scalar any) *RawTensor // Add scalar.
	SubScalar(x *RawTensor, scalar any) *RawTensor // Subtract scalar.
	DivScalar(x *RawTensor, scalar any) *RawTensor // Divide by scalar.

	// Math operations (element-wise).
	Sqrt(x *RawTensor) *RawTensor // Square root.

	// Reduction operations. dims must be normalized (non-negative, in
	// range) and free of duplicates; reduced dimensions are kept with
	// size 1 when keepDims is true and dropped otherwise.
	Sum(x *RawTensor) *RawTensor                                 // Total sum (scalar result).
	SumDims(x *RawTensor, dims []int, keepDims bool) *RawTensor  // Sum over dimensions.
	MeanDims(x *RawTensor, dims []int, keepDims bool) *RawTensor // Arithmetic mean over dimensions.
	NormDims(x *RawTensor, dims []int, keepDims bool) *RawTensor // Euclidean norm over dimensions.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
