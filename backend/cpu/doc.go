// Copyright 2025 The Multiway Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - gonum-accelerated float64 kernels
//   - Float32, Float64, Int32 and Int64 support
//   - NumPy-compatible broadcasting
//   - Multi-dimension reductions (sum, mean, Euclidean norm)
//
// # Basic Usage
//
//	import (
//	    "github.com/multiway-ml/multiway/backend/cpu"
//	    "github.com/multiway-ml/multiway/preprocess"
//	    "github.com/multiway-ml/multiway/tensor"
//	)
//
//	func main() {
//	    // Create CPU backend
//	    backend := cpu.New()
//
//	    // Use with tensors
//	    x := tensor.Randn[float64](tensor.Shape{5, 6, 7}, backend)
//	    y := x.MeanDims([]int{0}, true)
//
//	    // Use with preprocessing
//	    scaler := preprocess.NewCenterScaler[float64, *cpu.Backend]([]int{0}, nil)
//	    fitted, centered, err := scaler.FitTransform(x)
//	    _ = fitted
//	    _, _ = centered, err
//	}
//
// # Performance
//
// Element-wise kernels fan out over worker goroutines in fixed-size
// chunks once buffers grow past a threshold; small buffers run on the
// calling goroutine. Same-shape float64 operations go through gonum's
// vectorized floats routines.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
