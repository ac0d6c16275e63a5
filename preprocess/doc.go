// Copyright 2025 The Multiway Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package preprocess provides centering and scaling for multiway data.
//
// # Overview
//
// Multiway (tensor) data is centered across modes and scaled within
// modes before decomposition methods such as PARAFAC or Tucker are
// applied. This package implements the preprocessing recommended by
// Bro and Smilde, "Centering and scaling in component analysis" (2003):
//   - Centering across a mode subtracts the mode means, computed over
//     that single mode with the other modes left intact.
//   - Scaling within a mode divides by a weight computed over all the
//     other modes, one weight per index of the scaled mode.
//
// Multiple modes are handled sequentially: each offset and weight is
// estimated from the data as transformed so far. Sequential centering
// leaves every centered mode with exactly zero mean; sequential scaling
// is order-dependent, which is why scaling within more than one mode
// must be enabled explicitly.
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
//	    backend := cpu.New()
//	    x := tensor.Randn[float64](tensor.Shape{5, 6, 7}, backend)
//
//	    // Center across mode 0, scale within mode 1.
//	    scaler := preprocess.NewCenterScaler[float64, *cpu.Backend]([]int{0}, []int{1})
//	    fitted, transformed, err := scaler.FitTransform(x)
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    // Apply the same offsets and scales to new data.
//	    y := tensor.Randn[float64](tensor.Shape{9, 6, 7}, backend)
//	    transformedY, err := fitted.Transform(y)
//
//	    // Map model output back to the original space.
//	    restored, err := fitted.InverseTransform(transformed)
//	    _, _, _ = transformedY, restored, err
//	}
//
// # Fit and Transform
//
// NewCenterScaler builds a configuration; Fit estimates offsets and
// scales from data and returns an immutable CenterScale. The fitted
// transform applies the stored parameters without re-estimating them,
// so a transform of the fitting data and a transform of new data go
// through the same code path. FitTransform fuses the two steps and
// returns the transformed fitting data for free.
//
// New data may have a different length along a centered mode; all other
// mode lengths must match the fitting data.
//
// # Scaling Weights
//
// The default weight is the population standard deviation. SetDDof
// adjusts the divisor (ddof=1 gives the unbiased estimator),
// SetNormWeight switches to the Euclidean norm, and SetWeightFunc
// installs a caller-supplied WeightFunc.
//
// # Standalone Reductions
//
// Std and Norm expose the underlying reductions directly for callers
// that only need the statistics:
//
//	s, err := preprocess.Std(x, []int{0, 2}, true, 1)
//	n, err := preprocess.Norm(x, nil, false)
//
// # Persistence
//
// A fitted CenterScale can be saved and restored, so parameters
// estimated on a training run can transform new observations in another
// process:
//
//	err := fitted.Save("scaler.mway")
//	restored, err := preprocess.LoadCenterScale[float64, *cpu.Backend]("scaler.mway", backend)
//
// The file is a checksummed container of the fitted tensors; loading
// verifies the checksum and rejects state whose element type or shapes
// do not match.
package preprocess
