// Copyright 2025 The Multiway Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package preprocess

import (
	"io"

	"github.com/multiway-ml/multiway/internal/preprocess"
	"github.com/multiway-ml/multiway/internal/tensor"
)

// Standard deviation

// Std computes the standard deviation of x over the given modes.
//
// An empty or nil dims reduces over all modes. Negative modes count from
// the last mode; duplicates are collapsed. ddof is subtracted from the
// sample count before dividing, so 0 gives the population estimator and
// 1 the unbiased one.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Randn[float64](tensor.Shape{5, 6, 7}, backend)
//	s, err := preprocess.Std(x, []int{0, 2}, true, 1)
func Std[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dims []int, keepDims bool, ddof int) (*tensor.Tensor[T, B], error) {
	return preprocess.Std(x, dims, keepDims, ddof)
}

// Norm computes the Euclidean norm of x over the given modes.
//
// An empty or nil dims reduces over all modes.
func Norm[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dims []int, keepDims bool) (*tensor.Tensor[T, B], error) {
	return preprocess.Norm(x, dims, keepDims)
}

// Scaling weights

// WeightFunc computes a scaling weight by reducing x over dims.
type WeightFunc[T tensor.Float, B tensor.Backend] = preprocess.WeightFunc[T, B]

// StdWeight returns the standard-deviation weight with the given ddof.
func StdWeight[T tensor.Float, B tensor.Backend](ddof int) WeightFunc[T, B] {
	return preprocess.StdWeight[T, B](ddof)
}

// NormWeight returns the Euclidean-norm weight.
func NormWeight[T tensor.Float, B tensor.Backend]() WeightFunc[T, B] {
	return preprocess.NormWeight[T, B]()
}

// Center and scale estimator

// CenterScaler configures centering and scaling of multiway data.
type CenterScaler[T tensor.Float, B tensor.Backend] = preprocess.CenterScaler[T, B]

// CenterScale holds the fitted offsets and scales of a CenterScaler.
type CenterScale[T tensor.Float, B tensor.Backend] = preprocess.CenterScale[T, B]

// Transformer is a fitted, invertible tensor transformation.
type Transformer[T tensor.Float, B tensor.Backend] = preprocess.Transformer[T, B]

// NewCenterScaler creates an estimator that centers across the
// centerAcross modes and scales within the scaleWithin modes, in order.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Randn[float64](tensor.Shape{5, 6, 7}, backend)
//	scaler := preprocess.NewCenterScaler[float64, *cpu.Backend]([]int{0}, []int{1}).
//	    SetDDof(1)
//	fitted, centered, err := scaler.FitTransform(x)
func NewCenterScaler[T tensor.Float, B tensor.Backend](centerAcross, scaleWithin []int) *CenterScaler[T, B] {
	return preprocess.NewCenterScaler[T, B](centerAcross, scaleWithin)
}

// Persistence

// LoadCenterScale restores fitted state saved with (*CenterScale).Save.
// The element type T must match the dtype the state was fitted with.
//
// Example:
//
//	backend := cpu.New()
//	fitted, err := preprocess.LoadCenterScale[float64, *cpu.Backend]("scaler.mway", backend)
//	y, err := fitted.Transform(x)
func LoadCenterScale[T tensor.Float, B tensor.Backend](path string, b B) (*CenterScale[T, B], error) {
	return preprocess.LoadCenterScale[T, B](path, b)
}

// ReadCenterScale restores fitted state from r, as written by
// (*CenterScale).SaveTo.
func ReadCenterScale[T tensor.Float, B tensor.Backend](r io.Reader, b B) (*CenterScale[T, B], error) {
	return preprocess.ReadCenterScale[T, B](r, b)
}

// Errors

// Fit-time validation errors.
var (
	ErrModeOverlap      = preprocess.ErrModeOverlap
	ErrDuplicateMode    = preprocess.ErrDuplicateMode
	ErrModeOutOfRange   = preprocess.ErrModeOutOfRange
	ErrMultiModeScaling = preprocess.ErrMultiModeScaling
	ErrDegreesOfFreedom = preprocess.ErrDegreesOfFreedom
	ErrNilWeightFunc    = preprocess.ErrNilWeightFunc
)

// Load-time validation errors.
var (
	ErrEstimatorType = preprocess.ErrEstimatorType
	ErrDTypeMismatch = preprocess.ErrDTypeMismatch
)

// ShapeError reports a tensor whose shape is incompatible with the
// fitted parameters.
type ShapeError = preprocess.ShapeError
