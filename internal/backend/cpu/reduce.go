package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/multiway-ml/multiway/internal/tensor"
)

// Reductions over dimension sets. Every reduction makes a single pass over
// the input, accumulating each element into the output cell addressed by
// its non-reduced coordinates. Accumulation happens in float64 (int64 for
// integer sums) regardless of the tensor dtype; the result is cast back.
// Reductions run sequentially: parallel accumulation would race on the
// shared output cells.

type reduceKind int

const (
	reduceSum reduceKind = iota
	reduceMean
	reduceNorm
)

// validateReduceDims panics unless every dimension index is in range and
// distinct. Dimension normalization is the caller's responsibility.
func validateReduceDims(ndim int, dims []int) {
	seen := make(map[int]bool, len(dims))
	for _, d := range dims {
		if d < 0 || d >= ndim {
			panic(fmt.Sprintf("reduce: dimension %d out of range for %dD tensor", d, ndim))
		}
		if seen[d] {
			panic(fmt.Sprintf("reduce: duplicate dimension %d", d))
		}
		seen[d] = true
	}
}

// Sum computes the total sum of all elements (scalar result).
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("sum", tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		var sum float64
		for _, v := range x.AsFloat32() {
			sum += float64(v)
		}
		result.AsFloat32()[0] = float32(sum)
	case tensor.Float64:
		result.AsFloat64()[0] = floats.Sum(x.AsFloat64())
	case tensor.Int32:
		var sum int32
		for _, v := range x.AsInt32() {
			sum += v
		}
		result.AsInt32()[0] = sum
	case tensor.Int64:
		var sum int64
		for _, v := range x.AsInt64() {
			sum += v
		}
		result.AsInt64()[0] = sum
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return result
}

// SumDims sums tensor elements over the given set of dimensions.
//
// dims must be normalized (non-negative, in range) and free of duplicates.
// Reduced dimensions are kept with size 1 when keepDims is true and
// dropped otherwise.
//
// Example:
//
//	x := tensor.Ones[float32](tensor.Shape{5, 6, 7}, backend)
//	y := backend.SumDims(x.Raw(), []int{0, 2}, true)  // shape: [1, 6, 1]
//	z := backend.SumDims(x.Raw(), []int{0, 2}, false) // shape: [6]
func (cpu *CPUBackend) SumDims(x *tensor.RawTensor, dims []int, keepDims bool) *tensor.RawTensor {
	validateReduceDims(len(x.Shape()), dims)

	switch x.DType() {
	case tensor.Float32, tensor.Float64:
		return cpu.reduceFloat(x, dims, keepDims, reduceSum)
	case tensor.Int32, tensor.Int64:
		return cpu.reduceIntSum(x, dims, keepDims)
	default:
		panic(fmt.Sprintf("sumdims: unsupported dtype %s", x.DType()))
	}
}

// MeanDims computes the arithmetic mean over the given set of dimensions.
// The divisor is the product of the reduced dimension lengths. Only float
// dtypes are supported.
func (cpu *CPUBackend) MeanDims(x *tensor.RawTensor, dims []int, keepDims bool) *tensor.RawTensor {
	validateReduceDims(len(x.Shape()), dims)
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("meandims: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
	return cpu.reduceFloat(x, dims, keepDims, reduceMean)
}

// NormDims computes the Euclidean (l2) norm over the given set of
// dimensions: sqrt of the sum of squares. Only float dtypes are supported.
func (cpu *CPUBackend) NormDims(x *tensor.RawTensor, dims []int, keepDims bool) *tensor.RawTensor {
	validateReduceDims(len(x.Shape()), dims)
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("normdims: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}
	return cpu.reduceFloat(x, dims, keepDims, reduceNorm)
}

// reduceFloat accumulates into a keep-dims shaped float64 buffer, applies
// the kind-specific finisher, then writes the result with the requested
// output shape. Dropping reduced dimensions does not change the data
// layout since dropped dimensions have size 1.
func (cpu *CPUBackend) reduceFloat(x *tensor.RawTensor, dims []int, keepDims bool, kind reduceKind) *tensor.RawTensor {
	shape := x.Shape()
	keepShape := shape.Reduced(dims, true)
	acc := make([]float64, keepShape.NumElements())

	count := 1
	reduced := make([]bool, len(shape))
	for _, d := range dims {
		reduced[d] = true
		count *= shape[d]
	}

	if len(acc) == 1 && x.DType() == tensor.Float64 {
		// Full reduction of a float64 tensor collapses to one gonum call.
		data := x.AsFloat64()
		switch kind {
		case reduceSum:
			acc[0] = floats.Sum(data)
		case reduceMean:
			acc[0] = floats.Sum(data) / float64(count)
		case reduceNorm:
			acc[0] = floats.Norm(data, 2)
		}
	} else {
		inStrides := shape.ComputeStrides()
		outStrides := keepShape.ComputeStrides()
		square := kind == reduceNorm

		switch x.DType() {
		case tensor.Float32:
			for i, v := range x.AsFloat32() {
				f := float64(v)
				if square {
					f *= f
				}
				acc[reduceIndex(i, inStrides, outStrides, reduced)] += f
			}
		case tensor.Float64:
			for i, v := range x.AsFloat64() {
				if square {
					v *= v
				}
				acc[reduceIndex(i, inStrides, outStrides, reduced)] += v
			}
		}

		switch kind {
		case reduceMean:
			for i := range acc {
				acc[i] /= float64(count)
			}
		case reduceNorm:
			for i := range acc {
				acc[i] = math.Sqrt(acc[i])
			}
		}
	}

	outShape := keepShape
	if !keepDims {
		outShape = shape.Reduced(dims, false)
	}
	result := cpu.newResult("reduce", outShape, x.DType())

	switch x.DType() {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i, v := range acc {
			dst[i] = float32(v)
		}
	case tensor.Float64:
		copy(result.AsFloat64(), acc)
	}
	return result
}

// reduceIntSum sums integer tensors over a dimension set, accumulating
// in int64.
func (cpu *CPUBackend) reduceIntSum(x *tensor.RawTensor, dims []int, keepDims bool) *tensor.RawTensor {
	shape := x.Shape()
	keepShape := shape.Reduced(dims, true)
	acc := make([]int64, keepShape.NumElements())

	reduced := make([]bool, len(shape))
	for _, d := range dims {
		reduced[d] = true
	}
	inStrides := shape.ComputeStrides()
	outStrides := keepShape.ComputeStrides()

	switch x.DType() {
	case tensor.Int32:
		for i, v := range x.AsInt32() {
			acc[reduceIndex(i, inStrides, outStrides, reduced)] += int64(v)
		}
	case tensor.Int64:
		for i, v := range x.AsInt64() {
			acc[reduceIndex(i, inStrides, outStrides, reduced)] += v
		}
	}

	outShape := keepShape
	if !keepDims {
		outShape = shape.Reduced(dims, false)
	}
	result := cpu.newResult("sumdims", outShape, x.DType())

	switch x.DType() {
	case tensor.Int32:
		dst := result.AsInt32()
		for i, v := range acc {
			dst[i] = int32(v) //nolint:gosec // G115: truncation matches int32 accumulation overflow.
		}
	case tensor.Int64:
		copy(result.AsInt64(), acc)
	}
	return result
}

// reduceIndex maps a flat input index to the flat index of its output
// cell, skipping the coordinates of reduced dimensions.
func reduceIndex(flatIdx int, inStrides, outStrides []int, reduced []bool) int {
	outIdx := 0
	for d := 0; d < len(inStrides); d++ {
		coord := flatIdx / inStrides[d]
		flatIdx %= inStrides[d]
		if !reduced[d] {
			outIdx += coord * outStrides[d]
		}
	}
	return outIdx
}
