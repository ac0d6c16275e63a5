package cpu

import (
	"gonum.org/v1/gonum/floats"

	"github.com/multiway-ml/multiway/internal/parallel"
	"github.com/multiway-ml/multiway/internal/tensor"
)

// Float64 same-shape kernels delegate to gonum/floats slice routines,
// chunked across workers for large buffers. Broadcast kernels need
// per-element index mapping and use hand loops like the float32 paths.

// Float64 inplace operations

func addInplaceFloat64(a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		floats.Add(a[start:end], b[start:end])
	}, cfg)
}

func subInplaceFloat64(a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		floats.Sub(a[start:end], b[start:end])
	}, cfg)
}

func mulInplaceFloat64(a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		floats.Mul(a[start:end], b[start:end])
	}, cfg)
}

func divInplaceFloat64(a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		floats.Div(a[start:end], b[start:end])
	}, cfg)
}

// Float64 vectorized operations

func addVectorizedFloat64(dst, a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		floats.AddTo(dst[start:end], a[start:end], b[start:end])
	}, cfg)
}

func subVectorizedFloat64(dst, a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		floats.SubTo(dst[start:end], a[start:end], b[start:end])
	}, cfg)
}

func mulVectorizedFloat64(dst, a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		floats.MulTo(dst[start:end], a[start:end], b[start:end])
	}, cfg)
}

func divVectorizedFloat64(dst, a, b []float64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		floats.DivTo(dst[start:end], a[start:end], b[start:end])
	}, cfg)
}

// Float64 broadcasting operations

func addBroadcastFloat64(dst, a, b []float64, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	parallel.ForRange(outShape.NumElements(), func(start, end int) {
		for i := start; i < end; i++ {
			aIdx := computeFlatIndex(i, outStrides, aStrides)
			bIdx := computeFlatIndex(i, outStrides, bStrides)
			dst[i] = a[aIdx] + b[bIdx]
		}
	}, cfg)
}

func subBroadcastFloat64(dst, a, b []float64, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	parallel.ForRange(outShape.NumElements(), func(start, end int) {
		for i := start; i < end; i++ {
			aIdx := computeFlatIndex(i, outStrides, aStrides)
			bIdx := computeFlatIndex(i, outStrides, bStrides)
			dst[i] = a[aIdx] - b[bIdx]
		}
	}, cfg)
}

func mulBroadcastFloat64(dst, a, b []float64, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	parallel.ForRange(outShape.NumElements(), func(start, end int) {
		for i := start; i < end; i++ {
			aIdx := computeFlatIndex(i, outStrides, aStrides)
			bIdx := computeFlatIndex(i, outStrides, bStrides)
			dst[i] = a[aIdx] * b[bIdx]
		}
	}, cfg)
}

func divBroadcastFloat64(dst, a, b []float64, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	parallel.ForRange(outShape.NumElements(), func(start, end int) {
		for i := start; i < end; i++ {
			aIdx := computeFlatIndex(i, outStrides, aStrides)
			bIdx := computeFlatIndex(i, outStrides, bStrides)
			dst[i] = a[aIdx] / b[bIdx]
		}
	}, cfg)
}
