package cpu

import (
	"github.com/multiway-ml/multiway/internal/parallel"
	"github.com/multiway-ml/multiway/internal/tensor"
)

// Float32 kernels are hand-rolled loops: gonum/floats covers float64 only.
// Large buffers are chunked across workers by parallel.ForRange.

// Float32 inplace operations

func addInplaceFloat32(a, b []float32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] += b[i]
		}
	}, cfg)
}

func subInplaceFloat32(a, b []float32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] -= b[i]
		}
	}, cfg)
}

func mulInplaceFloat32(a, b []float32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] *= b[i]
		}
	}, cfg)
}

func divInplaceFloat32(a, b []float32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] /= b[i]
		}
	}, cfg)
}

// Float32 vectorized operations

func addVectorizedFloat32(dst, a, b []float32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] + b[i]
		}
	}, cfg)
}

func subVectorizedFloat32(dst, a, b []float32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] - b[i]
		}
	}, cfg)
}

func mulVectorizedFloat32(dst, a, b []float32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] * b[i]
		}
	}, cfg)
}

func divVectorizedFloat32(dst, a, b []float32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] / b[i]
		}
	}, cfg)
}

// Float32 broadcasting operations

func addBroadcastFloat32(dst, a, b []float32, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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

func subBroadcastFloat32(dst, a, b []float32, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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

func mulBroadcastFloat32(dst, a, b []float32, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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

func divBroadcastFloat32(dst, a, b []float32, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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
