package cpu

import (
	"github.com/multiway-ml/multiway/internal/parallel"
	"github.com/multiway-ml/multiway/internal/tensor"
)

// Integer kernels. Integer division truncates toward zero and panics on
// division by zero, matching Go semantics.

// Int32 inplace operations

func addInplaceInt32(a, b []int32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] += b[i]
		}
	}, cfg)
}

func subInplaceInt32(a, b []int32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] -= b[i]
		}
	}, cfg)
}

func mulInplaceInt32(a, b []int32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] *= b[i]
		}
	}, cfg)
}

func divInplaceInt32(a, b []int32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] /= b[i]
		}
	}, cfg)
}

// Int32 vectorized operations

func addVectorizedInt32(dst, a, b []int32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] + b[i]
		}
	}, cfg)
}

func subVectorizedInt32(dst, a, b []int32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] - b[i]
		}
	}, cfg)
}

func mulVectorizedInt32(dst, a, b []int32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] * b[i]
		}
	}, cfg)
}

func divVectorizedInt32(dst, a, b []int32, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] / b[i]
		}
	}, cfg)
}

// Int32 broadcasting operations

func addBroadcastInt32(dst, a, b []int32, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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

func subBroadcastInt32(dst, a, b []int32, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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

func mulBroadcastInt32(dst, a, b []int32, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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

func divBroadcastInt32(dst, a, b []int32, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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

// Int64 inplace operations

func addInplaceInt64(a, b []int64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] += b[i]
		}
	}, cfg)
}

func subInplaceInt64(a, b []int64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] -= b[i]
		}
	}, cfg)
}

func mulInplaceInt64(a, b []int64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] *= b[i]
		}
	}, cfg)
}

func divInplaceInt64(a, b []int64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] /= b[i]
		}
	}, cfg)
}

// Int64 vectorized operations

func addVectorizedInt64(dst, a, b []int64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] + b[i]
		}
	}, cfg)
}

func subVectorizedInt64(dst, a, b []int64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] - b[i]
		}
	}, cfg)
}

func mulVectorizedInt64(dst, a, b []int64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] * b[i]
		}
	}, cfg)
}

func divVectorizedInt64(dst, a, b []int64, cfg parallel.Config) {
	parallel.ForRange(len(a), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = a[i] / b[i]
		}
	}, cfg)
}

// Int64 broadcasting operations

func addBroadcastInt64(dst, a, b []int64, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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

func subBroadcastInt64(dst, a, b []int64, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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

func mulBroadcastInt64(dst, a, b []int64, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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

func divBroadcastInt64(dst, a, b []int64, aShape, bShape, outShape tensor.Shape, cfg parallel.Config) {
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
