package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/multiway-ml/multiway/internal/parallel"
	"github.com/multiway-ml/multiway/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.
// The scalar must have the same type as the tensor elements.

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := cpu.newResult("mulScalar", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		mulScalarFloat32(result, x, scalar.(float32), cpu.par)
	case tensor.Float64:
		mulScalarFloat64(result, x, scalar.(float64), cpu.par)
	case tensor.Int32:
		mulScalarInt32(result, x, scalar.(int32), cpu.par)
	case tensor.Int64:
		mulScalarInt64(result, x, scalar.(int64), cpu.par)
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := cpu.newResult("addScalar", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		addScalarFloat32(result, x, scalar.(float32), cpu.par)
	case tensor.Float64:
		addScalarFloat64(result, x, scalar.(float64), cpu.par)
	case tensor.Int32:
		addScalarInt32(result, x, scalar.(int32), cpu.par)
	case tensor.Int64:
		addScalarInt64(result, x, scalar.(int64), cpu.par)
	default:
		panic(fmt.Sprintf("addScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := cpu.newResult("subScalar", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		subScalarFloat32(result, x, scalar.(float32), cpu.par)
	case tensor.Float64:
		subScalarFloat64(result, x, scalar.(float64), cpu.par)
	case tensor.Int32:
		subScalarInt32(result, x, scalar.(int32), cpu.par)
	case tensor.Int64:
		subScalarInt64(result, x, scalar.(int64), cpu.par)
	default:
		panic(fmt.Sprintf("subScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// DivScalar divides each element of the tensor by a scalar value.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result := cpu.newResult("divScalar", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		divScalarFloat32(result, x, scalar.(float32), cpu.par)
	case tensor.Float64:
		divScalarFloat64(result, x, scalar.(float64), cpu.par)
	case tensor.Int32:
		divScalarInt32(result, x, scalar.(int32), cpu.par)
	case tensor.Int64:
		divScalarInt64(result, x, scalar.(int64), cpu.par)
	default:
		panic(fmt.Sprintf("divScalar: unsupported dtype %v", x.DType()))
	}

	return result
}

// ============================================================================
// Float32 implementations
// ============================================================================

func mulScalarFloat32(result, x *tensor.RawTensor, scalar float32, cfg parallel.Config) {
	src := x.AsFloat32()
	dst := result.AsFloat32()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] * scalar
		}
	}, cfg)
}

func addScalarFloat32(result, x *tensor.RawTensor, scalar float32, cfg parallel.Config) {
	src := x.AsFloat32()
	dst := result.AsFloat32()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] + scalar
		}
	}, cfg)
}

func subScalarFloat32(result, x *tensor.RawTensor, scalar float32, cfg parallel.Config) {
	src := x.AsFloat32()
	dst := result.AsFloat32()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] - scalar
		}
	}, cfg)
}

func divScalarFloat32(result, x *tensor.RawTensor, scalar float32, cfg parallel.Config) {
	src := x.AsFloat32()
	dst := result.AsFloat32()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] / scalar
		}
	}, cfg)
}

// ============================================================================
// Float64 implementations (gonum/floats slice routines)
// ============================================================================

func mulScalarFloat64(result, x *tensor.RawTensor, scalar float64, cfg parallel.Config) {
	src := x.AsFloat64()
	dst := result.AsFloat64()
	parallel.ForRange(len(src), func(start, end int) {
		floats.ScaleTo(dst[start:end], scalar, src[start:end])
	}, cfg)
}

func addScalarFloat64(result, x *tensor.RawTensor, scalar float64, cfg parallel.Config) {
	src := x.AsFloat64()
	dst := result.AsFloat64()
	parallel.ForRange(len(src), func(start, end int) {
		copy(dst[start:end], src[start:end])
		floats.AddConst(scalar, dst[start:end])
	}, cfg)
}

func subScalarFloat64(result, x *tensor.RawTensor, scalar float64, cfg parallel.Config) {
	src := x.AsFloat64()
	dst := result.AsFloat64()
	parallel.ForRange(len(src), func(start, end int) {
		copy(dst[start:end], src[start:end])
		floats.AddConst(-scalar, dst[start:end])
	}, cfg)
}

func divScalarFloat64(result, x *tensor.RawTensor, scalar float64, cfg parallel.Config) {
	src := x.AsFloat64()
	dst := result.AsFloat64()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] / scalar
		}
	}, cfg)
}

// ============================================================================
// Int32 implementations
// ============================================================================

func mulScalarInt32(result, x *tensor.RawTensor, scalar int32, cfg parallel.Config) {
	src := x.AsInt32()
	dst := result.AsInt32()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] * scalar
		}
	}, cfg)
}

func addScalarInt32(result, x *tensor.RawTensor, scalar int32, cfg parallel.Config) {
	src := x.AsInt32()
	dst := result.AsInt32()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] + scalar
		}
	}, cfg)
}

func subScalarInt32(result, x *tensor.RawTensor, scalar int32, cfg parallel.Config) {
	src := x.AsInt32()
	dst := result.AsInt32()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] - scalar
		}
	}, cfg)
}

func divScalarInt32(result, x *tensor.RawTensor, scalar int32, cfg parallel.Config) {
	src := x.AsInt32()
	dst := result.AsInt32()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] / scalar
		}
	}, cfg)
}

// ============================================================================
// Int64 implementations
// ============================================================================

func mulScalarInt64(result, x *tensor.RawTensor, scalar int64, cfg parallel.Config) {
	src := x.AsInt64()
	dst := result.AsInt64()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] * scalar
		}
	}, cfg)
}

func addScalarInt64(result, x *tensor.RawTensor, scalar int64, cfg parallel.Config) {
	src := x.AsInt64()
	dst := result.AsInt64()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] + scalar
		}
	}, cfg)
}

func subScalarInt64(result, x *tensor.RawTensor, scalar int64, cfg parallel.Config) {
	src := x.AsInt64()
	dst := result.AsInt64()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] - scalar
		}
	}, cfg)
}

func divScalarInt64(result, x *tensor.RawTensor, scalar int64, cfg parallel.Config) {
	src := x.AsInt64()
	dst := result.AsInt64()
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = src[i] / scalar
		}
	}, cfg)
}
