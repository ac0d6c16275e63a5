// Package cpu implements a pure-Go CPU backend for tensor operations.
package cpu

import (
	"fmt"

	"github.com/multiway-ml/multiway/internal/parallel"
	"github.com/multiway-ml/multiway/internal/tensor"
)

// CPUBackend implements tensor operations on the CPU. Element-wise kernels
// fan out over worker goroutines for large buffers; reductions run on a
// single goroutine because they accumulate into shared output cells.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend with the default parallel configuration.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// newResult allocates the output tensor for an operation.
func (cpu *CPUBackend) newResult(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// Add performs element-wise addition with NumPy-style broadcasting.
//
// When both operands have the same shape and the left operand holds the
// only reference to its buffer, the addition runs in place and the left
// operand is returned.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("add: %v", err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		if a.IsUnique() {
			addInplace(a, b, cpu.par)
			return a
		}
		result := cpu.newResult("add", outShape, a.DType())
		addVectorized(result, a, b, cpu.par)
		return result
	}

	result := cpu.newResult("add", outShape, a.DType())
	addWithBroadcast(result, a, b, outShape, cpu.par)
	return result
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("sub: %v", err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		if a.IsUnique() {
			subInplace(a, b, cpu.par)
			return a
		}
		result := cpu.newResult("sub", outShape, a.DType())
		subVectorized(result, a, b, cpu.par)
		return result
	}

	result := cpu.newResult("sub", outShape, a.DType())
	subWithBroadcast(result, a, b, outShape, cpu.par)
	return result
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("mul: %v", err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		if a.IsUnique() {
			mulInplace(a, b, cpu.par)
			return a
		}
		result := cpu.newResult("mul", outShape, a.DType())
		mulVectorized(result, a, b, cpu.par)
		return result
	}

	result := cpu.newResult("mul", outShape, a.DType())
	mulWithBroadcast(result, a, b, outShape, cpu.par)
	return result
}

// Div performs element-wise division with broadcasting. Division by zero
// follows IEEE 754 semantics for float tensors (Inf or NaN).
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("div: %v", err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		if a.IsUnique() {
			divInplace(a, b, cpu.par)
			return a
		}
		result := cpu.newResult("div", outShape, a.DType())
		divVectorized(result, a, b, cpu.par)
		return result
	}

	result := cpu.newResult("div", outShape, a.DType())
	divWithBroadcast(result, a, b, outShape, cpu.par)
	return result
}
