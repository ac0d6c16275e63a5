package tensor

import (
	"fmt"
	"math"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively for correctness verification.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// AddScalar adds a scalar to every element.
func (m *MockBackend) AddScalar(x *RawTensor, scalar any) *RawTensor {
	s := m.scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v + s })
}

// SubScalar subtracts a scalar from every element.
func (m *MockBackend) SubScalar(x *RawTensor, scalar any) *RawTensor {
	s := m.scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v - s })
}

// MulScalar multiplies every element by a scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	s := m.scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v * s })
}

// DivScalar divides every element by a scalar.
func (m *MockBackend) DivScalar(x *RawTensor, scalar any) *RawTensor {
	s := m.scalarToFloat64(scalar)
	return m.unary(x, func(v float64) float64 { return v / s })
}

// Sqrt computes the element-wise square root.
func (m *MockBackend) Sqrt(x *RawTensor) *RawTensor {
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("sqrt: unsupported dtype %s", x.DType()))
	}
	return m.unary(x, math.Sqrt)
}

// Sum computes the total sum, returning a scalar (0-D) tensor.
func (m *MockBackend) Sum(x *RawTensor) *RawTensor {
	result, err := NewRaw(Shape{}, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	total := 0.0
	for _, v := range m.toFloat64Slice(x) {
		total += v
	}
	m.fromFloat64Slice([]float64{total}, result)
	return result
}

// SumDims computes the sum over the given dimensions.
func (m *MockBackend) SumDims(x *RawTensor, dims []int, keepDims bool) *RawTensor {
	return m.reduce(x, dims, keepDims, reduceSum)
}

// MeanDims computes the arithmetic mean over the given dimensions.
func (m *MockBackend) MeanDims(x *RawTensor, dims []int, keepDims bool) *RawTensor {
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("mean: unsupported dtype %s", x.DType()))
	}
	return m.reduce(x, dims, keepDims, reduceMean)
}

// NormDims computes the Euclidean norm over the given dimensions.
func (m *MockBackend) NormDims(x *RawTensor, dims []int, keepDims bool) *RawTensor {
	if !x.DType().IsFloat() {
		panic(fmt.Sprintf("norm: unsupported dtype %s", x.DType()))
	}
	return m.reduce(x, dims, keepDims, reduceNorm)
}

type reduceKind int

const (
	reduceSum reduceKind = iota
	reduceMean
	reduceNorm
)

// reduce accumulates over the reduced dimensions into a keep-dims shaped
// buffer, then drops the reduced dimensions if requested. Data layout is
// unchanged by the drop since dropped dimensions have size 1.
func (m *MockBackend) reduce(x *RawTensor, dims []int, keepDims bool, kind reduceKind) *RawTensor {
	shape := x.Shape()
	keepShape := shape.Reduced(dims, true)

	result, err := NewRaw(keepShape, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	reduced := make(map[int]bool, len(dims))
	count := 1
	for _, d := range dims {
		if !reduced[d] {
			count *= shape[d]
		}
		reduced[d] = true
	}

	inData := m.toFloat64Slice(x)
	outData := make([]float64, keepShape.NumElements())
	inStrides := shape.ComputeStrides()
	outStrides := keepShape.ComputeStrides()

	for i, v := range inData {
		outIdx := 0
		temp := i
		for d := 0; d < len(shape); d++ {
			coord := temp / inStrides[d]
			temp %= inStrides[d]
			if !reduced[d] {
				outIdx += coord * outStrides[d]
			}
		}
		if kind == reduceNorm {
			outData[outIdx] += v * v
		} else {
			outData[outIdx] += v
		}
	}

	switch kind {
	case reduceMean:
		for i := range outData {
			outData[i] /= float64(count)
		}
	case reduceNorm:
		for i := range outData {
			outData[i] = math.Sqrt(outData[i])
		}
	}

	m.fromFloat64Slice(outData, result)
	if keepDims {
		return result
	}

	dropped, err := NewRaw(shape.Reduced(dims, false), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	copy(dropped.Data(), result.Data())
	return dropped
}

// elementWise performs element-wise operations with broadcasting.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	// Broadcast shapes
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	// Create output tensor
	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	// Perform operation (naive implementation)
	numElements := outShape.NumElements()

	// Convert to float64 for generic processing
	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	resultData := make([]float64, numElements)

	for i := 0; i < numElements; i++ {
		aIdx := m.broadcastIndex(i, outShape, a.Shape())
		bIdx := m.broadcastIndex(i, outShape, b.Shape())

		resultData[i] = op(aData[aIdx], bData[bIdx])
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// unary applies op to every element.
func (m *MockBackend) unary(x *RawTensor, op func(float64) float64) *RawTensor {
	result, err := NewRaw(x.Shape(), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	inData := m.toFloat64Slice(x)
	outData := make([]float64, len(inData))
	for i, v := range inData {
		outData[i] = op(v)
	}
	m.fromFloat64Slice(outData, result)
	return result
}

func (m *MockBackend) scalarToFloat64(scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	case int32:
		return float64(s)
	case int64:
		return float64(s)
	case int:
		return float64(s)
	default:
		panic(fmt.Sprintf("unsupported scalar type: %T", scalar))
	}
}

func (m *MockBackend) toFloat64Slice(t *RawTensor) []float64 {
	switch t.DType() {
	case Float32:
		src := t.AsFloat32()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	case Float64:
		return t.AsFloat64()
	case Int32:
		src := t.AsInt32()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	case Int64:
		src := t.AsInt64()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	default:
		panic(fmt.Sprintf("unsupported dtype: %s", t.DType()))
	}
}

func (m *MockBackend) fromFloat64Slice(src []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), src)
	case Int32:
		dst := t.AsInt32()
		for i, v := range src {
			dst[i] = int32(v)
		}
	case Int64:
		dst := t.AsInt64()
		for i, v := range src {
			dst[i] = int64(v)
		}
	}
}

func (m *MockBackend) broadcastIndex(flatIdx int, outShape, inShape Shape) int {
	// Convert flat index to multi-dimensional indices in output shape
	outStrides := outShape.ComputeStrides()
	indices := make([]int, len(outShape))

	temp := flatIdx
	for i := 0; i < len(outShape); i++ {
		indices[i] = temp / outStrides[i]
		temp %= outStrides[i]
	}

	// Map to input shape (accounting for broadcasting)
	inStrides := inShape.ComputeStrides()
	inIdx := 0

	offset := len(outShape) - len(inShape)
	for i := 0; i < len(inShape); i++ {
		outDimIdx := indices[offset+i]
		inDim := inShape[i]

		// If input dimension is 1, always use index 0 (broadcasting)
		if inDim == 1 {
			outDimIdx = 0
		}

		inIdx += outDimIdx * inStrides[i]
	}

	return inIdx
}
