package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// The preprocessing layer consumes exactly this contract: element-wise
// arithmetic with broadcasting, scalar arithmetic, square root, and
// reductions over sets of dimensions. Backends operate on RawTensor and
// panic on programmer errors (dtype misuse, out-of-range dimensions);
// shape validation with recoverable errors happens above this layer.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	MulScalar(x *RawTensor, scalar any) *RawTensor // multiply by scalar
	AddScalar(x *RawTensor, scalar any) *RawTensor // add scalar
	SubScalar(x *RawTensor, scalar any) *RawTensor // subtract scalar
	DivScalar(x *RawTensor, scalar any) *RawTensor // divide by scalar

	// Math operations (element-wise)
	Sqrt(x *RawTensor) *RawTensor // square root

	// Reduction operations. dims must be normalized (non-negative, in
	// range) and free of duplicates; reduced dimensions are kept with
	// size 1 when keepDims is true and dropped otherwise.
	Sum(x *RawTensor) *RawTensor                                 // total sum (scalar result)
	SumDims(x *RawTensor, dims []int, keepDims bool) *RawTensor  // sum over dimensions
	MeanDims(x *RawTensor, dims []int, keepDims bool) *RawTensor // arithmetic mean over dimensions
	NormDims(x *RawTensor, dims []int, keepDims bool) *RawTensor // Euclidean norm over dimensions

	// Metadata
	Name() string
	Device() Device
}
