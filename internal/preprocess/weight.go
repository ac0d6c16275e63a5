package preprocess

import "github.com/multiway-ml/multiway/internal/tensor"

// WeightFunc computes scaling weights for a tensor over a set of modes.
// The scaler calls it with keepDims=true so the weight broadcasts against
// the tensor it was computed from. Implementations must not modify x.
type WeightFunc[T tensor.Float, B tensor.Backend] func(x *tensor.Tensor[T, B], dims []int, keepDims bool) (*tensor.Tensor[T, B], error)

// StdWeight returns the standard-deviation weight with the given delta
// degrees of freedom. StdWeight(0) is the default scaling weight.
func StdWeight[T tensor.Float, B tensor.Backend](ddof int) WeightFunc[T, B] {
	return func(x *tensor.Tensor[T, B], dims []int, keepDims bool) (*tensor.Tensor[T, B], error) {
		return Std(x, dims, keepDims, ddof)
	}
}

// NormWeight returns the Euclidean norm weight.
func NormWeight[T tensor.Float, B tensor.Backend]() WeightFunc[T, B] {
	return func(x *tensor.Tensor[T, B], dims []int, keepDims bool) (*tensor.Tensor[T, B], error) {
		return Norm(x, dims, keepDims)
	}
}
