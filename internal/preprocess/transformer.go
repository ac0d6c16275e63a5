package preprocess

import "github.com/multiway-ml/multiway/internal/tensor"

// Transformer is the interface satisfied by fitted preprocessing
// transforms: a forward application and its inverse.
type Transformer[T tensor.Float, B tensor.Backend] interface {
	Transform(x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error)
	InverseTransform(x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error)
}

// Verify that CenterScale implements Transformer.
var _ Transformer[float64, *tensor.MockBackend] = (*CenterScale[float64, *tensor.MockBackend])(nil)
