package preprocess

import (
	"fmt"
	"math"

	"github.com/multiway-ml/multiway/internal/tensor"
)

// normalizeReduceDims resolves the reduction set for a statistics call.
// nil or empty dims select all modes. Negative modes are resolved against
// ndim and duplicates collapse to the distinct set, so each mode
// contributes its length to the sample count at most once.
func normalizeReduceDims(ndim int, dims []int) ([]int, error) {
	if len(dims) == 0 {
		all := make([]int, ndim)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	normalized, err := tensor.NormalizeDims(dims, ndim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModeOutOfRange, err)
	}
	return tensor.UniqueDims(normalized), nil
}

// Std computes the standard deviation over the given set of modes:
//
//	sqrt(sum((x - mean(x, dims))^2, dims) / dofs)
//
// where dofs is the product of the reduced mode lengths minus ddof.
// ddof=0 gives the sample standard deviation, ddof=1 the unbiased
// estimator. A nil or empty dims reduces over all modes. Reduced modes
// are kept with size 1 when keepDims is true and dropped otherwise.
//
// Example:
//
//	x := tensor.Randn[float32](tensor.Shape{5, 6, 7}, backend)
//	s, err := preprocess.Std(x, []int{0, 2}, true, 0) // shape: [1, 6, 1]
func Std[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dims []int, keepDims bool, ddof int) (*tensor.Tensor[T, B], error) {
	reduce, err := normalizeReduceDims(x.NDim(), dims)
	if err != nil {
		return nil, fmt.Errorf("std: %w", err)
	}

	count := 1
	for _, d := range reduce {
		count *= x.Shape()[d]
	}
	dofs := count - ddof
	if dofs <= 0 {
		return nil, fmt.Errorf("std: %w: ddof=%d with %d samples", ErrDegreesOfFreedom, ddof, count)
	}

	// The mean keeps reduced modes at size 1 so it broadcasts back over x.
	// Clone guards the input buffer against the backend's inplace path.
	mean := x.MeanDims(reduce, true)
	deviations := x.Clone().Sub(mean)
	return deviations.NormDims(reduce, keepDims).DivScalar(T(math.Sqrt(float64(dofs)))), nil
}

// Norm computes the Euclidean (l2) norm over the given set of modes.
// A nil or empty dims reduces over all modes. Reduced modes are kept with
// size 1 when keepDims is true and dropped otherwise.
func Norm[T tensor.Float, B tensor.Backend](x *tensor.Tensor[T, B], dims []int, keepDims bool) (*tensor.Tensor[T, B], error) {
	reduce, err := normalizeReduceDims(x.NDim(), dims)
	if err != nil {
		return nil, fmt.Errorf("norm: %w", err)
	}
	return x.NormDims(reduce, keepDims), nil
}
