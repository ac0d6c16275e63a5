package preprocess

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/multiway-ml/multiway/internal/backend/cpu"
	"github.com/multiway-ml/multiway/internal/tensor"
)

// refGroups collects the elements reduced into each output cell when
// reducing shape over dims, in keep-dims layout.
func refGroups(data []float64, shape tensor.Shape, dims []int) [][]float64 {
	keepShape := shape.Reduced(dims, true)
	reduced := make(map[int]bool, len(dims))
	for _, d := range dims {
		reduced[d] = true
	}
	inStrides := shape.ComputeStrides()
	outStrides := keepShape.ComputeStrides()

	groups := make([][]float64, keepShape.NumElements())
	for i, v := range data {
		outIdx := 0
		rest := i
		for d := 0; d < len(shape); d++ {
			coord := rest / inStrides[d]
			rest %= inStrides[d]
			if !reduced[d] {
				outIdx += coord * outStrides[d]
			}
		}
		groups[outIdx] = append(groups[outIdx], v)
	}
	return groups
}

// refStd computes the reference standard deviation for each output cell
// with gonum's estimators.
func refStd(data []float64, shape tensor.Shape, dims []int, ddof int) []float64 {
	groups := refGroups(data, shape, dims)
	out := make([]float64, len(groups))
	for i, g := range groups {
		if ddof == 1 {
			out[i] = stat.StdDev(g, nil)
		} else {
			out[i] = stat.PopStdDev(g, nil)
		}
	}
	return out
}

// TestStd_MatchesReference checks Std against gonum over the full grid of
// mode sets, ddof and keepDims on a standard-normal (5, 6, 7) tensor.
func TestStd_MatchesReference(t *testing.T) {
	backend := cpu.New()
	shape := tensor.Shape{5, 6, 7}
	x := tensor.Randn[float64](shape, backend)
	data := append([]float64(nil), x.Data()...)

	axisCases := []struct {
		name string
		dims []int
	}{
		{"all", nil},
		{"mode0", []int{0}},
		{"mode1", []int{1}},
		{"mode2", []int{2}},
		{"modes01", []int{0, 1}},
		{"modes02", []int{0, 2}},
		{"modes12", []int{1, 2}},
		{"modes012", []int{0, 1, 2}},
	}

	for _, tc := range axisCases {
		for _, ddof := range []int{0, 1} {
			for _, keepDims := range []bool{true, false} {
				name := fmt.Sprintf("%s/ddof=%d/keepdims=%v", tc.name, ddof, keepDims)
				t.Run(name, func(t *testing.T) {
					got, err := Std(x, tc.dims, keepDims, ddof)
					require.NoError(t, err)

					reduceDims := tc.dims
					if reduceDims == nil {
						reduceDims = []int{0, 1, 2}
					}
					assert.Equal(t, []int(shape.Reduced(reduceDims, keepDims)), []int(got.Shape()), "shape mismatch")

					want := refStd(data, shape, reduceDims, ddof)
					gotData := got.Data()
					require.Len(t, gotData, len(want))
					for i, w := range want {
						assert.InDelta(t, w, gotData[i], 1e-12, "std mismatch at index %d", i)
					}
				})
			}
		}
	}
}

// TestStd_Float32 checks the float32 path against a float64 reference.
func TestStd_Float32(t *testing.T) {
	backend := cpu.New()
	shape := tensor.Shape{5, 6, 7}
	x := tensor.Randn[float32](shape, backend)

	data := make([]float64, x.NumElements())
	for i, v := range x.Data() {
		data[i] = float64(v)
	}

	got, err := Std(x, []int{0, 2}, true, 1)
	require.NoError(t, err)
	require.Equal(t, []int{1, 6, 1}, []int(got.Shape()))

	want := refStd(data, shape, []int{0, 2}, 1)
	for i, w := range want {
		assert.InDelta(t, w, float64(got.Data()[i]), 1e-5, "std mismatch at index %d", i)
	}
}

// TestStd_KnownValues pins the two estimators on a hand-checked vector.
func TestStd_KnownValues(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4}, backend)
	require.NoError(t, err)

	// Deviations from the mean 2.5 are [-1.5, -0.5, 0.5, 1.5]; the sum of
	// squares is 5.
	sample, err := Std(x, nil, false, 0)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(5.0/4.0), sample.Item(), 1e-12)

	unbiased, err := Std(x, nil, false, 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(5.0/3.0), unbiased.Item(), 1e-12)
}

// TestStd_NegativeMode checks that -1 refers to the last mode.
func TestStd_NegativeMode(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{3, 4}, backend)

	neg, err := Std(x, []int{-1}, true, 0)
	require.NoError(t, err)
	pos, err := Std(x, []int{1}, true, 0)
	require.NoError(t, err)

	assert.Equal(t, pos.Data(), neg.Data())
	assert.Equal(t, []int{3, 1}, []int(neg.Shape()))
}

// TestStd_DuplicateModesCollapse checks that repeated modes count once.
func TestStd_DuplicateModesCollapse(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{3, 4, 5}, backend)

	dup, err := Std(x, []int{0, 2, 0}, true, 0)
	require.NoError(t, err)
	unique, err := Std(x, []int{0, 2}, true, 0)
	require.NoError(t, err)

	assert.Equal(t, unique.Data(), dup.Data())
}

// TestStd_KeepDimsBroadcastsBack checks the size-1 result divides the
// input it came from.
func TestStd_KeepDimsBroadcastsBack(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{5, 6, 7}, backend)

	s, err := Std(x, []int{0, 2}, true, 0)
	require.NoError(t, err)
	require.Equal(t, []int{1, 6, 1}, []int(s.Shape()))

	z := x.Clone().Div(s)
	assert.Equal(t, []int{5, 6, 7}, []int(z.Shape()))
}

// TestStd_Errors covers the validation failures.
func TestStd_Errors(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{3, 4}, backend)

	t.Run("ModeOutOfRange", func(t *testing.T) {
		_, err := Std(x, []int{2}, false, 0)
		assert.ErrorIs(t, err, ErrModeOutOfRange)
	})

	t.Run("NegativeModeOutOfRange", func(t *testing.T) {
		_, err := Std(x, []int{-3}, false, 0)
		assert.ErrorIs(t, err, ErrModeOutOfRange)
	})

	t.Run("DDofConsumesAllSamples", func(t *testing.T) {
		// 3 samples along mode 0, ddof=3 leaves no degrees of freedom.
		_, err := Std(x, []int{0}, false, 3)
		assert.ErrorIs(t, err, ErrDegreesOfFreedom)
	})

	t.Run("DDofAboveSampleCount", func(t *testing.T) {
		_, err := Std(x, nil, false, 13)
		assert.ErrorIs(t, err, ErrDegreesOfFreedom)
	})

	t.Run("DDofJustBelow", func(t *testing.T) {
		_, err := Std(x, []int{0}, false, 2)
		assert.NoError(t, err)
	})
}

// TestStd_InputNotMutated checks Std leaves its argument untouched.
func TestStd_InputNotMutated(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	before := append([]float64(nil), x.Data()...)

	_, err = Std(x, []int{0}, true, 0)
	require.NoError(t, err)

	assert.Equal(t, before, x.Data())
}

// TestNorm covers the Euclidean norm companion.
func TestNorm(t *testing.T) {
	backend := cpu.New()

	t.Run("Pythagorean", func(t *testing.T) {
		x, err := tensor.FromSlice([]float64{3, 4}, tensor.Shape{2}, backend)
		require.NoError(t, err)

		n, err := Norm(x, nil, false)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, n.Item(), 1e-12)
	})

	t.Run("MatchesGonum", func(t *testing.T) {
		x := tensor.Randn[float64](tensor.Shape{4, 5}, backend)

		n, err := Norm(x, nil, false)
		require.NoError(t, err)
		assert.InDelta(t, floats.Norm(x.Data(), 2), n.Item(), 1e-12)
	})

	t.Run("PerMode", func(t *testing.T) {
		// [[3, 5], [4, 12]] has column norms [5, 13].
		x, err := tensor.FromSlice([]float64{3, 5, 4, 12}, tensor.Shape{2, 2}, backend)
		require.NoError(t, err)

		n, err := Norm(x, []int{0}, true)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, []int(n.Shape()))
		assert.InDelta(t, 5.0, n.Data()[0], 1e-12)
		assert.InDelta(t, 13.0, n.Data()[1], 1e-12)
	})

	t.Run("ModeOutOfRange", func(t *testing.T) {
		x := tensor.Randn[float64](tensor.Shape{2, 2}, backend)

		_, err := Norm(x, []int{5}, false)
		assert.ErrorIs(t, err, ErrModeOutOfRange)
	})
}

// BenchmarkStd benchmarks the multi-mode standard deviation.
func BenchmarkStd(b *testing.B) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{64, 128, 32}, backend)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Std(x, []int{0, 2}, true, 0)
	}
}
