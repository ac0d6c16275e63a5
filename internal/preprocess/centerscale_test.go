package preprocess

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/multiway-ml/multiway/internal/backend/cpu"
	"github.com/multiway-ml/multiway/internal/tensor"
)

type Backend = *cpu.CPUBackend

// TestCenterScaler_FitRecordsState checks the fitted parameters and their
// shapes for a mixed centering and scaling configuration.
func TestCenterScaler_FitRecordsState(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{4, 5, 6}, backend)

	scaler := NewCenterScaler[float64, Backend]([]int{0, 1}, []int{2})
	fitted, err := scaler.Fit(x)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 5, 6}, []int(fitted.DataShape()))
	assert.Equal(t, []int{0, 1}, fitted.CenterDims())
	assert.Equal(t, []int{2}, fitted.ScaleDims())

	// Each offset keeps its centered mode at size 1; the scale keeps only
	// the scaled mode at full length.
	assert.Equal(t, []int{1, 5, 6}, []int(fitted.Offset(0).Shape()))
	assert.Equal(t, []int{4, 1, 6}, []int(fitted.Offset(1).Shape()))
	assert.Equal(t, []int{1, 1, 6}, []int(fitted.Scale(0).Shape()))
}

// TestCenterScaler_NegativeModes checks negative modes resolve against
// the tensor rank at fit time.
func TestCenterScaler_NegativeModes(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{3, 4, 5}, backend)

	scaler := NewCenterScaler[float64, Backend]([]int{-1}, nil)
	fitted, err := scaler.Fit(x)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, fitted.CenterDims())
	assert.Equal(t, []int{3, 4, 1}, []int(fitted.Offset(0).Shape()))
}

// TestCenterScaler_ConfigErrors covers the fit-time validation failures.
func TestCenterScaler_ConfigErrors(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{4, 5, 6}, backend)

	t.Run("ModeOverlap", func(t *testing.T) {
		_, err := NewCenterScaler[float64, Backend]([]int{0, 1}, []int{1}).Fit(x)
		assert.ErrorIs(t, err, ErrModeOverlap)
	})

	t.Run("OverlapThroughNegativeMode", func(t *testing.T) {
		// -1 and 2 name the same mode of a 3-mode tensor.
		_, err := NewCenterScaler[float64, Backend]([]int{-1}, []int{2}).Fit(x)
		assert.ErrorIs(t, err, ErrModeOverlap)
	})

	t.Run("DuplicateCenterMode", func(t *testing.T) {
		_, err := NewCenterScaler[float64, Backend]([]int{0, 0}, nil).Fit(x)
		assert.ErrorIs(t, err, ErrDuplicateMode)
	})

	t.Run("DuplicateScaleMode", func(t *testing.T) {
		_, err := NewCenterScaler[float64, Backend](nil, []int{1, 1}).Fit(x)
		assert.ErrorIs(t, err, ErrDuplicateMode)
	})

	t.Run("CenterModeOutOfRange", func(t *testing.T) {
		_, err := NewCenterScaler[float64, Backend]([]int{3}, nil).Fit(x)
		assert.ErrorIs(t, err, ErrModeOutOfRange)
	})

	t.Run("MultiModeScalingRefused", func(t *testing.T) {
		_, err := NewCenterScaler[float64, Backend](nil, []int{0, 1}).Fit(x)
		assert.ErrorIs(t, err, ErrMultiModeScaling)
	})

	t.Run("MultiModeScalingAllowed", func(t *testing.T) {
		_, err := NewCenterScaler[float64, Backend](nil, []int{0, 1}).
			SetAllowMultiModeScaling(true).
			Fit(x)
		assert.NoError(t, err)
	})

	t.Run("NilWeightFunc", func(t *testing.T) {
		_, err := NewCenterScaler[float64, Backend](nil, []int{0}).
			SetWeightFunc(nil).
			Fit(x)
		assert.ErrorIs(t, err, ErrNilWeightFunc)
	})

	t.Run("DDofConsumesWeightSamples", func(t *testing.T) {
		// The mode-0 weight is computed over the other two modes (30
		// samples); ddof=30 leaves no degrees of freedom.
		_, err := NewCenterScaler[float64, Backend](nil, []int{0}).
			SetDDof(30).
			Fit(x)
		assert.ErrorIs(t, err, ErrDegreesOfFreedom)
	})

	t.Run("ScalingNeedsTwoModes", func(t *testing.T) {
		vec := tensor.Randn[float64](tensor.Shape{8}, backend)
		_, err := NewCenterScaler[float64, Backend](nil, []int{0}).Fit(vec)
		assert.Error(t, err)
	})
}

// TestCenterScale_SequentialOffsets pins the sequential estimation order:
// the second offset is the mean of the already-centered tensor, not of
// the raw input.
func TestCenterScale_SequentialOffsets(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{1, 2, 7, 10}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	fitted, transformed, err := NewCenterScaler[float64, Backend]([]int{0, 1}, nil).FitTransform(x)
	require.NoError(t, err)

	// mean over mode 0 of [[1, 2], [7, 10]] is [4, 6]; centering leaves
	// [[-3, -4], [3, 4]], whose mode-1 means are [-3.5, 3.5]. The raw
	// input's mode-1 means would be [1.5, 8.5].
	assert.Equal(t, []float64{4, 6}, fitted.Offset(0).Data())
	assert.Equal(t, []float64{-3.5, 3.5}, fitted.Offset(1).Data())
	assert.Equal(t, []float64{0.5, -0.5, -0.5, 0.5}, transformed.Data())
}

// TestCenterScale_ProperCentering checks the Bro & Smilde property: after
// fitting and transforming the same data, every centered mode has zero
// mean, even with scaling applied afterwards.
func TestCenterScale_ProperCentering(t *testing.T) {
	backend := cpu.New()
	shape := tensor.Shape{5, 6, 7}
	x := tensor.Randn[float64](shape, backend)

	_, transformed, err := NewCenterScaler[float64, Backend]([]int{0, 1}, []int{2}).FitTransform(x)
	require.NoError(t, err)

	for _, d := range []int{0, 1} {
		for i, g := range refGroups(transformed.Data(), shape, []int{d}) {
			assert.InDelta(t, 0.0, stat.Mean(g, nil), 1e-12, "mode %d group %d not centered", d, i)
		}
	}
}

// TestCenterScale_UnitWeight checks that each sub-tensor within the
// scaled mode ends up with unit weight.
func TestCenterScale_UnitWeight(t *testing.T) {
	backend := cpu.New()
	shape := tensor.Shape{4, 5, 6}

	t.Run("StdWeight", func(t *testing.T) {
		x := tensor.Randn[float64](shape, backend)

		_, transformed, err := NewCenterScaler[float64, Backend](nil, []int{0}).FitTransform(x)
		require.NoError(t, err)

		for i, w := range refStd(transformed.Data(), shape, []int{1, 2}, 0) {
			assert.InDelta(t, 1.0, w, 1e-12, "slab %d std", i)
		}
	})

	t.Run("StdWeightUnbiased", func(t *testing.T) {
		x := tensor.Randn[float64](shape, backend)

		_, transformed, err := NewCenterScaler[float64, Backend](nil, []int{0}).
			SetDDof(1).
			FitTransform(x)
		require.NoError(t, err)

		for i, w := range refStd(transformed.Data(), shape, []int{1, 2}, 1) {
			assert.InDelta(t, 1.0, w, 1e-12, "slab %d std", i)
		}
	})

	t.Run("NormWeight", func(t *testing.T) {
		x := tensor.Randn[float64](shape, backend)

		_, transformed, err := NewCenterScaler[float64, Backend](nil, []int{0}).
			SetNormWeight().
			FitTransform(x)
		require.NoError(t, err)

		for i, g := range refGroups(transformed.Data(), shape, []int{1, 2}) {
			assert.InDelta(t, 1.0, floats.Norm(g, 2), 1e-12, "slab %d norm", i)
		}
	})
}

// TestCenterScale_RoundTrip checks InverseTransform(Transform(x)) on the
// fitting data.
func TestCenterScale_RoundTrip(t *testing.T) {
	t.Run("Float64", func(t *testing.T) {
		backend := cpu.New()
		x := tensor.Randn[float64](tensor.Shape{5, 6, 7}, backend)

		fitted, err := NewCenterScaler[float64, Backend]([]int{2}, []int{0}).Fit(x)
		require.NoError(t, err)

		y, err := fitted.Transform(x)
		require.NoError(t, err)
		back, err := fitted.InverseTransform(y)
		require.NoError(t, err)

		for i, want := range x.Data() {
			assert.InDelta(t, want, back.Data()[i], 1e-12, "round trip at index %d", i)
		}
	})

	t.Run("Float32", func(t *testing.T) {
		backend := cpu.New()
		x := tensor.Randn[float32](tensor.Shape{5, 6, 7}, backend)

		fitted, err := NewCenterScaler[float32, Backend]([]int{2}, []int{0}).Fit(x)
		require.NoError(t, err)

		y, err := fitted.Transform(x)
		require.NoError(t, err)
		back, err := fitted.InverseTransform(y)
		require.NoError(t, err)

		for i, want := range x.Data() {
			assert.InDelta(t, float64(want), float64(back.Data()[i]), 1e-5, "round trip at index %d", i)
		}
	})

	t.Run("MultiModeScaling", func(t *testing.T) {
		backend := cpu.New()
		x := tensor.Randn[float64](tensor.Shape{4, 5, 6}, backend)

		fitted, err := NewCenterScaler[float64, Backend]([]int{2}, []int{0, 1}).
			SetAllowMultiModeScaling(true).
			Fit(x)
		require.NoError(t, err)

		y, err := fitted.Transform(x)
		require.NoError(t, err)
		back, err := fitted.InverseTransform(y)
		require.NoError(t, err)

		for i, want := range x.Data() {
			assert.InDelta(t, want, back.Data()[i], 1e-12, "round trip at index %d", i)
		}
	})
}

// TestCenterScale_ScalingOrderMatters checks that scaling within
// multiple modes depends on the mode order.
func TestCenterScale_ScalingOrderMatters(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{4, 5, 6}, backend)

	_, first, err := NewCenterScaler[float64, Backend](nil, []int{0, 1}).
		SetAllowMultiModeScaling(true).
		FitTransform(x)
	require.NoError(t, err)

	_, second, err := NewCenterScaler[float64, Backend](nil, []int{1, 0}).
		SetAllowMultiModeScaling(true).
		FitTransform(x)
	require.NoError(t, err)

	maxDiff := 0.0
	for i, v := range first.Data() {
		diff := math.Abs(v - second.Data()[i])
		if diff > maxDiff {
			maxDiff = diff
		}
	}
	assert.Greater(t, maxDiff, 1e-8, "scaling order should change the result")
}

// TestCenterScale_FitTransform checks FitTransform equals Fit followed by
// Transform on the same tensor.
func TestCenterScale_FitTransform(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{5, 6, 7}, backend)

	scaler := NewCenterScaler[float64, Backend]([]int{2}, []int{0})

	fitted, combined, err := scaler.FitTransform(x)
	require.NoError(t, err)

	separate, err := fitted.Transform(x)
	require.NoError(t, err)

	assert.Equal(t, separate.Data(), combined.Data())
}

// TestCenterScale_TransformNewData checks stored offsets are applied to
// new observations along the centered mode.
func TestCenterScale_TransformNewData(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	fitted, err := NewCenterScaler[float64, Backend]([]int{0}, nil).Fit(x)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3}, fitted.Offset(0).Data())

	// Three new observations; the stored offsets are used, not
	// re-estimated.
	y, err := tensor.FromSlice([]float64{10, 20, 30, 40, 50, 60}, tensor.Shape{3, 2}, backend)
	require.NoError(t, err)

	transformed, err := fitted.Transform(y)
	require.NoError(t, err)
	assert.Equal(t, []float64{8, 17, 28, 37, 48, 57}, transformed.Data())
}

// TestCenterScale_ShapeErrors covers the transform-time compatibility
// checks.
func TestCenterScale_ShapeErrors(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{4, 5, 6}, backend)

	fitted, err := NewCenterScaler[float64, Backend]([]int{0}, []int{2}).Fit(x)
	require.NoError(t, err)

	t.Run("ModeCountMismatch", func(t *testing.T) {
		y := tensor.Randn[float64](tensor.Shape{4, 5}, backend)

		_, err := fitted.Transform(y)
		var shapeErr *ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, -1, shapeErr.Dim)
	})

	t.Run("CenteredModeMayGrow", func(t *testing.T) {
		y := tensor.Randn[float64](tensor.Shape{9, 5, 6}, backend)

		_, err := fitted.Transform(y)
		assert.NoError(t, err)
	})

	t.Run("NonCenteredModeMustMatch", func(t *testing.T) {
		y := tensor.Randn[float64](tensor.Shape{4, 8, 6}, backend)

		_, err := fitted.Transform(y)
		var shapeErr *ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, "center", shapeErr.Op)
		assert.Equal(t, 0, shapeErr.Dim)
	})

	t.Run("ScaledModeChangeFailsCenterCheck", func(t *testing.T) {
		// The mode-0 offset spans modes 1 and 2, so resizing the scaled
		// mode already breaks the centering broadcast.
		y := tensor.Randn[float64](tensor.Shape{4, 5, 9}, backend)

		_, err := fitted.Transform(y)
		var shapeErr *ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, "center", shapeErr.Op)
	})

	t.Run("ScaledModeMustMatch", func(t *testing.T) {
		scaleOnly, err := NewCenterScaler[float64, Backend](nil, []int{2}).Fit(x)
		require.NoError(t, err)

		y := tensor.Randn[float64](tensor.Shape{4, 5, 9}, backend)

		_, err = scaleOnly.Transform(y)
		var shapeErr *ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, "scale", shapeErr.Op)
		assert.Equal(t, 2, shapeErr.Dim)
	})

	t.Run("InverseTransformChecksToo", func(t *testing.T) {
		y := tensor.Randn[float64](tensor.Shape{4, 5}, backend)

		_, err := fitted.InverseTransform(y)
		var shapeErr *ShapeError
		require.ErrorAs(t, err, &shapeErr)
		assert.Equal(t, -1, shapeErr.Dim)
	})
}

// TestCenterScale_CustomWeightFunc checks a caller-supplied weight is
// used for scaling.
func TestCenterScale_CustomWeightFunc(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float64{2, 4, 6, 8}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	halve := func(x *tensor.Tensor[float64, Backend], dims []int, keepDims bool) (*tensor.Tensor[float64, Backend], error) {
		return tensor.Full(x.Shape().Reduced(dims, keepDims), 2.0, x.Backend()), nil
	}

	_, transformed, err := NewCenterScaler[float64, Backend](nil, []int{0}).
		SetWeightFunc(halve).
		FitTransform(x)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3, 4}, transformed.Data())
}

// TestCenterScale_NoOpConfig checks the empty configuration fits and
// transforms as the identity.
func TestCenterScale_NoOpConfig(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{3, 4}, backend)

	fitted, err := NewCenterScaler[float64, Backend](nil, nil).Fit(x)
	require.NoError(t, err)

	y, err := fitted.Transform(x)
	require.NoError(t, err)
	assert.Equal(t, x.Data(), y.Data())
}

// TestCenterScale_InputNotMutated checks fit and transform leave their
// arguments untouched.
func TestCenterScale_InputNotMutated(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{4, 5, 6}, backend)
	before := append([]float64(nil), x.Data()...)

	fitted, err := NewCenterScaler[float64, Backend]([]int{0}, []int{2}).Fit(x)
	require.NoError(t, err)
	assert.Equal(t, before, x.Data(), "Fit must not modify the input")

	_, err = fitted.Transform(x)
	require.NoError(t, err)
	assert.Equal(t, before, x.Data(), "Transform must not modify the input")

	_, err = fitted.InverseTransform(x)
	require.NoError(t, err)
	assert.Equal(t, before, x.Data(), "InverseTransform must not modify the input")
}

// TestCenterScale_ConcurrentTransform checks the fitted transform is safe
// for concurrent use.
func TestCenterScale_ConcurrentTransform(t *testing.T) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{5, 6, 7}, backend)

	fitted, err := NewCenterScaler[float64, Backend]([]int{2}, []int{0}).Fit(x)
	require.NoError(t, err)

	want, err := fitted.Transform(x)
	require.NoError(t, err)

	const workers = 8
	results := make([]*tensor.Tensor[float64, Backend], workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w], errs[w] = fitted.Transform(x)
		}(w)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
		assert.Equal(t, want.Data(), results[w].Data(), "worker %d result differs", w)
	}
}

// BenchmarkFitTransform benchmarks the full estimator pass.
func BenchmarkFitTransform(b *testing.B) {
	backend := cpu.New()
	x := tensor.Randn[float64](tensor.Shape{64, 128, 32}, backend)
	scaler := NewCenterScaler[float64, Backend]([]int{2}, []int{0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = scaler.FitTransform(x)
	}
}
