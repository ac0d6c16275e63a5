// Package preprocess implements proper centering and scaling of multi-way
// arrays, following Bro & Smilde (2003), "Centering and scaling in
// component analysis", J. Chemometrics 17:16-33.
//
// Centering is performed ACROSS a mode: the mean over that mode is
// subtracted, removing constant offsets. Scaling is performed WITHIN a
// mode: every sub-tensor along that mode is divided by its weight
// (standard deviation or norm) computed over all other modes. A mode must
// not be centered across and scaled within at the same time, since the
// scaling would then affect the centering.
package preprocess

import (
	"errors"
	"fmt"

	"github.com/multiway-ml/multiway/internal/tensor"
)

// weightKind selects the built-in scaling weight. The set is closed;
// anything else goes through an explicit WeightFunc.
type weightKind int

const (
	weightStd weightKind = iota
	weightNorm
	weightCustom
)

// CenterScaler configures a proper centering and scaling transform. It
// holds configuration only; Fit produces the immutable fitted parameters.
//
// Example:
//
//	scaler := preprocess.NewCenterScaler[float64, *cpu.CPUBackend]([]int{2}, []int{0})
//	fitted, err := scaler.Fit(x)
//	y, err := fitted.Transform(x)
type CenterScaler[T tensor.Float, B tensor.Backend] struct {
	centerAcross []int
	scaleWithin  []int

	kind           weightKind
	ddof           int
	weightFn       WeightFunc[T, B]
	allowMultiMode bool
}

// NewCenterScaler creates a scaler that centers across the centerAcross
// modes and scales within the scaleWithin modes, both applied in the
// given order. The default scaling weight is the sample standard
// deviation (ddof=0).
//
// The two mode sets must not overlap: centering across a mode that is
// also scaled within would let the scaling affect the centering.
func NewCenterScaler[T tensor.Float, B tensor.Backend](centerAcross, scaleWithin []int) *CenterScaler[T, B] {
	return &CenterScaler[T, B]{
		centerAcross: append([]int(nil), centerAcross...),
		scaleWithin:  append([]int(nil), scaleWithin...),
	}
}

// SetDDof sets the delta degrees of freedom for the standard-deviation
// weight. ddof=1 gives the unbiased estimator instead of the sample
// standard deviation. Ignored by other weights. Returns the receiver for
// chaining.
func (s *CenterScaler[T, B]) SetDDof(ddof int) *CenterScaler[T, B] {
	s.ddof = ddof
	return s
}

// SetNormWeight selects the Euclidean norm as the scaling weight.
// Returns the receiver for chaining.
func (s *CenterScaler[T, B]) SetNormWeight() *CenterScaler[T, B] {
	s.kind = weightNorm
	return s
}

// SetWeightFunc selects a custom scaling weight. Returns the receiver for
// chaining.
func (s *CenterScaler[T, B]) SetWeightFunc(fn WeightFunc[T, B]) *CenterScaler[T, B] {
	s.kind = weightCustom
	s.weightFn = fn
	return s
}

// SetAllowMultiModeScaling accepts scaling within more than one mode.
// The result then depends on the order of the scaleWithin modes, and unit
// weight within every scaled mode is not guaranteed; Fit refuses multiple
// scaling modes unless this is set. Returns the receiver for chaining.
func (s *CenterScaler[T, B]) SetAllowMultiModeScaling(allow bool) *CenterScaler[T, B] {
	s.allowMultiMode = allow
	return s
}

// weight resolves the configured scaling weight function.
func (s *CenterScaler[T, B]) weight() (WeightFunc[T, B], error) {
	switch s.kind {
	case weightNorm:
		return NormWeight[T, B](), nil
	case weightCustom:
		if s.weightFn == nil {
			return nil, ErrNilWeightFunc
		}
		return s.weightFn, nil
	default:
		return StdWeight[T, B](s.ddof), nil
	}
}

// normalizeModes resolves an estimator mode list against ndim. Negative
// modes are resolved, order is preserved, and duplicates are rejected:
// centering across or scaling within the same mode twice is a
// configuration mistake, not a request.
func normalizeModes(ndim int, modes []int, what string) ([]int, error) {
	normalized, err := tensor.NormalizeDims(modes, ndim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", what, ErrModeOutOfRange, err)
	}

	seen := make(map[int]bool, len(normalized))
	for _, m := range normalized {
		if seen[m] {
			return nil, fmt.Errorf("%s: %w: mode %d", what, ErrDuplicateMode, m)
		}
		seen[m] = true
	}
	return normalized, nil
}

// Fit estimates offsets and scales from x and returns the fitted
// transform. x itself is not modified.
//
// Offsets are estimated sequentially: each centering mode's offset is the
// mean of the tensor with all previous offsets already subtracted. This
// is the Bro & Smilde construction under which every centered mode ends
// up with zero mean and the transform/inverse pair is exact on the
// fitting data. Scales are estimated the same way, each scaling mode's
// weight computed on the tensor already divided by the previous weights.
func (s *CenterScaler[T, B]) Fit(x *tensor.Tensor[T, B]) (*CenterScale[T, B], error) {
	fitted, _, err := s.fit(x)
	return fitted, err
}

// FitTransform fits the transform and returns the transformed fitting
// data in one pass. Equivalent to Fit followed by Transform on the same
// tensor, without recomputing the chain.
func (s *CenterScaler[T, B]) FitTransform(x *tensor.Tensor[T, B]) (*CenterScale[T, B], *tensor.Tensor[T, B], error) {
	return s.fit(x)
}

func (s *CenterScaler[T, B]) fit(x *tensor.Tensor[T, B]) (*CenterScale[T, B], *tensor.Tensor[T, B], error) {
	ndim := x.NDim()

	centerDims, err := normalizeModes(ndim, s.centerAcross, "centering modes")
	if err != nil {
		return nil, nil, fmt.Errorf("fit: %w", err)
	}
	scaleDims, err := normalizeModes(ndim, s.scaleWithin, "scaling modes")
	if err != nil {
		return nil, nil, fmt.Errorf("fit: %w", err)
	}

	inCenter := make(map[int]bool, len(centerDims))
	for _, d := range centerDims {
		inCenter[d] = true
	}
	for _, d := range scaleDims {
		if inCenter[d] {
			return nil, nil, fmt.Errorf("fit: %w: mode %d", ErrModeOverlap, d)
		}
	}

	if len(scaleDims) > 1 && !s.allowMultiMode {
		return nil, nil, fmt.Errorf("fit: %w: modes %v", ErrMultiModeScaling, scaleDims)
	}
	if len(scaleDims) > 0 && ndim < 2 {
		return nil, nil, errors.New("fit: scaling within a mode requires a tensor with at least 2 modes")
	}

	weightFn, err := s.weight()
	if err != nil {
		return nil, nil, fmt.Errorf("fit: %w", err)
	}

	// Clone keeps x's buffer out of the backend's inplace paths.
	running := x.Clone()

	offsets := make([]*tensor.Tensor[T, B], 0, len(centerDims))
	for _, d := range centerDims {
		offset := running.MeanDims([]int{d}, true)
		running = running.Sub(offset)
		offsets = append(offsets, offset)
	}

	scales := make([]*tensor.Tensor[T, B], 0, len(scaleDims))
	for _, d := range scaleDims {
		scale, err := weightFn(running, tensor.ComplementDims([]int{d}, ndim), true)
		if err != nil {
			return nil, nil, fmt.Errorf("fit: scaling weight for mode %d: %w", d, err)
		}
		running = running.Div(scale)
		scales = append(scales, scale)
	}

	fitted := &CenterScale[T, B]{
		dataShape:  x.Shape().Clone(),
		centerDims: centerDims,
		scaleDims:  scaleDims,
		offsets:    offsets,
		scales:     scales,
	}
	return fitted, running, nil
}

// CenterScale holds the fitted parameters of a proper centering and
// scaling transform. It is immutable after Fit, so concurrent Transform
// and InverseTransform calls are safe.
type CenterScale[T tensor.Float, B tensor.Backend] struct {
	dataShape  tensor.Shape
	centerDims []int
	scaleDims  []int
	offsets    []*tensor.Tensor[T, B]
	scales     []*tensor.Tensor[T, B]
}

// DataShape returns the shape of the fitting data.
func (cs *CenterScale[T, B]) DataShape() tensor.Shape {
	return cs.dataShape.Clone()
}

// CenterDims returns the normalized centering modes in application order.
func (cs *CenterScale[T, B]) CenterDims() []int {
	return append([]int(nil), cs.centerDims...)
}

// ScaleDims returns the normalized scaling modes in application order.
func (cs *CenterScale[T, B]) ScaleDims() []int {
	return append([]int(nil), cs.scaleDims...)
}

// Offset returns the offset subtracted at centering step i, paired with
// CenterDims()[i]. The returned tensor is shared fitted state and must
// not be modified.
func (cs *CenterScale[T, B]) Offset(i int) *tensor.Tensor[T, B] {
	return cs.offsets[i]
}

// Scale returns the weight divided out at scaling step i, paired with
// ScaleDims()[i]. The returned tensor is shared fitted state and must not
// be modified.
func (cs *CenterScale[T, B]) Scale(i int) *tensor.Tensor[T, B] {
	return cs.scales[i]
}

// Transform applies the fitted centering and scaling to x: offsets are
// subtracted in fitting order, then scales are divided out in fitting
// order. x itself is not modified.
//
// x must be compatible with the fitted parameters; mismatches are
// reported as a *ShapeError. The length of a centered mode may differ
// from the fitting data (new observations along that mode are fine);
// scaled modes must keep their fitted length.
func (cs *CenterScale[T, B]) Transform(x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	if err := cs.checkCompat(x); err != nil {
		return nil, err
	}

	result := x.Clone()
	for _, offset := range cs.offsets {
		result = result.Sub(offset)
	}
	for _, scale := range cs.scales {
		result = result.Div(scale)
	}
	return result, nil
}

// InverseTransform undoes Transform: scales are multiplied back in
// reverse fitting order, then offsets are added back in reverse fitting
// order. On the fitting data this inverts Transform exactly (up to
// floating-point roundoff); on other data it applies the stored
// parameters in reverse without re-estimating anything.
func (cs *CenterScale[T, B]) InverseTransform(x *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], error) {
	if err := cs.checkCompat(x); err != nil {
		return nil, err
	}

	result := x.Clone()
	for i := len(cs.scales) - 1; i >= 0; i-- {
		result = result.Mul(cs.scales[i])
	}
	for i := len(cs.offsets) - 1; i >= 0; i-- {
		result = result.Add(cs.offsets[i])
	}
	return result, nil
}

// checkCompat verifies that x can be pushed through the fitted transform.
func (cs *CenterScale[T, B]) checkCompat(x *tensor.Tensor[T, B]) error {
	if x.NDim() != len(cs.dataShape) {
		return &ShapeError{Op: "transform", Dim: -1, Want: cs.dataShape, Got: x.Shape()}
	}
	if err := cs.checkCenterCompat(x); err != nil {
		return err
	}
	return cs.checkScaleCompat(x)
}

// checkCenterCompat compares x against each stored offset with the
// centered position removed from both shapes. Comparison is by position:
// the centered mode's length may change, every other mode must match the
// offset it will broadcast against.
func (cs *CenterScale[T, B]) checkCenterCompat(x *tensor.Tensor[T, B]) error {
	for i, d := range cs.centerDims {
		want := cs.offsets[i].Shape().Reduced([]int{d}, false)
		got := x.Shape().Reduced([]int{d}, false)
		if !got.Equal(want) {
			return &ShapeError{Op: "center", Dim: d, Want: want, Got: got}
		}
	}
	return nil
}

// checkScaleCompat verifies every scaled mode keeps its fitted length,
// since the stored scale assigns one weight per position along it.
func (cs *CenterScale[T, B]) checkScaleCompat(x *tensor.Tensor[T, B]) error {
	for _, d := range cs.scaleDims {
		if x.Shape()[d] != cs.dataShape[d] {
			return &ShapeError{
				Op:   "scale",
				Dim:  d,
				Want: tensor.Shape{cs.dataShape[d]},
				Got:  tensor.Shape{x.Shape()[d]},
			}
		}
	}
	return nil
}
