package preprocess

import (
	"fmt"
	"io"

	"github.com/multiway-ml/multiway/internal/serialization"
	"github.com/multiway-ml/multiway/internal/tensor"
)

// estimatorName tags saved state so a file cannot be loaded as the
// wrong estimator.
const estimatorName = "CenterScale"

// State dict keys. Offsets and scales pair with the mode lists by
// index; the int64 vectors carry the modes and the fitting shape.
const (
	keyCenterModes = "center_modes"
	keyScaleModes  = "scale_modes"
	keyDataShape   = "data_shape"
)

func offsetKey(i int) string { return fmt.Sprintf("offset.%d", i) }
func scaleKey(i int) string  { return fmt.Sprintf("scale.%d", i) }

// Save writes the fitted state to a .mway container file at path.
func (cs *CenterScale[T, B]) Save(path string) error {
	stateDict, err := cs.stateDict()
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return serialization.WriteFile(path, stateDict, estimatorName, nil)
}

// SaveTo writes the fitted state to w in the .mway container format.
func (cs *CenterScale[T, B]) SaveTo(w io.Writer) error {
	stateDict, err := cs.stateDict()
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return serialization.WriteTo(w, stateDict, estimatorName, nil)
}

// stateDict flattens the fitted parameters into named raw tensors.
// A mode vector or shape that would be empty is omitted; absence reads
// back as empty.
func (cs *CenterScale[T, B]) stateDict() (map[string]*tensor.RawTensor, error) {
	stateDict := make(map[string]*tensor.RawTensor, len(cs.offsets)+len(cs.scales)+3)
	for i, offset := range cs.offsets {
		stateDict[offsetKey(i)] = offset.Raw()
	}
	for i, scale := range cs.scales {
		stateDict[scaleKey(i)] = scale.Raw()
	}

	for key, values := range map[string][]int{
		keyCenterModes: cs.centerDims,
		keyScaleModes:  cs.scaleDims,
		keyDataShape:   cs.dataShape,
	} {
		if len(values) == 0 {
			continue
		}
		raw, err := intVector(values)
		if err != nil {
			return nil, fmt.Errorf("tensor %q: %w", key, err)
		}
		stateDict[key] = raw
	}
	return stateDict, nil
}

// intVector stores a mode list or shape as an int64 tensor.
func intVector(values []int) (*tensor.RawTensor, error) {
	raw, err := tensor.NewRaw(tensor.Shape{len(values)}, tensor.Int64, tensor.CPU)
	if err != nil {
		return nil, err
	}
	dst := raw.AsInt64()
	for i, v := range values {
		dst[i] = int64(v)
	}
	return raw, nil
}

// LoadCenterScale restores fitted state saved by Save. The element type
// T must match the dtype the state was fitted with, and the loaded
// parameters live on b's device.
func LoadCenterScale[T tensor.Float, B tensor.Backend](path string, b B) (*CenterScale[T, B], error) {
	reader, err := serialization.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer reader.Close()

	stateDict, err := reader.ReadStateDict(b.Device())
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return assembleCenterScale[T, B](stateDict, reader.Header(), b)
}

// ReadCenterScale restores fitted state from r, as written by SaveTo.
func ReadCenterScale[T tensor.Float, B tensor.Backend](r io.Reader, b B) (*CenterScale[T, B], error) {
	stateDict, header, err := serialization.ReadFrom(r, b.Device())
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return assembleCenterScale[T, B](stateDict, header, b)
}

// assembleCenterScale rebuilds a fitted transform from a loaded state
// dict, re-checking every invariant Fit would have established. The
// checks are strict: a state dict with missing, extra, mistyped or
// misshapen tensors is rejected rather than partially loaded.
func assembleCenterScale[T tensor.Float, B tensor.Backend](stateDict map[string]*tensor.RawTensor, header serialization.Header, b B) (*CenterScale[T, B], error) {
	if header.EstimatorType != estimatorName {
		return nil, fmt.Errorf("load: %w: got %q, want %q", ErrEstimatorType, header.EstimatorType, estimatorName)
	}

	centerDims, err := loadIntVector(stateDict, keyCenterModes)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	scaleDims, err := loadIntVector(stateDict, keyScaleModes)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	shapeInts, err := loadIntVector(stateDict, keyDataShape)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	dataShape := tensor.Shape(shapeInts)
	if err := dataShape.Validate(); err != nil {
		return nil, fmt.Errorf("load: tensor %q: %w", keyDataShape, err)
	}

	if err := checkLoadedModes(len(dataShape), centerDims, scaleDims); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	dtype := tensor.DataTypeOf[T]()

	offsets := make([]*tensor.Tensor[T, B], len(centerDims))
	for i, d := range centerDims {
		raw, err := loadedTensor(stateDict, offsetKey(i), dtype)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		if err := checkOffsetShape(raw.Shape(), dataShape, d); err != nil {
			return nil, err
		}
		offsets[i] = tensor.New[T, B](raw, b)
	}

	scales := make([]*tensor.Tensor[T, B], len(scaleDims))
	for i := range scaleDims {
		raw, err := loadedTensor(stateDict, scaleKey(i), dtype)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		if err := checkScaleShape(raw.Shape(), dataShape); err != nil {
			return nil, err
		}
		scales[i] = tensor.New[T, B](raw, b)
	}

	if err := checkNoExtraTensors(stateDict, len(centerDims), len(scaleDims)); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	return &CenterScale[T, B]{
		dataShape:  dataShape,
		centerDims: centerDims,
		scaleDims:  scaleDims,
		offsets:    offsets,
		scales:     scales,
	}, nil
}

// loadIntVector reads an optional int64 vector; absence means empty.
func loadIntVector(stateDict map[string]*tensor.RawTensor, key string) ([]int, error) {
	raw, ok := stateDict[key]
	if !ok {
		return nil, nil
	}
	if raw.DType() != tensor.Int64 {
		return nil, fmt.Errorf("tensor %q: %w: stored %v, want %v", key, ErrDTypeMismatch, raw.DType(), tensor.Int64)
	}
	if len(raw.Shape()) != 1 {
		return nil, fmt.Errorf("tensor %q: shape %v, want a vector", key, raw.Shape())
	}

	src := raw.AsInt64()
	values := make([]int, len(src))
	for i, v := range src {
		values[i] = int(v)
	}
	return values, nil
}

// loadedTensor fetches a required fitted tensor and checks its dtype
// against the requested element type.
func loadedTensor(stateDict map[string]*tensor.RawTensor, key string, dtype tensor.DataType) (*tensor.RawTensor, error) {
	raw, ok := stateDict[key]
	if !ok {
		return nil, fmt.Errorf("missing tensor %q", key)
	}
	if raw.DType() != dtype {
		return nil, fmt.Errorf("tensor %q: %w: stored %v, want %v", key, ErrDTypeMismatch, raw.DType(), dtype)
	}
	return raw, nil
}

// checkLoadedModes re-runs the fit-time mode checks on loaded state.
func checkLoadedModes(ndim int, centerDims, scaleDims []int) error {
	inCenter := make(map[int]bool, len(centerDims))
	for _, d := range centerDims {
		if d < 0 || d >= ndim {
			return fmt.Errorf("%w: centering mode %d of %d-way data", ErrModeOutOfRange, d, ndim)
		}
		if inCenter[d] {
			return fmt.Errorf("%w: centering mode %d", ErrDuplicateMode, d)
		}
		inCenter[d] = true
	}

	inScale := make(map[int]bool, len(scaleDims))
	for _, d := range scaleDims {
		if d < 0 || d >= ndim {
			return fmt.Errorf("%w: scaling mode %d of %d-way data", ErrModeOutOfRange, d, ndim)
		}
		if inScale[d] {
			return fmt.Errorf("%w: scaling mode %d", ErrDuplicateMode, d)
		}
		if inCenter[d] {
			return fmt.Errorf("%w: mode %d", ErrModeOverlap, d)
		}
		inScale[d] = true
	}
	return nil
}

// checkOffsetShape verifies the invariant a keepdims mean leaves
// behind: the centered mode reduced to length 1, every other mode at
// its fitting length.
func checkOffsetShape(got tensor.Shape, dataShape tensor.Shape, mode int) error {
	want := dataShape.Clone()
	want[mode] = 1
	if !got.Equal(want) {
		return &ShapeError{Op: "load", Dim: mode, Want: want, Got: got}
	}
	return nil
}

// checkScaleShape verifies the stored scale broadcasts against the
// fitting shape. Built-in weights produce a keepdims reduction, but a
// custom weight function may return any broadcastable shape, so only
// broadcast compatibility is required.
func checkScaleShape(got tensor.Shape, dataShape tensor.Shape) error {
	if len(got) != len(dataShape) {
		return &ShapeError{Op: "load", Dim: -1, Want: dataShape, Got: got}
	}
	for k := range got {
		if got[k] != 1 && got[k] != dataShape[k] {
			return &ShapeError{Op: "load", Dim: k, Want: dataShape, Got: got}
		}
	}
	return nil
}

// checkNoExtraTensors rejects state dicts carrying tensors this version
// does not understand, such as an offset index past the mode count.
func checkNoExtraTensors(stateDict map[string]*tensor.RawTensor, numOffsets, numScales int) error {
	expected := make(map[string]bool, numOffsets+numScales+3)
	for i := 0; i < numOffsets; i++ {
		expected[offsetKey(i)] = true
	}
	for i := 0; i < numScales; i++ {
		expected[scaleKey(i)] = true
	}
	expected[keyCenterModes] = true
	expected[keyScaleModes] = true
	expected[keyDataShape] = true

	for name := range stateDict {
		if !expected[name] {
			return fmt.Errorf("unexpected tensor %q", name)
		}
	}
	return nil
}
