package preprocess

import (
	"errors"
	"fmt"

	"github.com/multiway-ml/multiway/internal/tensor"
)

// Common errors.
var (
	ErrModeOverlap      = errors.New("centering and scaling modes overlap")
	ErrDuplicateMode    = errors.New("duplicate mode")
	ErrModeOutOfRange   = errors.New("mode out of range")
	ErrMultiModeScaling = errors.New("scaling within multiple modes is order-dependent")
	ErrDegreesOfFreedom = errors.New("non-positive degrees of freedom")
	ErrNilWeightFunc    = errors.New("nil weight function")
)

// Errors reported when loading saved fitted state.
var (
	ErrEstimatorType = errors.New("unexpected estimator type")
	ErrDTypeMismatch = errors.New("stored dtype does not match requested element type")
)

// ShapeError reports an input tensor that is incompatible with fitted
// parameters.
type ShapeError struct {
	Op   string       // Check that failed ("transform", "center", "scale", "load")
	Dim  int          // Mode being checked, or -1 when the mode count differs
	Want tensor.Shape // Compatible shape (or shape slice) expected
	Got  tensor.Shape // Shape (or shape slice) found on the input
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Dim < 0 {
		return fmt.Sprintf("%s: incompatible mode count: want %v, got %v", e.Op, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: incompatible shape for mode %d: want %v, got %v", e.Op, e.Dim, e.Want, e.Got)
}
