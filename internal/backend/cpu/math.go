package cpu

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/multiway-ml/multiway/internal/parallel"
	"github.com/multiway-ml/multiway/internal/tensor"
)

// Sqrt computes the element-wise square root: sqrt(x). Negative inputs
// yield NaN, following IEEE 754. The float32 path uses math32 to avoid
// float64 round-trips.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("sqrt", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		src := x.AsFloat32()
		dst := result.AsFloat32()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = math32.Sqrt(src[i])
			}
		}, cpu.par)
	case tensor.Float64:
		src := x.AsFloat64()
		dst := result.AsFloat64()
		parallel.ForRange(len(src), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = math.Sqrt(src[i])
			}
		}, cpu.par)
	default:
		panic(fmt.Sprintf("sqrt: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}
