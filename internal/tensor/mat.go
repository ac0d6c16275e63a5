package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToDense converts a 2-D float tensor to a gonum *mat.Dense, copying the
// data. It bridges tensors to the gonum ecosystem (linear algebra,
// statistics) for two-way arrays.
func ToDense[T Float, B Backend](t *Tensor[T, B]) (*mat.Dense, error) {
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("ToDense requires a 2-D tensor, got shape %v", shape)
	}

	rows, cols := shape[0], shape[1]
	data := make([]float64, rows*cols)
	for i, v := range t.Data() {
		data[i] = float64(v)
	}
	return mat.NewDense(rows, cols, data), nil
}

// FromDense creates a 2-D tensor from a gonum matrix, copying the data.
func FromDense[T Float, B Backend](dm mat.Matrix, b B) (*Tensor[T, B], error) {
	rows, cols := dm.Dims()
	t := Zeros[T, B](Shape{rows, cols}, b)

	data := t.Data()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = T(dm.At(i, j))
		}
	}
	return t, nil
}
