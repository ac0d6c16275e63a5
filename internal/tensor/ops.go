package tensor

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	a := tensor.Ones[float32](Shape{3, 1}, backend)
//	b := tensor.Ones[float32](Shape{3, 5}, backend)
//	c := a.Add(b) // Shape: [3, 5] (broadcasted)
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Add(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Sub(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Mul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Div performs element-wise division with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Div(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// MulScalar multiplies each element of the tensor by a scalar value.
//
// Example:
//
//	x := tensor.Randn[float32](Shape{2, 3}, backend)
//	y := x.MulScalar(2.5)  // multiply all elements by 2.5
func (t *Tensor[T, B]) MulScalar(scalar T) *Tensor[T, B] {
	result := t.backend.MulScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// AddScalar adds a scalar value to each element of the tensor.
func (t *Tensor[T, B]) AddScalar(scalar T) *Tensor[T, B] {
	result := t.backend.AddScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (t *Tensor[T, B]) SubScalar(scalar T) *Tensor[T, B] {
	result := t.backend.SubScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// DivScalar divides each element of the tensor by a scalar value.
func (t *Tensor[T, B]) DivScalar(scalar T) *Tensor[T, B] {
	result := t.backend.DivScalar(t.raw, scalar)
	return New[T, B](result, t.backend)
}

// Sqrt computes the square root of each element.
//
// Example:
//
//	x := tensor.Rand[float32](Shape{2, 3}, backend)
//	y := x.Sqrt()  // sqrt(x) for each element
func (t *Tensor[T, B]) Sqrt() *Tensor[T, B] {
	result := t.backend.Sqrt(t.raw)
	return New[T, B](result, t.backend)
}

// SumAll computes the sum of all elements, returning a scalar (0-D) tensor.
//
// Example:
//
//	x := tensor.Ones[float32](Shape{2, 3}, backend)
//	total := x.SumAll().Item()  // 6.0
func (t *Tensor[T, B]) SumAll() *Tensor[T, B] {
	result := t.backend.Sum(t.raw)
	return New[T, B](result, t.backend)
}

// SumDims computes the sum over the given dimensions.
//
// dims must be normalized (non-negative, in range) and free of duplicates.
// Reduced dimensions are kept with size 1 when keepDims is true and
// dropped otherwise.
//
// Example:
//
//	x := tensor.Ones[float32](Shape{5, 6, 7}, backend)
//	s := x.SumDims([]int{0, 2}, false) // Shape: [6], each element 35
func (t *Tensor[T, B]) SumDims(dims []int, keepDims bool) *Tensor[T, B] {
	result := t.backend.SumDims(t.raw, dims, keepDims)
	return New[T, B](result, t.backend)
}

// MeanDims computes the arithmetic mean over the given dimensions.
//
// Example:
//
//	x := tensor.Randn[float32](Shape{5, 6, 7}, backend)
//	m := x.MeanDims([]int{1}, true) // Shape: [5, 1, 7]
func (t *Tensor[T, B]) MeanDims(dims []int, keepDims bool) *Tensor[T, B] {
	result := t.backend.MeanDims(t.raw, dims, keepDims)
	return New[T, B](result, t.backend)
}

// NormDims computes the Euclidean (l2) norm over the given dimensions.
//
// Example:
//
//	x := tensor.Randn[float32](Shape{5, 6, 7}, backend)
//	n := x.NormDims([]int{0, 1}, true) // Shape: [1, 1, 7]
func (t *Tensor[T, B]) NormDims(dims []int, keepDims bool) *Tensor[T, B] {
	result := t.backend.NormDims(t.raw, dims, keepDims)
	return New[T, B](result, t.backend)
}
