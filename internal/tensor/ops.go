package tensor

import (
	"fmt"
	"math"

	"github.com/born-ml/syft/internal/parallel"
)

// Add performs element-wise addition with NumPy-style broadcasting.
func (t *Tensor) Add(other *Tensor) *Tensor {
	return t.binary("add", other, func(a, b float64) float64 { return a + b })
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor) Sub(other *Tensor) *Tensor {
	return t.binary("sub", other, func(a, b float64) float64 { return a - b })
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	return t.binary("mul", other, func(a, b float64) float64 { return a * b })
}

// Div performs element-wise division with broadcasting.
// Integer tensors truncate toward zero.
func (t *Tensor) Div(other *Tensor) *Tensor {
	return t.binary("div", other, func(a, b float64) float64 { return a / b })
}

// Neg negates every element.
func (t *Tensor) Neg() *Tensor {
	return t.unary(func(v float64) float64 { return -v })
}

// Exp applies e^x element-wise.
func (t *Tensor) Exp() *Tensor {
	return t.unary(math.Exp)
}

func (t *Tensor) unary(fn func(float64) float64) *Tensor {
	out := make([]float64, len(t.data))
	for i, v := range t.data {
		out[i] = t.dtype.normalize(fn(v))
	}
	return newTensor(out, t.shape.Clone(), t.dtype)
}

// binary applies fn element-wise, broadcasting both operands to a common shape.
// The result takes the receiver's data type.
func (t *Tensor) binary(op string, other *Tensor, fn func(a, b float64) float64) *Tensor {
	outShape, err := BroadcastShapes(t.shape, other.shape)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	n := outShape.NumElements()
	out := make([]float64, n)

	// Fast path: same shape, no index mapping needed.
	if t.shape.Equal(other.shape) {
		for i := range out {
			out[i] = t.dtype.normalize(fn(t.data[i], other.data[i]))
		}
		return newTensor(out, outShape, t.dtype)
	}

	aStrides := broadcastStrides(t.shape, outShape)
	bStrides := broadcastStrides(other.shape, outShape)
	outStrides := outShape.ComputeStrides()

	for i := range out {
		aIdx, bIdx, rem := 0, 0, i
		for d := range outShape {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			aIdx += coord * aStrides[d]
			bIdx += coord * bStrides[d]
		}
		out[i] = t.dtype.normalize(fn(t.data[aIdx], other.data[bIdx]))
	}
	return newTensor(out, outShape, t.dtype)
}

// broadcastStrides returns strides of shape aligned to out, with 0 for
// broadcast dimensions.
func broadcastStrides(shape, out Shape) []int {
	strides := make([]int, len(out))
	own := shape.ComputeStrides()
	offset := len(out) - len(shape)
	for i := range shape {
		if shape[i] != 1 {
			strides[offset+i] = own[i]
		}
	}
	return strides
}

// MatMul performs 2-D matrix multiplication: [M, K] @ [K, N] -> [M, N].
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	if len(t.shape) != 2 || len(other.shape) != 2 {
		panic(fmt.Sprintf("matmul: expected 2-D tensors, got %v and %v", t.shape, other.shape))
	}
	m, k := t.shape[0], t.shape[1]
	k2, n := other.shape[0], other.shape[1]
	if k != k2 {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v @ %v", t.shape, other.shape))
	}

	out := make([]float64, m*n)
	// Rows are independent.
	parallel.For(m, k*n, func(i int) {
		row := out[i*n : (i+1)*n]
		for p := 0; p < k; p++ {
			a := t.data[i*k+p]
			if a == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				row[j] += a * other.data[p*n+j]
			}
		}
		for j := range row {
			row[j] = t.dtype.normalize(row[j])
		}
	}, parallel.DefaultConfig())
	return newTensor(out, Shape{m, n}, t.dtype)
}

// Transpose swaps the two dimensions of a 2-D tensor.
func (t *Tensor) Transpose() *Tensor {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("transpose: expected 2-D tensor, got %v", t.shape))
	}
	rows, cols := t.shape[0], t.shape[1]
	out := make([]float64, len(t.data))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = t.data[i*cols+j]
		}
	}
	return newTensor(out, Shape{cols, rows}, t.dtype)
}

// Reshape returns a tensor with the same data and a new shape.
// A single Unknown dimension is inferred from the element count.
func (t *Tensor) Reshape(shape Shape) *Tensor {
	resolved, err := resolveShape(shape, len(t.data))
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return newTensor(t.Data(), resolved, t.dtype)
}

func resolveShape(shape Shape, numElements int) (Shape, error) {
	out := shape.Clone()
	unknown := -1
	known := 1
	for i, dim := range out {
		switch {
		case dim == Unknown:
			if unknown >= 0 {
				return nil, fmt.Errorf("only one dimension can be inferred in %v", shape)
			}
			unknown = i
		case dim <= 0:
			return nil, fmt.Errorf("invalid dimension %d in %v", dim, shape)
		default:
			known *= dim
		}
	}
	if unknown >= 0 {
		if known == 0 || numElements%known != 0 {
			return nil, fmt.Errorf("cannot infer dimension of %v for %d elements", shape, numElements)
		}
		out[unknown] = numElements / known
		known = numElements
	}
	if known != numElements {
		return nil, fmt.Errorf("cannot reshape %d elements into %v", numElements, shape)
	}
	return out, nil
}

// Sum reduces all elements to a scalar tensor.
func (t *Tensor) Sum() *Tensor {
	var s float64
	for _, v := range t.data {
		s += v
	}
	return Scalar(s, t.dtype)
}

// SumDim reduces along one dimension.
func (t *Tensor) SumDim(dim int, keepDim bool) *Tensor {
	if dim < 0 {
		dim += len(t.shape)
	}
	if dim < 0 || dim >= len(t.shape) {
		panic(fmt.Sprintf("sum: dimension %d out of range for shape %v", dim, t.shape))
	}

	outer := 1
	for _, d := range t.shape[:dim] {
		outer *= d
	}
	inner := t.strides[dim]
	size := t.shape[dim]

	out := make([]float64, outer*inner)
	for o := 0; o < outer; o++ {
		for s := 0; s < size; s++ {
			base := o*size*inner + s*inner
			for i := 0; i < inner; i++ {
				out[o*inner+i] += t.data[base+i]
			}
		}
	}

	shape := make(Shape, 0, len(t.shape))
	for i, d := range t.shape {
		switch {
		case i != dim:
			shape = append(shape, d)
		case keepDim:
			shape = append(shape, 1)
		}
	}
	return newTensor(out, shape, t.dtype)
}

// Cast converts the tensor to another data type.
func (t *Tensor) Cast(dtype DataType) *Tensor {
	out := make([]float64, len(t.data))
	for i, v := range t.data {
		out[i] = dtype.normalize(v)
	}
	return newTensor(out, t.shape.Clone(), dtype)
}
