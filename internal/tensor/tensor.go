package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a dense, row-major, immutable tensor.
//
// Operations never modify their receiver; they allocate a new Tensor.
// Shape errors panic, matching the behaviour of the compute backends.
type Tensor struct {
	shape   Shape
	strides []int
	dtype   DataType
	data    []float64
}

// New creates a Tensor from a Go slice.
// The slice is copied and every value is rounded to dtype.
func New(data []float64, shape Shape, dtype DataType) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	buf := make([]float64, len(data))
	for i, v := range data {
		buf[i] = dtype.normalize(v)
	}
	return newTensor(buf, shape.Clone(), dtype), nil
}

// MustNew is like New but panics on error.
func MustNew(data []float64, shape Shape, dtype DataType) *Tensor {
	t, err := New(data, shape, dtype)
	if err != nil {
		panic(err)
	}
	return t
}

// Scalar creates a 0-D tensor.
func Scalar(v float64, dtype DataType) *Tensor {
	return newTensor([]float64{dtype.normalize(v)}, Shape{}, dtype)
}

// newTensor takes ownership of data.
func newTensor(data []float64, shape Shape, dtype DataType) *Tensor {
	return &Tensor{
		shape:   shape,
		strides: shape.ComputeStrides(),
		dtype:   dtype,
		data:    data,
	}
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape.Clone()
}

// DType returns the tensor's data type.
func (t *Tensor) DType() DataType {
	return t.dtype
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns a copy of the tensor's values in row-major order.
func (t *Tensor) Data() []float64 {
	out := make([]float64, len(t.data))
	copy(out, t.data)
	return out
}

// Item returns the scalar value of a single-element tensor.
// Panics if the tensor has more than one element.
func (t *Tensor) Item() float64 {
	if len(t.data) != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.shape))
	}
	return t.data[0]
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor) At(indices ...int) float64 {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(t.shape), len(indices)))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i]))
		}
		offset += idx * t.strides[i]
	}
	return t.data[offset]
}

// Clone creates a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	return newTensor(t.Data(), t.shape.Clone(), t.dtype)
}

// Equal reports whether both tensors have the same shape, dtype and values.
func (t *Tensor) Equal(other *Tensor) bool {
	if other == nil || t.dtype != other.dtype || !t.shape.Equal(other.shape) {
		return false
	}
	for i := range t.data {
		if t.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor[%s]%v ", t.dtype, []int(t.shape))
	if len(t.data) > 8 {
		fmt.Fprintf(&sb, "%v...", t.data[:8])
	} else {
		fmt.Fprintf(&sb, "%v", t.data)
	}
	return sb.String()
}
