// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand/v2"

	"github.com/born-ml/syft/internal/tensor"
)

// Type aliases for public API

// DataType represents the data type tag of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Unknown marks a dimension whose size is not known.
const Unknown = tensor.Unknown

// Tensor is an immutable n-dimensional array.
type Tensor = tensor.Tensor

// Variable is a named, mutable tensor.
type Variable = tensor.Variable

// ParseDataType returns the DataType named by s ("float32", "int64", ...).
func ParseDataType(s string) (DataType, error) {
	return tensor.ParseDataType(s)
}

// BroadcastShapes computes the shape resulting from broadcasting a and b.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}

// New creates a tensor from data laid out row-major in shape.
func New(data []float64, shape Shape, dtype DataType) (*Tensor, error) {
	return tensor.New(data, shape, dtype)
}

// MustNew is like New but panics on error.
func MustNew(data []float64, shape Shape, dtype DataType) *Tensor {
	return tensor.MustNew(data, shape, dtype)
}

// Scalar creates a rank-0 tensor.
func Scalar(v float64, dtype DataType) *Tensor {
	return tensor.Scalar(v, dtype)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *Tensor {
	return tensor.Zeros(shape, dtype)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *Tensor {
	return tensor.Ones(shape, dtype)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64, dtype DataType) *Tensor {
	return tensor.Full(shape, value, dtype)
}

// Uniform samples from [low, high) using rng.
func Uniform(shape Shape, low, high float64, dtype DataType, rng *rand.Rand) *Tensor {
	return tensor.Uniform(shape, low, high, dtype, rng)
}

// Normal samples from N(mean, stddev²) using rng.
func Normal(shape Shape, mean, stddev float64, dtype DataType, rng *rand.Rand) *Tensor {
	return tensor.Normal(shape, mean, stddev, dtype, rng)
}

// NewVariable creates a variable holding initial.
func NewVariable(name string, initial *Tensor, trainable bool) *Variable {
	return tensor.NewVariable(name, initial, trainable)
}
