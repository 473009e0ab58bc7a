package tensor

import (
	"math/rand/v2"
)

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *Tensor {
	return Full(shape, 0, dtype)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *Tensor {
	return Full(shape, 1, dtype)
}

// Full creates a tensor filled with a specific value.
// Panics on an invalid shape.
func Full(shape Shape, value float64, dtype DataType) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	data := make([]float64, shape.NumElements())
	v := dtype.normalize(value)
	for i := range data {
		data[i] = v
	}
	return newTensor(data, shape.Clone(), dtype)
}

// Uniform creates a tensor with values drawn from [low, high).
// Uses math/rand (not crypto/rand), appropriate for ML purposes.
func Uniform(shape Shape, low, high float64, dtype DataType, rng *rand.Rand) *Tensor {
	t := Zeros(shape, dtype)
	for i := range t.data {
		t.data[i] = dtype.normalize(low + rng.Float64()*(high-low))
	}
	return t
}

// Normal creates a tensor with values drawn from N(mean, stddev²).
func Normal(shape Shape, mean, stddev float64, dtype DataType, rng *rand.Rand) *Tensor {
	t := Zeros(shape, dtype)
	for i := range t.data {
		t.data[i] = dtype.normalize(mean + rng.NormFloat64()*stddev)
	}
	return t
}
