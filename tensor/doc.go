// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the native tensors that the syft hooks extend.
//
// # Overview
//
// Tensors are dense, row-major and stored as float64 internally. The data
// type tag (Float32, Float64, Int32, Int64) controls the precision every
// result is rounded to. This package provides:
//   - Tensor: immutable n-dimensional values
//   - Variable: named mutable tensors for model state
//   - NumPy-style broadcasting for element-wise operations
//
// # Basic Usage
//
//	x := tensor.MustNew([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.Float32)
//	y := tensor.Ones(tensor.Shape{2}, tensor.Float32)
//	z := x.Add(y)            // broadcast over rows
//	w := x.MatMul(x.Transpose())
//
// # Errors
//
// Constructors return errors for inconsistent data and shapes. Operations
// on tensors of incompatible shapes panic, the way a compute backend
// would; the hooked library surface recovers those panics into errors.
//
// # Unknown Dimensions
//
// A dimension of Unknown (-1) marks a size that is not known yet. Reshape
// infers a single Unknown dimension from the element count.
package tensor
