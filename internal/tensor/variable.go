package tensor

import (
	"fmt"
	"sync"
)

// Variable is a named, mutable tensor slot, typically holding trainable
// weights. Its shape and data type are fixed at creation.
type Variable struct {
	mu        sync.RWMutex
	name      string
	value     *Tensor
	trainable bool
}

// NewVariable creates a variable initialized with a copy of initial.
//
// Parameters:
//   - name: Descriptive name (e.g., "linear1.weight")
//   - initial: Initial value, which also fixes shape and dtype
//   - trainable: Whether optimizers should update this variable
func NewVariable(name string, initial *Tensor, trainable bool) *Variable {
	return &Variable{
		name:      name,
		value:     initial.Clone(),
		trainable: trainable,
	}
}

// Name returns the variable name.
func (v *Variable) Name() string {
	return v.name
}

// Trainable reports whether the variable is trainable.
func (v *Variable) Trainable() bool {
	return v.trainable
}

// Value returns the current value. The returned tensor is a snapshot.
func (v *Variable) Value() *Tensor {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Shape returns the variable's shape.
func (v *Variable) Shape() Shape {
	return v.Value().Shape()
}

// DType returns the variable's data type.
func (v *Variable) DType() DataType {
	return v.Value().DType()
}

// Assign replaces the variable's value.
// The new value must have the variable's shape; it is cast to its dtype.
func (v *Variable) Assign(t *Tensor) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !t.shape.Equal(v.value.shape) {
		return fmt.Errorf("assign %s: shape %v does not match %v", v.name, t.shape, v.value.shape)
	}
	v.value = t.Cast(v.value.dtype)
	return nil
}

// AssignAdd adds t to the variable's value in place.
func (v *Variable) AssignAdd(t *Tensor) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	sum := v.value.Add(t)
	if !sum.shape.Equal(v.value.shape) {
		return fmt.Errorf("assign_add %s: shape %v does not match %v", v.name, t.shape, v.value.shape)
	}
	v.value = sum
	return nil
}

// String returns a human-readable representation of the variable.
func (v *Variable) String() string {
	val := v.Value()
	return fmt.Sprintf("Variable %q %v", v.name, val)
}
