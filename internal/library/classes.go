package library

import (
	"fmt"

	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/tensor"
)

// Class names.
const (
	TensorClass   = "Tensor"
	VariableClass = "Variable"
)

// newTensorClass describes *tensor.Tensor.
//
// Constructor: Tensor(data, shape=..., dtype=...), where data is anything
// AsTensor accepts.
func newTensorClass() *registry.Class {
	c := registry.NewClass(TensorClass)
	c.SetInit(registry.ValueInit(newTensorValue))

	addReadMethods(c)
	c.SetMethod("reshape", func(self *registry.Object, args ...any) (any, error) {
		if err := want(args, 1, "reshape"); err != nil {
			return nil, err
		}
		shape, err := asShape(args[0])
		if err != nil {
			return nil, err
		}
		return selfTensor(self).Reshape(shape), nil
	})
	c.SetMethod("cast", func(self *registry.Object, args ...any) (any, error) {
		if err := want(args, 1, "cast"); err != nil {
			return nil, err
		}
		dt, err := asDType(args[0])
		if err != nil {
			return nil, err
		}
		return selfTensor(self).Cast(dt), nil
	})
	c.SetMethod("item", func(self *registry.Object, _ ...any) (any, error) {
		return selfTensor(self).Item(), nil
	})
	c.SetMethod("equal", func(self *registry.Object, args ...any) (any, error) {
		if err := want(args, 1, "equal"); err != nil {
			return nil, err
		}
		other, err := AsTensor(args[0])
		if err != nil {
			return nil, err
		}
		return selfTensor(self).Equal(other), nil
	})
	return c
}

func newTensorValue(args []any, kw registry.Kwargs) (any, error) {
	if err := want(args, 1, TensorClass); err != nil {
		return nil, err
	}

	var t *tensor.Tensor
	if data, ok := args[0].([]float64); ok {
		shape := tensor.Shape{len(data)}
		if v, ok := kw["shape"]; ok {
			s, err := asShape(v)
			if err != nil {
				return nil, err
			}
			shape = s
		}
		var err error
		if t, err = tensor.New(data, shape, tensor.Float64); err != nil {
			return nil, err
		}
	} else {
		var err error
		if t, err = AsTensor(args[0]); err != nil {
			return nil, err
		}
		if v, ok := kw["shape"]; ok {
			s, err := asShape(v)
			if err != nil {
				return nil, err
			}
			t = t.Reshape(s)
		}
	}

	if v, ok := kw["dtype"]; ok {
		dt, err := asDType(v)
		if err != nil {
			return nil, err
		}
		t = t.Cast(dt)
	}
	return t, nil
}

// newVariableClass describes *tensor.Variable.
//
// Constructor: Variable(initial, name=..., trainable=...).
func newVariableClass() *registry.Class {
	c := registry.NewClass(VariableClass)
	c.SetInit(registry.ValueInit(newVariableValue))

	addReadMethods(c)
	c.SetMethod("value", func(self *registry.Object, _ ...any) (any, error) {
		return selfTensor(self), nil
	})
	c.SetMethod("read_value", func(self *registry.Object, _ ...any) (any, error) {
		return selfTensor(self).Clone(), nil
	})
	c.SetMethod("name", func(self *registry.Object, _ ...any) (any, error) {
		return selfVariable(self).Name(), nil
	})
	c.SetMethod("trainable", func(self *registry.Object, _ ...any) (any, error) {
		return selfVariable(self).Trainable(), nil
	})
	c.SetMethod("assign", func(self *registry.Object, args ...any) (any, error) {
		if err := want(args, 1, "assign"); err != nil {
			return nil, err
		}
		t, err := AsTensor(args[0])
		if err != nil {
			return nil, err
		}
		if err := selfVariable(self).Assign(t); err != nil {
			return nil, err
		}
		return self, nil
	})
	c.SetMethod("assign_add", func(self *registry.Object, args ...any) (any, error) {
		if err := want(args, 1, "assign_add"); err != nil {
			return nil, err
		}
		t, err := AsTensor(args[0])
		if err != nil {
			return nil, err
		}
		if err := selfVariable(self).AssignAdd(t); err != nil {
			return nil, err
		}
		return self, nil
	})
	return c
}

func newVariableValue(args []any, kw registry.Kwargs) (any, error) {
	if err := want(args, 1, VariableClass); err != nil {
		return nil, err
	}
	initial, err := AsTensor(args[0])
	if err != nil {
		return nil, err
	}

	name := VariableClass
	if v, ok := kw["name"].(string); ok {
		name = v
	}
	trainable := true
	if v, ok := kw["trainable"].(bool); ok {
		trainable = v
	}
	return tensor.NewVariable(name, initial, trainable), nil
}

// addReadMethods installs the methods shared by tensors and variables.
// They never modify the receiver.
func addReadMethods(c *registry.Class) {
	binary := func(name string, op func(a, b *tensor.Tensor) *tensor.Tensor) {
		c.SetMethod(name, func(self *registry.Object, args ...any) (any, error) {
			if err := want(args, 1, name); err != nil {
				return nil, err
			}
			other, err := AsTensor(args[0])
			if err != nil {
				return nil, err
			}
			return op(selfTensor(self), other), nil
		})
	}
	binary("add", (*tensor.Tensor).Add)
	binary("sub", (*tensor.Tensor).Sub)
	binary("mul", (*tensor.Tensor).Mul)
	binary("div", (*tensor.Tensor).Div)
	binary("matmul", (*tensor.Tensor).MatMul)

	c.SetMethod("neg", func(self *registry.Object, _ ...any) (any, error) {
		return selfTensor(self).Neg(), nil
	})
	c.SetMethod("transpose", func(self *registry.Object, _ ...any) (any, error) {
		return selfTensor(self).Transpose(), nil
	})
	c.SetMethod("sum", func(self *registry.Object, args ...any) (any, error) {
		if len(args) == 0 {
			return selfTensor(self).Sum(), nil
		}
		dim, err := asInt(args[0])
		if err != nil {
			return nil, err
		}
		return selfTensor(self).SumDim(dim, false), nil
	})
	c.SetMethod("shape", func(self *registry.Object, _ ...any) (any, error) {
		return selfTensor(self).Shape(), nil
	})
	c.SetMethod("dtype", func(self *registry.Object, _ ...any) (any, error) {
		return selfTensor(self).DType(), nil
	})
	c.SetMethod("numpy", func(self *registry.Object, _ ...any) (any, error) {
		return selfTensor(self).Data(), nil
	})
	c.SetMethod("string", func(self *registry.Object, _ ...any) (any, error) {
		return fmt.Sprint(self.Value()), nil
	})
}

// selfTensor returns the receiver's tensor value. Variables yield their
// current value.
func selfTensor(self *registry.Object) *tensor.Tensor {
	switch v := self.Value().(type) {
	case *tensor.Tensor:
		return v
	case *tensor.Variable:
		return v.Value()
	default:
		panic(fmt.Sprintf("%s method called on %T", self.Class().Name(), v))
	}
}

func selfVariable(self *registry.Object) *tensor.Variable {
	v, ok := self.Value().(*tensor.Variable)
	if !ok {
		panic(fmt.Sprintf("%s method called on %T", self.Class().Name(), self.Value()))
	}
	return v
}
