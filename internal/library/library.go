// Package library assembles the native Born tensor surface as runtime
// descriptors: the Tensor and Variable classes and the math, linalg, array
// and random modules.
package library

import (
	"math/rand/v2"
	"sync"

	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/tensor"
)

// Library identity.
const (
	Name    = "born"
	Version = "v0.0.1-dev"
)

// Module names.
const (
	MathModule   = "math"
	LinalgModule = "linalg"
	ArrayModule  = "array"
	RandomModule = "random"
)

// implPath is the implementation package reported for native functions.
const implPath = "born/internal/tensor"

// New builds a fresh library surface. Each call returns independent
// descriptors, so hooks installed on one library never affect another.
func New() *registry.Library {
	lib := registry.NewLibrary(Name, Version)

	tensorClass := newTensorClass()
	variableClass := newVariableClass()
	lib.AddClass(tensorClass)
	lib.AddClass(variableClass)

	lib.AddModule(newMathModule(tensorClass))
	lib.AddModule(newLinalgModule())
	lib.AddModule(newArrayModule(variableClass))
	lib.AddModule(newRandomModule())
	return lib
}

func binaryFunc(name string, op func(a, b *tensor.Tensor) *tensor.Tensor) registry.Function {
	return func(args ...any) (any, error) {
		if err := want(args, 2, name); err != nil {
			return nil, err
		}
		a, err := AsTensor(args[0])
		if err != nil {
			return nil, err
		}
		b, err := AsTensor(args[1])
		if err != nil {
			return nil, err
		}
		return op(a, b), nil
	}
}

func unaryFunc(name string, op func(a *tensor.Tensor) *tensor.Tensor) registry.Function {
	return func(args ...any) (any, error) {
		if err := want(args, 1, name); err != nil {
			return nil, err
		}
		a, err := AsTensor(args[0])
		if err != nil {
			return nil, err
		}
		return op(a), nil
	}
}

func newMathModule(tensorClass *registry.Class) *registry.Module {
	m := registry.NewModule(MathModule)

	m.AddFunc("add", implPath, binaryFunc("add", (*tensor.Tensor).Add), "born.math.add")
	m.AddFunc("subtract", implPath, binaryFunc("subtract", (*tensor.Tensor).Sub), "born.math.subtract")
	m.AddFunc("multiply", implPath, binaryFunc("multiply", (*tensor.Tensor).Mul), "born.math.multiply")
	m.AddFunc("divide", implPath, binaryFunc("divide", (*tensor.Tensor).Div), "born.math.divide")
	m.AddFunc("negative", implPath, unaryFunc("negative", (*tensor.Tensor).Neg), "born.math.negative")
	m.AddFunc("exp", implPath, unaryFunc("exp", (*tensor.Tensor).Exp), "born.math.exp")
	m.AddFunc("reduce_sum", implPath, func(args ...any) (any, error) {
		if err := want(args, 1, "reduce_sum"); err != nil {
			return nil, err
		}
		x, err := AsTensor(args[0])
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return x.Sum(), nil
		}
		dim, err := asInt(args[1])
		if err != nil {
			return nil, err
		}
		return x.SumDim(dim, false), nil
	}, "born.math.reduce_sum", "born.reduce_sum")

	m.AddFunc("_broadcast_shape", implPath, func(args ...any) (any, error) {
		if err := want(args, 2, "_broadcast_shape"); err != nil {
			return nil, err
		}
		a, err := asShape(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asShape(args[1])
		if err != nil {
			return nil, err
		}
		return tensor.BroadcastShapes(a, b)
	})
	m.AddClass(TensorClass, tensorClass)
	m.AddValue("__version__", Version)
	return m
}

func newLinalgModule() *registry.Module {
	m := registry.NewModule(LinalgModule)
	m.AddFunc("matmul", implPath, binaryFunc("matmul", (*tensor.Tensor).MatMul), "born.linalg.matmul", "born.matmul")
	m.AddFunc("transpose", implPath, unaryFunc("transpose", (*tensor.Tensor).Transpose), "born.linalg.transpose")
	return m
}

func newArrayModule(variableClass *registry.Class) *registry.Module {
	m := registry.NewModule(ArrayModule)

	filled := func(name string, value float64) registry.Function {
		return func(args ...any) (any, error) {
			if err := want(args, 1, name); err != nil {
				return nil, err
			}
			shape, err := asShape(args[0])
			if err != nil {
				return nil, err
			}
			if err := shape.Validate(); err != nil {
				return nil, err
			}
			dt, err := optional(args, 1, tensor.Float32, asDType)
			if err != nil {
				return nil, err
			}
			return tensor.Full(shape, value, dt), nil
		}
	}
	m.AddFunc("zeros", implPath, filled("zeros", 0), "born.zeros")
	m.AddFunc("ones", implPath, filled("ones", 1), "born.ones")
	m.AddFunc("fill", implPath, func(args ...any) (any, error) {
		if err := want(args, 2, "fill"); err != nil {
			return nil, err
		}
		value, err := asFloat(args[1])
		if err != nil {
			return nil, err
		}
		return filled("fill", value)(append([]any{args[0]}, args[2:]...)...)
	}, "born.fill")
	m.AddFunc("constant", implPath, func(args ...any) (any, error) {
		if err := want(args, 1, "constant"); err != nil {
			return nil, err
		}
		kw := registry.Kwargs{}
		if len(args) > 1 && args[1] != nil {
			kw["shape"] = args[1]
		}
		if len(args) > 2 && args[2] != nil {
			kw["dtype"] = args[2]
		}
		return newTensorValue(args[:1], kw)
	}, "born.constant")
	m.AddFunc("reshape", implPath, func(args ...any) (any, error) {
		if err := want(args, 2, "reshape"); err != nil {
			return nil, err
		}
		x, err := AsTensor(args[0])
		if err != nil {
			return nil, err
		}
		shape, err := asShape(args[1])
		if err != nil {
			return nil, err
		}
		return x.Reshape(shape), nil
	}, "born.reshape")
	m.AddFunc("cast", implPath, func(args ...any) (any, error) {
		if err := want(args, 2, "cast"); err != nil {
			return nil, err
		}
		x, err := AsTensor(args[0])
		if err != nil {
			return nil, err
		}
		dt, err := asDType(args[1])
		if err != nil {
			return nil, err
		}
		return x.Cast(dt), nil
	})
	m.AddClass(VariableClass, variableClass)
	return m
}

// randomState is the random module's generator, reseeded by set_seed.
type randomState struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *randomState) with(fn func(rng *rand.Rand) *tensor.Tensor) *tensor.Tensor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.rng)
}

func newRandomModule() *registry.Module {
	m := registry.NewModule(RandomModule)
	state := &randomState{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}

	sampler := func(name string, defA, defB float64, draw func(shape tensor.Shape, a, b float64, rng *rand.Rand) *tensor.Tensor) registry.Function {
		return func(args ...any) (any, error) {
			if err := want(args, 1, name); err != nil {
				return nil, err
			}
			shape, err := asShape(args[0])
			if err != nil {
				return nil, err
			}
			if err := shape.Validate(); err != nil {
				return nil, err
			}
			a, err := optional(args, 1, defA, asFloat)
			if err != nil {
				return nil, err
			}
			b, err := optional(args, 2, defB, asFloat)
			if err != nil {
				return nil, err
			}
			return state.with(func(rng *rand.Rand) *tensor.Tensor { return draw(shape, a, b, rng) }), nil
		}
	}

	m.AddFunc("uniform", implPath, sampler("uniform", 0, 1,
		func(shape tensor.Shape, low, high float64, rng *rand.Rand) *tensor.Tensor {
			return tensor.Uniform(shape, low, high, tensor.Float32, rng)
		}), "born.random.uniform")
	m.AddFunc("normal", implPath, sampler("normal", 0, 1,
		func(shape tensor.Shape, mean, stddev float64, rng *rand.Rand) *tensor.Tensor {
			return tensor.Normal(shape, mean, stddev, tensor.Float32, rng)
		}), "born.random.normal")
	m.AddFunc("set_seed", implPath, func(args ...any) (any, error) {
		if err := want(args, 1, "set_seed"); err != nil {
			return nil, err
		}
		seed, err := asInt(args[0])
		if err != nil {
			return nil, err
		}
		state.mu.Lock()
		defer state.mu.Unlock()
		state.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
		return nil, nil
	}, "born.random.set_seed")
	return m
}
