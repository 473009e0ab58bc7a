package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/tensor"
)

func module(t *testing.T, lib *registry.Library, name string) *registry.Module {
	t.Helper()
	m, ok := lib.Module(name)
	require.True(t, ok, "module %s", name)
	return m
}

func call(t *testing.T, m *registry.Module, name string, args ...any) *tensor.Tensor {
	t.Helper()
	res, err := m.Call(name, args...)
	require.NoError(t, err)
	x, ok := res.(*tensor.Tensor)
	require.True(t, ok, "%s returned %T", name, res)
	return x
}

func TestNewLibrarySurface(t *testing.T) {
	lib := New()
	assert.Equal(t, Name, lib.Name())
	assert.Equal(t, Version, lib.Version())
	assert.Equal(t, []string{ArrayModule, LinalgModule, MathModule, RandomModule}, lib.ModuleNames())

	for _, name := range []string{TensorClass, VariableClass} {
		_, ok := lib.Class(name)
		assert.True(t, ok, name)
	}

	math := module(t, lib, MathModule)
	assert.Equal(t, []string{
		"Tensor", "__version__", "_broadcast_shape",
		"add", "divide", "exp", "multiply", "negative", "reduce_sum", "subtract",
	}, math.Dir())

	add, _ := math.Attr("add")
	assert.Equal(t, implPath, add.ModulePath)
	assert.Equal(t, []string{"born.math.add"}, add.APINames)

	tc, _ := math.Attr(TensorClass)
	assert.Equal(t, registry.KindClass, tc.Kind)
	v, _ := math.Attr("__version__")
	assert.Equal(t, Version, v.Value)
}

func TestLibrariesAreIndependent(t *testing.T) {
	a, b := New(), New()
	ca, _ := a.Class(TensorClass)
	cb, _ := b.Class(TensorClass)
	assert.NotSame(t, ca, cb)

	module(t, a, MathModule).AddValue("extra", 1)
	assert.False(t, module(t, b, MathModule).Has("extra"))
}

func TestMathFunctions(t *testing.T) {
	math := module(t, New(), MathModule)
	a := tensor.MustNew([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.Float64)
	b := tensor.MustNew([]float64{10, 20}, tensor.Shape{2}, tensor.Float64)

	assert.Equal(t, []float64{11, 22, 13, 24}, call(t, math, "add", a, b).Data())
	assert.Equal(t, []float64{-9, -18, -7, -16}, call(t, math, "subtract", a, b).Data())
	assert.Equal(t, []float64{2, 4, 6, 8}, call(t, math, "multiply", a, 2.0).Data())
	assert.Equal(t, []float64{0.5, 1, 1.5, 2}, call(t, math, "divide", a, 2.0).Data())
	assert.Equal(t, []float64{-1, -2, -3, -4}, call(t, math, "negative", a).Data())
	assert.InDelta(t, 2.718281828, call(t, math, "exp", 1.0).Item(), 1e-6)

	assert.Equal(t, []float64{10}, call(t, math, "reduce_sum", a).Data())
	assert.Equal(t, []float64{4, 6}, call(t, math, "reduce_sum", a, 0).Data())

	res, err := math.Call("_broadcast_shape", tensor.Shape{2, 1}, []int{3})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, res)
}

func TestMathErrors(t *testing.T) {
	math := module(t, New(), MathModule)

	_, err := math.Call("add", 1.0)
	assert.ErrorIs(t, err, ErrBadArgument)

	_, err = math.Call("add", "x", 1.0)
	assert.ErrorIs(t, err, ErrBadArgument)

	a := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float64)
	b := tensor.Zeros(tensor.Shape{4}, tensor.Float64)
	_, err = math.Call("add", a, b)
	require.Error(t, err, "broadcast failure panics are recovered")
}

func TestLinalgFunctions(t *testing.T) {
	linalg := module(t, New(), LinalgModule)
	a := tensor.MustNew([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.Float64)
	b := tensor.MustNew([]float64{1, 0, 0, 1, 1, 1}, tensor.Shape{3, 2}, tensor.Float64)

	c := call(t, linalg, "matmul", a, b)
	assert.Equal(t, tensor.Shape{2, 2}, c.Shape())
	assert.Equal(t, []float64{4, 5, 10, 11}, c.Data())

	at := call(t, linalg, "transpose", a)
	assert.Equal(t, tensor.Shape{3, 2}, at.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, at.Data())
}

func TestArrayFunctions(t *testing.T) {
	array := module(t, New(), ArrayModule)

	z := call(t, array, "zeros", []int{2, 2})
	assert.Equal(t, tensor.Float32, z.DType())
	assert.Equal(t, []float64{0, 0, 0, 0}, z.Data())

	o := call(t, array, "ones", 3, "float64")
	assert.Equal(t, tensor.Float64, o.DType())
	assert.Equal(t, []float64{1, 1, 1}, o.Data())

	f := call(t, array, "fill", []int{2}, 2.5, tensor.Int32)
	assert.Equal(t, tensor.Int32, f.DType())
	assert.Equal(t, []float64{2, 2}, f.Data())

	c := call(t, array, "constant", []float64{1, 2, 3, 4}, []int{2, 2})
	assert.Equal(t, tensor.Shape{2, 2}, c.Shape())

	r := call(t, array, "reshape", c, []int{4, -1})
	assert.Equal(t, tensor.Shape{4, 1}, r.Shape())

	cast := call(t, array, "cast", c, "int64")
	assert.Equal(t, tensor.Int64, cast.DType())

	_, err := array.Call("zeros", []int{2, 0})
	assert.Error(t, err)
	_, err = array.Call("ones", 2, "complex64")
	assert.Error(t, err)
}

func TestRandomSeeded(t *testing.T) {
	random := module(t, New(), RandomModule)

	_, err := random.Call("set_seed", 7)
	require.NoError(t, err)
	first := call(t, random, "uniform", []int{4}, -1.0, 1.0)

	_, err = random.Call("set_seed", 7)
	require.NoError(t, err)
	second := call(t, random, "uniform", []int{4}, -1.0, 1.0)

	assert.Equal(t, first.Data(), second.Data())
	for _, v := range first.Data() {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}

	n := call(t, random, "normal", []int{2, 3})
	assert.Equal(t, tensor.Shape{2, 3}, n.Shape())
}

func TestTensorClass(t *testing.T) {
	c, _ := New().Class(TensorClass)

	x, err := c.New([]any{[]float64{1, 2, 3, 4}}, registry.Kwargs{"shape": []int{2, 2}})
	require.NoError(t, err)

	shape, err := x.Call("shape")
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, shape)

	res, err := x.Call("add", x)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6, 8}, res.(*tensor.Tensor).Data())

	res, err = x.Call("sum", 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, res.(*tensor.Tensor).Data())

	res, err = x.Call("reshape", []int{4})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4}, res.(*tensor.Tensor).Shape())

	res, err = x.Call("numpy")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, res)

	s, err := c.New([]any{1.5}, registry.Kwargs{"dtype": "int32"})
	require.NoError(t, err)
	item, err := s.Call("item")
	require.NoError(t, err)
	assert.Equal(t, 1.0, item)

	_, err = x.Call("reshape", []int{3})
	assert.Error(t, err)

	_, err = c.New([]any{"bad"}, nil)
	assert.ErrorIs(t, err, ErrBadArgument)
}

func TestVariableClass(t *testing.T) {
	c, _ := New().Class(VariableClass)

	v, err := c.New([]any{[]float64{1, 2}}, registry.Kwargs{"name": "w", "trainable": false})
	require.NoError(t, err)

	name, err := v.Call("name")
	require.NoError(t, err)
	assert.Equal(t, "w", name)
	trainable, err := v.Call("trainable")
	require.NoError(t, err)
	assert.Equal(t, false, trainable)

	res, err := v.Call("assign_add", []float64{1, 1})
	require.NoError(t, err)
	assert.Same(t, v, res)

	value, err := v.Call("value")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, value.(*tensor.Tensor).Data())

	snapshot, err := v.Call("read_value")
	require.NoError(t, err)
	_, err = v.Call("assign", []float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, snapshot.(*tensor.Tensor).Data(), "read_value is a copy")

	_, err = v.Call("assign", []float64{1, 2, 3})
	assert.Error(t, err, "shape must match")

	res, err = v.Call("mul", 2.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, res.(*tensor.Tensor).Data())
}

func TestAsTensor(t *testing.T) {
	cases := []struct {
		name  string
		in    any
		dtype tensor.DataType
	}{
		{"float64", 1.0, tensor.Float64},
		{"float32", float32(1), tensor.Float32},
		{"int", 1, tensor.Int64},
		{"slice", []float64{1}, tensor.Float64},
		{"variable", tensor.NewVariable("v", tensor.Scalar(1, tensor.Int32), true), tensor.Int32},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, err := AsTensor(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.dtype, x.DType())
		})
	}

	_, err := AsTensor((*tensor.Tensor)(nil))
	assert.ErrorIs(t, err, ErrBadArgument)
	_, err = AsTensor(struct{}{})
	assert.ErrorIs(t, err, ErrBadArgument)
}
