package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/syft/internal/library"
	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/tensor"
)

func TestCreateWrapperUsesRemoteClass(t *testing.T) {
	h := newTestHook(t)
	bob := h.NewVirtualWorker("bob")

	v, err := h.New(library.VariableClass, []any{[]float64{1, 2}}, registry.Kwargs{"name": "v"})
	require.NoError(t, err)
	pv := send(t, v, bob)

	w, err := h.CreateWrapper(Child(pv))
	require.NoError(t, err)
	assert.Equal(t, library.VariableClass, w.Class().Name())
	assert.True(t, IsWrapper(w))
	assert.Nil(t, w.Value())
	assert.Same(t, Child(pv), Child(w))
	assert.NotEqual(t, ID(pv), ID(w))

	x := newTensor(t, h, []float64{1}, tensor.Shape{1})
	_, err = h.CreateWrapper(x)
	assert.ErrorIs(t, err, ErrNotAPointer)
}

func TestCreateShape(t *testing.T) {
	h := newTestHook(t)

	s, err := h.CreateShape(2, 3)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, s)

	_, err = h.CreateShape(2, 0)
	assert.Error(t, err)
}

func TestCreateZeros(t *testing.T) {
	h := newTestHook(t)

	z, err := h.CreateZeros(tensor.Shape{2, 2}, tensor.Int32)
	require.NoError(t, err)
	assert.NotZero(t, ID(z))
	assert.Same(t, h.LocalWorker(), Owner(z))

	x := valueOf(t, z)
	assert.Equal(t, tensor.Shape{2, 2}, x.Shape())
	assert.Equal(t, tensor.Int32, x.DType())
	assert.Equal(t, []float64{0, 0, 0, 0}, x.Data())

	_, err = h.CreateZeros(tensor.Shape{0}, tensor.Float32)
	assert.Error(t, err)
}

func TestFactoriesOnAdoptingHook(t *testing.T) {
	lib := library.New()
	first := installOn(t, lib)
	second, err := Install(lib, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.False(t, second.Installed())

	bob := first.NewVirtualWorker("bob")
	px := send(t, newTensor(t, first, []float64{1}, tensor.Shape{1}), bob)

	w, err := second.CreateWrapper(Child(px))
	require.NoError(t, err)
	assert.Equal(t, library.TensorClass, w.Class().Name())

	z, err := second.CreateZeros(tensor.Shape{1}, tensor.Float32)
	require.NoError(t, err)
	assert.IsType(t, &registry.Object{}, z)
}
