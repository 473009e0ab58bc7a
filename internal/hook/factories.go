package hook

import (
	"fmt"

	"github.com/born-ml/syft/internal/library"
	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/tensor"
)

// CreateWrapper wraps the pointer child in a data-less object of the
// pointer's remote class, so a Variable pointer yields a Variable wrapper.
func (h *Hook) CreateWrapper(child *registry.Object) (*registry.Object, error) {
	p, err := pointerOf(child)
	if err != nil {
		return nil, err
	}
	c, ok := h.lib.Class(p.Class)
	if !ok {
		return nil, fmt.Errorf("%s: %w", p.Class, ErrMissingClass)
	}
	return h.root().newWrapper(c, child), nil
}

// CreateShape returns a validated shape with the given dimensions.
func (h *Hook) CreateShape(dims ...int) (tensor.Shape, error) {
	s := tensor.Shape(append([]int(nil), dims...))
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// CreateZeros calls the hooked array.zeros, so the result is an owned
// object like any other creation call.
func (h *Hook) CreateZeros(shape tensor.Shape, dtype tensor.DataType) (*registry.Object, error) {
	m, ok := h.lib.Module(library.ArrayModule)
	if !ok {
		return nil, fmt.Errorf("%s: module not found", library.ArrayModule)
	}
	res, err := m.Call("zeros", shape, dtype)
	if err != nil {
		return nil, err
	}
	o, ok := res.(*registry.Object)
	if !ok {
		return nil, fmt.Errorf("zeros returned %T", res)
	}
	return o, nil
}
