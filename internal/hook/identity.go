package hook

import (
	"fmt"
	"reflect"

	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/tensor"
	"github.com/born-ml/syft/internal/worker"
)

// Property names installed on hooked classes.
const (
	AttrID           = "id"
	AttrOwner        = "owner"
	AttrIsWrapper    = "is_wrapper"
	AttrChild        = "child"
	AttrLocation     = "location"
	AttrIDAtLocation = "id_at_location"
)

// Backing fields in the object attribute bag.
const (
	fieldID          = "_id"
	fieldOwner       = "_owner"
	fieldIsWrapper   = "_is_wrapper"
	fieldChild       = "_child"
	fieldTags        = "_tags"
	fieldDescription = "_description"
)

// ID returns the object's id, or 0 if its class is not hooked.
func ID(o *registry.Object) uint64 {
	v, err := o.Get(AttrID)
	if err != nil {
		return 0
	}
	id, _ := v.(uint64)
	return id
}

// Owner returns the object's owner, or nil if its class is not hooked.
func Owner(o *registry.Object) worker.Worker {
	v, err := o.Get(AttrOwner)
	if err != nil {
		return nil
	}
	w, _ := v.(worker.Worker)
	return w
}

// IsWrapper reports whether the object is a wrapper around a pointer.
func IsWrapper(o *registry.Object) bool {
	v, err := o.Get(AttrIsWrapper)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Location returns the worker holding the object's data.
func Location(o *registry.Object) worker.Worker {
	v, err := o.Get(AttrLocation)
	if err != nil {
		return nil
	}
	w, _ := v.(worker.Worker)
	return w
}

// IDAtLocation returns the id of the object's data on its location.
func IDAtLocation(o *registry.Object) uint64 {
	v, err := o.Get(AttrIDAtLocation)
	if err != nil {
		return 0
	}
	id, _ := v.(uint64)
	return id
}

// Child returns the pointer wrapped by o, or nil.
func Child(o *registry.Object) *registry.Object {
	v, _ := o.Load(fieldChild)
	child, _ := v.(*registry.Object)
	return child
}

// asWorker returns v as a usable worker. Nil interfaces and typed nil
// pointers are rejected.
func asWorker(v any) (worker.Worker, bool) {
	w, ok := v.(worker.Worker)
	if !ok {
		return nil, false
	}
	if rv := reflect.ValueOf(w); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	return w, true
}

func asID(v any) (uint64, error) {
	switch x := v.(type) {
	case uint64:
		if x > 0 {
			return x, nil
		}
	case int:
		if x > 0 {
			return uint64(x), nil
		}
	case int64:
		if x > 0 {
			return uint64(x), nil
		}
	}
	return 0, fmt.Errorf("%w: id must be a positive integer, got %v (%T)", ErrBadKwarg, v, v)
}

// installProperties adds the identity properties and dim to c.
//
// The identity fields are initialized lazily, so objects that bypassed the
// hooked constructor still answer. Lazy initialization runs under the
// object lock.
func (h *Hook) installProperties(c *registry.Class) {
	c.SetProperty(AttrID, registry.Property{
		Get: func(self *registry.Object) (any, error) {
			return self.LoadOrInit(fieldID, func() any { return h.ids.Pop() }), nil
		},
		Set: func(self *registry.Object, v any) error {
			id, err := asID(v)
			if err != nil {
				return err
			}
			self.Store(fieldID, id)
			return nil
		},
	})

	c.SetProperty(AttrOwner, registry.Property{
		Get: func(self *registry.Object) (any, error) {
			return self.LoadOrInit(fieldOwner, func() any { return h.localWorker }), nil
		},
		Set: func(self *registry.Object, v any) error {
			w, ok := asWorker(v)
			if !ok {
				return fmt.Errorf("%w: %T", ErrNotAWorker, v)
			}
			self.Store(fieldOwner, w)
			return nil
		},
	})

	c.SetProperty(AttrIsWrapper, registry.Property{
		Get: func(self *registry.Object) (any, error) {
			return self.LoadOrInit(fieldIsWrapper, func() any { return false }), nil
		},
		Set: func(self *registry.Object, v any) error {
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("%w: is_wrapper must be bool, got %T", ErrBadKwarg, v)
			}
			self.Store(fieldIsWrapper, b)
			return nil
		},
	})

	c.SetProperty(AttrChild, registry.Property{
		Get: func(self *registry.Object) (any, error) {
			return Child(self), nil
		},
		Set: func(self *registry.Object, v any) error {
			child, ok := v.(*registry.Object)
			if !ok && v != nil {
				return fmt.Errorf("%w: child must be an object, got %T", ErrBadKwarg, v)
			}
			self.Store(fieldChild, child)
			return nil
		},
	})

	// location and id_at_location delegate to the child pointer. Objects
	// holding their own data are located at their owner under their own id.
	c.SetProperty(AttrLocation, registry.Property{
		Get: func(self *registry.Object) (any, error) {
			if child := Child(self); child != nil {
				return child.Get(AttrLocation)
			}
			return self.Get(AttrOwner)
		},
	})
	c.SetProperty(AttrIDAtLocation, registry.Property{
		Get: func(self *registry.Object) (any, error) {
			if child := Child(self); child != nil {
				return child.Get(AttrIDAtLocation)
			}
			return self.Get(AttrID)
		},
	})

	c.SetMethod("dim", func(self *registry.Object, _ ...any) (any, error) {
		v, err := self.Call("shape")
		if err != nil {
			return nil, err
		}
		switch s := v.(type) {
		case tensor.Shape:
			return s.Rank(), nil
		case []int:
			return len(s), nil
		default:
			return 0, nil
		}
	})
}

// setIdentity stores fresh identity fields on o.
func (h *Hook) setIdentity(o *registry.Object, id uint64, owner worker.Worker, isWrapper bool) {
	o.Store(fieldID, id)
	o.Store(fieldOwner, owner)
	o.Store(fieldIsWrapper, isWrapper)
}

// newObject wraps a native value produced outside a constructor, such as
// the result of an operation, as an object owned by owner.
func (h *Hook) newObject(c *registry.Class, v any, owner worker.Worker) *registry.Object {
	o := registry.NewObject(c, v)
	id := h.ids.Pop()
	h.setIdentity(o, id, owner, false)
	if h.autoRegister {
		owner.Register(id, o)
	}
	return o
}
