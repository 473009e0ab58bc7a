package hook

import (
	"context"
	"fmt"
	"strings"

	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/worker"
)

// PointerClassName is the name of the pointer class added to hooked
// libraries.
const PointerClassName = "PointerTensor"

// Pointer is the native value of a PointerTensor object: a reference to an
// object stored on another worker.
type Pointer struct {
	Location     worker.Worker
	IDAtLocation uint64
	// Class is the class name of the remote object.
	Class string
}

// String implements fmt.Stringer.
func (p *Pointer) String() string {
	return fmt.Sprintf("%s -> %s:%d", p.Class, p.Location.ID(), p.IDAtLocation)
}

func pointerOf(o *registry.Object) (*Pointer, error) {
	p, ok := o.Value().(*Pointer)
	if !ok || p == nil {
		return nil, fmt.Errorf("%s: %w", o.Class().Name(), ErrNotAPointer)
	}
	return p, nil
}

// newPointerClass builds the PointerTensor class with its identity
// properties, get and string. installPointerMethods adds the forwarding
// methods.
func newPointerClass(h *Hook) *registry.Class {
	c := registry.NewClass(PointerClassName)
	h.installProperties(c)

	c.SetProperty(AttrLocation, registry.Property{
		Get: func(self *registry.Object) (any, error) {
			p, err := pointerOf(self)
			if err != nil {
				return nil, err
			}
			return p.Location, nil
		},
	})
	c.SetProperty(AttrIDAtLocation, registry.Property{
		Get: func(self *registry.Object) (any, error) {
			p, err := pointerOf(self)
			if err != nil {
				return nil, err
			}
			return p.IDAtLocation, nil
		},
	})

	c.SetMethod("get", func(self *registry.Object, _ ...any) (any, error) {
		return h.getPointer(self)
	})
	c.SetMethod("string", func(self *registry.Object, _ ...any) (any, error) {
		p, err := pointerOf(self)
		if err != nil {
			return nil, err
		}
		owner := Owner(self)
		return fmt.Sprintf("(%s %s:%d -> %s:%d)", PointerClassName,
			owner.ID(), ID(self), p.Location.ID(), p.IDAtLocation), nil
	})
	return c
}

// newPointer creates a pointer owned by owner to the object idAtLocation
// on location.
func (h *Hook) newPointer(location worker.Worker, idAtLocation uint64, class string, owner worker.Worker) *registry.Object {
	o := registry.NewObject(h.pointerClass, &Pointer{
		Location:     location,
		IDAtLocation: idAtLocation,
		Class:        class,
	})
	h.setIdentity(o, h.ids.Pop(), owner, false)
	return o
}

// newWrapper creates an object of class c holding no data whose operations
// forward to child.
func (h *Hook) newWrapper(c *registry.Class, child *registry.Object) *registry.Object {
	o := registry.NewObject(c, nil)
	h.setIdentity(o, h.ids.Pop(), Owner(child), true)
	o.Store(fieldChild, child)
	return o
}

// wrapPointer wraps pointer results in an object of the remote class.
// Other values are returned unchanged.
func (h *Hook) wrapPointer(res any) any {
	ptr, ok := res.(*registry.Object)
	if !ok || ptr.Class() != h.pointerClass {
		return res
	}
	p, err := pointerOf(ptr)
	if err != nil {
		return res
	}
	c, ok := h.lib.Class(p.Class)
	if !ok {
		return ptr
	}
	return h.newWrapper(c, ptr)
}

// getPointer moves the object referenced by ptr back to ptr's owner.
func (h *Hook) getPointer(ptr *registry.Object) (*registry.Object, error) {
	p, err := pointerOf(ptr)
	if err != nil {
		return nil, err
	}
	v, err := p.Location.Get(p.IDAtLocation)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*registry.Object)
	if !ok {
		return nil, fmt.Errorf("%s:%d holds %T: %w", p.Location.ID(), p.IDAtLocation, v, ErrNotAPointer)
	}

	owner := Owner(ptr)
	p.Location.Deregister(p.IDAtLocation)
	if err := obj.Set(AttrOwner, owner); err != nil {
		return nil, err
	}
	if h.autoRegister {
		owner.Register(ID(obj), obj)
	}
	return obj, nil
}

// installPointerMethods teaches the pointer class to forward every
// auto-overloaded method of c to the pointer's location. Methods the
// pointer class already has are kept.
func (h *Hook) installPointerMethods(c *registry.Class) {
	for _, name := range h.toAutoOverload[c.Name()] {
		if h.pointerClass.Has(name) {
			continue
		}
		h.pointerClass.SetMethod(name, h.forwardMethod(name))
	}
}

func (h *Hook) forwardMethod(name string) registry.Method {
	return func(self *registry.Object, args ...any) (any, error) {
		p, err := pointerOf(self)
		if err != nil {
			return nil, err
		}
		cmdArgs, err := h.remoteArgs(p.Location, args)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", PointerClassName, name, err)
		}

		res, err := p.Location.Execute(h.ctx, worker.Command{
			Kind:   worker.CallMethod,
			Name:   name,
			Target: p.IDAtLocation,
			Args:   cmdArgs,
		})
		if err != nil {
			return nil, err
		}
		return h.pointerResult(p.Location, res, Owner(self)), nil
	}
}

// remoteLocation returns the worker holding the remote arguments among
// args, or nil if all arguments are local.
func remoteLocation(args []any) worker.Worker {
	for _, arg := range args {
		o, ok := arg.(*registry.Object)
		if !ok {
			continue
		}
		if ptr := remotePointer(o); ptr != nil {
			return ptr.Location
		}
	}
	return nil
}

// remotePointer returns the pointer behind o, whether o is a pointer or a
// wrapper, or nil for local data.
func remotePointer(o *registry.Object) *Pointer {
	if IsWrapper(o) {
		o = Child(o)
		if o == nil {
			return nil
		}
	}
	p, ok := o.Value().(*Pointer)
	if !ok {
		return nil
	}
	return p
}

// remoteArgs converts args for a command run on location. Pointers and
// wrappers become refs; they must all point to location. Local objects
// cannot be sent implicitly.
func (h *Hook) remoteArgs(location worker.Worker, args []any) ([]any, error) {
	out := make([]any, len(args))
	for i, arg := range args {
		o, ok := arg.(*registry.Object)
		if !ok {
			out[i] = arg
			continue
		}
		p := remotePointer(o)
		if p == nil || p.Location != location {
			return nil, fmt.Errorf("argument %d: %w", i, ErrLocationMismatch)
		}
		out[i] = worker.Ref{ID: p.IDAtLocation, Class: p.Class}
	}
	return out, nil
}

// pointerResult turns a ref returned by location into a pointer owned by
// owner. Other values are returned unchanged.
func (h *Hook) pointerResult(location worker.Worker, res any, owner worker.Worker) any {
	ref, ok := res.(worker.Ref)
	if !ok {
		return res
	}
	return h.newPointer(location, ref.ID, ref.Class, owner)
}

// execute runs commands received by a worker attached to this hook.
func (h *Hook) execute(ctx context.Context, w worker.Worker, cmd worker.Command) (any, error) {
	args := make([]any, len(cmd.Args))
	for i, arg := range cmd.Args {
		ref, ok := arg.(worker.Ref)
		if !ok {
			args[i] = arg
			continue
		}
		obj, err := w.Get(ref.ID)
		if err != nil {
			return nil, err
		}
		args[i] = obj
	}

	var res any
	switch cmd.Kind {
	case worker.CallMethod:
		v, err := w.Get(cmd.Target)
		if err != nil {
			return nil, err
		}
		target, ok := v.(*registry.Object)
		if !ok {
			return nil, fmt.Errorf("%s #%d holds %T: %w", w.ID(), cmd.Target, v, worker.ErrUnknownCommand)
		}
		if res, err = target.Call(cmd.Name, args...); err != nil {
			return nil, err
		}
	case worker.CallFunction:
		moduleName, funcName, ok := strings.Cut(cmd.Name, ".")
		if !ok {
			return nil, fmt.Errorf("%s: %w", cmd, worker.ErrUnknownCommand)
		}
		m, ok := h.lib.Module(moduleName)
		if !ok {
			return nil, fmt.Errorf("%s: %w", cmd, worker.ErrUnknownCommand)
		}
		nativeArgs, err := h.unwrapArgs(args)
		if err != nil {
			return nil, err
		}
		name := funcName
		if m.Has(NativePrefix + funcName) {
			name = NativePrefix + funcName
		}
		if res, err = m.Call(name, nativeArgs...); err != nil {
			return nil, err
		}
		res = h.wrapResult(res, w)
	default:
		return nil, fmt.Errorf("%s: %w", cmd, worker.ErrUnknownCommand)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	obj, ok := res.(*registry.Object)
	if !ok {
		return res, nil
	}
	if err := obj.Set(AttrOwner, w); err != nil {
		return nil, err
	}
	id := ID(obj)
	w.Register(id, obj)
	return worker.Ref{ID: id, Class: obj.Class().Name()}, nil
}
