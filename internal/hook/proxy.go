package hook

import (
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/worker"
)

// ProxyClassName is the name of the class whose methods are copied onto
// every hooked tensor class.
const ProxyClassName = "TensorProxy"

// newTensorProxy builds the proxy class. It is never instantiated: its
// methods run with native tensor objects as receivers.
func newTensorProxy(h *Hook) *registry.Class {
	c := registry.NewClass(ProxyClassName)

	c.SetMethod("send", func(self *registry.Object, args ...any) (any, error) {
		to, err := workerArg(args, "send")
		if err != nil {
			return nil, err
		}
		return h.send(self, to)
	})

	c.SetMethod("get", func(self *registry.Object, _ ...any) (any, error) {
		if !IsWrapper(self) {
			return nil, fmt.Errorf("get on local %s: %w", self.Class().Name(), ErrNotAPointer)
		}
		return h.getPointer(Child(self))
	})

	c.SetMethod("move", func(self *registry.Object, args ...any) (any, error) {
		to, err := workerArg(args, "move")
		if err != nil {
			return nil, err
		}
		obj := self
		if IsWrapper(self) {
			if obj, err = h.getPointer(Child(self)); err != nil {
				return nil, err
			}
		}
		return h.send(obj, to)
	})

	c.SetMethod("create_pointer", func(self *registry.Object, args ...any) (any, error) {
		location := Owner(self)
		if len(args) > 0 && args[0] != nil {
			w, ok := asWorker(args[0])
			if !ok {
				return nil, fmt.Errorf("create_pointer: %w: %T", ErrNotAWorker, args[0])
			}
			location = w
		}
		idAtLocation := ID(self)
		if len(args) > 1 && args[1] != nil {
			id, err := asID(args[1])
			if err != nil {
				return nil, fmt.Errorf("create_pointer: %w", err)
			}
			idAtLocation = id
		}
		return h.newPointer(location, idAtLocation, self.Class().Name(), h.localWorker), nil
	})

	c.SetMethod("describe", func(self *registry.Object, args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("describe expects 1 argument, got %d", len(args))
		}
		self.Store(fieldDescription, fmt.Sprint(args[0]))
		return self, nil
	})

	c.SetMethod("tag", func(self *registry.Object, args ...any) (any, error) {
		tags := make(map[string]struct{})
		if v, ok := self.Load(fieldTags); ok {
			for t := range v.(map[string]struct{}) {
				tags[t] = struct{}{}
			}
		}
		for _, arg := range args {
			tags[fmt.Sprint(arg)] = struct{}{}
		}
		self.Store(fieldTags, tags)
		return self, nil
	})

	c.SetMethod("tags", func(self *registry.Object, _ ...any) (any, error) {
		return Tags(self), nil
	})

	c.SetMethod("string", func(self *registry.Object, _ ...any) (any, error) {
		if IsWrapper(self) {
			child := Child(self)
			if child == nil {
				return fmt.Sprintf("(Wrapper)>%s", self.Class().Name()), nil
			}
			return "(Wrapper)>" + child.String(), nil
		}

		var sb strings.Builder
		if native, ok := self.Class().Method(NativePrefix + "string"); ok {
			s, err := native(self)
			if err != nil {
				return nil, err
			}
			fmt.Fprint(&sb, s)
		} else {
			fmt.Fprint(&sb, self.Value())
		}
		if tags := Tags(self); len(tags) > 0 {
			fmt.Fprintf(&sb, "\n\tTags: %s", strings.Join(tags, " "))
		}
		if v, ok := self.Load(fieldDescription); ok {
			fmt.Fprintf(&sb, "\n\tDescription: %s", v)
		}
		return sb.String(), nil
	})

	// Structural members: the proxy defines them, but they are never copied.
	unsupported := func(name string) registry.Method {
		return func(self *registry.Object, _ ...any) (any, error) {
			return nil, fmt.Errorf("%s.%s: %w", ProxyClassName, name, registry.ErrNotCallable)
		}
	}
	for _, name := range []string{"__init__", "__hash__", "__lt__", "__gt__"} {
		c.SetMethod(name, unsupported(name))
	}
	return c
}

// Tags returns the sorted tags of o.
func Tags(o *registry.Object) []string {
	v, ok := o.Load(fieldTags)
	if !ok {
		return nil
	}
	set := v.(map[string]struct{})
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Description returns the description set by describe.
func Description(o *registry.Object) string {
	v, _ := o.Load(fieldDescription)
	s, _ := v.(string)
	return s
}

func workerArg(args []any, op string) (worker.Worker, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s expects 1 worker argument, got %d", op, len(args))
	}
	w, ok := asWorker(args[0])
	if !ok {
		return nil, fmt.Errorf("%s: %w: %T", op, ErrNotAWorker, args[0])
	}
	return w, nil
}

// send moves obj to worker to and returns a wrapper pointing at it, owned
// by obj's former owner.
func (h *Hook) send(obj *registry.Object, to worker.Worker) (*registry.Object, error) {
	if IsWrapper(obj) {
		return nil, fmt.Errorf("send %s: %w", obj.Class().Name(), ErrAlreadyRemote)
	}
	h.attach(to)

	id := ID(obj)
	owner := Owner(obj)
	owner.Deregister(id)
	to.Register(id, obj)
	if err := obj.Set(AttrOwner, to); err != nil {
		return nil, err
	}

	ptr := h.newPointer(to, id, obj.Class().Name(), owner)
	return h.newWrapper(obj.Class(), ptr), nil
}
