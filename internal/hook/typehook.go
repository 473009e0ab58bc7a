package hook

import (
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/syft/internal/library"
	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/tensor"
	"github.com/born-ml/syft/internal/worker"
)

// NativePrefix prefixes the alias under which a replaced member stays
// reachable.
const NativePrefix = "native_"

// Constructor keyword arguments consumed by the hooked constructor.
const (
	KwargOwner    = "owner"
	KwargID       = "id"
	KwargRegister = "register"
)

// structuralNames are proxy members never copied onto a native class.
var structuralNames = map[string]struct{}{
	"__class__":         {},
	"__delattr__":       {},
	"__dir__":           {},
	"__doc__":           {},
	"__dict__":          {},
	"__format__":        {},
	"__getattribute__":  {},
	"__hash__":          {},
	"__init__":          {},
	"__init_subclass__": {},
	"__weakref__":       {},
	"__ne__":            {},
	"__new__":           {},
	"__reduce__":        {},
	"__reduce_ex__":     {},
	"__setattr__":       {},
	"__sizeof__":        {},
	"__subclasshook__":  {},
	"__gt__":            {},
	"__ge__":            {},
	"__lt__":            {},
	"__le__":            {},
}

// IsStructural reports whether name is excluded from proxy method copying.
func IsStructural(name string) bool {
	_, ok := structuralNames[name]
	return ok
}

// hookNativeTensor gives class c identity, properties, the proxy's methods
// and intercepted native methods.
func (h *Hook) hookNativeTensor(c, proxy *registry.Class) {
	h.installIdentity(c)
	h.installProperties(c)
	h.installProxyMethods(c, proxy)
	h.installNativeMethods(c)
}

// installIdentity replaces the constructor of c with one that strips the
// owner, id and register keyword arguments, runs the native constructor
// and then assigns identity. The native constructor is preserved once, so
// repeated installation always wraps the true native constructor.
func (h *Hook) installIdentity(c *registry.Class) {
	c.PreserveInit()
	native := c.NativeInit()
	if native == nil {
		return
	}

	c.SetInit(func(c *registry.Class, args []any, kw registry.Kwargs) (*registry.Object, error) {
		ownerArg, _ := kw.Pop(KwargOwner)
		idArg, _ := kw.Pop(KwargID)
		registerArg, hasRegister := kw.Pop(KwargRegister)

		obj, err := native(c, args, kw)
		if err != nil {
			return nil, err
		}

		owner := h.localWorker
		if ownerArg != nil {
			w, ok := asWorker(ownerArg)
			if !ok {
				return nil, fmt.Errorf("%s: %w: owner must be a worker, got %T", c.Name(), ErrBadKwarg, ownerArg)
			}
			owner = w
		}

		var id uint64
		if idArg != nil {
			if id, err = asID(idArg); err != nil {
				return nil, fmt.Errorf("%s: %w", c.Name(), err)
			}
		} else {
			id = h.ids.Pop()
		}

		register := h.autoRegister
		if hasRegister {
			b, ok := registerArg.(bool)
			if !ok {
				return nil, fmt.Errorf("%s: %w: register must be bool, got %T", c.Name(), ErrBadKwarg, registerArg)
			}
			register = b
		}

		h.setIdentity(obj, id, owner, false)
		if register {
			owner.Register(id, obj)
		}
		return obj, nil
	})
}

// installProxyMethods copies every non-structural member of proxy onto c.
//
// A member of c replaced this way is first aliased as native_<name>, unless
// that alias already exists. The alias is therefore only ever taken from
// the true native member, and installing twice is harmless.
func (h *Hook) installProxyMethods(c, proxy *registry.Class) {
	for _, name := range proxy.Dir() {
		if IsStructural(name) {
			continue
		}
		m, ok := proxy.Method(name)
		if !ok {
			continue
		}
		aliasNative(c, name)
		c.SetMethod(name, m)
	}
}

// aliasNative preserves the method called name as native_<name> unless the
// alias exists or there is nothing to preserve.
func aliasNative(c *registry.Class, name string) {
	alias := NativePrefix + name
	if c.Has(alias) {
		return
	}
	if m, ok := c.Method(name); ok {
		c.SetMethod(alias, m)
	}
}

// whichMethodsToAutoOverload selects the native methods of c to intercept:
// every method that is not structural, not already an alias, and not
// supplied by the proxy.
func whichMethodsToAutoOverload(c, proxy *registry.Class) []string {
	var names []string
	for _, name := range c.Dir() {
		if _, ok := c.Method(name); !ok {
			continue
		}
		if IsStructural(name) || strings.HasPrefix(name, NativePrefix) || proxy.Has(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// installNativeMethods replaces each auto-overloaded method of c with one
// that forwards to the child pointer for wrappers and otherwise unwraps the
// arguments, runs native_<name> and wraps the result.
func (h *Hook) installNativeMethods(c *registry.Class) {
	for _, name := range h.toAutoOverload[c.Name()] {
		aliasNative(c, name)
		c.SetMethod(name, h.hookedMethod(name))
	}
}

func (h *Hook) hookedMethod(name string) registry.Method {
	alias := NativePrefix + name
	return func(self *registry.Object, args ...any) (any, error) {
		if IsWrapper(self) {
			child := Child(self)
			if child == nil {
				return nil, fmt.Errorf("%s.%s: wrapper without child: %w", self.Class().Name(), name, ErrNotAPointer)
			}
			res, err := child.Call(name, args...)
			if err != nil {
				return nil, err
			}
			return h.wrapPointer(res), nil
		}

		argsHook, ok := h.argsHooks[name]
		if !ok {
			argsHook = h.unwrapArgs
		}
		nativeArgs, err := argsHook(args)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", self.Class().Name(), name, err)
		}

		native, ok := self.Class().Method(alias)
		if !ok {
			return nil, fmt.Errorf("%s.%s: %w", self.Class().Name(), alias, registry.ErrNoAttribute)
		}
		res, err := native(self, nativeArgs...)
		if err != nil {
			return nil, err
		}
		return h.wrapResult(res, Owner(self)), nil
	}
}

// unwrapArgs replaces local objects by their native values. Remote
// arguments cannot be mixed into a local call.
func (h *Hook) unwrapArgs(args []any) ([]any, error) {
	out := make([]any, len(args))
	for i, arg := range args {
		o, ok := arg.(*registry.Object)
		if !ok {
			out[i] = arg
			continue
		}
		if IsWrapper(o) || o.Class() == h.pointerClass {
			return nil, fmt.Errorf("argument %d: %w", i, ErrLocationMismatch)
		}
		out[i] = o.Value()
	}
	return out, nil
}

// wrapResult turns native tensors and variables into objects owned by
// owner. Other values are returned unchanged.
func (h *Hook) wrapResult(res any, owner worker.Worker) any {
	var className string
	switch res.(type) {
	case *tensor.Tensor:
		className = library.TensorClass
	case *tensor.Variable:
		className = library.VariableClass
	default:
		return res
	}
	c, ok := h.lib.Class(className)
	if !ok {
		return res
	}
	return h.newObject(c, res, owner)
}
