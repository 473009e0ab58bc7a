package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Function is a free function exposed by a module.
type Function func(args ...any) (any, error)

// AttrKind classifies module attributes.
type AttrKind int

// Attribute kinds.
const (
	KindFunction AttrKind = iota
	KindClass
	KindValue
)

// String returns the kind name.
func (k AttrKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindValue:
		return "value"
	default:
		return "unknown"
	}
}

// Attr is a module member.
type Attr struct {
	Name string
	Kind AttrKind

	Func  Function
	Class *Class
	Value any

	// ModulePath is the reported defining module, e.g. "born/internal/tensor".
	// It is used for lookup and display only.
	ModulePath string

	// APINames are the public names the library exports this member under,
	// e.g. "born.math.add".
	APINames []string
}

// Module is a named collection of functions, classes and values whose
// members can be replaced at runtime.
type Module struct {
	name string

	mu    sync.RWMutex
	attrs map[string]*Attr
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{
		name:  name,
		attrs: make(map[string]*Attr),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Dir returns the sorted names of all module members.
func (m *Module) Dir() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.attrs))
	for name := range m.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the module has a member called name.
func (m *Module) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.attrs[name]
	return ok
}

// Attr returns a copy of the member called name.
func (m *Module) Attr(name string) (Attr, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attrs[name]
	if !ok {
		return Attr{}, false
	}
	return *a, true
}

// SetAttr defines or replaces a member. a.Name is overwritten with name.
func (m *Module) SetAttr(name string, a Attr) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.Name = name
	m.attrs[name] = &a
}

// AddFunc defines a function member.
func (m *Module) AddFunc(name, modulePath string, fn Function, apiNames ...string) {
	m.SetAttr(name, Attr{Kind: KindFunction, Func: fn, ModulePath: modulePath, APINames: apiNames})
}

// AddClass defines a class member.
func (m *Module) AddClass(name string, c *Class) {
	m.SetAttr(name, Attr{Kind: KindClass, Class: c})
}

// AddValue defines a value member.
func (m *Module) AddValue(name string, v any) {
	m.SetAttr(name, Attr{Kind: KindValue, Value: v})
}

// Func returns the function called name.
func (m *Module) Func(name string) (Function, bool) {
	a, ok := m.Attr(name)
	if !ok || a.Kind != KindFunction {
		return nil, false
	}
	return a.Func, true
}

// Call invokes the function called name. Panics raised by the function are
// returned as errors.
func (m *Module) Call(name string, args ...any) (result any, err error) {
	a, ok := m.Attr(name)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", m.name, name, ErrNoAttribute)
	}
	if a.Kind != KindFunction {
		return nil, fmt.Errorf("%s.%s: %w", m.name, name, ErrNotCallable)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s.%s: %v", m.name, name, r)
		}
	}()
	return a.Func(args...)
}
