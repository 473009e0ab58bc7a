package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Method is a member function bound at call time to its receiver.
type Method func(self *Object, args ...any) (any, error)

// Property is a computed attribute. Set may be nil for read-only properties.
type Property struct {
	Get func(self *Object) (any, error)
	Set func(self *Object, value any) error
}

// Kwargs carries keyword arguments to constructors.
type Kwargs map[string]any

// Pop removes key from kw and returns its value.
func (kw Kwargs) Pop(key string) (any, bool) {
	v, ok := kw[key]
	if ok {
		delete(kw, key)
	}
	return v, ok
}

// Clone returns a shallow copy. A nil receiver yields an empty map.
func (kw Kwargs) Clone() Kwargs {
	out := make(Kwargs, len(kw))
	for k, v := range kw {
		out[k] = v
	}
	return out
}

// Init constructs a new object of class c.
type Init func(c *Class, args []any, kw Kwargs) (*Object, error)

// Class describes a runtime type: its constructor, methods and properties.
// All members are safe to read and replace concurrently.
type Class struct {
	name string

	mu         sync.RWMutex
	methods    map[string]Method
	props      map[string]Property
	init       Init
	nativeInit Init
}

// NewClass creates a class with no members.
func NewClass(name string) *Class {
	return &Class{
		name:    name,
		methods: make(map[string]Method),
		props:   make(map[string]Property),
	}
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	return fmt.Sprintf("<class %s>", c.name)
}

// Dir returns the sorted names of all methods and properties.
func (c *Class) Dir() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.methods)+len(c.props))
	for name := range c.methods {
		names = append(names, name)
	}
	for name := range c.props {
		if _, dup := c.methods[name]; !dup {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Has reports whether the class defines a method or property called name.
func (c *Class) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, isMethod := c.methods[name]
	_, isProp := c.props[name]
	return isMethod || isProp
}

// Method returns the method called name.
func (c *Class) Method(name string) (Method, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.methods[name]
	return m, ok
}

// SetMethod defines or replaces a method.
func (c *Class) SetMethod(name string, m Method) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.methods[name] = m
}

// Property returns the property called name.
func (c *Class) Property(name string) (Property, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.props[name]
	return p, ok
}

// SetProperty defines or replaces a property.
func (c *Class) SetProperty(name string, p Property) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props[name] = p
}

// Init returns the current constructor.
func (c *Class) Init() Init {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.init
}

// SetInit replaces the constructor.
func (c *Class) SetInit(fn Init) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init = fn
}

// NativeInit returns the constructor preserved by PreserveInit, or nil.
func (c *Class) NativeInit() Init {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nativeInit
}

// PreserveInit records the current constructor as the native one unless a
// native constructor is already recorded. It reports whether it did so.
func (c *Class) PreserveInit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nativeInit != nil {
		return false
	}
	c.nativeInit = c.init
	return true
}

// New constructs an object through the current constructor.
func (c *Class) New(args []any, kw Kwargs) (*Object, error) {
	init := c.Init()
	if init == nil {
		return nil, fmt.Errorf("%s: %w", c.name, ErrNoConstructor)
	}
	return init(c, args, kw.Clone())
}

// ValueInit returns a constructor that builds the native value with fn and
// wraps it in a plain object.
func ValueInit(fn func(args []any, kw Kwargs) (any, error)) Init {
	return func(c *Class, args []any, kw Kwargs) (*Object, error) {
		v, err := fn(args, kw)
		if err != nil {
			return nil, err
		}
		return NewObject(c, v), nil
	}
}
