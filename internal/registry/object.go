package registry

import (
	"fmt"
	"sync"
)

// Object is an instance of a Class wrapping a native value.
//
// Attribute lookup checks the class's properties first and then the
// object's own attribute bag. Method calls always resolve through the
// class at call time.
type Object struct {
	class *Class

	mu    sync.Mutex
	value any
	attrs map[string]any
}

// NewObject creates an object of class c holding value.
func NewObject(c *Class, value any) *Object {
	return &Object{
		class: c,
		value: value,
		attrs: make(map[string]any),
	}
}

// Class returns the object's class.
func (o *Object) Class() *Class {
	return o.class
}

// Value returns the wrapped native value.
func (o *Object) Value() any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// SetValue replaces the wrapped native value.
func (o *Object) SetValue(v any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.value = v
}

// Call invokes the method called name. Panics raised by the method are
// returned as errors.
func (o *Object) Call(name string, args ...any) (result any, err error) {
	m, ok := o.class.Method(name)
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", o.class.name, name, ErrNoAttribute)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s.%s: %v", o.class.name, name, r)
		}
	}()
	return m(o, args...)
}

// Get returns the attribute called name.
func (o *Object) Get(name string) (any, error) {
	if p, ok := o.class.Property(name); ok {
		return p.Get(o)
	}
	if v, ok := o.Load(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%s.%s: %w", o.class.name, name, ErrNoAttribute)
}

// Set assigns the attribute called name.
func (o *Object) Set(name string, value any) error {
	if p, ok := o.class.Property(name); ok {
		if p.Set == nil {
			return fmt.Errorf("%s.%s: %w", o.class.name, name, ErrReadOnly)
		}
		return p.Set(o, value)
	}
	o.Store(name, value)
	return nil
}

// Load reads a raw attribute, bypassing properties.
func (o *Object) Load(name string) (any, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.attrs[name]
	return v, ok
}

// Store writes a raw attribute, bypassing properties.
func (o *Object) Store(name string, value any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attrs[name] = value
}

// LoadOrInit returns the raw attribute called name, initializing it with fn
// if absent. fn runs under the object lock, so concurrent first reads see a
// single initialization. fn must not access the object.
func (o *Object) LoadOrInit(name string, fn func() any) any {
	o.mu.Lock()
	defer o.mu.Unlock()
	if v, ok := o.attrs[name]; ok {
		return v
	}
	v := fn()
	o.attrs[name] = v
	return v
}

// String calls the "string" method when defined.
func (o *Object) String() string {
	if _, ok := o.class.Method("string"); ok {
		if s, err := o.Call("string"); err == nil {
			if str, ok := s.(string); ok {
				return str
			}
		}
	}
	return fmt.Sprintf("<%s object %v>", o.class.name, o.Value())
}
