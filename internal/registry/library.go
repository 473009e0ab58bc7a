package registry

import (
	"sort"
	"sync"
)

// Library is the root of a library surface: its modules, its classes and
// a set of markers recording process-level state such as installed hooks.
type Library struct {
	name    string
	version string

	mu      sync.Mutex
	modules map[string]*Module
	classes map[string]*Class
	markers map[string]any
}

// NewLibrary creates an empty library.
func NewLibrary(name, version string) *Library {
	return &Library{
		name:    name,
		version: version,
		modules: make(map[string]*Module),
		classes: make(map[string]*Class),
		markers: make(map[string]any),
	}
}

// Name returns the library name.
func (l *Library) Name() string {
	return l.name
}

// Version returns the library version.
func (l *Library) Version() string {
	return l.version
}

// AddModule registers a module under its name.
func (l *Library) AddModule(m *Module) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.modules[m.Name()] = m
}

// Module returns the module called name.
func (l *Library) Module(name string) (*Module, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.modules[name]
	return m, ok
}

// Modules returns a snapshot of the module table.
func (l *Library) Modules() map[string]*Module {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]*Module, len(l.modules))
	for k, v := range l.modules {
		out[k] = v
	}
	return out
}

// ModuleNames returns the sorted module names.
func (l *Library) ModuleNames() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.modules))
	for name := range l.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddClass registers a class under its name.
func (l *Library) AddClass(c *Class) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.classes[c.Name()] = c
}

// Class returns the class called name.
func (l *Library) Class(name string) (*Class, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.classes[name]
	return c, ok
}

// Marker returns the marker stored under key.
func (l *Library) Marker(key string) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.markers[key]
	return v, ok
}

// LoadOrStoreMarker returns the existing marker for key if present.
// Otherwise it stores value. The loaded result is true if value was not
// stored. The check and the store happen atomically.
func (l *Library) LoadOrStoreMarker(key string, value any) (actual any, loaded bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if v, ok := l.markers[key]; ok {
		return v, true
	}
	l.markers[key] = value
	return value, false
}
