// Package registry provides runtime descriptors for a library surface:
// classes with replaceable methods and properties, modules with
// replaceable functions, and objects that dispatch through their class.
//
// The descriptors stand in for open classes: a class's members can be
// read, aliased and replaced at runtime, and every object call goes
// through the class, so replacing a member changes behaviour for every
// existing object.
package registry

import "errors"

// Sentinel errors for lookup and dispatch.
var (
	// ErrNoAttribute indicates the class or module has no member of that name.
	ErrNoAttribute = errors.New("registry: no such attribute")

	// ErrNotCallable indicates the member exists but cannot be called.
	ErrNotCallable = errors.New("registry: attribute is not callable")

	// ErrReadOnly indicates a property without a setter.
	ErrReadOnly = errors.New("registry: attribute is read-only")

	// ErrNoConstructor indicates a class without a constructor.
	ErrNoConstructor = errors.New("registry: class has no constructor")
)
