package hook

import "errors"

// Sentinel errors returned by hooked classes and functions.
// Use errors.Is() to check for specific error conditions.
var (
	// ErrMissingClass indicates the library lacks a class the hook needs.
	ErrMissingClass = errors.New("hook: library does not define class")

	// ErrBadKwarg indicates a constructor keyword argument of the wrong type.
	ErrBadKwarg = errors.New("hook: bad keyword argument")

	// ErrNotAPointer indicates a remote-only operation on local data.
	ErrNotAPointer = errors.New("hook: object is not a pointer")

	// ErrAlreadyRemote indicates a data-only operation on a pointer.
	ErrAlreadyRemote = errors.New("hook: object is already remote")

	// ErrLocationMismatch indicates arguments living on different workers.
	ErrLocationMismatch = errors.New("hook: arguments live on different workers")

	// ErrNotAWorker indicates an argument that should have been a worker.
	ErrNotAWorker = errors.New("hook: argument is not a worker")
)
