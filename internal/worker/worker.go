// Package worker provides the worker abstraction that owns objects and
// executes commands on them, and an in-process VirtualWorker.
//
// Workers are agnostic of how they communicate: a VirtualWorker runs in the
// same process as its peers, which is enough to exercise pointer
// forwarding without a transport.
package worker

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for worker operations.
var (
	// ErrObjectNotFound indicates the worker stores no object with that id.
	ErrObjectNotFound = errors.New("worker: object not found")

	// ErrNoExecutor indicates the worker cannot run commands yet.
	ErrNoExecutor = errors.New("worker: no executor attached")

	// ErrUnknownCommand indicates a command the executor cannot handle.
	ErrUnknownCommand = errors.New("worker: unknown command")
)

// CommandKind selects how a command is dispatched.
type CommandKind int

// Command kinds.
const (
	// CallMethod calls Name on the stored object Target.
	CallMethod CommandKind = iota
	// CallFunction calls the module function Name ("module.func").
	CallFunction
)

// String returns the kind name.
func (k CommandKind) String() string {
	switch k {
	case CallMethod:
		return "method"
	case CallFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Command is a request to run an operation on a worker.
type Command struct {
	Kind   CommandKind
	Name   string
	Target uint64
	Args   []any
}

// String implements fmt.Stringer.
func (c Command) String() string {
	if c.Kind == CallMethod {
		return fmt.Sprintf("%s #%d.%s(%d args)", c.Kind, c.Target, c.Name, len(c.Args))
	}
	return fmt.Sprintf("%s %s(%d args)", c.Kind, c.Name, len(c.Args))
}

// Ref names an object stored on the executing worker. Commands take refs
// as arguments and return them for object results.
type Ref struct {
	ID uint64
	// Class is the class name of the object, when known.
	Class string
}

// Executor runs commands on behalf of a worker.
type Executor func(ctx context.Context, w Worker, cmd Command) (any, error)

// Worker owns objects and executes commands on them.
type Worker interface {
	// ID returns the worker's id.
	ID() string

	// IsClient reports whether the worker is a client worker. Client workers
	// do not keep objects they create.
	IsClient() bool

	// Register stores obj under id, replacing any previous object.
	Register(id uint64, obj any)

	// Deregister removes the object stored under id.
	Deregister(id uint64)

	// Get returns the object stored under id.
	Get(id uint64) (any, error)

	// Has reports whether an object is stored under id.
	Has(id uint64) bool

	// Execute runs cmd on this worker.
	Execute(ctx context.Context, cmd Command) (any, error)
}

// Attacher is implemented by workers whose executor can be set after
// construction.
type Attacher interface {
	Attach(e Executor)
	Attached() bool
}
