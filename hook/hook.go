// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package hook extends the Born tensor library with ownership metadata and
// remote pointers for federated learning.
//
// Install hooks a library surface once:
//   - Tensor and Variable constructors assign every object an id and an
//     owner worker, and accept "owner", "id" and "register" keywords.
//   - The tensor proxy methods (send, get, move, create_pointer, describe,
//     tag) are copied onto both classes. Replaced native methods stay
//     reachable as native_<name>.
//   - The PointerTensor class forwards every intercepted method to the
//     worker holding the data.
//   - Public module functions are wrapped so that results become owned
//     objects and pointer arguments run remotely.
//
// Example:
//
//	lib := hook.NewLibrary()
//	h, err := hook.Install(lib)
//	if err != nil {
//		log.Fatal(err)
//	}
//	bob := h.NewVirtualWorker("bob")
//	x, _ := h.New(hook.TensorClass, []any{[]float64{1, 2}}, nil)
//	px, _ := x.Call("send", bob)
//	py, _ := px.(*hook.Object).Call("add", px)
//	y, _ := py.(*hook.Object).Call("get")
package hook

import (
	"context"
	"log"

	"github.com/born-ml/syft/internal/config"
	"github.com/born-ml/syft/internal/hook"
	"github.com/born-ml/syft/internal/ids"
	"github.com/born-ml/syft/internal/library"
	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/worker"
)

// Type aliases for public API

// Hook is an installed (or adopted) hook on a library.
type Hook = hook.Hook

// Option configures Install.
type Option = hook.Option

// Policy decides how a module function is wrapped.
type Policy = hook.Policy

// Pointer is the value of a PointerTensor object.
type Pointer = hook.Pointer

// Library is a hookable library surface.
type Library = registry.Library

// Module is a library module.
type Module = registry.Module

// Class is a library class.
type Class = registry.Class

// Object is an instance of a library class.
type Object = registry.Object

// Kwargs carries constructor keyword arguments.
type Kwargs = registry.Kwargs

// Config is the environment configuration.
type Config = config.Config

// Wrapping policies.
const (
	PolicyIntercept   = hook.PolicyIntercept
	PolicyLocal       = hook.PolicyLocal
	PolicyPassthrough = hook.PolicyPassthrough
)

// Names used by hooked libraries.
const (
	TensorClass      = library.TensorClass
	VariableClass    = library.VariableClass
	PointerClassName = hook.PointerClassName
	NativePrefix     = hook.NativePrefix
	DefaultWorkerID  = hook.DefaultWorkerID
)

// Errors returned by hooked objects.
var (
	ErrMissingClass     = hook.ErrMissingClass
	ErrBadKwarg         = hook.ErrBadKwarg
	ErrNotAPointer      = hook.ErrNotAPointer
	ErrAlreadyRemote    = hook.ErrAlreadyRemote
	ErrLocationMismatch = hook.ErrLocationMismatch
	ErrNotAWorker       = hook.ErrNotAWorker
)

// NewLibrary builds a fresh, unhooked Born library surface.
func NewLibrary() *Library {
	return library.New()
}

// Install hooks lib. Installing twice on the same library logs a warning
// and returns a hook sharing the first one's local worker.
func Install(lib *Library, opts ...Option) (*Hook, error) {
	return hook.Install(lib, opts...)
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	return config.Load()
}

// WithConfig applies an environment configuration.
func WithConfig(cfg Config) Option { return hook.WithConfig(cfg) }

// WithLocalWorker sets the worker owning locally created objects.
func WithLocalWorker(w worker.Worker) Option { return hook.WithLocalWorker(w) }

// WithWorkerID sets the id of the local worker created by Install.
func WithWorkerID(id string) Option { return hook.WithWorkerID(id) }

// WithClient marks the created local worker as a client.
func WithClient(isClient bool) Option { return hook.WithClient(isClient) }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return hook.WithLogger(l) }

// WithVerbose enables debug logging.
func WithVerbose(verbose bool) Option { return hook.WithVerbose(verbose) }

// WithIDSeed seeds a private id provider, making ids reproducible.
func WithIDSeed(seed uint64) Option { return hook.WithIDProvider(ids.New(seed)) }

// WithAutoRegister registers new objects with their owner.
func WithAutoRegister(autoRegister bool) Option { return hook.WithAutoRegister(autoRegister) }

// WithExclude adds module functions the sweep leaves alone.
func WithExclude(names ...string) Option { return hook.WithExclude(names...) }

// WithPolicy overrides the policy of a "module.func".
func WithPolicy(qualified string, p Policy) Option { return hook.WithPolicy(qualified, p) }

// WithCallObserver calls fn with the qualified name of every hooked
// module function call.
func WithCallObserver(fn func(qualified string)) Option { return hook.WithCallObserver(fn) }

// WithContext sets the context of remote commands.
func WithContext(ctx context.Context) Option { return hook.WithContext(ctx) }

// ID returns the object's id.
func ID(o *Object) uint64 { return hook.ID(o) }

// Owner returns the object's owner.
func Owner(o *Object) worker.Worker { return hook.Owner(o) }

// IsWrapper reports whether o wraps a pointer.
func IsWrapper(o *Object) bool { return hook.IsWrapper(o) }

// Location returns the worker holding o's data.
func Location(o *Object) worker.Worker { return hook.Location(o) }

// IDAtLocation returns the id of o's data on its location.
func IDAtLocation(o *Object) uint64 { return hook.IDAtLocation(o) }

// Child returns the pointer wrapped by o.
func Child(o *Object) *Object { return hook.Child(o) }

// Tags returns the tags of o.
func Tags(o *Object) []string { return hook.Tags(o) }

// Description returns the description of o.
func Description(o *Object) string { return hook.Description(o) }
