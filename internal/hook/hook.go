// Package hook augments a native tensor library with distributed ownership
// and remote pointers.
//
// Install applies three passes to a library, once per library value:
//
//   - Type hook: every Tensor and Variable gets an id, an owner and an
//     is_wrapper flag at construction, a set of identity properties, and
//     the methods of the tensor proxy class. Native methods shadowed by the
//     proxy stay reachable as native_<name>.
//   - Pointer hook: the PointerTensor class learns to forward every hooked
//     native method to the worker holding the data.
//   - Module hook: every public function of the library modules is replaced
//     by an interception wrapper; the original stays as native_<name>.
package hook

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/born-ml/syft/internal/ids"
	"github.com/born-ml/syft/internal/library"
	"github.com/born-ml/syft/internal/registry"
	"github.com/born-ml/syft/internal/worker"
)

// HookedMarker is the library marker set by the first successful Install.
const HookedMarker = "syft_hooked"

// DefaultWorkerID is the id of the local worker created by Install.
const DefaultWorkerID = "me"

// ArgsHook converts the arguments of a hooked method before they reach the
// native implementation.
type ArgsHook func(args []any) ([]any, error)

// Hook is the installed interception layer of one library.
type Hook struct {
	lib   *registry.Library
	attrs *Attributes

	ctx          context.Context
	ids          *ids.Provider
	logger       *log.Logger
	verbose      bool
	autoRegister bool
	isClient     bool
	workerID     string
	exclude      []string
	policies     map[string]Policy
	observer     func(qualified string)

	localWorker  worker.Worker
	proxy        *registry.Class
	pointerClass *registry.Class

	// Built once by Install, read-only afterwards.
	toAutoOverload map[string][]string
	argsHooks      map[string]ArgsHook
	overloaded     []string

	installed bool
	// ready is closed once the installing hook has finished.
	ready chan struct{}
	// primary is the hook that installed the library, when this one did not.
	primary *Hook
}

// Install hooks lib.
//
// If lib is already hooked, Install logs a warning and returns a hook that
// shares the existing local worker without modifying lib. The check and
// the marking happen atomically, so concurrent calls install once. Callers
// that lose the race block until the winner has finished installing.
func Install(lib *registry.Library, opts ...Option) (*Hook, error) {
	h := &Hook{
		lib:      lib,
		ctx:      context.Background(),
		ids:      ids.Default,
		logger:   log.New(os.Stderr, "syft: ", log.LstdFlags),
		isClient: true,
		workerID: DefaultWorkerID,
		exclude:  append([]string(nil), DefaultExclude...),
		policies: make(map[string]Policy, len(DefaultPolicies)),
		ready:    make(chan struct{}),
	}
	for name, p := range DefaultPolicies {
		h.policies[name] = p
	}
	for _, opt := range opts {
		opt(h)
	}

	tensorClass, ok := lib.Class(library.TensorClass)
	if !ok {
		return nil, fmt.Errorf("%s: %w", library.TensorClass, ErrMissingClass)
	}
	variableClass, ok := lib.Class(library.VariableClass)
	if !ok {
		return nil, fmt.Errorf("%s: %w", library.VariableClass, ErrMissingClass)
	}

	if h.localWorker == nil {
		// Every hook has a local worker, responsible for interfacing with
		// other workers.
		h.localWorker = worker.NewVirtual(h.workerID, worker.WithClient(h.isClient))
	}

	if prev, loaded := lib.LoadOrStoreMarker(HookedMarker, h); loaded {
		h.warnf("%s was already hooked, skipping hooking process", lib.Name())
		if first, ok := prev.(*Hook); ok {
			<-first.ready
			h.localWorker = first.localWorker
			h.primary = first
		}
		return h, nil
	}
	defer close(h.ready)

	h.attach(h.localWorker)
	h.attrs = NewAttributes(lib, h.exclude...)
	h.proxy = newTensorProxy(h)
	h.pointerClass = newPointerClass(h)
	lib.AddClass(h.pointerClass)

	h.toAutoOverload = map[string][]string{
		tensorClass.Name():   whichMethodsToAutoOverload(tensorClass, h.proxy),
		variableClass.Name(): whichMethodsToAutoOverload(variableClass, h.proxy),
	}
	h.argsHooks = make(map[string]ArgsHook)
	for _, names := range h.toAutoOverload {
		for _, name := range names {
			h.argsHooks[name] = h.unwrapArgs
		}
	}

	h.hookNativeTensor(tensorClass, h.proxy)
	h.hookNativeTensor(variableClass, h.proxy)

	h.installPointerMethods(tensorClass)
	h.installPointerMethods(variableClass)

	h.overloaded = h.sweep(h.attrs.Modules)

	h.installed = true
	h.debugf("hooked %s %s: local worker %s, %d functions overloaded",
		lib.Name(), lib.Version(), h.localWorker.ID(), len(h.overloaded))
	return h, nil
}

// Installed reports whether this hook performed the installation, as
// opposed to finding the library already hooked.
func (h *Hook) Installed() bool {
	return h.installed
}

// Library returns the hooked library.
func (h *Hook) Library() *registry.Library {
	return h.lib
}

// LocalWorker returns the worker owning objects created without an owner.
func (h *Hook) LocalWorker() worker.Worker {
	return h.localWorker
}

// root returns the hook holding the installation state.
func (h *Hook) root() *Hook {
	if h.primary != nil {
		return h.primary
	}
	return h
}

// Attributes returns the module registry the sweep ran over.
func (h *Hook) Attributes() *Attributes {
	return h.root().attrs
}

// PointerClass returns the PointerTensor class.
func (h *Hook) PointerClass() *registry.Class {
	return h.root().pointerClass
}

// AutoOverload returns the native methods of class selected for
// interception.
func (h *Hook) AutoOverload(class string) []string {
	return append([]string(nil), h.root().toAutoOverload[class]...)
}

// Overloaded returns the qualified names ("module.func") of the module
// functions replaced by the installation, sorted.
func (h *Hook) Overloaded() []string {
	return append([]string(nil), h.root().overloaded...)
}

// New constructs an object of the named class through its hooked
// constructor. kw may carry "owner", "id" and "register".
func (h *Hook) New(class string, args []any, kw registry.Kwargs) (*registry.Object, error) {
	c, ok := h.lib.Class(class)
	if !ok {
		return nil, fmt.Errorf("%s: %w", class, ErrMissingClass)
	}
	return c.New(args, kw)
}

// NewVirtualWorker creates a virtual worker able to run commands sent by
// this hook's pointers.
func (h *Hook) NewVirtualWorker(id string, opts ...worker.Option) *worker.VirtualWorker {
	opts = append(opts, worker.WithExecutor(h.root().execute))
	return worker.NewVirtual(id, opts...)
}

// attach gives w this hook's executor unless it already has one.
func (h *Hook) attach(w worker.Worker) {
	if a, ok := w.(worker.Attacher); ok && !a.Attached() {
		a.Attach(h.root().execute)
	}
}

func (h *Hook) warnf(format string, args ...any) {
	h.logger.Printf("WARNING: "+format, args...)
}

func (h *Hook) debugf(format string, args ...any) {
	if h.verbose {
		h.logger.Printf(format, args...)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
