package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/xid"
)

// VirtualWorker is an in-process worker with an object store.
// It is safe for concurrent use.
type VirtualWorker struct {
	id       string
	isClient bool

	mu       sync.RWMutex
	objects  map[uint64]any
	known    map[string]Worker
	executor Executor
}

// Option configures a VirtualWorker.
type Option func(*VirtualWorker)

// WithClient marks the worker as a client worker.
func WithClient(isClient bool) Option {
	return func(w *VirtualWorker) {
		w.isClient = isClient
	}
}

// WithExecutor attaches an executor at construction.
func WithExecutor(e Executor) Option {
	return func(w *VirtualWorker) {
		w.executor = e
	}
}

// NewVirtual creates a virtual worker. An empty id is replaced by a
// generated one.
func NewVirtual(id string, opts ...Option) *VirtualWorker {
	if id == "" {
		id = xid.New().String()
	}
	w := &VirtualWorker{
		id:      id,
		objects: make(map[uint64]any),
		known:   make(map[string]Worker),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ID returns the worker's id.
func (w *VirtualWorker) ID() string {
	return w.id
}

// IsClient reports whether the worker is a client worker.
func (w *VirtualWorker) IsClient() bool {
	return w.isClient
}

// String implements fmt.Stringer.
func (w *VirtualWorker) String() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return fmt.Sprintf("<VirtualWorker id:%s #objects:%d>", w.id, len(w.objects))
}

// Register stores obj under id.
func (w *VirtualWorker) Register(id uint64, obj any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.objects[id] = obj
}

// Deregister removes the object stored under id.
func (w *VirtualWorker) Deregister(id uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.objects, id)
}

// Get returns the object stored under id.
func (w *VirtualWorker) Get(id uint64) (any, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, ok := w.objects[id]
	if !ok {
		return nil, fmt.Errorf("%s #%d: %w", w.id, id, ErrObjectNotFound)
	}
	return obj, nil
}

// Has reports whether an object is stored under id.
func (w *VirtualWorker) Has(id uint64) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.objects[id]
	return ok
}

// Len returns the number of stored objects.
func (w *VirtualWorker) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.objects)
}

// IDs returns the sorted ids of stored objects.
func (w *VirtualWorker) IDs() []uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	ids := make([]uint64, 0, len(w.objects))
	for id := range w.objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clear removes every stored object.
func (w *VirtualWorker) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.objects = make(map[uint64]any)
}

// Attach sets the executor used by Execute.
func (w *VirtualWorker) Attach(e Executor) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.executor = e
}

// Attached reports whether an executor is set.
func (w *VirtualWorker) Attached() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.executor != nil
}

// Execute runs cmd through the attached executor.
func (w *VirtualWorker) Execute(ctx context.Context, cmd Command) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.RLock()
	e := w.executor
	w.mu.RUnlock()

	if e == nil {
		return nil, fmt.Errorf("%s: %w", w.id, ErrNoExecutor)
	}
	return e(ctx, w, cmd)
}

// Connect makes other known to w and w known to other.
func (w *VirtualWorker) Connect(other *VirtualWorker) {
	w.addKnown(other)
	other.addKnown(w)
}

func (w *VirtualWorker) addKnown(other Worker) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.known[other.ID()] = other
}

// Known returns the connected worker called id.
func (w *VirtualWorker) Known(id string) (Worker, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	other, ok := w.known[id]
	return other, ok
}
