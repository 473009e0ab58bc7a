package hook

import (
	"context"
	"log"

	"github.com/born-ml/syft/internal/config"
	"github.com/born-ml/syft/internal/ids"
	"github.com/born-ml/syft/internal/worker"
)

// Option configures a Hook.
type Option func(*Hook)

// WithLocalWorker supplies the local worker instead of creating one.
func WithLocalWorker(w worker.Worker) Option {
	return func(h *Hook) {
		h.localWorker = w
	}
}

// WithWorkerID sets the id of the local worker created by Install.
// Default is "me".
func WithWorkerID(id string) Option {
	return func(h *Hook) {
		h.workerID = id
	}
}

// WithClient sets whether the created local worker is a client worker.
// Default is true.
func WithClient(isClient bool) Option {
	return func(h *Hook) {
		h.isClient = isClient
	}
}

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l *log.Logger) Option {
	return func(h *Hook) {
		h.logger = l
	}
}

// WithVerbose enables debug logging.
func WithVerbose(verbose bool) Option {
	return func(h *Hook) {
		h.verbose = verbose
	}
}

// WithIDProvider sets the id provider. Default is ids.Default.
func WithIDProvider(p *ids.Provider) Option {
	return func(h *Hook) {
		h.ids = p
	}
}

// WithAutoRegister registers constructed objects with their owner unless the
// constructor is called with register=false.
func WithAutoRegister(autoRegister bool) Option {
	return func(h *Hook) {
		h.autoRegister = autoRegister
	}
}

// WithExclude adds function names the module sweep must never overload.
func WithExclude(names ...string) Option {
	return func(h *Hook) {
		h.exclude = append(h.exclude, names...)
	}
}

// WithPolicy sets the wrapping policy of a module function, named
// "module.func". It overrides DefaultPolicies.
func WithPolicy(qualified string, p Policy) Option {
	return func(h *Hook) {
		h.policies[qualified] = p
	}
}

// WithCallObserver registers fn to be called with the qualified name of
// every intercepted module function call.
// fn may be called concurrently and must be thread-safe.
func WithCallObserver(fn func(qualified string)) Option {
	return func(h *Hook) {
		h.observer = fn
	}
}

// WithContext sets the context used for remote commands.
// Default is context.Background().
func WithContext(ctx context.Context) Option {
	return func(h *Hook) {
		h.ctx = ctx
	}
}

// WithConfig applies settings loaded by config.Load.
func WithConfig(cfg config.Config) Option {
	return func(h *Hook) {
		if cfg.WorkerID != "" {
			h.workerID = cfg.WorkerID
		}
		h.isClient = cfg.IsClient
		h.verbose = cfg.Verbose
		h.autoRegister = cfg.AutoRegister
		if cfg.IDSeed != 0 {
			h.ids = ids.New(cfg.IDSeed)
		}
	}
}
