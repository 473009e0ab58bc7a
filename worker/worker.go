// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package worker provides the workers that own hooked tensors.
//
// A worker stores objects by id and executes commands sent by pointers.
// VirtualWorker keeps everything in process; it is what tests and
// simulations use in place of remote machines.
package worker

import "github.com/born-ml/syft/internal/worker"

// Type aliases for public API

// Worker owns objects and executes commands.
type Worker = worker.Worker

// VirtualWorker is an in-process worker.
type VirtualWorker = worker.VirtualWorker

// Option configures a VirtualWorker.
type Option = worker.Option

// Command is a method or function call sent to a worker.
type Command = worker.Command

// CommandKind selects how a command is dispatched.
type CommandKind = worker.CommandKind

// Ref names an object stored on the executing worker.
type Ref = worker.Ref

// Executor runs commands on behalf of a worker.
type Executor = worker.Executor

// Command kinds.
const (
	CallMethod   = worker.CallMethod
	CallFunction = worker.CallFunction
)

// Errors returned by workers.
var (
	ErrObjectNotFound = worker.ErrObjectNotFound
	ErrNoExecutor     = worker.ErrNoExecutor
	ErrUnknownCommand = worker.ErrUnknownCommand
)

// NewVirtual creates a virtual worker. An empty id is replaced by a
// generated one.
func NewVirtual(id string, opts ...Option) *VirtualWorker {
	return worker.NewVirtual(id, opts...)
}

// WithClient marks the worker as a client worker.
func WithClient(isClient bool) Option {
	return worker.WithClient(isClient)
}

// WithExecutor attaches an executor at construction.
func WithExecutor(e Executor) Option {
	return worker.WithExecutor(e)
}
