// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package worker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/syft/worker"
)

// TestVirtualWorkerAPI verifies the public aliases.
func TestVirtualWorkerAPI(t *testing.T) {
	var echo worker.Executor = func(_ context.Context, w worker.Worker, cmd worker.Command) (any, error) {
		return cmd.Name + "@" + w.ID(), nil
	}
	var w worker.Worker = worker.NewVirtual("alice", worker.WithExecutor(echo))

	w.Register(1, "obj")
	v, err := w.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "obj", v)

	_, err = w.Get(2)
	assert.ErrorIs(t, err, worker.ErrObjectNotFound)

	res, err := w.Execute(context.Background(), worker.Command{Kind: worker.CallFunction, Name: "math.add"})
	require.NoError(t, err)
	assert.Equal(t, "math.add@alice", res)
}
