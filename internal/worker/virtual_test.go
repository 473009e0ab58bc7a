package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualWorkerStore(t *testing.T) {
	w := NewVirtual("alice")
	assert.Equal(t, "alice", w.ID())

	w.Register(1, "one")
	w.Register(2, "two")
	assert.True(t, w.Has(1))
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, []uint64{1, 2}, w.IDs())

	got, err := w.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	w.Deregister(2)
	_, err = w.Get(2)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	w.Clear()
	assert.Zero(t, w.Len())
}

func TestNewVirtualGeneratesID(t *testing.T) {
	a, b := NewVirtual(""), NewVirtual("")
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestExecuteRequiresExecutor(t *testing.T) {
	w := NewVirtual("bob")
	_, err := w.Execute(context.Background(), Command{Name: "add"})
	assert.ErrorIs(t, err, ErrNoExecutor)
	assert.False(t, w.Attached())

	var seen Command
	w.Attach(func(_ context.Context, self Worker, cmd Command) (any, error) {
		seen = cmd
		return self.ID(), nil
	})
	assert.True(t, w.Attached())

	got, err := w.Execute(context.Background(), Command{Kind: CallMethod, Name: "add", Target: 7})
	require.NoError(t, err)
	assert.Equal(t, "bob", got)
	assert.Equal(t, uint64(7), seen.Target)
}

func TestExecuteHonoursCancellation(t *testing.T) {
	called := false
	w := NewVirtual("bob", WithExecutor(func(context.Context, Worker, Command) (any, error) {
		called = true
		return nil, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := w.Execute(ctx, Command{})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, called)
}

func TestConnect(t *testing.T) {
	alice, bob := NewVirtual("alice"), NewVirtual("bob", WithClient(true))
	alice.Connect(bob)

	got, ok := alice.Known("bob")
	require.True(t, ok)
	assert.True(t, got.IsClient())

	_, ok = bob.Known("alice")
	assert.True(t, ok)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "method #3.add(1 args)", Command{Kind: CallMethod, Name: "add", Target: 3, Args: []any{1}}.String())
	assert.Equal(t, "function math.add(2 args)", Command{Kind: CallFunction, Name: "math.add", Args: []any{1, 2}}.String())
}
