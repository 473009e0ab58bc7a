package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "me", cfg.WorkerID)
	assert.True(t, cfg.IsClient)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.AutoRegister)
	assert.Zero(t, cfg.IDSeed)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SYFT_WORKER_ID", "alice")
	t.Setenv("SYFT_IS_CLIENT", "false")
	t.Setenv("SYFT_VERBOSE", "true")
	t.Setenv("SYFT_AUTO_REGISTER", "true")
	t.Setenv("SYFT_ID_SEED", "99")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		WorkerID:     "alice",
		IsClient:     false,
		Verbose:      true,
		AutoRegister: true,
		IDSeed:       99,
	}, cfg)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SYFT_ID_SEED", "not-a-number")

	_, err := Load()
	assert.ErrorContains(t, err, "parse env")
}
