// Package config loads hook configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings a hook is installed with.
type Config struct {
	// WorkerID is the id of the local worker created when none is supplied.
	WorkerID string `env:"SYFT_WORKER_ID" envDefault:"me"`

	// IsClient marks the local worker as a client worker.
	IsClient bool `env:"SYFT_IS_CLIENT" envDefault:"true"`

	// Verbose enables debug logging of hook installation.
	Verbose bool `env:"SYFT_VERBOSE" envDefault:"false"`

	// AutoRegister registers every constructed object with its owner unless
	// the constructor call says otherwise.
	AutoRegister bool `env:"SYFT_AUTO_REGISTER" envDefault:"false"`

	// IDSeed seeds a dedicated id provider. Zero uses the process-wide one.
	IDSeed uint64 `env:"SYFT_ID_SEED" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
