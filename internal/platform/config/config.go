// Package config builds service configuration from environment variables so
// main stays lean. Both services share one shape; they differ only in the
// defaults their entrypoints pass in.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
)

// Service captures one service instance's configuration.
type Service struct {
	Addr            string        `env:"ADDR"`
	DBPath          string        `env:"DB_PATH"`
	WorkerID        string        `env:"WORKER_ID"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Defaults carries the per-service fallbacks applied when the corresponding
// environment variable is unset.
type Defaults struct {
	Addr         string
	DBPath       string
	WorkerPrefix string
}

// Load parses the environment and fills gaps from the given defaults.
// The worker identity is resolved here, once, and stays fixed for the
// process lifetime.
func Load(defaults Defaults) (Service, error) {
	var cfg Service
	if err := env.Parse(&cfg); err != nil {
		return Service{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaults.DBPath
	}
	if cfg.WorkerID == "" {
		cfg.WorkerID = fmt.Sprintf("%s-%s", defaults.WorkerPrefix, uuid.New().String()[:8])
	}
	return cfg, nil
}
