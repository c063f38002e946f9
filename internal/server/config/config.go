// Package config handles configuration for the account server: defaults,
// an optional JSON file overlay, ACCOUNTS_* environment variables (optionally
// from a .env file) and command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Storage backends understood by the server.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds runtime settings for the account server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - Storage: user store backend, StorageMemory or StoragePostgres.
//   - DatabaseDSN: PostgreSQL DSN (pgx), required for StoragePostgres.
//   - LogLevel: debug, info, warn or error.
//   - SeedDemoUsers: register the demo directory (admin, doctor, patient, locked) at start.
//   - ShutdownTimeout: how long graceful stop may take before connections are cut.
//   - TracingEndpoint: OTLP/HTTP collector URL; empty disables tracing.
type Config struct {
	EndpointAddrGRPC string        `env:"ACCOUNTS_GRPC_ADDR"`
	Storage          string        `env:"ACCOUNTS_STORAGE"`
	DatabaseDSN      string        `env:"ACCOUNTS_DATABASE_DSN"`
	LogLevel         string        `env:"ACCOUNTS_LOG_LEVEL"`
	SeedDemoUsers    bool          `env:"ACCOUNTS_SEED_DEMO_USERS"`
	ShutdownTimeout  time.Duration `env:"ACCOUNTS_SHUTDOWN_TIMEOUT"`
	TracingEndpoint  string        `env:"ACCOUNTS_OTEL_ENDPOINT"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.Storage = StorageMemory
	c.DatabaseDSN = ""
	c.LogLevel = "info"
	c.SeedDemoUsers = true
	c.ShutdownTimeout = 5 * time.Second
	c.TracingEndpoint = ""
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return errors.New("postgres storage requires a database DSN")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	if c.EndpointAddrGRPC == "" {
		return errors.New("empty gRPC endpoint address")
	}
	return nil
}

// Load builds a Config from defaults, then the JSON file named by -c/-config
// in args (if any), then the environment, then the flags in args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads ./.env into the environment when present, then runs Load
// over the process arguments.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return Load(os.Args[1:])
}
