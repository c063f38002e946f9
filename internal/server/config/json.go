package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/hospital-accounts/internal/flagx"
	"github.com/dmitrijs2005/hospital-accounts/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell an
// absent key from a zero value, so only keys present in the file override.
type JsonConfig struct {
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	Storage          *string         `json:"storage"`
	DatabaseDSN      *string         `json:"database_dsn"`
	LogLevel         *string         `json:"log_level"`
	SeedDemoUsers    *bool           `json:"seed_demo_users"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
	TracingEndpoint  *string         `json:"tracing_endpoint"`
}

// parseJson overlays values from the JSON file given with -c or -config.
// Without either flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.JSONConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.Storage != nil {
		config.Storage = *c.Storage
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.SeedDemoUsers != nil {
		config.SeedDemoUsers = *c.SeedDemoUsers
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.TracingEndpoint != nil {
		config.TracingEndpoint = *c.TracingEndpoint
	}
	return nil
}
