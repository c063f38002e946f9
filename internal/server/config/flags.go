package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/hospital-accounts/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-m string   storage backend: memory or postgres
//	-d string   PostgreSQL DSN
//	-l string   log level
//	-seed bool  register demo users at start ("-seed false" is accepted too)
//	-t int      graceful shutdown timeout, seconds
//
// Other arguments are filtered out with flagx.FilterArgsBool first so -c/-config
// does not make parsing fail.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgsBool(args, []string{"-a", "-m", "-d", "-l", "-seed", "-t"}, []string{"-seed"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.Storage, "m", config.Storage, "storage backend (memory|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug|info|warn|error)")
	fs.BoolVar(&config.SeedDemoUsers, "seed", config.SeedDemoUsers, "register demo users at start")

	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "graceful shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// -t only overrides when given, so sub-second values from JSON or the
	// environment survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
		}
	})
	return nil
}
