// Package server assembles the account server: logging, storage backend,
// account service and the gRPC endpoint, with graceful shutdown on signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/hospital-accounts/internal/logging"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/config"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/credentials"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/services"
	"github.com/dmitrijs2005/hospital-accounts/internal/telemetry"

	gs "github.com/dmitrijs2005/hospital-accounts/internal/server/grpc"
)

const serviceName = "hospital-accounts"

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	accounts *services.AccountService
	tracing  telemetry.Shutdown
}

// openPostgres is a seam for tests.
var openPostgres = repomanager.OpenPostgres

// NewApp builds the application from c, logging JSON lines to out.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger, err := logging.NewJSON(out, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	switch c.Storage {
	case config.StoragePostgres:
		db, err = openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db init error: %w", err)
		}
	case config.StorageMemory:
		rm = repomanager.NewMemoryRepositoryManager()
	default:
		return nil, fmt.Errorf("unknown storage %q", c.Storage)
	}

	accounts := services.NewAccountService(db, rm, credentials.PlaceholderVerifier{}, logger)

	if c.SeedDemoUsers {
		if _, err := accounts.Seed(ctx, services.DemoUsers()...); err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	tracing, err := telemetry.Setup(ctx, serviceName, c.TracingEndpoint)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("tracing init error: %w", err)
	}

	logger.Info(ctx, "app initialised", "storage", c.Storage, "tracing", c.TracingEndpoint != "")

	return &App{config: c, logger: logger, db: db, accounts: accounts, tracing: tracing}, nil
}

// Accounts exposes the account service, mainly for tests.
func (app *App) Accounts() *services.AccountService {
	return app.accounts
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accounts, app.config.ShutdownTimeout)
	err := s.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "grpc server", "error", err)
	}

	if app.db != nil {
		if cerr := app.db.Close(); cerr != nil {
			app.logger.Error(ctx, "db close", "error", cerr)
		}
	}

	if app.tracing != nil {
		if terr := app.tracing(context.Background()); terr != nil {
			app.logger.Error(ctx, "tracing shutdown", "error", terr)
		}
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}
