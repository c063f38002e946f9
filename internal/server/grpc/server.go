// Package grpc exposes the account service over gRPC.
package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/hospital-accounts/internal/logging"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/models"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/services"
	"github.com/dmitrijs2005/hospital-accounts/internal/wire"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// accountSvc is what the handlers need from services.AccountService.
type accountSvc interface {
	SignIn(ctx context.Context, email, password string) (models.SignInStatus, error)
	Register(ctx context.Context, req services.RegisterRequest) (bool, error)
	ResetPassword(ctx context.Context, email, newPassword string) (bool, error)
	Users(ctx context.Context) ([]*models.User, error)
}

type GRPCServer struct {
	wire.UnimplementedAccountServiceServer
	address         string
	accounts        accountSvc
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewGRPCServer(a string, l logging.Logger, as accountSvc, shutdownTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:         a,
		logger:          l.With("module", "grpc_server"),
		accounts:        as,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully. Pending RPCs get shutdownTimeout to finish before the
// server is stopped hard. The standard health service reports SERVING for
// the account service until shutdown begins.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.recoveryInterceptor, s.loggingInterceptor),
	)

	wire.RegisterAccountServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(wire.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		s.stop(srv)
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// With ctx already done, the stop can win the race and Serve reports
	// ErrServerStopped; that is still a clean stop.
	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	<-stopped
	return nil
}

func (s *GRPCServer) stop(srv *grpc.Server) {
	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	if s.shutdownTimeout <= 0 {
		<-done
		return
	}

	select {
	case <-done:
	case <-time.After(s.shutdownTimeout):
		s.logger.Warn(context.Background(), "graceful stop timed out, forcing", "timeout", s.shutdownTimeout)
		srv.Stop()
	}
}
