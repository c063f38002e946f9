package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/hospital-accounts/internal/logging"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/services"
	"github.com/dmitrijs2005/hospital-accounts/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := newServer(&fakeAccounts{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestServe_AlreadyCancelledContextIsCleanStop(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 20; i++ {
		lis := bufconn.Listen(1 << 16)
		done := make(chan error, 1)
		go func() {
			done <- newServer(&fakeAccounts{}).Serve(ctx, lis)
		}()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(3 * time.Second):
			t.Fatal("Serve did not return for a cancelled context")
		}
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, &fakeAccounts{}, time.Second)

	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

// startBufconn serves a memory-backed account service holding the demo
// users over an in-process listener and returns a connection to it.
func startBufconn(t *testing.T) *grpc.ClientConn {
	t.Helper()

	accounts := services.NewAccountService(nil, repomanager.NewMemoryRepositoryManager(), nil, logging.Nop{})
	_, err := accounts.Seed(context.Background(), services.DemoUsers()...)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- NewGRPCServer("bufnet", logging.Nop{}, accounts, time.Second).Serve(ctx, lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})

	return conn
}

func TestAccountService_EndToEnd(t *testing.T) {
	c := wire.NewAccountServiceClient(startBufconn(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	signIn := func(email, password string) string {
		resp, err := c.SignIn(ctx, &wire.SignInRequest{Email: email, Password: password})
		require.NoError(t, err)
		return resp.Status
	}

	assert.Equal(t, "Success", signIn("admin@test.com", "password"))
	assert.Equal(t, "Failure", signIn("unknown@test.com", "password"))
	assert.Equal(t, "LockedOut", signIn("locked@test.com", "password"))

	reg, err := c.Register(ctx, &wire.RegisterRequest{Email: "newpatient@test.com", Username: "newpatient", Password: "password", Role: "Patient"})
	require.NoError(t, err)
	assert.True(t, reg.Registered)

	reg, err = c.Register(ctx, &wire.RegisterRequest{Email: "admin@test.com", Username: "admin2", Password: "password", Role: "Admin"})
	require.NoError(t, err)
	assert.False(t, reg.Registered)

	list, err := c.ListUsers(ctx, &wire.ListUsersRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Users, 5)

	reset, err := c.ResetPassword(ctx, &wire.ResetPasswordRequest{Email: "doctor@test.com", NewPassword: "newpassword"})
	require.NoError(t, err)
	assert.True(t, reset.Reset)

	reset, err = c.ResetPassword(ctx, &wire.ResetPasswordRequest{Email: "unknown@test.com", NewPassword: "x"})
	require.NoError(t, err)
	assert.False(t, reset.Reset)

	pong, err := c.Ping(ctx, &wire.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)
}

func TestHealth_ReportsServing(t *testing.T) {
	hc := healthpb.NewHealthClient(startBufconn(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := hc.Check(ctx, &healthpb.HealthCheckRequest{Service: wire.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = hc.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
