// Package client talks to the account server over gRPC.
package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hospital-accounts/internal/server/models"
	"github.com/dmitrijs2005/hospital-accounts/internal/wire"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      wire.AccountServiceClient
}

// NewAccountClient creates a client for endpointURL. The connection is
// established lazily on the first call.
func NewAccountClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}

	return &GRPCClient{
		endpointURL: endpointURL,
		conn:        conn,
		client:      wire.NewAccountServiceClient(conn),
	}, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (models.SignInStatus, error) {
	resp, err := s.client.SignIn(ctx, &wire.SignInRequest{Email: email, Password: password})
	if err != nil {
		return models.SignInFailure, s.mapError(err)
	}

	st, err := models.ParseSignInStatus(resp.Status)
	if err != nil {
		return models.SignInFailure, fmt.Errorf("%w: %q", ErrBadStatus, resp.Status)
	}
	return st, nil
}

func (s *GRPCClient) Register(ctx context.Context, email, userName, password, role string) (bool, error) {
	req := &wire.RegisterRequest{Email: email, Username: userName, Password: password, Role: role}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Registered, nil
}

func (s *GRPCClient) ResetPassword(ctx context.Context, email, newPassword string) (bool, error) {
	resp, err := s.client.ResetPassword(ctx, &wire.ResetPasswordRequest{Email: email, NewPassword: newPassword})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Reset, nil
}

func (s *GRPCClient) ListUsers(ctx context.Context) ([]wire.User, error) {
	resp, err := s.client.ListUsers(ctx, &wire.ListUsersRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Users, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &wire.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
