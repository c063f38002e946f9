package grpc

import (
	"context"

	"github.com/dmitrijs2005/hospital-accounts/internal/server/services"
	"github.com/dmitrijs2005/hospital-accounts/internal/wire"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) SignIn(ctx context.Context, req *wire.SignInRequest) (*wire.SignInResponse, error) {
	result, err := s.accounts.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Error(ctx, "sign-in", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &wire.SignInResponse{Status: result.String()}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *wire.RegisterRequest) (*wire.RegisterResponse, error) {
	s.logger.Info(ctx, "Registration request", "email", req.Email)

	ok, err := s.accounts.Register(ctx, services.RegisterRequest{
		Email:    req.Email,
		UserName: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		s.logger.Error(ctx, "register", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &wire.RegisterResponse{Registered: ok}, nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *wire.ResetPasswordRequest) (*wire.ResetPasswordResponse, error) {
	ok, err := s.accounts.ResetPassword(ctx, req.Email, req.NewPassword)
	if err != nil {
		s.logger.Error(ctx, "reset password", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &wire.ResetPasswordResponse{Reset: ok}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *wire.ListUsersRequest) (*wire.ListUsersResponse, error) {
	list, err := s.accounts.Users(ctx)
	if err != nil {
		s.logger.Error(ctx, "list users", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	resp := &wire.ListUsersResponse{Users: make([]wire.User, 0, len(list))}
	for _, u := range list {
		resp.Users = append(resp.Users, wire.User{
			ID:        u.ID,
			Email:     u.Email,
			Username:  u.UserName,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		})
	}
	return resp, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *wire.PingRequest) (*wire.PingResponse, error) {
	return &wire.PingResponse{Status: "OK"}, nil
}
