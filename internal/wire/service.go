package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "hospital.accounts.v1.AccountService"

const (
	AccountService_SignIn_FullMethodName        = "/" + ServiceName + "/SignIn"
	AccountService_Register_FullMethodName      = "/" + ServiceName + "/Register"
	AccountService_ResetPassword_FullMethodName = "/" + ServiceName + "/ResetPassword"
	AccountService_ListUsers_FullMethodName     = "/" + ServiceName + "/ListUsers"
	AccountService_Ping_FullMethodName          = "/" + ServiceName + "/Ping"
)

// AccountServiceServer is the server API for AccountService.
type AccountServiceServer interface {
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*ResetPasswordResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedAccountServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedAccountServiceServer struct{}

func (UnimplementedAccountServiceServer) SignIn(context.Context, *SignInRequest) (*SignInResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignIn not implemented")
}
func (UnimplementedAccountServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedAccountServiceServer) ResetPassword(context.Context, *ResetPasswordRequest) (*ResetPasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResetPassword not implemented")
}
func (UnimplementedAccountServiceServer) ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUsers not implemented")
}
func (UnimplementedAccountServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountService_ServiceDesc, srv)
}

// unaryHandler builds a grpc.MethodDesc handler for one unary method.
func unaryHandler[Req any, Resp any](fullMethod string, call func(AccountServiceServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AccountService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SignIn",
			Handler:    unaryHandler(AccountService_SignIn_FullMethodName, AccountServiceServer.SignIn),
		},
		{
			MethodName: "Register",
			Handler:    unaryHandler(AccountService_Register_FullMethodName, AccountServiceServer.Register),
		},
		{
			MethodName: "ResetPassword",
			Handler:    unaryHandler(AccountService_ResetPassword_FullMethodName, AccountServiceServer.ResetPassword),
		},
		{
			MethodName: "ListUsers",
			Handler:    unaryHandler(AccountService_ListUsers_FullMethodName, AccountServiceServer.ListUsers),
		},
		{
			MethodName: "Ping",
			Handler:    unaryHandler(AccountService_Ping_FullMethodName, AccountServiceServer.Ping),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hospital/accounts/v1/accounts.proto",
}

// AccountServiceClient is the client API for AccountService.
type AccountServiceClient interface {
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*ResetPasswordResponse, error)
	ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type accountServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAccountServiceClient returns a client whose calls use the JSON codec.
func NewAccountServiceClient(cc grpc.ClientConnInterface) AccountServiceClient {
	return &accountServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountServiceClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	return invoke[SignInResponse](ctx, c.cc, AccountService_SignIn_FullMethodName, in, opts)
}

func (c *accountServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, AccountService_Register_FullMethodName, in, opts)
}

func (c *accountServiceClient) ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*ResetPasswordResponse, error) {
	return invoke[ResetPasswordResponse](ctx, c.cc, AccountService_ResetPassword_FullMethodName, in, opts)
}

func (c *accountServiceClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, AccountService_ListUsers_FullMethodName, in, opts)
}

func (c *accountServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, AccountService_Ping_FullMethodName, in, opts)
}
