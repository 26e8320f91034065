package server

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// AuthProvider holds the transport credentials of a Server and logs each call it receives.
type AuthProvider struct {
	Creds  credentials.TransportCredentials
	logger *zap.Logger
}

func NewAuthProvider(creds credentials.TransportCredentials, logger *zap.Logger) *AuthProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthProvider{
		Creds:  creds,
		logger: logger,
	}
}

func (a *AuthProvider) UnaryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	a.logger.Debug("unary call", zap.String("method", info.FullMethod))
	return handler(ctx, req)
}

func (a *AuthProvider) StreamInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	a.logger.Debug("stream call", zap.String("method", info.FullMethod))
	return handler(srv, ss)
}

func (a *AuthProvider) serverOptions() []grpc.ServerOption {
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(a.UnaryInterceptor),
		grpc.ChainStreamInterceptor(a.StreamInterceptor),
	}
	if a.Creds != nil {
		opts = append(opts, grpc.Creds(a.Creds))
	}
	return opts
}
