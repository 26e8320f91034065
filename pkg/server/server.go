package server

import (
	"fmt"
	"net"
	"net/url"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server serves the apis of a single named device with health checks and reflection.
type Server struct {
	name         string
	grpcServer   *grpc.Server
	healthServer *health.Server
	logger       *zap.Logger
}

// NewServer creates a Server for the device called name.
// Requests that do not name a device are served as if they named this one.
func NewServer(name string, auth *AuthProvider, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if auth == nil {
		auth = NewAuthProvider(nil, logger)
	}
	opts := auth.serverOptions()
	if name != "" {
		opts = append(opts,
			grpc.ChainUnaryInterceptor(DefaultNameUnaryInterceptor(name)),
			grpc.ChainStreamInterceptor(DefaultNameStreamInterceptor(name)),
		)
	}
	grpcServer := grpc.NewServer(opts...)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return &Server{
		name:         name,
		grpcServer:   grpcServer,
		healthServer: healthServer,
		logger:       logger,
	}
}

// Register adds the services of each api. Call before Serve.
func (s *Server) Register(apis ...GrpcApi) {
	Collection(apis...).Register(s.grpcServer)
}

// Serve accepts connections on lis in the background.
// The returned chan receives the result of serving once the server stops.
func (s *Server) Serve(lis net.Listener) <-chan error {
	done := make(chan error, 1)
	s.logger.Info("server started", zap.String("name", s.name), zap.Stringer("address", lis.Addr()))
	go func() { done <- s.grpcServer.Serve(lis) }()
	return done
}

// Startup listens on address, for example tcp://localhost:23557, and serves connections on it.
func (s *Server) Startup(address *url.URL) (<-chan error, error) {
	lis, err := net.Listen(address.Scheme, address.Host)
	if err != nil {
		return nil, fmt.Errorf("listen %v: %w", address, err)
	}
	return s.Serve(lis), nil
}

func (s *Server) Shutdown() {
	s.logger.Debug("server shutting down")
	s.healthServer.Shutdown()
	s.grpcServer.GracefulStop()
}
