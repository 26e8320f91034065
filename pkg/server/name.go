package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// DefaultNameUnaryInterceptor sets the name field of requests that leave it empty to name.
// An absent name refers to the device the server represents.
func DefaultNameUnaryInterceptor(name string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		setDefaultName(req, name)
		return handler(ctx, req)
	}
}

// DefaultNameStreamInterceptor is like DefaultNameUnaryInterceptor for every message a stream receives.
func DefaultNameStreamInterceptor(name string) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		return handler(srv, &defaultNameServerStream{ServerStream: ss, name: name})
	}
}

// setDefaultName reports whether req had its name set.
func setDefaultName(req interface{}, name string) bool {
	msg, ok := req.(proto.Message)
	if !ok {
		return false
	}
	m := msg.ProtoReflect()
	field := m.Descriptor().Fields().ByName("name")
	if field == nil || field.Kind() != protoreflect.StringKind || field.IsList() {
		return false
	}
	if m.Get(field).String() != "" {
		return false
	}
	m.Set(field, protoreflect.ValueOfString(name))
	return true
}

type defaultNameServerStream struct {
	grpc.ServerStream
	name string
}

func (s *defaultNameServerStream) RecvMsg(m interface{}) error {
	if err := s.ServerStream.RecvMsg(m); err != nil {
		return err
	}
	setDefaultName(m, s.name)
	return nil
}
