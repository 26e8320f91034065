package client

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

type AuthCredentials struct {
	Creds credentials.TransportCredentials
	Token string
}

// DialOptions returns the options that secure a connection with a.
// The Token, if any, is sent as a bearer token with every call.
func (a AuthCredentials) DialOptions() []grpc.DialOption {
	var opts []grpc.DialOption
	if a.Creds != nil {
		opts = append(opts, grpc.WithTransportCredentials(a.Creds))
	}
	if a.Token != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(bearerToken{token: a.Token, secure: a.Creds != nil}))
	}
	return opts
}

type bearerToken struct {
	token  string
	secure bool
}

func (b bearerToken) GetRequestMetadata(_ context.Context, _ ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + b.token}, nil
}

func (b bearerToken) RequireTransportSecurity() bool {
	return b.secure
}
