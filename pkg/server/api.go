package server

import "google.golang.org/grpc"

// GrpcApi is implemented by anything that can add its services to a grpc server, like booking.ModelServer.
type GrpcApi interface {
	Register(server grpc.ServiceRegistrar)
}

type collection []GrpcApi

func (c collection) Register(server grpc.ServiceRegistrar) {
	for _, api := range c {
		api.Register(server)
	}
}

// Collection combines multiple GrpcApi instances into a single GrpcApi that all get registered at the same time.
func Collection(apis ...GrpcApi) GrpcApi {
	return collection(apis)
}
