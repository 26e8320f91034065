package th

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

var Ctx = context.Background()
var StreamTimout = 500 * time.Millisecond

func CheckErr(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%v returned an error: %v", msg, err)
	}
}

func Dial(lis *bufconn.Listener, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)
	return grpc.DialContext(Ctx, "test", opts...)
}

// Serve starts an in memory grpc server with the services added by register, and returns a connection to it.
// The server and connection are stopped when t completes.
func Serve(t *testing.T, register func(s grpc.ServiceRegistrar), opts ...grpc.DialOption) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	register(server)
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	conn, err := Dial(lis, opts...)
	CheckErr(t, err, "Dial")
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}
