package client

import (
	"context"
	"time"

	grpc_retry "github.com/grpc-ecosystem/go-grpc-middleware/retry"
	"github.com/smart-core-os/sc-api/go/traits"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/smart-core-os/sc-period/pkg/period"
	timepb "github.com/smart-core-os/sc-period/pkg/time"
)

// Client queries the bookings of a remote BookingApi, retrying calls that fail with a transient error.
type Client struct {
	conn        grpc.ClientConnInterface
	bookings    traits.BookingApiClient
	retryPolicy []grpc.CallOption
	logger      *zap.Logger
}

// NewClient creates a Client using conn.
// Retries only happen if conn was dialled with the grpc_retry unary interceptor, as Dial does.
func NewClient(conn grpc.ClientConnInterface, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		conn:     conn,
		bookings: traits.NewBookingApiClient(conn),
		retryPolicy: []grpc.CallOption{
			grpc_retry.WithMax(5),
			grpc_retry.WithPerRetryTimeout(2 * time.Second),
			grpc_retry.WithBackoff(grpc_retry.BackoffExponentialWithJitter(100*time.Millisecond, 0.01)),
		},
		logger: logger,
	}
}

// Dial connects to the server at target and returns a Client for it.
// Use AuthCredentials.DialOptions to secure the connection.
func Dial(ctx context.Context, target string, logger *zap.Logger, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithUnaryInterceptor(grpc_retry.UnaryClientInterceptor())}, opts...)
	conn, err := grpc.DialContext(ctx, target, opts...)
	if err != nil {
		return nil, err
	}
	return NewClient(conn, logger), nil
}

// Shutdown this connection to the client
func (c *Client) Shutdown() error {
	if closer, ok := c.conn.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// Bookings returns the bookings of the named device whose booked period intersects window.
// A nil window returns every booking.
func (c *Client) Bookings(ctx context.Context, name string, window *period.Interval) ([]*traits.Booking, error) {
	request := &traits.ListBookingsRequest{Name: name}
	if window != nil {
		request.BookingIntersects = timepb.PeriodFromInterval(*window)
	}
	resp, err := c.bookings.ListBookings(ctx, request, c.retryPolicy...)
	if err != nil {
		c.logger.Debug("ListBookings failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return resp.Bookings, nil
}

// FreeSlots returns the parts of window not booked on the named device, in chronological order.
func (c *Client) FreeSlots(ctx context.Context, name string, window period.Interval) (*period.Sequence, error) {
	bookings, err := c.Bookings(ctx, name, &window)
	if err != nil {
		return nil, err
	}
	booked := period.NewSequence()
	for _, booking := range bookings {
		i, err := timepb.IntervalFromPeriod(booking.Booked)
		if err != nil {
			c.logger.Warn("ignoring booking with an invalid booked period", zap.String("id", booking.Id), zap.Error(err))
			continue
		}
		booked.Push(i)
	}
	return period.NewSequence(window).Subtract(booked.Unions()).Filter(func(i period.Interval) bool {
		return !i.IsEmpty()
	}), nil
}
