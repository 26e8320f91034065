package booking

import (
	"context"
	"time"

	"github.com/smart-core-os/sc-api/go/traits"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ModelServer exposes a Model as a traits.BookingApiServer.
type ModelServer struct {
	traits.UnimplementedBookingApiServer

	model *Model
}

func NewModelServer(model *Model) *ModelServer {
	return &ModelServer{model: model}
}

func (m *ModelServer) Unwrap() any {
	return m.model
}

func (m *ModelServer) Register(server grpc.ServiceRegistrar) {
	traits.RegisterBookingApiServer(server, m)
}

func (m *ModelServer) ListBookings(_ context.Context, request *traits.ListBookingsRequest) (*traits.ListBookingsResponse, error) {
	bookings, err := m.model.ListBookings(
		WithBookingIntersects(request.BookingIntersects),
		WithReadMask(request.ReadMask),
	)
	if err != nil {
		return nil, err
	}
	return &traits.ListBookingsResponse{Bookings: bookings}, nil
}

func (m *ModelServer) CheckInBooking(_ context.Context, request *traits.CheckInBookingRequest) (*traits.CheckInBookingResponse, error) {
	if _, err := m.model.CheckIn(request.BookingId, asTime(request.Time)); err != nil {
		return nil, err
	}
	return &traits.CheckInBookingResponse{}, nil
}

func (m *ModelServer) CheckOutBooking(_ context.Context, request *traits.CheckOutBookingRequest) (*traits.CheckOutBookingResponse, error) {
	if _, err := m.model.CheckOut(request.BookingId, asTime(request.Time)); err != nil {
		return nil, err
	}
	return &traits.CheckOutBookingResponse{}, nil
}

func (m *ModelServer) CreateBooking(_ context.Context, request *traits.CreateBookingRequest) (*traits.CreateBookingResponse, error) {
	booking, err := m.model.CreateBooking(request.GetBooking())
	if err != nil {
		return nil, err
	}
	return &traits.CreateBookingResponse{BookingId: booking.Id}, nil
}

func (m *ModelServer) UpdateBooking(_ context.Context, request *traits.UpdateBookingRequest) (*traits.UpdateBookingResponse, error) {
	booking, err := m.model.UpdateBooking(request.Booking, request.UpdateMask)
	if err != nil {
		return nil, err
	}
	return &traits.UpdateBookingResponse{Booking: booking}, nil
}

func (m *ModelServer) PullBookings(request *traits.ListBookingsRequest, server traits.BookingApi_PullBookingsServer) error {
	opts := []ReadOption{
		WithBookingIntersects(request.BookingIntersects),
		WithReadMask(request.ReadMask),
		WithUpdatesOnly(request.UpdatesOnly),
	}
	if err := computeReadRequest(opts...).validate(); err != nil {
		return err
	}

	for change := range m.model.PullBookings(server.Context(), opts...) {
		err := server.Send(&traits.PullBookingsResponse{Changes: []*traits.PullBookingsResponse_Change{
			{
				Name:       request.Name,
				ChangeTime: timestamppb.New(change.ChangeTime),
				Type:       change.ChangeType,
				OldValue:   change.OldValue,
				NewValue:   change.NewValue,
			},
		}})
		if err != nil {
			return err
		}
	}
	return nil
}

// asTime returns the zero time for a nil ts.
func asTime(ts *timestamppb.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.AsTime()
}
