package booking

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/smart-core-os/sc-api/go/traits"
	"github.com/smart-core-os/sc-api/go/types"
	scTime "github.com/smart-core-os/sc-api/go/types/time"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/smart-core-os/sc-period/internal/th"
	"github.com/smart-core-os/sc-period/pkg/period"
)

var t0 = time.Date(2022, time.May, 3, 0, 0, 0, 0, time.UTC)

func at(h int) time.Time {
	return t0.Add(time.Duration(h) * time.Hour)
}

func ts(h int) *timestamppb.Timestamp {
	return timestamppb.New(at(h))
}

func booked(start, end int) *scTime.Period {
	return &scTime.Period{StartTime: ts(start), EndTime: ts(end)}
}

func hours(t *testing.T, start, end int) period.Interval {
	t.Helper()
	i, err := period.New(at(start), at(end), period.IncludeStartExcludeEnd)
	if err != nil {
		t.Fatal(err)
	}
	return i
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

func assertCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	if got := status.Code(err); got != want {
		t.Fatalf("error = %v, want code %v", err, want)
	}
}

func assertBooking(t *testing.T, want, got *traits.Booking) {
	t.Helper()
	if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
		t.Errorf("booking (-want,+got)\n%s", diff)
	}
}

func TestModel_CreateBooking(t *testing.T) {
	m := NewModel(WithRNG(rand.New(rand.NewSource(1))))

	created, err := m.CreateBooking(&traits.Booking{Bookable: "room1", Title: "Standup", Booked: booked(9, 10)})
	th.CheckErr(t, err, "CreateBooking")
	if created.Id == "" {
		t.Fatalf("CreateBooking() did not generate an id")
	}
	got, err := m.GetBooking(created.Id)
	th.CheckErr(t, err, "GetBooking")
	assertBooking(t, &traits.Booking{Id: created.Id, Bookable: "room1", Title: "Standup", Booked: booked(9, 10)}, got)

	tests := []struct {
		name    string
		booking *traits.Booking
		code    codes.Code
	}{
		{name: "abutting", booking: &traits.Booking{Id: "a", Bookable: "room1", Booked: booked(10, 11)}, code: codes.OK},
		{name: "other bookable", booking: &traits.Booking{Id: "b", Bookable: "room2", Booked: booked(9, 10)}, code: codes.OK},
		{name: "open ended", booking: &traits.Booking{Id: "c", Bookable: "room3", Booked: &scTime.Period{StartTime: ts(20)}}, code: codes.OK},
		{name: "duplicate id", booking: &traits.Booking{Id: "a", Bookable: "room4", Booked: booked(1, 2)}, code: codes.AlreadyExists},
		{name: "overlap", booking: &traits.Booking{Bookable: "room1", Booked: booked(8, 10)}, code: codes.FailedPrecondition},
		{name: "overlap open ended", booking: &traits.Booking{Bookable: "room3", Booked: booked(30, 31)}, code: codes.FailedPrecondition},
		{name: "enclosed", booking: &traits.Booking{Bookable: "room1", Booked: &scTime.Period{StartTime: ts(9), EndTime: timestamppb.New(at(9).Add(time.Minute))}}, code: codes.FailedPrecondition},
		{name: "nil", booking: nil, code: codes.InvalidArgument},
		{name: "missing booked", booking: &traits.Booking{Bookable: "room1"}, code: codes.InvalidArgument},
		{name: "end before start", booking: &traits.Booking{Bookable: "room5", Booked: booked(2, 1)}, code: codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.CreateBooking(tt.booking)
			assertCode(t, err, tt.code)
		})
	}
}

func TestModel_CreateBooking_CopiesInput(t *testing.T) {
	m := NewModel()
	in := &traits.Booking{Id: "a", Bookable: "room1", Title: "Before", Booked: booked(1, 2)}
	_, err := m.CreateBooking(in)
	th.CheckErr(t, err, "CreateBooking")
	in.Title = "After"
	got, err := m.GetBooking("a")
	th.CheckErr(t, err, "GetBooking")
	if got.Title != "Before" {
		t.Errorf("stored booking changed with its input, title = %q", got.Title)
	}
}

func TestModel_UpdateBooking(t *testing.T) {
	newModel := func() *Model {
		return NewModel(WithInitialBooking(
			&traits.Booking{Id: "a", Bookable: "room1", Title: "Standup", Booked: booked(9, 10)},
			&traits.Booking{Id: "b", Bookable: "room1", Title: "Retro", Booked: booked(11, 12)},
		))
	}
	tests := []struct {
		name    string
		booking *traits.Booking
		mask    []string
		want    *traits.Booking
		code    codes.Code
	}{
		{
			name:    "title only",
			booking: &traits.Booking{Id: "a", Title: "Planning", Bookable: "ignored"},
			mask:    []string{"title"},
			want:    &traits.Booking{Id: "a", Bookable: "room1", Title: "Planning", Booked: booked(9, 10)},
		},
		{
			name:    "move",
			booking: &traits.Booking{Id: "a", Booked: booked(10, 11)},
			mask:    []string{"booked"},
			want:    &traits.Booking{Id: "a", Bookable: "room1", Title: "Standup", Booked: booked(10, 11)},
		},
		{
			name:    "extend end",
			booking: &traits.Booking{Id: "a", Booked: &scTime.Period{EndTime: ts(11)}},
			mask:    []string{"booked.end_time"},
			want:    &traits.Booking{Id: "a", Bookable: "room1", Title: "Standup", Booked: booked(9, 11)},
		},
		{
			name:    "replace",
			booking: &traits.Booking{Id: "a", Bookable: "room2", Booked: booked(11, 12)},
			want:    &traits.Booking{Id: "a", Bookable: "room2", Booked: booked(11, 12)},
		},
		{name: "move into overlap", booking: &traits.Booking{Id: "a", Booked: booked(10, 12)}, mask: []string{"booked"}, code: codes.FailedPrecondition},
		{name: "clear booked", booking: &traits.Booking{Id: "a"}, mask: []string{"booked"}, code: codes.InvalidArgument},
		{name: "unknown field", booking: &traits.Booking{Id: "a"}, mask: []string{"nope"}, code: codes.InvalidArgument},
		{name: "missing id", booking: &traits.Booking{Title: "x"}, mask: []string{"title"}, code: codes.InvalidArgument},
		{name: "not found", booking: &traits.Booking{Id: "z", Title: "x"}, mask: []string{"title"}, code: codes.NotFound},
		{name: "nil", booking: nil, code: codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel()
			var mask *fieldmaskpb.FieldMask
			if tt.mask != nil {
				mask = &fieldmaskpb.FieldMask{Paths: tt.mask}
			}
			got, err := m.UpdateBooking(tt.booking, mask)
			assertCode(t, err, tt.code)
			if tt.code != codes.OK {
				return
			}
			assertBooking(t, tt.want, got)
			stored, err := m.GetBooking(tt.want.Id)
			th.CheckErr(t, err, "GetBooking")
			assertBooking(t, tt.want, stored)
		})
	}
}

func TestModel_CheckInOut(t *testing.T) {
	m := NewModel(
		WithClock(fixedClock(at(9).Add(5*time.Minute))),
		WithInitialBooking(&traits.Booking{Id: "a", Bookable: "room1", Booked: booked(9, 10)}),
	)

	checkedIn := timestamppb.New(at(9).Add(5 * time.Minute))
	got, err := m.CheckIn("a", time.Time{})
	th.CheckErr(t, err, "CheckIn")
	assertBooking(t, &traits.Booking{Id: "a", Bookable: "room1", Booked: booked(9, 10), CheckIn: &scTime.Period{StartTime: checkedIn}}, got)

	got, err = m.CheckOut("a", at(10))
	th.CheckErr(t, err, "CheckOut")
	want := &scTime.Period{StartTime: checkedIn, EndTime: ts(10)}
	if diff := cmp.Diff(want, got.CheckIn, protocmp.Transform()); diff != "" {
		t.Errorf("CheckIn (-want,+got)\n%s", diff)
	}

	_, err = m.CheckIn("z", time.Time{})
	assertCode(t, err, codes.NotFound)
}

func TestModel_ListBookings(t *testing.T) {
	m := NewModel(WithInitialBooking(
		&traits.Booking{Id: "c", Bookable: "room1", Title: "C", Booked: booked(13, 14)},
		&traits.Booking{Id: "a", Bookable: "room1", Title: "A", Booked: booked(9, 10)},
		&traits.Booking{Id: "b", Bookable: "room2", Title: "B", Booked: booked(9, 12)},
	))
	tests := []struct {
		name string
		opts []ReadOption
		want []string
	}{
		{name: "all", want: []string{"a", "b", "c"}},
		{name: "bookable", opts: []ReadOption{WithBookable("room1")}, want: []string{"a", "c"}},
		{name: "window", opts: []ReadOption{WithBookingIntersects(booked(10, 13))}, want: []string{"b"}},
		{name: "window and bookable", opts: []ReadOption{WithBookingIntersects(booked(9, 14)), WithBookable("room1")}, want: []string{"a", "c"}},
		{name: "open window", opts: []ReadOption{WithBookingIntersects(&scTime.Period{StartTime: ts(11)})}, want: []string{"b", "c"}},
		{name: "empty window", opts: []ReadOption{WithBookingIntersects(booked(9, 9))}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ListBookings(tt.opts...)
			th.CheckErr(t, err, "ListBookings")
			var ids []string
			for _, b := range got {
				ids = append(ids, b.Id)
			}
			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Errorf("ListBookings() ids (-want,+got)\n%s", diff)
			}
		})
	}

	masked, err := m.ListBookings(WithBookable("room2"), WithReadMask(&fieldmaskpb.FieldMask{Paths: []string{"id", "title"}}))
	th.CheckErr(t, err, "ListBookings")
	if diff := cmp.Diff([]*traits.Booking{{Id: "b", Title: "B"}}, masked, protocmp.Transform()); diff != "" {
		t.Errorf("ListBookings() with read mask (-want,+got)\n%s", diff)
	}

	_, err = m.ListBookings(WithReadMask(&fieldmaskpb.FieldMask{Paths: []string{"nope"}}))
	assertCode(t, err, codes.InvalidArgument)
}

func TestModel_FreeSlots(t *testing.T) {
	m := NewModel(WithInitialBooking(
		&traits.Booking{Id: "a", Bookable: "room1", Booked: booked(1, 2)},
		&traits.Booking{Id: "b", Bookable: "room1", Booked: booked(4, 5)},
		&traits.Booking{Id: "c", Bookable: "room2", Booked: booked(2, 3)},
	))
	tests := []struct {
		name   string
		window period.Interval
		want   *period.Sequence
	}{
		{
			name:   "day",
			window: hours(t, 0, 8),
			want:   period.NewSequence(hours(t, 0, 1), hours(t, 2, 4), hours(t, 5, 8)),
		},
		{name: "inside a booking", window: hours(t, 4, 5), want: period.NewSequence()},
		{name: "between bookings", window: hours(t, 2, 4), want: period.NewSequence(hours(t, 2, 4))},
		{name: "empty window", window: hours(t, 3, 3), want: period.NewSequence()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.FreeSlots("room1", tt.window)
			if !got.Equal(tt.want) {
				t.Errorf("FreeSlots() = %v, want %v", got.Items(), tt.want.Items())
			}
		})
	}
}

func TestModel_Conflicts(t *testing.T) {
	m := NewModel(WithInitialBooking(
		&traits.Booking{Id: "a", Bookable: "room1", Booked: booked(1, 3)},
		&traits.Booking{Id: "b", Bookable: "room1", Booked: booked(2, 4)},
		&traits.Booking{Id: "c", Bookable: "room1", Booked: booked(4, 5)},
		&traits.Booking{Id: "d", Bookable: "room2", Booked: booked(1, 5)},
	))
	want := period.NewSequence(hours(t, 2, 3))
	if got := m.Conflicts("room1"); !got.Equal(want) {
		t.Errorf("Conflicts(room1) = %v, want %v", got.Items(), want.Items())
	}
	if got := m.Conflicts("room2"); !got.IsEmpty() {
		t.Errorf("Conflicts(room2) = %v, want none", got.Items())
	}
}

func recv(t *testing.T, changes <-chan BookingChange) BookingChange {
	t.Helper()
	select {
	case change, ok := <-changes:
		if !ok {
			t.Fatal("changes closed")
		}
		return change
	case <-time.After(th.StreamTimout):
		t.Fatal("timed out waiting for a change")
	}
	return BookingChange{}
}

func TestModel_PullBookings(t *testing.T) {
	m := NewModel(
		WithClock(fixedClock(t0)),
		WithInitialBooking(&traits.Booking{Id: "a", Bookable: "room1", Booked: booked(1, 2)}),
	)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	changes := m.PullBookings(ctx)

	change := recv(t, changes)
	if change.ChangeType != types.ChangeType_ADD || change.NewValue.GetId() != "a" {
		t.Fatalf("initial change = %v %v, want ADD a", change.ChangeType, change.NewValue)
	}

	_, err := m.CreateBooking(&traits.Booking{Id: "b", Bookable: "room1", Booked: booked(3, 4)})
	th.CheckErr(t, err, "CreateBooking")
	change = recv(t, changes)
	if change.ChangeType != types.ChangeType_ADD || change.NewValue.GetId() != "b" {
		t.Fatalf("create change = %v %v, want ADD b", change.ChangeType, change.NewValue)
	}
	if !change.ChangeTime.Equal(t0) {
		t.Errorf("ChangeTime = %v, want %v", change.ChangeTime, t0)
	}

	_, err = m.UpdateBooking(&traits.Booking{Id: "b", Title: "Retro"}, &fieldmaskpb.FieldMask{Paths: []string{"title"}})
	th.CheckErr(t, err, "UpdateBooking")
	change = recv(t, changes)
	if change.ChangeType != types.ChangeType_UPDATE {
		t.Fatalf("update change = %v, want UPDATE", change.ChangeType)
	}
	assertBooking(t, &traits.Booking{Id: "b", Bookable: "room1", Booked: booked(3, 4)}, change.OldValue)
	assertBooking(t, &traits.Booking{Id: "b", Bookable: "room1", Title: "Retro", Booked: booked(3, 4)}, change.NewValue)

	stop()
	select {
	case _, ok := <-changes:
		if ok {
			t.Errorf("received a change after the pull was stopped")
		}
	case <-time.After(th.StreamTimout):
		t.Errorf("changes not closed after the pull was stopped")
	}
}

func TestModel_PullBookings_ConcurrentCreates(t *testing.T) {
	const n = 50
	m := NewModel()
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	created := make(chan error, 1)
	go func() {
		for i := 0; i < n; i++ {
			_, err := m.CreateBooking(&traits.Booking{Id: fmt.Sprintf("b%02d", i), Bookable: "room1", Booked: booked(i, i+1)})
			if err != nil {
				created <- err
				return
			}
		}
		created <- nil
	}()
	changes := m.PullBookings(ctx)

	// every booking arrives once, either as an existing booking or as a create
	seen := make(map[string]int)
	for i := 0; i < n; i++ {
		change := recv(t, changes)
		if change.ChangeType != types.ChangeType_ADD {
			t.Fatalf("change = %v, want ADD", change.ChangeType)
		}
		seen[change.NewValue.GetId()]++
	}
	th.CheckErr(t, <-created, "CreateBooking")
	for id, count := range seen {
		if count != 1 {
			t.Errorf("booking %v sent %d times", id, count)
		}
	}
	if len(seen) != n {
		t.Errorf("saw %d bookings, want %d", len(seen), n)
	}
	select {
	case change := <-changes:
		t.Errorf("unexpected extra change %v %v", change.ChangeType, change.NewValue.GetId())
	case <-time.After(100 * time.Millisecond):
	}
}

func TestModel_PullBookings_Window(t *testing.T) {
	m := NewModel(WithInitialBooking(&traits.Booking{Id: "a", Bookable: "room1", Booked: booked(1, 2)}))
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	changes := m.PullBookings(ctx,
		WithBookingIntersects(booked(0, 3)),
		WithUpdatesOnly(true),
		WithReadMask(&fieldmaskpb.FieldMask{Paths: []string{"id"}}),
	)

	// moving out of the window removes the booking from the query
	_, err := m.UpdateBooking(&traits.Booking{Id: "a", Booked: booked(5, 6)}, &fieldmaskpb.FieldMask{Paths: []string{"booked"}})
	th.CheckErr(t, err, "UpdateBooking")
	change := recv(t, changes)
	if change.ChangeType != types.ChangeType_REMOVE || change.NewValue != nil {
		t.Fatalf("change = %v %v, want REMOVE", change.ChangeType, change.NewValue)
	}
	assertBooking(t, &traits.Booking{Id: "a"}, change.OldValue)

	// changes outside the window are not sent
	_, err = m.CreateBooking(&traits.Booking{Id: "b", Bookable: "room1", Booked: booked(7, 8)})
	th.CheckErr(t, err, "CreateBooking")
	_, err = m.CreateBooking(&traits.Booking{Id: "c", Bookable: "room1", Booked: booked(2, 3)})
	th.CheckErr(t, err, "CreateBooking")
	change = recv(t, changes)
	if change.ChangeType != types.ChangeType_ADD || change.NewValue.GetId() != "c" {
		t.Fatalf("change = %v %v, want ADD c", change.ChangeType, change.NewValue)
	}
}
