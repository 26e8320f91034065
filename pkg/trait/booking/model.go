package booking

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/olebedev/emitter"
	"github.com/smart-core-os/sc-api/go/traits"
	"github.com/smart-core-os/sc-api/go/types"
	scTime "github.com/smart-core-os/sc-api/go/types/time"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/smart-core-os/sc-period/pkg/period"
	timepb "github.com/smart-core-os/sc-period/pkg/time"
)

const changeTopic = "change"

// Model models the Booking trait.
// Bookings of the same bookable may not overlap, the booked period of a booking is treated as [start, end).
type Model struct {
	mu       sync.RWMutex
	bookings map[string]*traits.Booking
	// emits the "change" event with a single Arg of type BookingChange
	bus *emitter.Emitter

	clock  Clock
	rng    *rand.Rand // guarded by mu
	logger *zap.Logger
}

// NewModel creates a new Model with the bookings configured via WithInitialBooking.
func NewModel(opts ...Option) *Model {
	args := calcModelArgs(opts...)
	m := &Model{
		bookings: make(map[string]*traits.Booking),
		bus:      &emitter.Emitter{},
		clock:    args.clock,
		rng:      args.rng,
		logger:   args.logger,
	}
	for _, booking := range args.bookings {
		if _, exists := m.bookings[booking.Id]; exists {
			panic(fmt.Sprintf("duplicate booking id %v", booking.Id))
		}
		m.bookings[booking.Id] = proto.Clone(booking).(*traits.Booking)
	}
	return m
}

//goland:noinspection GoNameStartsWithPackageName
type BookingChange struct {
	ChangeTime time.Time
	ChangeType types.ChangeType

	OldValue, NewValue *traits.Booking
}

// GetBooking returns the booking with the given id.
func (m *Model) GetBooking(id string, opts ...ReadOption) (*traits.Booking, error) {
	req := computeReadRequest(opts...)
	if err := req.validate(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "booking id %v not found", id)
	}
	return req.filter(booking), nil
}

// ListBookings returns the bookings matching opts, ordered by id.
func (m *Model) ListBookings(opts ...ReadOption) ([]*traits.Booking, error) {
	req := computeReadRequest(opts...)
	if err := req.validate(); err != nil {
		return nil, err
	}
	var res []*traits.Booking
	m.mu.RLock()
	for _, booking := range m.bookings {
		if req.matches(booking) {
			res = append(res, req.filter(booking))
		}
	}
	m.mu.RUnlock()
	sort.Slice(res, func(i, j int) bool {
		return res[i].Id < res[j].Id
	})
	return res, nil
}

// CreateBooking adds a copy of booking to the model, generating an id if booking has none.
// The booked period must be set, and must not overlap another booking of the same bookable.
func (m *Model) CreateBooking(booking *traits.Booking) (*traits.Booking, error) {
	if booking == nil {
		return nil, status.Error(codes.InvalidArgument, "missing booking")
	}
	booked, err := bookedInterval(booking)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := booking.Id
	if id == "" {
		id, err = m.generateID()
		if err != nil {
			return nil, err
		}
	} else if _, exists := m.bookings[id]; exists {
		return nil, status.Errorf(codes.AlreadyExists, "booking %v", id)
	}
	if other, ok := m.overlapping(booking.Bookable, booked, id); ok {
		return nil, status.Errorf(codes.FailedPrecondition, "booking overlaps booking %v of %v", other, booking.Bookable)
	}

	newValue := proto.Clone(booking).(*traits.Booking)
	newValue.Id = id
	m.bookings[id] = newValue
	m.logger.Debug("booking created", zap.String("id", id), zap.String("bookable", newValue.Bookable), zap.Stringer("booked", booked))
	m.emit(BookingChange{ChangeType: types.ChangeType_ADD, NewValue: newValue})
	return proto.Clone(newValue).(*traits.Booking), nil
}

// UpdateBooking changes the booking with booking.Id, copying the fields named by updateMask from booking.
// A nil updateMask replaces the whole booking.
// The result must still have a booked period that does not overlap other bookings of its bookable.
func (m *Model) UpdateBooking(booking *traits.Booking, updateMask *fieldmaskpb.FieldMask) (*traits.Booking, error) {
	if booking == nil {
		return nil, status.Error(codes.InvalidArgument, "missing booking")
	}
	if booking.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "missing booking.id")
	}
	if updateMask != nil && !updateMask.IsValid(booking) {
		return nil, status.Error(codes.InvalidArgument, "update_mask mentions unknown fields")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	oldValue, ok := m.bookings[booking.Id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "booking id %v not found", booking.Id)
	}
	newValue := proto.Clone(oldValue).(*traits.Booking)
	mergeUpdate(newValue, proto.Clone(booking).(*traits.Booking), updateMask)
	newValue.Id = oldValue.Id

	booked, err := bookedInterval(newValue)
	if err != nil {
		return nil, err
	}
	if other, ok := m.overlapping(newValue.Bookable, booked, newValue.Id); ok {
		return nil, status.Errorf(codes.FailedPrecondition, "booking overlaps booking %v of %v", other, newValue.Bookable)
	}

	m.bookings[newValue.Id] = newValue
	m.logger.Debug("booking updated", zap.String("id", newValue.Id), zap.Strings("paths", updateMask.GetPaths()))
	m.emit(BookingChange{ChangeType: types.ChangeType_UPDATE, OldValue: oldValue, NewValue: newValue})
	return proto.Clone(newValue).(*traits.Booking), nil
}

var (
	checkInMask  = &fieldmaskpb.FieldMask{Paths: []string{"check_in.start_time"}}
	checkOutMask = &fieldmaskpb.FieldMask{Paths: []string{"check_in.end_time"}}
)

// CheckIn records t as the check in time of the booking with the given id.
// A zero t means now, according to the models Clock.
func (m *Model) CheckIn(id string, t time.Time) (*traits.Booking, error) {
	checkIn := &scTime.Period{StartTime: m.timestamp(t)}
	return m.UpdateBooking(&traits.Booking{Id: id, CheckIn: checkIn}, checkInMask)
}

// CheckOut records t as the check out time of the booking with the given id.
// A zero t means now, according to the models Clock.
func (m *Model) CheckOut(id string, t time.Time) (*traits.Booking, error) {
	checkIn := &scTime.Period{EndTime: m.timestamp(t)}
	return m.UpdateBooking(&traits.Booking{Id: id, CheckIn: checkIn}, checkOutMask)
}

func (m *Model) timestamp(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		t = m.clock.Now()
	}
	return timestamppb.New(t)
}

// PullBookings emits changes to bookings matching opts until ctx is done.
// Unless WithUpdatesOnly(true) is given the bookings that already match are sent first as additions.
// The returned chan is closed when ctx is done.
func (m *Model) PullBookings(ctx context.Context, opts ...ReadOption) <-chan BookingChange {
	req := computeReadRequest(opts...)
	send := make(chan BookingChange)

	// changes are emitted with mu held, so every change is either in initial or sent to events, never both
	var initial []*traits.Booking
	m.mu.RLock()
	events := m.bus.On(changeTopic)
	if !req.updatesOnly {
		for _, booking := range m.bookings {
			if req.matches(booking) {
				initial = append(initial, booking)
			}
		}
	}
	m.mu.RUnlock()
	sort.Slice(initial, func(i, j int) bool {
		return initial[i].Id < initial[j].Id
	})

	go func() {
		defer close(send)
		defer m.bus.Off(changeTopic, events)

		now := m.clock.Now()
		for _, booking := range initial {
			change := BookingChange{ChangeTime: now, ChangeType: types.ChangeType_ADD, NewValue: req.filter(booking)}
			select {
			case <-ctx.Done():
				return
			case send <- change:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				change, ok := req.changeForQuery(event.Args[0].(BookingChange))
				if !ok {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case send <- change:
				}
			}
		}
	}()

	return send
}

// FreeSlots returns the parts of window not booked for the named bookable, in chronological order.
func (m *Model) FreeSlots(bookable string, window period.Interval) *period.Sequence {
	m.mu.RLock()
	booked := m.bookedSequence(bookable)
	m.mu.RUnlock()
	return period.NewSequence(window).Subtract(booked).Filter(func(i period.Interval) bool {
		return !i.IsEmpty()
	})
}

// Conflicts returns the periods booked more than once for the named bookable.
// Only initial bookings can conflict, changes that would cause a conflict are rejected.
func (m *Model) Conflicts(bookable string) *period.Sequence {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookedSequence(bookable).Intersections()
}

// emit publishes change to all pulls. Must be called with mu held.
func (m *Model) emit(change BookingChange) {
	change.ChangeTime = m.clock.Now()
	m.bus.Emit(changeTopic, change)
}

// bookedSequence returns the booked intervals of the named bookable. Must be called with mu held.
func (m *Model) bookedSequence(bookable string) *period.Sequence {
	res := period.NewSequence()
	for _, booking := range m.bookings {
		if booking.Bookable != bookable {
			continue
		}
		if booked, err := timepb.IntervalFromPeriod(booking.Booked); err == nil {
			res.Push(booked)
		}
	}
	res.Sort(nil)
	return res
}

// overlapping finds a booking of bookable, other than the one with the given id, that overlaps booked.
// Must be called with mu held.
func (m *Model) overlapping(bookable string, booked period.Interval, id string) (string, bool) {
	for otherID, other := range m.bookings {
		if otherID == id || other.Bookable != bookable {
			continue
		}
		otherBooked, err := timepb.IntervalFromPeriod(other.Booked)
		if err != nil {
			continue
		}
		if otherBooked.Overlaps(booked) {
			return otherID, true
		}
	}
	return "", false
}

// generateID attempts to find a unique id using rng.
// This will attempt a few times before giving up and returning an error. Must be called with mu held.
func (m *Model) generateID() (string, error) {
	tries := 10
	for i := 0; i < tries; i++ {
		candidate := strconv.Itoa(m.rng.Int())
		if _, exists := m.bookings[candidate]; !exists {
			return candidate, nil
		}
	}
	return "", status.Errorf(codes.Aborted, "id generation attempts exhausted after %v attempts", tries)
}

func bookedInterval(booking *traits.Booking) (period.Interval, error) {
	if booking.Booked == nil {
		return period.Interval{}, status.Error(codes.InvalidArgument, "missing booking.booked")
	}
	booked, err := timepb.IntervalFromPeriod(booking.Booked)
	if err != nil {
		return period.Interval{}, status.Errorf(codes.InvalidArgument, "booking.booked: %v", err)
	}
	return booked, nil
}
