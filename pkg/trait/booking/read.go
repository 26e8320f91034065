package booking

import (
	"github.com/mennanov/fmutils"
	"github.com/smart-core-os/sc-api/go/traits"
	"github.com/smart-core-os/sc-api/go/types"
	scTime "github.com/smart-core-os/sc-api/go/types/time"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/fieldmaskpb"

	timepb "github.com/smart-core-os/sc-period/pkg/time"
)

// ReadOption limits which bookings, and which of their fields, a read returns.
type ReadOption func(r *readRequest)

// WithBookingIntersects only returns bookings whose booked period intersects p.
// A nil p includes every booking.
func WithBookingIntersects(p *scTime.Period) ReadOption {
	return func(r *readRequest) {
		r.intersects = p
	}
}

// WithBookable only returns bookings of the named bookable.
func WithBookable(name string) ReadOption {
	return func(r *readRequest) {
		r.bookable = name
	}
}

// WithReadMask limits the fields of each returned booking.
// A nil mask returns every field.
func WithReadMask(mask *fieldmaskpb.FieldMask) ReadOption {
	return func(r *readRequest) {
		r.readMask = mask
	}
}

// WithUpdatesOnly, when true, stops Model.PullBookings from first sending the bookings that already exist.
func WithUpdatesOnly(updatesOnly bool) ReadOption {
	return func(r *readRequest) {
		r.updatesOnly = updatesOnly
	}
}

type readRequest struct {
	intersects  *scTime.Period
	bookable    string
	readMask    *fieldmaskpb.FieldMask
	updatesOnly bool
}

func computeReadRequest(opts ...ReadOption) *readRequest {
	r := &readRequest{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *readRequest) validate() error {
	if r.readMask != nil && !r.readMask.IsValid(&traits.Booking{}) {
		return status.Errorf(codes.InvalidArgument, "read_mask mentions unknown fields")
	}
	return nil
}

func (r *readRequest) matches(b *traits.Booking) bool {
	if b == nil {
		return false
	}
	if r.bookable != "" && b.Bookable != r.bookable {
		return false
	}
	if r.intersects != nil {
		return timepb.PeriodsIntersect(b.Booked, r.intersects)
	}
	return true
}

// filter returns a copy of b with only the fields named by the read mask.
// An empty, but not nil, mask clears every field.
func (r *readRequest) filter(b *traits.Booking) *traits.Booking {
	if b == nil {
		return nil
	}
	clone := proto.Clone(b).(*traits.Booking)
	if r.readMask == nil {
		return clone
	}
	if len(r.readMask.GetPaths()) == 0 {
		proto.Reset(clone)
		return clone
	}
	fmutils.Filter(clone, r.readMask.GetPaths())
	return clone
}

// changeForQuery converts the given change to be relative to the query.
//
// For example the change might represent an update, but that update changes the inclusion of the booking in the query
// so instead of ChangeType_UPDATE it would be ChangeType_ADD or REMOVE relative to the query being processed.
func (r *readRequest) changeForQuery(change BookingChange) (BookingChange, bool) {
	wasIncluded := r.matches(change.OldValue)
	isIncluded := r.matches(change.NewValue)

	switch {
	case wasIncluded && !isIncluded:
		change.ChangeType = types.ChangeType_REMOVE
		change.NewValue = nil
	case !wasIncluded && isIncluded:
		change.ChangeType = types.ChangeType_ADD
		change.OldValue = nil
	case !wasIncluded && !isIncluded:
		return change, false
	}
	change.OldValue = r.filter(change.OldValue)
	change.NewValue = r.filter(change.NewValue)
	return change, true
}

// mergeUpdate copies the fields of src named by mask into dst.
// A nil mask replaces dst with src. Fields named by mask but unset in src are cleared.
func mergeUpdate(dst, src *traits.Booking, mask *fieldmaskpb.FieldMask) {
	if mask == nil {
		proto.Reset(dst)
		proto.Merge(dst, src)
		return
	}
	applyMask(dst.ProtoReflect(), src.ProtoReflect(), fmutils.NestedMaskFromPaths(mask.GetPaths()))
}

func applyMask(dst, src protoreflect.Message, mask fmutils.NestedMask) {
	fields := dst.Descriptor().Fields()
	for name, sub := range mask {
		fd := fields.ByName(protoreflect.Name(name))
		if fd == nil {
			continue
		}
		switch {
		case !src.Has(fd):
			dst.Clear(fd)
		case len(sub) == 0 || fd.Kind() != protoreflect.MessageKind || fd.IsList() || fd.IsMap():
			dst.Set(fd, src.Get(fd))
		default:
			applyMask(dst.Mutable(fd).Message(), src.Get(fd).Message(), sub)
		}
	}
}
