package period

import (
	"encoding/json"
	"fmt"
	"time"
)

// iso8601Layout is the UTC layout used by Interval.ToIso8601.
const iso8601Layout = "2006-01-02T15:04:05.000000Z"

// Interval is a span of time between two instants, with a BoundaryType saying whether each endpoint is part of it.
// Start is never after End.
//
// Intervals are values, compare them with Equal rather than ==, which also compares time.Location pointers.
type Interval struct {
	start, end time.Time
	bounds     BoundaryType
}

// New returns the Interval from start to end.
// It fails with ErrDatepointMismatch if end is before start.
func New(start, end time.Time, bounds BoundaryType) (Interval, error) {
	if !bounds.valid() {
		return Interval{}, invalidBoundaryType(fmt.Sprintf("%d", uint8(bounds)))
	}
	if end.Before(start) {
		return Interval{}, mismatch("new")
	}
	return Interval{start: start, end: end, bounds: bounds}, nil
}

// FromUnorderedPair returns the Interval between a and b, whichever comes first.
// Unlike every other constructor this never fails, the instants are swapped if needed
// and bits of bounds outside the four boundary types are ignored.
func FromUnorderedPair(a, b time.Time, bounds BoundaryType) Interval {
	if b.Before(a) {
		a, b = b, a
	}
	return Interval{start: a, end: b, bounds: bounds.known()}
}

// After returns the Interval starting at start and lasting d.
func After(start time.Time, d Duration, bounds BoundaryType) (Interval, error) {
	return New(start, d.AddTo(start), bounds)
}

// Before returns the Interval lasting d and ending at end.
func Before(end time.Time, d Duration, bounds BoundaryType) (Interval, error) {
	return New(d.SubFrom(end), end, bounds)
}

// Around returns the Interval reaching d either side of mid.
func Around(mid time.Time, d Duration, bounds BoundaryType) (Interval, error) {
	return New(d.SubFrom(mid), d.AddTo(mid), bounds)
}

func (i Interval) Start() time.Time {
	return i.start
}

func (i Interval) End() time.Time {
	return i.end
}

func (i Interval) Bounds() BoundaryType {
	return i.bounds
}

// TimeDuration returns the real time elapsed between start and end.
func (i Interval) TimeDuration() time.Duration {
	return i.end.Sub(i.start)
}

// Duration returns the calendar breakdown of the time between start and end, as seen from start.
func (i Interval) Duration() Duration {
	return calendarDiff(i.start, i.end)
}

// IsEmpty reports whether i contains no instant at all, for example [t, t) or (t, t).
func (i Interval) IsEmpty() bool {
	return i.lowerCut().CompareTo(i.upperCut()) >= 0
}

// Equal reports whether i and o have the same start, end and bounds.
func (i Interval) Equal(o Interval) bool {
	return i.bounds == o.bounds && i.start.Equal(o.start) && i.end.Equal(o.end)
}

// String returns i in bracket notation, like [2012-01-01T00:00:00Z, 2012-02-01T00:00:00Z).
func (i Interval) String() string {
	return fmt.Sprintf("%s%s, %s%s",
		i.bounds.startBracket(), i.start.Format(time.RFC3339Nano),
		i.end.Format(time.RFC3339Nano), i.bounds.endBracket())
}

// ToIso8601 returns i as an ISO 8601 time interval, start/end, in UTC.
// The bounds are not part of the notation.
func (i Interval) ToIso8601() string {
	return i.start.UTC().Format(iso8601Layout) + "/" + i.end.UTC().Format(iso8601Layout)
}

type intervalJSON struct {
	StartDate    time.Time    `json:"startDate"`
	EndDate      time.Time    `json:"endDate"`
	BoundaryType BoundaryType `json:"boundaryType"`
}

func (i Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalJSON{StartDate: i.start, EndDate: i.end, BoundaryType: i.bounds})
}

func (i *Interval) UnmarshalJSON(data []byte) error {
	var raw intervalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := New(raw.StartDate, raw.EndDate, raw.BoundaryType)
	if err != nil {
		return err
	}
	*i = v
	return nil
}
