package time

import (
	"errors"
	"fmt"
	goTime "time"

	"github.com/smart-core-os/sc-api/go/types/time"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/smart-core-os/sc-period/pkg/period"
)

// ErrNilPeriod is returned when converting an absent Period.
var ErrNilPeriod = errors.New("nil period")

// The range of instants a timestamppb.Timestamp can represent, 0001-01-01T00:00:00Z to
// 9999-12-31T23:59:59.999999999Z. Absent start and end times of a Period stand for these.
var (
	minTime = goTime.Unix(-62135596800, 0).UTC()
	maxTime = goTime.Unix(253402300799, 999999999).UTC()
)

// IntervalFromPeriod returns the period.Interval covering the same instants as p.
// Periods are always [start, end), a nil start or end is replaced by the earliest or latest valid timestamp.
func IntervalFromPeriod(p *time.Period) (period.Interval, error) {
	if p == nil {
		return period.Interval{}, ErrNilPeriod
	}
	start, end := minTime, maxTime
	if p.StartTime != nil {
		if err := p.StartTime.CheckValid(); err != nil {
			return period.Interval{}, fmt.Errorf("start_time: %w", err)
		}
		start = p.StartTime.AsTime()
	}
	if p.EndTime != nil {
		if err := p.EndTime.CheckValid(); err != nil {
			return period.Interval{}, fmt.Errorf("end_time: %w", err)
		}
		end = p.EndTime.AsTime()
	}
	return period.New(start, end, period.IncludeStartExcludeEnd)
}

// PeriodFromInterval returns the Period covering the same instants as i.
// Bounds other than [start, end) are moved by a nanosecond, the resolution of a timestamp.
// Endpoints at or beyond the range of a timestamp are left unset.
func PeriodFromInterval(i period.Interval) *time.Period {
	start, end := i.Start(), i.End()
	if i.Bounds().ExcludesStart() {
		start = start.Add(goTime.Nanosecond)
	}
	if i.Bounds().IncludesEnd() {
		end = end.Add(goTime.Nanosecond)
	}
	p := &time.Period{}
	if start.After(minTime) {
		p.StartTime = timestamppb.New(start)
	}
	if end.Before(maxTime) {
		p.EndTime = timestamppb.New(end)
	}
	return p
}

// PeriodsConnected returns true if there exists a (possibly empty) Period that is enclosed by both p1 and p2
//
// For example
//  * `[2, 4)` and `[5, 7)` are not connected
//  * `[2, 4)` and `[3, 5)` are connected, because both enclose `[3, 4)`
//  * `[2, 4)` and `[4, 6)` are connected, because both enclose the empty period `[4, 4)`
func PeriodsConnected(p1, p2 *time.Period) bool {
	i1, i2, ok := intervals(p1, p2)
	return ok && i1.IsConnected(i2)
}

// PeriodsIntersect returns true if there exists a non-empty Period that is enclosed by both p1 and p2
//
// For example
//  * `[2, 4)` and `[5, 7)` do not intersect
//  * `[2, 4)` and `[3, 5)` intersect, because both enclose `[3, 4)` which is non-empty
//  * `[2, 4)` and `[4, 6)` do not intersect, because both enclose the empty period `[4, 4)`
func PeriodsIntersect(p1, p2 *time.Period) bool {
	i1, i2, ok := intervals(p1, p2)
	return ok && i1.Overlaps(i2)
}

// intervals converts both periods, ok is false if either is nil or invalid.
func intervals(p1, p2 *time.Period) (i1, i2 period.Interval, ok bool) {
	var err error
	if i1, err = IntervalFromPeriod(p1); err != nil {
		return i1, i2, false
	}
	if i2, err = IntervalFromPeriod(p2); err != nil {
		return i1, i2, false
	}
	return i1, i2, true
}

func AllTime() *time.Period {
	return &time.Period{}
}

func PeriodBetween(t1, t2 *timestamppb.Timestamp) *time.Period {
	return &time.Period{StartTime: t1, EndTime: t2}
}

func PeriodBefore(t *timestamppb.Timestamp) *time.Period {
	return &time.Period{EndTime: t}
}

func PeriodOnOrAfter(t *timestamppb.Timestamp) *time.Period {
	return &time.Period{StartTime: t}
}
