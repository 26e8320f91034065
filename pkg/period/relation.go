package period

import "time"

// Contains reports whether the instant t is part of i, honouring i's bounds.
func (i Interval) Contains(t time.Time) bool {
	return i.lowerCut().compareInstant(t) < 0 && i.upperCut().compareInstant(t) > 0
}

// ContainsInterval reports whether every instant of o is part of i.
// A zero length o is contained when its single instant is, whatever o's own bounds say.
func (i Interval) ContainsInterval(o Interval) bool {
	if o.start.Equal(o.end) {
		return i.Contains(o.start)
	}
	return i.lowerCut().CompareTo(o.lowerCut()) <= 0 &&
		o.upperCut().CompareTo(i.upperCut()) <= 0
}

// Overlaps reports whether i and o share at least one instant.
// An empty interval overlaps nothing.
//
// For example
//  * `[2, 4)` and `[3, 5)` overlap
//  * `[2, 4)` and `[4, 6)` do not overlap, they abut
//  * `[2, 4]` and `[4, 6)` overlap on 4
func (i Interval) Overlaps(o Interval) bool {
	if i.IsEmpty() || o.IsEmpty() {
		return false
	}
	return i.lowerCut().CompareTo(o.upperCut()) < 0 &&
		o.lowerCut().CompareTo(i.upperCut()) < 0
}

// BordersOnStart reports whether i ends exactly where o starts, with exactly one of them holding the shared instant.
func (i Interval) BordersOnStart(o Interval) bool {
	if i.IsEmpty() || o.IsEmpty() {
		return false
	}
	return i.upperCut().CompareTo(o.lowerCut()) == 0
}

// BordersOnEnd reports whether i starts exactly where o ends, with exactly one of them holding the shared instant.
func (i Interval) BordersOnEnd(o Interval) bool {
	return o.BordersOnStart(i)
}

// Abuts reports whether i and o touch without overlapping or leaving a gap.
func (i Interval) Abuts(o Interval) bool {
	return i.BordersOnStart(o) || i.BordersOnEnd(o)
}

// IsBefore reports whether every instant of i comes before every instant of o.
// Abutting intervals are ordered, intervals sharing an instant are not.
func (i Interval) IsBefore(o Interval) bool {
	return i.upperCut().CompareTo(o.lowerCut()) <= 0
}

// IsAfter reports whether every instant of i comes after every instant of o.
func (i Interval) IsAfter(o Interval) bool {
	return o.IsBefore(i)
}

// IsBeforeTime reports whether every instant of i comes before t.
func (i Interval) IsBeforeTime(t time.Time) bool {
	return i.upperCut().compareInstant(t) < 0
}

// IsAfterTime reports whether every instant of i comes after t.
func (i Interval) IsAfterTime(t time.Time) bool {
	return i.lowerCut().compareInstant(t) > 0
}

// IsStartedBy reports whether t is the start of i and i includes it.
func (i Interval) IsStartedBy(t time.Time) bool {
	return i.bounds.IncludesStart() && i.start.Equal(t)
}

// IsEndedBy reports whether t is the end of i and i includes it.
func (i Interval) IsEndedBy(t time.Time) bool {
	return i.bounds.IncludesEnd() && i.end.Equal(t)
}

// IsConnected reports whether there is a possibly empty interval enclosed by both i and o.
//
// For example
//  * `[2, 4)` and `[5, 7)` are not connected
//  * `[2, 4)` and `[3, 5)` are connected, because both enclose `[3, 4)`
//  * `[2, 4)` and `[4, 6)` are connected, because both enclose the empty period `[4, 4)`
func (i Interval) IsConnected(o Interval) bool {
	return i.lowerCut().CompareTo(o.upperCut()) <= 0 &&
		o.lowerCut().CompareTo(i.upperCut()) <= 0
}

// DurationCompare returns -1, 0 or 1 when i lasts less, as long as or longer than o.
// Only elapsed time counts, not position or bounds.
func (i Interval) DurationCompare(o Interval) int {
	a, b := i.TimeDuration(), o.TimeDuration()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (i Interval) DurationEquals(o Interval) bool {
	return i.DurationCompare(o) == 0
}

func (i Interval) DurationGreaterThan(o Interval) bool {
	return i.DurationCompare(o) > 0
}

func (i Interval) DurationLessThan(o Interval) bool {
	return i.DurationCompare(o) < 0
}
