package period

import (
	"fmt"
	"time"
)

// StartingOn returns i starting at t instead.
func (i Interval) StartingOn(t time.Time) (Interval, error) {
	if t.Equal(i.start) {
		return i, nil
	}
	if i.end.Before(t) {
		return Interval{}, mismatch("starting on")
	}
	return Interval{start: t, end: i.end, bounds: i.bounds}, nil
}

// EndingOn returns i ending at t instead.
func (i Interval) EndingOn(t time.Time) (Interval, error) {
	if t.Equal(i.end) {
		return i, nil
	}
	if t.Before(i.start) {
		return Interval{}, mismatch("ending on")
	}
	return Interval{start: i.start, end: t, bounds: i.bounds}, nil
}

// WithBounds returns i with different bounds.
// Bits of b outside the four boundary types are ignored.
func (i Interval) WithBounds(b BoundaryType) Interval {
	i.bounds = b.known()
	return i
}

// Expand pushes the start of i back and its end forward by d.
// An inverted d shrinks i instead, failing if the ends would cross.
func (i Interval) Expand(d Duration) (Interval, error) {
	if d.IsZero() {
		return i, nil
	}
	return i.derive("expand", d.SubFrom(i.start), d.AddTo(i.end))
}

// Move moves both ends of i by d.
// Calendar components can move the ends by different amounts of real time, Move fails if they end up crossed.
func (i Interval) Move(d Duration) (Interval, error) {
	if d.IsZero() {
		return i, nil
	}
	return i.derive("move", d.AddTo(i.start), d.AddTo(i.end))
}

// MoveStartDate moves the start of i by d, keeping the end.
func (i Interval) MoveStartDate(d Duration) (Interval, error) {
	return i.derive("move start date", d.AddTo(i.start), i.end)
}

// MoveEndDate moves the end of i by d, keeping the start.
func (i Interval) MoveEndDate(d Duration) (Interval, error) {
	return i.derive("move end date", i.start, d.AddTo(i.end))
}

// WithDurationAfterStart keeps the start of i and ends d after it.
// An inverted d is rejected.
func (i Interval) WithDurationAfterStart(d Duration) (Interval, error) {
	if d.Invert {
		return Interval{}, mismatch("with duration after start")
	}
	return i.derive("with duration after start", i.start, d.AddTo(i.start))
}

// WithDurationBeforeEnd keeps the end of i and starts d before it.
// An inverted d is rejected.
func (i Interval) WithDurationBeforeEnd(d Duration) (Interval, error) {
	if d.Invert {
		return Interval{}, mismatch("with duration before end")
	}
	return i.derive("with duration before end", d.SubFrom(i.end), i.end)
}

func (i Interval) derive(op string, start, end time.Time) (Interval, error) {
	if end.Before(start) {
		return Interval{}, mismatch(op)
	}
	return Interval{start: start, end: end, bounds: i.bounds}, nil
}

// Gap returns the instants between i and o that belong to neither.
// The second result is false when i and o overlap or abut, there is no gap between them then.
//
// The bounds of the gap are the complement of the facing bounds: the gap between [a, b) and (c, d] is [b, c].
func (i Interval) Gap(o Interval) (Interval, bool) {
	earlier, later := i, o
	if !i.IsBefore(o) {
		if !o.IsBefore(i) {
			return Interval{}, false
		}
		earlier, later = o, i
	}
	lower, upper := earlier.upperCut(), later.lowerCut()
	if lower.CompareTo(upper) >= 0 {
		return Interval{}, false
	}
	return fromCuts(lower, upper), true
}

// Merge returns the smallest Interval covering i and all others.
// Each end takes the bounds of the interval reaching furthest, so every instant of the inputs is kept.
func (i Interval) Merge(others ...Interval) Interval {
	if len(others) == 0 {
		return i
	}
	lower, upper := i.lowerCut(), i.upperCut()
	for _, o := range others {
		lower = minCut(lower, o.lowerCut())
		upper = maxCut(upper, o.upperCut())
	}
	return fromCuts(lower, upper)
}

// Intersect returns the instants shared by i and all others.
// It fails with ErrNonOverlapping if some of the intervals share nothing.
func (i Interval) Intersect(others ...Interval) (Interval, error) {
	res := i
	for _, o := range others {
		if !res.Overlaps(o) {
			return Interval{}, ErrNonOverlapping
		}
		res = fromCuts(maxCut(res.lowerCut(), o.lowerCut()), minCut(res.upperCut(), o.upperCut()))
	}
	return res, nil
}

// Subtract returns the parts of i not covered by o, zero, one or two intervals in chronological order.
func (i Interval) Subtract(o Interval) *Sequence {
	if !i.Overlaps(o) {
		return NewSequence(i)
	}
	res := NewSequence()
	if i.lowerCut().CompareTo(o.lowerCut()) < 0 {
		res.Push(fromCuts(i.lowerCut(), o.lowerCut()))
	}
	if o.upperCut().CompareTo(i.upperCut()) < 0 {
		res.Push(fromCuts(o.upperCut(), i.upperCut()))
	}
	return res
}

// Diff returns the instants covered by exactly one of i and o, in chronological order.
func (i Interval) Diff(o Interval) *Sequence {
	res := Join(i.Subtract(o), o.Subtract(i))
	res.Sort(nil)
	return res
}

// SplitForward cuts i into consecutive intervals of length d, starting at the start of i.
// The last interval is shorter when d does not divide i evenly. Each interval keeps the bounds of i.
func (i Interval) SplitForward(d Duration) (*Sequence, error) {
	if !d.AddTo(i.start).After(i.start) {
		return nil, ErrNonPositiveDuration
	}
	res := NewSequence()
	for from := i.start; from.Before(i.end); {
		to := d.AddTo(from)
		if to.After(i.end) {
			to = i.end
		}
		if !to.After(from) {
			return nil, fmt.Errorf("split forward from %v: %w", from, ErrNonPositiveDuration)
		}
		res.Push(Interval{start: from, end: to, bounds: i.bounds})
		from = to
	}
	return res, nil
}

// SplitBackward cuts i into consecutive intervals of length d, starting at the end of i.
// Intervals are returned latest first; the earliest one is shorter when d does not divide i evenly.
func (i Interval) SplitBackward(d Duration) (*Sequence, error) {
	if !d.SubFrom(i.end).Before(i.end) {
		return nil, ErrNonPositiveDuration
	}
	res := NewSequence()
	for to := i.end; to.After(i.start); {
		from := d.SubFrom(to)
		if from.Before(i.start) {
			from = i.start
		}
		if !from.Before(to) {
			return nil, fmt.Errorf("split backward from %v: %w", to, ErrNonPositiveDuration)
		}
		res.Push(Interval{start: from, end: to, bounds: i.bounds})
		to = from
	}
	return res, nil
}
