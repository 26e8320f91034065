package period

import "time"

// cut divides the timeline either just below or just above an instant.
// Every boundary of an Interval is a cut: an included start is below(start), an excluded start is above(start),
// an included end is above(end) and an excluded end is below(end).
// An instant t lies inside an Interval exactly when lower < t < upper, with below(t) < t < above(t).
//
// This pattern is borrowed from Guavas Range.
type cut struct {
	at    time.Time
	above bool
}

func cutBelow(t time.Time) cut {
	return cut{at: t}
}

func cutAbove(t time.Time) cut {
	return cut{at: t, above: true}
}

// CompareTo returns -1, 0 or 1 when c sits before, on or after that.
func (c cut) CompareTo(that cut) int {
	switch {
	case c.at.Before(that.at):
		return -1
	case c.at.After(that.at):
		return 1
	}
	// same value, below comes before above
	if c.above == that.above {
		return 0
	} else if c.above {
		return 1
	} else {
		return -1
	}
}

// compareInstant returns -1 if c sits before t, 1 otherwise.
func (c cut) compareInstant(t time.Time) int {
	switch {
	case c.at.Before(t):
		return -1
	case c.at.After(t):
		return 1
	}
	if c.above {
		return 1
	}
	return -1
}

func minCut(a, b cut) cut {
	if b.CompareTo(a) < 0 {
		return b
	}
	return a
}

func maxCut(a, b cut) cut {
	if b.CompareTo(a) > 0 {
		return b
	}
	return a
}

// lowerCut returns the cut standing for the start of i.
func (i Interval) lowerCut() cut {
	if i.bounds.ExcludesStart() {
		return cutAbove(i.start)
	}
	return cutBelow(i.start)
}

// upperCut returns the cut standing for the end of i.
func (i Interval) upperCut() cut {
	if i.bounds.ExcludesEnd() {
		return cutBelow(i.end)
	}
	return cutAbove(i.end)
}

// fromCuts builds the Interval between lower and upper.
// The caller guarantees lower.at is not after upper.at.
func fromCuts(lower, upper cut) Interval {
	return Interval{
		start:  lower.at,
		end:    upper.at,
		bounds: boundsOf(!lower.above, upper.above),
	}
}
