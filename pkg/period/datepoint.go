package period

import (
	"fmt"
	"time"
)

// DefaultLayouts are the layouts tried, in order, by ParseDatepoint.
var DefaultLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// Datepoint is an instant that can be related to Intervals and bound to calendar units.
type Datepoint struct {
	t time.Time
}

func DatepointOf(t time.Time) Datepoint {
	return Datepoint{t: t}
}

// DatepointFromUnix returns the Datepoint sec seconds after the Unix epoch, in UTC.
func DatepointFromUnix(sec int64) Datepoint {
	return Datepoint{t: time.Unix(sec, 0).UTC()}
}

type parseOptions struct {
	loc     *time.Location
	layouts []string
}

// ParseOption configures ParseDatepoint.
type ParseOption func(*parseOptions)

// InLocation interprets text without a zone offset in loc rather than UTC.
func InLocation(loc *time.Location) ParseOption {
	return func(o *parseOptions) {
		o.loc = loc
	}
}

// WithLayouts replaces DefaultLayouts.
func WithLayouts(layouts ...string) ParseOption {
	return func(o *parseOptions) {
		o.layouts = layouts
	}
}

// ParseDatepoint parses text with the first matching layout.
// When no layout matches the error of the first layout is returned, it wraps a *time.ParseError.
func ParseDatepoint(text string, opts ...ParseOption) (Datepoint, error) {
	o := parseOptions{loc: time.UTC, layouts: DefaultLayouts}
	for _, opt := range opts {
		opt(&o)
	}
	var firstErr error
	for _, layout := range o.layouts {
		t, err := time.ParseInLocation(layout, text, o.loc)
		if err == nil {
			return Datepoint{t: t}, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		return Datepoint{}, fmt.Errorf("parse datepoint %q: no layouts", text)
	}
	return Datepoint{}, fmt.Errorf("parse datepoint: %w", firstErr)
}

func (d Datepoint) Time() time.Time {
	return d.t
}

func (d Datepoint) String() string {
	return d.t.Format(time.RFC3339Nano)
}

// Unit returns the Interval of the calendar unit d falls in.
func (d Datepoint) Unit(unit Unit, bounds BoundaryType) Interval {
	return FromCalendarUnit(d.t, unit, bounds)
}

func (d Datepoint) Second(bounds BoundaryType) Interval   { return d.Unit(Second, bounds) }
func (d Datepoint) Minute(bounds BoundaryType) Interval   { return d.Unit(Minute, bounds) }
func (d Datepoint) Hour(bounds BoundaryType) Interval     { return d.Unit(Hour, bounds) }
func (d Datepoint) Day(bounds BoundaryType) Interval      { return d.Unit(Day, bounds) }
func (d Datepoint) IsoWeek(bounds BoundaryType) Interval  { return d.Unit(IsoWeek, bounds) }
func (d Datepoint) Month(bounds BoundaryType) Interval    { return d.Unit(Month, bounds) }
func (d Datepoint) Quarter(bounds BoundaryType) Interval  { return d.Unit(Quarter, bounds) }
func (d Datepoint) Semester(bounds BoundaryType) Interval { return d.Unit(Semester, bounds) }
func (d Datepoint) Year(bounds BoundaryType) Interval     { return d.Unit(Year, bounds) }
func (d Datepoint) IsoYear(bounds BoundaryType) Interval  { return d.Unit(IsoYear, bounds) }

// IsBefore reports whether d comes before every instant of i.
func (d Datepoint) IsBefore(i Interval) bool {
	return i.IsAfterTime(d.t)
}

// BordersOnStart reports whether d is the start of i and i excludes it.
func (d Datepoint) BordersOnStart(i Interval) bool {
	return i.bounds.ExcludesStart() && d.t.Equal(i.start)
}

// IsStarting reports whether d is the start of i and i includes it.
func (d Datepoint) IsStarting(i Interval) bool {
	return i.IsStartedBy(d.t)
}

// IsDuring reports whether i contains d.
func (d Datepoint) IsDuring(i Interval) bool {
	return i.Contains(d.t)
}

// IsEnding reports whether d is the end of i and i includes it.
func (d Datepoint) IsEnding(i Interval) bool {
	return i.IsEndedBy(d.t)
}

// BordersOnEnd reports whether d is the end of i and i excludes it.
func (d Datepoint) BordersOnEnd(i Interval) bool {
	return i.bounds.ExcludesEnd() && d.t.Equal(i.end)
}

// Abuts reports whether d touches i from outside.
func (d Datepoint) Abuts(i Interval) bool {
	return d.BordersOnStart(i) || d.BordersOnEnd(i)
}

// IsAfter reports whether d comes after every instant of i.
func (d Datepoint) IsAfter(i Interval) bool {
	return i.IsBeforeTime(d.t)
}
