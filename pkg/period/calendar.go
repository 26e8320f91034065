package period

import (
	"fmt"
	"strings"
	"time"
)

// Unit is a calendar unit an Interval can be bound to.
type Unit int

const (
	Second Unit = iota
	Minute
	Hour
	Day
	IsoWeek
	Month
	Quarter
	Semester
	Year
	IsoYear
)

var unitNames = [...]string{
	Second:   "second",
	Minute:   "minute",
	Hour:     "hour",
	Day:      "day",
	IsoWeek:  "isoWeek",
	Month:    "month",
	Quarter:  "quarter",
	Semester: "semester",
	Year:     "year",
	IsoYear:  "isoYear",
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit returns the Unit named s, ignoring case.
func ParseUnit(s string) (Unit, error) {
	for u, name := range unitNames {
		if strings.EqualFold(name, s) {
			return Unit(u), nil
		}
	}
	return 0, fmt.Errorf("unknown calendar unit %q, expected one of %s", s, strings.Join(unitNames[:], ", "))
}

// FromCalendarUnit returns the Interval of the given unit that ref falls in, in ref's location.
// For example the Month of 2012-01-15 10:00 is [2012-01-01, 2012-02-01).
// Bits of bounds outside the four boundary types are ignored.
func FromCalendarUnit(ref time.Time, unit Unit, bounds BoundaryType) Interval {
	loc := ref.Location()
	y, m, d := ref.Date()
	var start, end time.Time
	switch unit {
	case Second:
		start = ref.Round(0).Add(-time.Duration(ref.Nanosecond()))
		end = start.Add(time.Second)
	case Minute:
		start = time.Date(y, m, d, ref.Hour(), ref.Minute(), 0, 0, loc)
		end = start.Add(time.Minute)
	case Hour:
		start = time.Date(y, m, d, ref.Hour(), 0, 0, 0, loc)
		end = start.Add(time.Hour)
	case Day:
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 1)
	case IsoWeek:
		isoYear, week := ref.ISOWeek()
		start = isoWeekStart(isoYear, week, loc)
		end = start.AddDate(0, 0, 7)
	case Month:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	case Quarter:
		start = time.Date(y, (m-1)/3*3+1, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 3, 0)
	case Semester:
		start = time.Date(y, (m-1)/6*6+1, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 6, 0)
	case Year:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0)
	case IsoYear:
		isoYear, _ := ref.ISOWeek()
		start = isoWeekStart(isoYear, 1, loc)
		end = isoWeekStart(isoYear+1, 1, loc)
	default:
		panic(fmt.Sprintf("unexpected calendar unit %v", unit))
	}
	return Interval{start: start, end: end, bounds: bounds.known()}
}

// FromYear returns [year-01-01, year+1-01-01). A nil loc means UTC.
func FromYear(year int, loc *time.Location) Interval {
	return FromCalendarUnit(time.Date(year, time.January, 1, 0, 0, 0, 0, locOrUTC(loc)), Year, IncludeStartExcludeEnd)
}

// FromIsoYear returns the interval from the first day of ISO week 1 of year to the first day of the next ISO year.
func FromIsoYear(year int, loc *time.Location) Interval {
	loc = locOrUTC(loc)
	return Interval{start: isoWeekStart(year, 1, loc), end: isoWeekStart(year+1, 1, loc)}
}

// FromSemester returns the given semester (1 or 2) of year.
// Out of range values are normalised the way time.Date normalises months.
func FromSemester(year, semester int, loc *time.Location) Interval {
	start := time.Date(year, time.Month((semester-1)*6+1), 1, 0, 0, 0, 0, locOrUTC(loc))
	return Interval{start: start, end: start.AddDate(0, 6, 0)}
}

// FromQuarter returns the given quarter (1 to 4) of year.
// Out of range values are normalised the way time.Date normalises months.
func FromQuarter(year, quarter int, loc *time.Location) Interval {
	start := time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, locOrUTC(loc))
	return Interval{start: start, end: start.AddDate(0, 3, 0)}
}

// FromMonth returns the given month of year.
func FromMonth(year int, month time.Month, loc *time.Location) Interval {
	start := time.Date(year, month, 1, 0, 0, 0, 0, locOrUTC(loc))
	return Interval{start: start, end: start.AddDate(0, 1, 0)}
}

// FromIsoWeek returns the given ISO week of the ISO year, starting on a Monday.
func FromIsoWeek(year, week int, loc *time.Location) Interval {
	start := isoWeekStart(year, week, locOrUTC(loc))
	return Interval{start: start, end: start.AddDate(0, 0, 7)}
}

// FromDay returns the given day.
func FromDay(year int, month time.Month, day int, loc *time.Location) Interval {
	start := time.Date(year, month, day, 0, 0, 0, 0, locOrUTC(loc))
	return Interval{start: start, end: start.AddDate(0, 0, 1)}
}

func locOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// isoWeekStart returns midnight of the Monday starting the given ISO week.
// Week 1 is the week holding the 4th of January.
func isoWeekStart(year, week int, loc *time.Location) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, 7*(week-1)-offset)
}

// calendarDiff returns the Duration d for which d.AddTo(from) equals to.
//
// Months are taken greedily, then days, then the remaining clock time, each step keeping the partial sum on
// the from side of to. This is what makes carries calendar aware: a month is only counted when adding it lands
// on or before to.
func calendarDiff(from, to time.Time) Duration {
	to = to.In(from.Location())
	sign := 1
	if to.Before(from) {
		sign = -1
	}
	beyond := func(t time.Time) bool {
		if sign > 0 {
			return t.After(to)
		}
		return t.Before(to)
	}

	fy, fm, _ := from.Date()
	ty, tm, _ := to.Date()
	months := sign * ((ty-fy)*12 + int(tm-fm))
	if months < 0 {
		months = 0
	}
	for months > 0 && beyond(from.AddDate(0, sign*months, 0)) {
		months--
	}
	c := from.AddDate(0, sign*months, 0)

	days := sign * civilDays(c, to)
	if days < 0 {
		days = 0
	}
	for days > 0 && beyond(c.AddDate(0, 0, sign*days)) {
		days--
	}
	c = c.AddDate(0, 0, sign*days)

	rest := to.Sub(c)
	if sign < 0 {
		rest = -rest
	}
	res := FromTimeDuration(rest)
	res.Years = months / 12
	res.Months = months % 12
	res.Days = days
	res.Invert = sign < 0
	return res
}

// civilDays returns the number of calendar days between the dates of a and b, ignoring the time of day.
func civilDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}
