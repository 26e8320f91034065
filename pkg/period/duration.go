package period

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Duration is an amount of elapsed calendar and clock time, like P1M2DT3H.
//
// Components are signed and applied in order: years, months and days on the calendar, then the clock part.
// Nanoseconds is always in [0, 1e9) and carries the sign of Seconds.
// Invert negates the whole value.
//
// Durations are values and may be compared with ==; two durations that move a datepoint by the same amount
// compare equal only once normalised with AdjustedTo.
type Duration struct {
	Years       int
	Months      int
	Days        int
	Hours       int
	Minutes     int
	Seconds     int
	Nanoseconds int
	Invert      bool
}

// Years returns a Duration of n years.
func Years(n int) Duration { return Duration{Years: n} }

// Months returns a Duration of n months.
func Months(n int) Duration { return Duration{Months: n} }

// Weeks returns a Duration of 7*n days.
func Weeks(n int) Duration { return Duration{Days: 7 * n} }

// Days returns a Duration of n days.
func Days(n int) Duration { return Duration{Days: n} }

// Hours returns a Duration of n hours.
func Hours(n int) Duration { return Duration{Hours: n} }

// Minutes returns a Duration of n minutes.
func Minutes(n int) Duration { return Duration{Minutes: n} }

// FromTimeDuration converts a clock duration, keeping it in hours, minutes and seconds.
func FromTimeDuration(d time.Duration) Duration {
	var res Duration
	if d < 0 {
		res.Invert = true
		d = -d
	}
	res.Hours = int(d / time.Hour)
	d -= time.Duration(res.Hours) * time.Hour
	res.Minutes = int(d / time.Minute)
	d -= time.Duration(res.Minutes) * time.Minute
	res.Seconds = int(d / time.Second)
	res.Nanoseconds = int(d - time.Duration(res.Seconds)*time.Second)
	return res
}

// FromSeconds returns the Duration of seconds plus fraction microseconds.
// A negative seconds value inverts the whole Duration, fraction included, so fraction itself may not be negative.
func FromSeconds(seconds int64, fraction int64) (Duration, error) {
	if fraction < 0 {
		return Duration{}, ErrNegativeFraction
	}
	var res Duration
	if seconds < 0 {
		res.Invert = true
		seconds = -seconds
	}
	seconds += fraction / 1_000_000
	res.Seconds = int(seconds)
	res.Nanoseconds = int(fraction%1_000_000) * 1000
	return res, nil
}

// IsZero reports whether d moves no datepoint at all, regardless of Invert.
func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Days == 0 &&
		d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0 && d.Nanoseconds == 0
}

// Negate returns d with the Invert flag flipped.
func (d Duration) Negate() Duration {
	d.Invert = !d.Invert
	return d
}

func (d Duration) sign() int {
	if d.Invert {
		return -1
	}
	return 1
}

// clock returns the hours, minutes and seconds part of d, ignoring Invert.
// maxClockSeconds is the most whole seconds a time.Duration can hold.
const maxClockSeconds = int64(math.MaxInt64 / time.Second)

// clockFits reports whether the hours, minutes and seconds of d together fit in a time.Duration.
func (d Duration) clockFits() bool {
	h, m, s := int64(d.Hours), int64(d.Minutes), int64(d.Seconds)
	if h > maxClockSeconds/3600 || h < -maxClockSeconds/3600 ||
		m > maxClockSeconds/60 || m < -maxClockSeconds/60 ||
		s > maxClockSeconds || s < -maxClockSeconds {
		return false
	}
	total := h*3600 + m*60 + s
	return total < maxClockSeconds && total > -maxClockSeconds
}

func (d Duration) clock() time.Duration {
	frac := time.Duration(d.Nanoseconds)
	if d.Seconds < 0 {
		frac = -frac
	}
	return time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second +
		frac
}

// AddTo returns t moved by d: calendar components first, using time.Time.AddDate, then the clock part.
func (d Duration) AddTo(t time.Time) time.Time {
	s := d.sign()
	return t.AddDate(s*d.Years, s*d.Months, s*d.Days).Add(time.Duration(s) * d.clock())
}

// SubFrom returns t moved back by d.
func (d Duration) SubFrom(t time.Time) time.Time {
	return d.Negate().AddTo(t)
}

// AdjustedTo normalises d against ref.
// The result is the calendar breakdown between ref and d.AddTo(ref): units carry upwards only when the carried
// value lands on the same instant, so 29 days become one month from 2020-02-01 but one month and a day from
// 2019-02-01.
func (d Duration) AdjustedTo(ref time.Time) Duration {
	return calendarDiff(ref, d.AddTo(ref))
}

// String returns d in the ISO 8601 notation understood by FromIsoString.
func (d Duration) String() string {
	var sb strings.Builder
	if d.Invert {
		sb.WriteByte('-')
	}
	sb.WriteByte('P')
	writeComponent(&sb, d.Years, 'Y')
	writeComponent(&sb, d.Months, 'M')
	writeComponent(&sb, d.Days, 'D')
	if d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 || d.Nanoseconds != 0 {
		sb.WriteByte('T')
		writeComponent(&sb, d.Hours, 'H')
		writeComponent(&sb, d.Minutes, 'M')
		if d.Nanoseconds != 0 {
			sb.WriteString(strconv.Itoa(d.Seconds))
			sb.WriteByte('.')
			sb.WriteString(strings.TrimRight(fmtNanos(d.Nanoseconds), "0"))
			sb.WriteByte('S')
		} else {
			writeComponent(&sb, d.Seconds, 'S')
		}
	}
	if sb.Len() == 1 || (d.Invert && sb.Len() == 2) {
		sb.WriteString("T0S")
	}
	return sb.String()
}

// ToIsoString is an alias of String.
func (d Duration) ToIsoString() string {
	return d.String()
}

func writeComponent(sb *strings.Builder, v int, designator byte) {
	if v == 0 {
		return
	}
	sb.WriteString(strconv.Itoa(v))
	sb.WriteByte(designator)
}

func fmtNanos(n int) string {
	s := strconv.Itoa(n)
	return strings.Repeat("0", 9-len(s)) + s
}
