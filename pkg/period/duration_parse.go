package period

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDesignatorPattern = regexp.MustCompile(`^([+-])?P(?:(-?\d+)Y)?(?:(-?\d+)M)?(?:(-?\d+)W)?(?:(-?\d+)D)?` +
		`(?:(T)(?:(-?\d+)H)?(?:(-?\d+)M)?(?:(-?\d+)(?:[.,](\d{1,9}))?S)?(?:(\d+)F)?)?$`)
	isoAlternativePattern = regexp.MustCompile(`^([+-])?P(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(?:[.,](\d{1,9}))?$`)
	chronoPattern         = regexp.MustCompile(`^([+-])?(?:(?:(\d+):)?(\d+):)?(\d+)(?:\.(\d{1,9}))?$`)
	dateStringToken       = regexp.MustCompile(`(?i)^([+-]?\d+)\s*([a-z]+)$`)
)

// FromIsoString parses an ISO 8601 duration.
//
// Two notations are understood. The designator notation [+-]P[nY][nM][nW][nD][T[nH][nM][n[.f]S][nF]], where each
// component may be signed, weeks count as 7 days and F holds microseconds, for example PT5M23658F.
// And the alternative notation PYYYY-MM-DDTHH:MM:SS[.f].
func FromIsoString(text string) (Duration, error) {
	if m := isoDesignatorPattern.FindStringSubmatch(text); m != nil {
		return parseIsoDesignators(text, m)
	}
	if m := isoAlternativePattern.FindStringSubmatch(text); m != nil {
		var c components
		var d Duration
		d.Invert = m[1] == "-"
		d.Years = c.int(m[2])
		d.Months = c.int(m[3])
		d.Days = c.int(m[4])
		d.Hours = c.int(m[5])
		d.Minutes = c.int(m[6])
		d.Seconds = c.int(m[7])
		d.Nanoseconds = c.fraction(m[8])
		if c.err != nil || !d.clockFits() {
			return Duration{}, &DurationFormatError{Input: text}
		}
		return d, nil
	}
	return Duration{}, &DurationFormatError{Input: text}
}

func parseIsoDesignators(text string, m []string) (Duration, error) {
	const (
		sign = iota + 1
		years
		months
		weeks
		days
		timeDesignator
		hours
		minutes
		seconds
		fraction
		micros
	)
	if m[years] == "" && m[months] == "" && m[weeks] == "" && m[days] == "" && m[timeDesignator] == "" {
		return Duration{}, &DurationFormatError{Input: text}
	}
	if m[timeDesignator] != "" && m[hours] == "" && m[minutes] == "" && m[seconds] == "" && m[micros] == "" {
		return Duration{}, &DurationFormatError{Input: text}
	}
	var c components
	// the sign of the fraction is carried by the seconds, which can't be said of -0
	if m[fraction] != "" && strings.HasPrefix(m[seconds], "-0") && c.int(m[seconds]) == 0 {
		return Duration{}, &DurationFormatError{Input: text}
	}

	var d Duration
	d.Invert = m[sign] == "-"
	d.Years = c.int(m[years])
	d.Months = c.int(m[months])
	d.Days = c.days(c.int(m[weeks]), c.int(m[days]))
	d.Hours = c.int(m[hours])
	d.Minutes = c.int(m[minutes])
	d.Seconds = c.int(m[seconds])
	d.Nanoseconds = c.fraction(m[fraction])
	if c.err != nil || !d.clockFits() {
		return Duration{}, &DurationFormatError{Input: text}
	}
	if m[micros] != "" {
		if d.Seconds < 0 {
			return Duration{}, &DurationFormatError{Input: text}
		}
		us := c.int(m[micros])
		if c.err != nil {
			return Duration{}, &DurationFormatError{Input: text}
		}
		total := d.Nanoseconds + (us%1_000_000)*1000
		d.Seconds += us/1_000_000 + total/1_000_000_000
		d.Nanoseconds = total % 1_000_000_000
		if d.Seconds < 0 || !d.clockFits() {
			return Duration{}, &DurationFormatError{Input: text}
		}
	}
	return d, nil
}

// FromChronoString parses chronometer notation: [+-][[H:]M:]S[.f], for example 1:02:03.5.
// Groups are decimal whatever their leading zeros, and are kept as written, 1:75 is one minute and 75 seconds.
// A leading sign needs at least minutes and seconds, a leading - inverts the result.
func FromChronoString(text string) (Duration, error) {
	m := chronoPattern.FindStringSubmatch(text)
	if m == nil {
		return Duration{}, &DurationFormatError{Input: text}
	}
	// a signed lone group reads as a number, not a time: -28.5
	if m[1] != "" && m[3] == "" {
		return Duration{}, &DurationFormatError{Input: text}
	}
	var c components
	var d Duration
	d.Invert = m[1] == "-"
	d.Hours = c.int(m[2])
	d.Minutes = c.int(m[3])
	d.Seconds = c.int(m[4])
	d.Nanoseconds = c.fraction(m[5])
	if c.err != nil || !d.clockFits() {
		return Duration{}, &DurationFormatError{Input: text}
	}
	return d, nil
}

// FromDateString parses a relative date phrase like "1 day", "+2 weeks 3 hours" or "3 months ago".
//
// The phrase is a list of signed amounts each followed by a unit: year, month, week, fortnight, day, hour, minute
// (or min), second (or sec), millisecond (or msec) and microsecond (or usec), singular or plural, in any case.
// A trailing "ago" inverts the whole phrase.
func FromDateString(text string) (Duration, error) {
	fields := strings.Fields(text)
	if len(fields) > 0 && strings.EqualFold(fields[len(fields)-1], "ago") {
		d, err := FromDateString(strings.Join(fields[:len(fields)-1], " "))
		if err != nil {
			return Duration{}, &DurationFormatError{Input: text}
		}
		return d.Negate(), nil
	}
	if len(fields) == 0 {
		return Duration{}, &DurationFormatError{Input: text}
	}

	var d Duration
	var nanos int64
	for len(fields) > 0 {
		// amounts may be written apart from or glued to their unit: "3 days", "3days"
		token := fields[0]
		fields = fields[1:]
		if len(fields) > 0 && !dateStringToken.MatchString(token) {
			token += fields[0]
			fields = fields[1:]
		}
		m := dateStringToken.FindStringSubmatch(token)
		if m == nil {
			return Duration{}, &DurationFormatError{Input: text}
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Duration{}, &DurationFormatError{Input: text}
		}
		ok := true
		switch strings.TrimSuffix(strings.ToLower(m[2]), "s") {
		case "year":
			d.Years, ok = add(d.Years, n)
		case "month":
			d.Months, ok = add(d.Months, n)
		case "week":
			d.Days, ok = addScaled(d.Days, n, 7)
		case "fortnight":
			d.Days, ok = addScaled(d.Days, n, 14)
		case "day":
			d.Days, ok = add(d.Days, n)
		case "hour":
			d.Hours, ok = add(d.Hours, n)
		case "minute", "min":
			d.Minutes, ok = add(d.Minutes, n)
		case "second", "sec":
			d.Seconds, ok = add(d.Seconds, n)
		case "millisecond", "msec":
			nanos, ok = addScaled(nanos, int64(n), 1_000_000)
		case "microsecond", "usec":
			nanos, ok = addScaled(nanos, int64(n), 1000)
		default:
			return Duration{}, &DurationFormatError{Input: text}
		}
		if !ok {
			return Duration{}, &DurationFormatError{Input: text}
		}
	}
	if !d.clockFits() {
		return Duration{}, &DurationFormatError{Input: text}
	}
	secs, rem := int64(d.Seconds)+nanos/1_000_000_000, nanos%1_000_000_000
	// give rem the sign of secs, as a single division of the total would
	switch {
	case secs > 0 && rem < 0:
		secs--
		rem += 1_000_000_000
	case secs < 0 && rem > 0:
		secs++
		rem -= 1_000_000_000
	}
	if rem < 0 && secs == 0 {
		// a negative fraction needs negative seconds to carry its sign, borrow them from the minutes
		d.Minutes--
		secs = 59
		rem += 1_000_000_000
	}
	if rem < 0 {
		rem = -rem
	}
	d.Seconds = int(secs)
	d.Nanoseconds = int(rem)
	if !d.clockFits() {
		return Duration{}, &DurationFormatError{Input: text}
	}
	return d, nil
}

// components parses the integer components of a duration, keeping the first error.
type components struct {
	err error
}

func (c *components) int(s string) int {
	if s == "" || c.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.err = err
	}
	return v
}

// fraction turns the digits after a decimal point into nanoseconds.
func (c *components) fraction(s string) int {
	if s == "" {
		return 0
	}
	return c.int(s + strings.Repeat("0", 9-len(s)))
}

// days returns weeks and days as a number of days.
func (c *components) days(weeks, days int) int {
	v, ok := addScaled(days, weeks, 7)
	if !ok && c.err == nil {
		c.err = strconv.ErrRange
	}
	return v
}

// add returns a+b, ok is false if the sum overflows.
func add[T int | int64](a, b T) (T, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// addScaled returns a+n*scale for a positive scale, ok is false on overflow.
func addScaled[T int | int64](a, n, scale T) (T, bool) {
	product := n * scale
	if n != 0 && product/scale != n {
		return 0, false
	}
	return add(a, product)
}
