package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var base = time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC)

// at returns the instant h hours after base.
func at(h int) time.Time {
	return base.Add(time.Duration(h) * time.Hour)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// iv parses notation like "[1,2)" into an Interval, numbers are hours after base.
func iv(s string) Interval {
	s = strings.ReplaceAll(s, " ", "")
	if len(s) < 5 {
		panic(fmt.Sprintf("bad interval %q", s))
	}
	bounds, err := ParseBoundaryType(s[:1] + s[len(s)-1:])
	if err != nil {
		panic(err)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		panic(fmt.Sprintf("bad interval %q", s))
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		panic(err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		panic(err)
	}
	return Interval{start: at(start), end: at(end), bounds: bounds}
}

// ivs parses a space separated list of intervals in the notation of iv.
func ivs(s string) *Sequence {
	res := NewSequence()
	for _, f := range strings.Fields(s) {
		res.Push(iv(f))
	}
	return res
}

func between(start, end time.Time) Interval {
	return Interval{start: start, end: end}
}
