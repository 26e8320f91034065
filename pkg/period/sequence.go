package period

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/go-intervals/timespanset"
)

// Sequence is an ordered list of Intervals.
// Insertion order is kept and duplicates are allowed, a Sequence is only sorted when Sort is called.
//
// Like a slice, a Sequence is not safe for concurrent mutation. Derived sequences never share storage with their source.
type Sequence struct {
	items []Interval
}

// NewSequence returns a Sequence holding the given intervals in order.
func NewSequence(intervals ...Interval) *Sequence {
	items := make([]Interval, len(intervals))
	copy(items, intervals)
	return &Sequence{items: items}
}

// Join returns a Sequence holding the members of each of seqs in turn.
func Join(seqs ...*Sequence) *Sequence {
	res := &Sequence{}
	for _, s := range seqs {
		if s == nil {
			continue
		}
		res.items = append(res.items, s.items...)
	}
	return res
}

// CompareFunc orders two intervals, returning a negative number when a sorts before b, positive when after.
type CompareFunc func(a, b Interval) int

// Chronological orders intervals by start then by end, honouring bounds.
func Chronological(a, b Interval) int {
	if c := a.lowerCut().CompareTo(b.lowerCut()); c != 0 {
		return c
	}
	return a.upperCut().CompareTo(b.upperCut())
}

// Sort sorts s in place using cmp, or Chronological if cmp is nil.
// The sort is stable.
func (s *Sequence) Sort(cmp CompareFunc) {
	if cmp == nil {
		cmp = Chronological
	}
	sort.SliceStable(s.items, func(i, j int) bool {
		return cmp(s.items[i], s.items[j]) < 0
	})
}

// Sorted returns a chronologically sorted copy of s.
func (s *Sequence) Sorted() *Sequence {
	res := NewSequence(s.items...)
	res.Sort(nil)
	return res
}

// Unions returns the fewest intervals covering exactly the instants covered by s.
// Overlapping and abutting members are merged, empty members are dropped. The result is sorted.
func (s *Sequence) Unions() *Sequence {
	res := &Sequence{}
	for _, n := range s.Sorted().items {
		if n.IsEmpty() {
			continue
		}
		last := len(res.items) - 1
		if last >= 0 && n.lowerCut().CompareTo(res.items[last].upperCut()) <= 0 {
			cur := res.items[last]
			res.items[last] = fromCuts(cur.lowerCut(), maxCut(cur.upperCut(), n.upperCut()))
			continue
		}
		res.items = append(res.items, n)
	}
	return res
}

// Gaps returns the intervals between the members of s not covered by any of them, sorted.
func (s *Sequence) Gaps() *Sequence {
	unions := s.Unions().items
	res := &Sequence{}
	for i := 1; i < len(unions); i++ {
		res.items = append(res.items, fromCuts(unions[i-1].upperCut(), unions[i].lowerCut()))
	}
	return res
}

// Intersections returns the intervals covered by at least two members of s, sorted and merged.
func (s *Sequence) Intersections() *Sequence {
	sorted := s.Sorted().items
	pieces := &Sequence{}
	var reach cut
	var started bool
	for _, n := range sorted {
		if n.IsEmpty() {
			continue
		}
		if !started {
			reach, started = n.upperCut(), true
			continue
		}
		if n.lowerCut().CompareTo(reach) < 0 {
			pieces.items = append(pieces.items, fromCuts(n.lowerCut(), minCut(n.upperCut(), reach)))
		}
		reach = maxCut(reach, n.upperCut())
	}
	return pieces.Unions()
}

// Subtract returns the parts of the members of s not covered by any member of other.
// A nil other subtracts nothing.
func (s *Sequence) Subtract(other *Sequence) *Sequence {
	res := NewSequence(s.items...)
	if other == nil {
		return res
	}
	for _, o := range other.items {
		next := &Sequence{}
		for _, i := range res.items {
			next.items = append(next.items, i.Subtract(o).items...)
		}
		res = next
	}
	return res
}

// Length returns the smallest Interval covering every member of s.
// The second result is false when s is empty.
func (s *Sequence) Length() (Interval, bool) {
	if len(s.items) == 0 {
		return Interval{}, false
	}
	return s.items[0].Merge(s.items[1:]...), true
}

// TotalTimeDuration returns the real time covered by the members of s, counting shared time once.
func (s *Sequence) TotalTimeDuration() time.Duration {
	span, ok := s.Length()
	if !ok {
		return 0
	}
	set := timespanset.Empty()
	for _, i := range s.items {
		if i.end.After(i.start) {
			set.Insert(i.start, i.end)
		}
	}
	var total time.Duration
	set.IntervalsBetween(span.start, span.end, func(start, end time.Time) bool {
		total += end.Sub(start)
		return true
	})
	return total
}

// Len returns the number of members of s.
func (s *Sequence) Len() int {
	return len(s.items)
}

func (s *Sequence) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns a copy of the members of s.
func (s *Sequence) Items() []Interval {
	res := make([]Interval, len(s.items))
	copy(res, s.items)
	return res
}

// Get returns the member at index i, negative indexes count back from the end.
func (s *Sequence) Get(i int) (Interval, bool) {
	i, ok := s.index(i)
	if !ok {
		return Interval{}, false
	}
	return s.items[i], true
}

// Set replaces the member at index i, negative indexes count back from the end.
func (s *Sequence) Set(i int, v Interval) error {
	idx, ok := s.index(i)
	if !ok {
		return fmt.Errorf("set %d: %w", i, ErrIndexOutOfRange)
	}
	s.items[idx] = v
	return nil
}

// Push appends intervals to the end of s.
func (s *Sequence) Push(intervals ...Interval) {
	s.items = append(s.items, intervals...)
}

// Unshift adds intervals to the start of s, keeping their order.
func (s *Sequence) Unshift(intervals ...Interval) {
	s.items = append(append(make([]Interval, 0, len(s.items)+len(intervals)), intervals...), s.items...)
}

// Insert adds intervals before index i, Len() is a valid index to insert at the end.
func (s *Sequence) Insert(i int, intervals ...Interval) error {
	idx := i
	if idx < 0 {
		idx += len(s.items)
	}
	if idx < 0 || idx > len(s.items) {
		return fmt.Errorf("insert %d: %w", i, ErrIndexOutOfRange)
	}
	items := make([]Interval, 0, len(s.items)+len(intervals))
	items = append(items, s.items[:idx]...)
	items = append(items, intervals...)
	s.items = append(items, s.items[idx:]...)
	return nil
}

// Remove deletes and returns the member at index i, negative indexes count back from the end.
func (s *Sequence) Remove(i int) (Interval, bool) {
	idx, ok := s.index(i)
	if !ok {
		return Interval{}, false
	}
	v := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return v, true
}

// Clear removes every member of s.
func (s *Sequence) Clear() {
	s.items = nil
}

// IndexOf returns the index of the first member Equal to v, or -1.
func (s *Sequence) IndexOf(v Interval) int {
	for i, item := range s.items {
		if item.Equal(v) {
			return i
		}
	}
	return -1
}

// Contains reports whether a member of s is Equal to v.
func (s *Sequence) Contains(v Interval) bool {
	return s.IndexOf(v) >= 0
}

// Filter returns the members of s for which keep returns true.
func (s *Sequence) Filter(keep func(Interval) bool) *Sequence {
	res := &Sequence{}
	for _, item := range s.items {
		if keep(item) {
			res.items = append(res.items, item)
		}
	}
	return res
}

// Map returns a Sequence of fn applied to each member of s.
func (s *Sequence) Map(fn func(Interval) Interval) *Sequence {
	res := &Sequence{items: make([]Interval, len(s.items))}
	for i, item := range s.items {
		res.items[i] = fn(item)
	}
	return res
}

// Equal reports whether s and o hold Equal members in the same order.
func (s *Sequence) Equal(o *Sequence) bool {
	if len(s.items) != len(o.items) {
		return false
	}
	for i := range s.items {
		if !s.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}

func (s *Sequence) index(i int) (int, bool) {
	if i < 0 {
		i += len(s.items)
	}
	if i < 0 || i >= len(s.items) {
		return 0, false
	}
	return i, true
}
