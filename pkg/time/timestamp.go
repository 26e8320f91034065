package time

import "google.golang.org/protobuf/types/known/timestamppb"

// CompareAscending returns -1 if t1 is before t2, 1 if t1 is after t2 and 0 if t1 is equal to t2
func CompareAscending(t1, t2 *timestamppb.Timestamp) int {
	switch {
	case t1.GetSeconds() < t2.GetSeconds():
		return -1
	case t1.GetSeconds() > t2.GetSeconds():
		return 1
	case t1.GetNanos() < t2.GetNanos():
		return -1
	case t1.GetNanos() > t2.GetNanos():
		return 1
	}
	return 0
}
