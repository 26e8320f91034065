package time

import (
	goTime "time"

	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/smart-core-os/sc-period/pkg/period"
)

// DurationFromProto converts d to a period.Duration made of hours, minutes and seconds.
// A nil d is the zero Duration.
func DurationFromProto(d *durationpb.Duration) period.Duration {
	if d == nil {
		return period.Duration{}
	}
	return period.FromTimeDuration(d.AsDuration())
}

// DurationToProto returns the time elapsed when d is applied at ref.
// Calendar components only have a fixed length once anchored, P1M is 744h from the start of January and 672h from
// the start of February 2021.
func DurationToProto(d period.Duration, ref goTime.Time) *durationpb.Duration {
	return durationpb.New(d.AddTo(ref).Sub(ref))
}
