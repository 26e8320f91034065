package period

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDatepointMismatch is returned when an Interval would end before it starts.
	ErrDatepointMismatch = errors.New("the ending datepoint must be greater or equal to the starting datepoint")
	// ErrInvalidBoundaryType is returned for boundary type identifiers that are not one of "[)", "(]", "[]" or "()".
	ErrInvalidBoundaryType = errors.New("unknown or invalid boundary type")
	// ErrUnknownDurationFormat is returned when a duration string matches none of the supported grammars.
	ErrUnknownDurationFormat = errors.New("unknown or bad duration format")
	// ErrNonOverlapping is returned when an operation needs intervals that overlap.
	ErrNonOverlapping = errors.New("both intervals should overlap")
	// ErrNegativeFraction is returned when a sub-second fraction is negative.
	ErrNegativeFraction = errors.New("the fraction can not be negative")
	// ErrNonPositiveDuration is returned when a duration used as a step does not move time forward.
	ErrNonPositiveDuration = errors.New("the duration must move time forward")
	// ErrIndexOutOfRange is returned when a Sequence is addressed past its ends.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// InvalidBoundaryTypeError reports an unknown boundary type identifier.
type InvalidBoundaryTypeError struct {
	Value     string
	Supported []string
}

func (e *InvalidBoundaryTypeError) Error() string {
	return fmt.Sprintf("`%s` is an unknown or invalid boundary type. The only valid values are `%s`",
		e.Value, strings.Join(e.Supported, "`, `"))
}

func (e *InvalidBoundaryTypeError) Unwrap() error {
	return ErrInvalidBoundaryType
}

// DurationFormatError reports a duration string that could not be parsed.
type DurationFormatError struct {
	Input string
}

func (e *DurationFormatError) Error() string {
	return fmt.Sprintf("%v (%q)", ErrUnknownDurationFormat, e.Input)
}

func (e *DurationFormatError) Unwrap() error {
	return ErrUnknownDurationFormat
}

func mismatch(op string) error {
	return fmt.Errorf("%s: %w", op, ErrDatepointMismatch)
}
