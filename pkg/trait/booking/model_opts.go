package booking

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/smart-core-os/sc-api/go/traits"
	"go.uber.org/zap"
)

// DefaultModelOptions holds the default options for the model.
var DefaultModelOptions []Option

// Option configures a Model.
type Option interface {
	apply(args *modelArgs)
}

// Clock defines all time related features required by the model.
type Clock interface {
	Now() time.Time
}

// WallClock returns a Clock backed by the time package.
func WallClock() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// WithLogger configures where the model logs changes.
// Defaults to zap.NewNop.
func WithLogger(logger *zap.Logger) Option {
	return optionFunc(func(args *modelArgs) {
		args.logger = logger
	})
}

// WithClock configures the clock used for change times and default check in and out times.
// Defaults to WallClock.
func WithClock(c Clock) Option {
	return optionFunc(func(args *modelArgs) {
		args.clock = c
	})
}

// WithRNG configures the source of randomness used to generate booking ids.
// Defaults to rand.Rand with a time seed.
func WithRNG(rng *rand.Rand) Option {
	return optionFunc(func(args *modelArgs) {
		args.rng = rng
	})
}

// WithInitialBooking returns an option that configures the model to initialise with the given bookings.
// Can be used multiple times with bookings being additive.
// Initial bookings are not checked for overlaps, see Model.Conflicts.
// Creating a model with duplicate booking ids will panic.
// Calling this function with an empty booking id property will panic.
func WithInitialBooking(bookings ...*traits.Booking) Option {
	for i, booking := range bookings {
		if booking.Id == "" {
			panic(fmt.Sprintf("booking at index %v has no Id property", i))
		}
	}
	return optionFunc(func(args *modelArgs) {
		args.bookings = append(args.bookings, bookings...)
	})
}

type modelArgs struct {
	logger   *zap.Logger
	clock    Clock
	rng      *rand.Rand
	bookings []*traits.Booking
}

func calcModelArgs(opts ...Option) modelArgs {
	args := modelArgs{
		logger: zap.NewNop(),
		clock:  WallClock(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range DefaultModelOptions {
		opt.apply(&args)
	}
	for _, opt := range opts {
		opt.apply(&args)
	}
	return args
}

type optionFunc func(args *modelArgs)

func (f optionFunc) apply(args *modelArgs) {
	f(args)
}
