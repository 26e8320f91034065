package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/smart-core-os/sc-api/go/traits"
	"gopkg.in/yaml.v3"

	"github.com/smart-core-os/sc-period/pkg/period"
	timepb "github.com/smart-core-os/sc-period/pkg/time"
)

// Config describes the device served by bookingd and the bookings it starts with.
type Config struct {
	Name     string          `yaml:"name"`
	Listen   string          `yaml:"listen"`
	Bookings []BookingConfig `yaml:"bookings"`
}

// BookingConfig is a booking whose period is given by start and either end or an ISO 8601 duration.
type BookingConfig struct {
	ID       string `yaml:"id"`
	Bookable string `yaml:"bookable"`
	Title    string `yaml:"title"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Duration string `yaml:"duration"`
}

var errNoEnd = errors.New("one of end or duration is required")

func defaultConfig() Config {
	return Config{Name: "bookable", Listen: "tcp://localhost:23557"}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// initialBookings converts the configured bookings, bookable defaults to the device name.
func (c Config) initialBookings() ([]*traits.Booking, error) {
	var res []*traits.Booking
	for i, bc := range c.Bookings {
		if bc.ID == "" {
			return nil, fmt.Errorf("bookings[%d]: id is required", i)
		}
		booked, err := bc.interval()
		if err != nil {
			return nil, fmt.Errorf("bookings[%d] %s: %w", i, bc.ID, err)
		}
		bookable := bc.Bookable
		if bookable == "" {
			bookable = c.Name
		}
		res = append(res, &traits.Booking{
			Id:       bc.ID,
			Bookable: bookable,
			Title:    bc.Title,
			Booked:   timepb.PeriodFromInterval(booked),
		})
	}
	return res, nil
}

func (bc BookingConfig) interval() (period.Interval, error) {
	start, err := period.ParseDatepoint(bc.Start)
	if err != nil {
		return period.Interval{}, err
	}
	switch {
	case bc.End != "":
		end, err := period.ParseDatepoint(bc.End)
		if err != nil {
			return period.Interval{}, err
		}
		return period.New(start.Time(), end.Time(), period.IncludeStartExcludeEnd)
	case bc.Duration != "":
		d, err := period.FromIsoString(bc.Duration)
		if err != nil {
			return period.Interval{}, err
		}
		return period.After(start.Time(), d, period.IncludeStartExcludeEnd)
	default:
		return period.Interval{}, errNoEnd
	}
}
