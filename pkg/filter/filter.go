// Package filter parses and validates the year range used to bound list,
// trigger and export requests.
package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinYear is the earliest year a range may start at.
const MinYear = 1888

// ErrInvalidRange is returned for any range that fails validation.
var ErrInvalidRange = errors.New("invalid year range")

// Range is an inclusive pair of year bounds.
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// MaxYear is the latest year a range may end at, relative to now.
func MaxYear(now time.Time) int {
	return now.Year() + 1
}

// Parse reads both bounds from user input and validates them against now.
func Parse(from, to string, now time.Time) (Range, error) {
	f, err := parseBound("from", from)
	if err != nil {
		return Range{}, err
	}
	t, err := parseBound("to", to)
	if err != nil {
		return Range{}, err
	}
	r := Range{From: f, To: t}
	if err := r.Validate(now); err != nil {
		return Range{}, err
	}
	return r, nil
}

func parseBound(name, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: %s year is empty", ErrInvalidRange, name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s year %q is not a number", ErrInvalidRange, name, s)
	}
	return v, nil
}

// Validate checks the domain bounds and ordering.
func (r Range) Validate(now time.Time) error {
	switch latest := MaxYear(now); {
	case r.From < MinYear:
		return fmt.Errorf("%w: from year %d is before %d", ErrInvalidRange, r.From, MinYear)
	case r.To > latest:
		return fmt.Errorf("%w: to year %d is after %d", ErrInvalidRange, r.To, latest)
	case r.From > r.To:
		return fmt.Errorf("%w: from year %d is after to year %d", ErrInvalidRange, r.From, r.To)
	}
	return nil
}

// Current returns a single-year range for the year of now.
func Current(now time.Time) Range {
	return Range{From: now.Year(), To: now.Year()}
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.From, r.To)
}
