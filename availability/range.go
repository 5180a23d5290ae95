// Package availability holds the calendar-day interval model used to decide
// whether a venue is free for a requested stay.
//
// Every range is checkout-exclusive: a stay from 2025-06-10 to 2025-06-15
// occupies the nights of the 10th through the 14th and leaves the 15th free
// for the next check-in.
package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day prefix of the ISO-8601 strings the API uses.
const DateLayout = "2006-01-02"

// MAX_WINDOW_DAYS bounds the window a per-day occupancy report may cover.
const MAX_WINDOW_DAYS = 366

var ErrInvalidRange = errors.New("invalid date range")

// Range is a requested stay [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

// ParseDate reads the calendar day out of an ISO-8601 date or timestamp.
// "2025-09-24" and "2025-09-24T00:00:00.000Z" both yield 2025-09-24 UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) < len(DateLayout) {
		return time.Time{}, fmt.Errorf("malformed date %q", s)
	}
	d, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date %q: %w", s, err)
	}
	return d, nil
}

// NewRange builds a requested range from two date strings. Both empty means
// no range was requested and yields (nil, nil). Anything else that is not a
// valid from < to pair is rejected with ErrInvalidRange.
func NewRange(from, to string) (*Range, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: both check-in and check-out are required", ErrInvalidRange)
	}
	f, err := ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	t, err := ParseDate(to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	r := &Range{From: f, To: t}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewWindow is NewRange for reporting windows: both dates are required and
// the window may span at most MAX_WINDOW_DAYS days.
func NewWindow(from, to string) (*Range, error) {
	r, err := NewRange(from, to)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidRange)
	}
	if r.Nights() > MAX_WINDOW_DAYS {
		return nil, fmt.Errorf("%w: window is limited to %d days", ErrInvalidRange, MAX_WINDOW_DAYS)
	}
	return r, nil
}

// Validate rejects zero-length and inverted ranges.
func (r Range) Validate() error {
	if !r.From.Before(r.To) {
		return fmt.Errorf("%w: check-out must be after check-in", ErrInvalidRange)
	}
	return nil
}

// Nights is the number of occupied days in the range.
func (r Range) Nights() int {
	return int(r.To.Sub(r.From).Hours() / 24)
}

func (r Range) FromString() string { return r.From.Format(DateLayout) }
func (r Range) ToString() string   { return r.To.Format(DateLayout) }

func (r Range) String() string {
	return r.FromString() + "/" + r.ToString()
}

// Overlaps reports whether [aFrom, aTo) and [bFrom, bTo) share a calendar day.
// A stay that starts on another's checkout day does not overlap it.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return aFrom.Before(bTo) && bFrom.Before(aTo)
}

// Overlaps is Overlaps applied to two ranges.
func (r Range) Overlaps(o Range) bool {
	return Overlaps(r.From, r.To, o.From, o.To)
}
