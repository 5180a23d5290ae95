package availability

import (
	"time"

	"holidaze-server/models/venue"
)

// BookingRange parses a booking's dates. ok is false when either date is
// missing or malformed; such a booking cannot conflict with anything.
func BookingRange(b venue.BookingStub) (r Range, ok bool) {
	from, err := ParseDate(b.DateFrom)
	if err != nil {
		return Range{}, false
	}
	to, err := ParseDate(b.DateTo)
	if err != nil {
		return Range{}, false
	}
	return Range{From: from, To: to}, true
}

// IsAvailable reports whether no known booking of v overlaps r.
func IsAvailable(v venue.Venue, r Range) bool {
	for _, b := range v.Bookings {
		br, ok := BookingRange(b)
		if !ok {
			continue
		}
		if r.Overlaps(br) {
			return false
		}
	}
	return true
}

// FilterAvailable keeps the venues that are free for r, preserving order.
// A nil range returns the input unchanged.
func FilterAvailable(venues []venue.Venue, r *Range) []venue.Venue {
	if r == nil {
		return venues
	}
	out := make([]venue.Venue, 0, len(venues))
	for _, v := range venues {
		if IsAvailable(v, *r) {
			out = append(out, v)
		}
	}
	return out
}

// DayOccupancy is the state of a single calendar day for a venue.
type DayOccupancy struct {
	Day    time.Time
	Booked bool
	Guests int
}

// Occupancy lays the bookings of v over every day of window.
func Occupancy(v venue.Venue, window Range) []DayOccupancy {
	days := make([]DayOccupancy, 0, window.Nights())
	for d := window.From; d.Before(window.To); d = d.AddDate(0, 0, 1) {
		day := Range{From: d, To: d.AddDate(0, 0, 1)}
		occ := DayOccupancy{Day: d}
		for _, b := range v.Bookings {
			br, ok := BookingRange(b)
			if !ok || !day.Overlaps(br) {
				continue
			}
			occ.Booked = true
			occ.Guests += b.Guests
		}
		days = append(days, occ)
	}
	return days
}
