package models

import (
	"strings"
	"time"

	"holidaze-server/internaltypes"
	"holidaze-server/models/venue"
)

// Booking is a reservation as returned by POST /holidaze/bookings.
type Booking struct {
	ID       string       `json:"id"`
	DateFrom string       `json:"dateFrom"`
	DateTo   string       `json:"dateTo"`
	Guests   int          `json:"guests"`
	Created  string       `json:"created,omitempty"`
	Updated  string       `json:"updated,omitempty"`
	Venue    *venue.Venue `json:"venue,omitempty"`
}

type BookingResponse struct {
	Data Booking `json:"data"`
}

// BookingsPageResponse is one page of GET /holidaze/profiles/{name}/bookings.
type BookingsPageResponse struct {
	Data []Booking `json:"data"`
	Meta PageMeta  `json:"meta"`
}

// BookingRequest is the body of POST /holidaze/bookings.
type BookingRequest struct {
	VenueID  string `json:"venueId"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests"`
}

// NewBookingRequest validates a booking and normalizes both dates to UTC
// midnight of their calendar day, e.g. 2025-09-24T00:00:00.000Z.
func NewBookingRequest(venueID string, from, to time.Time, guests int) (BookingRequest, error) {
	venueID = strings.TrimSpace(venueID)
	if venueID == "" {
		return BookingRequest{}, internaltypes.NewValidationError("Missing venueId")
	}
	if from.IsZero() || to.IsZero() {
		return BookingRequest{}, internaltypes.NewValidationError("Please select a valid date range.")
	}
	f, t := utcMidnight(from), utcMidnight(to)
	if !f.Before(t) {
		return BookingRequest{}, internaltypes.NewValidationError("Check-out must be after check-in.")
	}
	if guests < 1 {
		guests = 1
	}
	return BookingRequest{
		VenueID:  venueID,
		DateFrom: f.Format(isoMillis),
		DateTo:   t.Format(isoMillis),
		Guests:   guests,
	}, nil
}

const isoMillis = "2006-01-02T15:04:05.000Z"

func utcMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
