package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"holidaze-server/api/holidaze"
	"holidaze-server/availability"
	"holidaze-server/internaltypes"
	"holidaze-server/models"
	"holidaze-server/notify"
)

// MY_BOOKINGS_LIMIT is how many bookings one listing returns.
const MY_BOOKINGS_LIMIT = 50

// BookingService places, lists and cancels bookings for the signed-in
// account.
type BookingService struct {
	holidazeApi holidaze.HolidazeAPI
	venues      *VenueService
	auth        *AuthService
	bus         *notify.Bus
}

func NewBookingService(holidazeApi holidaze.HolidazeAPI, venues *VenueService, auth *AuthService, bus *notify.Bus) *BookingService {
	return &BookingService{holidazeApi: holidazeApi, venues: venues, auth: auth, bus: bus}
}

// Book reserves venueID for [from, to). The venue's current bookings are
// checked first so a conflict is reported as ErrUnavailable without a
// round trip that would fail anyway.
func (bs *BookingService) Book(ctx context.Context, venueID, from, to string, guests int) (*models.Booking, error) {
	if err := bs.auth.RequireToken(ctx); err != nil {
		return nil, err
	}
	rng, err := availability.NewRange(from, to)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: check-in and check-out are required", availability.ErrInvalidRange)
	}
	req, err := models.NewBookingRequest(venueID, rng.From, rng.To, guests)
	if err != nil {
		return nil, err
	}

	v, err := bs.venues.GetVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	if v.MaxGuests > 0 && req.Guests > v.MaxGuests {
		return nil, internaltypes.NewValidationError(fmt.Sprintf("%s allows at most %d guests", v.Name, v.MaxGuests))
	}
	if !availability.IsAvailable(*v, *rng) {
		return nil, internaltypes.ErrUnavailable
	}

	booking, err := bs.holidazeApi.CreateBooking(ctx, req)
	if err != nil {
		bs.bus.Publish(notify.Notice{Level: notify.LevelError, Text: err.Error()})
		return nil, err
	}
	bs.venues.InvalidateVenue(ctx, req.VenueID)
	log.Printf("[BookingService] Booked venue %s for %s", req.VenueID, rng)
	bs.bus.Publish(notify.Notice{Level: notify.LevelSuccess, Text: "Booking confirmed"})
	return booking, nil
}

// Cancel deletes a booking. venueID, when known, is evicted from the cache.
func (bs *BookingService) Cancel(ctx context.Context, bookingID, venueID string) error {
	if err := bs.auth.RequireToken(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(bookingID) == "" {
		return internaltypes.ErrMissingID
	}
	if err := bs.holidazeApi.DeleteBooking(ctx, bookingID); err != nil {
		bs.bus.Publish(notify.Notice{Level: notify.LevelError, Text: err.Error()})
		return err
	}
	if venueID != "" {
		bs.venues.InvalidateVenue(ctx, venueID)
	}
	bs.bus.Publish(notify.Notice{Level: notify.LevelInfo, Text: "Booking cancelled"})
	return nil
}

// ListBookings returns the bookings made by name, latest stay first, each
// with its venue embedded. An empty name means the signed-in user.
func (bs *BookingService) ListBookings(ctx context.Context, name string) ([]models.Booking, error) {
	u, err := bs.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = u.Name
	}
	resp, err := bs.holidazeApi.ListBookingsByProfile(ctx, name, models.ListBookingsParams{
		Limit:        MY_BOOKINGS_LIMIT,
		Sort:         "dateFrom",
		SortOrder:    models.OrderDesc,
		IncludeVenue: true,
	})
	if err != nil {
		bs.bus.Publish(notify.Notice{Level: notify.LevelError, Text: err.Error()})
		return nil, err
	}
	if resp.Data == nil {
		return []models.Booking{}, nil
	}
	return resp.Data, nil
}
