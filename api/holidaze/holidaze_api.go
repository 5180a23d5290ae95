package holidaze

import (
	"context"

	"holidaze-server/models"
	"holidaze-server/models/venue"
)

// HolidazeAPI defines the interface for interacting with the Holidaze API
type HolidazeAPI interface {
	ListVenues(ctx context.Context, params models.ListVenuesParams) (*models.VenuesPageResponse, error)
	SearchVenues(ctx context.Context, query string, params models.ListVenuesParams) (*models.VenuesPageResponse, error)
	GetVenue(ctx context.Context, venueID string, includeBookings bool) (*venue.Venue, error)
	CreateVenue(ctx context.Context, body models.VenueBody) (*venue.Venue, error)
	UpdateVenue(ctx context.Context, venueID string, body models.VenueBody) (*venue.Venue, error)
	DeleteVenue(ctx context.Context, venueID string) error

	Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.Profile, error)
	GetProfile(ctx context.Context, name string, params models.ProfileParams) (*models.Profile, error)
	UpdateProfile(ctx context.Context, name string, body models.ProfileUpdate) (*models.Profile, error)
	ListVenuesByProfile(ctx context.Context, name string, params models.ListVenuesParams) (*models.VenuesPageResponse, error)
	ListBookingsByProfile(ctx context.Context, name string, params models.ListBookingsParams) (*models.BookingsPageResponse, error)

	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID string) error
}
