package holidaze

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"holidaze-server/api"
	"holidaze-server/internaltypes"
	"holidaze-server/models"
	"holidaze-server/models/venue"
)

const holidazePrefix = "/holidaze"

// HolidazeApiClient embeds the common HTTPClient
type HolidazeApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
}

// NewHolidazeApiClient creates a new instance of HolidazeApiClient. The base
// URL may or may not already end with /holidaze; auth endpoints live one
// level above it either way.
func NewHolidazeApiClient(httpClient *api.HTTPClient) *HolidazeApiClient {
	base := strings.TrimRight(httpClient.BaseURL, "/")
	httpClient.BaseURL = strings.TrimSuffix(base, holidazePrefix)
	return &HolidazeApiClient{
		HTTPClient: httpClient,
	}
}

func h(path string) string {
	return holidazePrefix + path
}

// ListVenues retrieves one page of venues
func (c *HolidazeApiClient) ListVenues(ctx context.Context, params models.ListVenuesParams) (*models.VenuesPageResponse, error) {
	var response models.VenuesPageResponse
	err := c.Request(ctx, http.MethodGet, h("/venues"), params.ToValues(), nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// SearchVenues retrieves one page of venues matching a free-text query
func (c *HolidazeApiClient) SearchVenues(ctx context.Context, query string, params models.ListVenuesParams) (*models.VenuesPageResponse, error) {
	q := params.ToValues()
	q.Set("q", query)

	var response models.VenuesPageResponse
	err := c.Request(ctx, http.MethodGet, h("/venues/search"), q, nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetVenue retrieves a venue given a venue id
func (c *HolidazeApiClient) GetVenue(ctx context.Context, venueID string, includeBookings bool) (*venue.Venue, error) {
	if venueID == "" {
		return nil, internaltypes.ErrMissingID
	}
	var q url.Values
	if includeBookings {
		q = url.Values{"_bookings": {"true"}}
	}

	var response models.VenueResponse
	err := c.Request(ctx, http.MethodGet, h("/venues/"+url.PathEscape(venueID)), q, nil, &response)
	if err != nil {
		return nil, err
	}
	return &response.Data, nil
}

func (c *HolidazeApiClient) CreateVenue(ctx context.Context, body models.VenueBody) (*venue.Venue, error) {
	var response models.VenueResponse
	if err := c.Request(ctx, http.MethodPost, h("/venues"), nil, body, &response); err != nil {
		return nil, err
	}
	return &response.Data, nil
}

func (c *HolidazeApiClient) UpdateVenue(ctx context.Context, venueID string, body models.VenueBody) (*venue.Venue, error) {
	if venueID == "" {
		return nil, internaltypes.ErrMissingID
	}
	var response models.VenueResponse
	if err := c.Request(ctx, http.MethodPut, h("/venues/"+url.PathEscape(venueID)), nil, body, &response); err != nil {
		return nil, err
	}
	return &response.Data, nil
}

func (c *HolidazeApiClient) DeleteVenue(ctx context.Context, venueID string) error {
	if venueID == "" {
		return internaltypes.ErrMissingID
	}
	return c.Request(ctx, http.MethodDelete, h("/venues/"+url.PathEscape(venueID)), nil, nil, nil)
}

// Register creates an account. The response carries no access token.
func (c *HolidazeApiClient) Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error) {
	var response models.ProfileResponse
	if err := c.Request(ctx, http.MethodPost, "/auth/register", nil, req, &response); err != nil {
		return nil, err
	}
	return &response.Data, nil
}

// Login exchanges credentials for a profile carrying an access token
func (c *HolidazeApiClient) Login(ctx context.Context, req models.LoginRequest) (*models.Profile, error) {
	var response models.ProfileResponse
	if err := c.Request(ctx, http.MethodPost, "/auth/login", nil, req, &response); err != nil {
		return nil, err
	}
	return &response.Data, nil
}

func (c *HolidazeApiClient) GetProfile(ctx context.Context, name string, params models.ProfileParams) (*models.Profile, error) {
	if name == "" {
		return nil, internaltypes.ErrMissingID
	}
	var response models.ProfileResponse
	err := c.Request(ctx, http.MethodGet, h("/profiles/"+url.PathEscape(name)), params.ToValues(), nil, &response)
	if err != nil {
		return nil, err
	}
	return &response.Data, nil
}

// UpdateProfile changes bio, media or the venue manager flag
func (c *HolidazeApiClient) UpdateProfile(ctx context.Context, name string, body models.ProfileUpdate) (*models.Profile, error) {
	if name == "" {
		return nil, internaltypes.ErrMissingID
	}
	var response models.ProfileResponse
	err := c.Request(ctx, http.MethodPut, h("/profiles/"+url.PathEscape(name)), nil, body, &response)
	if err != nil {
		return nil, err
	}
	return &response.Data, nil
}

func (c *HolidazeApiClient) ListBookingsByProfile(ctx context.Context, name string, params models.ListBookingsParams) (*models.BookingsPageResponse, error) {
	if name == "" {
		return nil, internaltypes.ErrMissingID
	}
	var response models.BookingsPageResponse
	err := c.Request(ctx, http.MethodGet, h("/profiles/"+url.PathEscape(name)+"/bookings"), params.ToValues(), nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *HolidazeApiClient) ListVenuesByProfile(ctx context.Context, name string, params models.ListVenuesParams) (*models.VenuesPageResponse, error) {
	if name == "" {
		return nil, internaltypes.ErrMissingID
	}
	var response models.VenuesPageResponse
	err := c.Request(ctx, http.MethodGet, h("/profiles/"+url.PathEscape(name)+"/venues"), params.ToValues(), nil, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *HolidazeApiClient) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var response models.BookingResponse
	if err := c.Request(ctx, http.MethodPost, h("/bookings"), nil, req, &response); err != nil {
		return nil, err
	}
	return &response.Data, nil
}

func (c *HolidazeApiClient) DeleteBooking(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return internaltypes.ErrMissingID
	}
	return c.Request(ctx, http.MethodDelete, h("/bookings/"+url.PathEscape(bookingID)), nil, nil, nil)
}
