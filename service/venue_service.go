package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"holidaze-server/api"
	"holidaze-server/api/holidaze"
	"holidaze-server/availability"
	"holidaze-server/internaltypes"
	"holidaze-server/models"
	"holidaze-server/models/venue"
	"holidaze-server/notify"
)

// VenueStore is the venue detail cache as the service uses it.
type VenueStore interface {
	VenueCache
	DeleteVenue(ctx context.Context, venueID string) error
}

// SearchParams are the raw listing inputs as they arrive from a caller.
type SearchParams struct {
	Query     string
	DateFrom  string
	DateTo    string
	Sort      string
	SortOrder string
	Limit     int
}

type VenueService struct {
	holidazeApi holidaze.HolidazeAPI
	venueStore  VenueStore
	collector   *VenueCollector
	guard       *QueryGuard
	bus         *notify.Bus
}

// NewVenueService wires the listing run and the venue operations together.
// venueStore and bus may be nil.
func NewVenueService(
	holidazeApi holidaze.HolidazeAPI,
	venueStore VenueStore,
	collector *VenueCollector,
	guard *QueryGuard,
	bus *notify.Bus) *VenueService {

	if guard == nil {
		guard = NewQueryGuard()
	}
	return &VenueService{
		holidazeApi: holidazeApi,
		venueStore:  venueStore,
		collector:   collector,
		guard:       guard,
		bus:         bus,
	}
}

// Search validates the inputs and runs a listing for sessionKey. A newer
// Search with the same key makes this one return ErrSuperseded.
func (vs *VenueService) Search(ctx context.Context, sessionKey string, p SearchParams) (*models.VenueResultSet, error) {
	rng, err := availability.NewRange(p.DateFrom, p.DateTo)
	if err != nil {
		return nil, err
	}
	sort, err := models.ParseSort(p.Sort, p.SortOrder)
	if err != nil {
		return nil, err
	}

	runCtx, ticket := vs.guard.Begin(ctx, sessionKey)
	defer ticket.Done()

	rs, err := vs.collector.Collect(runCtx, CollectRequest{
		Query:       strings.TrimSpace(p.Query),
		Range:       rng,
		Sort:        sort,
		TargetCount: p.Limit,
	})
	if !ticket.Current() {
		log.Printf("[VenueService] Dropping superseded search for session %s", sessionKey)
		if rs != nil {
			vs.collector.DropCursor(context.WithoutCancel(ctx), rs.Cursor)
		}
		return nil, internaltypes.ErrSuperseded
	}
	if err != nil {
		vs.notifyError("Couldn’t load venues", err)
		return nil, err
	}
	return rs, nil
}

// LoadMore fetches one more page for a previous Search.
func (vs *VenueService) LoadMore(ctx context.Context, cursorID string) (*models.VenueResultSet, error) {
	rs, err := vs.collector.LoadMore(ctx, cursorID)
	if err != nil && !errors.Is(err, internaltypes.ErrCursorNotFound) {
		vs.notifyError("Couldn’t load more venues", err)
	}
	return rs, err
}

// GetVenue returns the venue with its bookings, refreshing the cache.
// The cached copy is served when the upstream call fails.
func (vs *VenueService) GetVenue(ctx context.Context, venueID string) (*venue.Venue, error) {
	if strings.TrimSpace(venueID) == "" {
		return nil, internaltypes.ErrMissingID
	}
	v, err := vs.holidazeApi.GetVenue(ctx, venueID, true)
	if err == nil {
		vs.cache(ctx, *v)
		return v, nil
	}
	if vs.venueStore != nil && !isNotFound(err) {
		if cached, cerr := vs.venueStore.GetVenue(ctx, venueID); cerr == nil && cached != nil {
			log.Printf("[VenueService] Serving cached venue %s after upstream error: %v", venueID, err)
			return cached, nil
		}
	}
	return nil, err
}

// Occupancy returns the venue and its per-day booking state over window.
func (vs *VenueService) Occupancy(ctx context.Context, venueID, from, to string) (*venue.Venue, []availability.DayOccupancy, error) {
	window, err := availability.NewWindow(from, to)
	if err != nil {
		return nil, nil, err
	}
	v, err := vs.GetVenue(ctx, venueID)
	if err != nil {
		return nil, nil, err
	}
	return v, availability.Occupancy(*v, *window), nil
}

func (vs *VenueService) CreateVenue(ctx context.Context, in models.VenueInput) (*venue.Venue, error) {
	body, err := in.Normalize()
	if err != nil {
		return nil, err
	}
	v, err := vs.holidazeApi.CreateVenue(ctx, body)
	if err != nil {
		vs.notifyError("Couldn’t create venue", err)
		return nil, err
	}
	vs.notify(notify.LevelSuccess, "Venue created")
	return v, nil
}

func (vs *VenueService) UpdateVenue(ctx context.Context, venueID string, in models.VenueInput) (*venue.Venue, error) {
	if strings.TrimSpace(venueID) == "" {
		return nil, internaltypes.ErrMissingID
	}
	body, err := in.Normalize()
	if err != nil {
		return nil, err
	}
	v, err := vs.holidazeApi.UpdateVenue(ctx, venueID, body)
	if err != nil {
		vs.notifyError("Couldn’t update venue", err)
		return nil, err
	}
	vs.evict(ctx, venueID)
	vs.notify(notify.LevelSuccess, "Venue updated")
	return v, nil
}

func (vs *VenueService) DeleteVenue(ctx context.Context, venueID string) error {
	if strings.TrimSpace(venueID) == "" {
		return internaltypes.ErrMissingID
	}
	if err := vs.holidazeApi.DeleteVenue(ctx, venueID); err != nil {
		vs.notifyError("Couldn’t delete venue", err)
		return err
	}
	vs.evict(ctx, venueID)
	vs.notify(notify.LevelSuccess, "Venue deleted")
	return nil
}

func (vs *VenueService) GetProfile(ctx context.Context, name string, params models.ProfileParams) (*models.Profile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, internaltypes.ErrMissingID
	}
	return vs.holidazeApi.GetProfile(ctx, name, params)
}

// ListVenuesByProfile lists the venues a manager owns, bookings included.
func (vs *VenueService) ListVenuesByProfile(ctx context.Context, name string, page, limit int) (*models.VenuesPageResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, internaltypes.ErrMissingID
	}
	return vs.holidazeApi.ListVenuesByProfile(ctx, name, models.ListVenuesParams{
		Page:            page,
		Limit:           limit,
		IncludeBookings: true,
	})
}

// InvalidateVenue drops the cached copy of a venue.
func (vs *VenueService) InvalidateVenue(ctx context.Context, venueID string) {
	vs.evict(ctx, venueID)
}

func (vs *VenueService) cache(ctx context.Context, v venue.Venue) {
	if vs.venueStore == nil {
		return
	}
	if err := vs.venueStore.UpsertVenue(ctx, v); err != nil {
		log.Printf("[VenueService] Failed to cache venue %s: %v", v.ID, err)
	}
}

func (vs *VenueService) evict(ctx context.Context, venueID string) {
	if vs.venueStore == nil {
		return
	}
	if err := vs.venueStore.DeleteVenue(ctx, venueID); err != nil {
		log.Printf("[VenueService] Failed to evict venue %s: %v", venueID, err)
	}
}

func (vs *VenueService) notify(level notify.Level, text string) {
	vs.bus.Publish(notify.Notice{Level: level, Text: text})
}

// notifyError publishes the upstream message when there is one, fallback
// otherwise.
func (vs *VenueService) notifyError(fallback string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	text := fallback
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		text = apiErr.Message
	}
	vs.notify(notify.LevelError, text)
}

func isNotFound(err error) bool {
	var apiErr *api.APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}
