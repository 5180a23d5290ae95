package services

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"holidaze-server/config"
	"holidaze-server/models/venue"
)

// VenueFetcher loads a single venue, optionally with its bookings embedded.
type VenueFetcher interface {
	GetVenue(ctx context.Context, venueID string, includeBookings bool) (*venue.Venue, error)
}

// VenueCache is the read/write side of the venue detail cache.
type VenueCache interface {
	GetVenue(ctx context.Context, venueID string) (*venue.Venue, error)
	UpsertVenue(ctx context.Context, v venue.Venue) error
}

// VenueEnricher makes sure every venue of a page carries its bookings.
type VenueEnricher struct {
	api   VenueFetcher
	cache VenueCache
	limit int
}

// NewVenueEnricher builds an enricher running at most limit detail fetches at
// once. cache may be nil.
func NewVenueEnricher(api VenueFetcher, cache VenueCache, limit int) *VenueEnricher {
	if limit < 1 {
		limit = config.DEFAULT_ENRICH_CONCURRENCY
	}
	return &VenueEnricher{api: api, cache: cache, limit: limit}
}

// EnsureBookings returns the page with bookings attached, in the original
// order. A page whose first venue already has bookings is returned as is.
// A failed detail fetch keeps the original record; only context
// cancellation is reported as an error.
func (e *VenueEnricher) EnsureBookings(ctx context.Context, venues []venue.Venue) ([]venue.Venue, error) {
	if len(venues) == 0 || venues[0].HasBookings() {
		return venues, nil
	}

	out := make([]venue.Venue, len(venues))
	copy(out, venues)

	g := new(errgroup.Group)
	g.SetLimit(e.limit)
	for i := range out {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			out[i] = e.enrichOne(ctx, out[i])
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *VenueEnricher) enrichOne(ctx context.Context, v venue.Venue) venue.Venue {
	detailed, err := e.api.GetVenue(ctx, v.ID, true)
	if err == nil && detailed != nil {
		if detailed.Bookings == nil {
			detailed.Bookings = []venue.BookingStub{}
		}
		if e.cache != nil {
			if cerr := e.cache.UpsertVenue(ctx, *detailed); cerr != nil {
				log.Printf("[VenueEnricher] Failed to cache venue %s: %v", v.ID, cerr)
			}
		}
		return *detailed
	}
	if ctx.Err() != nil {
		return v
	}

	if err == nil {
		log.Printf("[VenueEnricher] Detail fetch returned no venue for %s", v.ID)
	} else {
		log.Printf("[VenueEnricher] Detail fetch failed for venue %s: %v", v.ID, err)
	}
	if e.cache != nil {
		cached, cerr := e.cache.GetVenue(ctx, v.ID)
		if cerr == nil && cached != nil && cached.HasBookings() {
			log.Printf("[VenueEnricher] Using cached bookings for venue %s", v.ID)
			return *cached
		}
	}
	return v
}
