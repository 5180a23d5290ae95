package services

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"holidaze-server/models"
	"holidaze-server/models/venue"
)

// RefreshStore is the venue cache as the refresher sees it.
type RefreshStore interface {
	VenueStore
	ListCachedVenueIDs(ctx context.Context) ([]string, error)
}

// VenuesRefresherService periodically warms the venue cache with the first
// listing pages, bookings included, so enrichment has a fallback copy.
type VenuesRefresherService struct {
	pager      PageFetcher
	enricher   *VenueEnricher
	venueStore RefreshStore
	pages      int
	pageSize   int
}

// NewVenuesRefresherService constructs a new Refresher with dependencies.
func NewVenuesRefresherService(
	pager PageFetcher,
	enricher *VenueEnricher,
	venueStore RefreshStore,
	pages, pageSize int,
) *VenuesRefresherService {
	if pages < 1 {
		pages = 1
	}
	return &VenuesRefresherService{
		pager:      pager,
		enricher:   enricher,
		venueStore: venueStore,
		pages:      pages,
		pageSize:   pageSize,
	}
}

// StartPeriodicJob schedules RefreshVenuesData on a cron schedule such as
// "@every 30m". Stop the returned scheduler on shutdown.
func (vr *VenuesRefresherService) StartPeriodicJob(ctx context.Context, schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		log.Println("[VenuesRefresherService] Running periodic venues refresher job.")
		if _, err := vr.RefreshVenuesData(ctx); err != nil {
			log.Printf("[VenuesRefresherService] Periodic refresh failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	c.Start()
	log.Printf("[VenuesRefresherService] Scheduled refresh %q over %d pages", schedule, vr.pages)
	return c, nil
}

// RefreshVenuesData fetches the configured number of pages, newest first, and
// upserts every venue once. Venues already cached but not on those pages
// are then refetched, or evicted when the upstream no longer has them. It
// returns the ids that were cached.
func (vr *VenuesRefresherService) RefreshVenuesData(ctx context.Context) ([]string, error) {
	seenIDs := make(map[string]struct{})
	var uniqueIDs []string

	page := 1
	for i := 0; i < vr.pages; i++ {
		log.Printf("[VenuesRefresherService] Fetching page %d", page)
		p, err := vr.pager.FetchPage(ctx, PageRequest{
			Page:            page,
			PageSize:        vr.pageSize,
			Sort:            models.DefaultSort,
			IncludeBookings: true,
		})
		if err != nil {
			log.Printf("[VenuesRefresherService] Failed fetching page %d: %v", page, err)
			return uniqueIDs, err
		}

		venues, err := vr.enricher.EnsureBookings(ctx, p.Venues)
		if err != nil {
			return uniqueIDs, err
		}

		for _, v := range venues {
			if _, dup := seenIDs[v.ID]; dup {
				log.Printf("[VenuesRefresherService] Skipping duplicate venue ID=%s", v.ID)
				continue
			}
			if !v.HasBookings() {
				log.Printf("[VenuesRefresherService] Venue %s has no bookings data, not caching", v.ID)
				continue
			}
			seenIDs[v.ID] = struct{}{}
			if err := vr.venueStore.UpsertVenue(ctx, v); err != nil {
				log.Printf("[VenuesRefresherService] Upsert failed for %s: %v", v.ID, err)
				continue
			}
			uniqueIDs = append(uniqueIDs, v.ID)
		}

		if p.NextPage == nil || *p.NextPage <= page {
			break
		}
		page = *p.NextPage
	}

	rewarmed, err := vr.rewarmCached(ctx, seenIDs)
	if err != nil {
		return uniqueIDs, err
	}
	uniqueIDs = append(uniqueIDs, rewarmed...)

	log.Printf("[VenuesRefresherService] Cached %d venues", len(uniqueIDs))
	return uniqueIDs, nil
}

// rewarmCached refetches cached venues outside seen, at most
// enricher.limit at a time.
func (vr *VenuesRefresherService) rewarmCached(ctx context.Context, seen map[string]struct{}) ([]string, error) {
	cachedIDs, err := vr.venueStore.ListCachedVenueIDs(ctx)
	if err != nil {
		log.Printf("[VenuesRefresherService] Failed listing cached venues: %v", err)
		return nil, nil
	}
	var stale []string
	for _, id := range cachedIDs {
		if _, ok := seen[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return nil, nil
	}
	log.Printf("[VenuesRefresherService] Refetching %d cached venues", len(stale))

	fresh := make([]*venue.Venue, len(stale))
	g := new(errgroup.Group)
	g.SetLimit(vr.enricher.limit)
	for i, id := range stale {
		i, id := i, id
		g.Go(func() error {
			v, err := vr.enricher.api.GetVenue(ctx, id, true)
			switch {
			case err == nil:
				fresh[i] = v
			case isNotFound(err):
				if derr := vr.venueStore.DeleteVenue(ctx, id); derr != nil {
					log.Printf("[VenuesRefresherService] Failed evicting %s: %v", id, derr)
				}
			default:
				log.Printf("[VenuesRefresherService] Refetch failed for %s, keeping cached copy: %v", id, err)
			}
			return nil
		})
	}
	g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ids []string
	for _, v := range fresh {
		if v == nil {
			continue
		}
		if v.Bookings == nil {
			v.Bookings = []venue.BookingStub{}
		}
		if err := vr.venueStore.UpsertVenue(ctx, *v); err != nil {
			log.Printf("[VenuesRefresherService] Upsert failed for %s: %v", v.ID, err)
			continue
		}
		ids = append(ids, v.ID)
	}
	return ids, nil
}
