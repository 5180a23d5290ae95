package services

import (
	"context"
	"fmt"
	"log"

	"holidaze-server/availability"
	"holidaze-server/config"
	"holidaze-server/models"
	"holidaze-server/models/venue"
)

// CursorStore persists listing state between a collect and its load-mores.
type CursorStore interface {
	SaveCursor(ctx context.Context, c *models.Cursor) (string, error)
	LoadCursor(ctx context.Context, id string) (*models.Cursor, error)
	DeleteCursor(ctx context.Context, id string) error
}

// CollectRequest is the input of one listing run.
type CollectRequest struct {
	Query       string
	Range       *availability.Range
	Sort        models.Sort
	TargetCount int
}

// VenueCollector merges upstream pages into a deduplicated result set.
type VenueCollector struct {
	pager    PageFetcher
	enricher *VenueEnricher
	cursors  CursorStore
	pageSize int
}

// NewVenueCollector builds a collector. cursors may be nil, in which case no
// cursor is handed out.
func NewVenueCollector(pager PageFetcher, enricher *VenueEnricher, cursors CursorStore, pageSize int) *VenueCollector {
	if pageSize < 1 {
		pageSize = config.DEFAULT_PAGE_SIZE
	}
	return &VenueCollector{
		pager:    pager,
		enricher: enricher,
		cursors:  cursors,
		pageSize: pageSize,
	}
}

// Collect fetches page after page until TargetCount venues passed the
// availability filter or the upstream runs out. TargetCount is capped at
// MAX_TARGET_PAGES pages' worth. Without a range only the
// first page is fetched. Any fetch error aborts the run and no partial
// result is returned.
func (c *VenueCollector) Collect(ctx context.Context, req CollectRequest) (*models.VenueResultSet, error) {
	target := req.TargetCount
	if target < 1 {
		target = c.pageSize
	}
	if max := config.MAX_TARGET_PAGES * c.pageSize; target > max {
		target = max
	}

	var (
		acc  []venue.Venue
		seen = map[string]struct{}{}
		page = 1
		next *int
	)
	for {
		p, err := c.fetchFiltered(ctx, req.Query, req.Range, req.Sort, page)
		if err != nil {
			return nil, err
		}
		acc = appendUnseen(acc, seen, p.Venues)
		next = p.NextPage

		if req.Range == nil || len(acc) >= target || next == nil {
			break
		}
		if *next <= page {
			log.Printf("[VenueCollector] Upstream returned next page %d after page %d, stopping", *next, page)
			next = nil
			break
		}
		page = *next
	}
	log.Printf("[VenueCollector] Collected %d venues for q=%q range=%v through page %d", len(acc), req.Query, req.Range, page)

	rs := &models.VenueResultSet{Venues: nonNil(acc), NextPage: next}
	if next != nil {
		cur := &models.Cursor{
			Query:    req.Query,
			Sort:     req.Sort,
			PageSize: c.pageSize,
			NextPage: next,
			SeenIDs:  seenIDs(acc),
		}
		if req.Range != nil {
			cur.DateFrom, cur.DateTo = req.Range.FromString(), req.Range.ToString()
		}
		id, err := c.saveCursor(ctx, cur)
		if err != nil {
			return nil, err
		}
		rs.Cursor = id
	}
	return rs, nil
}

// LoadMore continues the run stored under cursorID by exactly one page.
func (c *VenueCollector) LoadMore(ctx context.Context, cursorID string) (*models.VenueResultSet, error) {
	if c.cursors == nil {
		return nil, fmt.Errorf("load more: no cursor store")
	}
	cur, err := c.cursors.LoadCursor(ctx, cursorID)
	if err != nil {
		return nil, err
	}
	return c.LoadMoreFrom(ctx, cur)
}

// LoadMoreFrom fetches the page cur points at, drops venues already
// delivered, and advances cur. The cursor is saved again when more pages
// remain and dropped once the upstream is exhausted.
func (c *VenueCollector) LoadMoreFrom(ctx context.Context, cur *models.Cursor) (*models.VenueResultSet, error) {
	if cur == nil || cur.NextPage == nil {
		return &models.VenueResultSet{Venues: []venue.Venue{}}, nil
	}
	rng, err := availability.NewRange(cur.DateFrom, cur.DateTo)
	if err != nil {
		return nil, err
	}
	if cur.PageSize > 0 {
		c = c.withPageSize(cur.PageSize)
	}

	page := *cur.NextPage
	p, err := c.fetchFiltered(ctx, cur.Query, rng, cur.Sort, page)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(cur.SeenIDs))
	for _, id := range cur.SeenIDs {
		seen[id] = struct{}{}
	}
	added := appendUnseen(nil, seen, p.Venues)

	next := p.NextPage
	if next != nil && *next <= page {
		next = nil
	}
	rs := &models.VenueResultSet{Venues: nonNil(added), NextPage: next}
	if next != nil {
		cur.NextPage = next
		cur.SeenIDs = append(cur.SeenIDs, seenIDs(added)...)
		id, err := c.saveCursor(ctx, cur)
		if err != nil {
			return nil, err
		}
		rs.Cursor = id
	} else {
		c.DropCursor(ctx, cur.ID)
	}
	return rs, nil
}

// DropCursor forgets a saved cursor. Failures are logged only.
func (c *VenueCollector) DropCursor(ctx context.Context, cursorID string) {
	if cursorID == "" || c.cursors == nil {
		return
	}
	if err := c.cursors.DeleteCursor(ctx, cursorID); err != nil {
		log.Printf("[VenueCollector] Failed to drop cursor %s: %v", cursorID, err)
	}
}

func (c *VenueCollector) withPageSize(n int) *VenueCollector {
	cp := *c
	cp.pageSize = n
	return &cp
}

// fetchFiltered fetches one page and, when a range is set, enriches and
// filters it.
func (c *VenueCollector) fetchFiltered(ctx context.Context, query string, rng *availability.Range, sort models.Sort, page int) (*Page, error) {
	p, err := c.pager.FetchPage(ctx, PageRequest{
		Query:           query,
		Page:            page,
		PageSize:        c.pageSize,
		Sort:            sort,
		IncludeBookings: rng != nil,
	})
	if err != nil {
		log.Printf("[VenueCollector] Failed to fetch page %d: %v", page, err)
		return nil, err
	}
	if rng == nil {
		return p, nil
	}

	enriched, err := c.enricher.EnsureBookings(ctx, p.Venues)
	if err != nil {
		return nil, err
	}
	p.Venues = availability.FilterAvailable(enriched, rng)
	return p, nil
}

func (c *VenueCollector) saveCursor(ctx context.Context, cur *models.Cursor) (string, error) {
	if c.cursors == nil {
		return "", nil
	}
	id, err := c.cursors.SaveCursor(ctx, cur)
	if err != nil {
		log.Printf("[VenueCollector] Failed to save cursor: %v", err)
		return "", err
	}
	return id, nil
}

func appendUnseen(acc []venue.Venue, seen map[string]struct{}, venues []venue.Venue) []venue.Venue {
	for _, v := range venues {
		if _, dup := seen[v.ID]; dup {
			continue
		}
		seen[v.ID] = struct{}{}
		acc = append(acc, v)
	}
	return acc
}

func seenIDs(venues []venue.Venue) []string {
	ids := make([]string, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}
	return ids
}

func nonNil(venues []venue.Venue) []venue.Venue {
	if venues == nil {
		return []venue.Venue{}
	}
	return venues
}
