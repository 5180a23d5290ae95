package services

import (
	"context"
	"strings"

	"holidaze-server/api/holidaze"
	"holidaze-server/models"
	"holidaze-server/models/venue"
)

// PageRequest describes one upstream listing call.
type PageRequest struct {
	Query           string
	Page            int
	PageSize        int
	Sort            models.Sort
	IncludeBookings bool
}

// Page is one page of upstream results. NextPage is nil on the last page.
type Page struct {
	Venues   []venue.Venue
	NextPage *int
}

// PageFetcher fetches a single page of venues.
type PageFetcher interface {
	FetchPage(ctx context.Context, req PageRequest) (*Page, error)
}

// HolidazePager fetches pages from the listing endpoint, or the search
// endpoint when a query is given. Owners are always embedded.
type HolidazePager struct {
	api holidaze.HolidazeAPI
}

func NewHolidazePager(api holidaze.HolidazeAPI) *HolidazePager {
	return &HolidazePager{api: api}
}

func (p *HolidazePager) FetchPage(ctx context.Context, req PageRequest) (*Page, error) {
	params := models.ListVenuesParams{
		Page:            req.Page,
		Limit:           req.PageSize,
		Sort:            req.Sort.Field,
		SortOrder:       req.Sort.Order,
		IncludeBookings: req.IncludeBookings,
		IncludeOwner:    true,
	}

	var (
		resp *models.VenuesPageResponse
		err  error
	)
	if q := strings.TrimSpace(req.Query); q != "" {
		resp, err = p.api.SearchVenues(ctx, q, params)
	} else {
		resp, err = p.api.ListVenues(ctx, params)
	}
	if err != nil {
		return nil, err
	}
	return &Page{Venues: resp.Data, NextPage: resp.Meta.NextPage}, nil
}
