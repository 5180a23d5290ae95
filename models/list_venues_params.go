package models

import (
	"net/url"
	"strconv"
)

// ListVenuesParams mirrors the listing endpoints' query args. Use zero-values to omit.
type ListVenuesParams struct {
	Page            int    // 1-based; 0 omits
	Limit           int    // page size; 0 omits
	Sort            string // "created" | "price" | "rating" | "name"
	SortOrder       string // "asc" | "desc"
	IncludeBookings bool   // hint only, sent as _bookings=true
	IncludeOwner    bool   // _owner=true
}

func (p ListVenuesParams) ToValues() url.Values {
	q := url.Values{}

	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	if p.IncludeBookings {
		q.Set("_bookings", "true")
	}
	if p.IncludeOwner {
		q.Set("_owner", "true")
	}
	return q
}

// ProfileParams selects the sub-records embedded in a profile response.
type ProfileParams struct {
	Bookings bool
	Venues   bool
}

func (p ProfileParams) ToValues() url.Values {
	q := url.Values{}
	if p.Bookings {
		q.Set("_bookings", "true")
	}
	if p.Venues {
		q.Set("_venues", "true")
	}
	return q
}

// ListBookingsParams are the query args of a profile's bookings listing.
type ListBookingsParams struct {
	Page         int
	Limit        int
	Sort         string
	SortOrder    string
	IncludeVenue bool // _venue=true
}

func (p ListBookingsParams) ToValues() url.Values {
	q := ListVenuesParams{Page: p.Page, Limit: p.Limit, Sort: p.Sort, SortOrder: p.SortOrder}.ToValues()
	if p.IncludeVenue {
		q.Set("_venue", "true")
	}
	return q
}
