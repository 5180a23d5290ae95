package models

import "holidaze-server/models/venue"

// VenuesPageResponse is one page of GET /holidaze/venues or /venues/search.
type VenuesPageResponse struct {
	Data []venue.Venue `json:"data"`
	Meta PageMeta      `json:"meta"`
}

// PageMeta is the pagination block. NextPage is nil on the last page.
type PageMeta struct {
	IsFirstPage  bool `json:"isFirstPage"`
	IsLastPage   bool `json:"isLastPage"`
	CurrentPage  int  `json:"currentPage"`
	PreviousPage *int `json:"previousPage"`
	NextPage     *int `json:"nextPage"`
	PageCount    int  `json:"pageCount"`
	TotalCount   int  `json:"totalCount"`
}

// VenueResponse wraps a single venue: {"data": {...}}.
type VenueResponse struct {
	Data venue.Venue `json:"data"`
}
