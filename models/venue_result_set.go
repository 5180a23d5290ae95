package models

import "holidaze-server/models/venue"

// VenueResultSet is what a listing run hands back to its caller.
// Cursor is empty when the upstream source is exhausted.
type VenueResultSet struct {
	Venues   []venue.Venue `json:"data"`
	NextPage *int          `json:"nextPage"`
	Cursor   string        `json:"cursor,omitempty"`
}

// HasMore reports whether another page can be loaded.
func (rs *VenueResultSet) HasMore() bool {
	return rs != nil && rs.NextPage != nil
}

// Cursor is the state LoadMore needs to continue a listing run.
type Cursor struct {
	ID       string   `json:"id"`
	Query    string   `json:"q,omitempty"`
	DateFrom string   `json:"dateFrom,omitempty"`
	DateTo   string   `json:"dateTo,omitempty"`
	Sort     Sort     `json:"sort"`
	PageSize int      `json:"pageSize"`
	NextPage *int     `json:"nextPage"`
	SeenIDs  []string `json:"seen"`
}
