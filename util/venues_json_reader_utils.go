package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"holidaze-server/models"
	"holidaze-server/models/venue"
)

// ReadVenuesFromJSON loads a JSON array of venues from disk.
func ReadVenuesFromJSON(filePath string) ([]venue.Venue, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var venues []venue.Venue
	if err := json.Unmarshal(data, &venues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venues: %w", err)
	}
	return venues, nil
}

// ReadVenueFromJSON loads a single Venue from JSON on disk.
func ReadVenueFromJSON(filePath string) (*venue.Venue, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var v venue.Venue
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Venue: %w", err)
	}
	return &v, nil
}

// ReadVenuesPageFromJSON loads a VenuesPageResponse from JSON on disk.
func ReadVenuesPageFromJSON(filePath string) (*models.VenuesPageResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.VenuesPageResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal VenuesPageResponse: %w", err)
	}
	return &resp, nil
}

// PrintVenueResultSet prints one line per venue plus the paging state.
func PrintVenueResultSet(w io.Writer, rs *models.VenueResultSet) {
	if rs == nil {
		return
	}
	for _, v := range rs.Venues {
		city := ""
		if v.Location.City != nil {
			city = *v.Location.City
		}
		fmt.Fprintf(w, "%-24s %-32.32s %8.2f/night  max %2d guests  %s\n", v.ID, v.Name, v.Price, v.MaxGuests, city)
	}
	fmt.Fprintf(w, "Venues returned: %d\n", len(rs.Venues))
	if rs.HasMore() {
		fmt.Fprintf(w, "Next page: %d", *rs.NextPage)
		if rs.Cursor != "" {
			fmt.Fprintf(w, " (cursor %s)", rs.Cursor)
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "No more results")
	}
}
