package models

import (
	"math"
	"strings"

	"holidaze-server/internaltypes"
	"holidaze-server/models/venue"
)

// VenueInput is what a venue manager submits; VenueBody is what the API receives.
type VenueInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       *float64       `json:"price"`
	MaxGuests   *int           `json:"maxGuests"`
	Rating      *float64       `json:"rating"`
	Media       []venue.Media  `json:"media"`
	MediaURL    string         `json:"mediaUrl"`
	MediaAlt    string         `json:"mediaAlt"`
	Meta        venue.Meta     `json:"meta"`
	Location    venue.Location `json:"location"`
}

type VenueBody struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	MaxGuests   int            `json:"maxGuests"`
	Rating      float64        `json:"rating"`
	Media       []venue.Media  `json:"media"`
	Meta        venue.Meta     `json:"meta"`
	Location    venue.Location `json:"location"`
}

// Normalize trims and validates the input. Media without an http(s) URL is
// dropped, MediaURL is used when no media list survives, rating is clamped
// to [0, 5].
func (in VenueInput) Normalize() (VenueBody, error) {
	body := VenueBody{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		MaxGuests:   1,
		Media:       []venue.Media{},
		Meta:        in.Meta,
		Location:    in.Location,
	}
	if in.Price != nil {
		body.Price = *in.Price
	}
	if in.MaxGuests != nil {
		body.MaxGuests = *in.MaxGuests
	}
	if in.Rating != nil && !math.IsNaN(*in.Rating) && !math.IsInf(*in.Rating, 0) {
		body.Rating = math.Min(5, math.Max(0, *in.Rating))
	}

	for _, m := range in.Media {
		if isHTTPURL(m.URL) {
			body.Media = append(body.Media, venue.Media{URL: m.URL, Alt: m.Alt})
		}
	}
	if len(body.Media) == 0 && isHTTPURL(in.MediaURL) {
		body.Media = append(body.Media, venue.Media{URL: in.MediaURL, Alt: in.MediaAlt})
	}

	if body.Name == "" {
		return VenueBody{}, internaltypes.NewValidationError("Name is required")
	}
	if body.Description == "" {
		return VenueBody{}, internaltypes.NewValidationError("Description is required")
	}
	if math.IsNaN(body.Price) || math.IsInf(body.Price, 0) {
		return VenueBody{}, internaltypes.NewValidationError("Price must be a number")
	}
	if body.MaxGuests < 1 {
		return VenueBody{}, internaltypes.NewValidationError("Max guests must be an integer ≥ 1")
	}
	return body, nil
}

func isHTTPURL(s string) bool {
	s = strings.ToLower(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
