package models

import (
	"strings"

	"holidaze-server/internaltypes"
	"holidaze-server/models/venue"
)

const minPasswordLength = 8

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is a Holidaze profile. AccessToken is only set on login responses.
type Profile struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Bio          string        `json:"bio,omitempty"`
	Avatar       *venue.Media  `json:"avatar,omitempty"`
	Banner       *venue.Media  `json:"banner,omitempty"`
	VenueManager bool          `json:"venueManager"`
	AccessToken  string        `json:"accessToken,omitempty"`
	Venues       []venue.Venue `json:"venues,omitempty"`
	Bookings     []Booking     `json:"bookings,omitempty"`
}

type ProfileResponse struct {
	Data Profile `json:"data"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	VenueManager bool   `json:"venueManager"`
}

// Normalize trims the request and checks the fields the API requires.
func (r RegisterRequest) Normalize() (RegisterRequest, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	switch {
	case r.Name == "":
		return r, internaltypes.NewValidationError("Name is required")
	case r.Email == "":
		return r, internaltypes.NewValidationError("Email is required")
	case len(r.Password) < minPasswordLength:
		return r, internaltypes.NewValidationError("Password must be at least 8 characters")
	}
	return r, nil
}

// ProfileUpdate is the body of PUT /holidaze/profiles/{name}. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	Bio          *string      `json:"bio,omitempty"`
	Avatar       *venue.Media `json:"avatar,omitempty"`
	Banner       *venue.Media `json:"banner,omitempty"`
	VenueManager *bool        `json:"venueManager,omitempty"`
}

// Validate rejects an update that would send nothing, and media without a URL.
func (u ProfileUpdate) Validate() error {
	if u.Bio == nil && u.Avatar == nil && u.Banner == nil && u.VenueManager == nil {
		return internaltypes.NewValidationError("No changes to send.")
	}
	for _, m := range []*venue.Media{u.Avatar, u.Banner} {
		if m != nil && strings.TrimSpace(m.URL) == "" {
			return internaltypes.NewValidationError("Image URL is required")
		}
	}
	return nil
}
