package venue

// Venue is a bookable listing as returned by the Holidaze API.
type Venue struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Media       []Media  `json:"media"`
	Price       float64  `json:"price"`
	MaxGuests   int      `json:"maxGuests"`
	Rating      float64  `json:"rating"`
	Created     string   `json:"created,omitempty"`
	Updated     string   `json:"updated,omitempty"`
	Meta        Meta     `json:"meta"`
	Location    Location `json:"location"`
	Owner       *Owner   `json:"owner,omitempty"`

	// Bookings is nil when the API did not embed bookings and a non-nil,
	// possibly empty slice when it did. Never add omitempty here: the
	// difference has to survive a round trip through the cache.
	Bookings []BookingStub `json:"bookings"`
}

// HasBookings reports whether the bookings field was populated by the API.
func (v Venue) HasBookings() bool {
	return v.Bookings != nil
}

// WithoutBookings returns a copy of v that looks like an un-enriched listing.
func (v Venue) WithoutBookings() Venue {
	v.Bookings = nil
	return v
}

// Clone returns a copy of v that shares no slices with it.
func (v Venue) Clone() Venue {
	if v.Media != nil {
		v.Media = append([]Media{}, v.Media...)
	}
	if v.Bookings != nil {
		v.Bookings = append([]BookingStub{}, v.Bookings...)
	}
	if v.Owner != nil {
		o := *v.Owner
		v.Owner = &o
	}
	return v
}

type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type Meta struct {
	Wifi      bool `json:"wifi"`
	Parking   bool `json:"parking"`
	Breakfast bool `json:"breakfast"`
	Pets      bool `json:"pets"`
}

type Location struct {
	Address   *string `json:"address"`
	City      *string `json:"city"`
	Zip       *string `json:"zip"`
	Country   *string `json:"country"`
	Continent *string `json:"continent"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// Owner is the public part of the venue manager's profile.
type Owner struct {
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Bio    string `json:"bio,omitempty"`
	Avatar *Media `json:"avatar,omitempty"`
	Banner *Media `json:"banner,omitempty"`
}
