package venue

// BookingStub is an existing reservation embedded in a venue. The stay
// occupies [DateFrom, DateTo); both are ISO-8601 strings.
type BookingStub struct {
	ID       string `json:"id,omitempty"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests,omitempty"`
	Created  string `json:"created,omitempty"`
	Updated  string `json:"updated,omitempty"`
	Customer *Owner `json:"customer,omitempty"`
}
