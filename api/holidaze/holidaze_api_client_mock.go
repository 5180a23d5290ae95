package holidaze

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"holidaze-server/api"
	"holidaze-server/availability"
	"holidaze-server/models"
	"holidaze-server/models/venue"
	"holidaze-server/util"
)

const defaultMockPageSize = 100

// HolidazeApiClientMock is an in-memory Holidaze API. It backs non-prod
// environments and the service tests.
type HolidazeApiClientMock struct {
	mu sync.Mutex

	venues        []venue.Venue
	embedBookings bool
	failVenues    map[string]bool
	failPages     map[int]error
	delay         time.Duration
	nextID        int
	profiles      map[string]models.Profile
	signedIn      string

	listCalls      int
	detailCalls    int
	requestedPages []int
	lastParams     models.ListVenuesParams
	inFlight       int
	maxInFlight    int
}

// NewHolidazeApiClientMock creates a new instance of HolidazeApiClientMock
func NewHolidazeApiClientMock(venues ...venue.Venue) *HolidazeApiClientMock {
	m := &HolidazeApiClientMock{
		failVenues: map[string]bool{},
		failPages:  map[int]error{},
		profiles:   map[string]models.Profile{},
	}
	for _, v := range venues {
		m.venues = append(m.venues, v.Clone())
	}
	return m
}

// NewHolidazeApiClientMockFromJSON seeds the mock from a JSON array of venues.
func NewHolidazeApiClientMockFromJSON(path string) (*HolidazeApiClientMock, error) {
	venues, err := util.ReadVenuesFromJSON(path)
	if err != nil {
		return nil, err
	}
	m := NewHolidazeApiClientMock(venues...)
	m.embedBookings = true
	return m, nil
}

// SetEmbedBookings controls whether listings honor the _bookings hint.
func (m *HolidazeApiClientMock) SetEmbedBookings(embed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedBookings = embed
}

// FailVenue makes every detail fetch of venueID fail with a 500.
func (m *HolidazeApiClientMock) FailVenue(venueID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failVenues[venueID] = true
}

// FailPage makes listing calls for page return err.
func (m *HolidazeApiClientMock) FailPage(page int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPages[page] = err
}

// SetDelay makes every call take at least d, honoring ctx.
func (m *HolidazeApiClientMock) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

func (m *HolidazeApiClientMock) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

func (m *HolidazeApiClientMock) DetailCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detailCalls
}

// RequestedPages lists the page numbers asked for, in call order.
func (m *HolidazeApiClientMock) RequestedPages() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int{}, m.requestedPages...)
}

// LastListParams returns the params of the latest listing call.
func (m *HolidazeApiClientMock) LastListParams() models.ListVenuesParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastParams
}

// MaxInFlight is the highest number of concurrent detail fetches observed.
func (m *HolidazeApiClientMock) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

func (m *HolidazeApiClientMock) wait(ctx context.Context) error {
	m.mu.Lock()
	d := m.delay
	m.mu.Unlock()
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *HolidazeApiClientMock) ListVenues(ctx context.Context, params models.ListVenuesParams) (*models.VenuesPageResponse, error) {
	return m.page(ctx, params, func(venue.Venue) bool { return true })
}

func (m *HolidazeApiClientMock) SearchVenues(ctx context.Context, query string, params models.ListVenuesParams) (*models.VenuesPageResponse, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	return m.page(ctx, params, func(v venue.Venue) bool {
		return strings.Contains(strings.ToLower(v.Name), q) ||
			strings.Contains(strings.ToLower(v.Description), q)
	})
}

func (m *HolidazeApiClientMock) ListVenuesByProfile(ctx context.Context, name string, params models.ListVenuesParams) (*models.VenuesPageResponse, error) {
	return m.page(ctx, params, func(v venue.Venue) bool {
		return v.Owner != nil && v.Owner.Name == name
	})
}

func (m *HolidazeApiClientMock) page(ctx context.Context, params models.ListVenuesParams, keep func(venue.Venue) bool) (*models.VenuesPageResponse, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}

	m.mu.Lock()
	m.listCalls++
	m.requestedPages = append(m.requestedPages, page)
	m.lastParams = params
	failErr := m.failPages[page]
	m.mu.Unlock()

	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if failErr != nil {
		return nil, failErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []venue.Venue
	for _, v := range m.venues {
		if keep(v) {
			matched = append(matched, v.Clone())
		}
	}
	sortVenues(matched, params.Sort, params.SortOrder)

	limit := params.Limit
	if limit < 1 {
		limit = defaultMockPageSize
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	data := make([]venue.Venue, 0, end-start)
	for _, v := range matched[start:end] {
		if !(params.IncludeBookings && m.embedBookings) {
			v = v.WithoutBookings()
		} else if v.Bookings == nil {
			v.Bookings = []venue.BookingStub{}
		}
		data = append(data, v)
	}

	pageCount := (len(matched) + limit - 1) / limit
	meta := models.PageMeta{
		IsFirstPage: page == 1,
		IsLastPage:  end >= len(matched),
		CurrentPage: page,
		PageCount:   pageCount,
		TotalCount:  len(matched),
	}
	if page > 1 {
		prev := page - 1
		meta.PreviousPage = &prev
	}
	if end < len(matched) {
		next := page + 1
		meta.NextPage = &next
	}
	return &models.VenuesPageResponse{Data: data, Meta: meta}, nil
}

func sortVenues(vs []venue.Venue, field, order string) {
	less := func(a, b venue.Venue) bool { return a.Created < b.Created }
	switch field {
	case models.SortPrice:
		less = func(a, b venue.Venue) bool { return a.Price < b.Price }
	case models.SortRating:
		less = func(a, b venue.Venue) bool { return a.Rating < b.Rating }
	case models.SortName:
		less = func(a, b venue.Venue) bool { return a.Name < b.Name }
	}
	desc := order != models.OrderAsc
	sort.SliceStable(vs, func(i, j int) bool {
		if desc {
			return less(vs[j], vs[i])
		}
		return less(vs[i], vs[j])
	})
}

func (m *HolidazeApiClientMock) GetVenue(ctx context.Context, venueID string, includeBookings bool) (*venue.Venue, error) {
	m.mu.Lock()
	m.detailCalls++
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failVenues[venueID] {
		return nil, &api.APIError{Status: http.StatusInternalServerError, Message: "Request failed: 500"}
	}
	i := m.indexOf(venueID)
	if i < 0 {
		return nil, &api.APIError{Status: http.StatusNotFound, Message: "No venue with such ID"}
	}
	v := m.venues[i].Clone()
	if !includeBookings {
		v = v.WithoutBookings()
	} else if v.Bookings == nil {
		v.Bookings = []venue.BookingStub{}
	}
	return &v, nil
}

func (m *HolidazeApiClientMock) indexOf(venueID string) int {
	for i, v := range m.venues {
		if v.ID == venueID {
			return i
		}
	}
	return -1
}

func (m *HolidazeApiClientMock) CreateVenue(ctx context.Context, body models.VenueBody) (*venue.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	v := venue.Venue{
		ID:          fmt.Sprintf("venue-%d", m.nextID),
		Name:        body.Name,
		Description: body.Description,
		Media:       body.Media,
		Price:       body.Price,
		MaxGuests:   body.MaxGuests,
		Rating:      body.Rating,
		Created:     time.Now().UTC().Format(time.RFC3339),
		Meta:        body.Meta,
		Location:    body.Location,
		Bookings:    []venue.BookingStub{},
	}
	m.venues = append(m.venues, v)
	out := v.Clone()
	return &out, nil
}

func (m *HolidazeApiClientMock) UpdateVenue(ctx context.Context, venueID string, body models.VenueBody) (*venue.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(venueID)
	if i < 0 {
		return nil, &api.APIError{Status: http.StatusNotFound, Message: "No venue with such ID"}
	}
	v := &m.venues[i]
	v.Name, v.Description, v.Media = body.Name, body.Description, body.Media
	v.Price, v.MaxGuests, v.Rating = body.Price, body.MaxGuests, body.Rating
	v.Meta, v.Location = body.Meta, body.Location
	v.Updated = time.Now().UTC().Format(time.RFC3339)
	out := v.Clone()
	return &out, nil
}

func (m *HolidazeApiClientMock) DeleteVenue(ctx context.Context, venueID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(venueID)
	if i < 0 {
		return &api.APIError{Status: http.StatusNotFound, Message: "No venue with such ID"}
	}
	m.venues = append(m.venues[:i], m.venues[i+1:]...)
	return nil
}

// Register stores a profile; names must be unique.
func (m *HolidazeApiClientMock) Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.profiles[req.Name]; exists {
		return nil, &api.APIError{Status: http.StatusBadRequest, Message: "Profile already exists"}
	}
	p := models.Profile{Name: req.Name, Email: req.Email, VenueManager: req.VenueManager}
	m.profiles[req.Name] = p
	return &p, nil
}

// Login accepts any email with the password "password". The signed-in name
// becomes the customer of later bookings.
func (m *HolidazeApiClientMock) Login(ctx context.Context, req models.LoginRequest) (*models.Profile, error) {
	if req.Password != "password" {
		return nil, &api.APIError{Status: http.StatusUnauthorized, Message: "Invalid email or password"}
	}
	name := strings.SplitN(req.Email, "@", 2)[0]

	m.mu.Lock()
	defer m.mu.Unlock()
	m.signedIn = name
	p := m.profileLocked(name)
	p.Email = req.Email
	p.AccessToken = "mock-token-" + name
	return &p, nil
}

func (m *HolidazeApiClientMock) GetProfile(ctx context.Context, name string, params models.ProfileParams) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profileLocked(name)
	if params.Venues {
		for _, v := range m.venues {
			if v.Owner != nil && v.Owner.Name == name {
				p.Venues = append(p.Venues, v.Clone())
			}
		}
	}
	if params.Bookings {
		p.Bookings = m.bookingsOfLocked(name, false)
	}
	return &p, nil
}

// UpdateProfile applies the non-nil fields of body.
func (m *HolidazeApiClientMock) UpdateProfile(ctx context.Context, name string, body models.ProfileUpdate) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profileLocked(name)
	if body.Bio != nil {
		p.Bio = *body.Bio
	}
	if body.Avatar != nil {
		p.Avatar = body.Avatar
	}
	if body.Banner != nil {
		p.Banner = body.Banner
	}
	if body.VenueManager != nil {
		p.VenueManager = *body.VenueManager
	}
	m.profiles[name] = p
	return &p, nil
}

// ListBookingsByProfile pages the bookings made by name, sorted by dateFrom.
func (m *HolidazeApiClientMock) ListBookingsByProfile(ctx context.Context, name string, params models.ListBookingsParams) (*models.BookingsPageResponse, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.bookingsOfLocked(name, params.IncludeVenue)
	desc := params.SortOrder != models.OrderAsc
	sort.SliceStable(all, func(i, j int) bool {
		if desc {
			return all[j].DateFrom < all[i].DateFrom
		}
		return all[i].DateFrom < all[j].DateFrom
	})

	page, limit := params.Page, params.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultMockPageSize
	}
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	meta := models.PageMeta{
		IsFirstPage: page == 1,
		IsLastPage:  end >= len(all),
		CurrentPage: page,
		PageCount:   (len(all) + limit - 1) / limit,
		TotalCount:  len(all),
	}
	if end < len(all) {
		next := page + 1
		meta.NextPage = &next
	}
	return &models.BookingsPageResponse{Data: append([]models.Booking{}, all[start:end]...), Meta: meta}, nil
}

// profileLocked returns the stored profile of name, or a default one. A
// profile owning venues is always a venue manager.
func (m *HolidazeApiClientMock) profileLocked(name string) models.Profile {
	p, ok := m.profiles[name]
	if !ok {
		p = models.Profile{Name: name, Email: name + "@stud.noroff.no"}
	}
	for _, v := range m.venues {
		if v.Owner != nil && v.Owner.Name == name {
			p.VenueManager = true
			break
		}
	}
	return p
}

func (m *HolidazeApiClientMock) bookingsOfLocked(name string, withVenue bool) []models.Booking {
	var out []models.Booking
	for _, v := range m.venues {
		for _, b := range v.Bookings {
			if b.Customer == nil || b.Customer.Name != name {
				continue
			}
			bk := models.Booking{ID: b.ID, DateFrom: b.DateFrom, DateTo: b.DateTo, Guests: b.Guests, Created: b.Created}
			if withVenue {
				vv := v.Clone().WithoutBookings()
				bk.Venue = &vv
			}
			out = append(out, bk)
		}
	}
	return out
}

func (m *HolidazeApiClientMock) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(req.VenueID)
	if i < 0 {
		return nil, &api.APIError{Status: http.StatusNotFound, Message: "No venue with such ID"}
	}
	requested, err := availability.NewRange(req.DateFrom, req.DateTo)
	if err != nil || requested == nil {
		return nil, &api.APIError{Status: http.StatusBadRequest, Message: "Invalid booking dates"}
	}
	if !availability.IsAvailable(m.venues[i], *requested) {
		return nil, &api.APIError{Status: http.StatusConflict, Message: "The venue is already booked for the selected dates"}
	}
	m.nextID++
	stub := venue.BookingStub{
		ID:       fmt.Sprintf("booking-%d", m.nextID),
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Guests:   req.Guests,
	}
	if m.signedIn != "" {
		stub.Customer = &venue.Owner{Name: m.signedIn}
	}
	m.venues[i].Bookings = append(m.venues[i].Bookings, stub)
	return &models.Booking{ID: stub.ID, DateFrom: stub.DateFrom, DateTo: stub.DateTo, Guests: stub.Guests}, nil
}

func (m *HolidazeApiClientMock) DeleteBooking(ctx context.Context, bookingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.venues {
		for j, b := range m.venues[i].Bookings {
			if b.ID == bookingID {
				m.venues[i].Bookings = append(m.venues[i].Bookings[:j], m.venues[i].Bookings[j+1:]...)
				return nil
			}
		}
	}
	return &api.APIError{Status: http.StatusNotFound, Message: "No booking with such ID"}
}
