package services

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaze-server/api"
	"holidaze-server/api/holidaze"
	"holidaze-server/availability"
	"holidaze-server/internaltypes"
	"holidaze-server/models"
	"holidaze-server/models/venue"
	"holidaze-server/notify"
)

type venueServiceFixture struct {
	mock    *holidaze.HolidazeApiClientMock
	store   VenueStore
	service *VenueService
	notices []notify.Notice
}

func newVenueServiceFixture(t *testing.T, mock *holidaze.HolidazeApiClientMock) *venueServiceFixture {
	t.Helper()
	f := &venueServiceFixture{mock: mock, store: newVenueStore()}
	bus := notify.NewBus()
	bus.OnNotice(func(n notify.Notice) { f.notices = append(f.notices, n) })

	enricher := NewVenueEnricher(mock, f.store, 4)
	collector := NewVenueCollector(NewHolidazePager(mock), enricher, newCursorStore(), 12)
	f.service = NewVenueService(mock, f.store, collector, NewQueryGuard(), bus)
	return f
}

func TestVenueService_Search(t *testing.T) {
	f := newVenueServiceFixture(t, holidaze.NewHolidazeApiClientMock(mkVenues(20, 2)...))

	rs, err := f.service.Search(context.Background(), "s1", SearchParams{
		DateFrom: "2025-06-10",
		DateTo:   "2025-06-15T00:00:00.000Z",
		Sort:     "newAsc",
	})
	require.NoError(t, err)

	assert.Len(t, rs.Venues, 19)
	assert.NotContains(t, ids(rs.Venues), "v2")
	assert.Equal(t, "v1", rs.Venues[0].ID)
}

func TestVenueService_SearchRejectsInvalidInput(t *testing.T) {
	f := newVenueServiceFixture(t, holidaze.NewHolidazeApiClientMock(mkVenues(3)...))
	ctx := context.Background()

	_, err := f.service.Search(ctx, "", SearchParams{DateFrom: "2025-06-15", DateTo: "2025-06-10"})
	assert.ErrorIs(t, err, availability.ErrInvalidRange)

	_, err = f.service.Search(ctx, "", SearchParams{DateFrom: "2025-06-15"})
	assert.ErrorIs(t, err, availability.ErrInvalidRange)

	_, err = f.service.Search(ctx, "", SearchParams{Sort: "distance"})
	assert.Error(t, err)

	assert.Zero(t, f.mock.ListCalls())
}

func TestVenueService_SearchSuperseded(t *testing.T) {
	mock := holidaze.NewHolidazeApiClientMock(mkVenues(12)...)
	mock.SetDelay(100 * time.Millisecond)
	f := newVenueServiceFixture(t, mock)
	ctx := context.Background()

	stale := make(chan error, 1)
	go func() {
		_, err := f.service.Search(ctx, "s1", SearchParams{})
		stale <- err
	}()
	time.Sleep(20 * time.Millisecond)

	mock.SetDelay(0)
	rs, err := f.service.Search(ctx, "s1", SearchParams{})
	require.NoError(t, err)
	assert.Len(t, rs.Venues, 12)

	select {
	case err := <-stale:
		assert.ErrorIs(t, err, internaltypes.ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded search did not return")
	}
}

func TestVenueService_SearchErrorPublishesNotice(t *testing.T) {
	mock := holidaze.NewHolidazeApiClientMock(mkVenues(3)...)
	mock.FailPage(1, &api.APIError{Status: http.StatusBadGateway, Message: "Upstream unavailable"})
	f := newVenueServiceFixture(t, mock)

	_, err := f.service.Search(context.Background(), "", SearchParams{})
	require.Error(t, err)
	assert.Equal(t, []notify.Notice{{Level: notify.LevelError, Text: "Upstream unavailable"}}, f.notices)
}

func TestVenueService_LoadMore(t *testing.T) {
	f := newVenueServiceFixture(t, holidaze.NewHolidazeApiClientMock(mkVenues(30)...))
	ctx := context.Background()

	first, err := f.service.Search(ctx, "", SearchParams{Sort: "newAsc"})
	require.NoError(t, err)
	require.NotEmpty(t, first.Cursor)

	second, err := f.service.LoadMore(ctx, first.Cursor)
	require.NoError(t, err)
	assert.Equal(t, "v13", second.Venues[0].ID)
	require.NotEmpty(t, second.Cursor)

	third, err := f.service.LoadMore(ctx, second.Cursor)
	require.NoError(t, err)
	assert.Len(t, third.Venues, 6)
	assert.False(t, third.HasMore())

	_, err = f.service.LoadMore(ctx, "missing")
	assert.ErrorIs(t, err, internaltypes.ErrCursorNotFound)
	assert.Empty(t, f.notices)
}

func TestVenueService_GetVenueFallsBackToCache(t *testing.T) {
	mock := holidaze.NewHolidazeApiClientMock(mkVenue(1, [2]string{"2025-06-01", "2025-06-05"}))
	f := newVenueServiceFixture(t, mock)
	ctx := context.Background()

	v, err := f.service.GetVenue(ctx, "v1")
	require.NoError(t, err)
	assert.Len(t, v.Bookings, 1)

	mock.FailVenue("v1")
	v, err = f.service.GetVenue(ctx, "v1")
	require.NoError(t, err)
	assert.Len(t, v.Bookings, 1)

	_, err = f.service.GetVenue(ctx, " ")
	assert.ErrorIs(t, err, internaltypes.ErrMissingID)
}

func TestVenueService_Occupancy(t *testing.T) {
	mock := holidaze.NewHolidazeApiClientMock(mkVenue(1, [2]string{"2025-06-02", "2025-06-04"}))
	f := newVenueServiceFixture(t, mock)
	ctx := context.Background()

	v, days, err := f.service.Occupancy(ctx, "v1", "2025-06-01", "2025-06-06")
	require.NoError(t, err)
	assert.Equal(t, "v1", v.ID)
	require.Len(t, days, 5)
	assert.False(t, days[0].Booked)
	assert.True(t, days[1].Booked)
	assert.True(t, days[2].Booked)
	assert.False(t, days[3].Booked)

	_, _, err = f.service.Occupancy(ctx, "v1", "", "")
	assert.ErrorIs(t, err, availability.ErrInvalidRange)

	_, _, err = f.service.Occupancy(ctx, "v1", "1000-01-01", "9999-12-31")
	assert.ErrorIs(t, err, availability.ErrInvalidRange)
}

func TestVenueService_ManageVenues(t *testing.T) {
	f := newVenueServiceFixture(t, holidaze.NewHolidazeApiClientMock(mkVenues(1)...))
	ctx := context.Background()
	price, guests := 950.0, 2

	_, err := f.service.CreateVenue(ctx, models.VenueInput{Name: " "})
	assert.EqualError(t, err, "Name is required")

	created, err := f.service.CreateVenue(ctx, models.VenueInput{
		Name:        "Cabin",
		Description: "By the lake",
		Price:       &price,
		MaxGuests:   &guests,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	_, err = f.service.GetVenue(ctx, "v1")
	require.NoError(t, err)
	cached, _ := f.store.GetVenue(ctx, "v1")
	require.NotNil(t, cached)

	_, err = f.service.UpdateVenue(ctx, "v1", models.VenueInput{
		Name:        "Renamed",
		Description: "Still here",
		Price:       &price,
		MaxGuests:   &guests,
	})
	require.NoError(t, err)
	cached, _ = f.store.GetVenue(ctx, "v1")
	assert.Nil(t, cached)

	require.NoError(t, f.service.DeleteVenue(ctx, created.ID))
	assert.ErrorIs(t, f.service.DeleteVenue(ctx, ""), internaltypes.ErrMissingID)

	require.Len(t, f.notices, 3)
	assert.Equal(t, notify.Notice{Level: notify.LevelSuccess, Text: "Venue deleted"}, f.notices[2])
}

func TestVenueService_Profiles(t *testing.T) {
	venues := mkVenues(3)
	venues[0].Owner = nil
	f := newVenueServiceFixture(t, holidaze.NewHolidazeApiClientMock(venues...))
	ctx := context.Background()

	p, err := f.service.GetProfile(ctx, "kari", models.ProfileParams{Venues: true})
	require.NoError(t, err)
	assert.Equal(t, "kari", p.Name)

	_, err = f.service.GetProfile(ctx, "", models.ProfileParams{})
	assert.ErrorIs(t, err, internaltypes.ErrMissingID)

	page, err := f.service.ListVenuesByProfile(ctx, "kari", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

// gatedPager holds its first fetch until release is closed, whatever the
// context says.
type gatedPager struct {
	stubPager
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedPager) FetchPage(ctx context.Context, req PageRequest) (*Page, error) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.started)
		<-g.release
	}
	return g.stubPager.FetchPage(ctx, req)
}

// savedCursors remembers every id it handed out.
type savedCursors struct {
	CursorStore
	mu  sync.Mutex
	ids []string
}

func (s *savedCursors) SaveCursor(ctx context.Context, c *models.Cursor) (string, error) {
	id, err := s.CursorStore.SaveCursor(ctx, c)
	s.mu.Lock()
	s.ids = append(s.ids, id)
	s.mu.Unlock()
	return id, err
}

func TestVenueService_SearchSupersededDropsCursor(t *testing.T) {
	booked := mkVenue(1, [2]string{"2025-06-01", "2025-06-03"})
	pager := &gatedPager{
		stubPager: stubPager{pages: map[int]*Page{
			1: {Venues: []venue.Venue{booked}, NextPage: intPtr(2)},
		}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	cursors := &savedCursors{CursorStore: newCursorStore()}
	mock := holidaze.NewHolidazeApiClientMock()
	collector := NewVenueCollector(pager, NewVenueEnricher(mock, nil, 4), cursors, 12)
	service := NewVenueService(mock, nil, collector, NewQueryGuard(), notify.NewBus())
	ctx := context.Background()

	stale := make(chan error, 1)
	go func() {
		_, err := service.Search(ctx, "s1", SearchParams{})
		stale <- err
	}()
	<-pager.started

	rs, err := service.Search(ctx, "s1", SearchParams{})
	require.NoError(t, err)
	require.NotEmpty(t, rs.Cursor)

	close(pager.release)
	select {
	case err := <-stale:
		assert.ErrorIs(t, err, internaltypes.ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded search did not return")
	}

	cursors.mu.Lock()
	saved := append([]string{}, cursors.ids...)
	cursors.mu.Unlock()
	require.Len(t, saved, 2)
	for _, id := range saved {
		_, err := cursors.LoadCursor(ctx, id)
		if id == rs.Cursor {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, internaltypes.ErrCursorNotFound)
		}
	}
}
