package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"holidaze-server/api/holidaze"
	redisdao "holidaze-server/dao/redis"
	"holidaze-server/db"
	"holidaze-server/models"
	"holidaze-server/models/venue"
)

// oldestFirst keeps mock pages in creation order.
var oldestFirst = models.Sort{Field: models.SortCreated, Order: models.OrderAsc}

// mkVenue builds venue "v<n>" created n minutes into 2025.
func mkVenue(n int, bookings ...[2]string) venue.Venue {
	v := venue.Venue{
		ID:        fmt.Sprintf("v%d", n),
		Name:      fmt.Sprintf("Venue %d", n),
		Price:     100,
		MaxGuests: 4,
		Created:   time.Date(2025, 1, 1, 0, n, 0, 0, time.UTC).Format("2006-01-02T15:04:05.000Z"),
	}
	for i, b := range bookings {
		v.Bookings = append(v.Bookings, venue.BookingStub{
			ID:       fmt.Sprintf("%s-b%d", v.ID, i),
			DateFrom: b[0] + "T00:00:00.000Z",
			DateTo:   b[1] + "T00:00:00.000Z",
			Guests:   1,
		})
	}
	return v
}

// mkVenues builds v1..vn; the ids listed in booked get a stay over the
// whole of June 2025.
func mkVenues(n int, booked ...int) []venue.Venue {
	isBooked := map[int]bool{}
	for _, b := range booked {
		isBooked[b] = true
	}
	out := make([]venue.Venue, 0, n)
	for i := 1; i <= n; i++ {
		if isBooked[i] {
			out = append(out, mkVenue(i, [2]string{"2025-06-01", "2025-07-01"}))
		} else {
			out = append(out, mkVenue(i))
		}
	}
	return out
}

func ids(venues []venue.Venue) []string {
	out := make([]string, 0, len(venues))
	for _, v := range venues {
		out = append(out, v.ID)
	}
	return out
}

func newVenueStore() *redisdao.RedisVenueDAO {
	return redisdao.NewRedisVenueDAO(db.NewMockRedisClient(), time.Minute)
}

func newCursorStore() *redisdao.RedisCursorDAO {
	return redisdao.NewRedisCursorDAO(db.NewMockRedisClient(), time.Minute)
}

func newCollector(t *testing.T, mock *holidaze.HolidazeApiClientMock, pageSize int) *VenueCollector {
	t.Helper()
	enricher := NewVenueEnricher(mock, newVenueStore(), 4)
	return NewVenueCollector(NewHolidazePager(mock), enricher, newCursorStore(), pageSize)
}

// stubPager serves fixed pages and records which were requested.
type stubPager struct {
	mu        sync.Mutex
	pages     map[int]*Page
	requested []int
}

func (s *stubPager) FetchPage(ctx context.Context, req PageRequest) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requested = append(s.requested, req.Page)
	p, ok := s.pages[req.Page]
	if !ok {
		return nil, fmt.Errorf("no page %d", req.Page)
	}
	cp := *p
	cp.Venues = append([]venue.Venue{}, p.Venues...)
	return &cp, nil
}

func intPtr(i int) *int { return &i }
