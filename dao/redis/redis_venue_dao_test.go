package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaze-server/db"
	"holidaze-server/internaltypes"
	"holidaze-server/models"
	"holidaze-server/models/venue"
	"holidaze-server/session"
)

var _ session.TokenStore = (*RedisTokenStore)(nil)

func TestRedisVenueDAO_UpsertVenue_Success(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient()
	dao := NewRedisVenueDAO(mockClient, time.Minute)
	ctx := context.Background()

	testVenue := venue.Venue{
		ID:       "venue123",
		Name:     "Test Venue",
		Bookings: []venue.BookingStub{},
	}

	// Act
	err := dao.UpsertVenue(ctx, testVenue)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Verify data stored in mock Redis
	expectedKey := "venue_v1:venue123"
	storedValue, err := mockClient.Get(ctx, expectedKey)
	if err != nil {
		t.Fatalf("Expected data to be stored, got error: %v", err)
	}

	// Verify JSON content
	var storedVenue venue.Venue
	if err := json.Unmarshal([]byte(storedValue), &storedVenue); err != nil {
		t.Fatalf("Failed to unmarshal stored venue data: %v", err)
	}

	if storedVenue.ID != testVenue.ID {
		t.Errorf("Expected ID %s, got %s", testVenue.ID, storedVenue.ID)
	}
	if !storedVenue.HasBookings() {
		t.Errorf("Expected empty bookings to survive the round trip")
	}
}

func TestRedisVenueDAO_GetVenue_Miss(t *testing.T) {
	dao := NewRedisVenueDAO(db.NewMockRedisClient(), time.Minute)

	v, err := dao.GetVenue(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestRedisVenueDAO_GetVenue_Expired(t *testing.T) {
	mockClient := db.NewMockRedisClient()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mockClient.SetClock(func() time.Time { return now })
	dao := NewRedisVenueDAO(mockClient, time.Minute)
	ctx := context.Background()

	require.NoError(t, dao.UpsertVenue(ctx, venue.Venue{ID: "v1"}))
	now = now.Add(2 * time.Minute)

	v, err := dao.GetVenue(ctx, "v1")
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestRedisVenueDAO_ListAndDelete(t *testing.T) {
	dao := NewRedisVenueDAO(db.NewMockRedisClient(), 0)
	ctx := context.Background()

	require.NoError(t, dao.UpsertVenue(ctx, venue.Venue{ID: "a"}))
	require.NoError(t, dao.UpsertVenue(ctx, venue.Venue{ID: "b"}))

	ids, err := dao.ListCachedVenueIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	require.NoError(t, dao.DeleteVenue(ctx, "a"))
	ids, _ = dao.ListCachedVenueIDs(ctx)
	assert.Equal(t, []string{"b"}, ids)
}

func TestRedisVenueDAO_UpsertVenue_NoID(t *testing.T) {
	dao := NewRedisVenueDAO(db.NewMockRedisClient(), 0)
	assert.Error(t, dao.UpsertVenue(context.Background(), venue.Venue{}))
}

func TestRedisCursorDAO_SaveAndLoad(t *testing.T) {
	dao := NewRedisCursorDAO(db.NewMockRedisClient(), time.Hour)
	ctx := context.Background()
	next := 3

	c := &models.Cursor{
		Query:    "cabin",
		DateFrom: "2025-06-10",
		DateTo:   "2025-06-15",
		Sort:     models.DefaultSort,
		PageSize: 12,
		NextPage: &next,
		SeenIDs:  []string{"a", "b"},
	}

	id, err := dao.SaveCursor(ctx, c)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, c.ID)

	loaded, err := dao.LoadCursor(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)

	require.NoError(t, dao.DeleteCursor(ctx, id))
	_, err = dao.LoadCursor(ctx, id)
	assert.True(t, errors.Is(err, internaltypes.ErrCursorNotFound))
}

func TestRedisCursorDAO_LoadUnknown(t *testing.T) {
	dao := NewRedisCursorDAO(db.NewMockRedisClient(), time.Hour)

	_, err := dao.LoadCursor(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, internaltypes.ErrCursorNotFound)

	_, err = dao.LoadCursor(context.Background(), "")
	assert.ErrorIs(t, err, internaltypes.ErrCursorNotFound)
}

func TestRedisTokenStore(t *testing.T) {
	store := NewRedisTokenStore(db.NewMockRedisClient(), "default")
	ctx := context.Background()

	token, err := store.GetToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.SetToken(ctx, "tok-1"))
	token, _ = store.GetToken(ctx)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, store.ClearToken(ctx))
	token, _ = store.GetToken(ctx)
	assert.Empty(t, token)
}

func TestRedisTokenStore_User(t *testing.T) {
	client := db.NewMockRedisClient()
	store := NewRedisTokenStore(client, "default")
	ctx := context.Background()

	u, err := store.GetUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, store.SetUser(ctx, session.User{Name: "kari", Email: "kari@stud.noroff.no"}))
	u, err = store.GetUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "kari", u.Name)

	require.NoError(t, client.Set(ctx, "user_v1:default", "{not json", 0))
	u, err = store.GetUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, store.SetUser(ctx, session.User{Name: "kari"}))
	require.NoError(t, store.ClearUser(ctx))
	u, _ = store.GetUser(ctx)
	assert.Nil(t, u)
}
