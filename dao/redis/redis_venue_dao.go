package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"holidaze-server/db"
	"holidaze-server/models/venue"
)

// VENUE_KEY_FORMAT is used to cache venue details (with bookings) per venue.
const VENUE_KEY_FORMAT = "venue_v1:%s"

// RedisVenueDAO handles venue detail caching using Redis.
type RedisVenueDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

// NewRedisVenueDAO initializes a RedisVenueDAO with the Redis client.
func NewRedisVenueDAO(client db.RedisClient, ttl time.Duration) *RedisVenueDAO {
	return &RedisVenueDAO{client: client, ttl: ttl}
}

// UpsertVenue stores the venue's JSON data under its id.
func (dao *RedisVenueDAO) UpsertVenue(ctx context.Context, v venue.Venue) error {
	if v.ID == "" {
		return errors.New("[RedisVenueDAO] cannot cache a venue without id")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal venue %s: %w", v.ID, err)
	}
	key := fmt.Sprintf(VENUE_KEY_FORMAT, v.ID)
	if err := dao.client.Set(ctx, key, string(data), dao.ttl); err != nil {
		return fmt.Errorf("failed to set venue in redis: %w", err)
	}
	return nil
}

// GetVenue retrieves the cached venue. A cache miss returns (nil, nil).
func (dao *RedisVenueDAO) GetVenue(ctx context.Context, venueID string) (*venue.Venue, error) {
	key := fmt.Sprintf(VENUE_KEY_FORMAT, venueID)
	str, err := dao.client.Get(ctx, key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue from redis: %w", err)
	}
	var v venue.Venue
	if err := json.Unmarshal([]byte(str), &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
	}
	return &v, nil
}

func (dao *RedisVenueDAO) DeleteVenue(ctx context.Context, venueID string) error {
	key := fmt.Sprintf(VENUE_KEY_FORMAT, venueID)
	if err := dao.client.Del(ctx, key); err != nil {
		return fmt.Errorf("failed to delete venue key %s: %w", key, err)
	}
	log.Printf("[RedisVenueDAO] Deleted venue cache for %s", venueID)
	return nil
}

// ListCachedVenueIDs returns the venue IDs currently in the cache.
func (dao *RedisVenueDAO) ListCachedVenueIDs(ctx context.Context) ([]string, error) {
	pattern := fmt.Sprintf(VENUE_KEY_FORMAT, "*") // "venue_v1:*"
	keys, err := dao.client.Keys(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list venue keys: %w", err)
	}
	ids := make([]string, 0, len(keys))
	prefix := fmt.Sprintf(VENUE_KEY_FORMAT, "")
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}
