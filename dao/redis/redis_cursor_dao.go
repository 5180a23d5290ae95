package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"holidaze-server/db"
	"holidaze-server/internaltypes"
	"holidaze-server/models"
)

// CURSOR_KEY_FORMAT holds the state of a listing run between "load more" calls.
const CURSOR_KEY_FORMAT = "cursor_v1:%s"

// RedisCursorDAO persists listing cursors with a sliding TTL.
type RedisCursorDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

func NewRedisCursorDAO(client db.RedisClient, ttl time.Duration) *RedisCursorDAO {
	return &RedisCursorDAO{client: client, ttl: ttl}
}

// SaveCursor stores c, assigning a fresh id when it has none, and returns the id.
func (dao *RedisCursorDAO) SaveCursor(ctx context.Context, c *models.Cursor) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor %s: %w", c.ID, err)
	}
	if err := dao.client.Set(ctx, fmt.Sprintf(CURSOR_KEY_FORMAT, c.ID), string(data), dao.ttl); err != nil {
		return "", fmt.Errorf("failed to set cursor in redis: %w", err)
	}
	return c.ID, nil
}

// LoadCursor returns internaltypes.ErrCursorNotFound for unknown or expired ids.
func (dao *RedisCursorDAO) LoadCursor(ctx context.Context, id string) (*models.Cursor, error) {
	if id == "" {
		return nil, internaltypes.ErrCursorNotFound
	}
	str, err := dao.client.Get(ctx, fmt.Sprintf(CURSOR_KEY_FORMAT, id))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, internaltypes.ErrCursorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cursor from redis: %w", err)
	}
	var c models.Cursor
	if err := json.Unmarshal([]byte(str), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cursor JSON: %w", err)
	}
	return &c, nil
}

func (dao *RedisCursorDAO) DeleteCursor(ctx context.Context, id string) error {
	if err := dao.client.Del(ctx, fmt.Sprintf(CURSOR_KEY_FORMAT, id)); err != nil {
		return fmt.Errorf("failed to delete cursor %s: %w", id, err)
	}
	return nil
}
