package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"holidaze-server/db"
	"holidaze-server/session"
)

// TOKEN_KEY_FORMAT holds the access token of one signed-in account.
const TOKEN_KEY_FORMAT = "access_token_v1:%s"

// USER_KEY_FORMAT holds who that account is.
const USER_KEY_FORMAT = "user_v1:%s"

// RedisTokenStore is a session.TokenStore backed by Redis, so the CLI and
// the server share one signed-in account.
type RedisTokenStore struct {
	client  db.RedisClient
	key     string
	userKey string
}

func NewRedisTokenStore(client db.RedisClient, account string) *RedisTokenStore {
	return &RedisTokenStore{
		client:  client,
		key:     fmt.Sprintf(TOKEN_KEY_FORMAT, account),
		userKey: fmt.Sprintf(USER_KEY_FORMAT, account),
	}
}

func (s *RedisTokenStore) GetToken(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get access token from redis: %w", err)
	}
	return token, nil
}

func (s *RedisTokenStore) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.ClearToken(ctx)
	}
	if err := s.client.Set(ctx, s.key, token, 0); err != nil {
		return fmt.Errorf("failed to set access token in redis: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) ClearToken(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear access token in redis: %w", err)
	}
	return nil
}

// GetUser returns nil when nobody is stored. A malformed entry is dropped.
func (s *RedisTokenStore) GetUser(ctx context.Context) (*session.User, error) {
	str, err := s.client.Get(ctx, s.userKey)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user from redis: %w", err)
	}
	var u session.User
	if err := json.Unmarshal([]byte(str), &u); err != nil {
		_ = s.ClearUser(ctx)
		return nil, nil
	}
	return &u, nil
}

func (s *RedisTokenStore) SetUser(ctx context.Context, u session.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal user %s: %w", u.Name, err)
	}
	if err := s.client.Set(ctx, s.userKey, string(data), 0); err != nil {
		return fmt.Errorf("failed to set user in redis: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) ClearUser(ctx context.Context) error {
	if err := s.client.Del(ctx, s.userKey); err != nil {
		return fmt.Errorf("failed to clear user in redis: %w", err)
	}
	return nil
}
