// Package session isolates where the access token of the signed-in
// Holidaze account lives, together with who that account is.
package session

import (
	"context"
	"sync"
)

// User is the signed-in account as remembered next to its token.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	VenueManager bool   `json:"venueManager"`
}

// TokenStore keeps the access token. GetToken returns "" and GetUser nil
// when signed out.
type TokenStore interface {
	GetToken(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error

	GetUser(ctx context.Context) (*User, error)
	SetUser(ctx context.Context, u User) error
	ClearUser(ctx context.Context) error
}

// MemoryTokenStore keeps the token for the lifetime of the process.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
	user  *User
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) GetToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) ClearToken(ctx context.Context) error {
	return s.SetToken(ctx, "")
}

func (s *MemoryTokenStore) GetUser(ctx context.Context) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, nil
	}
	u := *s.user
	return &u, nil
}

func (s *MemoryTokenStore) SetUser(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	return nil
}

func (s *MemoryTokenStore) ClearUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}
