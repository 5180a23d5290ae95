package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"holidaze-server/api/holidaze"
	"holidaze-server/internaltypes"
	"holidaze-server/models"
	"holidaze-server/notify"
	"holidaze-server/session"
)

// AuthService signs the configured account in and out and manages its
// profile.
type AuthService struct {
	holidazeApi holidaze.HolidazeAPI
	tokens      session.TokenStore
	bus         *notify.Bus
}

func NewAuthService(holidazeApi holidaze.HolidazeAPI, tokens session.TokenStore, bus *notify.Bus) *AuthService {
	return &AuthService{holidazeApi: holidazeApi, tokens: tokens, bus: bus}
}

// Login exchanges credentials for an access token and stores it.
func (as *AuthService) Login(ctx context.Context, email, password string) (*models.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, internaltypes.NewValidationError("Email and password are required")
	}
	profile, err := as.holidazeApi.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		as.bus.Publish(notify.Notice{Level: notify.LevelError, Text: err.Error()})
		return nil, err
	}
	if profile.AccessToken == "" {
		return nil, fmt.Errorf("login for %s returned no access token", email)
	}
	if err := as.tokens.SetToken(ctx, profile.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to store access token: %w", err)
	}
	if err := as.tokens.SetUser(ctx, userOf(profile)); err != nil {
		return nil, fmt.Errorf("failed to store signed-in user: %w", err)
	}
	log.Printf("[AuthService] Signed in as %s", profile.Name)
	as.bus.Publish(notify.AuthChanged{SignedIn: true, Name: profile.Name})
	return profile, nil
}

// Logout forgets the stored token and user.
func (as *AuthService) Logout(ctx context.Context) error {
	if err := as.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("failed to clear access token: %w", err)
	}
	if err := as.tokens.ClearUser(ctx); err != nil {
		return fmt.Errorf("failed to clear signed-in user: %w", err)
	}
	log.Printf("[AuthService] Signed out")
	as.bus.Publish(notify.AuthChanged{SignedIn: false})
	return nil
}

// RequireToken returns ErrNotAuthenticated when nobody is signed in.
func (as *AuthService) RequireToken(ctx context.Context) error {
	token, err := as.tokens.GetToken(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return internaltypes.ErrNotAuthenticated
	}
	return nil
}

// Register creates an account. It does not sign in.
func (as *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	profile, err := as.holidazeApi.Register(ctx, req)
	if err != nil {
		as.bus.Publish(notify.Notice{Level: notify.LevelError, Text: err.Error()})
		return nil, err
	}
	log.Printf("[AuthService] Registered %s (venueManager=%v)", profile.Name, profile.VenueManager)
	as.bus.Publish(notify.Notice{Level: notify.LevelSuccess, Text: "Account created"})
	return profile, nil
}

// CurrentUser returns the signed-in user, or ErrNotAuthenticated.
func (as *AuthService) CurrentUser(ctx context.Context) (*session.User, error) {
	if err := as.RequireToken(ctx); err != nil {
		return nil, err
	}
	u, err := as.tokens.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, internaltypes.ErrNotAuthenticated
	}
	return u, nil
}

// UpdateProfile changes the signed-in user's own profile. An empty name
// means the signed-in user.
func (as *AuthService) UpdateProfile(ctx context.Context, name string, update models.ProfileUpdate) (*models.Profile, error) {
	u, err := as.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = u.Name
	}
	if name != u.Name {
		return nil, internaltypes.NewValidationError("You can only update your own profile")
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	profile, err := as.holidazeApi.UpdateProfile(ctx, name, update)
	if err != nil {
		as.bus.Publish(notify.Notice{Level: notify.LevelError, Text: err.Error()})
		return nil, err
	}
	if update.VenueManager != nil {
		u.VenueManager = profile.VenueManager
		if err := as.tokens.SetUser(ctx, *u); err != nil {
			log.Printf("[AuthService] Failed to refresh stored user %s: %v", u.Name, err)
		}
		as.bus.Publish(notify.AuthChanged{SignedIn: true, Name: u.Name})
	}
	as.bus.Publish(notify.Notice{Level: notify.LevelSuccess, Text: "Profile updated"})
	return profile, nil
}

func userOf(p *models.Profile) session.User {
	return session.User{Name: p.Name, Email: p.Email, VenueManager: p.VenueManager}
}
