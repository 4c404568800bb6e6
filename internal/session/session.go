package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"catalog/admin/internal/domain"
)

const (
	TokenKey = "token"
	UserKey  = "user"
)

// Session owns the bearer token and the profile of the logged-in user.
// It is the only place that clears them.
type Session struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Session {
	return &Session{store: store, now: time.Now}
}

// Info summarizes the stored session.
type Info struct {
	Authenticated bool
	User          *domain.User
	ExpiresAt     time.Time
}

func (s *Session) Login(ctx context.Context, token string, user domain.User) error {
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user profile: %w", err)
	}
	if err := s.store.Set(ctx, TokenKey, token); err != nil {
		return err
	}
	if err := s.store.Set(ctx, UserKey, string(profile)); err != nil {
		return err
	}
	return nil
}

// Token returns the bearer token, or "" when nobody is logged in. A token
// whose exp claim has passed is invalidated on read.
func (s *Session) Token(ctx context.Context) (string, error) {
	token, ok, err := s.store.Get(ctx, TokenKey)
	if err != nil || !ok {
		return "", err
	}

	if exp, known := tokenExpiry(token); known && !s.now().Before(exp) {
		log.Infof("Session token expired at %s, clearing it", exp.Format(time.RFC3339))
		return "", s.Invalidate(ctx)
	}
	return token, nil
}

func (s *Session) User(ctx context.Context) (*domain.User, error) {
	raw, ok, err := s.store.Get(ctx, UserKey)
	if err != nil || !ok {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to decode stored user profile: %w", err)
	}
	return &user, nil
}

// Invalidate clears the token and the user profile together.
func (s *Session) Invalidate(ctx context.Context) error {
	return s.store.Delete(ctx, TokenKey, UserKey)
}

func (s *Session) Info(ctx context.Context) (Info, error) {
	token, err := s.Token(ctx)
	if err != nil || token == "" {
		return Info{}, err
	}

	user, err := s.User(ctx)
	if err != nil {
		return Info{}, err
	}

	info := Info{Authenticated: true, User: user}
	if exp, known := tokenExpiry(token); known {
		info.ExpiresAt = exp
	}
	return info, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// backend remains the authority on validity.
func tokenExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (s *Session) Authenticated(ctx context.Context) (bool, error) {
	token, err := s.Token(ctx)
	return token != "", err
}
