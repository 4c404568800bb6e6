package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"catalog/admin/internal/client"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/session"
	"catalog/admin/internal/validation"
)

type AuthService struct {
	api     client.CatalogClient
	session *session.Session
}

func NewAuthService(api client.CatalogClient, sess *session.Session) *AuthService {
	return &AuthService{api: api, session: sess}
}

// Login authenticates and stores the token and profile in the session.
func (s *AuthService) Login(ctx context.Context, req client.LoginRequest) (*domain.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}

	if err := s.session.Login(ctx, resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	log.Infof("Logged in as %s", resp.User.Username)
	return &resp.User, nil
}

// Register creates an account. The password confirmation never leaves the process.
func (s *AuthService) Register(ctx context.Context, req client.RegisterRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	return s.api.Register(ctx, req)
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.session.Invalidate(ctx)
}

// Current asks the backend who the token belongs to.
func (s *AuthService) Current(ctx context.Context) (*domain.User, error) {
	return s.api.CurrentUser(ctx)
}

// Session describes the locally stored session without calling the backend.
func (s *AuthService) Session(ctx context.Context) (session.Info, error) {
	return s.session.Info(ctx)
}
