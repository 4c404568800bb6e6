package client

import (
	"context"
	"net/http"

	"catalog/admin/internal/domain"
)

const loginPath = "/login"

func (c *catalogClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, loginPath, withJSON(req), bare, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *catalogClient) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/register", withJSON(req), bare, nil)
}

func (c *catalogClient) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/current", nil, enveloped, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
