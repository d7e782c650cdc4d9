package apiclient

import (
	"context"
	"net/http"

	"github.com/nfrund/healthtrack/internal/domain"
)

// Login exchanges credentials for a token and profile. Rejections are
// *domain.AuthError and never expire the session.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	var res domain.AuthResult
	err := c.do(ctx, call{op: "auth.login", method: http.MethodPost, path: "/auth/login", body: req, authExempt: true}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates an account and returns its token and profile.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	var res domain.AuthResult
	err := c.do(ctx, call{op: "auth.register", method: http.MethodPost, path: "/auth/register", body: req, authExempt: true}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ResetPassword sets a new password for the account registered under email.
func (c *Client) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	return c.do(ctx, call{op: "auth.reset_password", method: http.MethodPost, path: "/auth/reset-password", body: req, authExempt: true}, nil)
}

// Me fetches the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (*domain.UserProfile, error) {
	var u domain.UserProfile
	if err := c.do(ctx, call{op: "auth.me", method: http.MethodGet, path: "/auth/me"}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile applies the non-zero fields of req and returns the full record.
func (c *Client) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.UserProfile, error) {
	var u domain.UserProfile
	if err := c.do(ctx, call{op: "auth.update_profile", method: http.MethodPut, path: "/auth/profile", body: req}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
