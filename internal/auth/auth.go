// Package auth implements the console's authentication operations: login,
// token verification and password change.
//
// Login deliberately bypasses the gateway's 401 handling. A 401 on the
// login endpoint means wrong credentials, not an expired session, and must
// not clear anything.
package auth

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/httpx"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
	"github.com/shashiranjanraj/vyapar/pkg/validate"
)

// Service wires the auth endpoints to the session store.
type Service struct {
	api      *gateway.Client
	sessions *session.Store
}

func New(api *gateway.Client, sessions *session.Store) *Service {
	return &Service{api: api, sessions: sessions}
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	AdminID     int64  `json:"admin_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

// Login authenticates against POST /admin/auth/login and, on success,
// persists the token and profile. Nothing is written on failure.
func (s *Service) Login(ctx context.Context, username, password string, rememberMe bool) (*session.Admin, error) {
	input := loginInput{Username: username, Password: password}
	if err := validate.Check(input); err != nil {
		return nil, err
	}

	resp, err := httpx.Post(s.api.URL("/admin/auth/login")).
		JSONBody(input).
		Send(ctx)
	if err != nil {
		return nil, &gateway.NetworkError{Err: err}
	}
	if !resp.OK() {
		return nil, gateway.ErrorFromResponse(resp)
	}

	var body loginResponse
	if err := resp.JSON(&body); err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	if body.AccessToken == "" {
		return nil, fmt.Errorf("auth: login response carried no token")
	}

	admin := session.Admin{ID: body.AdminID, Username: body.Username, Role: body.Role}
	if err := s.sessions.Login(body.AccessToken, admin, rememberMe); err != nil {
		return nil, err
	}

	logger.Info("auth: login successful", "username", admin.Username, "role", admin.Role)
	return &admin, nil
}

// Verify asks the backend whether the stored token is still honoured.
// A nil error means the session is good.
func (s *Service) Verify(ctx context.Context) error {
	return s.api.Get(ctx, "/admin/auth/me", nil, nil)
}

// Me fetches the authoritative admin profile for the current token.
func (s *Service) Me(ctx context.Context) (*session.Admin, error) {
	var admin session.Admin
	if err := s.api.Get(ctx, "/admin/auth/me", nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

// ChangePassword rotates the admin's password server-side.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	input := changePasswordInput{CurrentPassword: current, NewPassword: next}
	if err := validate.Check(input); err != nil {
		return err
	}
	return s.api.Post(ctx, "/admin/auth/change-password", input, nil)
}

// Logout clears the local session. The token is stateless server-side, so
// there is nothing to revoke remotely.
func (s *Service) Logout() error {
	logger.Info("auth: logging out")
	return s.sessions.Logout()
}
