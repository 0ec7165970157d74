// Package auth wraps the authentication and account endpoints of the
// Hoy backend and keeps the local session in step with them.
package auth

import (
	"context"
	"fmt"

	validator "github.com/go-playground/validator/v10"

	"github.com/hoyapp/hoygo/internal/api"
	"github.com/hoyapp/hoygo/internal/logger"
	"github.com/hoyapp/hoygo/internal/models"
	"github.com/hoyapp/hoygo/internal/session"
)

// Service is the AuthService of the client. Social identity exchange
// (Auth0, Google, Apple) goes through LoginWithProvider.
type Service struct {
	client   *api.Client
	session  *session.Session
	validate *validator.Validate
}

// New creates the auth service on top of the shared API client.
func New(client *api.Client, sess *session.Session) *Service {
	return &Service{
		client:   client,
		session:  sess,
		validate: validator.New(),
	}
}

func (s *Service) establish(out models.AuthResponse) (*models.User, error) {
	if err := s.session.SaveTokens(out.TokenPair); err != nil {
		return nil, fmt.Errorf("persisting tokens: %w", err)
	}
	if err := s.session.SaveUser(out.User); err != nil {
		return nil, fmt.Errorf("persisting user: %w", err)
	}

	logger.Log.Infow("session established", "userID", out.User.ID)

	return &out.User, nil
}

// Login exchanges email/password credentials for a session.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var out models.AuthResponse
	if err := s.client.Post(api.Public(ctx), "/auth/login", req, &out); err != nil {
		return nil, err
	}

	return s.establish(out)
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var out models.AuthResponse
	if err := s.client.Post(api.Public(ctx), "/auth/register", req, &out); err != nil {
		return nil, err
	}

	return s.establish(out)
}

// LoginWithProvider exchanges an identity-provider token for a session.
func (s *Service) LoginWithProvider(ctx context.Context, provider, idToken string) (*models.User, error) {
	req := models.SocialLoginRequest{Provider: provider, IDToken: idToken}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var out models.AuthResponse
	if err := s.client.Post(api.Public(ctx), "/auth/social", req, &out); err != nil {
		return nil, err
	}

	return s.establish(out)
}

// Refresh rotates the token pair immediately.
func (s *Service) Refresh(ctx context.Context) error {
	return s.client.ForceRefresh(ctx)
}

// Logout tells the backend to revoke the refresh token, then clears
// the local session. The local session is cleared even when the
// revocation call fails.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.client.Post(ctx, "/auth/logout", nil, nil); err != nil {
		logger.Log.Warnw("logout call failed, clearing local session anyway", "error", err)
	}

	return s.session.Clear()
}

// ForgotPassword starts the password reset flow for email.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	req := models.ForgotPasswordRequest{Email: email}
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	return s.client.Post(api.Public(ctx), "/auth/forgot-password", req, nil)
}

// ResetPassword completes the password reset flow with the token from
// the reset email.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	req := models.ResetPasswordRequest{Token: token, NewPassword: newPassword}
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	return s.client.Post(api.Public(ctx), "/auth/reset-password", req, nil)
}

// ChangePassword changes the password of the signed-in account.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	req := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	return s.client.Post(ctx, "/auth/password", req, nil)
}

// Me fetches the current account record and refreshes the local copy.
func (s *Service) Me(ctx context.Context) (*models.User, error) {
	var usr models.User
	if err := s.client.Get(ctx, "/auth/me", &usr); err != nil {
		return nil, err
	}

	if err := s.session.SaveUser(usr); err != nil {
		return nil, fmt.Errorf("persisting user: %w", err)
	}

	return &usr, nil
}

// UpdateProfile applies partial account changes.
func (s *Service) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var usr models.User
	if err := s.client.Put(ctx, "/auth/me", req, &usr); err != nil {
		return nil, err
	}

	if err := s.session.SaveUser(usr); err != nil {
		return nil, fmt.Errorf("persisting user: %w", err)
	}

	return &usr, nil
}
