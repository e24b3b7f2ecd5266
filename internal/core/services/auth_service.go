package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/platform/config"
	"github.com/SscSPs/nexkeep/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService issues JWT access tokens.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := s.now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// --- Google sign-in ---

// IDTokenValidator validates a Google ID token for the given audience.
type IDTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type googleOAuthService struct {
	BaseService
	cfg          *config.Config
	oauth2Config *oauth2.Config
	validate     IDTokenValidator
}

// NewGoogleOAuthService creates the Google sign-in service. A nil validator uses idtoken.Validate.
func NewGoogleOAuthService(cfg *config.Config, validate IDTokenValidator) portssvc.GoogleOAuthSvcFacade {
	if validate == nil {
		validate = idtoken.Validate
	}
	return &googleOAuthService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		validate: validate,
	}
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCode exchanges the authorization code and validates the ID token returned with it.
func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*portssvc.GoogleIdentity, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrDependency)
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to exchange oauth code")
		return nil, fmt.Errorf("%w: failed to exchange oauth code", apperrors.ErrUnauthorized)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: id_token missing from token response", apperrors.ErrUnauthorized)
	}
	return s.identityFromIDToken(ctx, rawIDToken)
}

func (s *googleOAuthService) identityFromIDToken(ctx context.Context, raw string) (*portssvc.GoogleIdentity, error) {
	payload, err := s.validate(ctx, raw, s.cfg.GoogleClientID)
	if err != nil {
		s.LogError(ctx, err, "Google ID token validation failed")
		return nil, fmt.Errorf("%w: invalid google id token", apperrors.ErrUnauthorized)
	}

	identity := &portssvc.GoogleIdentity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	return identity, nil
}
