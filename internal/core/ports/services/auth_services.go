package services

import (
	"context"
	"time"

	"github.com/SscSPs/nexkeep/internal/core/domain"
)

// TokenSvcFacade issues application access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleIdentity is the verified identity extracted from a Google ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

// GoogleOAuthSvcFacade defines the Google sign-in operations.
type GoogleOAuthSvcFacade interface {
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCode exchanges an authorization code and validates the returned ID token.
	ExchangeCode(ctx context.Context, code string) (*GoogleIdentity, error)
}
