package services

import (
	"context"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a local account.
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// CreateOAuthUser returns the user linked to the external identity, creating or linking one when needed.
	CreateOAuthUser(ctx context.Context, identity GoogleIdentity) (*domain.User, error)

	// ChangePassword checks the current password and stores the new one.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}

// ShareTokenSvcFacade manages the public reimbursement link of each user.
type ShareTokenSvcFacade interface {
	// GetOrCreateShareToken is idempotent: it creates a token only when the user has none.
	GetOrCreateShareToken(ctx context.Context, userID string) (string, error)
	// RegenerateShareToken replaces the token. The previous one stops resolving immediately.
	RegenerateShareToken(ctx context.Context, userID string) (string, error)
	// ResolveShareToken returns the owner of token or apperrors.ErrNotFound.
	ResolveShareToken(ctx context.Context, token string) (*domain.User, error)
	// ShareURL builds the public form URL for token.
	ShareURL(token string) string
}
