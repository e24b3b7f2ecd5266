package repositories

import (
	"context"

	"github.com/SscSPs/nexkeep/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, case insensitive.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProvider retrieves a user by external identity provider subject.
	FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the email is taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error

	// LinkProvider attaches an external identity to an existing user.
	LinkProvider(ctx context.Context, userID string, provider domain.AuthProvider, providerUserID string, emailVerified bool) error
}

// ShareTokenStore persists the public reimbursement token of each user.
type ShareTokenStore interface {
	// EnsureShareToken stores candidate only if the user has no token yet and returns the token in effect.
	EnsureShareToken(ctx context.Context, userID string, candidate string) (string, error)

	// ReplaceShareToken unconditionally overwrites the user's token.
	ReplaceShareToken(ctx context.Context, userID string, token string) error

	// FindUserByShareToken resolves a token to its owner.
	FindUserByShareToken(ctx context.Context, token string) (*domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	ShareTokenStore
}
