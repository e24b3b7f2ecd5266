package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	"github.com/SscSPs/nexkeep/internal/models"
	"github.com/SscSPs/nexkeep/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, email, name, password_hash, auth_provider, provider_user_id, email_verified,
	budget_initial, share_token, created_at, created_by, last_updated_at, last_updated_by`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.Name,
		&m.PasswordHash,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.EmailVerified,
		&m.BudgetInitial,
		&m.ShareToken,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxUserRepository) findOne(ctx context.Context, op, where string, args ...any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	m, err := scanUser(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err, op)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUserByID retrieves a user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "find user "+userID, `user_id = $1`, userID)
}

// FindUserByEmail retrieves a user by email, ignoring case.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "find user by email", `lower(email) = lower($1)`, email)
}

func (r *PgxUserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	return r.findOne(ctx, "find user by provider", `auth_provider = $1 AND provider_user_id = $2`, string(provider), providerUserID)
}

func (r *PgxUserRepository) FindUserByShareToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, "find user by share token", `share_token = $1`, token)
}

// SaveUser inserts a new user. A taken email surfaces as apperrors.ErrDuplicate.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.Name,
		m.PasswordHash,
		m.AuthProvider,
		m.ProviderUserID,
		m.EmailVerified,
		m.BudgetInitial,
		m.ShareToken,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "save user "+m.UserID)
	}
	return nil
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	query := `
		UPDATE users SET password_hash = $2, last_updated_at = $3, last_updated_by = $1
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, passwordHash, time.Now().UTC())
	if err != nil {
		return mapPgError(err, "update password")
	}
	return expectOneRow(tag, "user", userID)
}

// LinkProvider attaches an external identity. The local password, if any, is kept.
func (r *PgxUserRepository) LinkProvider(ctx context.Context, userID string, provider domain.AuthProvider, providerUserID string, emailVerified bool) error {
	query := `
		UPDATE users
		SET provider_user_id = $3,
			auth_provider = CASE WHEN password_hash IS NULL THEN $2 ELSE auth_provider END,
			email_verified = email_verified OR $4,
			last_updated_at = $5, last_updated_by = $1
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, string(provider), providerUserID, emailVerified, time.Now().UTC())
	if err != nil {
		return mapPgError(err, "link provider")
	}
	return expectOneRow(tag, "user", userID)
}

// EnsureShareToken keeps an existing token and only stores candidate when none is set.
func (r *PgxUserRepository) EnsureShareToken(ctx context.Context, userID string, candidate string) (string, error) {
	query := `
		UPDATE users SET share_token = COALESCE(share_token, $2)
		WHERE user_id = $1
		RETURNING share_token;
	`
	var token string
	if err := r.Pool.QueryRow(ctx, query, userID, candidate).Scan(&token); err != nil {
		return "", mapPgError(err, "ensure share token for "+userID)
	}
	return token, nil
}

func (r *PgxUserRepository) ReplaceShareToken(ctx context.Context, userID string, token string) error {
	query := `UPDATE users SET share_token = $2, last_updated_at = $3, last_updated_by = $1 WHERE user_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, userID, token, time.Now().UTC())
	if err != nil {
		return mapPgError(err, "replace share token")
	}
	if err := expectOneRow(tag, "user", userID); err != nil {
		return fmt.Errorf("replace share token: %w", err)
	}
	return nil
}
