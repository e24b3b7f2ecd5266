package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/SscSPs/nexkeep/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if len(req.Password) < utils.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", apperrors.ErrValidation, utils.MinPasswordLength)
	}
	budgetInitial := decimal.Zero
	if req.InitialBudget != nil {
		if req.InitialBudget.IsNegative() {
			return nil, fmt.Errorf("%w: initial budget must not be negative", apperrors.ErrValidation)
		}
		budgetInitial = *req.InitialBudget
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user", slog.String("email", email))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: an account with this email already exists", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.NewString()
	user := domain.User{
		UserID:        userID,
		Email:         email,
		Name:          strings.TrimSpace(req.Name),
		PasswordHash:  hash,
		AuthProvider:  domain.ProviderLocal,
		BudgetInitial: budgetInitial,
		AuditFields:   domain.NewAuditFields(userID, s.now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to save user", slog.String("email", email))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", userID))
	return &user, nil
}

func (s *userService) CreateOAuthUser(ctx context.Context, identity portssvc.GoogleIdentity) (*domain.User, error) {
	if identity.Subject == "" || identity.Email == "" {
		return nil, fmt.Errorf("%w: identity token lacks subject or email", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByProvider(ctx, domain.ProviderGoogle, identity.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find user by provider")
		return nil, err
	}

	email := normalizeEmail(identity.Email)
	user, err = s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		// Only a verified Google address may take over an existing local account.
		if !identity.EmailVerified {
			return nil, fmt.Errorf("%w: email not verified by the identity provider", apperrors.ErrUnauthorized)
		}
		if err := s.userRepo.LinkProvider(ctx, user.UserID, domain.ProviderGoogle, identity.Subject, true); err != nil {
			s.LogError(ctx, err, "Failed to link provider", slog.String("user_id", user.UserID))
			return nil, err
		}
		user.ProviderUserID = &identity.Subject
		user.EmailVerified = true
		s.LogInfo(ctx, "Linked Google identity to existing user", slog.String("user_id", user.UserID))
		return user, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to find user by email")
		return nil, err
	}

	userID := uuid.NewString()
	subject := identity.Subject
	newUser := domain.User{
		UserID:         userID,
		Email:          email,
		Name:           identity.Name,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: &subject,
		EmailVerified:  identity.EmailVerified,
		BudgetInitial:  decimal.Zero,
		AuditFields:    domain.NewAuditFields(userID, s.now()),
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to save OAuth user")
		return nil, err
	}
	s.LogInfo(ctx, "User registered with Google", slog.String("user_id", userID))
	return &newUser, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to get user by email")
		return nil, err
	}
	return user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to load user for authentication")
		return nil, err
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Authentication failed", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	if err := utils.ValidateStrongPassword(req.NewPassword); err != nil {
		return err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to load user for password change", slog.String("user_id", userID))
		return err
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("%w: this account signs in with %s and has no password", apperrors.ErrValidation, user.AuthProvider)
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return fmt.Errorf("%w: current password is incorrect", apperrors.ErrUnauthorized)
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		s.LogError(ctx, err, "Failed to update password", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}
