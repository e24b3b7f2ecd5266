package dto

import (
	"time"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LoginRequest holds email/password credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest creates a local account. InitialBudget defaults to zero.
type RegisterRequest struct {
	Email         string           `json:"email" binding:"required,email"`
	Password      string           `json:"password" binding:"required,min=6"`
	Name          string           `json:"name"`
	InitialBudget *decimal.Decimal `json:"initialBudget"`
}

// ChangePasswordRequest updates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID        string          `json:"userID"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	AuthProvider  string          `json:"authProvider"`
	BudgetInitial decimal.Decimal `json:"budgetInitial"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Email:         u.Email,
		Name:          u.DisplayName(),
		AuthProvider:  string(u.AuthProvider),
		BudgetInitial: u.BudgetInitial,
		CreatedAt:     u.CreatedAt,
	}
}

// ShareTokenResponse carries the caller's public reimbursement link.
type ShareTokenResponse struct {
	Token    string `json:"token"`
	ShareURL string `json:"shareUrl"`
}

// VerifyTokenResponse is returned to the public form when a share token resolves.
type VerifyTokenResponse struct {
	Valid bool          `json:"valid"`
	User  PublicProfile `json:"user"`
}

// PublicProfile is the owner information disclosed on the public form.
type PublicProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
