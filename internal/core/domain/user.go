package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AuthProvider identifies how a user signs in.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents an account holder. Every organisation, client, article,
// invoice, transaction and reimbursement request is owned by exactly one user.
type User struct {
	UserID         string          `json:"userID"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	PasswordHash   string          `json:"-"`
	AuthProvider   AuthProvider    `json:"authProvider"`
	ProviderUserID *string         `json:"-"`
	EmailVerified  bool            `json:"emailVerified"`
	BudgetInitial  decimal.Decimal `json:"budgetInitial"`
	ShareToken     *string         `json:"-"`
	AuditFields
}

// DisplayName returns the user's name, falling back to the local part of the email.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	if i := strings.Index(u.Email, "@"); i > 0 {
		return u.Email[:i]
	}
	return u.Email
}
