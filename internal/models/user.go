package models

import (
	"github.com/shopspring/decimal"
)

// User is the users table row.
type User struct {
	UserID         string          `db:"user_id"`
	Email          string          `db:"email"`
	Name           string          `db:"name"`
	PasswordHash   *string         `db:"password_hash"`
	AuthProvider   string          `db:"auth_provider"`
	ProviderUserID *string         `db:"provider_user_id"`
	EmailVerified  bool            `db:"email_verified"`
	BudgetInitial  decimal.Decimal `db:"budget_initial"`
	ShareToken     *string         `db:"share_token"`
	AuditFields
}
