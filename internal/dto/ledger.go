package dto

import (
	"time"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetResponse is the caller's budget.
type BudgetResponse struct {
	Budget        decimal.Decimal `json:"budget"`
	BudgetInitial decimal.Decimal `json:"budgetInitial"`
}

func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{Budget: b.Current, BudgetInitial: b.BudgetInitial}
}

// UpdateBudgetRequest sets the initial budget. It must not be negative.
type UpdateBudgetRequest struct {
	BudgetInitial *decimal.Decimal `json:"budgetInitial" binding:"required"`
}

// CreateTransactionRequest records an income or expense.
// Category may be a category ID, which is resolved to its name, or a free label.
type CreateTransactionRequest struct {
	Name        string           `json:"name" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Type        string           `json:"type" binding:"required,oneof=income expense"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Date        *time.Time       `json:"date"`
}

// TransactionResponse is a transaction plus the budget right after it.
type TransactionResponse struct {
	domain.Transaction
	NewBudget decimal.Decimal `json:"newBudget"`
}

// ListTransactionsParams filters the transaction history.
// Type "all" or empty disables the type filter. Both dates are needed for the range filter.
type ListTransactionsParams struct {
	Type      string    `form:"type"`
	StartDate time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02"`
}

// ListTransactionsResponse wraps the history with each entry's running budget.
type ListTransactionsResponse struct {
	Transactions []domain.LedgerEntry `json:"transactions"`
	Budget       decimal.Decimal      `json:"budget"`
}

// DeleteTransactionResponse reports the budget after removal.
type DeleteTransactionResponse struct {
	NewBudget decimal.Decimal `json:"newBudget"`
}

// CreateCategoryRequest adds a category to the shared catalog.
type CreateCategoryRequest struct {
	Name  string  `json:"name" binding:"required"`
	Type  string  `json:"type" binding:"required,oneof=income expense"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// SeedCategoriesResponse reports how many default categories were inserted.
type SeedCategoriesResponse struct {
	Inserted int `json:"inserted"`
}
