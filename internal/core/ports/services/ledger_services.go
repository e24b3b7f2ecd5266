package services

import (
	"context"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade manages a user's budget and transaction log.
type LedgerSvcFacade interface {
	GetBudget(ctx context.Context, userID string) (*domain.Budget, error)
	UpdateBudgetInitial(ctx context.Context, userID string, budgetInitial decimal.Decimal) (*domain.Budget, error)

	// ApplyTransaction records an income or expense and returns it with the resulting budget.
	ApplyTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, decimal.Decimal, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) (decimal.Decimal, error)
}

// CategorySvcFacade manages the shared category catalog.
type CategorySvcFacade interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)
	// DeleteCategory refuses with apperrors.ErrConflict while transactions use the category.
	DeleteCategory(ctx context.Context, categoryID string) error
	// SeedDefaultCategories inserts the default catalog entries that are missing.
	SeedDefaultCategories(ctx context.Context, userID string) (int, error)
	// ResolveCategoryName returns the name of the category with ID ref, or ref itself when no such category exists.
	ResolveCategoryName(ctx context.Context, ref string) (string, error)
}
