package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter restricts a transaction listing. Zero values disable a filter.
// StartDate is inclusive and EndDate exclusive.
type TransactionFilter struct {
	Type      domain.TransactionType
	StartDate time.Time
	EndDate   time.Time
}

// LedgerReader reads budgets and the transaction log.
type LedgerReader interface {
	// GetBudget returns the initial budget and the derived current budget.
	GetBudget(ctx context.Context, userID string) (*domain.Budget, error)

	// ListTransactions returns transactions newest first, each with the budget right after it.
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]domain.LedgerEntry, error)

	// FindTransactionByID returns an owner scoped transaction.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
}

// LedgerWriter appends to and edits the transaction log.
type LedgerWriter interface {
	// SaveTransaction inserts txn and returns the budget after it, in one database transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error)

	// DeleteTransaction removes an owner scoped transaction and returns the new budget.
	DeleteTransaction(ctx context.Context, userID, transactionID string) (decimal.Decimal, error)

	// UpdateBudgetInitial sets the initial budget and returns the resulting budget.
	UpdateBudgetInitial(ctx context.Context, userID string, budgetInitial decimal.Decimal, updatedAt time.Time) (*domain.Budget, error)
}

// LedgerRepositoryFacade combines ledger read and write operations.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// CategoryRepositoryFacade manages the shared category catalog.
type CategoryRepositoryFacade interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	// SaveCategory returns apperrors.ErrDuplicate when the name is taken.
	SaveCategory(ctx context.Context, category domain.Category) error
	// InsertMissingCategories inserts categories whose name does not exist yet and returns how many were inserted.
	InsertMissingCategories(ctx context.Context, categories []domain.Category) (int, error)
	// CountTransactionsInCategory counts transactions of any user labelled with name.
	CountTransactionsInCategory(ctx context.Context, name string) (int, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}
