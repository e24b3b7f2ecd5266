package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/SscSPs/nexkeep/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService keeps the budget log. The current budget is never stored:
// it is derived from budget_initial and the transaction log by the repository.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	categories portssvc.CategorySvcFacade
}

// NewLedgerService creates the ledger service. categories may be nil, in which case
// transaction categories are stored as given.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, categories portssvc.CategorySvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, categories: categories}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetBudget(ctx context.Context, userID string) (*domain.Budget, error) {
	budget, err := s.ledgerRepo.GetBudget(ctx, userID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to get budget", slog.String("user_id", userID))
		return nil, err
	}
	return budget, nil
}

func (s *ledgerService) UpdateBudgetInitial(ctx context.Context, userID string, budgetInitial decimal.Decimal) (*domain.Budget, error) {
	if budgetInitial.IsNegative() {
		return nil, fmt.Errorf("%w: initial budget must not be negative", apperrors.ErrValidation)
	}
	if err := accounting.ValidateCents("budgetInitial", budgetInitial); err != nil {
		return nil, err
	}
	budget, err := s.ledgerRepo.UpdateBudgetInitial(ctx, userID, budgetInitial, s.now())
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to update initial budget", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Initial budget updated", slog.String("user_id", userID), slog.String("budget_initial", budgetInitial.String()))
	return budget, nil
}

func (s *ledgerService) ApplyTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, decimal.Decimal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, decimal.Zero, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if err := accounting.ValidatePositiveCents("amount", req.Amount); err != nil {
		return nil, decimal.Zero, err
	}
	txnType := domain.TransactionType(req.Type)
	if !txnType.IsValid() {
		return nil, decimal.Zero, fmt.Errorf("%w: type must be income or expense", apperrors.ErrValidation)
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Name:          name,
		Amount:        *req.Amount,
		Type:          txnType,
		Description:   req.Description,
		Date:          now,
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	if req.Date != nil && !req.Date.IsZero() {
		txn.Date = *req.Date
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) != "" {
		category := strings.TrimSpace(*req.Category)
		if s.categories != nil {
			resolved, err := s.categories.ResolveCategoryName(ctx, category)
			if err != nil {
				return nil, decimal.Zero, err
			}
			category = resolved
		}
		txn.Category = &category
	}

	newBudget, err := s.ledgerRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("user_id", userID))
		return nil, decimal.Zero, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()),
		slog.String("new_budget", newBudget.String()))
	return &txn, newBudget, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter := portsrepo.TransactionFilter{}
	if params.Type != "" && params.Type != "all" {
		t := domain.TransactionType(params.Type)
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: type must be income, expense or all", apperrors.ErrValidation)
		}
		filter.Type = t
	}
	if !params.StartDate.IsZero() && !params.EndDate.IsZero() {
		if params.EndDate.Before(params.StartDate) {
			return nil, fmt.Errorf("%w: endDate is before startDate", apperrors.ErrValidation)
		}
		filter.StartDate = params.StartDate
		// The end date is inclusive of the whole day.
		filter.EndDate = params.EndDate.AddDate(0, 0, 1)
	}

	entries, err := s.ledgerRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	budget, err := s.ledgerRepo.GetBudget(ctx, userID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to get budget", slog.String("user_id", userID))
		return nil, err
	}
	return &dto.ListTransactionsResponse{Transactions: entries, Budget: budget.Current}, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, userID, transactionID string) (decimal.Decimal, error) {
	newBudget, err := s.ledgerRepo.DeleteTransaction(ctx, userID, transactionID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to delete transaction",
			slog.String("user_id", userID), slog.String("transaction_id", transactionID))
		return decimal.Zero, err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID), slog.String("new_budget", newBudget.String()))
	return newBudget, nil
}
