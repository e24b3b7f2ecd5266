package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	"github.com/SscSPs/nexkeep/internal/models"
	"github.com/SscSPs/nexkeep/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, user_id, name, amount, transaction_type, description, category,
	transaction_date, reimbursement_id, created_at, created_by, last_updated_at, last_updated_by`

// signedAmountSQL is the effect of a transactions row on the budget.
const signedAmountSQL = `CASE WHEN transaction_type = 'expense' THEN -amount ELSE amount END`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// lockUserTx takes the per-user row lock that serialises budget changes and returns budget_initial.
func lockUserTx(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	var initial decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT budget_initial FROM users WHERE user_id = $1 FOR UPDATE`, userID).Scan(&initial)
	if err != nil {
		return decimal.Zero, mapPgError(err, "lock user "+userID)
	}
	return initial, nil
}

// budgetTx derives the current budget inside tx.
func budgetTx(ctx context.Context, tx pgx.Tx, userID string) (decimal.Decimal, error) {
	query := `
		SELECT u.budget_initial + COALESCE((
			SELECT SUM(` + signedAmountSQL + `) FROM transactions t WHERE t.user_id = u.user_id
		), 0)
		FROM users u
		WHERE u.user_id = $1;
	`
	var budget decimal.Decimal
	if err := tx.QueryRow(ctx, query, userID).Scan(&budget); err != nil {
		return decimal.Zero, mapPgError(err, "compute budget for "+userID)
	}
	return budget, nil
}

func insertTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Name,
		m.Amount,
		m.TransactionType,
		m.Description,
		m.Category,
		m.TransactionDate,
		m.ReimbursementID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "insert transaction "+m.TransactionID)
	}
	return nil
}

func scanTransaction(row pgx.Row, extra ...any) (models.Transaction, error) {
	var m models.Transaction
	dest := []any{
		&m.TransactionID,
		&m.UserID,
		&m.Name,
		&m.Amount,
		&m.TransactionType,
		&m.Description,
		&m.Category,
		&m.TransactionDate,
		&m.ReimbursementID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	}
	err := row.Scan(append(dest, extra...)...)
	return m, err
}

func (r *PgxLedgerRepository) GetBudget(ctx context.Context, userID string) (*domain.Budget, error) {
	query := `
		SELECT u.budget_initial, u.budget_initial + COALESCE((
			SELECT SUM(` + signedAmountSQL + `) FROM transactions t WHERE t.user_id = u.user_id
		), 0)
		FROM users u
		WHERE u.user_id = $1;
	`
	budget := domain.Budget{UserID: userID}
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&budget.BudgetInitial, &budget.Current); err != nil {
		return nil, mapPgError(err, "get budget for "+userID)
	}
	return &budget, nil
}

// ListTransactions computes each entry's running budget over the full log in insertion
// order, then applies the filter, so BudgetAfter does not depend on what is filtered out.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.LedgerEntry, error) {
	query := `
		WITH ledger AS (
			SELECT t.*, u.budget_initial + SUM(` + signedAmountSQL + `) OVER (
				ORDER BY t.created_at, t.transaction_id
				ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW
			) AS budget_after
			FROM transactions t
			JOIN users u ON u.user_id = t.user_id
			WHERE t.user_id = $1
		)
		SELECT ` + transactionColumns + `, budget_after
		FROM ledger
		WHERE ($2 = '' OR transaction_type = $2)
			AND ($3::timestamptz IS NULL OR transaction_date >= $3)
			AND ($4::timestamptz IS NULL OR transaction_date < $4)
		ORDER BY transaction_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(filter.Type), nullableTime(filter.StartDate), nullableTime(filter.EndDate))
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LedgerEntry, error) {
		var after decimal.Decimal
		m, err := scanTransaction(row, &after)
		if err != nil {
			return domain.LedgerEntry{}, err
		}
		return domain.LedgerEntry{Transaction: mapping.ToDomainTransaction(m), BudgetAfter: after}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return entries, nil
}

func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND user_id = $2`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		return nil, mapPgError(err, "find transaction "+transactionID)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// SaveTransaction appends txn to the log and returns the budget right after it.
// The user row lock makes concurrent writers for the same user apply one after the other.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockUserTx(ctx, tx, txn.UserID); err != nil {
		return decimal.Zero, err
	}
	if err := insertTransactionTx(ctx, tx, txn); err != nil {
		return decimal.Zero, err
	}
	budget, err := budgetTx(ctx, tx, txn.UserID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return budget, nil
}

func (r *PgxLedgerRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) (decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockUserTx(ctx, tx, userID); err != nil {
		return decimal.Zero, err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return decimal.Zero, mapPgError(err, "delete transaction "+transactionID)
	}
	if err := expectOneRow(tag, "transaction", transactionID); err != nil {
		return decimal.Zero, err
	}
	budget, err := budgetTx(ctx, tx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return decimal.Zero, err
	}
	return budget, nil
}

func (r *PgxLedgerRepository) UpdateBudgetInitial(ctx context.Context, userID string, budgetInitial decimal.Decimal, updatedAt time.Time) (*domain.Budget, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE users SET budget_initial = $2, last_updated_at = $3, last_updated_by = $1
		WHERE user_id = $1;
	`, userID, budgetInitial, updatedAt)
	if err != nil {
		return nil, mapPgError(err, "update initial budget")
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	current, err := budgetTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &domain.Budget{UserID: userID, BudgetInitial: budgetInitial, Current: current}, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
