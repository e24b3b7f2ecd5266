package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	"github.com/SscSPs/nexkeep/internal/models"
	"github.com/SscSPs/nexkeep/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	requestColumns = `request_id, user_id, requester_name, requester_email, amount, description, receipt_url, rib_url,
	notes, status, is_public_request, created_at, created_by, last_updated_at, last_updated_by`
	paymentColumns = `reimbursement_id, request_id, user_id, amount, method, transfer_date, reference, notes,
	transaction_id, created_at`
)

type PgxReimbursementRepository struct {
	BaseRepository
}

func newPgxReimbursementRepository(pool *pgxpool.Pool) portsrepo.ReimbursementRepositoryFacade {
	return &PgxReimbursementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReimbursementRepositoryFacade = (*PgxReimbursementRepository)(nil)

func scanRequest(row pgx.Row) (models.ReimbursementRequest, error) {
	var m models.ReimbursementRequest
	err := row.Scan(
		&m.RequestID, &m.UserID, &m.RequesterName, &m.RequesterEmail, &m.Amount, &m.Description,
		&m.ReceiptURL, &m.RibURL, &m.Notes, &m.Status, &m.IsPublicRequest,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxReimbursementRepository) FindRequestByID(ctx context.Context, userID, requestID string) (*domain.ReimbursementRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM reimbursement_requests WHERE request_id = $1 AND user_id = $2`
	m, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID, userID))
	if err != nil {
		return nil, mapPgError(err, "find reimbursement request "+requestID)
	}
	req := mapping.ToDomainReimbursementRequest(m)

	// transaction_id is cleared when the expense is deleted from the ledger.
	rows, err := r.Pool.Query(ctx, `
		SELECT reimbursement_id, request_id, user_id, amount, method, transfer_date, reference, notes,
			COALESCE(transaction_id::text, ''), created_at
		FROM reimbursements WHERE request_id = $1
		ORDER BY created_at;
	`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments of request %s: %w", requestID, err)
	}
	defer rows.Close()
	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Reimbursement, error) {
		var p models.Reimbursement
		err := row.Scan(
			&p.ReimbursementID, &p.RequestID, &p.UserID, &p.Amount, &p.Method, &p.TransferDate,
			&p.Reference, &p.Notes, &p.TransactionID, &p.CreatedAt,
		)
		return mapping.ToDomainReimbursement(p), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments of request %s: %w", requestID, err)
	}
	req.Payments = payments
	return &req, nil
}

func (r *PgxReimbursementRepository) ListRequests(ctx context.Context, userID string, filter portsrepo.ReimbursementFilter) ([]domain.ReimbursementRequest, int, error) {
	var total int
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM reimbursement_requests WHERE user_id = $1 AND ($2 = '' OR status = $2)
	`, userID, string(filter.Status)).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reimbursement requests: %w", err)
	}

	query := `
		SELECT ` + requestColumns + ` FROM reimbursement_requests
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, request_id
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(filter.Status), filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query reimbursement requests: %w", err)
	}
	defer rows.Close()
	requests, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ReimbursementRequest, error) {
		m, err := scanRequest(row)
		return mapping.ToDomainReimbursementRequest(m), err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan reimbursement requests: %w", err)
	}
	return requests, total, nil
}

func (r *PgxReimbursementRepository) SaveRequest(ctx context.Context, req domain.ReimbursementRequest) error {
	m := mapping.ToModelReimbursementRequest(req)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO reimbursement_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`,
		m.RequestID, m.UserID, m.RequesterName, m.RequesterEmail, m.Amount, m.Description,
		m.ReceiptURL, m.RibURL, m.Notes, m.Status, m.IsPublicRequest,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "save reimbursement request "+m.RequestID)
}

func (r *PgxReimbursementRepository) UpdateRequest(ctx context.Context, req domain.ReimbursementRequest) error {
	m := mapping.ToModelReimbursementRequest(req)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE reimbursement_requests SET
			requester_name = $3, requester_email = $4, amount = $5, description = $6, receipt_url = $7,
			rib_url = $8, notes = $9, status = $10, last_updated_at = $11, last_updated_by = $12
		WHERE request_id = $1 AND user_id = $2;
	`,
		m.RequestID, m.UserID, m.RequesterName, m.RequesterEmail, m.Amount, m.Description, m.ReceiptURL,
		m.RibURL, m.Notes, m.Status, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "update reimbursement request "+m.RequestID)
	}
	return expectOneRow(tag, "reimbursement request", m.RequestID)
}

// DeleteRequest relies on the payments foreign key: a paid request reports apperrors.ErrConflict.
func (r *PgxReimbursementRepository) DeleteRequest(ctx context.Context, userID, requestID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM reimbursement_requests WHERE request_id = $1 AND user_id = $2`, requestID, userID)
	if err != nil {
		return mapPgError(err, "delete reimbursement request "+requestID)
	}
	return expectOneRow(tag, "reimbursement request", requestID)
}

// RecordPayment writes the payment, its ledger expense and the paid status as one unit.
// The request row lock makes a second concurrent payment observe the paid status and fail.
func (r *PgxReimbursementRepository) RecordPayment(ctx context.Context, payment domain.Reimbursement, expense domain.Transaction) (*domain.PaymentOutcome, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := lockUserTx(ctx, tx, payment.UserID); err != nil {
		return nil, err
	}
	m, err := scanRequest(tx.QueryRow(ctx, `
		SELECT `+requestColumns+` FROM reimbursement_requests
		WHERE request_id = $1 AND user_id = $2
		FOR UPDATE;
	`, payment.RequestID, payment.UserID))
	if err != nil {
		return nil, mapPgError(err, "lock reimbursement request "+payment.RequestID)
	}
	request := mapping.ToDomainReimbursementRequest(m)
	if !request.Status.CanBePaid() {
		return nil, fmt.Errorf("%w: request %s is %s and cannot be paid", apperrors.ErrConflict, request.RequestID, request.Status)
	}

	if err := insertTransactionTx(ctx, tx, expense); err != nil {
		return nil, err
	}
	p := mapping.ToModelReimbursement(payment)
	_, err = tx.Exec(ctx, `
		INSERT INTO reimbursements (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		p.ReimbursementID, p.RequestID, p.UserID, p.Amount, p.Method, p.TransferDate, p.Reference, p.Notes,
		p.TransactionID, p.CreatedAt,
	)
	if err != nil {
		return nil, mapPgError(err, "insert reimbursement "+p.ReimbursementID)
	}

	request.Status = domain.ReimbursementPaid
	request.Touch(payment.UserID, payment.CreatedAt)
	_, err = tx.Exec(ctx, `
		UPDATE reimbursement_requests SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE request_id = $1;
	`, request.RequestID, string(request.Status), request.LastUpdatedAt, request.LastUpdatedBy)
	if err != nil {
		return nil, mapPgError(err, "mark request "+request.RequestID+" paid")
	}

	budget, err := budgetTx(ctx, tx, payment.UserID)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	request.Payments = []domain.Reimbursement{payment}
	return &domain.PaymentOutcome{
		Reimbursement: payment,
		Request:       request,
		Transaction:   expense,
		NewBudget:     budget,
	}, nil
}
