package repositories

import (
	"context"

	"github.com/SscSPs/nexkeep/internal/core/domain"
)

// ReimbursementFilter selects a page of requests. An empty Status lists all.
type ReimbursementFilter struct {
	Status domain.ReimbursementStatus
	Limit  int
	Offset int
}

// ReimbursementReader reads reimbursement requests.
type ReimbursementReader interface {
	// FindRequestByID returns an owner scoped request with its payments.
	FindRequestByID(ctx context.Context, userID, requestID string) (*domain.ReimbursementRequest, error)

	// ListRequests returns a page of requests, newest first, and the total matching count.
	ListRequests(ctx context.Context, userID string, filter ReimbursementFilter) ([]domain.ReimbursementRequest, int, error)
}

// ReimbursementWriter writes reimbursement requests and payments.
type ReimbursementWriter interface {
	SaveRequest(ctx context.Context, req domain.ReimbursementRequest) error

	UpdateRequest(ctx context.Context, req domain.ReimbursementRequest) error

	// DeleteRequest removes a request. Returns apperrors.ErrConflict if payments exist.
	DeleteRequest(ctx context.Context, userID, requestID string) error

	// RecordPayment locks the request, checks it can still be paid (apperrors.ErrConflict otherwise),
	// inserts the payment and the expense transaction and marks the request paid, in one database transaction.
	RecordPayment(ctx context.Context, payment domain.Reimbursement, expense domain.Transaction) (*domain.PaymentOutcome, error)
}

// ReimbursementRepositoryFacade combines reimbursement read and write operations.
type ReimbursementRepositoryFacade interface {
	ReimbursementReader
	ReimbursementWriter
}
