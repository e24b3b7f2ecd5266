package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReimbursementRequest is the reimbursement_requests table row.
type ReimbursementRequest struct {
	RequestID       string          `db:"request_id"`
	UserID          string          `db:"user_id"`
	RequesterName   string          `db:"requester_name"`
	RequesterEmail  *string         `db:"requester_email"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	ReceiptURL      *string         `db:"receipt_url"`
	RibURL          *string         `db:"rib_url"`
	Notes           *string         `db:"notes"`
	Status          string          `db:"status"`
	IsPublicRequest bool            `db:"is_public_request"`
	AuditFields
}

// Reimbursement is the reimbursements (payments) table row.
type Reimbursement struct {
	ReimbursementID string          `db:"reimbursement_id"`
	RequestID       string          `db:"request_id"`
	UserID          string          `db:"user_id"`
	Amount          decimal.Decimal `db:"amount"`
	Method          string          `db:"method"`
	TransferDate    *time.Time      `db:"transfer_date"`
	Reference       *string         `db:"reference"`
	Notes           *string         `db:"notes"`
	TransactionID   string          `db:"transaction_id"`
	CreatedAt       time.Time       `db:"created_at"`
}
