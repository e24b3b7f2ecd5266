package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReimbursementStatus is the state of a reimbursement request.
type ReimbursementStatus string

const (
	ReimbursementPending  ReimbursementStatus = "pending"
	ReimbursementApproved ReimbursementStatus = "approved"
	ReimbursementRejected ReimbursementStatus = "rejected"
	ReimbursementPaid     ReimbursementStatus = "paid"
)

func (s ReimbursementStatus) IsValid() bool {
	switch s {
	case ReimbursementPending, ReimbursementApproved, ReimbursementRejected, ReimbursementPaid:
		return true
	}
	return false
}

// CanTransitionTo reports whether a request in status s may move to next.
// pending -> approved|rejected|paid, approved -> paid. Staying in place is allowed.
func (s ReimbursementStatus) CanTransitionTo(next ReimbursementStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ReimbursementPending:
		return next == ReimbursementApproved || next == ReimbursementRejected || next == ReimbursementPaid
	case ReimbursementApproved:
		return next == ReimbursementPaid
	}
	return false
}

// CanBePaid reports whether a payment can be recorded for a request in status s.
func (s ReimbursementStatus) CanBePaid() bool {
	return s == ReimbursementPending || s == ReimbursementApproved
}

// PaymentMethod is how a reimbursement was paid out.
type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCash     PaymentMethod = "cash"
	PaymentCheck    PaymentMethod = "check"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentTransfer || m == PaymentCash || m == PaymentCheck
}

// ReimbursementRequest is a claim, usually by a third party, to be repaid an expense by the owner.
type ReimbursementRequest struct {
	RequestID       string              `json:"requestID"`
	UserID          string              `json:"userID"`
	RequesterName   string              `json:"requesterName"`
	RequesterEmail  *string             `json:"requesterEmail,omitempty"`
	Amount          decimal.Decimal     `json:"amount"`
	Description     string              `json:"description"`
	ReceiptURL      *string             `json:"receiptUrl,omitempty"`
	RibURL          *string             `json:"ribUrl,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
	Status          ReimbursementStatus `json:"status"`
	IsPublicRequest bool                `json:"isPublicRequest"`
	Payments        []Reimbursement     `json:"payments,omitempty"`
	AuditFields
}

// Reimbursement is the record of a payment made against a request.
type Reimbursement struct {
	ReimbursementID string          `json:"reimbursementID"`
	RequestID       string          `json:"requestID"`
	UserID          string          `json:"userID"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"method"`
	TransferDate    *time.Time      `json:"transferDate,omitempty"`
	Reference       *string         `json:"reference,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	TransactionID   string          `json:"transactionID"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PaymentOutcome is the result of paying a request: the payment, the request
// now marked paid, the expense written to the ledger and the resulting budget.
type PaymentOutcome struct {
	Reimbursement Reimbursement        `json:"reimbursement"`
	Request       ReimbursementRequest `json:"request"`
	Transaction   Transaction          `json:"transaction"`
	NewBudget     decimal.Decimal      `json:"newBudget"`
}

// ReimbursementNotice is the content of the emails sent when a public request is submitted.
type ReimbursementNotice struct {
	RequestID      string
	RequesterName  string
	RequesterEmail string
	OwnerEmail     string
	Amount         decimal.Decimal
	Description    string
	SubmittedAt    time.Time
}

// StoredFile describes an uploaded document.
type StoredFile struct {
	Key         string `json:"fileName"`
	URL         string `json:"fileUrl"`
	Size        int64  `json:"fileSize"`
	ContentType string `json:"fileType"`
}
