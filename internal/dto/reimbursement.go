package dto

import (
	"time"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReimbursementRequest is submitted by the owner.
type CreateReimbursementRequest struct {
	RequesterName  string           `json:"requesterName" binding:"required"`
	RequesterEmail *string          `json:"requesterEmail" binding:"omitempty,email"`
	Amount         *decimal.Decimal `json:"amount" binding:"required"`
	Description    string           `json:"description" binding:"required"`
	ReceiptURL     *string          `json:"receiptUrl"`
	RibURL         *string          `json:"ribUrl"`
	Notes          *string          `json:"notes"`
}

// PublicReimbursementRequest is submitted by a third party through a share link.
type PublicReimbursementRequest struct {
	Token          string           `json:"token" binding:"required"`
	RequesterName  string           `json:"requesterName" binding:"required"`
	RequesterEmail string           `json:"requesterEmail" binding:"required,email"`
	Amount         *decimal.Decimal `json:"amount" binding:"required"`
	Description    string           `json:"description" binding:"required"`
	ReceiptURL     *string          `json:"receiptUrl"`
	RibURL         *string          `json:"ribUrl"`
	Notes          *string          `json:"notes"`
}

// PublicReimbursementResponse acknowledges a public submission.
type PublicReimbursementResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"requestId"`
	Message   string `json:"message"`
}

// UpdateReimbursementRequest partially updates a request. Status changes go through the workflow rules.
type UpdateReimbursementRequest struct {
	RequesterName  *string          `json:"requesterName"`
	RequesterEmail *string          `json:"requesterEmail" binding:"omitempty,email"`
	Amount         *decimal.Decimal `json:"amount"`
	Description    *string          `json:"description"`
	ReceiptURL     *string          `json:"receiptUrl"`
	RibURL         *string          `json:"ribUrl"`
	Notes          *string          `json:"notes"`
	Status         *string          `json:"status"`
}

// PayReimbursementRequest records a payment and closes the request.
type PayReimbursementRequest struct {
	Amount       *decimal.Decimal `json:"amount" binding:"required"`
	Method       string           `json:"method" binding:"required"`
	TransferDate *time.Time       `json:"transferDate"`
	Reference    *string          `json:"reference"`
	Notes        *string          `json:"notes"`
}

// ListReimbursementsParams filters and pages reimbursement requests.
type ListReimbursementsParams struct {
	Status string `form:"status"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
}

// PageInfo describes the page returned.
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListReimbursementsResponse is a page of requests.
type ListReimbursementsResponse struct {
	Requests   []domain.ReimbursementRequest `json:"requests"`
	Pagination PageInfo                      `json:"pagination"`
}
