package dto

import (
	"time"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest describes one line. When ArticleID is set, missing
// description, unit price and tax rate are taken from the article.
type InvoiceItemRequest struct {
	ArticleID   *string          `json:"articleId"`
	Description *string          `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	TaxRate     *decimal.Decimal `json:"tvaRate"`
}

// CreateInvoiceRequest builds a new invoice.
type CreateInvoiceRequest struct {
	OrganisationID string               `json:"organisationId" binding:"required"`
	ClientID       string               `json:"clientId" binding:"required"`
	Items          []InvoiceItemRequest `json:"items" binding:"required,dive"`
	Date           *time.Time           `json:"date"`
	DueDate        *time.Time           `json:"dueDate"`
	Status         *string              `json:"status"`
	Notes          *string              `json:"notes"`
	PaymentTerms   *string              `json:"paymentTerms"`
}

// UpdateInvoiceRequest partially updates an invoice. A non-nil Items replaces the whole item set.
type UpdateInvoiceRequest struct {
	OrganisationID *string              `json:"organisationId"`
	ClientID       *string              `json:"clientId"`
	Items          []InvoiceItemRequest `json:"items" binding:"omitempty,dive"`
	Date           *time.Time           `json:"date"`
	DueDate        *time.Time           `json:"dueDate"`
	Status         *string              `json:"status"`
	Notes          *string              `json:"notes"`
	PaymentTerms   *string              `json:"paymentTerms"`
}

// ListInvoicesParams filters invoices.
type ListInvoicesParams struct {
	Status string `form:"status"`
}

// InvoiceResponse adds display amounts rounded to cents.
type InvoiceResponse struct {
	domain.Invoice
	SubtotalDisplay  string `json:"subtotalDisplay"`
	TaxAmountDisplay string `json:"tvaAmountDisplay"`
	TotalDisplay     string `json:"totalDisplay"`
}

func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		Invoice:          *inv,
		SubtotalDisplay:  accounting.RoundForDisplay(inv.Subtotal),
		TaxAmountDisplay: accounting.RoundForDisplay(inv.TaxAmount),
		TotalDisplay:     accounting.RoundForDisplay(inv.Total),
	}
}

func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i])
	}
	return out
}

// NextInvoiceNumberResponse previews the number the next invoice will get.
type NextInvoiceNumberResponse struct {
	Number string `json:"number"`
}
