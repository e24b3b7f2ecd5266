package services

import (
	"context"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/dto"
)

// InvoiceSvcFacade builds, numbers and renders invoices.
type InvoiceSvcFacade interface {
	BuildInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, userID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, error)
	DeleteInvoice(ctx context.Context, userID, invoiceID string) error
	// NextInvoiceNumber previews the number the next invoice would receive.
	NextInvoiceNumber(ctx context.Context, userID string) (string, error)
	// RenderInvoicePDF returns the PDF document and a suggested file name.
	RenderInvoicePDF(ctx context.Context, userID, invoiceID string) ([]byte, string, error)
}
