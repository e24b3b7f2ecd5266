package repositories

import (
	"context"

	"github.com/SscSPs/nexkeep/internal/core/domain"
)

// NumberAllocator derives the next invoice number from the owner's latest one (nil when none exists).
type NumberAllocator func(last *string) (string, error)

// InvoiceReader reads invoices.
type InvoiceReader interface {
	// FindInvoiceByID returns an owner scoped invoice with its items ordered by position.
	FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices returns the owner's invoice headers, newest first. An empty status lists all.
	ListInvoices(ctx context.Context, userID string, status domain.InvoiceStatus) ([]domain.Invoice, error)

	// FindLatestInvoiceNumber returns the number of the owner's most recently created invoice, or nil.
	FindLatestInvoiceNumber(ctx context.Context, userID string) (*string, error)
}

// InvoiceWriter writes invoices. Header and items are always persisted atomically.
type InvoiceWriter interface {
	// CreateInvoice serialises numbering per owner, assigns inv.Number using allocate and inserts
	// the header with its items. Returns apperrors.ErrDuplicate on a number collision.
	CreateInvoice(ctx context.Context, inv domain.Invoice, allocate NumberAllocator) (*domain.Invoice, error)

	// UpdateInvoice updates the header and, when replaceItems is set, replaces the full item set.
	UpdateInvoice(ctx context.Context, inv domain.Invoice, replaceItems bool) error

	DeleteInvoice(ctx context.Context, userID, invoiceID string) error
}

// InvoiceRepositoryFacade combines invoice read and write operations.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
