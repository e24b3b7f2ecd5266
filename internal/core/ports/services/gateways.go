package services

import (
	"context"

	"github.com/SscSPs/nexkeep/internal/core/domain"
)

// Notifier sends transactional emails.
type Notifier interface {
	SendReimbursementConfirmation(ctx context.Context, notice domain.ReimbursementNotice) error
	SendOwnerNotification(ctx context.Context, notice domain.ReimbursementNotice) error
}

// FileStore stores uploaded files and returns their public URL.
type FileStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// InvoiceRenderer renders an invoice document.
type InvoiceRenderer interface {
	Render(doc domain.InvoiceDocument) ([]byte, error)
}
