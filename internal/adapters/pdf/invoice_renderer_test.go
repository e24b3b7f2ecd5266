package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/nexkeep/internal/adapters/pdf"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceRenderer_Render(t *testing.T) {
	city := "Lyon"
	terms := "Paiement à 30 jours"
	inv := domain.Invoice{
		InvoiceID: "inv-1",
		Number:    "FAC-0001",
		Date:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		Status:    domain.InvoiceDraft,
		PaymentTerms: &terms,
	}
	inv.SetItems([]domain.InvoiceItem{{
		Description: "Développement",
		Quantity:    decimal.RequireFromString("2"),
		UnitPrice:   decimal.RequireFromString("10"),
		TaxRate:     decimal.RequireFromString("20"),
		Subtotal:    decimal.RequireFromString("20"),
		TaxAmount:   decimal.RequireFromString("4"),
		Total:       decimal.RequireFromString("24"),
	}})

	out, err := pdf.NewInvoiceRenderer().Render(domain.InvoiceDocument{
		Invoice:      inv,
		Organisation: domain.Organisation{Name: "Vosoft", City: &city},
		Client:       domain.Client{Name: "ACME"},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)
}
